package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/oleksandr38kebab342/log-csv-git/internal/ingest"
	"github.com/oleksandr38kebab342/log-csv-git/internal/parser"
	"github.com/oleksandr38kebab342/log-csv-git/internal/pipeline"
	"github.com/oleksandr38kebab342/log-csv-git/internal/server"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve [input]",
	Short: "Parse an access log and browse it over HTTP",
	Long: `Parse the input once, hold the records in memory, and expose them
over a small JSON API with the same filter, sort and pagination
semantics as the parse command.

Examples:
  log-csv-git serve access.log
  log-csv-git serve access.log --filter-status 500 --port 9090`,
	Args: cobra.ExactArgs(1),
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&servePort, "port", "", "HTTP port (default: 8080)")
	serveCmd.Flags().StringVar(&filterStatus, "filter-status", "", "pre-filter by HTTP status code")
	serveCmd.Flags().StringVar(&filterIP, "filter-ip", "", "pre-filter by client IP address")
	serveCmd.Flags().StringVar(&filterURL, "filter-url", "", "pre-filter by URL substring")
}

func runServe(cmd *cobra.Command, args []string) error {
	source := args[0]

	if servePort == "" {
		servePort = viper.GetString("port")
	}

	res, err := ingest.Ingest(parser.New(), source)
	if err != nil {
		return err
	}
	if len(res.Records) == 0 {
		return fmt.Errorf("no records were parsed from %s", source)
	}

	records := pipeline.Filter(res.Records, buildCriteria())

	fmt.Fprintf(os.Stderr, "serving %d record(s) on :%s\n", len(records), servePort)
	return server.New(records, servePort).Start()
}
