package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/oleksandr38kebab342/log-csv-git/internal/export"
	"github.com/oleksandr38kebab342/log-csv-git/internal/gitrepo"
	"github.com/oleksandr38kebab342/log-csv-git/internal/ingest"
	"github.com/oleksandr38kebab342/log-csv-git/internal/parser"
	"github.com/oleksandr38kebab342/log-csv-git/internal/pipeline"
)

var (
	styleOK   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))  // green
	styleWarn = lipgloss.NewStyle().Foreground(lipgloss.Color("220")) // yellow
	styleDim  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Faint(true)
)

var (
	outputFile    string
	outputFormat  string
	repoPath      string
	noGit         bool
	noPush        bool
	commitMessage string
	filterStatus  string
	filterIP      string
	filterURL     string
	sortBy        string
	sortReverse   bool
	pageNum       int
	perPage       int
)

var parseCmd = &cobra.Command{
	Use:   "parse [input]",
	Short: "Parse an access log and export it as CSV",
	Long: `Parse an nginx access log, apply optional filters, sorting and
pagination, and write the result as a fixed-column table.

The input is a file path, a glob pattern, or "-" for stdin.

Examples:
  log-csv-git parse access.log
  log-csv-git parse access.log --filter-status 500 --sort-by request_time --reverse
  cat access.log | log-csv-git parse - -o errors.csv --no-git
  log-csv-git parse "/var/log/nginx/*.access.log" --per-page 100 --page 2`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file path (default: nginx_logs.csv)")
	parseCmd.Flags().StringVar(&outputFormat, "format", "csv", "output format: csv, json")
	parseCmd.Flags().StringVar(&repoPath, "repo-path", ".", "git repository path")
	parseCmd.Flags().BoolVar(&noGit, "no-git", false, "skip git operations")
	parseCmd.Flags().BoolVar(&noPush, "no-push", false, "skip git push (commit only)")
	parseCmd.Flags().StringVar(&commitMessage, "commit-message", "", "git commit message")
	parseCmd.Flags().StringVar(&filterStatus, "filter-status", "", "filter by HTTP status code")
	parseCmd.Flags().StringVar(&filterIP, "filter-ip", "", "filter by client IP address")
	parseCmd.Flags().StringVar(&filterURL, "filter-url", "", "filter by URL substring")
	parseCmd.Flags().StringVar(&sortBy, "sort-by", "timestamp", "sort by field")
	parseCmd.Flags().BoolVar(&sortReverse, "reverse", false, "sort in descending order")
	parseCmd.Flags().IntVar(&pageNum, "page", 1, "page number for pagination")
	parseCmd.Flags().IntVar(&perPage, "per-page", 0, "records per page (0 = no pagination)")
}

func runParse(cmd *cobra.Command, args []string) error {
	source := args[0]

	if outputFile == "" {
		outputFile = viper.GetString("output")
	}
	if commitMessage == "" {
		commitMessage = viper.GetString("commit_message")
	}

	var exp export.Exporter
	switch outputFormat {
	case "csv":
		exp = export.CSVExporter{}
	case "json":
		exp = export.JSONExporter{}
	default:
		return fmt.Errorf("unknown output format %q (want csv or json)", outputFormat)
	}

	fmt.Fprintln(os.Stderr, styleDim.Render("parsing "+source))

	res, err := ingest.Ingest(parser.New(), source)
	if err != nil {
		return err
	}
	if len(res.Records) == 0 {
		return fmt.Errorf("no records were parsed from %s", source)
	}

	summary := fmt.Sprintf("parsed %d record(s) from %d line(s)", len(res.Records), res.LinesRead)
	if res.ParseFailures > 0 {
		summary += styleWarn.Render(fmt.Sprintf(" (%d unparseable)", res.ParseFailures))
	}
	fmt.Fprintln(os.Stderr, summary)

	criteria := buildCriteria()
	records := pipeline.Filter(res.Records, criteria)
	if len(criteria) > 0 {
		fmt.Fprintf(os.Stderr, "after filtering: %d record(s)\n", len(records))
	}

	records = pipeline.Sort(records, sortBy, sortReverse)

	if perPage > 0 {
		records = pipeline.Paginate(records, pageNum, perPage)
		fmt.Fprintf(os.Stderr, "showing page %d: %d record(s)\n", pageNum, len(records))
	}

	outputPath := filepath.Join(repoPath, outputFile)
	rows, err := export.WriteFile(outputPath, exp, records)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, styleOK.Render(fmt.Sprintf("wrote %d row(s) to %s", rows, outputPath)))

	if !noGit {
		pub, err := gitrepo.NewExecPublisher(repoPath)
		if err != nil {
			return err
		}
		msg := gitrepo.CommitMessage(commitMessage, source, len(records), criteria)
		if err := gitrepo.Publish(pub, outputFile, msg, !noPush,
			viper.GetString("remote"), viper.GetString("branch")); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, styleOK.Render("committed "+outputFile))
	}

	return nil
}

// buildCriteria maps the filter flags onto record fields.
func buildCriteria() pipeline.Criteria {
	criteria := pipeline.Criteria{}
	if filterStatus != "" {
		criteria["status"] = filterStatus
	}
	if filterIP != "" {
		criteria["remote_addr"] = filterIP
	}
	if filterURL != "" {
		criteria["url"] = filterURL
	}
	return criteria
}
