package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd is the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "log-csv-git",
	Short: "Parse nginx access logs into CSV and publish to git",
	Long: `log-csv-git ingests nginx access-log lines (extended ingress format
with a combined-format fallback), extracts structured fields, applies
filtering, sorting and pagination, exports the result as CSV or JSON,
and can commit the artifact to a git repository.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: $HOME/.log-csv-git.yaml)")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigName(".log-csv-git")
		viper.SetConfigType("yaml")
	}

	viper.SetDefault("output", "nginx_logs.csv")
	viper.SetDefault("commit_message", "Add nginx log analysis")
	viper.SetDefault("remote", "origin")
	viper.SetDefault("branch", "main")
	viper.SetDefault("port", "8080")

	viper.SetEnvPrefix("LOG_CSV_GIT")
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}
