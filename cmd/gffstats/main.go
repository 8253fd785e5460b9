// Package main provides the gffstats command-line tool.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Global flags
	var showVersion bool
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	// Parse global flags first
	flag.Parse()

	if showVersion {
		fmt.Printf("gffstats version %s (%s) built %s\n", version, commit, date)
		return ExitSuccess
	}

	initConfig()

	// Check for subcommand
	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		return ExitUsage
	}

	switch args[0] {
	case "report":
		return runReport(args[1:])
	case "config":
		cmd := newConfigCmd()
		cmd.SetArgs(args[1:])
		if err := cmd.Execute(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitError
		}
		return ExitSuccess
	case "help":
		printUsage()
		return ExitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", args[0])
		printUsage()
		return ExitUsage
	}
}

// initConfig wires viper to ~/.gffstats.yaml and GFFSTATS_* env vars, with
// defaults for the fixed input/output locations.
func initConfig() {
	viper.SetConfigName(".gffstats")
	viper.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
	}
	viper.SetEnvPrefix("GFFSTATS")
	viper.AutomaticEnv()

	viper.SetDefault("inputs.gff", "data/saccharomyces_cerevisiae.gff.gz")
	viper.SetDefault("inputs.chrom_sizes", "data/chrom.sizes")
	viper.SetDefault("outputs.dir", "results")
	viper.SetDefault("outputs.db", "")
	viper.SetDefault("report.top", 5)

	// A missing config file is fine; defaults and env apply.
	_ = viper.ReadInConfig()
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `gffstats - per-chromosome GFF3 feature count and density report

Usage:
  gffstats [options] <command> [arguments]

Commands:
  report      Count features per chromosome and write the summary report
  config      Manage gffstats configuration
  help        Show this help message

Global Options:
  --version   Show version information

Examples:
  # Run the report with configured input/output paths
  gffstats report

  # Override paths for one run
  gffstats report --gff annotation.gff.gz --chrom-sizes chrom.sizes --out results

  # Keep the counts queryable in DuckDB
  gffstats report --db results/gffstats.duckdb

For more information on a command, use:
  gffstats <command> --help
`)
}
