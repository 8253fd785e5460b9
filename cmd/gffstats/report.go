package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/inodb/gffstats/internal/count"
	"github.com/inodb/gffstats/internal/duckdb"
	"github.com/inodb/gffstats/internal/gff"
	"github.com/inodb/gffstats/internal/output"
	"github.com/inodb/gffstats/internal/plot"
	"github.com/inodb/gffstats/internal/reference"
	"github.com/inodb/gffstats/internal/summary"
)

// Output filenames inside the results directory.
const (
	summaryFileName = "chr_feature_counts.tsv"
	droppedFileName = "dropped_seqids.txt"
	chartFileName   = "feature_counts_visualization.png"
)

func runReport(args []string) int {
	fs := flag.NewFlagSet("report", flag.ExitOnError)

	var (
		gffPath    string
		sizesPath  string
		outDir     string
		dbPath     string
		noPlot     bool
		topRows    int
		verbose    bool
	)

	fs.StringVar(&gffPath, "gff", viper.GetString("inputs.gff"), "GFF3 annotation file (plain or gzipped)")
	fs.StringVar(&sizesPath, "chrom-sizes", viper.GetString("inputs.chrom_sizes"), "Chromosome sizes file (chrom\\tlength_bp)")
	fs.StringVar(&outDir, "out", viper.GetString("outputs.dir"), "Output directory")
	fs.StringVar(&dbPath, "db", viper.GetString("outputs.db"), "DuckDB database for result persistence (empty: disabled)")
	fs.BoolVar(&noPlot, "no-plot", false, "Skip chart rendering")
	fs.IntVar(&topRows, "top", viper.GetInt("report.top"), "Number of summary rows printed to the console")
	fs.BoolVar(&verbose, "v", false, "Verbose logging")
	fs.BoolVar(&verbose, "verbose", false, "Verbose logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Count genes, unique exon-like intervals, tRNAs and snoRNAs per chromosome
and write the summary table, dropped-seqid list and chart.

Usage:
  gffstats report [options]

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	logger := newLogger(verbose)
	defer logger.Sync()

	// Load chromosome reference
	ref, err := reference.Load(sizesPath, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	logger.Info("loaded chromosome reference", zap.Int("chromosomes", len(ref)), zap.String("path", sizesPath))

	// Single pass over the annotation stream
	parser, err := gff.NewParser(gffPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Hint: Check that the file path is correct\n")
		}
		return ExitError
	}
	defer parser.Close()

	agg := count.NewAggregator(ref)
	agg.SetLogger(logger)
	if err := agg.ConsumeAll(parser); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", gffPath, err)
		return ExitError
	}

	rows := summary.Build(ref, agg)

	if err := os.MkdirAll(outDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: create output directory %s: %v\n", outDir, err)
		return ExitError
	}

	// Summary table
	summaryPath := filepath.Join(outDir, summaryFileName)
	if err := writeSummaryFile(summaryPath, rows); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", summaryPath, err)
		return ExitError
	}

	// Dropped seqids
	droppedPath := filepath.Join(outDir, droppedFileName)
	if err := writeDroppedFile(droppedPath, agg.DroppedSeqids()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", droppedPath, err)
		return ExitError
	}

	// Chart
	if !noPlot {
		chartPath := filepath.Join(outDir, chartFileName)
		if err := plot.Render(rows, chartPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", chartPath, err)
			return ExitError
		}
		logger.Info("chart written", zap.String("path", chartPath))
	}

	// Optional DuckDB persistence
	if dbPath != "" {
		if err := persistRun(dbPath, gffPath, rows, agg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", dbPath, err)
			return ExitError
		}
		logger.Info("results persisted", zap.String("db", dbPath))
	}

	// Console report
	report := output.ConsoleReport{
		DroppedSeqids: len(agg.DroppedSeqids()),
		ExcludedLines: agg.ExcludedLines(),
		Rows:          rows,
		Top:           topRows,
	}
	if err := report.WriteTo(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: write console report: %v\n", err)
		return ExitError
	}

	return ExitSuccess
}

func writeSummaryFile(path string, rows []summary.Row) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return output.NewTableWriter(f).WriteAll(rows)
}

func writeDroppedFile(path string, seqids []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return output.WriteDroppedSeqids(f, seqids)
}

func persistRun(dbPath, gffPath string, rows []summary.Row, agg *count.Aggregator) error {
	store, err := duckdb.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.WriteRun(time.Now().UTC(), rows, duckdb.RunStats{
		GFFPath:       gffPath,
		DroppedSeqids: len(agg.DroppedSeqids()),
		ExcludedLines: agg.ExcludedLines(),
	})
}

// newLogger builds a console logger on stderr; product output stays on
// stdout.
func newLogger(verbose bool) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
