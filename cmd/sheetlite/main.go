// Command sheetlite converts spreadsheet workbooks into SQLite databases and
// writes a text report for every produced database.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sheetlite/sheetlite"
)

var (
	flagConfig string
	flagInput  string
	flagOutput string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		printError(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "sheetlite",
		Short: "Convert spreadsheet workbooks into SQLite databases",
		Long: `sheetlite scans an input directory for spreadsheet workbooks (.xlsx, .xls),
converts each into a SQLite database with one table per non-empty sheet, and
writes a text report describing every produced database.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runBatch,
	}

	root.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "config file (YAML or TOML)")
	root.PersistentFlags().StringVar(&flagInput, "input", "", `input directory (default "input")`)
	root.PersistentFlags().StringVar(&flagOutput, "output", "", `output directory (default "output")`)

	root.AddCommand(newConvertCmd(), newReportCmd(), newDumpCmd(), newWatchCmd())
	return root
}

// loadConfig resolves the effective configuration from files, environment,
// and command line flags, in that order.
func loadConfig() (sheetlite.Config, error) {
	cfg, err := sheetlite.LoadConfig(flagConfig)
	if err != nil {
		return sheetlite.Config{}, err
	}
	if flagInput != "" {
		cfg.InputDir = flagInput
	}
	if flagOutput != "" {
		cfg.OutputDir = flagOutput
	}
	return cfg, nil
}

func runBatch(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	printHeader()

	bar := newProgressBar()
	batch := sheetlite.NewBatch(cfg).
		OnFileStart(func(index, total int, source string) {
			if index == 0 {
				fmt.Printf("Found %s in %s\n\n", pluralize(total, "workbook"), cfg.InputDir)
				bar.ChangeMax(total)
			}
			bar.Describe(filepath.Base(source))
		}).
		OnFileResult(func(_ sheetlite.FileResult) {
			_ = bar.Add(1)
		})

	summary, err := batch.Run(cmd.Context())
	if err != nil {
		return err
	}
	_ = bar.Finish()

	if len(summary.Results) == 0 {
		printNotice(fmt.Sprintf("No workbook files found in %s", cfg.InputDir))
		printNotice("Place .xlsx or .xls files there and run again")
		return nil
	}

	fmt.Println()
	for _, result := range summary.Results {
		printResult(result)
	}
	printSummary(summary)
	return nil
}

func newConvertCmd() *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:   "convert <workbook>",
		Short: "Convert a single workbook into a SQLite database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conv, err := sheetlite.ConvertContext(cmd.Context(), args[0], dbPath)
			if err != nil {
				return err
			}

			for _, table := range conv.Tables {
				fmt.Printf("%s sheet %q %s table %q (%s)\n",
					successStyle.Render("✓"), table.Sheet, arrow(), table.Name,
					pluralize(table.Rows, "row"))
			}
			for _, name := range conv.Skipped {
				printNotice(fmt.Sprintf("sheet %q has no data rows, skipped", name))
			}

			if info, err := os.Stat(conv.Database); err == nil {
				fmt.Printf("\n%s %s %s\n", titleStyle.Render("Database:"), conv.Database,
					mutedStyle.Render("("+formatBytes(info.Size())+")"))
			} else {
				fmt.Printf("\n%s %s\n", titleStyle.Render("Database:"), conv.Database)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&dbPath, "db", "o", "", "destination database path (default output/<name>.db)")
	return cmd
}

func newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report <database>",
		Short: "Write the text report for a database file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := sheetlite.ReportContext(cmd.Context(), args[0])
			if err != nil {
				if errors.Is(err, sheetlite.ErrNoTables) {
					printNotice(fmt.Sprintf("No tables in %s, nothing to report", args[0]))
					return nil
				}
				return err
			}
			fmt.Printf("%s Report written: %s\n", successStyle.Render("✓"), path)
			return nil
		},
	}
}

func newDumpCmd() *cobra.Command {
	var (
		dir      string
		format   string
		compress string
	)
	cmd := &cobra.Command{
		Use:   "dump <database>",
		Short: "Export database tables as delimited text files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			options, err := dumpOptionsFromFlags(format, compress)
			if err != nil {
				return err
			}
			written, err := sheetlite.DumpDatabaseContext(cmd.Context(), args[0], dir, options)
			if err != nil {
				return err
			}
			for _, path := range written {
				fmt.Printf("%s %s\n", successStyle.Render("✓"), path)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "output directory for exported files")
	cmd.Flags().StringVar(&format, "format", "csv", "output format: csv, tsv, or ltsv")
	cmd.Flags().StringVar(&compress, "compress", "none", "compression: none, gz, xz, or zstd")
	return cmd
}

func dumpOptionsFromFlags(format, compress string) (sheetlite.DumpOptions, error) {
	options := sheetlite.NewDumpOptions()

	switch strings.ToLower(format) {
	case "csv":
		options = options.WithFormat(sheetlite.OutputFormatCSV)
	case "tsv":
		options = options.WithFormat(sheetlite.OutputFormatTSV)
	case "ltsv":
		options = options.WithFormat(sheetlite.OutputFormatLTSV)
	default:
		return options, fmt.Errorf("unknown format: %s", format)
	}

	switch strings.ToLower(compress) {
	case "", "none":
	case "gz":
		options = options.WithCompression(sheetlite.CompressionGZ)
	case "xz":
		options = options.WithCompression(sheetlite.CompressionXZ)
	case "zstd":
		options = options.WithCompression(sheetlite.CompressionZSTD)
	default:
		return options, fmt.Errorf("unknown compression: %s", compress)
	}

	return options, nil
}

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the input directory and convert workbooks as they arrive",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			watcher, err := sheetlite.NewWatcher(cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = watcher.Close()
			}()

			watcher.OnResult = printResult
			watcher.OnError = printError

			printHeader()
			printNotice(fmt.Sprintf("Watching %s for workbooks, Ctrl-C to stop", cfg.InputDir))

			if err := watcher.Run(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			fmt.Println()
			printNotice("Watch stopped")
			return nil
		},
	}
}
