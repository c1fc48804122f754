// Command boxstat computes box plot statistics for trace documents and
// spreadsheets and prints them as JSON.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/boxstat/algorithms/stats"
	"github.com/RyanBlaney/boxstat/boxplot"
	"github.com/RyanBlaney/boxstat/boxplot/config"
	"github.com/RyanBlaney/boxstat/boxplot/intake"
	"github.com/RyanBlaney/boxstat/logging"
)

type calcOptions struct {
	file           string
	xlsx           string
	sheet          string
	configPath     string
	quartileMethod string
	logLevel       string
	output         string
	compact        bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "boxstat",
		Short:        "Box plot statistics engine",
		SilenceUsage: true,
	}
	rootCmd.AddCommand(newCalcCmd())
	return rootCmd
}

func newCalcCmd() *cobra.Command {
	opts := &calcOptions{}

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Compute quartiles, fences, outliers and notches per position",
		Long: `Reads traces from a YAML/JSON document (--file) or from the columns of an
xlsx sheet (--xlsx) and prints one result per trace as JSON.`,
		Example: `  boxstat calc --file traces.yaml --quartile-method exclusive
  boxstat calc --xlsx samples.xlsx --sheet Sheet1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalc(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Trace document (YAML or JSON, - for stdin)")
	cmd.Flags().StringVar(&opts.xlsx, "xlsx", "", "Workbook with one sample column per category")
	cmd.Flags().StringVar(&opts.sheet, "sheet", "", "Sheet to read (default: first sheet)")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Engine configuration file")
	cmd.Flags().StringVar(&opts.quartileMethod, "quartile-method", "", "Default quartile method: linear, exclusive, inclusive")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&opts.compact, "compact", false, "Print compact JSON")
	cmd.MarkFlagsMutuallyExclusive("file", "xlsx")
	cmd.MarkFlagsOneRequired("file", "xlsx")

	return cmd
}

func runCalc(ctx context.Context, opts *calcOptions, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.quartileMethod != "" {
		method, err := stats.ParseQuartileMethod(opts.quartileMethod)
		if err != nil {
			return err
		}
		cfg.QuartileMethod = method
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := logging.NewDefaultLoggerWithWriters(stderr, stderr)
	logger.SetLevel(level)

	traces, err := readTraces(opts)
	if err != nil {
		return err
	}

	calc, err := boxplot.NewCalculator(boxplot.WithConfig(cfg), boxplot.WithLogger(logger))
	if err != nil {
		return err
	}

	results, err := calc.CalcAll(ctx, traces)
	if err != nil {
		return fmt.Errorf("calculation failed: %w", err)
	}

	var data []byte
	if opts.compact {
		data, err = json.Marshal(results)
	} else {
		data, err = json.MarshalIndent(results, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if opts.output != "" {
		if err := os.WriteFile(opts.output, data, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	_, err = fmt.Fprintln(stdout, string(data))
	return err
}

func readTraces(opts *calcOptions) ([]*boxplot.Trace, error) {
	if opts.xlsx != "" {
		t, err := intake.ReadSheet(opts.xlsx, opts.sheet)
		if err != nil {
			return nil, err
		}
		return []*boxplot.Trace{t}, nil
	}

	if opts.file == "-" {
		return intake.DecodeTraces(os.Stdin)
	}

	f, err := os.Open(opts.file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return intake.DecodeTraces(f)
}
