package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/chriscorrea/wordcount/internal/app"
	"github.com/chriscorrea/wordcount/internal/counter"
	"github.com/chriscorrea/wordcount/internal/extract"
	"github.com/chriscorrea/wordcount/internal/fetch"
	"github.com/chriscorrea/wordcount/internal/format"

	"github.com/spf13/cobra"
)

// buildConfig constructs an app.Config from command flags and arguments
func buildConfig(cmd *cobra.Command, args []string) (app.Config, error) {
	// get flag values
	flagPaths, _ := cmd.Flags().GetStringArray("path")
	ignoreCase, _ := cmd.Flags().GetBool("ignore-case")
	recursive, _ := cmd.Flags().GetBool("recursive")
	sortBy, _ := cmd.Flags().GetString("sortby")
	formatName, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")
	stem, _ := cmd.Flags().GetBool("stem")
	htmlFlag, _ := cmd.Flags().GetBool("html")
	readable, _ := cmd.Flags().GetBool("readable")
	selector, _ := cmd.Flags().GetString("selector")
	maxSize, _ := cmd.Flags().GetInt64("max-size")
	quiet, _ := cmd.Flags().GetBool("quiet")
	debug, _ := cmd.Flags().GetBool("debug")

	// pflag drops a lone empty value, leaving the flag set but with no paths
	if cmd.Flags().Changed("path") && len(flagPaths) == 0 {
		return app.Config{}, errors.New("although option -p was provided, no actual path was given")
	}

	// -p paths come first, then positional arguments; none at all means stdin
	var paths []string
	for _, p := range append(flagPaths, args...) {
		if p == "" {
			return app.Config{}, errors.New("although option -p was provided, no actual path was given")
		}
		paths = append(paths, p)
	}

	// determine sort order
	sortOrder := counter.Unsorted
	if cmd.Flags().Changed("sortby") {
		order, err := counter.ParseSortOrder(sortBy)
		if err != nil {
			return app.Config{}, fmt.Errorf("could not parse 'sort by' option: %w", err)
		}
		sortOrder = order
	}

	// determine output format
	outputFormat, err := format.Parse(formatName)
	if err != nil {
		return app.Config{}, fmt.Errorf("could not parse output format option: %w (valid values are %s)", err, formatNames())
	}

	// determine content mode
	var content extract.Mode
	switch {
	case readable && !htmlFlag, selector != "" && !htmlFlag:
		return app.Config{}, errors.New("--readable and --selector require --html")
	case readable:
		content = extract.Readable
	case htmlFlag:
		content = extract.HTML
	default:
		content = extract.Raw
	}

	if maxSize < 0 {
		return app.Config{}, fmt.Errorf("--max-size must not be negative, got %d", maxSize)
	}

	return app.Config{
		Params: app.Params{
			IgnoreCase: ignoreCase,
			Recursive:  recursive,
			SortBy:     sortOrder,
			Stem:       stem,
			Content:    content,
			Selector:   selector,
		},
		Paths:       paths,
		Output:      output,
		Format:      outputFormat,
		MaxFileSize: maxSize,
		Quiet:       quiet,
		Debug:       debug,
	}, nil
}

// formatNames lists the accepted --format values for error messages
func formatNames() string {
	var names []string
	for _, f := range format.Formats() {
		names = append(names, "'"+f.String()+"'")
	}
	return strings.Join(names, ", ")
}

// setupLogger configures the default slog logger based on debug mode
func setupLogger(debug bool) {
	var level slog.Level
	if debug {
		level = slog.LevelDebug
	} else {
		level = slog.LevelError
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

var rootCmd = &cobra.Command{
	Use:   "wordcount [paths...]",
	Short: "A CLI tool for counting word frequencies",
	Long: `Wordcount counts how often each word occurs in its input. Input may be standard input, files, or directories.

A word is a run of alphabetic characters; digits, punctuation and whitespace separate words.

Examples:
  wordcount notes.txt
  wordcount -r -i --sortby count-desc docs/
  cat book.txt | wordcount --format csv -o counts.csv`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// build config from flags and arguments
		config, err := buildConfig(cmd, args)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		// configure logging pending debug flag
		setupLogger(config.Debug)

		// the context only stops the progress spinner; counting itself is not interrupted
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		fsys := fetch.OS{MaxBytes: config.MaxFileSize}
		return app.Run(ctx, config, fsys, os.Stdout)
	},
}

func init() {
	registerFlags(rootCmd)
}

// registerFlags declares the command-line flags on cmd
func registerFlags(cmd *cobra.Command) {
	// input flags
	cmd.Flags().StringArrayP("path", "p", nil, "File or folder to count (repeatable; positional arguments work too)")
	cmd.Flags().BoolP("recursive", "r", false, "Descend into subfolders")

	// counting flags
	cmd.Flags().BoolP("ignore-case", "i", false, "Ignore case (not case sensitive)")
	cmd.Flags().Bool("stem", false, "Count English word stems instead of surface forms")

	// HTML content flags
	cmd.Flags().Bool("html", false, "Treat inputs as HTML and count their visible text")
	cmd.Flags().Bool("readable", false, "With --html, count only the main article content")
	cmd.Flags().String("selector", "", "With --html, CSS selector restricting the counted text")
	cmd.MarkFlagsMutuallyExclusive("readable", "selector")

	// output flags
	cmd.Flags().StringP("sortby", "s", "", "Sort order: count, count-desc, alpha or alpha-desc")
	cmd.Flags().StringP("format", "f", string(format.Plain), "Output format: plain, csv, json, json-strict or yaml")
	cmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")

	// other flags
	cmd.Flags().Int64("max-size", 0, "Maximum bytes read per input unit (0 for no limit)")
	cmd.Flags().BoolP("quiet", "q", false, "Suppress the progress indicator")
	cmd.Flags().BoolP("debug", "D", false, "Enable debug logging")
	_ = cmd.Flags().MarkHidden("debug")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
