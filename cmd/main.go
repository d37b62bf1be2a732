// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"insight-ops/internal/answers"
	"insight-ops/internal/config"
	"insight-ops/internal/observability"
	"insight-ops/internal/parallel"
	"insight-ops/internal/qc"
	"insight-ops/internal/reconcile"
	"insight-ops/internal/report"
	"insight-ops/internal/table"
	"insight-ops/internal/textextract"
	"insight-ops/internal/version"
	"insight-ops/internal/violations"

	"golang.org/x/term"
)

// loadConfiguration loads the configuration file or returns default config
func loadConfiguration(configFile string) *config.Config {
	// If config file is not specified, try to find one in standard locations
	configPath := configFile
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	// Load configuration (will use defaults if file not found)
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Error loading config file: %v\n", err)
		fmt.Fprintf(os.Stderr, "Using default configuration\n")
		cfg, _ = config.LoadConfig("") // Load default config
	}
	return cfg
}

// finalConfiguration holds resolved configuration values
type finalConfiguration struct {
	format   string
	verbose  bool
	debug    bool
	noColor  bool
	skipRows int
}

// resolveConfiguration resolves final values from config file, profile, and command line flags
func resolveConfiguration(cfg *config.Config, activeProfile *config.Profile, flags *cliFlags) *finalConfiguration {
	final := &finalConfiguration{}

	// Format
	final.format = "text" // default fallback
	if cfg != nil && cfg.Defaults.Format != "" {
		final.format = cfg.Defaults.Format
	}
	if activeProfile != nil && activeProfile.Format != "" {
		final.format = activeProfile.Format
	}
	if isFlagSet("format") && flags.format != "" {
		final.format = flags.format
	}

	// Verbose
	if cfg != nil {
		final.verbose = cfg.Defaults.Verbose
	}
	if activeProfile != nil {
		final.verbose = activeProfile.Verbose
	}
	if isFlagSet("verbose") {
		final.verbose = flags.verbose
	}

	// Debug
	if cfg != nil {
		final.debug = cfg.Defaults.Debug
	}
	if activeProfile != nil {
		final.debug = activeProfile.Debug
	}
	if isFlagSet("debug") {
		final.debug = flags.debug
	}

	// No color
	if cfg != nil {
		final.noColor = cfg.Defaults.NoColor
	}
	if activeProfile != nil {
		final.noColor = activeProfile.NoColor
	}
	if isFlagSet("no-color") {
		final.noColor = flags.noColor
	}

	// Header rows to skip before the real column row
	if cfg != nil {
		final.skipRows = cfg.Defaults.SkipRows
	}
	if activeProfile != nil && activeProfile.SkipRows != 0 {
		final.skipRows = activeProfile.SkipRows
	}
	if isFlagSet("skip-rows") {
		final.skipRows = flags.skipRows
	}

	return final
}

// cliFlags holds command line flag values
type cliFlags struct {
	mode          string
	inputFile     string
	targetFile    string
	outputFile    string
	configFile    string
	profileName   string
	format        string
	questions     string
	referenceFile string
	skipRows      int
	declaredCount int
	expectedTrue  int
	verbose       bool
	debug         bool
	noColor       bool
	quiet         bool
}

func main() {
	mode := flag.String("mode", "", "Operation to run: reconcile, qc, answers, or classify")
	inputFile := flag.String("file", "", "Path to the primary input file (CSV for reconcile/qc, PDF for answers, text for classify)")
	targetFile := flag.String("target", "", "Path to the target sheet CSV (reconcile mode)")
	outputFile := flag.String("output", "", "Path to output file (if not specified, output to stdout)")
	configFile := flag.String("config", "", "Path to configuration file (YAML)")
	profileName := flag.String("profile", "", "Profile name to use from config file")
	listProfiles := flag.Bool("list-profiles", false, "List available profiles in config file")
	outputFormat := flag.String("format", "", "Output format: text, json, csv (default: text)")
	questionGroup := flag.String("questions", "foresight", "Question battery for answers mode: method or foresight")
	referenceFile := flag.String("reference", "", "Violation reference CSV (classify mode, overrides config)")
	mergedFile := flag.String("merged-output", "", "Path to write the merged sheet CSV (reconcile mode)")
	skipRows := flag.Int("skip-rows", 0, "Header rows to skip before the column row in input CSVs")
	declaredCount := flag.Int("declared-count", -1, "Declared row total to verify against the sheet (qc mode)")
	expectedTrue := flag.Int("expected-true", -1, "Expected number of TRUE values in the MVR Received column (qc mode)")
	verbose := flag.Bool("verbose", false, "Display detailed information for each finding")
	debug := flag.Bool("debug", false, "Enable debug logging of component timings")
	noColor := flag.Bool("no-color", false, "Disable colored output")
	quiet := flag.Bool("quiet", false, "Suppress progress output (useful for scripts and CI/CD)")
	showHelp := flag.Bool("help", false, "Show help information")
	showVersion := flag.Bool("version", false, "Show version information")

	flag.Parse()

	if *showVersion {
		fmt.Println(version.Info())
		os.Exit(0)
	}
	if *showHelp || *mode == "" {
		printUsage()
		if *showHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	flags := &cliFlags{
		mode:          *mode,
		inputFile:     *inputFile,
		targetFile:    *targetFile,
		outputFile:    *outputFile,
		configFile:    *configFile,
		profileName:   *profileName,
		format:        *outputFormat,
		questions:     *questionGroup,
		referenceFile: *referenceFile,
		skipRows:      *skipRows,
		declaredCount: *declaredCount,
		expectedTrue:  *expectedTrue,
		verbose:       *verbose,
		debug:         *debug,
		noColor:       *noColor,
		quiet:         *quiet,
	}

	cfg := loadConfiguration(flags.configFile)

	if *listProfiles {
		names := cfg.ListProfiles()
		if len(names) == 0 {
			fmt.Println("No profiles defined.")
		}
		for _, name := range names {
			p := cfg.Profiles[name]
			fmt.Printf("%s: %s\n", name, p.Description)
		}
		os.Exit(0)
	}

	var activeProfile *config.Profile
	if flags.profileName != "" {
		activeProfile = cfg.GetProfile(flags.profileName)
		if activeProfile == nil {
			fmt.Fprintf(os.Stderr, "Error: profile %q not found in config\n", flags.profileName)
			os.Exit(1)
		}
	}

	final := resolveConfiguration(cfg, activeProfile, flags)

	// Auto-detect non-interactive environment
	if !isTerminal(os.Stderr) || flags.quiet || os.Getenv("CI") != "" {
		final.noColor = true
	}

	level := observability.ObservabilityOff
	if final.debug {
		level = observability.ObservabilityDebug
	}
	observer := observability.NewStandardObserver(level, os.Stderr)

	if flags.inputFile == "" {
		fmt.Fprintln(os.Stderr, "Error: --file is required")
		os.Exit(1)
	}

	summary := &report.Summary{
		Mode:        flags.mode,
		File:        flags.inputFile,
		GeneratedAt: time.Now().UTC(),
	}

	var err error
	switch flags.mode {
	case "reconcile":
		err = runReconcile(cfg, flags, final, observer, *mergedFile, summary)
	case "qc":
		err = runQC(flags, final, observer, summary)
	case "answers":
		err = runAnswers(cfg, flags, observer, summary)
	case "classify":
		err = runClassify(cfg, flags, observer, summary)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q (expected reconcile, qc, answers, or classify)\n", flags.mode)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	output, err := report.Export(final.format, summary, report.Options{
		Verbose: final.verbose,
		NoColor: final.noColor,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flags.outputFile != "" {
		if err := os.WriteFile(flags.outputFile, []byte(output), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
		if !flags.quiet {
			fmt.Fprintf(os.Stderr, "Results written to %s\n", flags.outputFile)
		}
	} else {
		fmt.Println(output)
	}
}

func runReconcile(cfg *config.Config, flags *cliFlags, final *finalConfiguration, observer *observability.StandardObserver, mergedFile string, summary *report.Summary) error {
	if flags.targetFile == "" {
		return fmt.Errorf("reconcile mode requires --target")
	}

	drivers, err := table.ReadCSVFile(flags.inputFile, final.skipRows)
	if err != nil {
		return fmt.Errorf("reading driver list: %w", err)
	}
	target, err := table.ReadCSVFile(flags.targetFile, final.skipRows)
	if err != nil {
		return fmt.Errorf("reading target sheet: %w", err)
	}
	drivers.CleanCells()
	target.CleanCells()

	engine := reconcile.NewEngine(cfg.Reconcile.Aliases)
	engine.SetObserver(observer)
	result, err := engine.Run(drivers, target)
	if err != nil {
		return err
	}

	if mergedFile != "" {
		f, err := os.Create(mergedFile)
		if err != nil {
			return fmt.Errorf("creating merged sheet: %w", err)
		}
		defer f.Close()
		if err := result.Output.WriteCSV(f); err != nil {
			return fmt.Errorf("writing merged sheet: %w", err)
		}
	}

	summary.Reconcile = &report.ReconcileSummary{
		DriverRows:       len(drivers.Rows),
		TargetRows:       len(target.Rows),
		Matched:          result.Matched,
		Added:            result.Added,
		DriverNameColumn: result.DriverNameColumn,
		TargetNameColumn: result.TargetNameColumn,
	}
	return nil
}

func runQC(flags *cliFlags, final *finalConfiguration, observer *observability.StandardObserver, summary *report.Summary) error {
	sheet, err := table.ReadCSVFile(flags.inputFile, final.skipRows)
	if err != nil {
		return fmt.Errorf("reading sheet: %w", err)
	}
	sheet.CleanCells()

	if flags.declaredCount >= 0 || flags.expectedTrue >= 0 {
		if flags.declaredCount < 0 || flags.expectedTrue < 0 {
			return fmt.Errorf("--declared-count and --expected-true must be used together")
		}
		if err := qc.VerifyReceivedCounts(sheet, flags.declaredCount, flags.expectedTrue); err != nil {
			return err
		}
	}

	scorer := qc.NewScorer()
	scorer.SetObserver(observer)
	qcReport := scorer.Score(sheet)
	summary.QC = qcReport
	return nil
}

func runAnswers(cfg *config.Config, flags *cliFlags, observer *observability.StandardObserver, summary *report.Summary) error {
	doc, err := textextract.ExtractPDF(flags.inputFile)
	if err != nil {
		return err
	}
	if doc.IsScanned() {
		return fmt.Errorf("%s has no text layer on any page; run OCR first", doc.Filename)
	}

	var embedder answers.Embedder
	if cfg.Answers.Semantic {
		if cfg.Answers.ModelPath == "" || cfg.Answers.TokenizerPath == "" {
			fmt.Fprintln(os.Stderr, "Warning: no embedding model configured, semantic matching disabled")
		} else {
			onnx, err := answers.NewOnnxEmbedder(answers.EncoderConfig{
				OrtLibrary:    cfg.Answers.OrtLibrary,
				ModelPath:     cfg.Answers.ModelPath,
				TokenizerPath: cfg.Answers.TokenizerPath,
				MaxSeqLen:     cfg.Answers.MaxSeqLen,
			})
			if err != nil {
				return fmt.Errorf("initializing embedder: %w", err)
			}
			defer onnx.Close()
			embedder = onnx
		}
	}

	group := answers.GroupForesight
	if strings.EqualFold(flags.questions, string(answers.GroupMethod)) {
		group = answers.GroupMethod
	}

	synonyms := cfg.Answers.Synonyms
	finder := answers.NewFinder(embedder, synonyms)
	finder.SetObserver(observer)

	records, err := finder.Answer(context.Background(), doc.PageTexts(), answers.Questions(group))
	if err != nil {
		return err
	}
	summary.Answers = records
	return nil
}

func runClassify(cfg *config.Config, flags *cliFlags, observer *observability.StandardObserver, summary *report.Summary) error {
	classifier := violations.NewClassifier()

	referencePath := cfg.Violations.ReferenceFile
	if flags.referenceFile != "" {
		referencePath = flags.referenceFile
	}
	if referencePath != "" {
		ref, err := table.ReadCSVFile(referencePath, 0)
		if err != nil {
			return fmt.Errorf("reading reference table: %w", err)
		}
		ref.CleanCells()
		if err := classifier.LoadReference(ref); err != nil {
			return err
		}
	}

	// One description per non-empty input line.
	data, err := os.ReadFile(flags.inputFile)
	if err != nil {
		return fmt.Errorf("reading descriptions: %w", err)
	}
	var descriptions []string
	for _, line := range strings.Split(string(data), "\n") {
		if desc := strings.TrimSpace(line); desc != "" {
			descriptions = append(descriptions, desc)
		}
	}

	// Descriptions are independent; classify them concurrently, results in
	// input order.
	pool := parallel.NewWorkerPool(0, observer)
	results, err := parallel.MapOrdered(context.Background(), pool, descriptions, classifier.Classify)
	if err != nil {
		return err
	}

	records := make([]report.ClassificationRecord, len(descriptions))
	for i, desc := range descriptions {
		records[i] = report.ClassificationRecord{
			Description:    desc,
			Classification: results[i],
		}
	}
	summary.Classifications = records
	return nil
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "insight-ops - driver list reconciliation, MVR QC, and document answer extraction\n\n")
	fmt.Fprintf(os.Stderr, "Usage:\n")
	fmt.Fprintf(os.Stderr, "  insight-ops --mode reconcile --file drivers.csv --target sheet.csv [--merged-output merged.csv]\n")
	fmt.Fprintf(os.Stderr, "  insight-ops --mode qc --file mvr.csv [--declared-count N --expected-true N]\n")
	fmt.Fprintf(os.Stderr, "  insight-ops --mode answers --file report.pdf [--questions method|foresight]\n")
	fmt.Fprintf(os.Stderr, "  insight-ops --mode classify --file violations.txt [--reference categories.csv]\n\n")
	fmt.Fprintf(os.Stderr, "Flags:\n")
	flag.PrintDefaults()
}

// isFlagSet checks whether a flag was explicitly provided on the command line
func isFlagSet(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isTerminal reports whether the file is attached to a terminal
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
