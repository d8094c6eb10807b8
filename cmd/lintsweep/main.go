package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"lintsweep/internal/config"
	"lintsweep/internal/detect"
	"lintsweep/internal/engine"
	engineopts "lintsweep/internal/engine/opts"
	"lintsweep/internal/model"
	"lintsweep/internal/util"
)

var version = "dev"

type cliFlags struct {
	root          string
	excludes      []string
	ecosystems    []string
	ignoreFiles   []string
	output        string
	fields        string
	colorMode     string
	configPath    string
	jobs          int
	maxFileBytes  int
	strict        bool
	requireReason bool
	forceProgress bool
	noProgress    bool
}

func main() {
	flags := &cliFlags{}

	rootCmd := &cobra.Command{
		Use:   "lintsweep [path...]",
		Short: "Audit lint-suppression directives across a source tree",
		Long: "lintsweep scans source files for lint-suppression directives (inline\n" +
			"disable comments and ignore-list files) and reports where checks were\n" +
			"silenced, with what scope, for which rules, and why.",
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, flags, args)
		},
	}

	rootCmd.Flags().StringVar(&flags.root, "root", ".", "scan root directory")
	rootCmd.Flags().StringSliceVar(&flags.excludes, "exclude", nil, "directories or globs to skip (repeatable)")
	rootCmd.Flags().StringSliceVar(&flags.ecosystems, "ecosystems", nil, "restrict to ecosystems (python, jsts)")
	rootCmd.Flags().StringSliceVar(&flags.ignoreFiles, "ignore-file", nil, "ignore-list file basenames (default .eslintignore)")
	rootCmd.Flags().StringVarP(&flags.output, "output", "o", "", "table|tsv|json|ndjson|csv|markdown")
	rootCmd.Flags().StringVar(&flags.fields, "fields", "", "comma-separated report columns")
	rootCmd.Flags().StringVar(&flags.colorMode, "color", "", "colorize output (auto|always|never)")
	rootCmd.Flags().StringVar(&flags.configPath, "config", "", "explicit config file path")
	rootCmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "max parallel workers")
	rootCmd.Flags().IntVar(&flags.maxFileBytes, "max-file-bytes", 0, "skip files larger than this (0=unlimited)")
	rootCmd.Flags().BoolVar(&flags.strict, "strict", false, "exit non-zero when anomalies were detected")
	rootCmd.Flags().BoolVar(&flags.requireReason, "require-reason", false, "exit non-zero for suppressions without a justification")
	rootCmd.Flags().BoolVar(&flags.forceProgress, "progress", false, "force progress even when piped")
	rootCmd.Flags().BoolVar(&flags.noProgress, "no-progress", false, "disable progress/ETA")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "lintsweep:", err)
		os.Exit(1)
	}
}

// buildOptions layers defaults, config file, environment and flags into
// final engine options plus report settings.
func buildOptions(cmd *cobra.Command, flags *cliFlags, args []string) (engine.Options, config.ReportSettings, error) {
	var rs config.ReportSettings

	cfgPath, _, err := config.Find(flags.root, flags.configPath, os.Getenv("XDG_CONFIG_HOME"), "")
	if err != nil {
		return engine.Options{}, rs, err
	}
	fileCfg, err := config.Load(cfgPath)
	if err != nil {
		return engine.Options{}, rs, err
	}
	envCfg, err := config.FromEnv(os.Getenv)
	if err != nil {
		return engine.Options{}, rs, err
	}

	scan := config.MergeScan(config.ScanSettings{}, fileCfg.Scan, envCfg.Scan)
	rs = config.MergeReport(config.ReportSettings{}, fileCfg.Report, envCfg.Report)

	opts := engineopts.Defaults(flags.root)
	scan.ApplyToOptions(&opts)
	if cmd.Flags().Changed("root") || opts.Root == "" {
		opts.Root = flags.root
	}
	if len(args) > 0 {
		opts.Paths = args
	}
	if cmd.Flags().Changed("exclude") {
		opts.Excludes = flags.excludes
	}
	if cmd.Flags().Changed("ignore-file") {
		opts.IgnoreFiles = flags.ignoreFiles
	}
	if cmd.Flags().Changed("jobs") {
		opts.Jobs = flags.jobs
	}
	if cmd.Flags().Changed("max-file-bytes") {
		opts.MaxFileBytes = flags.maxFileBytes
	}

	ecoNames := scan.Ecosystems
	if cmd.Flags().Changed("ecosystems") {
		ecoNames = flags.ecosystems
	}
	opts.Ecosystems, err = engineopts.ParseEcosystems(ecoNames)
	if err != nil {
		return opts, rs, err
	}

	grammars, err := customGrammars(config.MergeGrammars(fileCfg.Grammars))
	if err != nil {
		return opts, rs, err
	}
	opts.CustomGrammars = grammars

	if cmd.Flags().Changed("output") {
		rs.Output = flags.output
	}
	if cmd.Flags().Changed("fields") {
		rs.Fields = flags.fields
	}
	if cmd.Flags().Changed("color") {
		rs.Color = flags.colorMode
	}
	if cmd.Flags().Changed("strict") {
		rs.Strict = flags.strict
	}
	if cmd.Flags().Changed("require-reason") {
		rs.RequireReason = flags.requireReason
	}
	rs.Output, err = engineopts.NormalizeOutput(rs.Output)
	if err != nil {
		return opts, rs, err
	}

	opts.Progress = util.ShouldShowProgress(flags.forceProgress, flags.noProgress)
	if err := engineopts.NormalizeAndValidate(&opts); err != nil {
		return opts, rs, err
	}
	return opts, rs, nil
}

func customGrammars(blocks []config.GrammarConfig) ([]model.Grammar, error) {
	var out []model.Grammar
	for _, block := range blocks {
		eco, ok := detect.ParseEcosystem(block.Ecosystem)
		if !ok {
			return nil, fmt.Errorf("grammar %s: unknown ecosystem %q", block.Name, block.Ecosystem)
		}
		out = append(out, block.Grammar(eco))
	}
	return out, nil
}

func runScan(cmd *cobra.Command, flags *cliFlags, args []string) error {
	opts, rs, err := buildOptions(cmd, flags, args)
	if err != nil {
		return err
	}
	setupColor(rs.Color)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rep, err := engine.Run(ctx, opts)
	if err != nil {
		return err
	}
	return render(rep, rs)
}

// setupColor wires the color mode into the fatih/color global switch.
func setupColor(mode string) {
	switch mode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	default:
		color.NoColor = os.Getenv("NO_COLOR") != "" || !term.IsTerminal(int(os.Stdout.Fd()))
	}
}
