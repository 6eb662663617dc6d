// Package cmd wires the CLI: input loading, logger and settings setup,
// the non-interactive tree dump, and the interactive explorer session.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/oakwood-commons/objex/internal/format"
	"github.com/oakwood-commons/objex/internal/predicate"
	"github.com/oakwood-commons/objex/internal/provider"
	"github.com/oakwood-commons/objex/internal/ui"
	"github.com/oakwood-commons/objex/pkg/explore"
	"github.com/oakwood-commons/objex/pkg/loader"
	"github.com/oakwood-commons/objex/pkg/logger"
	"github.com/oakwood-commons/objex/pkg/settings"
)

// errNoInput is returned when neither a file argument nor piped stdin is
// available; the caller shows usage instead of an error trace.
var errNoInput = errors.New("no input provided")

var (
	treeDump    bool
	treeDepth   int
	showPrivate bool
	filterExprs []string
	entryLimit  int
	noColor     bool
	logLevel    int8

	stdinIsPiped = func() bool {
		stat, _ := os.Stdin.Stat()
		return (stat.Mode() & os.ModeCharDevice) == 0
	}
)

var rootCmd = &cobra.Command{
	Use:   settings.CliBinaryName + " [file]",
	Short: "Interactive explorer for structured data and object graphs",
	Long: `objex loads JSON, YAML, TOML, NDJSON, or a JWT from a file or stdin and
opens an interactive explorer: drill into containers, inspect members,
filter with named predicates or CEL expressions, and return a value.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		err := run(cmd, args)
		if errors.Is(err, errNoInput) {
			return cmd.Help()
		}
		return err
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print objex version",
	RunE: func(_ *cobra.Command, _ []string) error {
		v := settings.VersionInformation
		fmt.Printf("%s %s (commit %s, built %s)\n",
			settings.CliBinaryName, v.BuildVersion, v.Commit, v.BuildTime)
		return nil
	},
}

func init() {
	rootCmd.Flags().BoolVarP(&treeDump, "tree", "t", false, "print the object tree and exit")
	rootCmd.Flags().IntVar(&treeDepth, "depth", 2, "levels to expand with --tree")
	rootCmd.Flags().BoolVar(&showPrivate, "private", false, "include private members with --tree")
	rootCmd.Flags().StringArrayVarP(&filterExprs, "filter", "f", nil, "initial filter: a builtin name or a CEL expression (repeatable)")
	rootCmd.Flags().IntVar(&entryLimit, "limit", 0, "cap container entries per level (0 = unlimited)")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "disable colors")
	rootCmd.Flags().Int8Var(&logLevel, "log-level", 0, "minimum zap log level (negative is more verbose)")
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func run(cmd *cobra.Command, args []string) error {
	params := settings.NewCliParams()
	params.MinLogLevel = logLevel
	params.Tree = treeDump
	params.TreeDepth = treeDepth
	params.ShowPrivate = showPrivate
	params.Filters = filterExprs
	params.EntryLimit = entryLimit
	params.NoColor = noColor
	applyEnv(cmd, params)

	log := logger.Get(params.MinLogLevel)
	ctx := logger.WithLogger(cmd.Context(), log)
	ctx = settings.IntoContext(ctx, params)

	value, name, err := loadInput(args, params)
	if err != nil {
		return err
	}

	limit := explore.LimitConfig{Limit: params.EntryLimit}
	if err := limit.Validate(); err != nil {
		return fmt.Errorf("invalid --limit: %w", err)
	}

	engine := explore.New(provider.New(),
		explore.WithLimit(limit),
		explore.WithLogger(*log),
	)
	root := engine.NewRoot(value, name)
	stack := engine.NewStack(root)

	registry, err := predicate.NewRegistry()
	if err != nil {
		return fmt.Errorf("filter engine: %w", err)
	}
	preds, err := compileFilters(registry, params.Filters)
	if err != nil {
		return err
	}
	if len(preds) > 0 {
		engine.SetPredicates(root, preds)
	}

	if params.Tree {
		opts := format.TreeOptions{MaxDepth: params.TreeDepth, ShowPrivate: params.ShowPrivate}
		fmt.Fprint(cmd.OutOrStdout(), format.Tree(engine, root, opts))
		return nil
	}

	return runInteractive(ctx, stack, registry, preds, params)
}

// applyEnv honors NO_COLOR and OBJEX_LOG_LEVEL when the corresponding flag
// was not given; explicit flags always win.
func applyEnv(cmd *cobra.Command, params *settings.Run) {
	if !cmd.Flags().Changed("no-color") {
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			params.NoColor = true
		}
	}
	if !cmd.Flags().Changed("log-level") {
		if v := os.Getenv("OBJEX_LOG_LEVEL"); v != "" {
			if lv, err := strconv.ParseInt(v, 10, 8); err == nil {
				params.MinLogLevel = int8(lv)
			}
		}
	}
}

// compileFilters resolves each --filter value: builtin names match first,
// anything else compiles as a CEL expression.
func compileFilters(registry *predicate.Registry, exprs []string) ([]explore.Predicate, error) {
	preds := make([]explore.Predicate, 0, len(exprs))
	for _, expr := range exprs {
		if p, ok := predicate.Builtin(expr); ok {
			preds = append(preds, p)
			continue
		}
		p, err := registry.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid --filter %q: %w", expr, err)
		}
		preds = append(preds, p)
	}
	return preds, nil
}

// loadInput resolves the root value: a file argument wins, otherwise piped
// stdin is read whole.
func loadInput(args []string, params *settings.Run) (any, string, error) {
	if len(args) == 1 {
		params.Input.Path = args[0]
		value, err := loader.LoadFile(args[0])
		if err != nil {
			return nil, "", fmt.Errorf("loading %s: %w", args[0], err)
		}
		return value, filepath.Base(args[0]), nil
	}

	if stdinIsPiped() {
		params.Input.FromStdin = true
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, "", fmt.Errorf("reading stdin: %w", err)
		}
		value, err := loader.LoadBytes(data)
		if err != nil {
			return nil, "", err
		}
		return value, "stdin", nil
	}

	return nil, "", errNoInput
}

func runInteractive(ctx context.Context, stack *explore.Stack, registry *predicate.Registry, preds []explore.Predicate, params *settings.Run) error {
	log := logger.FromContext(ctx)
	model := ui.New(stack,
		ui.WithRegistry(registry),
		ui.WithNoColor(params.NoColor),
		ui.WithLogger(log),
		ui.WithPredicates(preds),
	)

	progOpts, cleanup := programOptions(params)
	defer cleanup()

	value, picked, err := ui.Run(ctx, model, progOpts...)
	if err != nil {
		return err
	}
	if picked {
		fmt.Println(format.Stringify(value))
	}
	return nil
}

// programOptions reopens the terminal when stdin carries the document, so
// the explorer still gets keyboard input. Without a tty the program falls
// back to the piped stdin.
func programOptions(params *settings.Run) ([]tea.ProgramOption, func()) {
	cleanup := func() {}
	if !params.Input.FromStdin {
		return nil, cleanup
	}

	ttyName := "/dev/tty"
	if runtime.GOOS == "windows" {
		ttyName = "CONIN$"
	}
	tty, err := os.OpenFile(ttyName, os.O_RDWR, 0)
	if err != nil {
		return nil, cleanup
	}
	if !term.IsTerminal(int(tty.Fd())) {
		_ = tty.Close()
		return nil, cleanup
	}
	cleanup = func() { _ = tty.Close() }
	return []tea.ProgramOption{tea.WithInput(tty)}, cleanup
}
