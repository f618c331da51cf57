package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/hymns/internal/library"
	"github.com/desertthunder/hymns/internal/models"
	"github.com/desertthunder/hymns/internal/shared"
	"github.com/desertthunder/hymns/internal/store"
	"github.com/desertthunder/hymns/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	logger     *log.Logger
	output     io.Writer
	store      *store.Store
	notices    *store.NoticeLog
	logNotices *store.LogNotifier
	exporter   *tasks.Exporter
	copyText   func(string) error
	openSheet  func(string) error
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Logger     *log.Logger
	Output     io.Writer
	// Store replaces the collection built from the configured library.
	Store *store.Store
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		logger:     opts.Logger,
		output:     opts.Output,
		store:      opts.Store,
		notices:    store.NewNoticeLog(50),
		logNotices: store.NewLogNotifier(opts.Logger),
		exporter:   tasks.NewExporter(shared.WithLogger(opts.Logger, "component", "export")),
		copyText:   shared.CopyToClipboard,
		openSheet:  shared.OpenSheet,
	}
}

// SetLogger replaces the logger used by the runner and by notices logged from the collection.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
	r.logNotices = store.NewLogNotifier(l)
	r.exporter = tasks.NewExporter(shared.WithLogger(l, "component", "export"))
}

// app builds the root command. Without a subcommand it launches the TUI.
func (r *Runner) app() *cli.Command {
	return &cli.Command{
		Name:     "hymns",
		Usage:    "Browse, search and share hymns from the terminal",
		Version:  "0.1.0",
		Flags:    []cli.Flag{configFlag()},
		Before:   r.prepare,
		Action:   r.TUI,
		Commands: r.register(),
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		listCommand, showCommand, exportCommand, copyCommand, importCommand, sheetCommand, categoriesCommand,
		configCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// prepare loads the config file named by --config when it exists. A missing file keeps the defaults.
func (r *Runner) prepare(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if path := cmd.String("config"); path != "" {
		r.configPath = path
	}

	if r.configPath != "" {
		if _, err := os.Stat(r.configPath); err == nil {
			config, err := shared.LoadConfig(r.configPath)
			if err != nil {
				return ctx, err
			}
			r.config = config
		} else {
			r.logger.Debug("config file not found, using defaults", "path", r.configPath)
		}
	}

	shared.SetLogLevel(r.logger, r.config.LogLevel())
	return ctx, nil
}

// collection returns the hymn store, building it from the configured library on first use.
func (r *Runner) collection() (*store.Store, error) {
	if r.store != nil {
		return r.store, nil
	}

	hymns, err := library.Load(r.config.Library.Path)
	if err != nil {
		return nil, err
	}

	notifier := store.MultiNotifier{r.notices, store.NotifierFunc(func(n models.Notice) { r.logNotices.Notify(n) })}
	s, err := store.New(hymns,
		store.WithNotifier(notifier),
		store.WithLogger(shared.WithLogger(r.logger, "component", "store")),
		store.WithLocale(r.config.Locale()),
		store.WithAlphabeticalNumbering(r.config.Library.AlphabeticalNumbering),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load hymn library: %w", err)
	}

	r.logger.Debug("hymn library loaded", "hymns", s.Count(), "source", libraryName(r.config.Library.Path))
	r.store = s
	return s, nil
}

func libraryName(path string) string {
	if path == "" {
		return "built-in"
	}
	return path
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
