// Package cli implements the go-age command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/tartampluch/go-age/internal/calendar"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
	"github.com/tartampluch/go-age/internal/locale"
)

// errReported is returned once a command has already explained the failure
// to the user; Execute only turns it into an exit code.
var errReported = errors.New("reported")

// Deps holds everything the commands take from the outside world.
type Deps struct {
	Out    io.Writer
	ErrOut io.Writer

	Clock   engine.Clock
	Fetcher engine.VCardFetcher
	Getenv  func(string) string

	// Styled enables colors. It is true when stdout is a terminal.
	Styled bool

	// SetupLogging installs the default logger and returns what must be
	// closed on exit, or nil.
	SetupLogging func(debug bool) io.Closer

	// RunGUI opens the desktop form and blocks until it is closed.
	RunGUI func(ctx context.Context, settings config.Settings) error
}

// DefaultDeps wires the real terminal, clock, network and desktop front end.
func DefaultDeps() Deps {
	return Deps{
		Out:          os.Stdout,
		ErrOut:       os.Stderr,
		Clock:        engine.RealClock{},
		Fetcher:      engine.NewHTTPFetcher(),
		Getenv:       os.Getenv,
		Styled:       isatty.IsTerminal(os.Stdout.Fd()),
		SetupLogging: setupLogging,
		RunGUI:       openDesktop,
	}
}

// Execute runs the command line with args and returns the process exit code.
func Execute(ctx context.Context, deps Deps, args []string) int {
	rt := &cliRuntime{Deps: deps}
	defer rt.close()

	cmd := rt.rootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(deps.Out)
	cmd.SetErr(deps.ErrOut)

	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			slog.Error(config.ErrAppFailed,
				config.LogKeyComponent, config.CompCLI,
				config.LogKeyError, err,
			)
			_, _ = fmt.Fprintln(deps.ErrOut, "Error:", err)
		}
		return config.ExitCodeError
	}

	slog.Debug(config.MsgAppStop, config.LogKeyComponent, config.CompCLI)
	return config.ExitCodeSuccess
}

// cliRuntime is the state shared by the commands of one invocation.
type cliRuntime struct {
	Deps

	debug      bool
	configPath string
	lang       string

	settings config.Settings
	catalog  *locale.Catalog
	tr       *locale.Translator
	styles   styles
	closer   io.Closer
}

func (rt *cliRuntime) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               config.CmdUseRoot,
		Short:             config.CmdShortRoot,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: rt.setup,
		RunE:              rt.runGUI,
	}

	cmd.PersistentFlags().BoolVar(&rt.debug, config.FlagDebug, false, config.FlagDescDebug)
	cmd.PersistentFlags().StringVar(&rt.configPath, config.FlagConfig, "", config.FlagDescConfig)
	cmd.PersistentFlags().StringVar(&rt.lang, config.FlagLang, "", config.FlagDescLang)

	cmd.AddCommand(
		rt.guiCmd(),
		rt.calcCmd(),
		rt.serveCmd(),
		rt.contactsCmd(),
		rt.calendarCmd(),
		rt.versionCmd(),
	)
	return cmd
}

// setup runs before every command: logging, settings, then language.
func (rt *cliRuntime) setup(_ *cobra.Command, _ []string) error {
	if rt.SetupLogging != nil && rt.closer == nil {
		rt.closer = rt.SetupLogging(rt.debug)
	}
	logStartupInfo()

	var err error
	if rt.configPath != "" {
		rt.settings, err = config.LoadSettingsFrom(rt.configPath)
	} else {
		rt.settings, err = config.LoadSettings()
	}
	if err != nil {
		return err
	}

	rt.catalog = locale.NewCatalog()
	if rt.lang != "" {
		if !rt.catalog.Supports(rt.lang) {
			return fmt.Errorf("%s: %q", config.ErrLangUnsupported, rt.lang)
		}
		rt.settings.Language = rt.lang
	}
	rt.tr, _ = rt.catalog.Translator(rt.settings.Language)
	rt.styles = newStyles(rt.Styled)

	slog.Debug(config.MsgSettingsUsed,
		config.LogKeyComponent, config.CompConfig,
		config.LogKeyConfig, rt.configPath,
		config.LogKeyLang, rt.settings.Language,
	)
	return nil
}

func (rt *cliRuntime) close() {
	if rt.closer != nil {
		_ = rt.closer.Close()
		rt.closer = nil
	}
}

func (rt *cliRuntime) today() calendar.Date {
	return calendar.Today(rt.Clock)
}

func (rt *cliRuntime) guiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   config.CmdUseGUI,
		Short: config.CmdShortGUI,
		Args:  cobra.NoArgs,
		RunE:  rt.runGUI,
	}
}

func (rt *cliRuntime) runGUI(cmd *cobra.Command, _ []string) error {
	if rt.RunGUI == nil {
		return nil
	}
	return rt.RunGUI(cmd.Context(), rt.settings)
}

func (rt *cliRuntime) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   config.CmdUseVersion,
		Short: config.CmdShortVersion,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(rt.Out, config.MsgVersionOutput,
				config.AppName,
				config.Version,
				runtime.GOOS,
				runtime.GOARCH,
			)
			return err
		},
	}
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Debug(config.MsgAppStarting,
		config.LogKeyComponent, config.CompCLI,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyCommit, config.Commit),
			slog.String(config.LogKeyDate, config.Date),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}
