package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/personavault/vaultshell/internal/backend"
	"github.com/personavault/vaultshell/internal/bridge"
	"github.com/personavault/vaultshell/internal/config"
	"github.com/personavault/vaultshell/internal/logging"
	"github.com/personavault/vaultshell/internal/logtail"
	"github.com/personavault/vaultshell/internal/prefs"
	"github.com/personavault/vaultshell/internal/result"
	"github.com/personavault/vaultshell/internal/telemetry"
	"github.com/personavault/vaultshell/internal/ui"
)

// ErrInvocationFailed is returned by Invoke when the view ends in Failure.
var ErrInvocationFailed = errors.New("backend invocation failed")

const shutdownTimeout = 5 * time.Second

// Options configure the vaultshell application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/vaultshell/prefs.toml
	BackendURL string // overrides backend_url when set
	LogLevel   string // overrides log_level when set
	Out        io.Writer
}

type runtime struct {
	cfg      config.Config
	registry *bridge.Registry
	logger   *slog.Logger
	closers  []func()
}

func (r *runtime) close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		r.closers[i]()
	}
}

// Run shows the result view until the user quits or ctx is cancelled. When
// stdout is not a terminal the result is printed once instead.
func Run(ctx context.Context, opts Options) error {
	if !isTerminal(os.Stdout) {
		_, err := Invoke(ctx, opts)
		if errors.Is(err, ErrInvocationFailed) {
			return nil
		}
		return err
	}

	rt, err := start(ctx, opts)
	if err != nil {
		return err
	}
	defer rt.close()

	userPrefs := prefs.Load(opts.PrefsPath)
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	final, err := ui.Run(ctx, ui.Options{
		Invoker:   rt.registry,
		Operation: backend.OpFetchData,
		Logger:    logging.New("ui"),
		ThemeName: userPrefs.Theme,
		ShowHelp:  userPrefs.ShowHelp,
		PrefsPath: prefsPath,
	})
	rt.logger.Info("view closed", "state", stateName(final))
	return err
}

// Invoke performs the single bridge call without a terminal UI, writes the
// plain rendering to opts.Out and returns the final state.
func Invoke(ctx context.Context, opts Options) (result.Result, error) {
	rt, err := start(ctx, opts)
	if err != nil {
		return nil, err
	}
	defer rt.close()

	view := ui.Resolve(ui.NewResultView(ui.Options{
		Context:   ctx,
		Invoker:   rt.registry,
		Operation: backend.OpFetchData,
		Logger:    logging.New("ui"),
	}))
	defer view.Unmount()

	final := view.Result()
	if _, err := io.WriteString(output(opts), ui.RenderPlain(final)); err != nil {
		return final, fmt.Errorf("write output: %w", err)
	}
	if _, failed := final.(result.Failure); failed {
		return final, ErrInvocationFailed
	}
	return final, nil
}

// Logs writes the last n lines of the diagnostic log to opts.Out.
func Logs(opts Options, n int) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	lines, err := logtail.Read(cfg.LogPath(), n)
	if err != nil {
		return err
	}
	out := output(opts)
	for _, line := range lines {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	return nil
}

func start(ctx context.Context, opts Options) (*runtime, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if v := strings.TrimSpace(opts.BackendURL); v != "" {
		cfg.BackendURL = v
	}
	if v := strings.TrimSpace(opts.LogLevel); v != "" {
		cfg.LogLevel = v
	}

	rt := &runtime{cfg: cfg}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logFile, err := logging.OpenFile(cfg.LogPath())
	if err != nil {
		return nil, err
	}
	rt.closers = append(rt.closers, func() { _ = logFile.Close() })
	logging.Init(level, cfg.LogFormat, logFile)
	rt.logger = logging.New("app")

	shutdown, err := telemetry.Setup(ctx, cfg.OTLPEndpoint)
	if err != nil {
		rt.close()
		return nil, fmt.Errorf("init telemetry: %w", err)
	}
	rt.closers = append(rt.closers, func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdown(sctx); err != nil {
			rt.logger.Warn("telemetry shutdown failed", "error", err)
		}
	})

	client, err := backend.NewClient(cfg.BackendURL, cfg.RequestTimeout)
	if err != nil {
		rt.close()
		return nil, fmt.Errorf("init backend client: %w", err)
	}

	rt.registry = bridge.NewRegistry()
	backend.Register(rt.registry, client)

	rt.logger.Debug("runtime ready",
		"backend", client.BaseURL(),
		"operations", rt.registry.Operations(),
		"timeout", cfg.RequestTimeout)
	return rt, nil
}

func output(opts Options) io.Writer {
	if opts.Out != nil {
		return opts.Out
	}
	return os.Stdout
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func stateName(r result.Result) string {
	switch r.(type) {
	case result.Success:
		return "success"
	case result.Failure:
		return "failure"
	default:
		return "loading"
	}
}
