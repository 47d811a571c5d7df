package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jonathan/jobpilot/internal/apiclient"
	"github.com/jonathan/jobpilot/internal/config"
	"github.com/jonathan/jobpilot/internal/logger"
	"github.com/jonathan/jobpilot/internal/observability"
	"github.com/jonathan/jobpilot/internal/pages"
	"github.com/jonathan/jobpilot/internal/services"
	"github.com/jonathan/jobpilot/internal/session"
)

// app is everything a client subcommand needs, built once per invocation.
type app struct {
	cfg     config.Config
	log     *logrus.Logger
	store   *session.FileStore
	svc     *services.Services
	printer *observability.Printer
	deps    pages.Deps
}

// loadConfig layers the config file, the environment, the built-in defaults and
// finally the persistent flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	var fileCfg config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, err
		}
		fileCfg = *loaded
	}

	env := config.FromEnv()
	cfg := env.MergeWithDefaults(fileCfg)
	cfg = cfg.MergeWithDefaults(config.Defaults())

	if cmd.Flags().Changed("api-url") {
		cfg.APIURL = apiURL
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = verbose
	}
	if cfg.Verbose {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newApp wires the client stack for the signed-in user.
func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	log := logger.NewWithOutput(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	store := session.NewFileStore(cfg.SessionFile)
	nav := cliNavigator(cmd.ErrOrStderr())

	client := apiclient.New(cfg.APIURL, store,
		apiclient.WithTimeout(cfg.Timeout()),
		apiclient.WithNavigator(nav),
		apiclient.WithLogger(log),
		apiclient.WithUserAgent("jobpilot/"+version),
	)
	svc := services.New(client, store)

	a := &app{
		cfg:     cfg,
		log:     log,
		store:   store,
		svc:     svc,
		printer: observability.NewPrinter(cmd.OutOrStdout(), colorEnabled(cmd.OutOrStdout())),
	}
	a.deps = pages.Deps{
		Services:      svc,
		Store:         store,
		Navigator:     nav,
		Log:           log,
		PageSize:      cfg.PageSize,
		LoadMoreDelay: cfg.LoadMoreDelay(),
		FlashTTL:      cfg.FlashTTL(),
	}

	log.WithFields(logrus.Fields{
		"api_url":      cfg.APIURL,
		"session_file": cfg.SessionFile,
	}).Debug("client configured")
	return a, nil
}

// cliNavigator turns route changes into hints on stderr.
func cliNavigator(out io.Writer) session.Navigator {
	return session.NavigatorFunc(func(route session.Route) {
		switch route {
		case session.RouteLogin:
			fmt.Fprintln(out, "You are not signed in. Run `jobpilot login` first.")
		case session.RouteResume:
			fmt.Fprintln(out, "Upload a resume first: jobpilot resume upload <file.pdf>")
		}
	})
}

// colorEnabled reports whether ANSI colors should be written to out.
func colorEnabled(out io.Writer) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// mount runs a page's Mount under a signal-aware context. The returned func unmounts it.
func mount(cmd *cobra.Command, page interface {
	Mount(context.Context) error
	Unmount()
}) (func(), error) {
	ctx, cancel := signalContext(cmd.Context())
	if err := page.Mount(ctx); err != nil {
		cancel()
		return nil, err
	}
	return func() {
		page.Unmount()
		cancel()
	}, nil
}
