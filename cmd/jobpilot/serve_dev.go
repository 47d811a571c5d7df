package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jonathan/jobpilot/internal/config"
	"github.com/jonathan/jobpilot/internal/devserver"
	"github.com/jonathan/jobpilot/internal/devserver/ratelimit"
	"github.com/jonathan/jobpilot/internal/llm"
	"github.com/jonathan/jobpilot/internal/logger"
)

var (
	servePort   int
	serveNoSeed bool
)

var serveDevCmd = &cobra.Command{
	Use:   "serve-dev",
	Short: "Start the in-memory development backend",
	Long: `Start an HTTP server that implements the backend API in memory.
Job matches are analyzed with Gemini when GEMINI_API_KEY is set and with a keyword
matcher otherwise. Data is lost when the server stops.`,
	RunE: runServeDev,
}

func init() {
	serveDevCmd.Flags().IntVar(&servePort, "port", 5000, "Port to listen on")
	serveDevCmd.Flags().BoolVar(&serveNoSeed, "no-seed", false, "Start without the sample job postings")
	rootCmd.AddCommand(serveDevCmd)
}

func runServeDev(cmd *cobra.Command, _ []string) error {
	env := config.FromEnv()
	logCfg := env.MergeWithDefaults(config.Defaults())
	if verbose {
		logCfg.LogLevel = "debug"
	}
	log := logger.New(logCfg.LogLevel, logCfg.LogFormat)

	jwtCfg, err := config.NewJWTConfig()
	if err != nil {
		return err
	}
	pwCfg, err := config.NewPasswordConfig()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	analyzer, closeAnalyzer, err := newAnalyzer(ctx, log)
	if err != nil {
		return err
	}
	defer closeAnalyzer()

	srv, err := devserver.New(devserver.Config{
		Port:      servePort,
		JWT:       jwtCfg,
		Password:  pwCfg,
		Analyzer:  analyzer,
		RateLimit: ratelimit.LoadConfig(),
		Logger:    log,
		Seed:      !serveNoSeed,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start(ctx)
}

// newAnalyzer uses Gemini when an API key is configured, falling back to keyword matching.
func newAnalyzer(ctx context.Context, log *logrus.Logger) (devserver.Analyzer, func(), error) {
	apiKey := os.Getenv(llm.EnvAPIKey)
	if apiKey == "" {
		log.Info("GEMINI_API_KEY not set, using keyword analyzer")
		return devserver.KeywordAnalyzer{}, func() {}, nil
	}

	client, err := llm.NewClient(ctx, llm.ConfigFromEnv(), apiKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	analyzer := &devserver.LLMAnalyzer{
		Client:   client,
		Tier:     llm.TierStandard,
		Fallback: devserver.KeywordAnalyzer{},
		Log:      log,
	}
	return analyzer, func() { _ = client.Close() }, nil
}
