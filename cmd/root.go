package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/petstore/config"
	"github.com/s0up4200/petstore/format"
	"github.com/s0up4200/petstore/petstore"
)

var (
	cfgFile         string
	cfg             *config.Config
	logger          zerolog.Logger
	client          *petstore.Client
	formatter       format.Formatter
	shutdownTracing func(context.Context) error

	// Global flag overrides
	baseURL      string
	apiKey       string
	outputFormat string
	traceFlag    bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "petstore",
	Short: "A command-line client for the pet-store REST API",
	Long: `petstore manages pets and orders of a pet-store service.

It can create, update, look up and delete pets, place and cancel orders,
filter results with expressions, and run a local in-memory twin of the
service for development.`,
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  initializeApp,
	PersistentPostRunE: finalizeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// Interrupts cancel in-flight requests.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	flags.StringVar(&baseURL, "base-url", "", "pet-store API base URL (overrides petstore.base_url)")
	flags.StringVar(&apiKey, "api-key", "", "API key sent in the api_key header (overrides petstore.api_key)")
	flags.StringVarP(&outputFormat, "output", "o", "", "output format: table or json (overrides output.format)")
	flags.BoolVar(&traceFlag, "trace", false, "print request spans to stderr")

	rootCmd.AddCommand(petCmd)
	rootCmd.AddCommand(orderCmd)
	rootCmd.AddCommand(twinCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// initializeApp loads the configuration, then sets up logging, tracing and the client
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := applyOverrides(cmd, cfg); err != nil {
		return err
	}

	logger = setupLogger(cfg.Logging, os.Stderr)

	tp, shutdown, err := setupTracing(cfg.Tracing, os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}
	shutdownTracing = shutdown

	formatter, err = format.New(cfg.Output.Format)
	if err != nil {
		return err
	}

	client, err = petstore.NewClient(cfg.Petstore.ClientConfig(),
		petstore.WithLogger(logger),
		petstore.WithTracerProvider(tp),
	)
	if err != nil {
		return fmt.Errorf("failed to create petstore client: %w", err)
	}

	return nil
}

// finalizeApp flushes pending spans
func finalizeApp(cmd *cobra.Command, args []string) error {
	if shutdownTracing == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownTracing(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed to flush spans")
	}
	return nil
}

// applyOverrides copies explicitly set global flags onto the loaded config
func applyOverrides(cmd *cobra.Command, c *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("base-url") {
		c.Petstore.BaseURL = baseURL
	}
	if flags.Changed("api-key") {
		c.Petstore.APIKey = apiKey
	}
	if flags.Changed("output") {
		c.Output.Format = outputFormat
	}
	if flags.Changed("trace") {
		c.Tracing.Enabled = traceFlag
	}

	if err := config.Validate(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig, out io.Writer) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	if cfg.Format == "json" {
		return zerolog.New(out).Level(level).With().Timestamp().Logger()
	}

	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isTerminal(out),
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// printResult writes formatted output to the command's stdout
func printResult(cmd *cobra.Command, out string) {
	fmt.Fprintln(cmd.OutOrStdout(), out)
}
