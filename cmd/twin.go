package cmd

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/s0up4200/petstore/twin"
)

var (
	twinAddr   string
	twinAPIKey string
	twinSeed   bool
)

// twinCmd runs the in-memory pet-store replica
var twinCmd = &cobra.Command{
	Use:   "twin",
	Short: "Run a local in-memory pet-store server",
	Long: `Run an in-memory replica of the pet-store API under /v2, with an /admin
control plane for inspecting and resetting its state. Point the client at it
with --base-url http://<addr>/v2.`,
	Args: cobra.NoArgs,
	RunE: runTwin,
}

func init() {
	twinCmd.Flags().StringVar(&twinAddr, "addr", "", "listen address (overrides twin.addr)")
	twinCmd.Flags().StringVar(&twinAPIKey, "require-api-key", "", "reject requests without this api_key (overrides twin.api_key)")
	twinCmd.Flags().BoolVar(&twinSeed, "seed", false, "load sample pets and orders (overrides twin.seed)")
}

func runTwin(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	if flags.Changed("addr") {
		cfg.Twin.Addr = twinAddr
	}
	if flags.Changed("require-api-key") {
		cfg.Twin.APIKey = twinAPIKey
	}
	if flags.Changed("seed") {
		cfg.Twin.Seed = twinSeed
	}

	var seed *twin.State
	if cfg.Twin.Seed {
		seed = twin.SeedState()
	}

	gin.SetMode(gin.ReleaseMode)
	server := twin.New(
		twin.WithStore(twin.NewStore(seed)),
		twin.WithAPIKey(cfg.Twin.APIKey),
		twin.WithLogger(logger.With().Str("component", "twin").Logger()),
	)

	logger.Info().
		Str("addr", cfg.Twin.Addr).
		Bool("seed", cfg.Twin.Seed).
		Bool("api_key", cfg.Twin.APIKey != "").
		Msg("Starting petstore twin")

	return server.Run(cmd.Context(), cfg.Twin.Addr)
}
