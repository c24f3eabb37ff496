package commands

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"mockupstudio/internal/infra"
	"mockupstudio/internal/mockup"
	"mockupstudio/internal/providers/image"
)

// app bundles the wired components shared by every subcommand.
type app struct {
	cfg     *infra.Config
	logger  infra.Logger
	manager *mockup.Manager
	printer *printer
}

// studio is populated by PersistentPreRunE before any subcommand runs.
var studio *app

func init() {
	RootCmd.AddCommand(categoriesCmd)
	RootCmd.AddCommand(checkCmd)
	RootCmd.AddCommand(generateCmd)
	RootCmd.AddCommand(sessionCmd)
}

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "studio",
	Short: "MockupAI Studio - turn artwork into product mockups",
	Long: `MockupAI Studio uploads a logo or artwork, places it onto one of twelve
product categories and generates four photorealistic mockup variations.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := infra.LoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		logger := infra.NewLogger(cfg.AppEnv)

		gen, err := newGenerator(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		studio = newApp(cfg, logger, gen, cmd)

		if err := studio.manager.CheckConfiguration(); err != nil {
			logger.Warn().
				Err(err).
				Str("provider", cfg.Provider).
				Msg("API key is missing; set GEMINI_API_KEY or use MOCKUP_PROVIDER=synthetic")
		}
		return nil
	},
}

func newApp(cfg *infra.Config, logger infra.Logger, gen image.Generator, cmd *cobra.Command) *app {
	p := newPrinter(cmd.OutOrStdout())
	manager := mockup.NewManager(gen, logger, mockup.WithObserver(p.observe))
	p.manager = manager
	return &app{cfg: cfg, logger: logger, manager: manager, printer: p}
}

func newGenerator(ctx context.Context, cfg *infra.Config, logger infra.Logger) (image.Generator, error) {
	switch cfg.Provider {
	case infra.ProviderSynthetic:
		return image.NewSyntheticGenerator(image.SyntheticOptions{
			Delay:       cfg.SyntheticDelay,
			FailureRate: cfg.SyntheticFailureRate,
			Logger:      &logger,
		}), nil
	default:
		gen, err := image.NewGeminiGenerator(ctx, image.GeminiOptions{
			APIKey:     cfg.GeminiAPIKey,
			BaseURL:    cfg.GeminiBaseURL,
			Model:      cfg.GeminiModel,
			HTTPClient: &http.Client{Timeout: cfg.GeminiTimeout},
			Logger:     &logger,
		})
		if err != nil {
			return nil, fmt.Errorf("configure gemini: %w", err)
		}
		return gen, nil
	}
}
