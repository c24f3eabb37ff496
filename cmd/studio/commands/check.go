package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"mockupstudio/internal/infra"
	"mockupstudio/internal/mockup"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report the active provider and whether it is ready to generate",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return reportConfiguration(cmd.OutOrStdout(), studio.cfg, studio.manager)
	},
}

func reportConfiguration(out io.Writer, cfg *infra.Config, manager *mockup.Manager) error {
	fmt.Fprintf(out, "provider:     %s\n", cfg.Provider)
	if cfg.Provider == infra.ProviderGemini {
		fmt.Fprintf(out, "model:        %s\n", cfg.GeminiModel)
		if cfg.GeminiBaseURL != "" {
			fmt.Fprintf(out, "endpoint:     %s\n", cfg.GeminiBaseURL)
		}
		fmt.Fprintf(out, "timeout:      %s\n", cfg.GeminiTimeout)
		if cfg.HasGeminiCredentials() {
			fmt.Fprintln(out, "api key:      set")
		} else {
			fmt.Fprintln(out, "api key:      missing (GEMINI_API_KEY or API_KEY)")
		}
	}
	fmt.Fprintf(out, "output dir:   %s\n", cfg.OutputDir)
	fmt.Fprintf(out, "upload limit: %.1f MB\n", float64(cfg.MaxUploadBytes)/(1024*1024))

	if err := manager.CheckConfiguration(); err != nil {
		fmt.Fprintln(out, "credentials:  missing (set GEMINI_API_KEY)")
		return err
	}
	fmt.Fprintln(out, "credentials:  ok")
	return nil
}
