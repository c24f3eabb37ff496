package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"mockupstudio/internal/domain"
	"mockupstudio/internal/mockup"
	"mockupstudio/internal/upload"
)

// flag names
const (
	flagImage       = "image"
	flagCategory    = "category"
	flagDescription = "description"
	flagOut         = "out"
	flagZip         = "zip"
	flagRedoFailed  = "redo-failed"
)

func init() {
	generateCmd.Flags().StringP(flagImage, "i", "", "Path to the logo or artwork (PNG or JPEG)")
	generateCmd.Flags().StringP(flagCategory, "c", string(domain.CategoryTShirt), "Product category (see 'studio categories')")
	generateCmd.Flags().StringP(flagDescription, "d", "", "Optional styling hint, e.g. \"on a marble table\"")
	generateCmd.Flags().StringP(flagOut, "o", "", "Directory to save mockups into (env: MOCKUP_OUTPUT_DIR)")
	generateCmd.Flags().Bool(flagZip, false, "Save all mockups as a single zip archive")
	generateCmd.Flags().Int(flagRedoFailed, 0, "Redo failed mockups up to this many rounds")
	_ = generateCmd.MarkFlagRequired(flagImage)
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate four mockups for an artwork and save them",
	RunE: func(cmd *cobra.Command, _ []string) error {
		imagePath, _ := cmd.Flags().GetString(flagImage)
		categoryName, _ := cmd.Flags().GetString(flagCategory)
		description, _ := cmd.Flags().GetString(flagDescription)
		outDir, _ := cmd.Flags().GetString(flagOut)
		bundle, _ := cmd.Flags().GetBool(flagZip)
		redoRounds, _ := cmd.Flags().GetInt(flagRedoFailed)

		if outDir == "" {
			outDir = studio.cfg.OutputDir
		}

		source, err := upload.LoadFile(imagePath, studio.cfg.MaxUploadBytes)
		if err != nil {
			return err
		}
		category, err := domain.ParseCategory(categoryName)
		if err != nil {
			return err
		}

		b, err := runBatch(cmd.Context(), studio, mockup.Input{
			Source:      source,
			Category:    category,
			Description: description,
		}, redoRounds)
		if err != nil {
			return err
		}
		studio.printer.batch(b)

		paths, err := saveResults(cmd.Context(), outDir, b, bundle, time.Now())
		if err != nil {
			return fmt.Errorf("save mockups: %w", err)
		}
		for _, p := range paths {
			studio.printer.printf("saved %s\n", p)
		}
		if _, succeeded, _ := b.Counts(); succeeded == 0 {
			return errors.New("no mockup could be generated")
		}
		return nil
	},
}

// runBatch starts a batch, waits for it to settle and re-issues failed jobs
// for up to redoRounds rounds.
func runBatch(ctx context.Context, a *app, in mockup.Input, redoRounds int) (mockup.Batch, error) {
	h, err := a.manager.StartBatch(ctx, in)
	if err != nil {
		return mockup.Batch{}, err
	}
	if err := h.Wait(ctx); err != nil {
		return mockup.Batch{}, err
	}
	b, err := h.WaitSettled(ctx)
	if err != nil {
		return mockup.Batch{}, err
	}

	for round := 0; round < redoRounds; round++ {
		redone := 0
		for _, job := range b.Jobs {
			if job.Status != mockup.StatusFailed {
				continue
			}
			if err := a.manager.RedoJob(ctx, h.ID(), job.ID); err != nil {
				return b, err
			}
			redone++
		}
		if redone == 0 {
			break
		}
		a.logger.Debug().Int("round", round+1).Int("jobs", redone).Msg("studio: redoing failed mockups")
		if b, err = h.WaitSettled(ctx); err != nil {
			return mockup.Batch{}, err
		}
	}
	return b, nil
}
