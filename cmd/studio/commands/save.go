package commands

import (
	"context"
	"fmt"
	"time"

	"mockupstudio/internal/mockup"
	"mockupstudio/internal/storage"
	"mockupstudio/pkg/zip"
)

// saveResults writes every succeeded mockup of b into dir and, when bundle is
// set, a zip archive holding all of them. It returns the written paths.
func saveResults(ctx context.Context, dir string, b mockup.Batch, bundle bool, now time.Time) ([]string, error) {
	store, err := storage.NewFileStore(dir)
	if err != nil {
		return nil, err
	}

	var (
		paths   []string
		entries []zip.Asset
	)
	for i, job := range b.Jobs {
		if job.Status != mockup.StatusSucceeded || job.Result == nil {
			continue
		}
		name := storage.DownloadName(i, job.Result.Extension(), now)
		if bundle {
			entries = append(entries, zip.Asset{Filename: name, MIME: job.Result.MIME, Data: job.Result.Data})
			continue
		}
		path, err := store.Write(ctx, name, job.Result.Data)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}

	if bundle && len(entries) > 0 {
		payload, err := zip.ArchiveAssets(entries)
		if err != nil {
			return nil, err
		}
		path, err := store.Write(ctx, fmt.Sprintf("mockups-%d.zip", now.UnixMilli()), payload)
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
