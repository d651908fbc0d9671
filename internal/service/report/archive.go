package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/qssun/attendance-backend-go/internal/domain/report"
	"github.com/qssun/attendance-backend-go/internal/pkg/storage"
)

const archivePrefix = "monthly"

type archive struct {
	store storage.FileStorage
}

// NewArchiveService creates a report archive backed by a file store.
func NewArchiveService(store storage.FileStorage) report.ArchiveService {
	return &archive{store: store}
}

func archiveKey(period string) string {
	return path.Join(archivePrefix, period+".json")
}

// Save implements report.ArchiveService.
func (a *archive) Save(ctx context.Context, r report.Report) (string, error) {
	from, err := time.Parse(dayFormat, r.FromDay)
	if err != nil {
		return "", fmt.Errorf("invalid report period start %q: %w", r.FromDay, err)
	}
	period := from.Format("2006-01")

	body, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}

	if _, err := a.store.Upload(ctx, bytes.NewReader(body), archiveKey(period), "application/json"); err != nil {
		return "", fmt.Errorf("store report: %w", err)
	}
	return period, nil
}

// List implements report.ArchiveService.
func (a *archive) List(ctx context.Context) ([]string, error) {
	keys, err := a.store.List(ctx, archivePrefix)
	if err != nil {
		return nil, fmt.Errorf("list archived reports: %w", err)
	}

	periods := make([]string, 0, len(keys))
	for _, key := range keys {
		name := path.Base(key)
		if !strings.HasSuffix(name, ".json") {
			continue
		}
		periods = append(periods, strings.TrimSuffix(name, ".json"))
	}
	return periods, nil
}

// Get implements report.ArchiveService.
func (a *archive) Get(ctx context.Context, period string) (report.Report, error) {
	exists, err := a.store.Exists(ctx, archiveKey(period))
	if err != nil {
		return report.Report{}, err
	}
	if !exists {
		return report.Report{}, report.ErrArchivedNotFound
	}

	rc, err := a.store.Download(ctx, archiveKey(period))
	if err != nil {
		return report.Report{}, fmt.Errorf("load archived report: %w", err)
	}
	defer rc.Close()

	var r report.Report
	if err := json.NewDecoder(rc).Decode(&r); err != nil {
		return report.Report{}, fmt.Errorf("decode archived report: %w", err)
	}
	return r, nil
}
