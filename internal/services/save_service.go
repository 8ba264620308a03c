package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"budget/internal/core"
	"budget/internal/log"
	"budget/internal/sheets"
	"budget/internal/storage"
)

// DefaultMirrorTimeout bounds the time a save waits for its mirrors.
const DefaultMirrorTimeout = 30 * time.Second

// Notifier is told about every successful save.
type Notifier interface {
	PublishLedgerSaved(ctx context.Context, path string, appendMode bool, snap core.Snapshot) error
}

// SaveReport describes what a Save call did besides writing the file.
type SaveReport struct {
	Path string
	// Appended is true when rows were added to an existing file without a header.
	Appended bool
	Rows     int
	// MirrorErrors holds the failures of individual mirrors, by mirror name.
	MirrorErrors map[string]error
	NotifyError  error
}

// Degraded reports whether the file was saved but a mirror or the
// notification failed.
func (r SaveReport) Degraded() bool {
	return len(r.MirrorErrors) > 0 || r.NotifyError != nil
}

// SaveService writes the ledger file and then propagates the saved state to
// the configured mirrors and notifier.
type SaveService struct {
	mirrors       []sheets.Mirror
	notifier      Notifier
	mirrorTimeout time.Duration
}

// NewSaveService builds a SaveService. Both mirrors and notifier are optional.
func NewSaveService(mirrors []sheets.Mirror, notifier Notifier, mirrorTimeout time.Duration) *SaveService {
	if mirrorTimeout <= 0 {
		mirrorTimeout = DefaultMirrorTimeout
	}
	return &SaveService{
		mirrors:       mirrors,
		notifier:      notifier,
		mirrorTimeout: mirrorTimeout,
	}
}

// Save writes l to path. The returned error only reflects the file write;
// mirror and notification failures are logged and listed in the report.
func (s *SaveService) Save(ctx context.Context, l *core.Ledger, path string, appendMode bool) (SaveReport, error) {
	logger := log.FromContext(ctx).WithComponent(log.ComponentSave)
	snap := l.Snapshot()
	appended := appendMode && storage.FileExists(path)

	report := SaveReport{
		Path:     path,
		Appended: appended,
		Rows:     len(snap.Income) + len(snap.Expenses),
	}
	fields := log.NewFields().WithOperation(log.OpSave).WithSave(path, appended, report.Rows)

	if err := storage.SaveCSV(path, snap, appendMode); err != nil {
		logger.ErrorContext(ctx, "Failed to save ledger", fields.WithError(err).ToSlice()...)
		return report, fmt.Errorf("save ledger: %w", err)
	}
	logger.InfoContext(ctx, "Ledger saved", fields.ToSlice()...)

	report.MirrorErrors = s.mirror(ctx, logger, snap, appended)

	if s.notifier != nil {
		if err := s.notifier.PublishLedgerSaved(ctx, path, appended, snap); err != nil {
			logger.WarnContext(ctx, "Failed to publish save notification",
				log.FieldOperation, log.OpNotify, log.FieldError, err)
			report.NotifyError = err
		}
	}

	return report, nil
}

// mirror runs every mirror concurrently on the same snapshot. A failing
// mirror does not cancel the others.
func (s *SaveService) mirror(ctx context.Context, logger *log.Logger, snap core.Snapshot, appendMode bool) map[string]error {
	if len(s.mirrors) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.mirrorTimeout)
	defer cancel()

	errs := make([]error, len(s.mirrors))
	var g errgroup.Group
	for i, m := range s.mirrors {
		g.Go(func() error {
			errs[i] = m.Mirror(ctx, snap, appendMode)
			return nil
		})
	}
	_ = g.Wait()

	var failed map[string]error
	for i, err := range errs {
		if err == nil {
			continue
		}
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("timed out after %s: %w", s.mirrorTimeout, err)
		}
		name := s.mirrors[i].Name()
		logger.WarnContext(ctx, "Mirror failed",
			log.FieldOperation, log.OpMirror, log.FieldMirror, name, log.FieldError, err)
		if failed == nil {
			failed = make(map[string]error)
		}
		failed[name] = err
	}
	return failed
}
