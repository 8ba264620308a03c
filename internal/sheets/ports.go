package sheets

import (
	"context"

	"budget/internal/core"
)

// Ports for outbound adapters.
type (
	// Mirror receives a copy of the ledger every time it is saved. appendMode
	// has the same meaning as for the CSV file: add rows instead of replacing.
	Mirror interface {
		Name() string
		Mirror(ctx context.Context, snap core.Snapshot, appendMode bool) error
	}
)
