package google

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"budget/internal/core"
)

type call struct {
	op   string
	rng  string
	rows [][]any
}

type fakeValues struct {
	calls []call
	err   error
}

func (f *fakeValues) clear(_ context.Context, rng string) error {
	f.calls = append(f.calls, call{op: "clear", rng: rng})
	return f.err
}

func (f *fakeValues) update(_ context.Context, rng string, rows [][]any) error {
	f.calls = append(f.calls, call{op: "update", rng: rng, rows: rows})
	return f.err
}

func (f *fakeValues) appendRows(_ context.Context, rng string, rows [][]any) error {
	f.calls = append(f.calls, call{op: "append", rng: rng, rows: rows})
	return f.err
}

func snapshot() core.Snapshot {
	l := core.NewLedger(core.DefaultBudgetLimit)
	l.AddIncome(decimal.RequireFromString("2000.00"), "Salary", "2024-01-15")
	l.AddExpense(decimal.RequireFromString("7.5"), "Food", "2024-01-16")
	return l.Snapshot()
}

func TestMirrorReplaceWritesHeader(t *testing.T) {
	fv := &fakeValues{}
	c := &Client{values: fv, sheet: "Budget"}
	if err := c.Mirror(context.Background(), snapshot(), false); err != nil {
		t.Fatalf("mirror: %v", err)
	}
	if len(fv.calls) != 2 || fv.calls[0].op != "clear" || fv.calls[0].rng != "Budget!A:D" {
		t.Fatalf("unexpected calls: %+v", fv.calls)
	}
	up := fv.calls[1]
	if up.op != "update" || up.rng != "Budget!A1" || len(up.rows) != 3 {
		t.Fatalf("unexpected update: %+v", up)
	}
	if up.rows[0][0] != "Type" || up.rows[0][2] != "Source/Category" {
		t.Fatalf("unexpected header row: %v", up.rows[0])
	}
	if up.rows[1][0] != "Income" || up.rows[1][1] != "2000" || up.rows[2][1] != "7.5" {
		t.Fatalf("unexpected data rows: %v", up.rows[1:])
	}
}

func TestMirrorAppendSkipsHeader(t *testing.T) {
	fv := &fakeValues{}
	c := &Client{values: fv, sheet: "Budget"}
	if err := c.Mirror(context.Background(), snapshot(), true); err != nil {
		t.Fatalf("mirror: %v", err)
	}
	if len(fv.calls) != 1 || fv.calls[0].op != "append" || len(fv.calls[0].rows) != 2 {
		t.Fatalf("unexpected calls: %+v", fv.calls)
	}
	if fv.calls[0].rows[0][0] != "Income" {
		t.Fatalf("append must not include the header: %v", fv.calls[0].rows[0])
	}
}

func TestMirrorAppendEmptyIsNoop(t *testing.T) {
	fv := &fakeValues{}
	c := &Client{values: fv, sheet: "Budget"}
	if err := c.Mirror(context.Background(), core.Snapshot{}, true); err != nil {
		t.Fatalf("mirror: %v", err)
	}
	if len(fv.calls) != 0 {
		t.Fatalf("expected no calls, got %+v", fv.calls)
	}
}

func TestMirrorErrors(t *testing.T) {
	boom := errors.New("quota exceeded")
	c := &Client{values: &fakeValues{err: boom}, sheet: "Budget"}
	if err := c.Mirror(context.Background(), snapshot(), false); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	if err := (&Client{}).Mirror(context.Background(), snapshot(), false); err == nil {
		t.Fatal("expected error for uninitialized client")
	}
}

func TestNewRequiresSpreadsheetID(t *testing.T) {
	if _, err := New(context.Background(), Config{}); err == nil {
		t.Fatal("expected error without spreadsheet id")
	}
}

func TestNewRequiresCredentials(t *testing.T) {
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")
	if _, err := New(context.Background(), Config{SpreadsheetID: "abc"}); err == nil {
		t.Fatal("expected error without credentials")
	}
}
