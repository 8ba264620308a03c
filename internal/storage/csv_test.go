package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"budget/internal/core"
)

func sampleLedger() *core.Ledger {
	l := core.NewLedger(core.DefaultBudgetLimit)
	l.AddIncome(decimal.RequireFromString("2000.0"), "Salary", "2024-01-15")
	l.AddExpense(decimal.RequireFromString("500"), "Rent", "2024-01-16")
	l.AddExpense(decimal.RequireFromString("12.50"), "Food", "2024-01-17")
	return l
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return strings.Split(strings.TrimSuffix(string(b), "\n"), "\n")
}

func TestSaveCSVFreshFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "budget_data.csv")
	if err := SaveCSV(path, sampleLedger().Snapshot(), false); err != nil {
		t.Fatalf("save: %v", err)
	}
	got := readLines(t, path)
	want := []string{
		"Type,Amount,Source/Category,Date",
		"Income,2000,Salary,2024-01-15",
		"Expense,500,Rent,2024-01-16",
		"Expense,12.5,Food,2024-01-17",
	}
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("unexpected file:\n%s", strings.Join(got, "\n"))
	}
}

func TestSaveCSVAppendToMissingFileWritesHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.csv")
	if err := SaveCSV(path, sampleLedger().Snapshot(), true); err != nil {
		t.Fatalf("save: %v", err)
	}
	got := readLines(t, path)
	if got[0] != Header || len(got) != 4 {
		t.Fatalf("expected header and 3 rows, got %v", got)
	}
}

func TestSaveCSVAppendDuplicatesRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "budget_data.csv")
	snap := sampleLedger().Snapshot()
	if err := SaveCSV(path, snap, false); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := SaveCSV(path, snap, true); err != nil {
		t.Fatalf("append save: %v", err)
	}
	got := readLines(t, path)
	if len(got) != 1+3+3 {
		t.Fatalf("expected 7 lines, got %d: %v", len(got), got)
	}
	headers := 0
	for _, line := range got {
		if line == Header {
			headers++
		}
	}
	if headers != 1 {
		t.Fatalf("header written %d times", headers)
	}
	if got[4] != "Income,2000,Salary,2024-01-15" {
		t.Fatalf("appended rows should repeat the ledger, got %q", got[4])
	}
}

func TestSaveCSVOverwriteTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "budget_data.csv")
	if err := os.WriteFile(path, []byte("old content\nmore\nand more\nand more\nand more\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	l := core.NewLedger(core.DefaultBudgetLimit)
	l.AddIncome(decimal.NewFromInt(1), "Gift", "2024-05-05")
	if err := SaveCSV(path, l.Snapshot(), false); err != nil {
		t.Fatalf("save: %v", err)
	}
	got := readLines(t, path)
	if len(got) != 2 || got[0] != Header || got[1] != "Income,1,Gift,2024-05-05" {
		t.Fatalf("unexpected file: %v", got)
	}
}

func TestSaveCSVEmptyLedger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := SaveCSV(path, core.NewLedger(core.DefaultBudgetLimit).Snapshot(), false); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := readLines(t, path); len(got) != 1 || got[0] != Header {
		t.Fatalf("expected only header, got %v", got)
	}
}

func TestSaveCSVInvalidPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "budget.csv")
	l := sampleLedger()
	before := l.Snapshot()
	if err := SaveCSV(path, before, false); err == nil {
		t.Fatal("expected error for missing directory")
	}
	if FileExists(path) {
		t.Fatal("file should not exist")
	}
	if len(l.Snapshot().Records()) != len(before.Records()) {
		t.Fatal("ledger changed after failed save")
	}
}

func TestFormatRecordDoesNotQuote(t *testing.T) {
	r := core.Record{Kind: core.Expense, Entry: core.Entry{Amount: decimal.RequireFromString("3.10"), Label: "Food, drinks", Date: "2024-01-01"}}
	if got := FormatRecord(r); got != "Expense,3.1,Food, drinks,2024-01-01" {
		t.Fatalf("got %q", got)
	}
}
