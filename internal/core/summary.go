package core

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// OverrunStatus is the outcome of Ledger.CheckOverrun.
type OverrunStatus struct {
	Exceeded      bool
	TotalExpenses decimal.Decimal
	BudgetLimit   decimal.Decimal
}

func (s OverrunStatus) String() string {
	state := "within budget"
	if s.Exceeded {
		state = "exceeded"
	}
	return fmt.Sprintf("%s (expenses=%s, budget=%s)", state, FormatMoney(s.TotalExpenses), FormatMoney(s.BudgetLimit))
}

// SummaryRow is one line of a summary listing. Index starts at 1.
type SummaryRow struct {
	Index int
	Entry
}

// Summary is the projection shown by the display command.
type Summary struct {
	Income          []SummaryRow
	Expenses        []SummaryRow
	TotalIncome     decimal.Decimal
	TotalExpenses   decimal.Decimal
	RemainingBudget decimal.Decimal
}

// Summary lists both sequences followed by the three totals.
func (l *Ledger) Summary() Summary {
	return Summary{
		Income:          rows(l.income),
		Expenses:        rows(l.expenses),
		TotalIncome:     l.TotalIncome(),
		TotalExpenses:   l.TotalExpenses(),
		RemainingBudget: l.RemainingBudget(),
	}
}

func rows(entries []Entry) []SummaryRow {
	out := make([]SummaryRow, len(entries))
	for i, e := range entries {
		out[i] = SummaryRow{Index: i + 1, Entry: e}
	}
	return out
}
