package core

import "github.com/shopspring/decimal"

// DefaultBudgetLimit is the limit a fresh ledger starts with.
var DefaultBudgetLimit = decimal.NewFromInt(1000)

// Ledger holds the budget limit and the income and expense entries recorded
// during a session. Entries keep insertion order and are never edited.
//
// A Ledger is meant to be driven by a single goroutine. Code that needs to
// read it concurrently takes a Snapshot first.
type Ledger struct {
	budgetLimit decimal.Decimal
	income      []Entry
	expenses    []Entry
}

// NewLedger returns an empty ledger with the given budget limit.
func NewLedger(limit decimal.Decimal) *Ledger {
	return &Ledger{budgetLimit: limit}
}

// AddIncome appends an income entry. Amount and date are expected to be
// validated by the caller.
func (l *Ledger) AddIncome(amount decimal.Decimal, source, date string) {
	l.income = append(l.income, Entry{Amount: amount, Label: source, Date: date})
}

// AddExpense appends an expense entry.
func (l *Ledger) AddExpense(amount decimal.Decimal, category, date string) {
	l.expenses = append(l.expenses, Entry{Amount: amount, Label: category, Date: date})
}

func (l *Ledger) TotalIncome() decimal.Decimal {
	return sum(l.income)
}

func (l *Ledger) TotalExpenses() decimal.Decimal {
	return sum(l.expenses)
}

// RemainingBudget is total income minus total expenses. It does not look at
// the budget limit and can be negative.
func (l *Ledger) RemainingBudget() decimal.Decimal {
	return l.TotalIncome().Sub(l.TotalExpenses())
}

func (l *Ledger) BudgetLimit() decimal.Decimal {
	return l.budgetLimit
}

// SetBudgetLimit replaces the limit used by CheckOverrun.
func (l *Ledger) SetBudgetLimit(limit decimal.Decimal) {
	l.budgetLimit = limit
}

// CheckOverrun compares total expenses with the budget limit. Expenses equal
// to the limit are still within budget.
func (l *Ledger) CheckOverrun() OverrunStatus {
	total := l.TotalExpenses()
	return OverrunStatus{
		Exceeded:      total.GreaterThan(l.budgetLimit),
		TotalExpenses: total,
		BudgetLimit:   l.budgetLimit,
	}
}

// Len returns the number of entries of the given kind.
func (l *Ledger) Len(k Kind) int {
	switch k {
	case Income:
		return len(l.income)
	case Expense:
		return len(l.expenses)
	}
	return 0
}

// Snapshot copies the current state of the ledger.
func (l *Ledger) Snapshot() Snapshot {
	return Snapshot{
		BudgetLimit: l.budgetLimit,
		Income:      append([]Entry(nil), l.income...),
		Expenses:    append([]Entry(nil), l.expenses...),
	}
}

// Snapshot is a read-only copy of a Ledger, safe to share between goroutines.
type Snapshot struct {
	BudgetLimit decimal.Decimal
	Income      []Entry
	Expenses    []Entry
}

// Records lists income entries followed by expense entries, each in
// insertion order. This is the row order of every persisted form.
func (s Snapshot) Records() []Record {
	out := make([]Record, 0, len(s.Income)+len(s.Expenses))
	for _, e := range s.Income {
		out = append(out, Record{Kind: Income, Entry: e})
	}
	for _, e := range s.Expenses {
		out = append(out, Record{Kind: Expense, Entry: e})
	}
	return out
}

func (s Snapshot) TotalIncome() decimal.Decimal {
	return sum(s.Income)
}

func (s Snapshot) TotalExpenses() decimal.Decimal {
	return sum(s.Expenses)
}

func sum(entries []Entry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Amount)
	}
	return total
}
