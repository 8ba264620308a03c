package amqp

import (
	"encoding/json"
	"time"

	"budget/internal/core"
)

// LedgerSavedMessage announces that the ledger was written to its file.
// Amounts are decimal strings so consumers never see float rounding.
type LedgerSavedMessage struct {
	Path          string    `json:"path"`
	Append        bool      `json:"append"`
	IncomeRows    int       `json:"income_rows"`
	ExpenseRows   int       `json:"expense_rows"`
	TotalIncome   string    `json:"total_income"`
	TotalExpenses string    `json:"total_expenses"`
	BudgetLimit   string    `json:"budget_limit"`
	Exceeded      bool      `json:"exceeded"`
	Timestamp     time.Time `json:"timestamp"`
}

// NewLedgerSavedMessage summarizes snap as saved to path.
func NewLedgerSavedMessage(path string, appendMode bool, snap core.Snapshot) *LedgerSavedMessage {
	expenses := snap.TotalExpenses()
	return &LedgerSavedMessage{
		Path:          path,
		Append:        appendMode,
		IncomeRows:    len(snap.Income),
		ExpenseRows:   len(snap.Expenses),
		TotalIncome:   snap.TotalIncome().String(),
		TotalExpenses: expenses.String(),
		BudgetLimit:   snap.BudgetLimit.String(),
		Exceeded:      expenses.GreaterThan(snap.BudgetLimit),
		Timestamp:     time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *LedgerSavedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// LedgerSavedMessageFromJSON decodes a message published by Client.
func LedgerSavedMessageFromJSON(data []byte) (*LedgerSavedMessage, error) {
	var msg LedgerSavedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
