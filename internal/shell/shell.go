package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"budget/internal/core"
	"budget/internal/log"
	"budget/internal/services"
	"budget/internal/storage"
)

// Saver persists the ledger. *services.SaveService implements it.
type Saver interface {
	Save(ctx context.Context, l *core.Ledger, path string, appendMode bool) (services.SaveReport, error)
}

// Shell is the nine-option menu loop around a single ledger.
type Shell struct {
	prompt *Prompter
	out    io.Writer
	ledger *core.Ledger
	saver  Saver
	path   string
}

func New(in io.Reader, out io.Writer, ledger *core.Ledger, saver Saver, path string) *Shell {
	return &Shell{
		prompt: NewPrompter(in, out),
		out:    out,
		ledger: ledger,
		saver:  saver,
		path:   path,
	}
}

const menu = `
Select an option:
1. Add Income/Budget
2. Add Expense
3. Display Data
4. Save Data to CSV
5. Edit Entry
6. Remove Entry
7. Check if Expenses Exceed Budget
8. Enter Previous Budget
9. Exit`

// Run shows the menu until the user exits, the input ends or ctx is done.
// Reaching the end of the input is a normal exit.
func (s *Shell) Run(ctx context.Context) error {
	logger := log.FromContext(ctx).WithComponent(log.ComponentShell)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprintln(s.out, menu)
		choice, err := s.prompt.ReadLine("Enter choice: ")
		if err != nil {
			return endOfInput(err)
		}
		logger.DebugContext(ctx, "Menu choice", "choice", choice)

		switch choice {
		case "1":
			err = s.addEntry(ctx, core.Income)
		case "2":
			err = s.addEntry(ctx, core.Expense)
		case "3":
			s.display()
		case "4":
			err = s.save(ctx)
		case "5":
			err = s.stub("edit")
		case "6":
			err = s.stub("remove")
		case "7":
			s.checkOverrun(ctx)
		case "8":
			err = s.setLimit(ctx)
		case "9":
			fmt.Fprintln(s.out, "Exiting program.")
			return nil
		default:
			fmt.Fprintln(s.out, "Invalid option, please try again.")
		}
		if err != nil {
			return endOfInput(err)
		}
	}
}

func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (s *Shell) addEntry(ctx context.Context, kind core.Kind) error {
	noun, labelPrompt := "income", "Enter income source: "
	if kind == core.Expense {
		noun, labelPrompt = "expense", "Enter expense category: "
	}

	amount, err := s.prompt.ReadAmount(fmt.Sprintf("Enter %s amount: ", noun))
	if err != nil {
		return err
	}
	label, err := s.prompt.ReadLine(labelPrompt)
	if err != nil {
		return err
	}
	date, err := s.prompt.ReadDate("Enter date (YYYY-MM-DD): ")
	if err != nil {
		return err
	}

	if kind == core.Income {
		s.ledger.AddIncome(amount, label, date)
		fmt.Fprintln(s.out, "Income added.")
	} else {
		s.ledger.AddExpense(amount, label, date)
		fmt.Fprintln(s.out, "Expense added.")
	}

	log.FromContext(ctx).WithComponent(log.ComponentLedger).InfoContext(ctx, "Entry added",
		log.NewFields().WithOperation(log.OpAddEntry).
			WithEntry(kind.String(), amount.String(), label, date).ToSlice()...)
	return nil
}

func (s *Shell) display() {
	sum := s.ledger.Summary()
	s.printRows("Income", "No income records.", "from", sum.Income)
	s.printRows("Expenses", "No expense records.", "for", sum.Expenses)
	fmt.Fprintf(s.out, "\nTotal Income: $%s\n", core.FormatMoney(sum.TotalIncome))
	fmt.Fprintf(s.out, "Total Expenses: $%s\n", core.FormatMoney(sum.TotalExpenses))
	fmt.Fprintf(s.out, "Remaining Budget: $%s\n", core.FormatMoney(sum.RemainingBudget))
}

func (s *Shell) printRows(title, empty, preposition string, rows []core.SummaryRow) {
	fmt.Fprintf(s.out, "\n--- %s ---\n", title)
	if len(rows) == 0 {
		fmt.Fprintln(s.out, empty)
		return
	}
	for _, r := range rows {
		fmt.Fprintf(s.out, "%d: $%s %s '%s' on %s\n", r.Index, core.FormatMoney(r.Amount), preposition, r.Label, r.Date)
	}
}

func (s *Shell) save(ctx context.Context) error {
	appendMode := false
	if storage.FileExists(s.path) {
		var err error
		if appendMode, err = s.prompt.ReadYesNo("CSV file exists. Append data? (y/n): "); err != nil {
			return err
		}
	}

	ok, err := s.prompt.ReadYesNo("Do you want to save data to CSV? (y/n): ")
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(s.out, "Save canceled.")
		return nil
	}

	report, err := s.saver.Save(ctx, s.ledger, s.path, appendMode)
	if err != nil {
		fmt.Fprintf(s.out, "Failed to save data: %v\n", err)
		return nil
	}
	fmt.Fprintf(s.out, "Data saved successfully to '%s'.\n", s.path)

	names := make([]string, 0, len(report.MirrorErrors))
	for name := range report.MirrorErrors {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(s.out, "Warning: %s mirror was not updated: %v\n", name, report.MirrorErrors[name])
	}
	if report.NotifyError != nil {
		fmt.Fprintf(s.out, "Warning: save notification was not sent: %v\n", report.NotifyError)
	}
	return nil
}

// stub backs the edit and remove menu entries, which only show the data.
func (s *Shell) stub(action string) error {
	kind, err := s.prompt.SelectKind()
	if err != nil {
		return err
	}
	if s.ledger.Len(kind) == 0 {
		fmt.Fprintf(s.out, "No %s records to %s.\n", strings.ToLower(kind.String()), action)
		return nil
	}
	s.display()
	fmt.Fprintf(s.out, "Entries cannot be %s yet.\n", pastTense(action))
	return nil
}

func pastTense(action string) string {
	if strings.HasSuffix(action, "e") {
		return action + "d"
	}
	return action + "ed"
}

func (s *Shell) checkOverrun(ctx context.Context) {
	st := s.ledger.CheckOverrun()
	if st.Exceeded {
		fmt.Fprintf(s.out, "Warning: You have exceeded your budget! Total Expenses: $%s, Budget: $%s\n",
			core.FormatMoney(st.TotalExpenses), core.FormatMoney(st.BudgetLimit))
	} else {
		fmt.Fprintf(s.out, "Your expenses are within the budget. Total Expenses: $%s, Budget: $%s\n",
			core.FormatMoney(st.TotalExpenses), core.FormatMoney(st.BudgetLimit))
	}
	log.FromContext(ctx).WithComponent(log.ComponentLedger).DebugContext(ctx, "Overrun checked",
		log.FieldOperation, log.OpCheck,
		log.FieldExpenses, st.TotalExpenses.String(),
		log.FieldLimit, st.BudgetLimit.String(),
		log.FieldExceeded, st.Exceeded)
}

func (s *Shell) setLimit(ctx context.Context) error {
	limit, err := s.prompt.ReadAmount("Enter your previous budget: ")
	if err != nil {
		return err
	}
	s.ledger.SetBudgetLimit(limit)
	fmt.Fprintf(s.out, "Previous budget of $%s set.\n", core.FormatMoney(limit))
	log.FromContext(ctx).WithComponent(log.ComponentLedger).InfoContext(ctx, "Budget limit set",
		log.FieldOperation, log.OpSetLimit, log.FieldLimit, limit.String())
	return nil
}
