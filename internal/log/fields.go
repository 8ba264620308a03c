package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldKind      = "kind"
	FieldAmount    = "amount"
	FieldLabel     = "label"
	FieldDate      = "date"
	FieldPath      = "path"
	FieldAppend    = "append"
	FieldRows      = "rows"
	FieldMirror    = "mirror"
	FieldLimit     = "budget_limit"
	FieldExpenses  = "total_expenses"
	FieldExceeded  = "exceeded"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentLedger  = "ledger"
	ComponentShell   = "shell"
	ComponentSave    = "save"
	ComponentStorage = "storage"
	ComponentSheets  = "sheets"
	ComponentAMQP    = "amqp"
	ComponentConfig  = "config"
)

// Operations defines standard operation names
const (
	OpAddEntry = "add_entry"
	OpSetLimit = "set_limit"
	OpCheck    = "check_overrun"
	OpSave     = "save"
	OpMirror   = "mirror"
	OpNotify   = "notify"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithEntry adds the fields describing one ledger entry. The amount is logged
// as its decimal string.
func (f LogFields) WithEntry(kind, amount, label, date string) LogFields {
	f[FieldKind] = kind
	f[FieldAmount] = amount
	f[FieldLabel] = label
	f[FieldDate] = date
	return f
}

// WithSave adds the fields describing a save target.
func (f LogFields) WithSave(path string, appendMode bool, rows int) LogFields {
	f[FieldPath] = path
	f[FieldAppend] = appendMode
	f[FieldRows] = rows
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
