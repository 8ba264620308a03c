package storage

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"budget/internal/core"
)

// Header is the first line of a freshly written ledger file.
const Header = "Type,Amount,Source/Category,Date"

// FileExists reports whether something exists at path.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// SaveCSV writes every entry of snap to path.
//
// When appendMode is set and the file already exists the rows are appended
// without a header. Otherwise the file is created or truncated and starts
// with Header. All entries are written on every call, so appending twice
// repeats rows that were saved before.
//
// Labels are written verbatim: a label containing a comma or a newline
// produces a malformed row.
func SaveCSV(path string, snap core.Snapshot, appendMode bool) (err error) {
	exists := FileExists(path)
	writeHeader := !appendMode || !exists

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !writeHeader {
		flags = os.O_WRONLY | os.O_APPEND
	}

	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	w := bufio.NewWriter(f)
	if err := WriteRecords(w, snap.Records(), writeHeader); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}

// WriteRecords writes one line per record, optionally preceded by Header.
func WriteRecords(w io.Writer, records []core.Record, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, Header); err != nil {
			return err
		}
	}
	for _, r := range records {
		if _, err := fmt.Fprintln(w, FormatRecord(r)); err != nil {
			return err
		}
	}
	return nil
}

// FormatRecord renders a record as a data line without the trailing newline.
// The amount keeps its natural decimal form ("2000", "12.5").
func FormatRecord(r core.Record) string {
	return strings.Join(Fields(r), ",")
}

// Fields returns the four columns of a record in Header order.
func Fields(r core.Record) []string {
	return []string{r.Kind.String(), r.Amount.String(), r.Label, r.Date}
}
