// Package shell implements the interactive menu that drives a ledger.
package shell

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"budget/internal/core"
)

// Prompter reads answers line by line, re-asking until the answer is valid.
// Every method returns io.EOF once the input is exhausted.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// ReadLine prints prompt and returns the next line with surrounding spaces
// removed. A last line without a trailing newline is still returned.
func (p *Prompter) ReadLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// ReadAmount asks until the answer is a non-negative number.
func (p *Prompter) ReadAmount(prompt string) (decimal.Decimal, error) {
	for {
		line, err := p.ReadLine(prompt)
		if err != nil {
			return decimal.Zero, err
		}
		if d, err := core.ParseAmount(line); err == nil {
			return d, nil
		}
		fmt.Fprintln(p.out, "Invalid number, please enter a positive numeric value.")
	}
}

// ReadDate asks until the answer passes core.ValidDate.
func (p *Prompter) ReadDate(prompt string) (string, error) {
	for {
		line, err := p.ReadLine(prompt)
		if err != nil {
			return "", err
		}
		if core.ValidDate(line) {
			return line, nil
		}
		fmt.Fprintln(p.out, "Invalid date format. Please enter in YYYY-MM-DD format.")
	}
}

// ReadYesNo accepts y, yes, n and no in any case.
func (p *Prompter) ReadYesNo(prompt string) (bool, error) {
	for {
		line, err := p.ReadLine(prompt)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(p.out, "Please enter 'y' or 'n'.")
	}
}

// SelectKind asks whether the user means income or expense entries.
func (p *Prompter) SelectKind() (core.Kind, error) {
	for {
		fmt.Fprintln(p.out, "Select transaction type:")
		fmt.Fprintln(p.out, "1. Income")
		fmt.Fprintln(p.out, "2. Expense")
		line, err := p.ReadLine("Enter choice: ")
		if err != nil {
			return "", err
		}
		switch line {
		case "1":
			return core.Income, nil
		case "2":
			return core.Expense, nil
		}
		fmt.Fprintln(p.out, "Invalid option, please enter 1 or 2.")
	}
}
