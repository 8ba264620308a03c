package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"budget/internal/core"
	ports "budget/internal/sheets"
	"budget/internal/storage"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// Config selects the spreadsheet and the credentials used to reach it.
type Config struct {
	SpreadsheetID string
	SheetName     string
	// Service account credentials, inline or from a file. When both are empty
	// GOOGLE_APPLICATION_CREDENTIALS is used.
	CredentialsJSON string
	CredentialsFile string
}

// Client mirrors saved ledgers into one sheet of a spreadsheet, using the
// same four columns as the CSV file.
type Client struct {
	values valuesAPI
	sheet  string
}

var _ ports.Mirror = (*Client)(nil)

// valuesAPI is the subset of the Sheets values API the mirror needs.
type valuesAPI interface {
	clear(ctx context.Context, rng string) error
	update(ctx context.Context, rng string, rows [][]any) error
	appendRows(ctx context.Context, rng string, rows [][]any) error
}

func New(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	sheet := strings.TrimSpace(cfg.SheetName)
	if sheet == "" {
		sheet = "Budget"
	}

	svc, err := newSheetsService(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		values: &serviceValues{svc: svc, spreadsheetID: cfg.SpreadsheetID},
		sheet:  sheet,
	}, nil
}

// newSheetsService initializes a Sheets Service using Service Account credentials.
func newSheetsService(ctx context.Context, cfg Config) (*gsheet.Service, error) {
	credentialsFile := strings.TrimSpace(cfg.CredentialsFile)
	if cfg.CredentialsJSON == "" && credentialsFile == "" {
		credentialsFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	switch {
	case cfg.CredentialsJSON != "":
		credentialsJSON = []byte(cfg.CredentialsJSON)
	case credentialsFile != "":
		b, err := os.ReadFile(credentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		credentialsJSON = b
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	slog.InfoContext(ctx, "Creating Google Sheets service",
		"credentials_size", len(credentialsJSON),
		"scope", gsheet.SpreadsheetsScope)

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

func (c *Client) Name() string {
	return "sheets"
}

// Mirror replaces the sheet content with a header and every entry, or, in
// append mode, adds the entries after the last used row.
func (c *Client) Mirror(ctx context.Context, snap core.Snapshot, appendMode bool) error {
	if c.values == nil {
		return errors.New("sheets service not initialized")
	}
	rng := fmt.Sprintf("%s!A:D", c.sheet)
	records := snap.Records()

	if appendMode {
		if len(records) == 0 {
			return nil
		}
		if err := c.values.appendRows(ctx, rng, valueRows(records, false)); err != nil {
			return fmt.Errorf("append rows to %s: %w", c.sheet, err)
		}
	} else {
		if err := c.values.clear(ctx, rng); err != nil {
			return fmt.Errorf("clear %s: %w", c.sheet, err)
		}
		start := fmt.Sprintf("%s!A1", c.sheet)
		if err := c.values.update(ctx, start, valueRows(records, true)); err != nil {
			return fmt.Errorf("write %s: %w", c.sheet, err)
		}
	}

	slog.InfoContext(ctx, "Ledger mirrored to Google Sheets",
		"sheet", c.sheet,
		"rows", len(records),
		"append", appendMode)
	return nil
}

// valueRows converts records into sheet rows, with the CSV header first when
// header is set.
func valueRows(records []core.Record, header bool) [][]any {
	out := make([][]any, 0, len(records)+1)
	if header {
		out = append(out, toAny(strings.Split(storage.Header, ",")))
	}
	for _, r := range records {
		out = append(out, toAny(storage.Fields(r)))
	}
	return out
}

func toAny(in []string) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}

type serviceValues struct {
	svc           *gsheet.Service
	spreadsheetID string
}

func (s *serviceValues) clear(ctx context.Context, rng string) error {
	_, err := s.svc.Spreadsheets.Values.Clear(s.spreadsheetID, rng, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do()
	return err
}

func (s *serviceValues) update(ctx context.Context, rng string, rows [][]any) error {
	_, err := s.svc.Spreadsheets.Values.Update(s.spreadsheetID, rng, &gsheet.ValueRange{Values: rows}).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	return err
}

func (s *serviceValues) appendRows(ctx context.Context, rng string, rows [][]any) error {
	_, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, rng, &gsheet.ValueRange{Values: rows}).
		ValueInputOption("USER_ENTERED").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	return err
}
