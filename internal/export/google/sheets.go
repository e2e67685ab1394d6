// Package google mirrors expense records to a Google Sheets spreadsheet
// using service account credentials.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"fintrack/internal/core"
)

// Config selects the target spreadsheet and the credentials to reach it.
// Exactly one of CredentialsFile and CredentialsJSON must be set.
type Config struct {
	SpreadsheetID   string
	SheetName       string
	CredentialsFile string
	CredentialsJSON string
}

// Appender writes expense rows to one sheet of one spreadsheet.
type Appender struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

// NewAppender creates a sheets client from service account credentials.
func NewAppender(ctx context.Context, cfg Config) (*Appender, error) {
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet ID")
	}
	if strings.TrimSpace(cfg.SheetName) == "" {
		return nil, errors.New("missing sheet name")
	}

	credentialsJSON, err := loadCredentials(cfg)
	if err != nil {
		return nil, err
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	slog.InfoContext(ctx, "Google Sheets service created",
		"spreadsheet_id", cfg.SpreadsheetID,
		"sheet", cfg.SheetName)

	return &Appender{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		sheetName:     cfg.SheetName,
	}, nil
}

func loadCredentials(cfg Config) ([]byte, error) {
	switch {
	case strings.TrimSpace(cfg.CredentialsJSON) != "":
		return []byte(cfg.CredentialsJSON), nil
	case strings.TrimSpace(cfg.CredentialsFile) != "":
		data, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read credentials file: %w", err)
		}
		return data, nil
	default:
		return nil, errors.New("missing service account credentials")
	}
}

// Append writes one expense to the next empty row and returns its range
// reference.
func (a *Appender) Append(ctx context.Context, e core.Expense) (string, error) {
	if err := e.Validate(); err != nil {
		return "", fmt.Errorf("validation failed: %w", err)
	}
	if a.svc == nil {
		return "", errors.New("sheets service not initialized")
	}

	// Find the next empty row from the sheet's current height.
	rng := fmt.Sprintf("%s!A:A", a.sheetName)
	resp, err := a.svc.Spreadsheets.Values.Get(a.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("get sheet dimensions for %s: %w", a.sheetName, err)
	}
	nextRow := len(resp.Values) + 1

	amount := float64(e.Amount.Cents) / 100.0
	dataRange := fmt.Sprintf("%s!A%d:F%d", a.sheetName, nextRow, nextRow)
	vr := &gsheet.ValueRange{Values: [][]any{{
		e.Date.Format("2006-01-02"),
		e.Item,
		e.Category,
		amount,
		e.Currency,
		e.Owner,
	}}}

	_, err = a.svc.Spreadsheets.Values.Update(a.spreadsheetID, dataRange, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("update row in sheet %s: %w", a.sheetName, err)
	}

	return dataRange, nil
}
