// Package export renders stored records as downloadable CSV and JSON.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"fintrack/internal/core"
)

const dateLayout = "2006-01-02"

// Snapshot is one owner's complete data set at a point in time.
type Snapshot struct {
	Owner      string         `json:"owner"`
	ExportedAt time.Time      `json:"exported_at"`
	Expenses   []core.Expense `json:"expenses"`
	Budgets    []core.Budget  `json:"budgets"`
	Debts      []core.Debt    `json:"debts"`
	Goals      []core.Goal    `json:"goals"`
}

// WriteJSON renders the full snapshot as indented JSON.
func WriteJSON(w io.Writer, snap Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// WriteExpensesCSV renders expenses with one row per record.
func WriteExpensesCSV(w io.Writer, expenses []core.Expense) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "item", "category", "amount", "currency", "created_at"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, e := range expenses {
		record := []string{
			e.Date.Format(dateLayout),
			e.Item,
			e.Category,
			formatAmount(e.Amount),
			e.Currency,
			e.Created.Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write expense row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteBudgetsCSV renders budgets with one row per record.
func WriteBudgetsCSV(w io.Writer, budgets []core.Budget) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"category", "amount", "period", "currency", "created_at"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, b := range budgets {
		record := []string{
			b.Category,
			formatAmount(b.Amount),
			string(b.Period),
			b.Currency,
			b.Created.Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write budget row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteDebtsCSV renders debts with one row per record.
func WriteDebtsCSV(w io.Writer, debts []core.Debt) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"name", "debt_type", "total_amount", "current_balance", "interest_rate", "minimum_payment", "due_date", "created_at"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, d := range debts {
		dueDate := ""
		if !d.DueDate.IsZero() {
			dueDate = d.DueDate.Format(dateLayout)
		}
		record := []string{
			d.Name,
			d.DebtType,
			formatAmount(d.TotalAmount),
			formatAmount(d.CurrentBalance),
			strconv.FormatFloat(d.InterestRate, 'f', 2, 64),
			formatAmount(d.MinimumPayment),
			dueDate,
			d.Created.Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write debt row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteGoalsCSV renders goals with one row per record.
func WriteGoalsCSV(w io.Writer, goals []core.Goal) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"title", "category", "target_amount", "current_amount", "target_date", "created_at"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, g := range goals {
		record := []string{
			g.Title,
			g.Category,
			formatAmount(g.TargetAmount),
			formatAmount(g.CurrentAmount),
			g.TargetDate.Format(dateLayout),
			g.Created.Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write goal row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatAmount(m core.Money) string {
	return strconv.FormatFloat(m.Float(), 'f', 2, 64)
}
