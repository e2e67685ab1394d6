// Package storage implements ports.Store on SQLite.
package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"fintrack/internal/core"
	"fintrack/internal/ports"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02 15:04:05"
)

type SQLiteRepository struct {
	db *sql.DB
}

var _ ports.Store = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := migrateSchema(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// migrateSchema brings the schema up to date before the repository takes the
// pool. The migrator closes whatever handle it is given, so it gets a
// throwaway connection to the same file.
func migrateSchema(dbPath string) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("load embedded migrations: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}

	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		db.Close()
		return fmt.Errorf("wrap migration connection: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		db.Close()
		return fmt.Errorf("assemble migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return core.ErrNotFound
	}
	return err
}

// affectedOrNotFound maps a zero-row write to core.ErrNotFound so handlers
// can 404 an edit against someone else's record.
func affectedOrNotFound(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) CreateExpense(ctx context.Context, e core.Expense) (int64, error) {
	if err := e.Validate(); err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (owner, item, amount_cents, category, currency, occurred_on)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.Owner, e.Item, e.Amount.Cents, e.Category, e.Currency, e.Date.Format(dateLayout))
	if err != nil {
		return 0, fmt.Errorf("insert expense: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("expense id: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) UpdateExpense(ctx context.Context, e core.Expense) error {
	if err := e.Validate(); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE expenses SET item = ?, amount_cents = ?, category = ?, currency = ?, occurred_on = ?
		 WHERE id = ? AND owner = ?`,
		e.Item, e.Amount.Cents, e.Category, e.Currency, e.Date.Format(dateLayout), e.ID, e.Owner)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	return affectedOrNotFound(res)
}

func (r *SQLiteRepository) DeleteExpense(ctx context.Context, owner string, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM expenses WHERE id = ? AND owner = ?`, id, owner)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return affectedOrNotFound(res)
}

func (r *SQLiteRepository) GetExpense(ctx context.Context, owner string, id int64) (core.Expense, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, owner, item, amount_cents, category, currency, occurred_on, created_at
		 FROM expenses WHERE id = ? AND owner = ?`, id, owner)
	e, err := scanExpense(row)
	if err != nil {
		return core.Expense{}, notFound(err)
	}
	return e, nil
}

func (r *SQLiteRepository) ListExpenses(ctx context.Context, owner string) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, owner, item, amount_cents, category, currency, occurred_on, created_at
		 FROM expenses WHERE owner = ?
		 ORDER BY occurred_on DESC, created_at DESC, id DESC`, owner)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var out []core.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanExpense(s scanner) (core.Expense, error) {
	var (
		e          core.Expense
		cents      int64
		occurredOn string
		created    string
	)
	if err := s.Scan(&e.ID, &e.Owner, &e.Item, &cents, &e.Category, &e.Currency, &occurredOn, &created); err != nil {
		return core.Expense{}, err
	}
	date, err := time.Parse(dateLayout, occurredOn)
	if err != nil {
		return core.Expense{}, fmt.Errorf("parse occurred_on %q: %w", occurredOn, err)
	}
	createdAt, err := parseTimestamp(created)
	if err != nil {
		return core.Expense{}, err
	}
	e.Amount = core.Money{Cents: cents}
	e.Date = date
	e.Created = createdAt
	return e, nil
}

func (r *SQLiteRepository) CreateBudget(ctx context.Context, b core.Budget) (int64, error) {
	if err := b.Validate(); err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO budgets (owner, category, amount_cents, period, currency)
		 VALUES (?, ?, ?, ?, ?)`,
		b.Owner, b.Category, b.Amount.Cents, string(b.Period), b.Currency)
	if err != nil {
		return 0, fmt.Errorf("insert budget: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("budget id: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) UpdateBudget(ctx context.Context, b core.Budget) error {
	if err := b.Validate(); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE budgets SET category = ?, amount_cents = ?, period = ?, currency = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND owner = ?`,
		b.Category, b.Amount.Cents, string(b.Period), b.Currency, b.ID, b.Owner)
	if err != nil {
		return fmt.Errorf("update budget: %w", err)
	}
	return affectedOrNotFound(res)
}

func (r *SQLiteRepository) DeleteBudget(ctx context.Context, owner string, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM budgets WHERE id = ? AND owner = ?`, id, owner)
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	return affectedOrNotFound(res)
}

func (r *SQLiteRepository) ListBudgets(ctx context.Context, owner string) ([]core.Budget, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, owner, category, amount_cents, period, currency, created_at, updated_at
		 FROM budgets WHERE owner = ?
		 ORDER BY created_at DESC, id DESC`, owner)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	var out []core.Budget
	for rows.Next() {
		var (
			b       core.Budget
			cents   int64
			period  string
			created string
			updated string
		)
		if err := rows.Scan(&b.ID, &b.Owner, &b.Category, &cents, &period, &b.Currency, &created, &updated); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		if b.Created, err = parseTimestamp(created); err != nil {
			return nil, err
		}
		if b.Updated, err = parseTimestamp(updated); err != nil {
			return nil, err
		}
		b.Amount = core.Money{Cents: cents}
		b.Period = core.Period(period)
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateDebt(ctx context.Context, d core.Debt) (int64, error) {
	if err := d.Validate(); err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO debts (owner, name, debt_type, total_amount_cents, current_balance_cents,
		                    interest_rate, minimum_payment_cents, due_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		d.Owner, d.Name, d.DebtType, d.TotalAmount.Cents, d.CurrentBalance.Cents,
		d.InterestRate, d.MinimumPayment.Cents, nullableDate(d.DueDate))
	if err != nil {
		return 0, fmt.Errorf("insert debt: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("debt id: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) UpdateDebt(ctx context.Context, d core.Debt) error {
	if err := d.Validate(); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE debts SET name = ?, debt_type = ?, total_amount_cents = ?, current_balance_cents = ?,
		                  interest_rate = ?, minimum_payment_cents = ?, due_date = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND owner = ?`,
		d.Name, d.DebtType, d.TotalAmount.Cents, d.CurrentBalance.Cents,
		d.InterestRate, d.MinimumPayment.Cents, nullableDate(d.DueDate), d.ID, d.Owner)
	if err != nil {
		return fmt.Errorf("update debt: %w", err)
	}
	return affectedOrNotFound(res)
}

func (r *SQLiteRepository) DeleteDebt(ctx context.Context, owner string, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM debts WHERE id = ? AND owner = ?`, id, owner)
	if err != nil {
		return fmt.Errorf("delete debt: %w", err)
	}
	return affectedOrNotFound(res)
}

func (r *SQLiteRepository) ListDebts(ctx context.Context, owner string) ([]core.Debt, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, owner, name, debt_type, total_amount_cents, current_balance_cents,
		        interest_rate, minimum_payment_cents, due_date, created_at, updated_at
		 FROM debts WHERE owner = ?
		 ORDER BY created_at DESC, id DESC`, owner)
	if err != nil {
		return nil, fmt.Errorf("list debts: %w", err)
	}
	defer rows.Close()

	var out []core.Debt
	for rows.Next() {
		var (
			d       core.Debt
			total   int64
			balance int64
			minimum int64
			due     sql.NullString
			created string
			updated string
		)
		if err := rows.Scan(&d.ID, &d.Owner, &d.Name, &d.DebtType, &total, &balance,
			&d.InterestRate, &minimum, &due, &created, &updated); err != nil {
			return nil, fmt.Errorf("scan debt: %w", err)
		}
		if d.Created, err = parseTimestamp(created); err != nil {
			return nil, err
		}
		if d.Updated, err = parseTimestamp(updated); err != nil {
			return nil, err
		}
		d.TotalAmount = core.Money{Cents: total}
		d.CurrentBalance = core.Money{Cents: balance}
		d.MinimumPayment = core.Money{Cents: minimum}
		if due.Valid {
			date, err := time.Parse(dateLayout, due.String)
			if err != nil {
				return nil, fmt.Errorf("parse due_date %q: %w", due.String, err)
			}
			d.DueDate = date
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// RecordPayment stores the payment and reduces the debt balance in one
// transaction, flooring the balance at zero.
func (r *SQLiteRepository) RecordPayment(ctx context.Context, p core.DebtPayment) (int64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin payment tx: %w", err)
	}
	defer tx.Rollback()

	var balance int64
	err = tx.QueryRowContext(ctx,
		`SELECT current_balance_cents FROM debts WHERE id = ? AND owner = ?`,
		p.DebtID, p.Owner).Scan(&balance)
	if err != nil {
		return 0, notFound(err)
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO debt_payments (owner, debt_id, amount_cents, paid_on)
		 VALUES (?, ?, ?, ?)`,
		p.Owner, p.DebtID, p.Amount.Cents, p.PaidOn.Format(dateLayout))
	if err != nil {
		return 0, fmt.Errorf("insert payment: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("payment id: %w", err)
	}

	balance -= p.Amount.Cents
	if balance < 0 {
		balance = 0
	}
	_, err = tx.ExecContext(ctx,
		`UPDATE debts SET current_balance_cents = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND owner = ?`,
		balance, p.DebtID, p.Owner)
	if err != nil {
		return 0, fmt.Errorf("update debt balance: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit payment tx: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) ListPayments(ctx context.Context, owner string, debtID int64) ([]core.DebtPayment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, owner, debt_id, amount_cents, paid_on, created_at
		 FROM debt_payments WHERE owner = ? AND debt_id = ?
		 ORDER BY paid_on DESC, id DESC`, owner, debtID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var out []core.DebtPayment
	for rows.Next() {
		var (
			p       core.DebtPayment
			cents   int64
			paidOn  string
			created string
		)
		if err := rows.Scan(&p.ID, &p.Owner, &p.DebtID, &cents, &paidOn, &created); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		if p.Created, err = parseTimestamp(created); err != nil {
			return nil, err
		}
		date, err := time.Parse(dateLayout, paidOn)
		if err != nil {
			return nil, fmt.Errorf("parse paid_on %q: %w", paidOn, err)
		}
		p.Amount = core.Money{Cents: cents}
		p.PaidOn = date
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateGoal(ctx context.Context, g core.Goal) (int64, error) {
	if err := g.Validate(); err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO goals (owner, title, category, target_amount_cents, current_amount_cents, target_date)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		g.Owner, g.Title, g.Category, g.TargetAmount.Cents, g.CurrentAmount.Cents,
		g.TargetDate.Format(dateLayout))
	if err != nil {
		return 0, fmt.Errorf("insert goal: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("goal id: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) UpdateGoal(ctx context.Context, g core.Goal) error {
	if err := g.Validate(); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE goals SET title = ?, category = ?, target_amount_cents = ?, current_amount_cents = ?,
		                  target_date = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND owner = ?`,
		g.Title, g.Category, g.TargetAmount.Cents, g.CurrentAmount.Cents,
		g.TargetDate.Format(dateLayout), g.ID, g.Owner)
	if err != nil {
		return fmt.Errorf("update goal: %w", err)
	}
	return affectedOrNotFound(res)
}

func (r *SQLiteRepository) DeleteGoal(ctx context.Context, owner string, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM goals WHERE id = ? AND owner = ?`, id, owner)
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	return affectedOrNotFound(res)
}

func (r *SQLiteRepository) ListGoals(ctx context.Context, owner string) ([]core.Goal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, owner, title, category, target_amount_cents, current_amount_cents,
		        target_date, created_at, updated_at
		 FROM goals WHERE owner = ?
		 ORDER BY created_at DESC, id DESC`, owner)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	var out []core.Goal
	for rows.Next() {
		var (
			g          core.Goal
			target     int64
			current    int64
			targetDate string
			created    string
			updated    string
		)
		if err := rows.Scan(&g.ID, &g.Owner, &g.Title, &g.Category, &target, &current,
			&targetDate, &created, &updated); err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		if g.Created, err = parseTimestamp(created); err != nil {
			return nil, err
		}
		if g.Updated, err = parseTimestamp(updated); err != nil {
			return nil, err
		}
		date, err := time.Parse(dateLayout, targetDate)
		if err != nil {
			return nil, fmt.Errorf("parse target_date %q: %w", targetDate, err)
		}
		g.TargetAmount = core.Money{Cents: target}
		g.CurrentAmount = core.Money{Cents: current}
		g.TargetDate = date
		out = append(out, g)
	}
	return out, rows.Err()
}

func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(timestampLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}

func nullableDate(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format(dateLayout)
}
