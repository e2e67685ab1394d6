package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Weekly    Period = "weekly"
	Monthly   Period = "monthly"
	Quarterly Period = "quarterly"
	Yearly    Period = "yearly"
)

type (
	// Period is the trailing window a budget is measured against.
	Period string

	Money struct {
		Cents int64
	}

	Expense struct {
		ID       int64
		Owner    string
		Item     string
		Amount   Money
		Category string
		Currency string
		Date     time.Time // calendar date the expense occurred on
		Created  time.Time
	}

	Budget struct {
		ID       int64
		Owner    string
		Category string
		Amount   Money
		Period   Period
		Currency string
		Created  time.Time
		Updated  time.Time
	}

	Debt struct {
		ID             int64
		Owner          string
		Name           string
		DebtType       string
		TotalAmount    Money
		CurrentBalance Money
		InterestRate   float64 // annual percentage, 0 when unknown
		MinimumPayment Money
		DueDate        time.Time // zero when no due date
		Created        time.Time
		Updated        time.Time
	}

	DebtPayment struct {
		ID      int64
		Owner   string
		DebtID  int64
		Amount  Money
		PaidOn  time.Time
		Created time.Time
	}

	Goal struct {
		ID            int64
		Owner         string
		Title         string
		Category      string
		TargetAmount  Money
		CurrentAmount Money
		TargetDate    time.Time
		Created       time.Time
		Updated       time.Time
	}
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidPeriod   = errors.New("invalid period")
	ErrInvalidCurrency = errors.New("invalid currency")
	ErrEmptyOwner      = errors.New("empty owner")
	ErrEmptyItem       = errors.New("empty item")
	ErrEmptyCategory   = errors.New("empty category")
	ErrEmptyName       = errors.New("empty name")
	ErrEmptyTitle      = errors.New("empty title")
	ErrZeroDate        = errors.New("date cannot be zero")
	ErrNotFound        = errors.New("record not found")
)

// Validate reports whether p is one of the four supported periods.
func (p Period) Validate() error {
	switch p {
	case Weekly, Monthly, Quarterly, Yearly:
		return nil
	default:
		return ErrInvalidPeriod
	}
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// ValidateNonNegative is the relaxed form used where a zero amount is a
// defined degenerate case rather than bad input (budget limits).
func (m Money) ValidateNonNegative() error {
	if m.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func validateCurrency(code string) error {
	code = strings.TrimSpace(code)
	if len(code) != 3 || strings.ToUpper(code) != code {
		return ErrInvalidCurrency
	}
	return nil
}

func (e Expense) Validate() error {
	if strings.TrimSpace(e.Owner) == "" {
		return ErrEmptyOwner
	}
	if len(strings.TrimSpace(e.Item)) == 0 {
		return ErrEmptyItem
	}
	if len(e.Item) > 200 {
		return errors.New("item too long (max 200 characters)")
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if err := validateCurrency(e.Currency); err != nil {
		return err
	}
	if e.Date.IsZero() {
		return ErrZeroDate
	}
	return nil
}

func (b Budget) Validate() error {
	if strings.TrimSpace(b.Owner) == "" {
		return ErrEmptyOwner
	}
	if strings.TrimSpace(b.Category) == "" {
		return ErrEmptyCategory
	}
	if err := b.Amount.ValidateNonNegative(); err != nil {
		return err
	}
	if err := b.Period.Validate(); err != nil {
		return err
	}
	return validateCurrency(b.Currency)
}

func (d Debt) Validate() error {
	if strings.TrimSpace(d.Owner) == "" {
		return ErrEmptyOwner
	}
	if strings.TrimSpace(d.Name) == "" {
		return ErrEmptyName
	}
	if err := d.TotalAmount.Validate(); err != nil {
		return err
	}
	if err := d.CurrentBalance.ValidateNonNegative(); err != nil {
		return err
	}
	if d.InterestRate < 0 {
		return errors.New("negative interest rate")
	}
	return d.MinimumPayment.ValidateNonNegative()
}

func (p DebtPayment) Validate() error {
	if strings.TrimSpace(p.Owner) == "" {
		return ErrEmptyOwner
	}
	if p.DebtID <= 0 {
		return errors.New("missing debt reference")
	}
	if err := p.Amount.Validate(); err != nil {
		return err
	}
	if p.PaidOn.IsZero() {
		return ErrZeroDate
	}
	return nil
}

func (g Goal) Validate() error {
	if strings.TrimSpace(g.Owner) == "" {
		return ErrEmptyOwner
	}
	if len(strings.TrimSpace(g.Title)) == 0 {
		return ErrEmptyTitle
	}
	if strings.TrimSpace(g.Category) == "" {
		return ErrEmptyCategory
	}
	if err := g.TargetAmount.Validate(); err != nil {
		return err
	}
	if err := g.CurrentAmount.ValidateNonNegative(); err != nil {
		return err
	}
	if g.TargetDate.IsZero() {
		return ErrZeroDate
	}
	return nil
}
