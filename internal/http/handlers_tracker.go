package http

import (
	"net/http"
	"time"

	"fintrack/internal/analytics"
	"fintrack/internal/core"
)

type debtRequest struct {
	Name           string  `json:"name"`
	DebtType       string  `json:"debt_type"`
	TotalAmount    string  `json:"total_amount"`
	CurrentBalance string  `json:"current_balance"`
	InterestRate   float64 `json:"interest_rate"`
	MinimumPayment string  `json:"minimum_payment"`
	DueDate        string  `json:"due_date"`
}

type debtPayload struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	DebtType       string    `json:"debt_type"`
	TotalAmount    float64   `json:"total_amount"`
	CurrentBalance float64   `json:"current_balance"`
	InterestRate   float64   `json:"interest_rate"`
	MinimumPayment float64   `json:"minimum_payment"`
	DueDate        string    `json:"due_date,omitempty"`
	Created        time.Time `json:"created_at"`
	Updated        time.Time `json:"updated_at"`
}

type paymentRequest struct {
	Amount string `json:"amount"`
	PaidOn string `json:"paid_on"`
}

type paymentPayload struct {
	ID      int64     `json:"id"`
	DebtID  int64     `json:"debt_id"`
	Amount  float64   `json:"amount"`
	PaidOn  string    `json:"paid_on"`
	Created time.Time `json:"created_at"`
}

type goalRequest struct {
	Title         string `json:"title"`
	Category      string `json:"category"`
	TargetAmount  string `json:"target_amount"`
	CurrentAmount string `json:"current_amount"`
	TargetDate    string `json:"target_date"`
}

type goalPayload struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Category      string    `json:"category"`
	TargetAmount  float64   `json:"target_amount"`
	CurrentAmount float64   `json:"current_amount"`
	TargetDate    string    `json:"target_date"`
	Created       time.Time `json:"created_at"`
	Updated       time.Time `json:"updated_at"`
}

type debtProgressPayload struct {
	Debt         debtPayload `json:"debt"`
	PaidPercent  float64     `json:"paid_percent"`
	DaysUntilDue *int        `json:"days_until_due,omitempty"`
}

type debtSummaryResponse struct {
	AsOf                 time.Time             `json:"as_of"`
	Debts                []debtProgressPayload `json:"debts"`
	TotalBalance         float64               `json:"total_balance"`
	TotalMinimumPayments float64               `json:"total_minimum_payments"`
	HighestInterest      *debtPayload          `json:"highest_interest,omitempty"`
}

type goalProgressPayload struct {
	Goal          goalPayload `json:"goal"`
	Percentage    float64     `json:"percentage"`
	DaysRemaining int         `json:"days_remaining"`
	Achieved      bool        `json:"achieved"`
}

type goalProgressResponse struct {
	AsOf  time.Time             `json:"as_of"`
	Goals []goalProgressPayload `json:"goals"`
}

func toDebtPayload(d core.Debt) debtPayload {
	p := debtPayload{
		ID:             d.ID,
		Name:           d.Name,
		DebtType:       d.DebtType,
		TotalAmount:    d.TotalAmount.Float(),
		CurrentBalance: d.CurrentBalance.Float(),
		InterestRate:   d.InterestRate,
		MinimumPayment: d.MinimumPayment.Float(),
		Created:        d.Created,
		Updated:        d.Updated,
	}
	if !d.DueDate.IsZero() {
		p.DueDate = d.DueDate.Format(dateLayout)
	}
	return p
}

func toGoalPayload(g core.Goal) goalPayload {
	return goalPayload{
		ID:            g.ID,
		Title:         g.Title,
		Category:      g.Category,
		TargetAmount:  g.TargetAmount.Float(),
		CurrentAmount: g.CurrentAmount.Float(),
		TargetDate:    g.TargetDate.Format(dateLayout),
		Created:       g.Created,
		Updated:       g.Updated,
	}
}

func (req debtRequest) toDomain(owner string) (core.Debt, error) {
	total, err := parseAmount(req.TotalAmount)
	if err != nil {
		return core.Debt{}, err
	}
	balance, err := parseOptionalAmount(req.CurrentBalance)
	if err != nil {
		return core.Debt{}, err
	}
	minimum, err := parseOptionalAmount(req.MinimumPayment)
	if err != nil {
		return core.Debt{}, err
	}
	var dueDate time.Time
	if req.DueDate != "" {
		dueDate, err = parseDate(req.DueDate)
		if err != nil {
			return core.Debt{}, err
		}
	}
	return core.Debt{
		Owner:          owner,
		Name:           sanitizeInput(req.Name),
		DebtType:       sanitizeInput(req.DebtType),
		TotalAmount:    total,
		CurrentBalance: balance,
		InterestRate:   req.InterestRate,
		MinimumPayment: minimum,
		DueDate:        dueDate,
	}, nil
}

func (req goalRequest) toDomain(owner string) (core.Goal, error) {
	target, err := parseAmount(req.TargetAmount)
	if err != nil {
		return core.Goal{}, err
	}
	current, err := parseOptionalAmount(req.CurrentAmount)
	if err != nil {
		return core.Goal{}, err
	}
	targetDate, err := parseDate(req.TargetDate)
	if err != nil {
		return core.Goal{}, err
	}
	return core.Goal{
		Owner:         owner,
		Title:         sanitizeInput(req.Title),
		Category:      sanitizeInput(req.Category),
		TargetAmount:  target,
		CurrentAmount: current,
		TargetDate:    targetDate,
	}, nil
}

func (s *Server) handleListDebts(w http.ResponseWriter, r *http.Request) {
	owner, err := requestOwner(r)
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	debts, err := s.tracker.ListDebts(r.Context(), owner)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	payload := make([]debtPayload, 0, len(debts))
	for _, d := range debts {
		payload = append(payload, toDebtPayload(d))
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleCreateDebt(w http.ResponseWriter, r *http.Request) {
	owner, err := requestOwner(r)
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	var req debtRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	debt, err := req.toDomain(owner)
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	id, err := s.tracker.CreateDebt(r.Context(), debt)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusCreated, idResponse{ID: id})
}

func (s *Server) handleUpdateDebt(w http.ResponseWriter, r *http.Request) {
	owner, err := requestOwner(r)
	if err != nil {
		writeBadRequest(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	var req debtRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	debt, err := req.toDomain(owner)
	if err != nil {
		writeBadRequest(w, err)
		return
	}
	debt.ID = id

	if err := s.tracker.UpdateDebt(r.Context(), debt); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "updated"})
}

func (s *Server) handleDeleteDebt(w http.ResponseWriter, r *http.Request) {
	owner, err := requestOwner(r)
	if err != nil {
		writeBadRequest(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	if err := s.tracker.DeleteDebt(r.Context(), owner, id); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "deleted"})
}

func (s *Server) handleRecordPayment(w http.ResponseWriter, r *http.Request) {
	owner, err := requestOwner(r)
	if err != nil {
		writeBadRequest(w, err)
		return
	}
	debtID, err := pathID(r)
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	var req paymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		writeBadRequest(w, err)
		return
	}
	paidOn := time.Now()
	if req.PaidOn != "" {
		paidOn, err = parseDate(req.PaidOn)
		if err != nil {
			writeBadRequest(w, err)
			return
		}
	}

	id, err := s.tracker.RecordPayment(r.Context(), core.DebtPayment{
		Owner:  owner,
		DebtID: debtID,
		Amount: amount,
		PaidOn: paidOn,
	})
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusCreated, idResponse{ID: id})
}

func (s *Server) handleListPayments(w http.ResponseWriter, r *http.Request) {
	owner, err := requestOwner(r)
	if err != nil {
		writeBadRequest(w, err)
		return
	}
	debtID, err := pathID(r)
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	payments, err := s.tracker.ListPayments(r.Context(), owner, debtID)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	payload := make([]paymentPayload, 0, len(payments))
	for _, p := range payments {
		payload = append(payload, paymentPayload{
			ID:      p.ID,
			DebtID:  p.DebtID,
			Amount:  p.Amount.Float(),
			PaidOn:  p.PaidOn.Format(dateLayout),
			Created: p.Created,
		})
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleDebtSummary(w http.ResponseWriter, r *http.Request) {
	owner, err := requestOwner(r)
	if err != nil {
		writeBadRequest(w, err)
		return
	}
	asOf, _, err := parseAsOf(r)
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	summary, err := s.tracker.DebtSummary(r.Context(), owner, asOf)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDebtSummaryResponse(summary, asOf))
}

func toDebtSummaryResponse(summary analytics.DebtSummary, asOf time.Time) debtSummaryResponse {
	resp := debtSummaryResponse{
		AsOf:                 asOf,
		Debts:                make([]debtProgressPayload, 0, len(summary.Items)),
		TotalBalance:         summary.TotalBalance,
		TotalMinimumPayments: summary.TotalMinimumPayments,
	}
	for _, item := range summary.Items {
		p := debtProgressPayload{
			Debt:        toDebtPayload(item.Debt),
			PaidPercent: item.PaidPercent,
		}
		if item.HasDueDate {
			days := item.DaysUntilDue
			p.DaysUntilDue = &days
		}
		resp.Debts = append(resp.Debts, p)
	}
	if summary.HighestInterest != nil {
		top := toDebtPayload(*summary.HighestInterest)
		resp.HighestInterest = &top
	}
	return resp
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	owner, err := requestOwner(r)
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	goals, err := s.tracker.ListGoals(r.Context(), owner)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	payload := make([]goalPayload, 0, len(goals))
	for _, g := range goals {
		payload = append(payload, toGoalPayload(g))
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	owner, err := requestOwner(r)
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	var req goalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	goal, err := req.toDomain(owner)
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	id, err := s.tracker.CreateGoal(r.Context(), goal)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusCreated, idResponse{ID: id})
}

func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	owner, err := requestOwner(r)
	if err != nil {
		writeBadRequest(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	var req goalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	goal, err := req.toDomain(owner)
	if err != nil {
		writeBadRequest(w, err)
		return
	}
	goal.ID = id

	if err := s.tracker.UpdateGoal(r.Context(), goal); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "updated"})
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	owner, err := requestOwner(r)
	if err != nil {
		writeBadRequest(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	if err := s.tracker.DeleteGoal(r.Context(), owner, id); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "deleted"})
}

func (s *Server) handleGoalProgress(w http.ResponseWriter, r *http.Request) {
	owner, err := requestOwner(r)
	if err != nil {
		writeBadRequest(w, err)
		return
	}
	asOf, _, err := parseAsOf(r)
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	goals, err := s.tracker.GoalProgress(r.Context(), owner, asOf)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	resp := goalProgressResponse{AsOf: asOf, Goals: make([]goalProgressPayload, 0, len(goals))}
	for _, gp := range goals {
		resp.Goals = append(resp.Goals, goalProgressPayload{
			Goal:          toGoalPayload(gp.Goal),
			Percentage:    gp.Percentage,
			DaysRemaining: gp.DaysRemaining,
			Achieved:      gp.Achieved,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
