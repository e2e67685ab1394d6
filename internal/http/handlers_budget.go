package http

import (
	"net/http"
	"time"

	"fintrack/internal/cache"
	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/progress"
)

type budgetRequest struct {
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Period   string `json:"period"`
	Currency string `json:"currency"`
}

type budgetPayload struct {
	ID       int64     `json:"id"`
	Category string    `json:"category"`
	Amount   float64   `json:"amount"`
	Period   string    `json:"period"`
	Currency string    `json:"currency"`
	Created  time.Time `json:"created_at"`
	Updated  time.Time `json:"updated_at"`
}

type progressPayload struct {
	BudgetID   int64   `json:"budget_id"`
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Period     string  `json:"period"`
	Currency   string  `json:"currency"`
	Spent      float64 `json:"spent"`
	Percentage float64 `json:"percentage"`
	Remaining  float64 `json:"remaining"`
	OverBudget bool    `json:"over_budget"`
	Alert      bool    `json:"alert"`
}

type anomalyPayload struct {
	Kind     string `json:"kind"`
	Category string `json:"category"`
	Detail   string `json:"detail"`
}

type overviewResponse struct {
	AsOf           time.Time         `json:"as_of"`
	Budgets        []progressPayload `json:"budgets"`
	TotalBudget    float64           `json:"total_budget"`
	TotalSpent     float64           `json:"total_spent"`
	TotalRemaining float64           `json:"total_remaining"`
	AlertCount     int               `json:"alert_count"`
	Skipped        []anomalyPayload  `json:"skipped,omitempty"`
}

type budgetProgressResponse struct {
	AsOf      time.Time        `json:"as_of"`
	Progress  progressPayload  `json:"progress"`
	Anomalies []anomalyPayload `json:"anomalies,omitempty"`
}

func toBudgetPayload(b core.Budget) budgetPayload {
	return budgetPayload{
		ID:       b.ID,
		Category: b.Category,
		Amount:   b.Amount.Float(),
		Period:   string(b.Period),
		Currency: b.Currency,
		Created:  b.Created,
		Updated:  b.Updated,
	}
}

func toProgressPayload(p progress.Progress) progressPayload {
	return progressPayload{
		BudgetID:   p.Budget.ID,
		Category:   p.Budget.Category,
		Amount:     p.Budget.Amount,
		Period:     string(p.Budget.Period),
		Currency:   p.Budget.Currency,
		Spent:      p.Spent,
		Percentage: p.Percentage,
		Remaining:  p.Remaining,
		OverBudget: p.OverBudget,
		Alert:      p.Alert,
	}
}

func toAnomalyPayloads(anomalies []progress.Anomaly) []anomalyPayload {
	if len(anomalies) == 0 {
		return nil
	}
	out := make([]anomalyPayload, 0, len(anomalies))
	for _, a := range anomalies {
		out = append(out, anomalyPayload{
			Kind:     string(a.Kind),
			Category: a.Category,
			Detail:   a.Detail,
		})
	}
	return out
}

func (req budgetRequest) toDomain(owner string) (core.Budget, error) {
	// Zero is a valid limit; the engine treats it as "any spend is over".
	amount, err := parseOptionalAmount(req.Amount)
	if err != nil {
		return core.Budget{}, err
	}
	return core.Budget{
		Owner:    owner,
		Category: sanitizeInput(req.Category),
		Amount:   amount,
		Period:   core.Period(sanitizeInput(req.Period)),
		Currency: sanitizeInput(req.Currency),
	}, nil
}

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	owner, err := requestOwner(r)
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	budgets, err := s.budgets.ListBudgets(r.Context(), owner)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	payload := make([]budgetPayload, 0, len(budgets))
	for _, b := range budgets {
		payload = append(payload, toBudgetPayload(b))
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleCreateBudget(w http.ResponseWriter, r *http.Request) {
	owner, err := requestOwner(r)
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	var req budgetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	budget, err := req.toDomain(owner)
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	id, err := s.budgets.CreateBudget(r.Context(), budget)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	s.InvalidateOwner(owner)
	writeJSON(w, http.StatusCreated, idResponse{ID: id})
}

func (s *Server) handleUpdateBudget(w http.ResponseWriter, r *http.Request) {
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

	var req budgetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	budget, err := req.toDomain(owner)
	if err != nil {
		writeBadRequest(w, err)
		return
	}
	budget.ID = id

	if err := s.budgets.UpdateBudget(r.Context(), budget); err != nil {
		writeError(r.Context(), w, err)
		return
	}

	s.InvalidateOwner(owner)
	writeJSON(w, http.StatusOK, statusResponse{Status: "updated"})
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
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

	if err := s.budgets.DeleteBudget(r.Context(), owner, id); err != nil {
		writeError(r.Context(), w, err)
		return
	}

	s.InvalidateOwner(owner)
	writeJSON(w, http.StatusOK, statusResponse{Status: "deleted"})
}

// handleBudgetOverview serves the budget-versus-spend dashboard. Responses
// for "now" are cached per owner; pinning as_of bypasses the cache.
func (s *Server) handleBudgetOverview(w http.ResponseWriter, r *http.Request) {
	owner, err := requestOwner(r)
	if err != nil {
		writeBadRequest(w, err)
		return
	}
	asOf, pinned, err := parseAsOf(r)
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	cacheKey := cache.Key(owner, viewOverview)
	if !pinned {
		if cached, ok := s.overviewCache.Get(cacheKey); ok {
			writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	summary, err := s.budgets.Overview(r.Context(), owner, asOf)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	for _, a := range summary.Skipped {
		log.FromContext(r.Context()).WarnContext(r.Context(), "overview anomaly",
			log.FieldOwner, owner,
			log.FieldCategory, a.Category,
			"kind", string(a.Kind),
			"detail", a.Detail,
		)
	}

	items := make([]progressPayload, 0, len(summary.Items))
	for _, p := range summary.Items {
		items = append(items, toProgressPayload(p))
	}
	resp := overviewResponse{
		AsOf:           asOf,
		Budgets:        items,
		TotalBudget:    summary.TotalBudget,
		TotalSpent:     summary.TotalSpent,
		TotalRemaining: summary.TotalRemaining,
		AlertCount:     summary.AlertCount,
		Skipped:        toAnomalyPayloads(summary.Skipped),
	}

	if !pinned {
		s.overviewCache.Set(cacheKey, resp)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleBudgetProgress(w http.ResponseWriter, r *http.Request) {
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
	asOf, _, err := parseAsOf(r)
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	prog, anomalies, err := s.budgets.BudgetProgress(r.Context(), owner, id, asOf)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, budgetProgressResponse{
		AsOf:      asOf,
		Progress:  toProgressPayload(prog),
		Anomalies: toAnomalyPayloads(anomalies),
	})
}
