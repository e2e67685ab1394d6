package http

import (
	"net/http"
	"time"

	"fintrack/internal/core"
)

type expenseRequest struct {
	Item     string `json:"item"`
	Amount   string `json:"amount"`
	Category string `json:"category"`
	Currency string `json:"currency"`
	Date     string `json:"date"`
}

type expensePayload struct {
	ID       int64     `json:"id"`
	Item     string    `json:"item"`
	Amount   float64   `json:"amount"`
	Category string    `json:"category"`
	Currency string    `json:"currency"`
	Date     string    `json:"date"`
	Created  time.Time `json:"created_at"`
}

func toExpensePayload(e core.Expense) expensePayload {
	return expensePayload{
		ID:       e.ID,
		Item:     e.Item,
		Amount:   e.Amount.Float(),
		Category: e.Category,
		Currency: e.Currency,
		Date:     e.Date.Format(dateLayout),
		Created:  e.Created,
	}
}

func (req expenseRequest) toDomain(owner string) (core.Expense, error) {
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return core.Expense{}, err
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return core.Expense{}, err
	}
	return core.Expense{
		Owner:    owner,
		Item:     sanitizeInput(req.Item),
		Amount:   amount,
		Category: sanitizeInput(req.Category),
		Currency: sanitizeInput(req.Currency),
		Date:     date,
	}, nil
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	owner, err := requestOwner(r)
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	expenses, err := s.expenses.ListExpenses(r.Context(), owner)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	payload := make([]expensePayload, 0, len(expenses))
	for _, e := range expenses {
		payload = append(payload, toExpensePayload(e))
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	owner, err := requestOwner(r)
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	expense, err := req.toDomain(owner)
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	id, err := s.expenses.CreateExpense(r.Context(), expense)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	s.InvalidateOwner(owner)
	writeJSON(w, http.StatusCreated, idResponse{ID: id})
}

func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
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

	expense, err := s.expenses.GetExpense(r.Context(), owner, id)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, toExpensePayload(expense))
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
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

	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	expense, err := req.toDomain(owner)
	if err != nil {
		writeBadRequest(w, err)
		return
	}
	expense.ID = id

	if err := s.expenses.UpdateExpense(r.Context(), expense); err != nil {
		writeError(r.Context(), w, err)
		return
	}

	s.InvalidateOwner(owner)
	writeJSON(w, http.StatusOK, statusResponse{Status: "updated"})
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
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

	if err := s.expenses.DeleteExpense(r.Context(), owner, id); err != nil {
		writeError(r.Context(), w, err)
		return
	}

	s.InvalidateOwner(owner)
	writeJSON(w, http.StatusOK, statusResponse{Status: "deleted"})
}
