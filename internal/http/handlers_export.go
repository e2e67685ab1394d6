package http

import (
	"fmt"
	"net/http"

	"fintrack/internal/export"
	"fintrack/internal/log"
)

// handleExport streams one collection as CSV, or the whole account as JSON
// when the collection is "snapshot".
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
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

	collection := r.PathValue("collection")
	snap, err := s.exporter.BuildSnapshot(r.Context(), owner, asOf)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	stamp := asOf.Format(dateLayout)
	if collection == "snapshot" {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "fintrack_snapshot_"+stamp+".json"))
		if err := export.WriteJSON(w, snap); err != nil {
			// The body is partially written; all we can do is log.
			log.FromContext(r.Context()).ErrorContext(r.Context(), "stream export", log.FieldError, err)
		}
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "fintrack_"+collection+"_"+stamp+".csv"))

	switch collection {
	case "expenses":
		err = export.WriteExpensesCSV(w, snap.Expenses)
	case "budgets":
		err = export.WriteBudgetsCSV(w, snap.Budgets)
	case "debts":
		err = export.WriteDebtsCSV(w, snap.Debts)
	case "goals":
		err = export.WriteGoalsCSV(w, snap.Goals)
	default:
		// Reset the download headers before answering with an error body.
		w.Header().Del("Content-Disposition")
		writeBadRequest(w, fmt.Errorf("unknown collection %q", collection))
		return
	}
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "stream export", log.FieldError, err)
	}
}
