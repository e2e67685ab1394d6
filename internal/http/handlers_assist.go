package http

import (
	"errors"
	"net/http"
	"strings"
)

// maxReceiptBytes caps receipt uploads at 10 MB.
const maxReceiptBytes = 10 << 20

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

func (s *Server) handleScanReceipt(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxReceiptBytes)
	if err := r.ParseMultipartForm(maxReceiptBytes); err != nil {
		writeBadRequest(w, errors.New("expected multipart form with a receipt file"))
		return
	}

	file, header, err := r.FormFile("receipt")
	if err != nil {
		writeBadRequest(w, errors.New("missing receipt file field"))
		return
	}
	defer file.Close()

	receipt, err := s.assist.ScanReceipt(r.Context(), header.Filename, header.Size)
	if err != nil {
		writeBadRequest(w, err)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	owner, err := requestOwner(r)
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	var req chatRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}
	message := strings.TrimSpace(sanitizeInput(req.Message))
	if message == "" {
		writeBadRequest(w, errors.New("empty message"))
		return
	}

	reply, err := s.assist.Chat(r.Context(), owner, message)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{Reply: reply})
}

func (s *Server) handleRates(w http.ResponseWriter, r *http.Request) {
	base := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("base")))
	if base == "" {
		base = "USD"
	}

	quote, err := s.assist.Rates(r.Context(), base)
	if err != nil {
		writeBadRequest(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}
