package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"stash/internal/core"
	"stash/internal/log"
)

const maxBodyBytes = 64 << 10 // 64KB is plenty for a single transaction

type createTransactionRequest struct {
	Type        string     `json:"type"`
	Amount      core.Money `json:"amount"`
	Category    string     `json:"category"`
	Description string     `json:"description"`
}

type setBudgetRequest struct {
	Amount core.Money `json:"amount"`
}

// handleTransactions serves GET (snapshot) and POST (create) on
// /api/transactions.
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.ledger.Snapshot())
	case http.MethodPost:
		s.handleCreateTransaction(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	snap, err := s.ledger.AddTransaction(r.Context(),
		core.TransactionType(sanitizeInput(req.Type)),
		req.Amount.Cents,
		sanitizeInput(req.Category),
		sanitizeInput(req.Description))
	if err != nil {
		slog.WarnContext(r.Context(), "Transaction rejected",
			log.FieldTxType, req.Type,
			log.FieldAmountCents, req.Amount.Cents,
			log.FieldError, err)
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, snap)
}

// handleSetBudget serves POST /api/budget.
func (s *Server) handleSetBudget(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req setBudgetRequest
	if !decodeBody(w, r, &req) {
		return
	}

	snap, err := s.ledger.SetBudget(r.Context(), req.Amount.Cents)
	if err != nil {
		slog.WarnContext(r.Context(), "Budget rejected",
			log.FieldBudgetCents, req.Amount.Cents,
			log.FieldError, err)
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, snap)
}

// handleReset serves POST /api/reset. Irreversible.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	snap := s.ledger.Reset(r.Context())
	slog.InfoContext(r.Context(), "Ledger reset")
	writeJSON(w, http.StatusOK, snap)
}

// handleCategories serves GET /api/categories.
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	writeJSON(w, http.StatusOK, map[string][]string{"categories": s.categories.List()})
}

// decodeBody decodes a JSON request body into dst, writing the error
// response itself when decoding fails. A malformed amount maps to 422,
// everything else malformed to 400.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	switch {
	case err == nil:
		return true
	case errors.Is(err, core.ErrInvalidAmount):
		writeError(w, http.StatusUnprocessableEntity, core.ErrInvalidAmount.Error())
	case errors.Is(err, io.EOF):
		writeError(w, http.StatusBadRequest, "empty request body")
	default:
		writeError(w, http.StatusBadRequest, "invalid request body")
	}
	return false
}
