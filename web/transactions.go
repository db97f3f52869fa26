package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"daybook/ledger"
)

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	filter, err := transactionFilter(r)
	if err != nil {
		badRequest(w, err)
		return
	}

	page, err := s.book.Transactions(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var draft ledger.TransactionDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		badRequest(w, err)
		return
	}

	txn, err := s.book.CreateTransaction(r.Context(), draft.Date, draft.Details)
	if err != nil {
		writeError(w, err)
		return
	}

	s.broadcast("changed")
	writeJSON(w, http.StatusCreated, txn)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := s.book.DeleteTransaction(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}

	s.broadcast("changed")
	w.WriteHeader(http.StatusNoContent)
}

// transactionFilter builds a store filter from the query string. The page
// parameter defaults to 1; page=0 explicitly requests the full set.
func transactionFilter(r *http.Request) (ledger.TransactionFilter, error) {
	filter := ledger.TransactionFilter{Page: 1, PerPage: ledger.DefaultPerPage}

	query := r.URL.Query()
	if value := query.Get("startDate"); value != "" {
		date, err := ledger.ParseDate(value)
		if err != nil {
			return ledger.TransactionFilter{}, err
		}
		filter.Start = &date
	}
	if value := query.Get("endDate"); value != "" {
		date, err := ledger.ParseDate(value)
		if err != nil {
			return ledger.TransactionFilter{}, err
		}
		filter.End = &date
	}
	if value := query.Get("page"); value != "" {
		page, err := strconv.Atoi(value)
		if err != nil || page < 0 {
			return ledger.TransactionFilter{}, fmt.Errorf("invalid page %q", value)
		}
		filter.Page = page
	}
	if value := query.Get("perPage"); value != "" {
		perPage, err := strconv.Atoi(value)
		if err != nil || perPage < 1 {
			return ledger.TransactionFilter{}, fmt.Errorf("invalid perPage %q", value)
		}
		filter.PerPage = perPage
	}

	return filter, nil
}
