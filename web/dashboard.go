package web

import (
	"net/http"

	"daybook/ledger"
)

// handleDashboard serves the landing-view summary. Accounts, transactions
// and types are fetched by separate calls; brief staleness between them
// is acceptable to callers.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.registry.Accounts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	page, err := s.book.Transactions(r.Context(), ledger.TransactionFilter{})
	if err != nil {
		writeError(w, err)
		return
	}

	types, err := s.registry.AccountTypes(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ledger.Summarize(accounts, page.Transactions, types))
}
