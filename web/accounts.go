package web

import (
	"encoding/json"
	"net/http"

	"daybook/ledger"
)

// AccountsResponse is the JSON response for the accounts listing.
type AccountsResponse struct {
	Accounts []ledger.Account `json:"accounts"`
}

// AccountTypesResponse is the JSON response for the account types listing.
type AccountTypesResponse struct {
	AccountTypes []ledger.AccountType `json:"accountTypes"`
}

func (s *Server) handleListAccountTypes(w http.ResponseWriter, r *http.Request) {
	types, err := s.registry.AccountTypes(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if types == nil {
		types = []ledger.AccountType{}
	}
	writeJSON(w, http.StatusOK, AccountTypesResponse{AccountTypes: types})
}

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.registry.Accounts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if accounts == nil {
		accounts = []ledger.Account{}
	}
	writeJSON(w, http.StatusOK, AccountsResponse{Accounts: accounts})
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var input ledger.AccountInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		badRequest(w, err)
		return
	}

	account, err := s.registry.CreateAccount(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	s.broadcast("changed")
	writeJSON(w, http.StatusCreated, account)
}

func (s *Server) handleUpdateAccount(w http.ResponseWriter, r *http.Request) {
	var input ledger.AccountInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		badRequest(w, err)
		return
	}

	account, err := s.registry.UpdateAccount(r.Context(), r.PathValue("id"), input)
	if err != nil {
		writeError(w, err)
		return
	}

	s.broadcast("changed")
	writeJSON(w, http.StatusOK, account)
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := s.registry.DeleteAccount(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}

	s.broadcast("changed")
	w.WriteHeader(http.StatusNoContent)
}
