package web

import (
	"net/http"

	"daybook/ledger"
	"daybook/telemetry"
)

// ReportResponse is the JSON response for the reports endpoint. The date
// window is echoed back when one was requested.
type ReportResponse struct {
	Reports   []ledger.AccountReport `json:"reports"`
	Summary   ledger.ReportSummary   `json:"summary"`
	StartDate *string                `json:"startDate,omitempty"`
	EndDate   *string                `json:"endDate,omitempty"`
}

func (s *Server) handleGenerateReport(w http.ResponseWriter, r *http.Request) {
	timer := telemetry.FromContext(r.Context()).Start("web.report")
	defer timer.End()

	query := r.URL.Query()
	filter := ledger.ReportFilter{
		AccountID: query.Get("accountId"),
		OwnerOnly: query.Get("ownerOnly") == "true",
	}

	txnFilter := ledger.TransactionFilter{} // unpaged: reports need the full window
	if value := query.Get("startDate"); value != "" {
		date, err := ledger.ParseDate(value)
		if err != nil {
			badRequest(w, err)
			return
		}
		filter.Start = &date
		txnFilter.Start = &date
	}
	if value := query.Get("endDate"); value != "" {
		date, err := ledger.ParseDate(value)
		if err != nil {
			badRequest(w, err)
			return
		}
		filter.End = &date
		txnFilter.End = &date
	}

	accounts, err := s.registry.Accounts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	page, err := s.book.Transactions(r.Context(), txnFilter)
	if err != nil {
		writeError(w, err)
		return
	}

	reports, summary := ledger.GenerateReport(accounts, page.Transactions, filter)
	if reports == nil {
		reports = []ledger.AccountReport{}
	}

	resp := ReportResponse{Reports: reports, Summary: summary}
	if filter.Start != nil {
		start := filter.Start.String()
		resp.StartDate = &start
	}
	if filter.End != nil {
		end := filter.End.String()
		resp.EndDate = &end
	}
	writeJSON(w, http.StatusOK, resp)
}
