package cli

import (
	"context"
	"fmt"

	"github.com/alecthomas/kong"

	"daybook/ledger"
	"daybook/telemetry"
)

type ReportCmd struct {
	StartDate string `help:"Inclusive window start (YYYY-MM-DD)."`
	EndDate   string `help:"Inclusive window end (YYYY-MM-DD)."`
	Account   string `help:"Restrict to a single account id."`
	OwnerOnly bool   `help:"Restrict to owner accounts."`
	Output    string `help:"Write the report to an .xlsx workbook instead of the terminal." type:"path"`
}

func (cmd *ReportCmd) Run(ctx *kong.Context, globals *Globals) error {
	filter := ledger.ReportFilter{
		AccountID: cmd.Account,
		OwnerOnly: cmd.OwnerOnly,
	}
	txnFilter := ledger.TransactionFilter{}
	if cmd.StartDate != "" {
		date, err := ledger.ParseDate(cmd.StartDate)
		if err != nil {
			return err
		}
		filter.Start = &date
		txnFilter.Start = &date
	}
	if cmd.EndDate != "" {
		date, err := ledger.ParseDate(cmd.EndDate)
		if err != nil {
			return err
		}
		filter.End = &date
		txnFilter.End = &date
	}

	s, err := openStore(globals)
	if err != nil {
		return err
	}
	defer s.Close()

	return withTelemetry(ctx, globals, "report", func(runCtx context.Context) error {
		registry := ledger.NewRegistry(s)
		book := ledger.NewLedger(s)

		fetchTimer := telemetry.FromContext(runCtx).Start("report.fetch")
		accounts, err := registry.Accounts(runCtx)
		if err != nil {
			fetchTimer.End()
			return err
		}
		page, err := book.Transactions(runCtx, txnFilter)
		fetchTimer.End()
		if err != nil {
			return err
		}

		aggTimer := telemetry.FromContext(runCtx).Start("report.aggregate")
		reports, summary := ledger.GenerateReport(accounts, page.Transactions, filter)
		aggTimer.End()

		if cmd.Output != "" {
			if err := writeReportWorkbook(cmd.Output, reports, summary); err != nil {
				return err
			}
			printSuccess(ctx.Stdout, fmt.Sprintf("report written to %s", cmd.Output))
			return nil
		}

		if len(reports) == 0 {
			printInfof(ctx.Stdout, "no account activity in window")
			return nil
		}

		for _, report := range reports {
			_, _ = fmt.Fprintf(ctx.Stdout, "%s (%s)\n", report.Account.Name, report.Account.Type)

			var rows [][]string
			for _, entry := range report.Entries {
				debit, credit := "", ""
				if entry.Side == ledger.Credit {
					credit = entry.Amount.StringFixed(2)
				} else {
					debit = entry.Amount.StringFixed(2)
				}
				rows = append(rows, []string{entry.Date.String(), entry.Description, debit, credit})
			}
			renderTable(ctx.Stdout, []string{"DATE", "DESCRIPTION", "DEBIT", "CREDIT"}, rows)

			_, _ = fmt.Fprintf(ctx.Stdout, "%s credit %s  debit %s  net %s\n\n",
				dimStyle.Render("totals:"),
				amountStyle.Render(report.TotalCredit.StringFixed(2)),
				amountStyle.Render(report.TotalDebit.StringFixed(2)),
				amountStyle.Render(report.Net.StringFixed(2)))
		}

		printInfof(ctx.Stdout, "%d account(s): credit %s, debit %s, net %s",
			summary.AccountCount,
			summary.TotalCredit.StringFixed(2),
			summary.TotalDebit.StringFixed(2),
			summary.Net.StringFixed(2))
		return nil
	})
}
