package cli

import (
	"context"
	"fmt"

	"github.com/alecthomas/kong"

	"daybook/ledger"
)

type DashboardCmd struct{}

func (cmd *DashboardCmd) Run(ctx *kong.Context, globals *Globals) error {
	s, err := openStore(globals)
	if err != nil {
		return err
	}
	defer s.Close()

	runCtx := context.Background()
	registry := ledger.NewRegistry(s)
	book := ledger.NewLedger(s)

	accounts, err := registry.Accounts(runCtx)
	if err != nil {
		return err
	}
	page, err := book.Transactions(runCtx, ledger.TransactionFilter{})
	if err != nil {
		return err
	}
	types, err := registry.AccountTypes(runCtx)
	if err != nil {
		return err
	}

	d := ledger.Summarize(accounts, page.Transactions, types)

	printInfof(ctx.Stdout, "%d accounts (%d owner), %d account types, %d transactions",
		d.AccountCount, d.OwnerAccountCount, d.AccountTypeCount, d.TransactionCount)

	if len(d.Recent) == 0 {
		return nil
	}

	_, _ = fmt.Fprintln(ctx.Stdout)
	var rows [][]string
	for _, txn := range d.Recent {
		rows = append(rows, []string{
			txn.Date.String(),
			txn.ID,
			fmt.Sprintf("%d lines", len(txn.Lines)),
			amountStyle.Render(txn.Total.StringFixed(2)),
		})
	}
	renderTable(ctx.Stdout, []string{"DATE", "ID", "LINES", "TOTAL"}, rows)

	return nil
}
