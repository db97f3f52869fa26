package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"daybook/ledger"
)

type TxnCmd struct {
	List TxnListCmd `cmd:"" default:"1" help:"List transactions."`
	Add  TxnAddCmd  `cmd:"" help:"Record a transaction from a JSON draft."`
	Rm   TxnRmCmd   `cmd:"" help:"Delete a transaction."`
}

type TxnListCmd struct {
	StartDate string `help:"Inclusive window start (YYYY-MM-DD)."`
	EndDate   string `help:"Inclusive window end (YYYY-MM-DD)."`
	Page      int    `help:"Page number (0 lists everything)." default:"1"`
}

func (cmd *TxnListCmd) Run(ctx *kong.Context, globals *Globals) error {
	filter := ledger.TransactionFilter{Page: cmd.Page, PerPage: ledger.DefaultPerPage}
	if cmd.StartDate != "" {
		date, err := ledger.ParseDate(cmd.StartDate)
		if err != nil {
			return err
		}
		filter.Start = &date
	}
	if cmd.EndDate != "" {
		date, err := ledger.ParseDate(cmd.EndDate)
		if err != nil {
			return err
		}
		filter.End = &date
	}

	s, err := openStore(globals)
	if err != nil {
		return err
	}
	defer s.Close()

	book := ledger.NewLedger(s)
	page, err := book.Transactions(context.Background(), filter)
	if err != nil {
		return err
	}

	if page.Total == 0 {
		printInfof(ctx.Stdout, "no transactions in window")
		return nil
	}

	var rows [][]string
	for _, txn := range page.Transactions {
		rows = append(rows, []string{
			fmt.Sprintf("%d", txn.Seq),
			txn.ID,
			txn.Date.String(),
			fmt.Sprintf("%d lines", len(txn.Lines)),
			amountStyle.Render(txn.Total.StringFixed(2)),
			txn.Status.String(),
		})
	}
	renderTable(ctx.Stdout, []string{"#", "ID", "DATE", "LINES", "TOTAL", "STATUS"}, rows)

	if page.TotalPages > 1 {
		printInfof(ctx.Stdout, "page %d of %d (%d transactions)", page.CurrentPage, page.TotalPages, page.Total)
	}
	return nil
}

type TxnAddCmd struct {
	File FileOrStdin `help:"JSON draft filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
}

func (cmd *TxnAddCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	var draft ledger.TransactionDraft
	if err := json.Unmarshal(cmd.File.Contents, &draft); err != nil {
		return fmt.Errorf("invalid draft %s: %w", cmd.File.Filename, err)
	}

	s, err := openStore(globals)
	if err != nil {
		return err
	}
	defer s.Close()

	return withTelemetry(ctx, globals, "txn.add", func(runCtx context.Context) error {
		book := ledger.NewLedger(s)
		txn, err := book.CreateTransaction(runCtx, draft.Date, draft.Details)
		if err != nil {
			if renderValidation(ctx.Stderr, err) {
				os.Exit(1)
			}
			return err
		}

		printSuccess(ctx.Stdout, fmt.Sprintf("transaction %s recorded (%s, total %s)",
			txn.ID, txn.Date, amountStyle.Render(txn.Total.StringFixed(2))))
		return nil
	})
}

type TxnRmCmd struct {
	ID  string `arg:"" help:"Transaction id to delete."`
	Yes bool   `help:"Skip the confirmation prompt." short:"y"`
}

func (cmd *TxnRmCmd) Run(ctx *kong.Context, globals *Globals) error {
	if !cmd.Yes {
		confirmed, err := promptYesNo(ctx, fmt.Sprintf("Delete transaction %s?", cmd.ID))
		if err != nil {
			return err
		}
		if !confirmed {
			printInfof(ctx.Stdout, "aborted")
			return nil
		}
	}

	s, err := openStore(globals)
	if err != nil {
		return err
	}
	defer s.Close()

	book := ledger.NewLedger(s)
	if err := book.DeleteTransaction(context.Background(), cmd.ID); err != nil {
		return err
	}

	printSuccess(ctx.Stdout, fmt.Sprintf("transaction %s deleted", cmd.ID))
	return nil
}
