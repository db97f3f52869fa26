package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"daybook/ledger"
)

type AccountsCmd struct {
	List AccountsListCmd `cmd:"" default:"1" help:"List registered accounts."`
	Add  AccountsAddCmd  `cmd:"" help:"Register a new account."`
	Rm   AccountsRmCmd   `cmd:"" help:"Delete an account from the registry."`
}

type AccountsListCmd struct{}

func (cmd *AccountsListCmd) Run(ctx *kong.Context, globals *Globals) error {
	s, err := openStore(globals)
	if err != nil {
		return err
	}
	defer s.Close()

	registry := ledger.NewRegistry(s)
	accounts, err := registry.Accounts(context.Background())
	if err != nil {
		return err
	}

	if len(accounts) == 0 {
		printInfof(ctx.Stdout, "no accounts registered")
		return nil
	}

	rows := make([][]string, len(accounts))
	for i, account := range accounts {
		owner := ""
		if account.Owner {
			owner = "owner"
		}
		rows[i] = []string{
			fmt.Sprintf("%d", account.Seq),
			account.ID,
			account.Name,
			account.Type,
			account.Branch,
			owner,
		}
	}
	renderTable(ctx.Stdout, []string{"#", "ID", "NAME", "TYPE", "BRANCH", ""}, rows)

	return nil
}

type AccountsAddCmd struct {
	Name      string `help:"Account name (unique)." required:""`
	Type      string `help:"Account type name." required:""`
	AccountNo string `help:"External account number."`
	Branch    string `help:"Branch name."`
	Address   string `help:"Postal address."`
	Contact   string `help:"Contact details."`
	Owner     bool   `help:"Mark as an owner account."`
}

func (cmd *AccountsAddCmd) Run(ctx *kong.Context, globals *Globals) error {
	s, err := openStore(globals)
	if err != nil {
		return err
	}
	defer s.Close()

	registry := ledger.NewRegistry(s)
	account, err := registry.CreateAccount(context.Background(), ledger.AccountInput{
		Name:      cmd.Name,
		Type:      cmd.Type,
		AccountNo: cmd.AccountNo,
		Branch:    cmd.Branch,
		Address:   cmd.Address,
		Contact:   cmd.Contact,
		Owner:     cmd.Owner,
	})
	if err != nil {
		if renderValidation(ctx.Stderr, err) {
			os.Exit(1)
		}
		return err
	}

	printSuccess(ctx.Stdout, fmt.Sprintf("account %s registered (%s)", account.Name, account.ID))
	return nil
}

type AccountsRmCmd struct {
	ID  string `arg:"" help:"Account id to delete."`
	Yes bool   `help:"Skip the confirmation prompt." short:"y"`
}

func (cmd *AccountsRmCmd) Run(ctx *kong.Context, globals *Globals) error {
	if !cmd.Yes {
		// Historical transaction lines keep the account name; only
		// future selection is affected.
		confirmed, err := promptYesNo(ctx, fmt.Sprintf("Delete account %s?", cmd.ID))
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

	registry := ledger.NewRegistry(s)
	if err := registry.DeleteAccount(context.Background(), cmd.ID); err != nil {
		return err
	}

	printSuccess(ctx.Stdout, fmt.Sprintf("account %s deleted", cmd.ID))
	return nil
}
