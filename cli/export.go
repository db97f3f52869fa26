package cli

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"daybook/ledger"
)

// writeReportWorkbook exports account reports to an xlsx workbook: one
// sheet per account plus a summary sheet.
func writeReportWorkbook(path string, reports []ledger.AccountReport, summary ledger.ReportSummary) error {
	f := excelize.NewFile()
	defer f.Close()

	const summarySheet = "Summary"
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("rename summary sheet: %w", err)
	}

	summaryRows := [][]any{
		{"Accounts", summary.AccountCount},
		{"Total credit", summary.TotalCredit.StringFixed(2)},
		{"Total debit", summary.TotalDebit.StringFixed(2)},
		{"Net amount", summary.Net.StringFixed(2)},
	}
	for i, row := range summaryRows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return fmt.Errorf("write summary row %d: %w", i+1, err)
		}
	}

	for _, report := range reports {
		sheet := sheetName(report.Account.Name)
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("create sheet %q: %w", sheet, err)
		}

		header := []any{"Date", "Description", "Debit", "Credit"}
		if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
			return err
		}

		for i, entry := range report.Entries {
			debit, credit := "", ""
			if entry.Side == ledger.Credit {
				credit = entry.Amount.StringFixed(2)
			} else {
				debit = entry.Amount.StringFixed(2)
			}
			row := []any{entry.Date.String(), entry.Description, debit, credit}
			cell, err := excelize.CoordinatesToCellName(1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				return fmt.Errorf("write entry row: %w", err)
			}
		}

		totals := []any{"Totals", "",
			report.TotalDebit.StringFixed(2),
			report.TotalCredit.StringFixed(2)}
		cell, err := excelize.CoordinatesToCellName(1, len(report.Entries)+3)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &totals); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

// sheetName sanitizes an account name into a legal sheet name. Excel
// limits names to 31 characters and forbids a handful of characters.
func sheetName(name string) string {
	const maxLen = 31
	sanitized := make([]rune, 0, len(name))
	for _, r := range name {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			sanitized = append(sanitized, '-')
		default:
			sanitized = append(sanitized, r)
		}
	}
	if len(sanitized) > maxLen {
		sanitized = sanitized[:maxLen]
	}
	return string(sanitized)
}
