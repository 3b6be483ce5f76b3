// Package export renders report data into downloadable files. Pure
// formatting: callers load the data, nothing here touches storage.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"bahikhata/internal/core/types"
	"bahikhata/internal/domain/documents/invoice"
	"bahikhata/internal/domain/documents/purchase"
)

const (
	purchasesSheet = "Purchases"
	invoicesSheet  = "Invoices"
)

// WriteWorkbook writes an Excel workbook with one sheet of purchases and one
// of invoices.
func WriteWorkbook(w io.Writer, purchases []*purchase.Purchase, invoices []*invoice.Invoice) error {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(purchasesSheet); err != nil {
		return fmt.Errorf("new sheet: %w", err)
	}
	if _, err := f.NewSheet(invoicesSheet); err != nil {
		return fmt.Errorf("new sheet: %w", err)
	}
	// Drop the default sheet so the workbook opens on purchases.
	f.DeleteSheet("Sheet1")

	writePurchasesSheet(f, purchases)
	writeInvoicesSheet(f, invoices)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writePurchasesSheet(f *excelize.File, purchases []*purchase.Purchase) {
	f.SetCellValue(purchasesSheet, "A1", "Date")
	f.SetCellValue(purchasesSheet, "B1", "ProductID")
	f.SetCellValue(purchasesSheet, "C1", "Qty")
	f.SetCellValue(purchasesSheet, "D1", "CostPrice")
	f.SetCellValue(purchasesSheet, "E1", "BillNo")
	f.SetCellValue(purchasesSheet, "F1", "Supplier")

	for i, p := range purchases {
		row := fmt.Sprint(i + 2)
		f.SetCellValue(purchasesSheet, "A"+row, p.PurchasedAt.Format("2006-01-02"))
		f.SetCellValue(purchasesSheet, "B"+row, p.ProductID.String())
		f.SetCellValue(purchasesSheet, "C"+row, p.Qty.Float64())
		f.SetCellValue(purchasesSheet, "D"+row, p.CostPrice.StringFixed(types.MoneyPlaces))
		f.SetCellValue(purchasesSheet, "E"+row, deref(p.BillNo))
		f.SetCellValue(purchasesSheet, "F"+row, deref(p.Supplier))
	}
}

func writeInvoicesSheet(f *excelize.File, invoices []*invoice.Invoice) {
	f.SetCellValue(invoicesSheet, "A1", "Date")
	f.SetCellValue(invoicesSheet, "B1", "InvoiceNo")
	f.SetCellValue(invoicesSheet, "C1", "SupplyType")
	f.SetCellValue(invoicesSheet, "D1", "Subtotal")
	f.SetCellValue(invoicesSheet, "E1", "TotalTax")
	f.SetCellValue(invoicesSheet, "F1", "TotalAmount")

	for i, inv := range invoices {
		row := fmt.Sprint(i + 2)
		f.SetCellValue(invoicesSheet, "A"+row, inv.Date.Format("2006-01-02"))
		f.SetCellValue(invoicesSheet, "B"+row, inv.InvoiceNo)
		f.SetCellValue(invoicesSheet, "C"+row, string(inv.SupplyType))
		f.SetCellValue(invoicesSheet, "D"+row, inv.Subtotal.StringFixed(types.MoneyPlaces))
		f.SetCellValue(invoicesSheet, "E"+row, inv.TotalTax.StringFixed(types.MoneyPlaces))
		f.SetCellValue(invoicesSheet, "F"+row, inv.TotalAmount.StringFixed(types.MoneyPlaces))
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
