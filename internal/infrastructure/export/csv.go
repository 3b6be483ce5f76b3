package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"bahikhata/internal/core/types"
	"bahikhata/internal/domain/reports"
)

// WriteStockCSV writes the stock snapshot as CSV.
func WriteStockCSV(w io.Writer, items []reports.StockSnapshotItem) error {
	cw := csv.NewWriter(w)

	header := []string{"Product", "Unit", "Quantity", "LowStock", "StockValue"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, item := range items {
		lowStock := ""
		if item.LowStock {
			lowStock = "yes"
		}
		record := []string{
			item.ProductName,
			item.Unit,
			item.Quantity.String(),
			lowStock,
			item.StockValue.StringFixed(types.MoneyPlaces),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
