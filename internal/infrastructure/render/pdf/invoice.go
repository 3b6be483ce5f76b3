// Package pdf renders invoice documents. It consumes amounts exactly as they
// were committed; nothing here recomputes a total.
package pdf

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"bahikhata/internal/core/id"
	"bahikhata/internal/core/types"
	"bahikhata/internal/domain/catalogs/customer"
	"bahikhata/internal/domain/documents/invoice"
	"bahikhata/internal/domain/tax"
)

// BusinessInfo is the seller block printed on every invoice.
type BusinessInfo struct {
	Name    string
	GSTIN   string
	Address string
}

// LineView is one rendered table row, all values pre-formatted.
type LineView struct {
	Name      string
	Qty       string
	UnitPrice string
	TaxRate   string
	Tax       string
	LineTotal string
}

// DocumentData is everything the renderer needs, as display strings.
type DocumentData struct {
	Business BusinessInfo

	InvoiceNo     string
	Date          string
	SupplyType    tax.SupplyType
	CustomerName  string
	CustomerGSTIN string

	Lines []LineView

	Subtotal    string
	CGSTTotal   string
	SGSTTotal   string
	IGSTTotal   string
	TotalAmount string
}

// BuildDocumentData assembles display data from a committed invoice.
// cust may be nil for walk-in sales; productNames maps line products to
// catalog names.
func BuildDocumentData(inv *invoice.Invoice, cust *customer.Customer, productNames map[id.ID]string, biz BusinessInfo) DocumentData {
	data := DocumentData{
		Business:     biz,
		InvoiceNo:    inv.InvoiceNo,
		Date:         inv.Date.Format("02-01-2006"),
		SupplyType:   inv.SupplyType,
		CustomerName: "Cash Sale",
		Subtotal:     inv.Subtotal.StringFixed(types.MoneyPlaces),
		TotalAmount:  inv.TotalAmount.StringFixed(types.MoneyPlaces),
	}
	if cust != nil {
		data.CustomerName = cust.Name
		if cust.GSTIN != nil {
			data.CustomerGSTIN = *cust.GSTIN
		}
	}

	cgst, sgst, igst := types.ZeroMoney(), types.ZeroMoney(), types.ZeroMoney()
	for _, l := range inv.Lines {
		cgst = cgst.Add(l.CGST)
		sgst = sgst.Add(l.SGST)
		igst = igst.Add(l.IGST)

		name := productNames[l.ProductID]
		if name == "" {
			name = l.ProductID.String()
		}
		data.Lines = append(data.Lines, LineView{
			Name:      name,
			Qty:       l.Qty.String(),
			UnitPrice: l.UnitPrice.StringFixed(types.MoneyPlaces),
			TaxRate:   l.TaxRate.String() + "%",
			Tax:       l.TaxAmount.StringFixed(types.MoneyPlaces),
			LineTotal: l.LineTotal.StringFixed(types.MoneyPlaces),
		})
	}
	data.CGSTTotal = cgst.StringFixed(types.MoneyPlaces)
	data.SGSTTotal = sgst.StringFixed(types.MoneyPlaces)
	data.IGSTTotal = igst.StringFixed(types.MoneyPlaces)

	return data
}

// Render produces the invoice PDF bytes.
func Render(data DocumentData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(12, "TAX INVOICE", props.Text{
			Size:  18,
			Style: fontstyle.Bold,
			Align: align.Center,
		}),
	)

	m.AddRow(24,
		col.New(6).Add(
			text.New(data.Business.Name, props.Text{Style: fontstyle.Bold}),
			text.New(data.Business.Address, props.Text{Top: 5, Size: 9}),
			text.New("GSTIN: "+data.Business.GSTIN, props.Text{Top: 14, Size: 9}),
		),
		col.New(6).Add(
			text.New("Invoice no: "+data.InvoiceNo, props.Text{Size: 9}),
			text.New("Date: "+data.Date, props.Text{Top: 4, Size: 9}),
			text.New("Bill to: "+data.CustomerName, props.Text{Top: 8, Size: 9}),
			text.New(gstinLine(data.CustomerGSTIN), props.Text{Top: 12, Size: 9}),
		),
	)

	m.AddRow(8,
		text.NewCol(4, "Item", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Rate", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(1, "GST", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(1, "Tax", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, line := range data.Lines {
		m.AddRow(8,
			text.NewCol(4, line.Name, props.Text{Size: 9}),
			text.NewCol(2, line.Qty, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, line.UnitPrice, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(1, line.TaxRate, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(1, line.Tax, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, line.LineTotal, props.Text{Size: 9, Align: align.Right}),
		)
	}

	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "Subtotal", props.Text{Size: 9}),
		text.NewCol(2, data.Subtotal, props.Text{Size: 9, Align: align.Right}),
	)

	if data.SupplyType == tax.SupplyIntra {
		m.AddRow(8,
			col.New(8),
			text.NewCol(2, "CGST", props.Text{Size: 9}),
			text.NewCol(2, data.CGSTTotal, props.Text{Size: 9, Align: align.Right}),
		)
		m.AddRow(8,
			col.New(8),
			text.NewCol(2, "SGST", props.Text{Size: 9}),
			text.NewCol(2, data.SGSTTotal, props.Text{Size: 9, Align: align.Right}),
		)
	} else {
		m.AddRow(8,
			col.New(8),
			text.NewCol(2, "IGST", props.Text{Size: 9}),
			text.NewCol(2, data.IGSTTotal, props.Text{Size: 9, Align: align.Right}),
		)
	}

	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "Total", props.Text{Style: fontstyle.Bold, Size: 10}),
		text.NewCol(2, data.TotalAmount, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

func gstinLine(gstin string) string {
	if gstin == "" {
		return ""
	}
	return "GSTIN: " + gstin
}
