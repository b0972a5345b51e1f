package services

import (
	"bytes"
	"fmt"

	"marketplace/internal/domain/models"
	"marketplace/internal/repositories"
	"marketplace/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// InvoiceService renders a PDF invoice for a placed order.
type InvoiceService struct {
	Orders    repositories.OrdersRepository
	RequestID string
}

func (s InvoiceService) Generate(orderID int64) ([]byte, string, error) {
	order, err := s.Orders.FindByID(orderID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "orders", "generate_invoice", fmt.Sprintf("order_id=%d", orderID))
	return buildInvoicePDF(order)
}

func buildInvoicePDF(o models.Order) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, fmt.Sprintf("INVOICE #%d", o.ID))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Status : %s", o.Status))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Date   : %s", o.CreatedAt.Format("2006-01-02 15:04")))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(90, 8, "Product", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 8, "Qty", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, "Price", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, "Subtotal", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	for _, item := range o.Items {
		pdf.CellFormat(90, 8, item.ProductName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%d", item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 8, utils.FormatMoney(item.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 8, utils.FormatMoney(item.UnitPrice*float64(item.Quantity)), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(150, 8, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, utils.FormatMoney(o.Total), "1", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("invoice-%d.pdf", o.ID)
	return buf.Bytes(), filename, nil
}
