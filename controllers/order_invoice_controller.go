package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Arjun-717/DineDash/config"
	"github.com/Arjun-717/DineDash/models"
	"github.com/Arjun-717/DineDash/utils"
	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
)

// DownloadInvoice generates and returns a PDF invoice for the order.
// Invoices are only available once the order has been handed over.
func DownloadInvoice(c *gin.Context) {
	utils.LogInfo("DownloadInvoice called")

	user, ok := currentUser(c)
	if !ok {
		utils.Unauthorized(c, "User not found")
		return
	}

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	var order models.Order
	if err := config.DB.Preload("OrderItems").Preload("Outlet").Preload("User").
		Where("id = ? AND user_id = ?", orderID, user.ID).First(&order).Error; err != nil {
		utils.LogError("Order not found for invoice - Order ID: %d, User ID: %d", orderID, user.ID)
		utils.NotFound(c, "Order not found")
		return
	}

	if order.Status != models.OrderStatusDelivered && order.Status != models.OrderStatusCompleted {
		utils.LogError("Invoice requested for order %d in state %s", order.ID, order.Status)
		utils.BadRequest(c, "Invoice is available only after the order is delivered or completed", nil)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Outlet info
	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(100, 10, utils.AppName)
	pdf.SetFont("Arial", "", 12)
	pdf.Ln(8)
	pdf.Cell(100, 8, order.Outlet.Name)
	pdf.Ln(8)
	pdf.Cell(100, 8, order.Outlet.Address)
	pdf.Ln(8)
	pdf.Cell(100, 8, "Phone: "+order.Outlet.Phone)
	pdf.Ln(12)

	// Invoice title and order info
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(100, 10, "INVOICE")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(80, 8, "Order: "+order.OrderNumber)
	pdf.Cell(60, 8, "Date: "+order.CreatedAt.Format("2006-01-02 15:04:05"))
	pdf.Ln(8)
	pdf.Cell(80, 8, "Order Type: "+order.OrderType)
	pdf.Cell(60, 8, "Status: "+string(order.Status))
	pdf.Ln(8)

	// Customer info
	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(100, 8, "Billed To:")
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(100, 8, order.User.FirstName+" "+order.User.LastName)
	pdf.Ln(6)
	pdf.Cell(100, 8, order.User.Email)
	pdf.Ln(6)
	pdf.Cell(100, 8, "Phone: "+order.User.Phone)
	pdf.Ln(10)

	// Items table header
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(70, 8, "Item", "1", 0, "C", false, 0, "")
	pdf.CellFormat(20, 8, "Qty", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 8, "Price", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 8, "Total", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 12)
	for _, item := range order.OrderItems {
		pdf.CellFormat(70, 8, item.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 8, strconv.Itoa(item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", item.Price), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", item.Total), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	// Summary section
	pdf.Ln(4)
	invoiceSummaryRow(pdf, "Subtotal:", order.Subtotal)
	invoiceSummaryRow(pdf, "Delivery Fee:", order.DeliveryFee)
	invoiceSummaryRow(pdf, "Tax:", order.Tax)
	if order.Discount > 0 {
		label := "Discount:"
		if order.CouponCode != "" {
			label = "Discount (" + order.CouponCode + "):"
		}
		invoiceSummaryRow(pdf, label, -order.Discount)
	}
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(120, 10, "Grand Total:", "", 0, "L", false, 0, "")
	pdf.CellFormat(30, 10, fmt.Sprintf("%.2f", order.Total), "", 1, "R", false, 0, "")

	// Thank you note
	pdf.Ln(10)
	pdf.SetFont("Arial", "I", 12)
	pdf.Cell(0, 10, "Thank you for ordering with "+utils.AppName+"!")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.LogError("Failed to generate invoice for order %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to generate invoice", nil)
		return
	}
	utils.LogInfo("PDF invoice generated for order %s", order.OrderNumber)

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", "attachment; filename=invoice-"+order.OrderNumber+".pdf")
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

func invoiceSummaryRow(pdf *gofpdf.Fpdf, label string, amount float64) {
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(120, 8, label, "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", amount), "", 1, "R", false, 0, "")
}
