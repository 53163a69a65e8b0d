package controllers

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"

	"github.com/Arjun-717/DineDash/config"
	"github.com/Arjun-717/DineDash/models"
	"github.com/Arjun-717/DineDash/utils"
)

type salesSummary struct {
	TotalOrders       int
	TotalRevenue      float64
	TotalItems        int
	TotalCustomers    int
	TotalDiscounts    float64
	TotalDeliveryFees float64
	TotalCancelled    int
	AverageOrderVal   float64
}

// reportWindow resolves a report period into a concrete date range
func reportWindow(period string) (time.Time, time.Time, bool) {
	now := time.Now()
	switch period {
	case "day":
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		end := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999999999, now.Location())
		return start, end, true
	case "week":
		end := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999999999, now.Location())
		start := end.AddDate(0, 0, -6)
		start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
		return start, end, true
	case "month":
		start := now.AddDate(0, 0, -30).Truncate(24 * time.Hour)
		end := now.Add(24 * time.Hour)
		return start, end, true
	}
	return time.Time{}, time.Time{}, false
}

func buildSalesSummary(orders []models.Order) salesSummary {
	var summary salesSummary
	customerSet := make(map[uint]bool)
	for _, order := range orders {
		if order.Status == models.OrderStatusCancelled {
			summary.TotalCancelled++
			continue
		}
		summary.TotalOrders++
		summary.TotalRevenue += order.Total
		summary.TotalDiscounts += order.Discount
		summary.TotalDeliveryFees += order.DeliveryFee
		customerSet[order.UserID] = true
		for _, item := range order.OrderItems {
			summary.TotalItems += item.Quantity
		}
	}
	summary.TotalCustomers = len(customerSet)
	if summary.TotalOrders > 0 {
		summary.AverageOrderVal = math.Round((summary.TotalRevenue/float64(summary.TotalOrders))*100) / 100
	}
	summary.TotalRevenue = math.Round(summary.TotalRevenue*100) / 100
	summary.TotalDiscounts = math.Round(summary.TotalDiscounts*100) / 100
	summary.TotalDeliveryFees = math.Round(summary.TotalDeliveryFees*100) / 100
	return summary
}

// DownloadSalesReportExcel exports orders for a period as an Excel
// sheet with a summary block. Admin only.
func DownloadSalesReportExcel(c *gin.Context) {
	utils.LogInfo("DownloadSalesReportExcel called")

	period := c.DefaultQuery("period", "day")
	startDate, endDate, ok := reportWindow(period)
	if !ok {
		utils.LogError("Invalid period specified: %s", period)
		utils.BadRequest(c, "Invalid period", "Period must be day, week, or month")
		return
	}
	utils.LogDebug("Generating Excel report for period: %s", period)

	var orders []models.Order
	query := config.DB.Where("created_at >= ? AND created_at <= ?", startDate, endDate).
		Preload("User").
		Preload("Outlet").
		Preload("OrderItems").
		Order("created_at DESC")
	if err := query.Find(&orders).Error; err != nil {
		utils.LogError("Failed to fetch orders: %v", err)
		utils.InternalServerError(c, "Failed to fetch orders", err.Error())
		return
	}
	utils.LogDebug("Retrieved %d orders for Excel report", len(orders))

	summary := buildSalesSummary(orders)

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Sales Report")
	if err != nil {
		utils.LogError("Failed to create Excel sheet: %v", err)
		utils.InternalServerError(c, "Failed to create Excel sheet", err.Error())
		return
	}

	// Company details
	companyRow := sheet.AddRow()
	companyRow.AddCell().SetString(strings.ToUpper(utils.AppName) + " - Sales Report")
	companyRow = sheet.AddRow()
	companyRow.AddCell().SetString("Restaurant Delivery Platform")
	companyRow = sheet.AddRow()
	companyRow.AddCell().SetString("Period: " + strings.ToUpper(period) + " | " + startDate.Format("2006-01-02") + " to " + endDate.Format("2006-01-02"))
	sheet.AddRow() // spacing

	// Table headers
	headers := []string{"Order No", "Customer", "Outlet", "Date", "Type", "Items", "Subtotal", "Delivery Fee", "Tax", "Discount", "Total", "Status"}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		cell := headerRow.AddCell()
		cell.SetString(h)
		style := xlsx.NewStyle()
		font := xlsx.DefaultFont()
		font.Bold = true
		style.Font = *font
		cell.SetStyle(style)
	}

	// Table rows
	for _, order := range orders {
		row := sheet.AddRow()
		row.AddCell().SetString(order.OrderNumber)
		row.AddCell().SetString(order.User.Username)
		row.AddCell().SetString(order.Outlet.Name)
		row.AddCell().SetString(order.CreatedAt.Format("2006-01-02 15:04"))
		row.AddCell().SetString(order.OrderType)
		row.AddCell().SetInt(len(order.OrderItems))
		row.AddCell().SetFloat(order.Subtotal)
		row.AddCell().SetFloat(order.DeliveryFee)
		row.AddCell().SetFloat(order.Tax)
		row.AddCell().SetFloat(order.Discount)
		row.AddCell().SetFloat(order.Total)
		row.AddCell().SetString(string(order.Status))
	}

	sheet.AddRow() // spacing

	// Summary section
	summaryRow := sheet.AddRow()
	summaryRow.AddCell().SetString("Summary")
	style := xlsx.NewStyle()
	font := xlsx.DefaultFont()
	font.Bold = true
	style.Font = *font
	summaryRow.Cells[0].SetStyle(style)

	summaryData := [][]string{
		{"Total Orders", fmt.Sprintf("%d", summary.TotalOrders)},
		{"Total Revenue", fmt.Sprintf("%.2f", summary.TotalRevenue)},
		{"Total Items", fmt.Sprintf("%d", summary.TotalItems)},
		{"Total Customers", fmt.Sprintf("%d", summary.TotalCustomers)},
		{"Total Discounts", fmt.Sprintf("%.2f", summary.TotalDiscounts)},
		{"Total Delivery Fees", fmt.Sprintf("%.2f", summary.TotalDeliveryFees)},
		{"Cancelled Orders", fmt.Sprintf("%d", summary.TotalCancelled)},
		{"Avg. Order Value", fmt.Sprintf("%.2f", summary.AverageOrderVal)},
	}
	for _, data := range summaryData {
		row := sheet.AddRow()
		row.AddCell().SetString(data[0])
		row.AddCell().SetString(data[1])
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=sales_report_%s.xlsx", period))
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write Excel file: %v", err)
		utils.InternalServerError(c, "Failed to write Excel file", err.Error())
		return
	}
	utils.LogInfo("Successfully generated Excel report for period %s", period)
}
