package reportControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

// GET /admin/reports/sales/export (owner) — same aggregates as the JSON
// report, streamed as a spreadsheet.
func ExportSalesReportToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		from, to, ok := reportRange(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid date range, expected YYYY-MM-DD"})
			return
		}

		report, err := BuildSalesReport(db, from, to)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to build sales report"})
			return
		}

		file := xlsx.NewFile()

		dailySheet, err := file.AddSheet("Daily Sales")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create Excel sheet"})
			return
		}
		headerRow := dailySheet.AddRow()
		for _, h := range []string{"Day", "Orders", "Revenue"} {
			headerRow.AddCell().SetValue(h)
		}
		for _, d := range report.Daily {
			row := dailySheet.AddRow()
			row.AddCell().SetValue(d.Day)
			row.AddCell().SetValue(d.Orders)
			row.AddCell().SetValue(d.Revenue)
		}

		productSheet, err := file.AddSheet("Sales By Product")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create Excel sheet"})
			return
		}
		headerRow = productSheet.AddRow()
		for _, h := range []string{"ProductID", "Product", "Quantity", "Revenue"} {
			headerRow.AddCell().SetValue(h)
		}
		for _, p := range report.ByProduct {
			row := productSheet.AddRow()
			row.AddCell().SetValue(p.ProductID)
			row.AddCell().SetValue(p.ProductName)
			row.AddCell().SetValue(p.Quantity)
			row.AddCell().SetValue(p.Revenue)
		}

		c.Header("Content-Disposition", "attachment; filename=sales-report.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to write Excel file"})
			return
		}
	}
}
