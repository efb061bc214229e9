package salesControllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"
	"github.com/tienda-verde/storefront-api/models"
	"gorm.io/gorm"
)

// Stats summarizes a list of sales. Today and Month cover sales dated from
// midnight and from the first of the month, in the server's time zone.
type Stats struct {
	Total   decimal.Decimal `json:"total"`
	Count   int             `json:"count"`
	Today   decimal.Decimal `json:"today"`
	Month   decimal.Decimal `json:"this_month"`
	Average decimal.Decimal `json:"average"`
}

// -------- Core Logic --------

func SummarizeSales(sales []models.Sale, now time.Time) Stats {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	stats := Stats{
		Total:   decimal.Zero,
		Today:   decimal.Zero,
		Month:   decimal.Zero,
		Average: decimal.Zero,
		Count:   len(sales),
	}
	for _, s := range sales {
		stats.Total = stats.Total.Add(s.Total)
		if !s.SaleDate.Before(startOfDay) {
			stats.Today = stats.Today.Add(s.Total)
		}
		if !s.SaleDate.Before(startOfMonth) {
			stats.Month = stats.Month.Add(s.Total)
		}
	}
	if stats.Count > 0 {
		stats.Average = stats.Total.Div(decimal.NewFromInt(int64(stats.Count))).Round(2)
	}
	return stats
}

func listSales(db *gorm.DB) ([]models.Sale, error) {
	var sales []models.Sale
	err := db.Order("sale_date DESC").Find(&sales).Error
	return sales, err
}

// -------- Handlers --------

// GET /admin/sales
func GetSalesHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sales, err := listSales(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"sales": sales,
			"stats": SummarizeSales(sales, time.Now()),
		})
	}
}

// GET /admin/sales/export
func ExportSalesToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sales, err := listSales(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Ventas")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		header := sheet.AddRow()
		for _, h := range []string{"Fecha", "Pedido", "Cliente", "Metodo de Pago", "Total"} {
			header.AddCell().SetValue(h)
		}
		for _, s := range sales {
			row := sheet.AddRow()
			row.AddCell().SetValue(s.SaleDate.Format("2006-01-02 15:04:05"))
			row.AddCell().SetValue(s.OrderID)
			row.AddCell().SetValue(s.CustomerName)
			row.AddCell().SetValue(s.PaymentMethod)
			total, _ := s.Total.Float64()
			row.AddCell().SetFloatWithFormat(total, "0.00")
		}

		c.Header("Content-Disposition", "attachment; filename=sales.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}
