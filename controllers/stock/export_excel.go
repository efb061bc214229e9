package stockControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"github.com/tienda-verde/storefront-api/models"
	"gorm.io/gorm"
)

// GET /admin/stock/export
func ExportMovementsToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var movements []models.StockMovement
		if err := db.Order("created_at DESC").Order("id DESC").Find(&movements).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch movements"})
			return
		}

		file, err := movementsWorkbook(movements)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		c.Header("Content-Disposition", "attachment; filename=stock.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}

func movementsWorkbook(movements []models.StockMovement) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Stock")
	if err != nil {
		return nil, err
	}

	header := sheet.AddRow()
	for _, h := range []string{"Fecha", "Producto", "Tipo", "Cantidad", "Saldo Anterior", "Saldo Final", "Nota"} {
		header.AddCell().SetValue(h)
	}

	for _, m := range movements {
		row := sheet.AddRow()
		row.AddCell().SetValue(m.CreatedAt.Format("2006-01-02 15:04:05"))
		row.AddCell().SetValue(m.ProductName)
		row.AddCell().SetValue(string(m.MovementType))
		row.AddCell().SetInt(m.Quantity)
		row.AddCell().SetInt(m.PriorBalance)
		row.AddCell().SetInt(m.NewBalance)
		row.AddCell().SetValue(m.Note)
	}
	return file, nil
}
