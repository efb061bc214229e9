package productcontroller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"
	"github.com/tienda-verde/storefront-api/models"
	"gorm.io/gorm"
)

// ImportResult counts what an import did.
type ImportResult struct {
	Created int `json:"created_count"`
	Updated int `json:"updated_count"`
	Skipped int `json:"skipped_count"`
}

// ImportProducts upserts products by name from the first sheet, using the
// export layout. The stock column is ignored; stock only moves through the
// ledger.
func ImportProducts(db *gorm.DB, sheet *xlsx.Sheet) ImportResult {
	var res ImportResult

	for i := 1; i < len(sheet.Rows); i++ {
		row := sheet.Rows[i]
		if row == nil || len(row.Cells) < 5 {
			res.Skipped++
			continue
		}

		get := func(index int) string {
			if index < len(row.Cells) {
				return strings.TrimSpace(row.Cells[index].String())
			}
			return ""
		}

		price, err := decimal.NewFromString(get(4))
		if err != nil {
			res.Skipped++
			continue
		}
		product := models.Product{
			Name:            get(0),
			CategoryName:    get(1),
			SubCategoryName: get(2),
			Description:     get(3),
			Price:           price,
			ImageURL:        get(5),
		}
		if err := product.Normalize(); err != nil {
			res.Skipped++
			continue
		}

		var existing models.Product
		err = db.Where("name = ?", product.Name).First(&existing).Error
		switch {
		case err == nil:
			existing.CategoryName = product.CategoryName
			existing.SubCategoryName = product.SubCategoryName
			existing.Description = product.Description
			existing.Price = product.Price
			existing.ImageURL = product.ImageURL
			if err := db.Save(&existing).Error; err != nil {
				res.Skipped++
				continue
			}
			res.Updated++
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := db.Create(&product).Error; err != nil {
				res.Skipped++
				continue
			}
			res.Created++
		default:
			res.Skipped++
		}
	}
	return res
}

func ImportProductsFromExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		excelFileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is required"})
			return
		}

		file, err := excelFileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open Excel file"})
			return
		}
		defer file.Close()

		xlFile, err := xlsx.OpenReaderAt(file, excelFileHeader.Size)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse Excel file"})
			return
		}

		if len(xlFile.Sheets) == 0 || len(xlFile.Sheets[0].Rows) < 2 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is empty or missing header row"})
			return
		}

		res := ImportProducts(db, xlFile.Sheets[0])
		c.JSON(http.StatusOK, gin.H{
			"message":       "Import completed",
			"created_count": res.Created,
			"updated_count": res.Updated,
			"skipped_count": res.Skipped,
		})
	}
}
