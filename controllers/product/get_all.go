package productcontroller

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/tienda-verde/storefront-api/models"
	"gorm.io/gorm"
)

var sortableColumns = map[string]bool{
	"name":       true,
	"price":      true,
	"created_at": true,
	"updated_at": true,
}

// GetProducts lists products for the admin table, stock included.
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1️⃣ Filtering & sorting params
		search := strings.ToLower(strings.TrimSpace(c.Query("search")))
		category := c.Query("category")
		subCategory := c.Query("subcategory")
		sortBy := c.DefaultQuery("sort_by", "name")
		if !sortableColumns[sortBy] {
			sortBy = "name"
		}
		sortOrder := strings.ToLower(c.DefaultQuery("order", "asc"))
		if sortOrder != "asc" && sortOrder != "desc" {
			sortOrder = "asc"
		}

		// 2️⃣ Build base query
		query := db.Model(&models.Product{})
		if search != "" {
			likePattern := "%" + search + "%"
			query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", likePattern, likePattern)
		}
		if category != "" {
			query = query.Where("category_name = ?", category)
		}
		if subCategory != "" {
			query = query.Where("sub_category_name = ?", subCategory)
		}

		// 3️⃣ Price range
		for param, op := range map[string]string{"min_price": ">=", "max_price": "<="} {
			v := c.Query(param)
			if v == "" {
				continue
			}
			price, err := decimal.NewFromString(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + param})
				return
			}
			query = query.Where("price "+op+" ?", price)
		}

		var products []models.Product
		if err := query.Order(fmt.Sprintf("%s %s", sortBy, sortOrder)).Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		// 4️⃣ Attach balances
		balances, err := models.StockBalances(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stock"})
			return
		}
		type productRow struct {
			models.Product
			Stock int `json:"stock"`
		}
		rows := make([]productRow, 0, len(products))
		for _, p := range products {
			rows = append(rows, productRow{Product: p, Stock: balances[p.Name]})
		}
		c.JSON(http.StatusOK, rows)
	}
}
