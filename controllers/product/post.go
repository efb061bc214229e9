package productcontroller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/tienda-verde/storefront-api/models"
	"gorm.io/gorm"
)

var ErrDuplicateName = errors.New("a record with this name already exists")

type ProductInput struct {
	Name            string          `json:"name" binding:"required"`
	CategoryName    string          `json:"category_name"`
	SubCategoryName string          `json:"sub_category_name"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	ImageURL        string          `json:"image_url"`
}

func (in ProductInput) apply(p *models.Product) {
	p.Name = in.Name
	p.CategoryName = in.CategoryName
	p.SubCategoryName = in.SubCategoryName
	p.Description = strings.TrimSpace(in.Description)
	p.Price = in.Price
	p.ImageURL = strings.TrimSpace(in.ImageURL)
}

// nameTaken reports whether another row of model already uses name.
func nameTaken(db *gorm.DB, model any, name string, exceptID uint) (bool, error) {
	var count int64
	err := db.Model(model).Where("name = ? AND id <> ?", name, exceptID).Count(&count).Error
	return count > 0, err
}

// CreateProduct creates a product. Stock is not set here; it comes from
// ledger movements.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var product models.Product
		input.apply(&product)
		if err := product.Normalize(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		taken, err := nameTaken(db, &models.Product{}, product.Name, 0)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
			return
		}
		if taken {
			c.JSON(http.StatusConflict, gin.H{"error": ErrDuplicateName.Error()})
			return
		}

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}
