package catalogControllers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tienda-verde/storefront-api/models"
	"gorm.io/gorm"
)

// Catalog is everything the storefront needs to render its shelves.
// Stock maps product name to the latest ledger balance.
type Catalog struct {
	Categories    []models.Category    `json:"categories"`
	SubCategories []models.SubCategory `json:"subcategories"`
	Products      []models.Product     `json:"-"`
	Stock         map[string]int       `json:"-"`
}

// ProductView is a product as listed in the storefront.
type ProductView struct {
	models.Product
	Stock int `json:"stock"`
}

type Filter struct {
	Category    string
	SubCategory string
	Search      string
}

// -------- Core Logic --------

// LoadCatalog reads categories, subcategories, products and stock balances.
func LoadCatalog(db *gorm.DB) (*Catalog, error) {
	var cat Catalog
	if err := db.Order("name ASC").Find(&cat.Categories).Error; err != nil {
		return nil, err
	}
	if err := db.Order("name ASC").Find(&cat.SubCategories).Error; err != nil {
		return nil, err
	}
	if err := db.Order("name ASC").Find(&cat.Products).Error; err != nil {
		return nil, err
	}
	stock, err := models.StockBalances(db)
	if err != nil {
		return nil, err
	}
	cat.Stock = stock
	return &cat, nil
}

// Available is the stock balance of a product; unknown products have none.
func (c *Catalog) Available(productName string) int {
	return c.Stock[productName]
}

// Listing returns the products matching f that can still be bought.
func (c *Catalog) Listing(f Filter) []ProductView {
	search := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]ProductView, 0, len(c.Products))
	for _, p := range c.Products {
		if f.Category != "" && !strings.EqualFold(p.CategoryName, f.Category) {
			continue
		}
		if f.SubCategory != "" && !strings.EqualFold(p.SubCategoryName, f.SubCategory) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		stock := c.Available(p.Name)
		if stock <= 0 {
			continue
		}
		out = append(out, ProductView{Product: p, Stock: stock})
	}
	return out
}

// ProductStock loads one product with its current balance.
func ProductStock(db *gorm.DB, name string) (models.Product, int, error) {
	var product models.Product
	if err := db.Where("name = ?", name).First(&product).Error; err != nil {
		return product, 0, err
	}
	balance, err := models.LatestBalance(db, product.Name)
	return product, balance, err
}

// -------- Handlers --------

// GET /store/catalog?category=&subcategory=&search=
func GetCatalog(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		cat, err := LoadCatalog(db)
		if err != nil {
			log.Printf("❌ Failed to load catalog: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load catalog"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"categories":    cat.Categories,
			"subcategories": cat.SubCategories,
			"products": cat.Listing(Filter{
				Category:    c.Query("category"),
				SubCategory: c.Query("subcategory"),
				Search:      c.Query("search"),
			}),
		})
	}
}

// GET /store/products/:name
func GetProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, stock, err := ProductStock(db, c.Param("name"))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
			return
		}
		c.JSON(http.StatusOK, ProductView{Product: product, Stock: stock})
	}
}
