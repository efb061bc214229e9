package stockControllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tienda-verde/storefront-api/models"
	"gorm.io/gorm"
)

var ErrUnknownProduct = errors.New("product does not exist")

const (
	StatusOut = "out"
	StatusLow = "low"
	StatusOK  = "ok"
)

type MovementInput struct {
	ProductName  string `json:"product_name" binding:"required"`
	MovementType string `json:"movement_type" binding:"required"`
	Quantity     int    `json:"quantity" binding:"required"`
	Note         string `json:"note"`
}

// Availability is one product line of the stock report.
type Availability struct {
	ProductName  string `json:"product_name"`
	CategoryName string `json:"category_name"`
	Balance      int    `json:"balance"`
	Status       string `json:"status"`
}

type Report struct {
	Items      []Availability `json:"items"`
	Total      int            `json:"total"`
	InStock    int            `json:"in_stock"`
	LowStock   int            `json:"low_stock"`
	OutOfStock int            `json:"out_of_stock"`
	Threshold  int            `json:"threshold"`
	Categories []string       `json:"categories"`
}

// -------- Core Logic --------

// StockStatus classifies a balance: out at zero or below, low under
// threshold, ok otherwise.
func StockStatus(balance, threshold int) string {
	switch {
	case balance <= 0:
		return StatusOut
	case balance < threshold:
		return StatusLow
	default:
		return StatusOK
	}
}

// RecordMovement appends a manual ledger movement for an existing product.
func RecordMovement(db *gorm.DB, in MovementInput) (*models.StockMovement, error) {
	kind, err := models.ParseMovementType(in.MovementType)
	if err != nil {
		return nil, err
	}

	var mv *models.StockMovement
	err = db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Product{}).Where("name = ?", strings.TrimSpace(in.ProductName)).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrUnknownProduct
		}
		mv, err = models.AppendStockMovement(tx, in.ProductName, kind, in.Quantity, strings.TrimSpace(in.Note))
		return err
	})
	if err != nil {
		return nil, err
	}
	return mv, nil
}

// BuildReport joins products with their balances, filtered by category and
// a case-insensitive name search. Counters cover the filtered lines.
func BuildReport(db *gorm.DB, threshold int, category, search string) (*Report, error) {
	var products []models.Product
	if err := db.Order("name ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	balances, err := models.StockBalances(db)
	if err != nil {
		return nil, err
	}

	report := &Report{Items: []Availability{}, Threshold: threshold, Categories: []string{}}
	seen := map[string]bool{}
	search = strings.ToLower(strings.TrimSpace(search))

	for _, p := range products {
		if p.CategoryName != "" && !seen[p.CategoryName] {
			seen[p.CategoryName] = true
			report.Categories = append(report.Categories, p.CategoryName)
		}
		if category != "" && p.CategoryName != category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}

		balance := balances[p.Name]
		line := Availability{
			ProductName:  p.Name,
			CategoryName: p.CategoryName,
			Balance:      balance,
			Status:       StockStatus(balance, threshold),
		}
		report.Items = append(report.Items, line)

		report.Total++
		switch line.Status {
		case StatusOut:
			report.OutOfStock++
		case StatusLow:
			report.LowStock++
			report.InStock++
		default:
			report.InStock++
		}
	}
	sort.Strings(report.Categories)
	return report, nil
}

// -------- Handlers --------

// POST /admin/stock/movements
func RecordMovementHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input MovementInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		mv, err := RecordMovement(db, input)
		if err != nil {
			switch {
			case errors.Is(err, models.ErrInvalidMovementType),
				errors.Is(err, models.ErrInvalidQuantity),
				errors.Is(err, models.ErrMovementProduct),
				errors.Is(err, ErrUnknownProduct):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				log.Printf("❌ Failed to record stock movement: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record movement"})
			}
			return
		}

		log.Printf("📦 %s %d x %s (balance %d -> %d)", mv.MovementType, mv.Quantity, mv.ProductName, mv.PriorBalance, mv.NewBalance)
		c.JSON(http.StatusCreated, mv)
	}
}

// GET /admin/stock/movements?product=&limit=
func ListMovementsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Order("created_at DESC").Order("id DESC")
		if p := c.Query("product"); p != "" {
			query = query.Where("product_name = ?", p)
		}
		if l := c.Query("limit"); l != "" {
			limit, err := strconv.Atoi(l)
			if err != nil || limit <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
				return
			}
			query = query.Limit(limit)
		}

		var movements []models.StockMovement
		if err := query.Find(&movements).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch movements"})
			return
		}
		c.JSON(http.StatusOK, movements)
	}
}

// GET /admin/stock/balance/:product
func GetBalanceHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("product")
		balance, err := models.LatestBalance(db, name)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to read balance for %s", name)})
			return
		}
		c.JSON(http.StatusOK, gin.H{"product_name": name, "balance": balance})
	}
}

// GET /admin/stock/availability?category=&search=
func AvailabilityHandler(db *gorm.DB, threshold int) gin.HandlerFunc {
	return func(c *gin.Context) {
		report, err := BuildReport(db, threshold, c.Query("category"), c.Query("search"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build stock report"})
			return
		}
		c.JSON(http.StatusOK, report)
	}
}
