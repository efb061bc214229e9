package productcontroller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tienda-verde/storefront-api/models"
	"gorm.io/gorm"
)

type CategoryInput struct {
	Name         string `json:"name" binding:"required"`
	CategoryName string `json:"category_name"` // subcategories only
	Description  string `json:"description"`
}

func (in *CategoryInput) normalize() bool {
	in.Name = strings.TrimSpace(in.Name)
	in.CategoryName = strings.TrimSpace(in.CategoryName)
	in.Description = strings.TrimSpace(in.Description)
	return in.Name != ""
}

func bindCategory(c *gin.Context) (CategoryInput, bool) {
	var input CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil || !input.normalize() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return input, false
	}
	return input, true
}

// -------- Categories --------

func CreateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		input, ok := bindCategory(c)
		if !ok {
			return
		}
		if taken, err := nameTaken(db, &models.Category{}, input.Name, 0); err != nil || taken {
			respondTaken(c, err)
			return
		}

		category := models.Category{Name: input.Name, Description: input.Description}
		if err := db.Create(&category).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
			return
		}
		c.JSON(http.StatusCreated, category)
	}
}

// GetAllCategories returns all categories ordered by name.
func GetAllCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []models.Category
		if err := db.Order("name ASC").Find(&categories).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}

// UpdateCategory renames a category and carries the new name over to its
// subcategories and products.
func UpdateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c)
		if !ok {
			return
		}
		var category models.Category
		if err := db.First(&category, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		input, ok := bindCategory(c)
		if !ok {
			return
		}
		if taken, err := nameTaken(db, &models.Category{}, input.Name, category.ID); err != nil || taken {
			respondTaken(c, err)
			return
		}

		oldName := category.Name
		category.Name = input.Name
		category.Description = input.Description

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Save(&category).Error; err != nil {
				return err
			}
			if oldName == category.Name {
				return nil
			}
			if err := tx.Model(&models.SubCategory{}).Where("category_name = ?", oldName).
				Update("category_name", category.Name).Error; err != nil {
				return err
			}
			return tx.Model(&models.Product{}).Where("category_name = ?", oldName).
				Update("category_name", category.Name).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
			return
		}
		c.JSON(http.StatusOK, category)
	}
}

func DeleteCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c)
		if !ok {
			return
		}
		var category models.Category
		if err := db.First(&category, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		if err := db.Delete(&category).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
	}
}

// -------- Subcategories --------

func CreateSubCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		input, ok := bindCategory(c)
		if !ok {
			return
		}
		if taken, err := nameTaken(db, &models.SubCategory{}, input.Name, 0); err != nil || taken {
			respondTaken(c, err)
			return
		}

		sub := models.SubCategory{Name: input.Name, CategoryName: input.CategoryName, Description: input.Description}
		if err := db.Create(&sub).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create subcategory"})
			return
		}
		c.JSON(http.StatusCreated, sub)
	}
}

// GET /subcategories?category=
func GetAllSubCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Order("name ASC")
		if cat := c.Query("category"); cat != "" {
			query = query.Where("category_name = ?", cat)
		}
		var subs []models.SubCategory
		if err := query.Find(&subs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch subcategories"})
			return
		}
		c.JSON(http.StatusOK, subs)
	}
}

func UpdateSubCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c)
		if !ok {
			return
		}
		var sub models.SubCategory
		if err := db.First(&sub, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Subcategory not found"})
			return
		}
		input, ok := bindCategory(c)
		if !ok {
			return
		}
		if taken, err := nameTaken(db, &models.SubCategory{}, input.Name, sub.ID); err != nil || taken {
			respondTaken(c, err)
			return
		}

		oldName := sub.Name
		sub.Name = input.Name
		sub.CategoryName = input.CategoryName
		sub.Description = input.Description

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Save(&sub).Error; err != nil {
				return err
			}
			if oldName == sub.Name {
				return nil
			}
			return tx.Model(&models.Product{}).Where("sub_category_name = ?", oldName).
				Update("sub_category_name", sub.Name).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update subcategory"})
			return
		}
		c.JSON(http.StatusOK, sub)
	}
}

func DeleteSubCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c)
		if !ok {
			return
		}
		res := db.Delete(&models.SubCategory{}, id)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete subcategory"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Subcategory not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Subcategory deleted successfully"})
	}
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return 0, false
	}
	return uint(id), true
}

func respondTaken(c *gin.Context, err error) {
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate name"})
		return
	}
	c.JSON(http.StatusConflict, gin.H{"error": ErrDuplicateName.Error()})
}
