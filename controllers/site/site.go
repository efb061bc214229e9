package siteControllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tienda-verde/storefront-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// -------- Public --------

// GET /store/site
// Settings come back as a name -> value map.
func GetSiteInfo(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var settings []models.SiteSetting
		if err := db.Find(&settings).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch settings"})
			return
		}
		var links []models.SocialLink
		if err := db.Order("name ASC").Find(&links).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch social links"})
			return
		}

		values := make(map[string]string, len(settings))
		for _, s := range settings {
			values[s.Name] = s.Value
		}
		c.JSON(http.StatusOK, gin.H{"settings": values, "social_links": links})
	}
}

// GET /store/payment-methods
func GetActivePaymentMethods(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var methods []models.PaymentMethod
		if err := db.Where("active = ?", true).Order("name ASC").Find(&methods).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payment methods"})
			return
		}
		c.JSON(http.StatusOK, methods)
	}
}

// GET /store/faqs
func GetActiveFAQs(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Where("active = ?", true).Order("position ASC").Order("id ASC")
		if cat := c.Query("category"); cat != "" {
			query = query.Where("category = ?", cat)
		}
		var faqs []models.FAQ
		if err := query.Find(&faqs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch FAQs"})
			return
		}
		c.JSON(http.StatusOK, faqs)
	}
}

type LeadInput struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// POST /store/leads
func CreateLead(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LeadInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if strings.TrimSpace(input.Email) == "" && strings.TrimSpace(input.Phone) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email or phone is required"})
			return
		}

		lead := models.Lead{
			Name:    strings.TrimSpace(input.Name),
			Email:   strings.TrimSpace(input.Email),
			Phone:   strings.TrimSpace(input.Phone),
			Message: strings.TrimSpace(input.Message),
		}
		if err := db.Create(&lead).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save lead"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Thanks, we will contact you soon", "id": lead.ID})
	}
}

// -------- Admin --------

type SettingInput struct {
	Value string `json:"value"`
}

// PUT /admin/settings/:name
func UpsertSetting(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input SettingInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		setting := models.SiteSetting{Name: c.Param("name"), Value: strings.TrimSpace(input.Value)}
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).Create(&setting).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save setting"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"name": setting.Name, "value": setting.Value})
	}
}

type SocialLinkInput struct {
	Name string `json:"name" binding:"required"`
	Link string `json:"link" binding:"required,url"`
}

// POST /admin/social-links
func CreateSocialLink(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input SocialLinkInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		link := models.SocialLink{Name: input.Name, Link: input.Link}
		if err := db.Create(&link).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save social link"})
			return
		}
		c.JSON(http.StatusCreated, link)
	}
}

// DELETE /admin/social-links/:id
func DeleteSocialLink(db *gorm.DB) gin.HandlerFunc {
	return deleteByID[models.SocialLink](db, "Social link")
}

// GET /admin/payment-methods
func GetAllPaymentMethods(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var methods []models.PaymentMethod
		if err := db.Order("name ASC").Find(&methods).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payment methods"})
			return
		}
		c.JSON(http.StatusOK, methods)
	}
}

type PaymentMethodInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Active      *bool  `json:"active"`
}

// POST /admin/payment-methods
func CreatePaymentMethod(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input PaymentMethodInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		method := models.PaymentMethod{
			Name:        strings.TrimSpace(input.Name),
			Description: input.Description,
			Active:      input.Active == nil || *input.Active,
		}

		var count int64
		if err := db.Model(&models.PaymentMethod{}).Where("name = ?", method.Name).Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate payment method"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "payment method already exists"})
			return
		}
		if err := db.Create(&method).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment method"})
			return
		}
		c.JSON(http.StatusCreated, method)
	}
}

// PUT /admin/payment-methods/:id
func UpdatePaymentMethod(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c)
		if !ok {
			return
		}
		var method models.PaymentMethod
		if err := db.First(&method, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment method not found"})
			return
		}

		var input PaymentMethodInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		method.Name = strings.TrimSpace(input.Name)
		method.Description = input.Description
		if input.Active != nil {
			method.Active = *input.Active
		}
		if err := db.Save(&method).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update payment method"})
			return
		}
		c.JSON(http.StatusOK, method)
	}
}

// DELETE /admin/payment-methods/:id
func DeletePaymentMethod(db *gorm.DB) gin.HandlerFunc {
	return deleteByID[models.PaymentMethod](db, "Payment method")
}

type FAQInput struct {
	Question string `json:"question" binding:"required"`
	Answer   string `json:"answer" binding:"required"`
	Category string `json:"category"`
	Position int    `json:"order_position"`
	Active   *bool  `json:"active"`
}

// POST /admin/faqs
func CreateFAQ(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input FAQInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		faq := models.FAQ{
			Question: input.Question,
			Answer:   input.Answer,
			Category: input.Category,
			Position: input.Position,
			Active:   input.Active == nil || *input.Active,
		}
		if err := db.Create(&faq).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create FAQ"})
			return
		}
		c.JSON(http.StatusCreated, faq)
	}
}

// DELETE /admin/faqs/:id
func DeleteFAQ(db *gorm.DB) gin.HandlerFunc {
	return deleteByID[models.FAQ](db, "FAQ")
}

// GET /admin/leads
func GetLeads(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var leads []models.Lead
		if err := db.Order("created_at DESC").Find(&leads).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch leads"})
			return
		}
		c.JSON(http.StatusOK, leads)
	}
}

func deleteByID[T any](db *gorm.DB, label string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c)
		if !ok {
			return
		}
		res := db.Delete(new(T), id)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete " + strings.ToLower(label)})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": label + " not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": label + " deleted successfully"})
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
