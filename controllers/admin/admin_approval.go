package adminController

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tienda-verde/storefront-api/models"
	"gorm.io/gorm"
)

type emailRequest struct {
	Email string `json:"email" binding:"required"`
}

// ListPendingAdmins returns all Google sign-ups awaiting approval.
func ListPendingAdmins(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var pending []models.User
		if err := db.Where("role = ?", models.RolePending).Order("created_at ASC").Find(&pending).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pending admins"})
			return
		}
		c.JSON(http.StatusOK, pending)
	}
}

func ApproveAdmin(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req emailRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}

		res := db.Model(&models.User{}).
			Where("email = ? AND role = ?", strings.ToLower(req.Email), models.RolePending).
			Update("role", models.RoleAdmin)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve admin"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pending admin not found"})
			return
		}

		log.Printf("✅ Admin approved: %s", req.Email)
		c.JSON(http.StatusOK, gin.H{"message": "Admin approved"})
	}
}

// RejectAdmin deletes a pending sign-up. Approved admins are not touched.
func RejectAdmin(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req emailRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}

		res := db.Where("email = ? AND role = ?", strings.ToLower(req.Email), models.RolePending).Delete(&models.User{})
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reject admin"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pending admin not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Admin rejected"})
	}
}
