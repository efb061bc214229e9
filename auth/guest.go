package auth

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// POST /auth/guest
func CreateGuestUser(m *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		guestID, token, expires, err := m.IssueGuest()
		if err != nil {
			log.Printf("❌ Guest token generation failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"guest_id":   guestID,
			"token":      token,
			"expires_at": expires,
		})
	}
}
