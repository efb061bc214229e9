package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tienda-verde/storefront-api/models"
	"gorm.io/gorm"
)

var (
	ErrBadCredentials   = errors.New("invalid email or password")
	ErrNotAdmin         = errors.New("user does not have admin permissions")
	ErrPendingApproval  = errors.New("pending approval by super admin")
	ErrGoogleNotEnabled = errors.New("google sign-in is not configured")
)

// Authenticator signs admins in. Identity comes from a password or a
// Google ID token; authorization always comes from the users table.
type Authenticator struct {
	DB              *gorm.DB
	Sessions        *Manager
	Google          IDTokenVerifier // nil when Firebase is not configured
	SuperAdminEmail string
}

type SignInResult struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      models.User `json:"user"`
}

// -------- Core Logic --------

func (a *Authenticator) SignInWithPassword(email, password string) (*SignInResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	if err := a.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}
	if !CheckPassword(user.PasswordHash, password) {
		return nil, ErrBadCredentials
	}
	if !user.IsAdmin() {
		return nil, ErrNotAdmin
	}
	return a.startSession(user)
}

// SignInWithGoogle verifies idToken and admits approved admins. Anyone else
// has their Google session revoked before the error is returned.
func (a *Authenticator) SignInWithGoogle(ctx context.Context, idToken string) (*SignInResult, error) {
	if a.Google == nil {
		return nil, ErrGoogleNotEnabled
	}

	id, err := a.Google.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}
	// accounts are matched by e-mail, so only a provider-verified one counts
	if !id.EmailVerified {
		log.Printf("⚠️ Google sign-in refused for unverified e-mail %s", id.Email)
		return nil, fmt.Errorf("%w: email not verified", ErrInvalidToken)
	}
	email := strings.ToLower(id.Email)

	var user models.User
	err = a.DB.Where("email = ?", email).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = models.User{
			AuthID:   id.UID,
			Email:    email,
			FullName: id.Name,
			Picture:  id.Picture,
			Role:     models.RolePending,
		}
		if email == strings.ToLower(a.SuperAdminEmail) {
			user.Role = models.RoleAdmin
		}
		if err := a.DB.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("register admin: %w", err)
		}
		if !user.IsAdmin() {
			log.Printf("📝 New admin registered: %s (pending approval)", email)
			return nil, a.reject(ctx, id.UID, ErrPendingApproval)
		}
	case err != nil:
		return nil, err
	default:
		if err := a.DB.Model(&user).Updates(models.User{
			AuthID:   id.UID,
			FullName: id.Name,
			Picture:  id.Picture,
		}).Error; err != nil {
			return nil, fmt.Errorf("update admin profile: %w", err)
		}
	}

	switch user.Role {
	case models.RoleAdmin:
		return a.startSession(user)
	case models.RolePending:
		return nil, a.reject(ctx, id.UID, ErrPendingApproval)
	default:
		return nil, a.reject(ctx, id.UID, ErrNotAdmin)
	}
}

func (a *Authenticator) SignOut(sessionID string) {
	a.Sessions.Revoke(sessionID)
}

func (a *Authenticator) startSession(user models.User) (*SignInResult, error) {
	token, expires, err := a.Sessions.IssueAdmin(user)
	if err != nil {
		return nil, err
	}
	return &SignInResult{Token: token, ExpiresAt: expires, User: user}, nil
}

func (a *Authenticator) reject(ctx context.Context, uid string, reason error) error {
	if err := a.Google.RevokeSessions(ctx, uid); err != nil {
		log.Printf("❌ Failed to revoke Google session for %s: %v", uid, err)
	}
	return reason
}

// EnsureSuperAdmin creates or promotes the configured super admin.
func EnsureSuperAdmin(db *gorm.DB, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil
	}

	var user models.User
	err := db.Where("email = ?", email).First(&user).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	user.Email = email
	user.Role = models.RoleAdmin
	if password != "" && !CheckPassword(user.PasswordHash, password) {
		hash, err := HashPassword(password)
		if err != nil {
			return err
		}
		user.PasswordHash = hash
	}
	if user.AuthID == "" {
		user.AuthID = "local:" + email
	}
	return db.Save(&user).Error
}

// -------- Handlers --------

type passwordLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /auth/admin/login
func AdminLoginHandler(a *Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req passwordLoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}
		res, err := a.SignInWithPassword(req.Email, req.Password)
		if err != nil {
			respondSignInError(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// POST /auth/admin/google
func GoogleAdminLoginHandler(a *Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			IDToken string `json:"idToken" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}
		res, err := a.SignInWithGoogle(c.Request.Context(), req.IDToken)
		if err != nil {
			respondSignInError(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// POST /auth/admin/logout (behind the admin middleware)
func LogoutHandler(a *Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sid := c.GetString("session_id"); sid != "" {
			a.SignOut(sid)
		}
		c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
	}
}

// GET /auth/admin/session (behind the admin middleware)
func SessionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString("user_id"),
			"email":   c.GetString("email"),
			"role":    c.GetString("role"),
		})
	}
}

func respondSignInError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrBadCredentials), errors.Is(err, ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNotAdmin), errors.Is(err, ErrPendingApproval):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, ErrGoogleNotEnabled):
		c.JSON(http.StatusNotImplemented, gin.H{"error": err.Error()})
	default:
		log.Printf("❌ Admin sign-in failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Sign-in failed"})
	}
}
