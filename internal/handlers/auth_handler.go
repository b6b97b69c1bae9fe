package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/luminacoach/lumina/internal/audit"
	"github.com/luminacoach/lumina/internal/config"
	"github.com/luminacoach/lumina/internal/httperr"
	"github.com/luminacoach/lumina/internal/middleware"
	"github.com/luminacoach/lumina/internal/models"
	"github.com/luminacoach/lumina/internal/seed"
	"github.com/luminacoach/lumina/internal/tokenstore"
	"github.com/luminacoach/lumina/internal/validators"
)

type AuthHandler struct {
	db      *gorm.DB
	config  *config.Config
	revoked tokenstore.Store
	audit   *audit.Dispatcher

	// resolver checks sign-up email domains when VerifyEmailDomains is set.
	// nil uses the system resolver.
	resolver validators.Resolver
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, revoked tokenstore.Store, audit *audit.Dispatcher) *AuthHandler {
	return &AuthHandler{db: db, config: cfg, revoked: revoked, audit: audit}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	PracticeName string `json:"practiceName"`
	Timezone     string `json:"timezone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// OAuthRequest carries the identity returned by the provider's consent
// screen. Both fields are optional and only read in DEV_MODE; otherwise a
// per-provider identity is used.
type OAuthRequest struct {
	Email string `json:"email" binding:"omitempty,email"`
	Name  string `json:"name"`
}

// --------- Responses ---------

type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type AuthResponse struct {
	AccessToken string       `json:"accessToken"`
	Provider    string       `json:"provider,omitempty"`
	User        UserResponse `json:"user"`
}

func userResponse(p *models.Provider) UserResponse {
	return UserResponse{ID: p.ID, Name: p.Name, Email: p.Email}
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if h.config.VerifyEmailDomains && !validators.IsEmailDomainValid(c.Request.Context(), h.resolver, email) {
		httperr.BadRequest(c, "invalid_email_domain", "The email domain does not accept mail.")
		return
	}

	var count int64
	if err := h.db.Model(&models.Provider{}).Where("email = ?", email).Count(&count).Error; err != nil {
		httperr.Internal(c, "failed_to_check_email", "Could not create account.")
		return
	}
	if count > 0 {
		httperr.Conflict(c, "email_already_exists", "An account with this email already exists.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not create account.")
		return
	}

	provider := models.Provider{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hashed),
		PracticeName: strings.TrimSpace(req.PracticeName),
		Timezone:     req.Timezone,
		TemplateMode: "default",
	}

	if err := h.db.Create(&provider).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "email_already_exists", "An account with this email already exists.")
			return
		}
		httperr.Internal(c, "failed_to_create_provider", "Could not create account.")
		return
	}

	h.respondWithToken(c, http.StatusCreated, &provider, "")
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var provider models.Provider
	if err := h.db.Where("email = ?", email).First(&provider).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "Invalid credentials")
			return
		}
		httperr.Internal(c, "internal_error", "Unexpected error.")
		return
	}

	if provider.PasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(provider.PasswordHash), []byte(req.Password)) != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid credentials")
		return
	}

	h.respondWithToken(c, http.StatusOK, &provider, "")
}

// OAuthLogin finds or creates the provider account for an OAuth identity.
// It never signs into an account created by password or by another
// provider. New accounts get the demo practice when DEV_MODE is on.
func (h *AuthHandler) OAuthLogin(c *gin.Context) {
	oauthProvider := strings.ToLower(c.Param("provider"))
	if !h.config.AllowsOAuthProvider(oauthProvider) {
		httperr.BadRequest(c, "unsupported_provider", "Unsupported sign-in provider.")
		return
	}

	var req OAuthRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			invalidRequest(c, err)
			return
		}
	}

	// Without a real provider round trip the body is unverified, so it only
	// picks the identity in DEV_MODE.
	email, name := "", ""
	if h.config.DevMode {
		email = strings.ToLower(strings.TrimSpace(req.Email))
		name = strings.TrimSpace(req.Name)
	}
	if email == "" {
		email = "coach+" + oauthProvider + "@lumina.local"
	}
	if name == "" {
		name = "Lumina Coach"
	}

	var provider models.Provider
	err := h.db.Where("email = ?", email).First(&provider).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		provider = models.Provider{
			Name:          name,
			Email:         email,
			OAuthProvider: oauthProvider,
			TemplateMode:  "default",
		}
		if err := h.db.Create(&provider).Error; err != nil {
			httperr.Internal(c, "failed_to_create_provider", "Could not create account.")
			return
		}
		if h.config.DevMode {
			if err := seed.Demo(c.Request.Context(), h.db, provider.ID, time.Now()); err != nil {
				httperr.Internal(c, "failed_to_seed", "Could not load demo data.")
				return
			}
		}
	case err != nil:
		httperr.Internal(c, "internal_error", "Unexpected error.")
		return
	case provider.PasswordHash != "" || provider.OAuthProvider != oauthProvider:
		httperr.Conflict(c, "account_exists", "An account with this email already exists.")
		return
	}

	h.respondWithToken(c, http.StatusOK, &provider, oauthProvider)
}

// Logout revokes the presented token until it would have expired.
func (h *AuthHandler) Logout(c *gin.Context) {
	jti := c.GetString(middleware.ContextTokenID)
	exp, _ := c.Get(middleware.ContextTokenExp)
	until, _ := exp.(time.Time)
	if until.IsZero() {
		until = time.Now().Add(h.config.TokenTTL)
	}

	if err := h.revoked.Revoke(c.Request.Context(), jti, until); err != nil {
		httperr.Internal(c, "failed_to_logout", "Could not sign out.")
		return
	}

	providerID := providerIDFrom(c)
	h.audit.Dispatch(audit.Event{ProviderID: providerID, Action: "logout", Entity: "provider", EntityID: &providerID})

	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) respondWithToken(c *gin.Context, status int, p *models.Provider, oauthProvider string) {
	token, err := h.generateToken(p)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not sign in.")
		return
	}

	h.audit.Dispatch(audit.Event{ProviderID: p.ID, Action: "login", Entity: "provider", EntityID: &p.ID,
		Metadata: map[string]any{"provider": oauthProvider}})

	c.JSON(status, AuthResponse{
		AccessToken: token,
		Provider:    oauthProvider,
		User:        userResponse(p),
	})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(p *models.Provider) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": p.ID,
		"jti": uuid.NewString(),
		"exp": now.Add(h.config.TokenTTL).Unix(),
		"iat": now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
