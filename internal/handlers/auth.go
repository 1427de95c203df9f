package handlers

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/gigboard-dev/gigboard/internal/auth"
	"github.com/gigboard-dev/gigboard/internal/services"
	"github.com/gigboard-dev/gigboard/internal/session"
	"github.com/gigboard-dev/gigboard/internal/types"
)

type SignupRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

var (
	Domain = os.Getenv("DOMAIN")
)

type AuthHandler struct {
	auth     *services.AuthService
	gigs     *services.GigService
	sessions session.Store

	sessionMaxAge        int
	stripePublishableKey string
}

func NewAuthHandler(authSvc *services.AuthService, gigSvc *services.GigService, sessions session.Store, sessionMaxAge int, stripePublishableKey string) *AuthHandler {
	return &AuthHandler{
		auth:                 authSvc,
		gigs:                 gigSvc,
		sessions:             sessions,
		sessionMaxAge:        sessionMaxAge,
		stripePublishableKey: stripePublishableKey,
	}
}

func (h *AuthHandler) Signup(ctx *gin.Context) {
	var req SignupRequest

	if err := ctx.BindJSON(&req); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	user, err := h.auth.Signup(ctx.Request.Context(), req.Email, req.Password)

	if err != nil {
		WriteError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"userId":  user.ID,
	})
}

// Login binds the user to a fresh server-side session and also returns an
// API token for the bearer-only routes.
func (h *AuthHandler) Login(ctx *gin.Context) {
	var req LoginRequest

	if err := ctx.BindJSON(&req); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	user, err := h.auth.Login(ctx.Request.Context(), req.Email, req.Password)

	if err != nil {
		WriteError(ctx, err)
		return
	}

	sessionID, err := h.sessions.Create(ctx.Request.Context(), user.ID)

	if err != nil {
		log.Printf("Failed to create session: %v", err)
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service temporarily unavailable"})
		return
	}

	token, err := auth.GenerateJWT(user.ID, user.Email)

	if err != nil {
		log.Printf("Failed to generate JWT: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     types.SessionCookieName,
		Value:    sessionID,
		Path:     "/",
		Domain:   Domain,
		MaxAge:   h.sessionMaxAge,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	ctx.JSON(http.StatusOK, gin.H{
		"message":  "Login successful",
		"redirect": "/dashboard",
		"user": UserResponse{
			ID:    user.ID,
			Email: user.Email,
		},
		"token": token,
	})
}

func (h *AuthHandler) Logout(ctx *gin.Context) {
	if sessionID, err := ctx.Cookie(types.SessionCookieName); err == nil && sessionID != "" {
		if err := h.sessions.Delete(ctx.Request.Context(), sessionID); err != nil {
			log.Printf("Logout error: %v", err)
		}
	}

	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     types.SessionCookieName,
		Value:    "",
		Path:     "/",
		Domain:   Domain,
		MaxAge:   -1,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	ctx.Redirect(http.StatusFound, "/login")
}

// Dashboard serves the logged-in user's own gigs. Unauthenticated browsers
// are redirected to the login page rather than answered with a 401.
func (h *AuthHandler) Dashboard(ctx *gin.Context) {
	sessionID, err := ctx.Cookie(types.SessionCookieName)

	if err != nil || sessionID == "" {
		ctx.Redirect(http.StatusFound, "/login")
		return
	}

	userID, ok, err := h.sessions.Get(ctx.Request.Context(), sessionID)

	if err != nil || !ok {
		ctx.Redirect(http.StatusFound, "/login")
		return
	}

	user, err := h.auth.GetUser(ctx.Request.Context(), userID)

	if err != nil {
		ctx.Redirect(http.StatusFound, "/login")
		return
	}

	gigs, err := h.gigs.ListOwnerGigs(ctx.Request.Context(), userID)

	if err != nil {
		WriteError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"user": UserResponse{
			ID:    user.ID,
			Email: user.Email,
		},
		"gigs":                 gigs,
		"stripePublishableKey": h.stripePublishableKey,
	})
}
