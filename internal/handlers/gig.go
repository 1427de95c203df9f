package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gigboard-dev/gigboard/internal/services"
	"github.com/gigboard-dev/gigboard/internal/utils"
)

type CreateGigRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Amount      int64  `json:"amount" binding:"required"`
}

type ConfirmPaymentRequest struct {
	GigID     uint   `json:"gigId" binding:"required"`
	PaymentID string `json:"paymentId" binding:"required"`
}

type ApplyGigRequest struct {
	GigID uint `json:"gigId" binding:"required"`
}

type AssignGigRequest struct {
	GigID    uint `json:"gigId" binding:"required"`
	WorkerID uint `json:"workerId" binding:"required"`
}

type GigHandler struct {
	gigs *services.GigService
}

func NewGigHandler(gigs *services.GigService) *GigHandler {
	return &GigHandler{gigs: gigs}
}

func (h *GigHandler) CreateGig(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req CreateGigRequest

	if err := ctx.BindJSON(&req); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Title and amount are required"})
		return
	}

	gig, intent, err := h.gigs.CreateGig(ctx.Request.Context(), userID, req.Title, req.Description, req.Amount)

	if err != nil {
		WriteError(ctx, err)
		return
	}

	response := gin.H{
		"message": "Gig created successfully",
		"gig": services.GigProjection{
			ID:            gig.ID,
			Title:         gig.Title,
			Description:   gig.Description,
			Amount:        gig.Amount,
			Status:        gig.Status,
			PaymentStatus: gig.PaymentStatus,
		},
	}

	if intent != nil {
		response["clientSecret"] = intent.ClientSecret
		response["paymentIntentId"] = intent.ID
	}

	ctx.JSON(http.StatusCreated, response)
}

func (h *GigHandler) ConfirmPayment(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req ConfirmPaymentRequest

	if err := ctx.BindJSON(&req); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "gigId and paymentId are required"})
		return
	}

	if err := h.gigs.ConfirmPayment(ctx.Request.Context(), req.GigID, userID, req.PaymentID); err != nil {
		WriteError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

// ListGigs is public; no authentication required.
func (h *GigHandler) ListGigs(ctx *gin.Context) {
	gigs, err := h.gigs.ListGigs(ctx.Request.Context())

	if err != nil {
		WriteError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"gigs": gigs})
}

func (h *GigHandler) ApplyToGig(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req ApplyGigRequest

	if err := ctx.BindJSON(&req); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "gigId is required"})
		return
	}

	if err := h.gigs.ApplyToGig(ctx.Request.Context(), userID, req.GigID); err != nil {
		WriteError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *GigHandler) AssignGig(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req AssignGigRequest

	if err := ctx.BindJSON(&req); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "gigId and workerId are required"})
		return
	}

	if err := h.gigs.AssignGig(ctx.Request.Context(), userID, req.GigID, req.WorkerID); err != nil {
		WriteError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *GigHandler) WorkerGigs(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	gigs, err := h.gigs.ListWorkerGigs(ctx.Request.Context(), userID)

	if err != nil {
		WriteError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"gigs": gigs})
}

func (h *GigHandler) Notifications(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	notifications, err := h.gigs.ListNotifications(ctx.Request.Context(), userID)

	if err != nil {
		WriteError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"notifications": notifications})
}
