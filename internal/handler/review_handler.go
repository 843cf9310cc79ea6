package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/voltshop/inventory-api/internal/service"
	"github.com/voltshop/inventory-api/internal/utils"
)

// ReviewHandler handles product review endpoints. The caller's identity
// comes from the session middleware.
type ReviewHandler struct {
	reviewService *service.ReviewService
}

func NewReviewHandler(reviewService *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

func (h *ReviewHandler) AddReview(c *gin.Context) {
	var req struct {
		Score   *int   `json:"score"`
		Comment string `json:"comment"`
	}

	if err := c.ShouldBindJSON(&req); err != nil || req.Score == nil {
		utils.Error(c, 400, "INVALID_PARAMETERS", "Invalid request body")
		return
	}

	review, err := h.reviewService.AddReview(c.Request.Context(), c.Param("model"), c.GetString("username"), *req.Score, req.Comment)
	if err != nil {
		writeError(c, err)
		return
	}

	utils.Success(c, 201, "Review added", gin.H{"review": review})
}

func (h *ReviewHandler) GetReviews(c *gin.Context) {
	reviews, err := h.reviewService.GetReviews(c.Request.Context(), c.Param("model"))
	if err != nil {
		writeError(c, err)
		return
	}

	utils.Success(c, 200, "Reviews retrieved successfully", gin.H{"reviews": reviews})
}

func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	err := h.reviewService.DeleteReview(c.Request.Context(), c.Param("model"), c.GetString("username"))
	if err != nil {
		writeError(c, err)
		return
	}

	utils.Success(c, 200, "Review deleted", nil)
}
