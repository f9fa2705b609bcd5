package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mwangikib/dukapos-api/internal/application/service"
	"github.com/mwangikib/dukapos-api/internal/presentation/http/dto/request"
	"github.com/mwangikib/dukapos-api/internal/presentation/http/dto/response"
	"github.com/mwangikib/dukapos-api/pkg/pagination"
)

// PromotionHandler handles promotion-related HTTP requests
type PromotionHandler struct {
	promotionService *service.PromotionService
}

// NewPromotionHandler creates a new promotion handler
func NewPromotionHandler(promotionService *service.PromotionService) *PromotionHandler {
	return &PromotionHandler{promotionService: promotionService}
}

// Create handles creating a promotion
func (h *PromotionHandler) Create(c *gin.Context) {
	var req request.CreatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	promo, err := h.promotionService.CreatePromotion(c.Request.Context(), &service.CreatePromotionInput{
		Name:        req.Name,
		Code:        req.Code,
		DiscountPct: req.DiscountPct,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Promotion created successfully", promo)
}

// Update handles updating a promotion
func (h *PromotionHandler) Update(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid promotion ID")
		return
	}

	var req request.UpdatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	promo, err := h.promotionService.UpdatePromotion(c.Request.Context(), id, &service.UpdatePromotionInput{
		Name:        req.Name,
		DiscountPct: req.DiscountPct,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		IsActive:    req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Promotion updated successfully", promo)
}

// Delete handles deleting a promotion
func (h *PromotionHandler) Delete(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid promotion ID")
		return
	}

	if err := h.promotionService.DeletePromotion(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Promotion deleted successfully", nil)
}

// List handles listing promotions
func (h *PromotionHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))
	activeOnly, _ := strconv.ParseBool(c.DefaultQuery("active_only", "false"))

	params := &pagination.PaginationParams{Page: page, PerPage: perPage}
	params.Validate()

	result, err := h.promotionService.ListPromotions(c.Request.Context(), params, activeOnly)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Promotions retrieved successfully", result)
}

// Validate checks whether a promotion code applies right now. The register
// calls this as the code is keyed so the discount shows before checkout.
func (h *PromotionHandler) Validate(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		response.BadRequest(c, "Promotion code is required")
		return
	}

	promo, err := h.promotionService.ValidateCode(c.Request.Context(), code)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Promotion code is valid", gin.H{
		"code":         promo.Code,
		"name":         promo.Name,
		"discount_pct": promo.DiscountPct,
		"ends_at":      promo.EndsAt,
	})
}
