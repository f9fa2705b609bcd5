package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mwangikib/dukapos-api/internal/application/service"
	"github.com/mwangikib/dukapos-api/internal/presentation/http/dto/request"
	"github.com/mwangikib/dukapos-api/internal/presentation/http/dto/response"
)

// SettingsHandler handles store settings, branches and payment methods
type SettingsHandler struct {
	storeService         *service.StoreService
	paymentMethodService *service.PaymentMethodService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(storeService *service.StoreService, paymentMethodService *service.PaymentMethodService) *SettingsHandler {
	return &SettingsHandler{
		storeService:         storeService,
		paymentMethodService: paymentMethodService,
	}
}

// GetStore returns the current store's settings
func (h *SettingsHandler) GetStore(c *gin.Context) {
	store, err := h.storeService.GetCurrentStore(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Store retrieved successfully", store)
}

// UpdateStore edits the current store's settings
func (h *SettingsHandler) UpdateStore(c *gin.Context) {
	var req request.UpdateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	store, err := h.storeService.UpdateStore(c.Request.Context(), &service.UpdateStoreInput{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Email:   req.Email,
		TaxPIN:  req.TaxPIN,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Store updated successfully", store)
}

// CreateBranch adds a branch
func (h *SettingsHandler) CreateBranch(c *gin.Context) {
	var req request.CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	branch, err := h.storeService.CreateBranch(c.Request.Context(), &service.CreateBranchInput{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Branch created successfully", branch)
}

// UpdateBranch edits a branch
func (h *SettingsHandler) UpdateBranch(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid branch ID")
		return
	}

	var req request.UpdateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	branch, err := h.storeService.UpdateBranch(c.Request.Context(), id, &service.UpdateBranchInput{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Branch updated successfully", branch)
}

// DeleteBranch removes a branch
func (h *SettingsHandler) DeleteBranch(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid branch ID")
		return
	}

	if err := h.storeService.DeleteBranch(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Branch deleted successfully", nil)
}

// ListBranches lists the current store's branches
func (h *SettingsHandler) ListBranches(c *gin.Context) {
	branches, err := h.storeService.ListBranches(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Branches retrieved successfully", branches)
}

// CreatePaymentMethod adds a tender type
func (h *SettingsHandler) CreatePaymentMethod(c *gin.Context) {
	var req request.CreatePaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	method, err := h.paymentMethodService.CreatePaymentMethod(c.Request.Context(), &service.CreatePaymentMethodInput{
		Name:      req.Name,
		Code:      req.Code,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment method created successfully", method)
}

// UpdatePaymentMethod edits a tender type
func (h *SettingsHandler) UpdatePaymentMethod(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid payment method ID")
		return
	}

	var req request.UpdatePaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	method, err := h.paymentMethodService.UpdatePaymentMethod(c.Request.Context(), id, &service.UpdatePaymentMethodInput{
		Name:      req.Name,
		IsActive:  req.IsActive,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment method updated successfully", method)
}

// DeletePaymentMethod removes a tender type
func (h *SettingsHandler) DeletePaymentMethod(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid payment method ID")
		return
	}

	if err := h.paymentMethodService.DeletePaymentMethod(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment method deleted successfully", nil)
}

// ListPaymentMethods lists tender types
func (h *SettingsHandler) ListPaymentMethods(c *gin.Context) {
	activeOnly, _ := strconv.ParseBool(c.DefaultQuery("active_only", "false"))

	methods, err := h.paymentMethodService.ListPaymentMethods(c.Request.Context(), activeOnly)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment methods retrieved successfully", methods)
}
