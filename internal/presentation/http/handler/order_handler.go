package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mwangikib/dukapos-api/internal/application/service"
	"github.com/mwangikib/dukapos-api/internal/domain/enum"
	"github.com/mwangikib/dukapos-api/internal/domain/repository"
	"github.com/mwangikib/dukapos-api/internal/presentation/http/dto/request"
	"github.com/mwangikib/dukapos-api/internal/presentation/http/dto/response"
	"github.com/mwangikib/dukapos-api/pkg/pagination"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
	syncService  *service.SyncService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService, syncService *service.SyncService) *OrderHandler {
	return &OrderHandler{orderService: orderService, syncService: syncService}
}

func orderInputFromRequest(userID uuid.UUID, req *request.CreateOrderRequest) *service.CreateOrderInput {
	input := &service.CreateOrderInput{
		UserID:        userID,
		BranchID:      req.BranchID,
		CustomerID:    req.CustomerID,
		DiscountPct:   req.DiscountPct,
		PromoCode:     req.PromoCode,
		EwalletAmount: req.EwalletAmount,
		LoyaltyPoints: req.LoyaltyPoints,
		Note:          req.Note,
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, service.OrderItemInput{
			ProductID:   item.ProductID,
			Quantity:    item.Quantity,
			DiscountPct: item.DiscountPct,
		})
	}
	for _, p := range req.Payments {
		input.Payments = append(input.Payments, service.PaymentInput{
			PaymentMethodID: p.PaymentMethodID,
			Amount:          p.Amount,
			Reference:       p.Reference,
		})
	}
	return input
}

// Create handles checkout
func (h *OrderHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), orderInputFromRequest(*userID, &req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order created successfully", order)
}

// Hold parks a cart without taking payment or stock
func (h *OrderHandler) Hold(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.HoldOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.CreateOrderInput{
		UserID:      *userID,
		BranchID:    req.BranchID,
		CustomerID:  req.CustomerID,
		DiscountPct: req.DiscountPct,
		Note:        req.Note,
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, service.OrderItemInput{
			ProductID:   item.ProductID,
			Quantity:    item.Quantity,
			DiscountPct: item.DiscountPct,
		})
	}

	order, err := h.orderService.HoldOrder(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order held successfully", order)
}

// ListHeld lists the parked carts
func (h *OrderHandler) ListHeld(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &pagination.PaginationParams{Page: page, PerPage: perPage}
	params.Validate()

	result, err := h.orderService.ListHeldOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Held orders retrieved successfully", result)
}

// Resume pops a held cart back onto the register
func (h *OrderHandler) Resume(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.ResumeOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order resumed successfully", order)
}

// Get handles fetching an order by ID
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved successfully", order)
}

// List handles listing orders (page-based or cursor-based)
func (h *OrderHandler) List(c *gin.Context) {
	var req request.OrderFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	if req.Cursor != "" || req.Limit > 0 {
		h.listWithCursor(c, &req)
		return
	}

	params := &repository.OrderFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    req.Page,
			PerPage: req.PerPage,
		},
		Search:    req.Search,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	}
	params.Pagination.Validate()
	applyOrderFilters(&req, &params.Status, &params.CustomerID, &params.StartDate, &params.EndDate)

	if req.UserID != "" {
		if userID, err := uuid.Parse(req.UserID); err == nil {
			params.UserID = &userID
		}
	}

	result, err := h.orderService.ListOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Orders retrieved successfully", result)
}

func (h *OrderHandler) listWithCursor(c *gin.Context, req *request.OrderFilterRequest) {
	params := &repository.OrderCursorFilterParams{
		Cursor: &pagination.CursorParams{
			Cursor:    req.Cursor,
			Direction: pagination.CursorDirection(c.DefaultQuery("direction", "next")),
			Limit:     req.Limit,
		},
		Search: req.Search,
	}
	params.Cursor.Validate()
	applyOrderFilters(req, &params.Status, &params.CustomerID, &params.StartDate, &params.EndDate)

	result, err := h.orderService.ListOrdersWithCursor(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithCursor(c, 200, "Orders retrieved successfully", result)
}

func applyOrderFilters(req *request.OrderFilterRequest, status **enum.OrderStatus, customerID **uuid.UUID, startDate, endDate **time.Time) {
	if req.Status != "" {
		if statusInt, err := strconv.Atoi(req.Status); err == nil {
			s := enum.OrderStatus(statusInt)
			*status = &s
		}
	}
	if req.CustomerID != "" {
		if id, err := uuid.Parse(req.CustomerID); err == nil {
			*customerID = &id
		}
	}
	if req.StartDate != "" {
		if t, err := time.Parse("2006-01-02", req.StartDate); err == nil {
			*startDate = &t
		}
	}
	if req.EndDate != "" {
		if t, err := time.Parse("2006-01-02", req.EndDate); err == nil {
			*endDate = &t
		}
	}
}

// Cancel handles cancelling an order
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.CancelOrderRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.orderService.CancelOrder(c.Request.Context(), id, req.Reason); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order cancelled successfully", nil)
}

// Refund handles refunding a completed order
func (h *OrderHandler) Refund(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	if err := h.orderService.RefundOrder(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order refunded successfully", nil)
}

// Delete handles deleting a held or cancelled order
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	if err := h.orderService.DeleteOrder(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order deleted successfully", nil)
}

// Sync replays a batch of sales queued while the register was offline
func (h *OrderHandler) Sync(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.SyncOrdersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	transactions := make([]service.OfflineTransaction, 0, len(req.Transactions))
	for i := range req.Transactions {
		tx := &req.Transactions[i]
		transactions = append(transactions, service.OfflineTransaction{
			ClientKey: tx.ClientKey,
			Order:     orderInputFromRequest(*userID, &tx.Order),
		})
	}

	results := h.syncService.SyncOfflineOrders(c.Request.Context(), *userID, transactions)
	response.OK(c, "Offline orders processed", gin.H{"results": results})
}
