package request

// PrintReceiptRequest is the request body for printing a receipt.
type PrintReceiptRequest struct {
	OrderID string `json:"order_id" binding:"required,uuid"`
}

// EmailReceiptRequest is the request body for emailing a receipt. When the
// email is omitted, the order's customer email is used.
type EmailReceiptRequest struct {
	OrderID string `json:"order_id" binding:"required,uuid"`
	Email   string `json:"email" binding:"omitempty,email"`
}
