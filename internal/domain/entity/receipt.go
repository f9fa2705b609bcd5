package entity

// ReceiptHeader holds the store header printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	TaxPIN    string `json:"tax_pin,omitempty"`
}

// ReceiptItem represents a single line item on a receipt.
type ReceiptItem struct {
	Name        string  `json:"name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	DiscountPct float64 `json:"discount_pct,omitempty"`
	Total       float64 `json:"total"`
}

// ReceiptTender represents one payment line on a receipt.
type ReceiptTender struct {
	Method string  `json:"method"`
	Amount float64 `json:"amount"`
}

// Receipt is a value object representing a printable receipt.
// It is NOT a database entity; it is composed from order data at print time.
type Receipt struct {
	Header        ReceiptHeader   `json:"header"`
	InvoiceNo     string          `json:"invoice_no"`
	Date          string          `json:"date"`
	Cashier       string          `json:"cashier,omitempty"`
	Customer      string          `json:"customer,omitempty"`
	Items         []ReceiptItem   `json:"items"`
	SubTotal      float64         `json:"sub_total"`
	DiscountPct   float64         `json:"discount_pct,omitempty"`
	Discount      float64         `json:"discount,omitempty"`
	Tax           float64         `json:"tax"`
	Total         float64         `json:"total"`
	Tenders       []ReceiptTender `json:"tenders,omitempty"`
	EwalletAmount float64         `json:"ewallet_amount,omitempty"`
	LoyaltyPoints int64           `json:"loyalty_points,omitempty"`
	Paid          float64         `json:"paid"`
	Change        float64         `json:"change"`
}
