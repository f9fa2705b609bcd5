package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/mwangikib/dukapos-api/internal/domain/entity"
	"github.com/mwangikib/dukapos-api/internal/domain/repository"
	"github.com/mwangikib/dukapos-api/pkg/apperror"
	"github.com/mwangikib/dukapos-api/pkg/email"
	"github.com/mwangikib/dukapos-api/pkg/printer"
)

// PrinterService composes and prints sale receipts
type PrinterService struct {
	orderRepo    repository.OrderRepository
	storeRepo    repository.StoreRepository
	userRepo     repository.UserRepository
	device       printer.Printer
	emailService *email.EmailService
	charWidth    int
	location     *time.Location
}

// NewPrinterService creates a new printer service
func NewPrinterService(
	orderRepo repository.OrderRepository,
	storeRepo repository.StoreRepository,
	userRepo repository.UserRepository,
	device printer.Printer,
	emailService *email.EmailService,
	charWidth int,
	timezone string,
) *PrinterService {
	if charWidth <= 0 {
		charWidth = 32
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}
	return &PrinterService{
		orderRepo:    orderRepo,
		storeRepo:    storeRepo,
		userRepo:     userRepo,
		device:       device,
		emailService: emailService,
		charWidth:    charWidth,
		location:     loc,
	}
}

// ComposeReceipt builds the printable receipt for an order
func (s *PrinterService) ComposeReceipt(ctx context.Context, orderID uuid.UUID) (*entity.Receipt, error) {
	order, err := s.orderRepo.GetWithItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	store, err := s.storeRepo.GetByID(ctx, order.StoreID)
	if err != nil {
		return nil, err
	}

	receipt := &entity.Receipt{
		InvoiceNo:     order.InvoiceNo,
		Date:          order.CreatedAt.In(s.location).Format("02/01/2006 15:04"),
		SubTotal:      float64(order.SubTotal) / 100,
		DiscountPct:   order.DiscountPct,
		Discount:      float64(order.DiscountTotal) / 100,
		Tax:           float64(order.TaxTotal) / 100,
		Total:         float64(order.Total) / 100,
		EwalletAmount: float64(order.EwalletAmount) / 100,
		LoyaltyPoints: order.LoyaltyPoints,
		Paid:          float64(order.TenderedTotal+order.EwalletAmount) / 100,
		Change:        float64(order.ChangeDue) / 100,
	}

	if store != nil {
		receipt.Header.StoreName = store.Name
		if store.Address != nil {
			receipt.Header.Address = *store.Address
		}
		if store.Phone != nil {
			receipt.Header.Phone = *store.Phone
		}
		if store.TaxPIN != nil {
			receipt.Header.TaxPIN = *store.TaxPIN
		}
	}

	if cashier, err := s.userRepo.GetByID(ctx, order.UserID); err == nil && cashier != nil {
		receipt.Cashier = cashier.FullName()
	}
	if order.Customer != nil {
		receipt.Customer = order.Customer.Name
	}

	for _, item := range order.Items {
		receipt.Items = append(receipt.Items, entity.ReceiptItem{
			Name:        item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   float64(item.UnitPrice) / 100,
			DiscountPct: item.DiscountPct,
			Total:       float64(item.SubTotal+item.Tax) / 100,
		})
	}
	for _, payment := range order.Payments {
		receipt.Tenders = append(receipt.Tenders, entity.ReceiptTender{
			Method: payment.MethodName,
			Amount: float64(payment.Amount) / 100,
		})
	}

	return receipt, nil
}

// PrintReceipt renders a receipt to ESC/POS and sends it to the device
func (s *PrinterService) PrintReceipt(ctx context.Context, orderID uuid.UUID) (*entity.Receipt, error) {
	receipt, err := s.ComposeReceipt(ctx, orderID)
	if err != nil {
		return nil, err
	}

	doc := s.renderDocument(receipt)
	if err := s.device.Print(doc.Bytes()); err != nil {
		return nil, apperror.NewInternalError("Printer is not responding")
	}
	return receipt, nil
}

// EmailReceipt emails a receipt to the given address. When the order has a
// customer with an email on file and no address is supplied, that one is used.
func (s *PrinterService) EmailReceipt(ctx context.Context, orderID uuid.UUID, toEmail string) error {
	order, err := s.orderRepo.GetWithItems(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NewNotFoundError("Order")
	}

	if toEmail == "" && order.Customer != nil && order.Customer.Email != nil {
		toEmail = *order.Customer.Email
	}
	if toEmail == "" {
		return apperror.NewBadRequestError("No email address for this order")
	}

	receipt, err := s.ComposeReceipt(ctx, orderID)
	if err != nil {
		return err
	}

	msg := &email.ReceiptEmail{
		StoreName: receipt.Header.StoreName,
		InvoiceNo: receipt.InvoiceNo,
		Date:      receipt.Date,
		SubTotal:  money(receipt.SubTotal),
		Discount:  money(receipt.Discount),
		Tax:       money(receipt.Tax),
		Total:     money(receipt.Total),
		Paid:      money(receipt.Paid),
		Change:    money(receipt.Change),
		Points:    receipt.LoyaltyPoints,
	}
	for _, item := range receipt.Items {
		msg.Items = append(msg.Items, email.ReceiptEmailItem{
			Name:     item.Name,
			Quantity: item.Quantity,
			Total:    money(item.Total),
		})
	}

	if err := s.emailService.SendReceiptEmail(toEmail, msg); err != nil {
		log.Printf("failed to email receipt %s: %v", receipt.InvoiceNo, err)
		return apperror.NewInternalError("Failed to send receipt email")
	}
	return nil
}

// PrinterStatus reports whether the configured device is reachable
func (s *PrinterService) PrinterStatus() bool {
	return s.device.IsConnected()
}

func (s *PrinterService) renderDocument(r *entity.Receipt) *printer.Document {
	doc := printer.NewDocument(s.charWidth)
	doc.Init().
		SetAlign(printer.AlignCenter).
		SetFontSize(printer.FontDouble).
		Text(r.Header.StoreName).
		SetFontSize(printer.FontNormal)
	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text("Tel: " + r.Header.Phone)
	}
	if r.Header.TaxPIN != "" {
		doc.Text("PIN: " + r.Header.TaxPIN)
	}
	doc.SetAlign(printer.AlignLeft).
		Separator('-').
		KeyValue("Invoice", r.InvoiceNo).
		KeyValue("Date", r.Date)
	if r.Cashier != "" {
		doc.KeyValue("Cashier", r.Cashier)
	}
	if r.Customer != "" {
		doc.KeyValue("Customer", r.Customer)
	}
	doc.Separator('-')

	for _, item := range r.Items {
		doc.DiscountItemLine(item.Quantity, item.Name, item.DiscountPct, money(item.Total))
	}

	doc.Separator('-').
		KeyValue("Subtotal", money(r.SubTotal))
	if r.Discount > 0 {
		doc.KeyValue("Discount", "-"+money(r.Discount))
	}
	doc.KeyValue("Tax", money(r.Tax)).
		SetBold(true).
		KeyValue("TOTAL", money(r.Total)).
		SetBold(false).
		Separator('-')

	for _, tender := range r.Tenders {
		doc.KeyValue(tender.Method, money(tender.Amount))
	}
	if r.EwalletAmount > 0 {
		doc.KeyValue("E-Wallet", money(r.EwalletAmount))
	}
	if r.LoyaltyPoints > 0 {
		doc.KeyValue("Points", fmt.Sprintf("%d", r.LoyaltyPoints))
	}
	doc.KeyValue("Change", money(r.Change)).
		Separator('-').
		SetAlign(printer.AlignCenter).
		Text("Thank you, karibu tena!").
		FeedLines(3).
		Cut()

	return doc
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
