package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod é a forma de pagamento escolhida no checkout.
type PaymentMethod string

const (
	PaymentCard PaymentMethod = "Card"
	PaymentCOD  PaymentMethod = "COD"
)

// OrderStatusNew é o status inicial de todo pedido persistido.
const OrderStatusNew = "new"

// CertificatePlaceholder é o conteúdo do certificado até o emissor externo preenchê-lo.
const CertificatePlaceholder = "The product hasn't been updated with a certificate yet"

// WarrantyRecord é o comprovante de garantia de uma unidade comprada.
type WarrantyRecord struct {
	WarrantyID     string    `json:"warrantyId"`
	CustomerName   string    `json:"customerName"`
	DateOfPurchase string    `json:"dateOfPurchase"` // DD/MM/YYYY
	WarrantyPeriod string    `json:"warrantyPeriod"` // "From DD/MM/YYYY to DD/MM/YYYY"
	StartsAt       time.Time `json:"startsAt"`
	EndsAt         time.Time `json:"endsAt"`
}

// CertificateRecord acompanha cada garantia.
type CertificateRecord struct {
	CertificateID  string `json:"certificateId"`
	CertificateURL string `json:"certificateUrl"`
}

// WarrantyBundle agrupa o par garantia + certificado de uma unidade.
type WarrantyBundle struct {
	Warranty    WarrantyRecord    `json:"warranty"`
	Certificate CertificateRecord `json:"certificate"`
}

// OrderLine é a linha do carrinho congelada no pedido, com garantias emitidas.
type OrderLine struct {
	CartItem
	WarrantyIDs                   []string            `json:"warrantyIds"`
	WarrantyInformation           []WarrantyRecord    `json:"warrantyInformation"`
	ProductCertificateInformation []CertificateRecord `json:"productCertificateInformation"`
}

// PaymentConfirmation é a confirmação devolvida pelo gateway após autorizar o cartão.
type PaymentConfirmation struct {
	PaymentIntentID string `json:"paymentIntentId"`
	Status          string `json:"status"`
}

// CardDetails são os dados de cartão já tokenizados pelo cliente.
type CardDetails struct {
	Token        string `json:"token"`
	BillingName  string `json:"billingName,omitempty"`
	BillingEmail string `json:"billingEmail,omitempty"`
}

// OrderDraft agrega tudo o que é gravado no pedido.
type OrderDraft struct {
	UserID             string          `json:"user"`
	Shipping           ShippingInfo    `json:"shipping"`
	Cart               []OrderLine     `json:"cart"`
	PaymentMethod      PaymentMethod   `json:"paymentMethod"`
	SubTotal           decimal.Decimal `json:"subTotal"`
	ShippingCost       decimal.Decimal `json:"shippingCost"`
	Discount           decimal.Decimal `json:"discount"`
	TotalAmount        decimal.Decimal `json:"totalAmount"`
	CouponCode         string          `json:"couponCode,omitempty"`
	PaymentMethodToken string          `json:"paymentMethodToken,omitempty"`
	PaymentIntentID    string          `json:"paymentIntentId,omitempty"`
	Status             string          `json:"status"`
}

// Order é o pedido persistido.
type Order struct {
	ID string `json:"id"`
	OrderDraft
	CreatedAt time.Time `json:"createdAt"`
}

// --- Contratos ---

// OrderRepository é o contrato do armazenamento de pedidos.
type OrderRepository interface {
	SaveOrder(ctx context.Context, draft OrderDraft) (string, error)
	FindByID(ctx context.Context, id string) (Order, error)
}

// PaymentGateway é o contrato do gateway de pagamento por cartão.
type PaymentGateway interface {
	CreatePaymentIntent(ctx context.Context, amountCents int64) (clientSecret string, err error)
	CreatePaymentMethod(ctx context.Context, card CardDetails) (token string, err error)
	ConfirmPayment(ctx context.Context, clientSecret, paymentMethodToken string) (PaymentConfirmation, error)
}
