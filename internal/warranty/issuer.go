// Package warranty emite os registros de garantia e certificado de cada unidade comprada.
package warranty

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"gostore/internal/domain"
)

// DateLayout é o formato DD/MM/YYYY usado nos textos da garantia.
const DateLayout = "02/01/2006"

// Issuer gera garantias com relógio e gerador de IDs injetáveis.
type Issuer struct {
	now   func() time.Time
	newID func() string
}

// Option customiza o Issuer (usado em testes).
type Option func(*Issuer)

// WithClock substitui o relógio.
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) { i.now = now }
}

// WithIDGenerator substitui o gerador de identificadores.
func WithIDGenerator(gen func() string) Option {
	return func(i *Issuer) { i.newID = gen }
}

// NewIssuer cria um Issuer com relógio UTC e IDs UUID v4.
func NewIssuer(opts ...Option) *Issuer {
	i := &Issuer{
		now:   func() time.Time { return time.Now().UTC() },
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Issue devolve um par garantia/certificado por unidade de item.OrderQuantity.
// O período vem da variante selecionada, se houver, senão do produto.
func (i *Issuer) Issue(customerName string, item domain.CartItem) []domain.WarrantyBundle {
	if item.OrderQuantity <= 0 {
		return nil
	}

	start := i.now()
	end := start.AddDate(0, 0, item.EffectiveWarrantyPeriod())
	purchased := start.Format(DateLayout)
	period := fmt.Sprintf("From %s to %s", purchased, end.Format(DateLayout))

	bundles := make([]domain.WarrantyBundle, 0, item.OrderQuantity)
	for n := 0; n < item.OrderQuantity; n++ {
		id := i.newID()
		bundles = append(bundles, domain.WarrantyBundle{
			Warranty: domain.WarrantyRecord{
				WarrantyID:     id,
				CustomerName:   customerName,
				DateOfPurchase: purchased,
				WarrantyPeriod: period,
				StartsAt:       start,
				EndsAt:         end,
			},
			Certificate: domain.CertificateRecord{
				CertificateID:  id,
				CertificateURL: domain.CertificatePlaceholder,
			},
		})
	}
	return bundles
}

// IssueLine congela a linha do carrinho no formato do pedido, com as garantias emitidas.
func (i *Issuer) IssueLine(customerName string, item domain.CartItem) domain.OrderLine {
	line := domain.OrderLine{CartItem: item}
	for _, b := range i.Issue(customerName, item) {
		line.WarrantyIDs = append(line.WarrantyIDs, b.Warranty.WarrantyID)
		line.WarrantyInformation = append(line.WarrantyInformation, b.Warranty)
		line.ProductCertificateInformation = append(line.ProductCertificateInformation, b.Certificate)
	}
	return line
}
