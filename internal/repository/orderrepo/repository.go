package orderrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"gostore/internal/domain"
	apperror "gostore/internal/errors"
	"gostore/internal/pkg/logger"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// OrderRepository implementa domain.OrderRepository no PostgreSQL.
// Linhas do carrinho e dados de entrega são gravados como JSONB.
type OrderRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	Logger    logger.Logger
	now       func() time.Time
}

// NewOrderRepository cria o repositório de pedidos.
func NewOrderRepository(db *sql.DB, dbTimeout time.Duration, log logger.Logger) *OrderRepository {
	return &OrderRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		Logger:    log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

const insertOrderSQL = `INSERT INTO orders (
	id, user_id, status, payment_method, sub_total, shipping_cost, discount, total_amount,
	coupon_code, payment_intent_id, payment_method_token, shipping, cart, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`

// SaveOrder grava o pedido e devolve o ID gerado.
func (r *OrderRepository) SaveOrder(ctx context.Context, draft domain.OrderDraft) (string, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	shipping, err := json.Marshal(draft.Shipping)
	if err != nil {
		return "", apperror.NewInternalError("falha ao serializar entrega", err)
	}
	cart, err := json.Marshal(draft.Cart)
	if err != nil {
		return "", apperror.NewInternalError("falha ao serializar carrinho", err)
	}

	id := uuid.New().String()
	status := draft.Status
	if status == "" {
		status = domain.OrderStatusNew
	}

	_, err = r.DB.ExecContext(ctxTimeout, insertOrderSQL,
		id,
		draft.UserID,
		status,
		string(draft.PaymentMethod),
		draft.SubTotal,
		draft.ShippingCost,
		draft.Discount,
		draft.TotalAmount,
		nullString(draft.CouponCode),
		nullString(draft.PaymentIntentID),
		nullString(draft.PaymentMethodToken),
		string(shipping),
		string(cart),
		r.now(),
	)
	if err != nil {
		if ctxTimeout.Err() != nil {
			return "", apperror.NewCancelledError("gravação do pedido excedeu o tempo limite", err)
		}
		return "", apperror.NewDBError("failed to insert order", err)
	}

	r.Logger.Info("Pedido gravado", map[string]interface{}{
		"order_id":       id,
		"payment_method": draft.PaymentMethod,
		"total":          draft.TotalAmount.StringFixed(2),
	})
	return id, nil
}

const selectOrderSQL = `SELECT id, user_id, status, payment_method, sub_total, shipping_cost, discount,
	total_amount, coupon_code, payment_intent_id, payment_method_token, shipping, cart, created_at
FROM orders WHERE id = $1`

// FindByID busca um pedido pelo ID.
func (r *OrderRepository) FindByID(ctx context.Context, id string) (domain.Order, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var (
		order                             domain.Order
		method                            string
		couponCode, intentID, methodToken sql.NullString
		shipping, cart                    []byte
	)
	err := r.DB.QueryRowContext(ctxTimeout, selectOrderSQL, id).Scan(
		&order.ID,
		&order.UserID,
		&order.Status,
		&method,
		&order.SubTotal,
		&order.ShippingCost,
		&order.Discount,
		&order.TotalAmount,
		&couponCode,
		&intentID,
		&methodToken,
		&shipping,
		&cart,
		&order.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, apperror.NewNotFoundError(fmt.Sprintf("Pedido %s não encontrado.", id))
	}
	if err != nil {
		return domain.Order{}, apperror.NewDBError("failed to select order", err)
	}

	order.PaymentMethod = domain.PaymentMethod(method)
	order.CouponCode = couponCode.String
	order.PaymentIntentID = intentID.String
	order.PaymentMethodToken = methodToken.String

	if err := json.Unmarshal(shipping, &order.Shipping); err != nil {
		return domain.Order{}, apperror.NewInternalError("entrega do pedido corrompida", err)
	}
	if err := json.Unmarshal(cart, &order.Cart); err != nil {
		return domain.Order{}, apperror.NewInternalError("carrinho do pedido corrompido", err)
	}
	return order, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
