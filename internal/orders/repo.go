package orders

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ariefcatur/go-shop-backend.git/internal/apperr"
	"github.com/ariefcatur/go-shop-backend.git/internal/postgres"
)

type Repo struct{ DB *pgxpool.Pool }

const orderCols = `order_id, customer_name, customer_email, customer_phone, shipping_address, total_amount, created_at`

func scanOrder(row pgx.Row, o *Order) error {
	return row.Scan(&o.ID, &o.CustomerName, &o.CustomerEmail, &o.CustomerPhone,
		&o.ShippingAddress, &o.TotalAmount, &o.CreatedAt)
}

// CreateOrderTx runs the whole checkout in one transaction:
// kunci tiap product row (FOR UPDATE) -> validasi status & stok -> insert
// order + items + kurangi stok -> commit. Failure anywhere rolls back all of
// it, so stock and order rows never diverge.
//
// Items are processed in caller order. A product repeated within one request
// is locked once and checked against the running remainder, so the second
// occurrence sees the first one's decrement.
func (r *Repo) CreateOrderTx(ctx context.Context, req CheckoutRequest) (*Order, error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, postgres.TranslateError(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	remaining := make(map[int64]int, len(req.Items))
	names := make(map[int64]string, len(req.Items))

	for _, it := range req.Items {
		if _, seen := remaining[it.ProductID]; !seen {
			var (
				name   string
				status string
				stock  int
			)
			err := tx.QueryRow(ctx,
				`SELECT name, status, stock FROM products WHERE product_id = $1 FOR UPDATE`,
				it.ProductID).Scan(&name, &status, &stock)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return nil, &apperr.NotFoundError{Resource: "product", ID: it.ProductID}
				}
				return nil, postgres.TranslateError(err)
			}
			if status != "ACTIVE" {
				return nil, &apperr.UnavailableError{ProductName: name}
			}
			remaining[it.ProductID] = stock
			names[it.ProductID] = name
		}

		if remaining[it.ProductID] < it.Quantity {
			return nil, &apperr.InsufficientStockError{
				ProductName: names[it.ProductID],
				Available:   remaining[it.ProductID],
				Requested:   it.Quantity,
			}
		}
		remaining[it.ProductID] -= it.Quantity
	}

	// semua item lolos; baru mulai nulis
	var order Order
	row := tx.QueryRow(ctx, `
		INSERT INTO orders (customer_name, customer_email, customer_phone, shipping_address, total_amount)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+orderCols,
		req.CustomerName, req.CustomerEmail, nullable(req.CustomerPhone),
		nullable(req.ShippingAddress), req.TotalAmount)
	if err := scanOrder(row, &order); err != nil {
		return nil, postgres.TranslateError(err)
	}

	for _, it := range req.Items {
		_, err := tx.Exec(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, unit_price, subtotal)
			VALUES ($1, $2, $3, $4, $5)`,
			order.ID, it.ProductID, it.Quantity, it.Price, it.Subtotal)
		if err != nil {
			return nil, postgres.TranslateError(err)
		}

		_, err = tx.Exec(ctx,
			`UPDATE products SET stock = stock - $2 WHERE product_id = $1`,
			it.ProductID, it.Quantity)
		if err != nil {
			return nil, postgres.TranslateError(err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, postgres.TranslateError(err)
	}
	return &order, nil
}

// GetOrderWithItems joins the order with its items and each item's current
// product name (products referenced by items cannot be deleted, so the join
// always resolves).
func (r *Repo) GetOrderWithItems(ctx context.Context, id int64) (*OrderWithItems, error) {
	var out OrderWithItems
	row := r.DB.QueryRow(ctx, `SELECT `+orderCols+` FROM orders WHERE order_id = $1`, id)
	if err := scanOrder(row, &out.Order); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &apperr.NotFoundError{Resource: "order", ID: id}
		}
		return nil, postgres.TranslateError(err)
	}

	rows, err := r.DB.Query(ctx, `
		SELECT oi.product_id, oi.quantity, oi.unit_price, oi.subtotal, p.name
		FROM order_items oi
		JOIN products p ON p.product_id = oi.product_id
		WHERE oi.order_id = $1
		ORDER BY oi.order_item_id`, id)
	if err != nil {
		return nil, postgres.TranslateError(err)
	}
	defer rows.Close()

	out.Items = []OrderItemDetail{}
	for rows.Next() {
		var d OrderItemDetail
		if err := rows.Scan(&d.ProductID, &d.Quantity, &d.UnitPrice, &d.Subtotal, &d.ProductName); err != nil {
			return nil, postgres.TranslateError(err)
		}
		out.Items = append(out.Items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.TranslateError(err)
	}
	return &out, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
