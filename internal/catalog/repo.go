package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ariefcatur/go-shop-backend.git/internal/apperr"
	"github.com/ariefcatur/go-shop-backend.git/internal/postgres"
)

// ProductStore is the persistence surface the service works against.
// *Repo is the pgx implementation; CachedStore decorates it with redis.
type ProductStore interface {
	List(ctx context.Context, f ListFilter) ([]Product, error)
	GetByID(ctx context.Context, id int64) (*Product, error)
	Insert(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	// Delete removes the product unless an order item references it and
	// returns the stored image URL for best-effort media cleanup.
	Delete(ctx context.Context, id int64) (imageURL string, err error)
}

type Repo struct{ DB *pgxpool.Pool }

const productCols = `product_id, name, description, price, stock, status, image_url, created_at, updated_at`

func scanProduct(row pgx.Row, p *Product) error {
	return row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.Status,
		&p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
}

func (r *Repo) List(ctx context.Context, f ListFilter) ([]Product, error) {
	var conds []string
	var args []any

	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}

	sql := `SELECT ` + productCols + ` FROM products`
	for i, c := range conds {
		if i == 0 {
			sql += " WHERE " + c
		} else {
			sql += " AND " + c
		}
	}
	sql += " ORDER BY product_id"

	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.TranslateError(err)
	}
	defer rows.Close()

	out := []Product{}
	for rows.Next() {
		var p Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, postgres.TranslateError(err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.TranslateError(err)
	}
	return out, nil
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Product, error) {
	var p Product
	row := r.DB.QueryRow(ctx, `SELECT `+productCols+` FROM products WHERE product_id = $1`, id)
	if err := scanProduct(row, &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &apperr.NotFoundError{Resource: "product", ID: id}
		}
		return nil, postgres.TranslateError(err)
	}
	return &p, nil
}

func (r *Repo) Insert(ctx context.Context, p *Product) error {
	row := r.DB.QueryRow(ctx, `
		INSERT INTO products (name, description, price, stock, status, image_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+productCols,
		p.Name, p.Description, p.Price, p.Stock, p.Status, p.ImageURL)
	if err := scanProduct(row, p); err != nil {
		return postgres.TranslateError(err)
	}
	return nil
}

func (r *Repo) Update(ctx context.Context, p *Product) error {
	row := r.DB.QueryRow(ctx, `
		UPDATE products
		SET name = $1, description = $2, price = $3, stock = $4, status = $5,
		    image_url = $6, updated_at = now()
		WHERE product_id = $7
		RETURNING `+productCols,
		p.Name, p.Description, p.Price, p.Stock, p.Status, p.ImageURL, p.ID)
	if err := scanProduct(row, p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &apperr.NotFoundError{Resource: "product", ID: p.ID}
		}
		return postgres.TranslateError(err)
	}
	return nil
}

// Delete checks for referencing order items inside the same transaction as
// the delete, so an order committed concurrently cannot slip between check
// and removal.
func (r *Repo) Delete(ctx context.Context, id int64) (string, error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return "", postgres.TranslateError(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var referenced bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM order_items WHERE product_id = $1)`, id).Scan(&referenced)
	if err != nil {
		return "", postgres.TranslateError(err)
	}
	if referenced {
		return "", &apperr.ReferentialConflictError{ProductID: id}
	}

	var imageURL string
	err = tx.QueryRow(ctx,
		`DELETE FROM products WHERE product_id = $1 RETURNING image_url`, id).Scan(&imageURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", &apperr.NotFoundError{Resource: "product", ID: id}
		}
		return "", postgres.TranslateError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return "", postgres.TranslateError(err)
	}
	return imageURL, nil
}
