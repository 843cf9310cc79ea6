package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/voltshop/inventory-api/internal/models"
	"github.com/voltshop/inventory-api/internal/utils"
)

// pgUniqueViolation is the PostgreSQL error code for unique_violation.
const pgUniqueViolation = "23505"

// ProductRepository handles data access for products. It backs the inventory
// engine's ProductStore: a missing model is reported as sql.ErrNoRows and
// every method is a single statement, so each call is atomic.
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// GetByModel returns a single product by model key.
func (r *ProductRepository) GetByModel(ctx context.Context, model string) (*models.Product, error) {
	const q = `SELECT * FROM products WHERE model = $1 LIMIT 1`

	var p models.Product
	if err := r.db.GetContext(ctx, &p, q, model); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetAll returns every product in insertion order.
func (r *ProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	const q = `SELECT * FROM products ORDER BY id`

	var products []models.Product
	if err := r.db.SelectContext(ctx, &products, q); err != nil {
		return nil, err
	}
	return products, nil
}

// GetByCategory returns the products of one category in insertion order.
func (r *ProductRepository) GetByCategory(ctx context.Context, category models.Category) ([]models.Product, error) {
	const q = `SELECT * FROM products WHERE category = $1 ORDER BY id`

	var products []models.Product
	if err := r.db.SelectContext(ctx, &products, q, category); err != nil {
		return nil, err
	}
	return products, nil
}

// Insert creates a new product. A duplicate model key is reported as
// ErrProductAlreadyExists.
func (r *ProductRepository) Insert(ctx context.Context, product *models.Product) error {
	const q = `
        INSERT INTO products (model, category, quantity, details, selling_price, arrival_date)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at`

	err := r.db.QueryRowxContext(ctx, q,
		product.Model,
		product.Category,
		product.Quantity,
		product.Details,
		product.SellingPrice,
		product.ArrivalDate,
	).Scan(&product.ID, &product.CreatedAt)
	if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == pgUniqueViolation {
		return utils.ErrProductAlreadyExists
	}
	return err
}

// AddQuantity increases a product's stock in one conditional update and
// returns the new quantity. The update matches only when the change date
// does not precede the stored arrival date; otherwise sql.ErrNoRows.
func (r *ProductRepository) AddQuantity(ctx context.Context, model string, delta int, changeDate models.Date) (int, error) {
	const q = `
        UPDATE products
        SET quantity = quantity + $2
        WHERE model = $1 AND arrival_date <= $3
        RETURNING quantity`

	var quantity int
	if err := r.db.GetContext(ctx, &quantity, q, model, delta, changeDate); err != nil {
		return 0, err
	}
	return quantity, nil
}

// RemoveQuantity decreases a product's stock in one conditional update and
// returns the new quantity. The update matches only when enough stock is on
// hand and the sell date does not precede the stored arrival date.
func (r *ProductRepository) RemoveQuantity(ctx context.Context, model string, quantity int, sellDate models.Date) (int, error) {
	const q = `
        UPDATE products
        SET quantity = quantity - $2
        WHERE model = $1 AND quantity >= $2 AND arrival_date <= $3
        RETURNING quantity`

	var remaining int
	if err := r.db.GetContext(ctx, &remaining, q, model, quantity, sellDate); err != nil {
		return 0, err
	}
	return remaining, nil
}

// DeleteByModel deletes a product by model key and reports whether a row
// was removed.
func (r *ProductRepository) DeleteByModel(ctx context.Context, model string) (bool, error) {
	const q = `DELETE FROM products WHERE model = $1`

	res, err := r.db.ExecContext(ctx, q, model)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// DeleteAll removes every product.
func (r *ProductRepository) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM products`)
	return err
}
