package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/voltshop/inventory-api/internal/models"
	"github.com/voltshop/inventory-api/internal/utils"
)

// ReviewRepository handles data access for product reviews.
type ReviewRepository struct {
	db *sqlx.DB
}

// NewReviewRepository creates a new ReviewRepository.
func NewReviewRepository(db *sqlx.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// GetByModel returns all reviews of a product in insertion order.
func (r *ReviewRepository) GetByModel(ctx context.Context, model string) ([]models.Review, error) {
	const q = `SELECT * FROM reviews WHERE model = $1 ORDER BY id`

	var reviews []models.Review
	if err := r.db.SelectContext(ctx, &reviews, q, model); err != nil {
		return nil, err
	}
	return reviews, nil
}

// Create inserts a review. A second review by the same user for the same
// model is reported as ErrReviewAlreadyExists.
func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	const q = `
        INSERT INTO reviews (model, username, score, review_date, comment)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`

	err := r.db.QueryRowxContext(ctx, q,
		review.Model, review.Username, review.Score, review.ReviewDate, review.Comment,
	).Scan(&review.ID, &review.CreatedAt)
	if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == pgUniqueViolation {
		return utils.ErrReviewAlreadyExists
	}
	return err
}

// Delete removes a user's review of a product and reports whether a row
// was removed.
func (r *ReviewRepository) Delete(ctx context.Context, model, username string) (bool, error) {
	const q = `DELETE FROM reviews WHERE model = $1 AND username = $2`

	res, err := r.db.ExecContext(ctx, q, model, username)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
