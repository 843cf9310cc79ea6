package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/voltshop/inventory-api/internal/clock"
	"github.com/voltshop/inventory-api/internal/models"
	"github.com/voltshop/inventory-api/internal/repository"
	"github.com/voltshop/inventory-api/internal/utils"
)

// ReviewService manages customer reviews. A user may review a given product
// at most once, and the product must exist for every operation.
type ReviewService struct {
	reviewRepo  *repository.ReviewRepository
	productRepo *repository.ProductRepository
	clk         clock.Clock
}

// NewReviewService constructs a ReviewService.
func NewReviewService(reviewRepo *repository.ReviewRepository, productRepo *repository.ProductRepository, clk clock.Clock) *ReviewService {
	return &ReviewService{reviewRepo: reviewRepo, productRepo: productRepo, clk: clk}
}

// AddReview records a review dated today.
func (s *ReviewService) AddReview(ctx context.Context, model, username string, score int, comment string) (*models.Review, error) {
	model = strings.TrimSpace(model)
	if model == "" || score < 1 || score > 5 {
		return nil, utils.ErrInvalidParameters
	}

	if err := s.requireProduct(ctx, model); err != nil {
		return nil, err
	}

	review := &models.Review{
		Model:      model,
		Username:   username,
		Score:      score,
		ReviewDate: models.NewDate(s.clk.Now()),
		Comment:    strings.TrimSpace(comment),
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// GetReviews returns a product's reviews in insertion order.
func (s *ReviewService) GetReviews(ctx context.Context, model string) ([]models.Review, error) {
	model = strings.TrimSpace(model)
	if model == "" {
		return nil, utils.ErrInvalidParameters
	}
	if err := s.requireProduct(ctx, model); err != nil {
		return nil, err
	}
	return s.reviewRepo.GetByModel(ctx, model)
}

// DeleteReview removes the caller's review of a product.
func (s *ReviewService) DeleteReview(ctx context.Context, model, username string) error {
	model = strings.TrimSpace(model)
	if model == "" {
		return utils.ErrInvalidParameters
	}
	if err := s.requireProduct(ctx, model); err != nil {
		return err
	}

	deleted, err := s.reviewRepo.Delete(ctx, model, username)
	if err != nil {
		return err
	}
	if !deleted {
		return utils.ErrReviewNotFound
	}
	return nil
}

func (s *ReviewService) requireProduct(ctx context.Context, model string) error {
	if _, err := s.productRepo.GetByModel(ctx, model); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return utils.ErrProductNotFound
		}
		return err
	}
	return nil
}
