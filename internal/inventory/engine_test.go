package inventory

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voltshop/inventory-api/internal/clock"
	"github.com/voltshop/inventory-api/internal/models"
	"github.com/voltshop/inventory-api/internal/utils"
)

// memStore is an in-memory ProductStore with the same contract as the
// PostgreSQL repository: sql.ErrNoRows for a missing or unmatched row,
// insertion-order listings, and conditional quantity updates.
type memStore struct {
	products []*models.Product
	nextID   int
}

func (s *memStore) find(model string) *models.Product {
	for _, p := range s.products {
		if p.Model == model {
			return p
		}
	}
	return nil
}

func (s *memStore) GetByModel(_ context.Context, model string) (*models.Product, error) {
	p := s.find(model)
	if p == nil {
		return nil, sql.ErrNoRows
	}
	cp := *p
	return &cp, nil
}

func (s *memStore) GetAll(_ context.Context) ([]models.Product, error) {
	out := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, *p)
	}
	return out, nil
}

func (s *memStore) GetByCategory(_ context.Context, category models.Category) ([]models.Product, error) {
	var out []models.Product
	for _, p := range s.products {
		if p.Category == category {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *memStore) Insert(_ context.Context, product *models.Product) error {
	if s.find(product.Model) != nil {
		return utils.ErrProductAlreadyExists
	}
	s.nextID++
	product.ID = s.nextID
	cp := *product
	s.products = append(s.products, &cp)
	return nil
}

func (s *memStore) AddQuantity(_ context.Context, model string, delta int, changeDate models.Date) (int, error) {
	p := s.find(model)
	if p == nil || changeDate.Before(p.ArrivalDate.Time) {
		return 0, sql.ErrNoRows
	}
	p.Quantity += delta
	return p.Quantity, nil
}

func (s *memStore) RemoveQuantity(_ context.Context, model string, quantity int, sellDate models.Date) (int, error) {
	p := s.find(model)
	if p == nil || p.Quantity < quantity || sellDate.Before(p.ArrivalDate.Time) {
		return 0, sql.ErrNoRows
	}
	p.Quantity -= quantity
	return p.Quantity, nil
}

func (s *memStore) DeleteByModel(_ context.Context, model string) (bool, error) {
	for i, p := range s.products {
		if p.Model == model {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) DeleteAll(_ context.Context) error {
	s.products = nil
	return nil
}

// today is 2024-06-15 in every engine test.
func newTestEngine() (*Engine, *memStore) {
	store := &memStore{}
	clk := clock.Fixed{T: time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)}
	return NewEngine(store, clk, nil), store
}

func mustDate(t *testing.T, s string) models.Date {
	t.Helper()
	d, err := models.ParseDate(s)
	require.NoError(t, err)
	return d
}

func registerCmd(t *testing.T, model string, category models.Category, quantity int, arrival string) *RegisterCommand {
	t.Helper()
	return &RegisterCommand{
		Model:        model,
		Category:     category,
		Quantity:     quantity,
		Details:      "Discover the new " + model + "!",
		SellingPrice: decimal.NewFromInt(500),
		ArrivalDate:  mustDate(t, arrival),
	}
}

func TestRegisterStoresRecord(t *testing.T) {
	engine, store := newTestEngine()
	ctx := context.Background()

	err := engine.Register(ctx, registerCmd(t, "X", models.CategoryLaptop, 10, "2024-01-01"))
	require.NoError(t, err)

	p, err := store.GetByModel(ctx, "X")
	require.NoError(t, err)
	assert.Equal(t, 10, p.Quantity)
	assert.Equal(t, models.CategoryLaptop, p.Category)
	assert.Equal(t, "2024-01-01", p.ArrivalDate.String())
}

func TestRegisterDuplicateModel(t *testing.T) {
	engine, _ := newTestEngine()
	ctx := context.Background()

	require.NoError(t, engine.Register(ctx, registerCmd(t, "X", models.CategoryLaptop, 10, "2024-01-01")))

	err := engine.Register(ctx, registerCmd(t, "X", models.CategorySmartphone, 99, "2024-02-02"))
	assert.ErrorIs(t, err, utils.ErrProductAlreadyExists)
}

func TestChangeQuantity(t *testing.T) {
	engine, _ := newTestEngine()
	ctx := context.Background()

	require.NoError(t, engine.Register(ctx, registerCmd(t, "X", models.CategoryLaptop, 10, "2024-01-01")))

	qty, err := engine.ChangeQuantity(ctx, &QuantityChangeCommand{Model: "X", Quantity: 5, ChangeDate: mustDate(t, "2024-03-01")})
	require.NoError(t, err)
	assert.Equal(t, 15, qty)

	// absent date resolves to today
	qty, err = engine.ChangeQuantity(ctx, &QuantityChangeCommand{Model: "X", Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, 16, qty)

	_, err = engine.ChangeQuantity(ctx, &QuantityChangeCommand{Model: "missing", Quantity: 5})
	assert.ErrorIs(t, err, utils.ErrProductNotFound)

	// change date before the stored arrival date
	_, err = engine.ChangeQuantity(ctx, &QuantityChangeCommand{Model: "X", Quantity: 5, ChangeDate: mustDate(t, "2023-12-31")})
	assert.ErrorIs(t, err, utils.ErrArrivalDate)

	// change date after today
	_, err = engine.ChangeQuantity(ctx, &QuantityChangeCommand{Model: "X", Quantity: 5, ChangeDate: mustDate(t, "2024-06-16")})
	assert.ErrorIs(t, err, utils.ErrArrivalDate)
}

func TestChangeQuantityLeavesArrivalDateUntouched(t *testing.T) {
	engine, store := newTestEngine()
	ctx := context.Background()

	require.NoError(t, engine.Register(ctx, registerCmd(t, "X", models.CategoryLaptop, 10, "2024-01-01")))

	_, err := engine.ChangeQuantity(ctx, &QuantityChangeCommand{Model: "X", Quantity: 5, ChangeDate: mustDate(t, "2024-05-01")})
	require.NoError(t, err)

	p, err := store.GetByModel(ctx, "X")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", p.ArrivalDate.String())
}

func TestSellScenario(t *testing.T) {
	engine, store := newTestEngine()
	ctx := context.Background()

	require.NoError(t, engine.Register(ctx, registerCmd(t, "X", models.CategoryLaptop, 10, "2024-01-01")))

	qty, err := engine.Sell(ctx, &QuantityChangeCommand{Model: "X", Quantity: 5, ChangeDate: mustDate(t, "2024-01-02")})
	require.NoError(t, err)
	assert.Equal(t, 5, qty)

	p, err := store.GetByModel(ctx, "X")
	require.NoError(t, err)
	assert.Equal(t, 5, p.Quantity)

	_, err = engine.Sell(ctx, &QuantityChangeCommand{Model: "X", Quantity: 10, ChangeDate: mustDate(t, "2024-01-03")})
	assert.ErrorIs(t, err, utils.ErrLowProductStock)
}

func TestSellFailureKinds(t *testing.T) {
	engine, _ := newTestEngine()
	ctx := context.Background()

	require.NoError(t, engine.Register(ctx, registerCmd(t, "X", models.CategoryLaptop, 2, "2024-01-01")))

	_, err := engine.Sell(ctx, &QuantityChangeCommand{Model: "missing", Quantity: 1})
	assert.ErrorIs(t, err, utils.ErrProductNotFound)

	_, err = engine.Sell(ctx, &QuantityChangeCommand{Model: "X", Quantity: 1, ChangeDate: mustDate(t, "2023-06-01")})
	assert.ErrorIs(t, err, utils.ErrArrivalDate)

	_, err = engine.Sell(ctx, &QuantityChangeCommand{Model: "X", Quantity: 1, ChangeDate: mustDate(t, "2024-07-01")})
	assert.ErrorIs(t, err, utils.ErrArrivalDate)

	// drain the stock, then every further sale is an empty-stock failure
	_, err = engine.Sell(ctx, &QuantityChangeCommand{Model: "X", Quantity: 2})
	require.NoError(t, err)

	_, err = engine.Sell(ctx, &QuantityChangeCommand{Model: "X", Quantity: 1})
	assert.ErrorIs(t, err, utils.ErrEmptyProductStock)
}

func seedCatalog(t *testing.T, engine *Engine) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, engine.Register(ctx, registerCmd(t, "A", models.CategoryLaptop, 3, "2024-01-01")))
	require.NoError(t, engine.Register(ctx, registerCmd(t, "B", models.CategorySmartphone, 0, "2024-02-01")))
	require.NoError(t, engine.Register(ctx, registerCmd(t, "C", models.CategoryLaptop, 7, "2024-03-01")))
}

func TestQueryAllInsertionOrder(t *testing.T) {
	engine, _ := newTestEngine()
	seedCatalog(t, engine)

	products, err := engine.Query(context.Background(), &QueryCommand{})
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, "A", products[0].Model)
	assert.Equal(t, "B", products[1].Model)
	assert.Equal(t, "C", products[2].Model)
}

func TestQueryByCategory(t *testing.T) {
	engine, _ := newTestEngine()
	seedCatalog(t, engine)

	products, err := engine.Query(context.Background(), &QueryCommand{Grouping: models.GroupingCategory, Category: models.CategoryLaptop})
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "A", products[0].Model)
	assert.Equal(t, "C", products[1].Model)

	_, err = engine.Query(context.Background(), &QueryCommand{Grouping: models.GroupingCategory, Category: "Tablet"})
	assert.ErrorIs(t, err, utils.ErrFilters)
}

func TestQueryByModel(t *testing.T) {
	engine, _ := newTestEngine()
	seedCatalog(t, engine)

	products, err := engine.Query(context.Background(), &QueryCommand{Grouping: models.GroupingModel, Model: "B"})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "B", products[0].Model)

	_, err = engine.Query(context.Background(), &QueryCommand{Grouping: models.GroupingModel, Model: "missing"})
	assert.ErrorIs(t, err, utils.ErrProductNotFound)
}

func TestQueryAvailableFiltersOutOfStock(t *testing.T) {
	engine, _ := newTestEngine()
	seedCatalog(t, engine)
	ctx := context.Background()

	products, err := engine.QueryAvailable(ctx, &QueryCommand{})
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "A", products[0].Model)
	assert.Equal(t, "C", products[1].Model)

	// a named lookup of an out-of-stock product explains why, instead of
	// returning nothing
	_, err = engine.QueryAvailable(ctx, &QueryCommand{Grouping: models.GroupingModel, Model: "B"})
	assert.ErrorIs(t, err, utils.ErrEmptyProductStock)

	products, err = engine.QueryAvailable(ctx, &QueryCommand{Grouping: models.GroupingCategory, Category: models.CategorySmartphone})
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestDeleteOne(t *testing.T) {
	engine, _ := newTestEngine()
	seedCatalog(t, engine)
	ctx := context.Background()

	require.NoError(t, engine.DeleteOne(ctx, "B"))

	_, err := engine.Query(ctx, &QueryCommand{Grouping: models.GroupingModel, Model: "B"})
	assert.ErrorIs(t, err, utils.ErrProductNotFound)

	err = engine.DeleteOne(ctx, "B")
	assert.ErrorIs(t, err, utils.ErrProductNotFound)
}

func TestDeleteAll(t *testing.T) {
	engine, _ := newTestEngine()
	ctx := context.Background()

	// deleting from an empty store succeeds
	require.NoError(t, engine.DeleteAll(ctx))

	seedCatalog(t, engine)
	require.NoError(t, engine.DeleteAll(ctx))

	products, err := engine.Query(ctx, &QueryCommand{})
	require.NoError(t, err)
	assert.Empty(t, products)
}
