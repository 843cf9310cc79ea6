package inventory

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/voltshop/inventory-api/internal/clock"
	"github.com/voltshop/inventory-api/internal/models"
	"github.com/voltshop/inventory-api/internal/utils"
)

// ProductStore is the keyed persistence consumed by the engine. Implementations
// must report a missing model as sql.ErrNoRows and make each call atomic.
type ProductStore interface {
	GetByModel(ctx context.Context, model string) (*models.Product, error)
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByCategory(ctx context.Context, category models.Category) ([]models.Product, error)
	Insert(ctx context.Context, product *models.Product) error

	// AddQuantity and RemoveQuantity are single conditional updates returning
	// the new quantity. They fail with sql.ErrNoRows when no row satisfies
	// the model / arrival-date / stock conditions.
	AddQuantity(ctx context.Context, model string, delta int, changeDate models.Date) (int, error)
	RemoveQuantity(ctx context.Context, model string, quantity int, sellDate models.Date) (int, error)

	DeleteByModel(ctx context.Context, model string) (bool, error)
	DeleteAll(ctx context.Context) error
}

// ListingCache is an optional read cache for catalog listings. All methods
// are best-effort; a failing cache never fails a request.
type ListingCache interface {
	GetProducts(ctx context.Context, key string) ([]models.Product, bool)
	SetProducts(ctx context.Context, key string, products []models.Product)
	InvalidateProducts(ctx context.Context, keys ...string)
}

// RegisterCommand is a normalized product registration.
type RegisterCommand struct {
	Model        string
	Category     models.Category
	Quantity     int
	Details      string
	SellingPrice decimal.Decimal
	ArrivalDate  models.Date
}

// QuantityChangeCommand is a normalized restock or sale request.
// A zero ChangeDate means "today".
type QuantityChangeCommand struct {
	Model      string
	Quantity   int
	ChangeDate models.Date
}

// QueryCommand selects exactly one catalog retrieval mode.
type QueryCommand struct {
	Grouping models.Grouping
	Category models.Category
	Model    string
}

// StockNotifier receives catalog change events after each successful write.
type StockNotifier interface {
	NotifyProductRegistered(product *models.Product)
	NotifyStockChanged(model string, quantity int)
	NotifyProductDeleted(model string)
	NotifyCatalogCleared()
}

// Engine owns the authoritative product state transitions and reads.
type Engine struct {
	store    ProductStore
	clk      clock.Clock
	cache    ListingCache
	notifier StockNotifier
}

// NewEngine constructs an Engine. cache may be nil.
func NewEngine(store ProductStore, clk clock.Clock, cache ListingCache) *Engine {
	return &Engine{store: store, clk: clk, cache: cache}
}

// SetNotifier wires an optional event sink for catalog changes.
func (e *Engine) SetNotifier(notifier StockNotifier) {
	e.notifier = notifier
}

func (e *Engine) today() models.Date {
	return models.NewDate(e.clk.Now())
}

// Register inserts a new product record. It fails with ErrProductAlreadyExists
// when the model key is already taken.
func (e *Engine) Register(ctx context.Context, cmd *RegisterCommand) error {
	existing, err := e.store.GetByModel(ctx, cmd.Model)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	if existing != nil {
		return utils.ErrProductAlreadyExists
	}

	product := &models.Product{
		Model:        cmd.Model,
		Category:     cmd.Category,
		Quantity:     cmd.Quantity,
		Details:      cmd.Details,
		SellingPrice: cmd.SellingPrice,
		ArrivalDate:  cmd.ArrivalDate,
	}
	if err := e.store.Insert(ctx, product); err != nil {
		return err
	}
	e.invalidateListings(ctx)
	if e.notifier != nil {
		e.notifier.NotifyProductRegistered(product)
	}

	log.Debug().Str("model", cmd.Model).Str("category", string(cmd.Category)).Msg("product registered")
	return nil
}

// ChangeQuantity increases a product's stock by cmd.Quantity and returns the
// new quantity. The stored arrival date is validated against but never moved.
func (e *Engine) ChangeQuantity(ctx context.Context, cmd *QuantityChangeCommand) (int, error) {
	date, err := e.resolveDate(cmd.ChangeDate)
	if err != nil {
		return 0, err
	}

	quantity, err := e.store.AddQuantity(ctx, cmd.Model, cmd.Quantity, date)
	if err == nil {
		e.invalidateListings(ctx)
		if e.notifier != nil {
			e.notifier.NotifyStockChanged(cmd.Model, quantity)
		}
		return quantity, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}

	// The conditional update matched nothing: either the model is unknown or
	// the change date precedes the stored arrival date.
	if _, err := e.store.GetByModel(ctx, cmd.Model); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, utils.ErrProductNotFound
		}
		return 0, err
	}
	return 0, utils.ErrArrivalDate
}

// Sell decreases a product's stock by cmd.Quantity and returns the new
// quantity. Stock and temporal preconditions are enforced by a single
// conditional update; the failure kind is classified with a follow-up read.
func (e *Engine) Sell(ctx context.Context, cmd *QuantityChangeCommand) (int, error) {
	date, err := e.resolveDate(cmd.ChangeDate)
	if err != nil {
		return 0, err
	}

	for {
		quantity, err := e.store.RemoveQuantity(ctx, cmd.Model, cmd.Quantity, date)
		if err == nil {
			e.invalidateListings(ctx)
			if e.notifier != nil {
				e.notifier.NotifyStockChanged(cmd.Model, quantity)
			}
			return quantity, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return 0, err
		}

		product, err := e.store.GetByModel(ctx, cmd.Model)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return 0, utils.ErrProductNotFound
			}
			return 0, err
		}
		switch {
		case date.Before(product.ArrivalDate.Time):
			return 0, utils.ErrArrivalDate
		case product.Quantity == 0:
			return 0, utils.ErrEmptyProductStock
		case product.Quantity < cmd.Quantity:
			return 0, utils.ErrLowProductStock
		}
		// The row changed between the update and the classifying read
		// (a concurrent restock); the sale may now succeed, so retry.
		log.Warn().Str("model", cmd.Model).Msg("stock changed during sale, retrying")
	}
}

// Query returns products for the selected retrieval mode. The "all" listing
// follows insertion order.
func (e *Engine) Query(ctx context.Context, cmd *QueryCommand) ([]models.Product, error) {
	return e.query(ctx, cmd, false)
}

// QueryAvailable behaves like Query but drops out-of-stock products from the
// "all" and "category" listings. A named lookup of an out-of-stock product
// fails with ErrEmptyProductStock instead of yielding an empty result.
func (e *Engine) QueryAvailable(ctx context.Context, cmd *QueryCommand) ([]models.Product, error) {
	return e.query(ctx, cmd, true)
}

func (e *Engine) query(ctx context.Context, cmd *QueryCommand, availableOnly bool) ([]models.Product, error) {
	switch cmd.Grouping {
	case models.GroupingNone:
		return e.listing(ctx, listingKey("all", availableOnly), availableOnly, e.store.GetAll)

	case models.GroupingCategory:
		if !cmd.Category.Valid() {
			return nil, utils.ErrFilters
		}
		fetch := func(ctx context.Context) ([]models.Product, error) {
			return e.store.GetByCategory(ctx, cmd.Category)
		}
		return e.listing(ctx, listingKey("category:"+string(cmd.Category), availableOnly), availableOnly, fetch)

	case models.GroupingModel:
		product, err := e.store.GetByModel(ctx, cmd.Model)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, utils.ErrProductNotFound
			}
			return nil, err
		}
		if availableOnly && product.Quantity == 0 {
			return nil, utils.ErrEmptyProductStock
		}
		return []models.Product{*product}, nil

	default:
		return nil, utils.ErrFilters
	}
}

// DeleteOne removes a single product by model.
func (e *Engine) DeleteOne(ctx context.Context, model string) error {
	deleted, err := e.store.DeleteByModel(ctx, model)
	if err != nil {
		return err
	}
	if !deleted {
		return utils.ErrProductNotFound
	}
	e.invalidateListings(ctx)
	if e.notifier != nil {
		e.notifier.NotifyProductDeleted(model)
	}
	return nil
}

// DeleteAll removes every product. Succeeds on an empty store.
func (e *Engine) DeleteAll(ctx context.Context) error {
	if err := e.store.DeleteAll(ctx); err != nil {
		return err
	}
	e.invalidateListings(ctx)
	if e.notifier != nil {
		e.notifier.NotifyCatalogCleared()
	}
	return nil
}

// resolveDate defaults a zero date to today and rejects future dates.
func (e *Engine) resolveDate(d models.Date) (models.Date, error) {
	today := e.today()
	if d.IsZero() {
		return today, nil
	}
	if d.After(today.Time) {
		return models.Date{}, utils.ErrArrivalDate
	}
	return d, nil
}

func (e *Engine) listing(ctx context.Context, key string, availableOnly bool, fetch func(context.Context) ([]models.Product, error)) ([]models.Product, error) {
	if e.cache != nil {
		if products, ok := e.cache.GetProducts(ctx, key); ok {
			return products, nil
		}
	}

	products, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	if availableOnly {
		available := make([]models.Product, 0, len(products))
		for _, p := range products {
			if p.Quantity > 0 {
				available = append(available, p)
			}
		}
		products = available
	}

	if e.cache != nil {
		e.cache.SetProducts(ctx, key, products)
	}
	return products, nil
}

func (e *Engine) invalidateListings(ctx context.Context) {
	if e.cache != nil {
		e.cache.InvalidateProducts(ctx, allListingKeys()...)
	}
}

func listingKey(scope string, availableOnly bool) string {
	key := "catalog:" + scope
	if availableOnly {
		key += ":available"
	}
	return key
}

func allListingKeys() []string {
	keys := []string{listingKey("all", false), listingKey("all", true)}
	for _, c := range []models.Category{models.CategorySmartphone, models.CategoryLaptop, models.CategoryAppliance} {
		keys = append(keys, listingKey("category:"+string(c), false), listingKey("category:"+string(c), true))
	}
	return keys
}
