package validation

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/voltshop/inventory-api/internal/clock"
	"github.com/voltshop/inventory-api/internal/inventory"
	"github.com/voltshop/inventory-api/internal/models"
	"github.com/voltshop/inventory-api/internal/utils"
)

// Validator normalizes raw caller inputs and rejects malformed or
// inconsistent requests before they reach stored state. It is stateless
// apart from the injected clock.
type Validator struct {
	clk clock.Clock
}

// New constructs a Validator.
func New(clk clock.Clock) *Validator {
	return &Validator{clk: clk}
}

// RegisterInput carries the raw fields of a registration request. Optional
// fields are pointers so that absence can be told apart from zero values.
type RegisterInput struct {
	Model        string   `json:"model"`
	Category     string   `json:"category"`
	Quantity     *int     `json:"quantity"`
	Details      *string  `json:"details"`
	SellingPrice *float64 `json:"sellingPrice"`
	ArrivalDate  string   `json:"arrivalDate"`
}

// QuantityChangeInput carries the raw fields of a restock or sale request.
type QuantityChangeInput struct {
	Model      string
	Quantity   *int
	ChangeDate string
}

func (v *Validator) today() models.Date {
	return models.NewDate(v.clk.Now())
}

// Register validates and normalizes a registration request: strings are
// trimmed, missing details get a promotional placeholder referencing the
// model, and a missing arrival date defaults to today.
func (v *Validator) Register(in *RegisterInput) (*inventory.RegisterCommand, error) {
	model := strings.TrimSpace(in.Model)
	if model == "" {
		return nil, utils.ErrInvalidParameters
	}

	category, ok := models.ParseCategory(strings.TrimSpace(in.Category))
	if !ok {
		return nil, utils.ErrInvalidParameters
	}

	if in.Quantity == nil || *in.Quantity <= 0 {
		return nil, utils.ErrInvalidParameters
	}

	if in.SellingPrice == nil || *in.SellingPrice <= 0 {
		return nil, utils.ErrInvalidParameters
	}

	details := fmt.Sprintf("Discover the new %s!", model)
	if in.Details != nil {
		trimmed := strings.TrimSpace(*in.Details)
		if trimmed == "" {
			return nil, utils.ErrInvalidParameters
		}
		details = trimmed
	}

	arrivalDate := v.today()
	if strings.TrimSpace(in.ArrivalDate) != "" {
		parsed, err := models.ParseDate(in.ArrivalDate)
		if err != nil {
			return nil, utils.ErrInvalidParameters
		}
		if parsed.After(v.today().Time) {
			return nil, utils.ErrArrivalDate
		}
		arrivalDate = parsed
	}

	return &inventory.RegisterCommand{
		Model:        model,
		Category:     category,
		Quantity:     *in.Quantity,
		Details:      details,
		SellingPrice: decimal.NewFromFloat(*in.SellingPrice),
		ArrivalDate:  arrivalDate,
	}, nil
}

// ChangeQuantity validates a restock request. The temporal check against the
// stored arrival date is deferred to the engine; only "not after today" can
// be decided here.
func (v *Validator) ChangeQuantity(in *QuantityChangeInput) (*inventory.QuantityChangeCommand, error) {
	return v.quantityChange(in)
}

// Sell validates a sale request with the same shape rules as ChangeQuantity.
func (v *Validator) Sell(in *QuantityChangeInput) (*inventory.QuantityChangeCommand, error) {
	return v.quantityChange(in)
}

func (v *Validator) quantityChange(in *QuantityChangeInput) (*inventory.QuantityChangeCommand, error) {
	model := strings.TrimSpace(in.Model)
	if model == "" {
		return nil, utils.ErrInvalidParameters
	}
	if in.Quantity == nil || *in.Quantity <= 0 {
		return nil, utils.ErrInvalidParameters
	}

	var changeDate models.Date
	if strings.TrimSpace(in.ChangeDate) != "" {
		parsed, err := models.ParseDate(in.ChangeDate)
		if err != nil {
			return nil, utils.ErrInvalidParameters
		}
		if parsed.After(v.today().Time) {
			return nil, utils.ErrArrivalDate
		}
		changeDate = parsed
	}

	return &inventory.QuantityChangeCommand{
		Model:      model,
		Quantity:   *in.Quantity,
		ChangeDate: changeDate,
	}, nil
}

// Query validates the three-way retrieval mode selector: exactly one of
// {no grouping and no filters, category grouping with a valid category,
// model grouping with a non-blank model} must hold.
func (v *Validator) Query(grouping, category, model string) (*inventory.QueryCommand, error) {
	category = strings.TrimSpace(category)
	model = strings.TrimSpace(model)

	switch models.Grouping(strings.TrimSpace(grouping)) {
	case models.GroupingNone:
		if category != "" || model != "" {
			return nil, utils.ErrFilters
		}
		return &inventory.QueryCommand{Grouping: models.GroupingNone}, nil

	case models.GroupingCategory:
		if model != "" {
			return nil, utils.ErrFilters
		}
		parsed, ok := models.ParseCategory(category)
		if !ok {
			return nil, utils.ErrFilters
		}
		return &inventory.QueryCommand{Grouping: models.GroupingCategory, Category: parsed}, nil

	case models.GroupingModel:
		if category != "" || model == "" {
			return nil, utils.ErrFilters
		}
		return &inventory.QueryCommand{Grouping: models.GroupingModel, Model: model}, nil

	default:
		return nil, utils.ErrFilters
	}
}

// Delete validates a single-product deletion request.
func (v *Validator) Delete(model string) (string, error) {
	model = strings.TrimSpace(model)
	if model == "" {
		return "", utils.ErrInvalidParameters
	}
	return model, nil
}
