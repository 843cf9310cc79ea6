package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/voltshop/inventory-api/internal/inventory"
	"github.com/voltshop/inventory-api/internal/utils"
	"github.com/voltshop/inventory-api/internal/validation"
)

// ProductHandler handles the inventory HTTP endpoints. Requests pass through
// the validation layer before reaching the engine; failures propagate back
// unchanged and are mapped to HTTP status codes in one place.
type ProductHandler struct {
	validator *validation.Validator
	engine    *inventory.Engine
}

// NewProductHandler constructs a ProductHandler.
func NewProductHandler(validator *validation.Validator, engine *inventory.Engine) *ProductHandler {
	return &ProductHandler{validator: validator, engine: engine}
}

// RegisterProduct creates a new catalog entry.
func (h *ProductHandler) RegisterProduct(c *gin.Context) {
	var req validation.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_PARAMETERS", "Invalid request body")
		return
	}

	cmd, err := h.validator.Register(&req)
	if err != nil {
		writeError(c, err)
		return
	}
	if err := h.engine.Register(c.Request.Context(), cmd); err != nil {
		writeError(c, err)
		return
	}

	utils.Success(c, 201, "Product registered", gin.H{"model": cmd.Model})
}

type quantityChangeRequest struct {
	Quantity   *int   `json:"quantity"`
	ChangeDate string `json:"changeDate"`
}

// ChangeQuantity restocks a product and returns the new quantity.
func (h *ProductHandler) ChangeQuantity(c *gin.Context) {
	var req quantityChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_PARAMETERS", "Invalid request body")
		return
	}

	cmd, err := h.validator.ChangeQuantity(&validation.QuantityChangeInput{
		Model:      c.Param("model"),
		Quantity:   req.Quantity,
		ChangeDate: req.ChangeDate,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	quantity, err := h.engine.ChangeQuantity(c.Request.Context(), cmd)
	if err != nil {
		writeError(c, err)
		return
	}

	utils.Success(c, 200, "Quantity updated", gin.H{"quantity": quantity})
}

type sellRequest struct {
	Quantity *int   `json:"quantity"`
	SellDate string `json:"sellDate"`
}

// SellProduct records a sale and returns the remaining quantity.
func (h *ProductHandler) SellProduct(c *gin.Context) {
	var req sellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_PARAMETERS", "Invalid request body")
		return
	}

	cmd, err := h.validator.Sell(&validation.QuantityChangeInput{
		Model:      c.Param("model"),
		Quantity:   req.Quantity,
		ChangeDate: req.SellDate,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	quantity, err := h.engine.Sell(c.Request.Context(), cmd)
	if err != nil {
		writeError(c, err)
		return
	}

	utils.Success(c, 200, "Product sold", gin.H{"quantity": quantity})
}

// GetProducts returns catalog entries for the selected query mode.
func (h *ProductHandler) GetProducts(c *gin.Context) {
	h.listProducts(c, false)
}

// GetAvailableProducts returns in-stock catalog entries for the selected
// query mode.
func (h *ProductHandler) GetAvailableProducts(c *gin.Context) {
	h.listProducts(c, true)
}

func (h *ProductHandler) listProducts(c *gin.Context, availableOnly bool) {
	cmd, err := h.validator.Query(c.Query("grouping"), c.Query("category"), c.Query("model"))
	if err != nil {
		writeError(c, err)
		return
	}

	query := h.engine.Query
	if availableOnly {
		query = h.engine.QueryAvailable
	}
	products, err := query(c.Request.Context(), cmd)
	if err != nil {
		writeError(c, err)
		return
	}

	utils.Success(c, 200, "Products retrieved successfully", gin.H{"products": products})
}

// DeleteProduct removes a single product.
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	model, err := h.validator.Delete(c.Param("model"))
	if err != nil {
		writeError(c, err)
		return
	}
	if err := h.engine.DeleteOne(c.Request.Context(), model); err != nil {
		writeError(c, err)
		return
	}

	utils.Success(c, 200, "Product deleted", nil)
}

// DeleteAllProducts empties the catalog.
func (h *ProductHandler) DeleteAllProducts(c *gin.Context) {
	if err := h.engine.DeleteAll(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}

	utils.Success(c, 200, "All products deleted", nil)
}
