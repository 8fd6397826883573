package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/nmehta6/shopassist/internal/api/response"
	"github.com/nmehta6/shopassist/internal/domain"
	"github.com/nmehta6/shopassist/internal/service"
)

// ProductHandler handles catalog endpoints
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List returns the full catalog
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.List(r.Context())
	if err != nil {
		response.InternalError(w, "failed to list products")
		return
	}
	response.OK(w, products)
}

// Get returns a single product
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	product, err := h.productService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			response.NotFound(w, "product not found")
			return
		}
		response.InternalError(w, "failed to get product")
		return
	}

	response.OK(w, product)
}

// Create adds a product to the catalog
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	input, ok := decodeProduct(w, r)
	if !ok {
		return
	}

	product, err := h.productService.Create(r.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateSKU) {
			response.Conflict(w, "sku already exists")
			return
		}
		response.InternalError(w, "failed to create product")
		return
	}

	response.Created(w, product)
}

// Update replaces a product's details
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	input, ok := decodeProduct(w, r)
	if !ok {
		return
	}

	product, err := h.productService.Update(r.Context(), id, input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			response.NotFound(w, "product not found")
		case errors.Is(err, domain.ErrDuplicateSKU):
			response.Conflict(w, "sku already exists")
		default:
			response.InternalError(w, "failed to update product")
		}
		return
	}

	response.OK(w, product)
}

// Delete removes a product from the catalog
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	if err := h.productService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			response.NotFound(w, "product not found")
			return
		}
		response.InternalError(w, "failed to delete product")
		return
	}

	response.NoContent(w)
}

func productID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		response.BadRequest(w, "invalid product ID")
		return uuid.Nil, false
	}
	return id, true
}

func decodeProduct(w http.ResponseWriter, r *http.Request) (domain.ProductCreate, bool) {
	var input domain.ProductCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return input, false
	}
	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, validationMessages(err))
		return input, false
	}
	return input, true
}
