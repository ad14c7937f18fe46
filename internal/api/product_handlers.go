package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/example/marketplace/internal/domain/product"
)

// ProductListResponse is the paginated catalog listing payload.
type ProductListResponse struct {
	Products    []*product.Product `json:"products"`
	TotalPages  int                `json:"totalPages"`
	CurrentPage int                `json:"currentPage"`
	Total       int                `json:"total"`
}

func (h *Handlers) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := product.Filter{
		Category: q.Get("category"),
		Search:   q.Get("search"),
	}
	f.Page, _ = strconv.Atoi(q.Get("page"))
	f.Limit, _ = strconv.Atoi(q.Get("limit"))
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}

	products, total, err := h.products.List(r.Context(), f)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if products == nil {
		products = []*product.Product{}
	}

	totalPages := (total + f.Limit - 1) / f.Limit
	respondJSON(w, http.StatusOK, ProductListResponse{
		Products:    products,
		TotalPages:  totalPages,
		CurrentPage: f.Page,
		Total:       total,
	})
}

func (h *Handlers) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.products.Categories(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if categories == nil {
		categories = []string{}
	}
	respondJSON(w, http.StatusOK, categories)
}

func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/api/products/")
	p, err := h.products.Get(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (h *Handlers) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var draft product.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.products.Create(r.Context(), principal(r), draft)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, p)
}

func (h *Handlers) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/api/products/")

	var draft product.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.products.Update(r.Context(), principal(r), id, draft)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (h *Handlers) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/api/products/")

	if err := h.products.Delete(r.Context(), principal(r), id); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Product deleted"})
}
