package catalog

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stackmart/catalog/internal/auth"
	"github.com/stackmart/catalog/internal/domain"
	"github.com/stackmart/catalog/internal/categoryloader"
)

// Handler serves the storefront and admin listing endpoints.
type Handler struct {
	service *Service
}

func NewHTTPHandler(service *Service) http.Handler {
	return &Handler{service: service}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	path := strings.TrimSuffix(r.URL.Path, "/")
	switch {
	case path == "/admin/products":
		if auth.RoleFromContext(r.Context()) != domain.RoleAdmin {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		h.handleList(w, r, ParseAdminFilter(r.URL.Query()))
	case path == "/products":
		h.handleList(w, r, ParseCustomerFilter(r.URL.Query()))
	case strings.HasPrefix(path, "/products/"):
		h.handleDetail(w, r, strings.TrimPrefix(path, "/products/"))
	default:
		http.Error(w, "not found", http.StatusNotFound)
	}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request, filter domain.FilterSpec) {
	if err := filter.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	query := r.URL.Query()

	req := ListRequest{
		Filter: filter,
		Cursor: query.Get("cursor"),
	}
	if raw := query.Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil {
			req.Limit = limit
		}
	}
	// Explicit categoryId always wins over a category embedded in the filter.
	if raw := query.Get("categoryId"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			req.CategoryID = &id
		}
	}

	result, err := h.service.ListProducts(r.Context(), req)
	if err != nil {
		log.Printf("[CATALOG] list failed: %v", err)
		http.Error(w, "catalog query failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, listResponse{
		Products:   productsJSON(result.Products),
		Total:      result.Total,
		NextCursor: result.NextCursor,
	})
}

func (h *Handler) handleDetail(w http.ResponseWriter, r *http.Request, rawID string) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	product, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		log.Printf("[CATALOG] detail failed: %v", err)
		http.Error(w, "catalog query failed", http.StatusInternalServerError)
		return
	}

	if loader := categoryloader.FromContext(r.Context()); loader != nil {
		refs, err := loader.Load(r.Context(), product.ID)
		if err != nil {
			log.Printf("[CATALOG] category hydration failed: %v", err)
			http.Error(w, "catalog query failed", http.StatusInternalServerError)
			return
		}
		product.Categories = refs
	}

	writeJSON(w, http.StatusOK, productJSON(product))
}

// ParseCustomerFilter reads the storefront filter vocabulary from query
// parameters. `category` is the filter-embedded category; the explicit
// `categoryId` override is handled by the caller.
func ParseCustomerFilter(query url.Values) domain.CustomerFilter {
	filter := domain.CustomerFilter{
		Sort: domain.CustomerSort(query.Get("sort")),
	}
	if v, ok := parseFloat(query.Get("minPrice")); ok {
		filter.MinPrice = &v
	}
	if v, ok := parseFloat(query.Get("maxPrice")); ok {
		filter.MaxPrice = &v
	}
	if query.Get("inStock") == "true" {
		filter.InStockOnly = true
	}
	if raw := query.Get("category"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			filter.CategoryID = &id
		}
	}
	return filter
}

// ParseAdminFilter reads the admin grid filter vocabulary.
func ParseAdminFilter(query url.Values) domain.AdminFilter {
	filter := domain.AdminFilter{
		Search:  query.Get("search"),
		SortBy:  domain.AdminSortField(query.Get("sortBy")),
		SortDir: domain.SortDirection(query.Get("sortOrder")),
	}
	if v, ok := parseFloat(query.Get("minPrice")); ok {
		filter.MinPrice = &v
	}
	if v, ok := parseFloat(query.Get("maxPrice")); ok {
		filter.MaxPrice = &v
	}
	if v, ok := parseInt(query.Get("minStock")); ok {
		filter.MinStock = &v
	}
	if v, ok := parseInt(query.Get("maxStock")); ok {
		filter.MaxStock = &v
	}
	if v, ok := parseBool(query.Get("isActive")); ok {
		filter.IsActive = &v
	}
	if v, ok := parseBool(query.Get("hasVariants")); ok {
		filter.HasVariants = &v
	}
	return filter
}

func parseFloat(raw string) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	return v, err == nil
}

func parseInt(raw string) (int, bool) {
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	return v, err == nil
}

func parseBool(raw string) (bool, bool) {
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	return v, err == nil
}

type listResponse struct {
	Products   []productResponse `json:"products"`
	Total      int               `json:"total"`
	NextCursor *string           `json:"nextCursor"`
}

type productResponse struct {
	ID          uuid.UUID            `json:"id"`
	Name        string               `json:"name"`
	Price       *float64             `json:"price"`
	Stock       *int                 `json:"stock"`
	IsActive    bool                 `json:"isActive"`
	IsFeatured  bool                 `json:"isFeatured"`
	HasVariants bool                 `json:"hasVariants"`
	CreatedAt   string               `json:"createdAt"`
	Categories  []domain.CategoryRef `json:"categories"`
}

func productJSON(p domain.Product) productResponse {
	categories := p.Categories
	if categories == nil {
		categories = []domain.CategoryRef{}
	}
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Stock:       p.Stock,
		IsActive:    p.IsActive,
		IsFeatured:  p.IsFeatured,
		HasVariants: p.HasVariants,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339Nano),
		Categories:  categories,
	}
}

func productsJSON(products []domain.Product) []productResponse {
	out := make([]productResponse, len(products))
	for i, p := range products {
		out[i] = productJSON(p)
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[CATALOG] write response: %v", err)
	}
}
