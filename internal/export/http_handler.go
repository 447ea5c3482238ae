package export

import (
	"log"
	"net/http"

	"github.com/stackmart/catalog/internal/catalog"
)

// Handler exposes the admin export endpoint. Route-level middleware already
// guarantees the admin role.
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

	filter := catalog.ParseAdminFilter(r.URL.Query())
	if err := filter.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	format := Format(r.URL.Query().Get("format"))
	switch format {
	case FormatXLSX:
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="products.xlsx"`)
	case FormatCSV, "":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="products.csv"`)
	default:
		http.Error(w, "unsupported format", http.StatusBadRequest)
		return
	}

	if err := h.service.Stream(r.Context(), filter, format, w); err != nil {
		// Headers may already be gone; log and abort the stream.
		log.Printf("[EXPORT] stream failed: %v", err)
	}
}
