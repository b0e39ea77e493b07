package refdata

import (
	"net/http"
	"sort"

	"github.com/gorilla/mux"
	httpx "github.com/wheelease/wheelease/internal/common/server"
)

// Handler 参照数据的只读 JSON 端点。
type Handler struct {
	source Source
}

func NewHandler(source Source) *Handler {
	return &Handler{source: source}
}

func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/api/models", h.ListModels).Methods(http.MethodGet)
	r.HandleFunc("/api/categories", h.ListCategories).Methods(http.MethodGet)
	r.HandleFunc("/api/manufacturers", h.ListManufacturers).Methods(http.MethodGet)
}

func (h *Handler) ListModels(w http.ResponseWriter, r *http.Request) {
	t, err := h.source.Tables(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	names := make([]string, 0, len(t.Models))
	for _, m := range t.Models {
		names = append(names, m.Name)
	}
	sort.Strings(names)
	httpx.WriteJSON(w, http.StatusOK, names)
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	t, err := h.source.Tables(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, sortedValues(t.Categories))
}

func (h *Handler) ListManufacturers(w http.ResponseWriter, r *http.Request) {
	t, err := h.source.Tables(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, sortedValues(t.Manufacturers))
}

func sortedValues(m map[int]string) []string {
	out := make([]string, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
