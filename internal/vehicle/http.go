package vehicle

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	httpx "github.com/wheelease/wheelease/internal/common/server"
)

// Handler 车辆登记表的 HTTP 接口。
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/vehicles", h.List).Methods(http.MethodGet)
	r.HandleFunc("/vehicles", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/vehicles/{id}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/vehicles/{id}", h.Update).Methods(http.MethodPut)
	r.HandleFunc("/vehicles/{id}", h.Delete).Methods(http.MethodDelete)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := Filter{
		Category:     q.Get("category"),
		Manufacturer: q.Get("manufacturer"),
		Model:        q.Get("model"),
	}
	page := httpx.ParsePage(r)

	items, total, err := h.svc.List(r.Context(), f, page, DefaultPageSize)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, httpx.NewPageEnvelope(items, page, DefaultPageSize, total))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, d)
}

type createVehicleRequest struct {
	Registration   string `json:"registration"`
	TypeID         int    `json:"typeId"`
	CategoryID     int    `json:"categoryId"`
	ManufacturerID int    `json:"manufacturerId"`
	Model          string `json:"model"`
	Mileage        int    `json:"mileage"`
	BranchID       int    `json:"branchId"`
	DailyRateID    int    `json:"dailyRateId"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	id, err := h.svc.Create(r.Context(), CreateInput{
		Registration:   req.Registration,
		TypeID:         req.TypeID,
		CategoryID:     req.CategoryID,
		ManufacturerID: req.ManufacturerID,
		ModelName:      req.Model,
		Mileage:        req.Mileage,
		BranchID:       req.BranchID,
		DailyRateID:    req.DailyRateID,
	})
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, map[string]string{"id": id})
}

type updateVehicleRequest struct {
	Model       *string `json:"model"`
	Mileage     *int    `json:"mileage"`
	BranchID    *int    `json:"branchId"`
	DailyRateID *int    `json:"dailyRateId"`
	Status      *Status `json:"status"`
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	err := h.svc.Update(r.Context(), mux.Vars(r)["id"], UpdateFields{
		ModelName:   req.Model,
		Mileage:     req.Mileage,
		BranchID:    req.BranchID,
		DailyRateID: req.DailyRateID,
		OpStatus:    req.Status,
	})
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		httpx.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
