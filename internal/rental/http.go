package rental

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/wheelease/wheelease/internal/common/errs"
	httpx "github.com/wheelease/wheelease/internal/common/server"
)

// Handler 租约账本的 HTTP 接口。
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/rentals", h.List).Methods(http.MethodGet)
	r.HandleFunc("/rentals", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/rentals/customer/{id:[0-9]+}", h.ByCustomer).Methods(http.MethodGet)
	r.HandleFunc("/rentals/{id}", h.Get).Methods(http.MethodGet)
}

// rentalView 对外视图，带推导状态。
type rentalView struct {
	Rental
	Status State `json:"status"`
}

func (h *Handler) view(r Rental) rentalView {
	return rentalView{Rental: r, Status: h.svc.StateOf(&r)}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := httpx.ParsePage(r)
	items, total, err := h.svc.List(r.Context(), page, DefaultPageSize)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	views := make([]rentalView, 0, len(items))
	for _, it := range items {
		views = append(views, h.view(it))
	}
	httpx.WriteJSON(w, http.StatusOK, httpx.NewPageEnvelope(views, page, DefaultPageSize, total))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	rt, err := h.svc.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, h.view(*rt))
}

func (h *Handler) ByCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		httpx.WriteError(w, errs.Validationf("customer id must be numeric"))
		return
	}
	var views []rentalView
	for rt, err := range h.svc.ListByCustomer(id) {
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		views = append(views, h.view(rt))
	}
	if views == nil {
		views = []rentalView{}
	}
	httpx.WriteJSON(w, http.StatusOK, views)
}

type createRentalRequest struct {
	VehicleID   string `json:"vehicleId"`
	CustomerID  int    `json:"customerId"`
	DriverID    int    `json:"driverId"`
	InsuranceID int    `json:"insuranceId"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRentalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		httpx.WriteError(w, errs.Validationf("startDate must be YYYY-MM-DD"))
		return
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		httpx.WriteError(w, errs.Validationf("endDate must be YYYY-MM-DD"))
		return
	}

	rt, err := h.svc.Create(r.Context(), CreateInput{
		VehicleID:   req.VehicleID,
		CustomerID:  req.CustomerID,
		DriverID:    req.DriverID,
		InsuranceID: req.InsuranceID,
		StartDate:   start,
		EndDate:     end,
	})
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, h.view(*rt))
}
