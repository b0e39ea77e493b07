package customer

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	httpx "github.com/wheelease/wheelease/internal/common/server"
)

// Handler 客户登记表的 HTTP 接口。
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/customers", h.List).Methods(http.MethodGet)
	r.HandleFunc("/customers", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/customers/{id:[0-9]+}", h.Get).Methods(http.MethodGet)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := httpx.ParsePage(r)
	items, total, err := h.svc.List(r.Context(), page, DefaultPageSize)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, httpx.NewPageEnvelope(items, page, DefaultPageSize, total))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, c)
}

type createCustomerRequest struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	AddressLine1  string `json:"addressLine1"`
	AddressLine2  string `json:"addressLine2"`
	City          string `json:"city"`
	Postcode      string `json:"postcode"`
	PhoneNumber   string `json:"phoneNumber"`
	Email         string `json:"email"`
	LicenseNumber string `json:"licenseNumber"`
	DateOfBirth   string `json:"dateOfBirth"` // YYYY-MM-DD
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	var dob time.Time
	if req.DateOfBirth != "" {
		parsed, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			http.Error(w, "invalid dateOfBirth", http.StatusBadRequest)
			return
		}
		dob = parsed
	}

	id, err := h.svc.Create(r.Context(), CreateInput{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		AddressLine1:  req.AddressLine1,
		AddressLine2:  req.AddressLine2,
		City:          req.City,
		Postcode:      req.Postcode,
		PhoneNumber:   req.PhoneNumber,
		Email:         req.Email,
		LicenseNumber: req.LicenseNumber,
		DateOfBirth:   dob,
	})
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, map[string]int{"id": id})
}
