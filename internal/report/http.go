package report

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/wheelease/wheelease/internal/common/errs"
	httpx "github.com/wheelease/wheelease/internal/common/server"
)

// Handler 报表目录与执行的 HTTP 接口。
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/reports", h.Catalogue).Methods(http.MethodGet)
	r.HandleFunc("/reports/{kind}", h.Run).Methods(http.MethodGet)
}

func (h *Handler) Catalogue(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, Catalogue())
}

func (h *Handler) Run(w http.ResponseWriter, r *http.Request) {
	kind, err := ParseKind(mux.Vars(r)["kind"])
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	var p Params
	q := r.URL.Query()
	if v := q.Get("date"); v != "" {
		p.Date, err = time.Parse("2006-01-02", v)
		if err != nil {
			httpx.WriteError(w, errs.Validationf("date must be YYYY-MM-DD"))
			return
		}
	}
	if v := q.Get("from"); v != "" {
		p.PeriodStart, err = time.Parse("2006-01-02", v)
		if err != nil {
			httpx.WriteError(w, errs.Validationf("from must be YYYY-MM-DD"))
			return
		}
	}
	if v := q.Get("to"); v != "" {
		p.PeriodEnd, err = time.Parse("2006-01-02", v)
		if err != nil {
			httpx.WriteError(w, errs.Validationf("to must be YYYY-MM-DD"))
			return
		}
	}

	res, err := h.svc.Run(r.Context(), kind, p)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}
