package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/wheelease/wheelease/internal/common/errs"
)

// PageEnvelope 分页响应信封。
type PageEnvelope struct {
	Items      interface{} `json:"items"`
	Page       int         `json:"page"`
	TotalPages int         `json:"totalPages"`
}

// NewPageEnvelope 按 totalCount/pageSize 计算总页数（向上取整）。
func NewPageEnvelope(items interface{}, page, pageSize int, totalCount int64) PageEnvelope {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int((totalCount + int64(pageSize) - 1) / int64(pageSize))
	}
	return PageEnvelope{Items: items, Page: page, TotalPages: totalPages}
}

// ParsePage 解析 1-based 的 page 查询参数，缺省为 1。
func ParsePage(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error string `json:"error"`
}

// WriteError 把核心层的错误分类映射为 HTTP 状态码。
func WriteError(w http.ResponseWriter, err error) {
	WriteJSON(w, statusOf(err), errorBody{Error: err.Error()})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrTimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
