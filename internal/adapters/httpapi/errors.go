package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"eventpulse/internal/domain"
)

var statusByCode = map[string]int{
	"event_not_found":         http.StatusNotFound,
	"participant_not_found":   http.StatusNotFound,
	"duplicate_participation": http.StatusConflict,
	"capacity_exceeded":       http.StatusConflict,
	"event_closed":            http.StatusConflict,
	"not_organizer":           http.StatusForbidden,
	"invalid_event":           http.StatusBadRequest,
	"datetime_in_past":        http.StatusBadRequest,
	"invalid_ledger_entry":    http.StatusBadRequest,
	"clock_unavailable":       http.StatusServiceUnavailable,
}

const (
	codeBadRequest   = "bad_request"
	codeUnauthorized = "unauthorized"
	codeInternal     = "internal"
)

func (h *Handler) fail(c *gin.Context, err error) {
	code := domain.Code(err)
	key := "error." + code
	status, known := statusByCode[code]
	if !known {
		status = http.StatusInternalServerError
		key = "error.generic"
		if code == "" {
			code = codeInternal
		}
	}
	if status >= http.StatusInternalServerError {
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	}
	c.AbortWithStatusJSON(status, Response{
		Status: "error",
		Error:  &Error{Code: code, Desc: h.translator.T(locale(c), key, nil)},
	})
}

func badRequest(c *gin.Context, desc string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, Response{
		Status: "error",
		Error:  &Error{Code: codeBadRequest, Desc: desc},
	})
}

func ok(c *gin.Context, status int, data any) {
	c.JSON(status, Response{Status: "ok", Data: data})
}
