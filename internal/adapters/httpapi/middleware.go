package httpapi

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"
)

const (
	headerUserID = "X-User-ID"
	ctxUserID    = "user_id"
	ctxLocale    = "locale"
)

func requestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("http request")
	}
}

// negotiateLocale stores the preferred Accept-Language tag; empty means the
// translator default.
func negotiateLocale() gin.HandlerFunc {
	return func(c *gin.Context) {
		tags, _, err := language.ParseAcceptLanguage(c.GetHeader("Accept-Language"))
		if err == nil && len(tags) > 0 {
			c.Set(ctxLocale, tags[0].String())
		}
		c.Next()
	}
}

// requireUser reads the caller identity set by the upstream auth proxy.
func requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(headerUserID))
		if id == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, Response{
				Status: "error",
				Error:  &Error{Code: codeUnauthorized, Desc: headerUserID + " header is required"},
			})
			return
		}
		c.Set(ctxUserID, id)
		c.Next()
	}
}

// requireToken guards the cleanup trigger with a shared bearer secret. An
// empty token disables the endpoint.
func requireToken(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if token == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, Response{
				Status: "error",
				Error:  &Error{Code: codeUnauthorized, Desc: "invalid cleanup token"},
			})
			return
		}
		c.Next()
	}
}

func userID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

func locale(c *gin.Context) string {
	return c.GetString(ctxLocale)
}
