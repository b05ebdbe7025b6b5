// Response helpers for the three JSON shapes the site serves.
//
// The admin API and the router fallbacks use ErrorResponse, a
// {request_id, code, message} envelope with a code from errors.go. The
// public endpoints keep the shapes the page scripts read:
//
//	GET  /domains/load-more   LoadMoreResponse | LoadMoreError
//	POST /ajax/contact        ContactResponse
//
// Example admin error:
//
//	HTTP/1.1 409 Conflict
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "conflict",
//	  "message": "currency is in use"
//	}
//
// Example load-more error:
//
//	HTTP/1.1 400 Bad Request
//	{ "success": false, "error": "Invalid parameters" }
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-domain-finder/internal/http/middleware"
)

// ErrorResponse is the error envelope of the admin API.
type ErrorResponse struct {
	// Echo of X-Request-ID, or the ID generated for the request
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// See errors.go
	Code string `json:"code" example:"invalid_listing"`
	// Safe to show in the admin UI
	Message string `json:"message" example:"asking price must be positive"`
}

// requestID prefers the ID stored by middleware.RequestID and falls back to
// the response header for handlers mounted without it.
func requestID(c *gin.Context) string {
	if rid := middleware.GetRequestID(c); rid != "" {
		return rid
	}
	return c.Writer.Header().Get("X-Request-ID")
}

// fail aborts with an ErrorResponse. 5xx responses are logged with the
// request-scoped logger.
func fail(c *gin.Context, status int, code, msg string) {
	if status >= http.StatusInternalServerError {
		middleware.LoggerFrom(c).Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("admin api error")
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		RequestID: requestID(c),
		Code:      code,
		Message:   msg,
	})
}

// Fail is fail for the router's 404/405 and auth fallbacks.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// loadMoreFail aborts GET /domains/load-more with {success:false, error}.
func loadMoreFail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, LoadMoreError{Success: false, Error: msg})
}

// contactFail aborts POST /ajax/contact. Success is always false; resp
// carries either a message or per-field errors.
func contactFail(c *gin.Context, status int, resp ContactResponse) {
	resp.Success = false
	c.AbortWithStatusJSON(status, resp)
}

func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
