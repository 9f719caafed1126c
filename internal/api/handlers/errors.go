package handlers

import (
	"net/http"
	"strconv"

	"assettrack/internal/errs"

	"github.com/gin-gonic/gin"
)

// respondError writes err using the status of its kind. Server-side failures
// are attached to the context so the request logger records the cause.
func respondError(c *gin.Context, err error) {
	status := errs.HTTPStatus(err)
	body := gin.H{"error": errs.PublicMessage(err)}
	if kind, ok := errs.KindOf(err); ok {
		body["kind"] = kind.String()
	}
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, body)
}

func badRequest(c *gin.Context, message string, err error) {
	body := gin.H{"error": message}
	if err != nil {
		body["details"] = err.Error()
	}
	c.JSON(http.StatusBadRequest, body)
}

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// queryLimit reads ?limit=, falling back to def when absent.
func queryLimit(c *gin.Context, def int) (int, error) {
	raw := c.Query("limit")
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
