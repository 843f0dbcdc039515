package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lms-admin-api/internal/service"
	appErrors "github.com/noah-isme/lms-admin-api/pkg/errors"
	"github.com/noah-isme/lms-admin-api/pkg/response"
)

var errInvalidPayload = appErrors.New(appErrors.ErrValidation.Code, http.StatusBadRequest, "Invalid JSON payload.")

// pathID parses the :id parameter. Anything that is not a positive integer
// cannot name a row, so it is reported as not found.
func pathID(c *gin.Context, entity string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		abortNotFound(c, entity)
		return 0, false
	}
	return id, true
}

func abortNotFound(c *gin.Context, entity string) {
	response.Error(c, appErrors.Clone(appErrors.ErrNotFound, entity+" not found"))
}

// queryInt parses an integer query parameter; missing or malformed values
// yield 0 so the service applies its defaults.
func queryInt(c *gin.Context, key string) int {
	v, err := strconv.Atoi(strings.TrimSpace(c.Query(key)))
	if err != nil {
		return 0
	}
	return v
}

func queryID(c *gin.Context, key string) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(c.Query(key)), 10, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func listQuery(c *gin.Context) service.ListQuery {
	return service.ListQuery{
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
		Search: c.Query("search"),
		Status: c.Query("status"),
	}
}

// bindJSON decodes the request body, answering 400 on malformed input.
func bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		response.Error(c, appErrors.Wrap(err, errInvalidPayload.Code, errInvalidPayload.Status, errInvalidPayload.Message))
		return false
	}
	return true
}
