package api

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Domenick1991/airport-service/internal/domain"
	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// pathID reads a positive integer path parameter. Malformed ids are reported
// as not found.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		writeError(c, domain.ErrNotFound)
		return 0, false
	}
	return id, true
}

func queryDate(c *gin.Context, verr *domain.ValidationError, name string) *time.Time {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		verr.Add(name, "date has wrong format. Use YYYY-MM-DD")
		return nil
	}
	return &t
}

func queryInt(c *gin.Context, verr *domain.ValidationError, name string) int64 {
	raw := c.Query(name)
	if raw == "" {
		return 0
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 1 {
		verr.Add(name, fmt.Sprintf("%q is not a valid positive integer", raw))
		return 0
	}
	return n
}
