package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// BodyLimit caps the number of bytes read from a request body.
type BodyLimit struct {
	limit int64
}

// NewBodyLimit creates a BodyLimit. A non-positive limit disables it.
func NewBodyLimit(limit int64) *BodyLimit {
	return &BodyLimit{limit: limit}
}

// Handle wraps the request body in http.MaxBytesReader. Reads past the
// limit fail with *http.MaxBytesError, which handlers turn into 413.
func (b *BodyLimit) Handle(c *gin.Context) {
	if b.limit > 0 && c.Request.Body != nil {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, b.limit)
	}
	c.Next()
}
