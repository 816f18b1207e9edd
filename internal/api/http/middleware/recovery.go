package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/escolas-server/internal/api/http/handler"
	"github.com/dtroode/escolas-server/internal/logger"
)

// Recovery turns a panic in a later handler into a 500 response.
type Recovery struct {
	logger      *logger.Logger
	development bool
}

// NewRecovery creates a Recovery middleware. In development the response
// carries the panic value and stack.
func NewRecovery(logger *logger.Logger, development bool) *Recovery {
	return &Recovery{logger: logger, development: development}
}

func (r *Recovery) Handle(c *gin.Context) {
	defer func() {
		rec := recover()
		if rec == nil {
			return
		}
		// http.ErrAbortHandler asks net/http to drop the connection silently.
		if rec == http.ErrAbortHandler {
			panic(rec)
		}

		err, ok := rec.(error)
		if !ok {
			err = fmt.Errorf("%v", rec)
		}
		stack := debug.Stack()

		r.logger.Error("Unhandled panic",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"request_id", GetRequestID(c),
			"error", err.Error(),
			"stack", string(stack))

		if c.Writer.Written() {
			c.Abort()
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, handler.InternalServerError(err, r.development, stack))
	}()

	c.Next()
}
