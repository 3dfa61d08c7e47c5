package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/garyjia/biztime/internal/errs"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error *errs.Error `json:"error"`
}

// ErrorHandler turns the last error a handler attached with c.Error into the
// response. Domain errors keep their message and status, anything else is
// logged and answered with a generic 500.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		if _, ok := errs.As(err); !ok {
			logger.Error("Request failed",
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
		}
		abortWithError(c, err)
	}
}

// abortWithError writes the error envelope; a nil or unclassified err
// becomes errs.Internal
func abortWithError(c *gin.Context, err error) {
	appErr, ok := errs.As(err)
	if !ok {
		appErr = errs.Internal()
	}
	c.AbortWithStatusJSON(appErr.Status, ErrorResponse{Error: appErr})
}

func errNoRoute(c *gin.Context) *errs.Error {
	return errs.New(fmt.Sprintf("%s %s not found", c.Request.Method, c.Request.URL.Path), http.StatusNotFound)
}
