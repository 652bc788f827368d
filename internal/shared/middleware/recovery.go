package middleware

import (
	"errors"
	"net"
	"net/http"
	"runtime/debug"
	"syscall"

	"github.com/gin-gonic/gin"

	apperrors "github.com/objgate/server/internal/shared/errors"
	"github.com/objgate/server/internal/shared/logger"
	"github.com/objgate/server/internal/shared/response"
)

// Recovery turns a handler panic into a 500 response.
// If log is nil, a default logger is used. http.ErrAbortHandler is re-raised
// so net/http can drop the connection, and writes to a disconnected client
// are logged without a response.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	if log == nil {
		log = logger.New(nil)
	}

	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			reqLog := log
			if l, ok := logger.Lookup(c.Request.Context()); ok {
				reqLog = l
			}

			if err, ok := rec.(error); ok && clientGone(err) {
				reqLog.Warn("Client disconnected",
					"error", err,
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
				)
				c.Abort()
				return
			}

			reqLog.Error("Panic recovered",
				"error", rec,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"request_id", GetRequestID(c),
				"stack", string(debug.Stack()),
			)
			response.Error(c, http.StatusInternalServerError, apperrors.CodeInternal, "internal server error")
		}()
		c.Next()
	}
}

// clientGone reports whether err comes from writing to a closed connection.
func clientGone(err error) bool {
	var opErr *net.OpError
	if !errors.As(err, &opErr) {
		return false
	}
	return errors.Is(opErr, syscall.EPIPE) || errors.Is(opErr, syscall.ECONNRESET)
}
