package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/dispatch/internal/pkg/logger"
)

// PanicRecoveryWithZapMiddleware turns handler panics into 500 responses and
// logs them with a stack trace
func PanicRecoveryWithZapMiddleware(zl *logger.ZapLogger) echo.MiddlewareFunc {
	if zl == nil {
		panic("PanicRecoveryWithZapMiddleware requires a logger")
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				handlePanic(c, r, zl)
				err = nil
			}()

			return next(c)
		}
	}
}

func handlePanic(c echo.Context, r interface{}, zl *logger.ZapLogger) {
	req := c.Request()
	requestID := c.Response().Header().Get(echo.HeaderXRequestID)
	if requestID == "" {
		requestID = req.Header.Get(echo.HeaderXRequestID)
	}
	userID := "anonymous"
	if v := c.Get(ContextKeyUserID); v != nil {
		userID = fmt.Sprintf("%v", v)
	}

	txn := newrelic.FromContext(req.Context())
	if txn != nil {
		txn.NoticeError(newrelic.Error{
			Message: fmt.Sprintf("Panic recovered: %v", r),
			Class:   "PanicError",
		})
	}

	zl.WithNewRelicContext(txn).Error("Panic recovered during request processing",
		logger.Any("panic_value", r),
		logger.String("panic_type", fmt.Sprintf("%T", r)),
		logger.String("stack_trace", string(debug.Stack())),
		logger.String("method", req.Method),
		logger.String("path", req.URL.Path),
		logger.String("client_ip", c.RealIP()),
		logger.String("user_id", userID),
		logger.String("request_id", requestID),
	)

	if !c.Response().Committed {
		_ = c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success":    false,
			"error":      "Internal Server Error",
			"request_id": requestID,
		})
	}
}
