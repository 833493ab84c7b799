package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"perkline/internal/errors"

	"github.com/labstack/echo/v4"
)

// PanicRecovery converts a panicking handler into a 500 with the standard
// error envelope. A scan or resolve that blows up must never take the
// process down with it, and the client still gets a trace ID to report.
func PanicRecovery() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				if r := recover(); r != nil {
					writePanicResponse(c, r)
				}
			}()
			return next(c)
		}
	}
}

func writePanicResponse(c echo.Context, recovered any) {
	traceID := GetTraceID(c)
	if traceID == "" {
		traceID = "unknown"
	}

	slog.Error("handler panicked",
		"trace_id", traceID,
		"recovered", recovered,
		"method", c.Request().Method,
		"path", c.Request().URL.Path,
		"stack", string(debug.Stack()),
	)

	response := errors.NewErrorResponse(errors.SystemInternalError, traceID)
	if err := c.JSON(http.StatusInternalServerError, response); err != nil {
		slog.Error("failed to write panic response", "trace_id", traceID, "error", err)
	}
}
