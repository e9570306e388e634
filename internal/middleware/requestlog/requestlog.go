// Package requestlog logs one line per request and hands the request-scoped logger and id to
// the handlers through the request context.
package requestlog

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cacaneves/dev-sistema-codigo/internal/apiclient"
	"github.com/cacaneves/dev-sistema-codigo/internal/logging"
)

func Middleware(base *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			if rid == "" {
				rid = req.Header.Get(echo.HeaderXRequestID)
			}

			l := base.With(
				"method", req.Method,
				"path", c.Path(),
				"url", req.URL.Path,
				"remote_ip", c.RealIP(),
			)
			ctx := req.Context()
			if rid != "" {
				l = l.With("request_id", rid)
				ctx = apiclient.WithRequestID(ctx, rid)
			}
			c.SetRequest(req.WithContext(logging.IntoContext(ctx, l)))

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			status := c.Response().Status
			dur := time.Since(start).Milliseconds()

			switch {
			case status >= 500:
				l.Error("request completed", "status", status, "duration_ms", dur, "error", err)
			case status >= 400:
				l.Warn("request completed", "status", status, "duration_ms", dur)
			default:
				l.Info("request completed", "status", status, "duration_ms", dur, "bytes", c.Response().Size)
			}
			return nil
		}
	}
}
