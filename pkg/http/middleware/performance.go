package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

// PerformanceRecorder accepts per-request timing records.
type PerformanceRecorder interface {
	Append(path string, seconds float64)
}

// Performance measures request processing time, sets the X-Process-Time
// header, and records the elapsed time for tracked paths.
func Performance(rec PerformanceRecorder, trackedPaths ...string) echo.MiddlewareFunc {
	tracked := make(map[string]struct{}, len(trackedPaths))
	for _, p := range trackedPaths {
		tracked[p] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			// Header must be set before the body is written.
			c.Response().Before(func() {
				v := strconv.FormatFloat(time.Since(start).Seconds(), 'f', -1, 64)
				c.Response().Header().Set("X-Process-Time", v)
			})

			err := next(c)

			elapsed := time.Since(start).Seconds()
			path := c.Request().URL.Path
			if _, ok := tracked[path]; ok && rec != nil {
				rec.Append(path, elapsed)
			}

			return err
		}
	}
}
