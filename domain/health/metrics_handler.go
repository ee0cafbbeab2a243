package health

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics serves the Prometheus scrape endpoint. The result cache registers
// its hit/miss counters with the default registry.
func Metrics() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}
