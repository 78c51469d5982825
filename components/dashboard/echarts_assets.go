package dashboard

import (
	"os"
	"strings"
)

// envEChartsCDN overrides the default assets host so rendered HTML loads the
// ECharts runtime from a CDN or self-hosted bucket.
const envEChartsCDN = "METRICS_BOARD_ECHARTS_CDN"

// DefaultEChartsAssetsHost returns the assets host for rendered charts,
// respecting METRICS_BOARD_ECHARTS_CDN when set. Empty means go-echarts'
// built-in default.
func DefaultEChartsAssetsHost() string {
	if host := strings.TrimSpace(os.Getenv(envEChartsCDN)); host != "" {
		return ensureTrailingSlash(host)
	}
	return ""
}

func ensureTrailingSlash(value string) string {
	if value == "" {
		return ""
	}
	if strings.HasSuffix(value, "/") {
		return value
	}
	return value + "/"
}
