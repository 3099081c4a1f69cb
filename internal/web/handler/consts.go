package handler

const (
	// RootPath is the root path the route group.
	RootPath = "/"

	// APIPrefix is the path prefix of the authenticated JSON API.
	APIPrefix = RootPath + "api/v1"

	// CheckAlivePath answers load balancer health checks.
	CheckAlivePath = RootPath + "checkalive"

	// MetricsPath exposes the prometheus metrics.
	MetricsPath = RootPath + "metrics"
)
