package observability

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// Business metric names tracked by the collector.
const (
	MetricUsersRegistered  = "users_registered"
	MetricGoalsCreated     = "goals_created"
	MetricQuizzesGenerated = "quizzes_generated"
	MetricQuizzesCompleted = "quizzes_completed"
)

type latencyAgg struct {
	count   int64
	totalMS int64
}

// Collector is a per-process metrics collector injected into the components
// that record into it. No package-level state.
type Collector struct {
	mu        sync.Mutex
	start     time.Time
	requests  map[string]int64
	errors    map[string]int64
	latency   map[string]*latencyAgg
	business  map[string]int64
	totalReqs int64
	totalErrs int64
}

func NewCollector() *Collector {
	return &Collector{
		start:    time.Now(),
		requests: make(map[string]int64),
		errors:   make(map[string]int64),
		latency:  make(map[string]*latencyAgg),
		business: make(map[string]int64),
	}
}

func (c *Collector) IncRequest(method, route string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests[method+":"+route]++
	c.totalReqs++
}

// IncError counts an error response, keyed by route and status class
// ("4xx" or "5xx") so client faults and server faults read separately.
func (c *Collector) IncError(route string, status int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errors[fmt.Sprintf("%s:%dxx", route, status/100)]++
	c.totalErrs++
}

func (c *Collector) ObserveLatency(route string, d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	agg := c.latency[route]
	if agg == nil {
		agg = &latencyAgg{}
		c.latency[route] = agg
	}
	agg.count++
	agg.totalMS += d.Milliseconds()
}

func (c *Collector) IncBusiness(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.business[name]++
}

type RouteLatency struct {
	Route string  `json:"route"`
	AvgMS float64 `json:"avg_ms"`
}

type Snapshot struct {
	UptimeSeconds    int64            `json:"uptime_seconds"`
	TotalRequests    int64            `json:"total_requests"`
	TotalErrors      int64            `json:"total_errors"`
	ErrorRatePercent float64          `json:"error_rate_percent"`
	RequestsPerRoute map[string]int64 `json:"requests_per_route"`
	ErrorsPerRoute   map[string]int64 `json:"errors_per_route"`
	SlowestRoutes    []RouteLatency   `json:"slowest_routes"`
	BusinessMetrics  map[string]int64 `json:"business_metrics"`
}

func (c *Collector) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	perRoute := make(map[string]int64, len(c.requests))
	for k, v := range c.requests {
		perRoute[k] = v
	}

	errsPerRoute := make(map[string]int64, len(c.errors))
	for k, v := range c.errors {
		errsPerRoute[k] = v
	}

	slowest := make([]RouteLatency, 0, len(c.latency))
	for route, agg := range c.latency {
		if agg.count == 0 {
			continue
		}
		slowest = append(slowest, RouteLatency{
			Route: route,
			AvgMS: float64(agg.totalMS) / float64(agg.count),
		})
	}
	sort.Slice(slowest, func(i, j int) bool { return slowest[i].AvgMS > slowest[j].AvgMS })
	if len(slowest) > 5 {
		slowest = slowest[:5]
	}

	business := make(map[string]int64, len(c.business))
	for k, v := range c.business {
		business[k] = v
	}

	errRate := 0.0
	if c.totalReqs > 0 {
		errRate = float64(c.totalErrs) / float64(c.totalReqs) * 100
	}

	return Snapshot{
		UptimeSeconds:    int64(time.Since(c.start).Seconds()),
		TotalRequests:    c.totalReqs,
		TotalErrors:      c.totalErrs,
		ErrorRatePercent: errRate,
		RequestsPerRoute: perRoute,
		ErrorsPerRoute:   errsPerRoute,
		SlowestRoutes:    slowest,
		BusinessMetrics:  business,
	}
}
