package observability

import (
	"sync"
	"testing"
	"time"
)

func TestCollectorCounts(t *testing.T) {
	c := NewCollector()
	c.IncRequest("GET", "/api/leaderboard")
	c.IncRequest("GET", "/api/leaderboard")
	c.IncRequest("POST", "/api/goals")
	c.IncError("/api/goals", 500)
	c.IncError("/api/goals", 404)
	c.IncBusiness(MetricGoalsCreated)
	c.ObserveLatency("/api/goals", 120*time.Millisecond)
	c.ObserveLatency("/api/goals", 80*time.Millisecond)

	s := c.Snapshot()
	if s.TotalRequests != 3 {
		t.Fatalf("TotalRequests=%d, want 3", s.TotalRequests)
	}
	if s.TotalErrors != 2 {
		t.Fatalf("TotalErrors=%d, want 2", s.TotalErrors)
	}
	if s.ErrorsPerRoute["/api/goals:5xx"] != 1 || s.ErrorsPerRoute["/api/goals:4xx"] != 1 {
		t.Fatalf("errors per route=%v, want one 5xx and one 4xx for /api/goals", s.ErrorsPerRoute)
	}
	if s.RequestsPerRoute["GET:/api/leaderboard"] != 2 {
		t.Fatalf("per-route count=%d, want 2", s.RequestsPerRoute["GET:/api/leaderboard"])
	}
	if s.BusinessMetrics[MetricGoalsCreated] != 1 {
		t.Fatalf("business count=%d, want 1", s.BusinessMetrics[MetricGoalsCreated])
	}
	if len(s.SlowestRoutes) != 1 || s.SlowestRoutes[0].AvgMS != 100 {
		t.Fatalf("slowest routes=%+v, want one route at 100ms avg", s.SlowestRoutes)
	}
}

func TestCollectorConcurrentAccess(t *testing.T) {
	c := NewCollector()
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.IncRequest("GET", "/api/me")
				c.ObserveLatency("/api/me", time.Millisecond)
			}
		}()
	}
	wg.Wait()

	if got := c.Snapshot().TotalRequests; got != 1000 {
		t.Fatalf("TotalRequests=%d, want 1000", got)
	}
}
