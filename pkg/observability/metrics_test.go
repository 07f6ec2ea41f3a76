package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsRecordsEvents(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	ctx := context.Background()

	m.OnLayoutStart(ctx, 12, 20)
	m.OnLayoutComplete(ctx, 12, 120, 3*time.Millisecond, nil)
	m.OnLayoutComplete(ctx, 12, 120, 3*time.Millisecond, errors.New("boom"))
	m.OnFetchComplete(ctx, "u", 12, time.Millisecond, nil)
	m.OnRenderComplete(ctx, []string{"svg"}, time.Millisecond, nil)

	m.OnCacheHit(ctx, "layout")
	m.OnCacheMiss(ctx, "layout")
	m.OnCacheMiss(ctx, "layout")
	m.OnCacheSet(ctx, "artifact", 2048)

	m.OnResponse(ctx, "GET", "api", "/p", 200, time.Millisecond)
	m.OnResponse(ctx, "GET", "api", "/p", 503, time.Millisecond)
	m.OnError(ctx, "GET", "api", "/p", errors.New("reset"))

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"layout ok", testutil.ToFloat64(m.stageTotal.WithLabelValues("layout", "ok")), 1},
		{"layout error", testutil.ToFloat64(m.stageTotal.WithLabelValues("layout", "error")), 1},
		{"fetch ok", testutil.ToFloat64(m.stageTotal.WithLabelValues("fetch", "ok")), 1},
		{"render ok", testutil.ToFloat64(m.stageTotal.WithLabelValues("render", "ok")), 1},
		{"cache hit", testutil.ToFloat64(m.cacheEvents.WithLabelValues("layout", "hit")), 1},
		{"cache miss", testutil.ToFloat64(m.cacheEvents.WithLabelValues("layout", "miss")), 2},
		{"cache bytes", testutil.ToFloat64(m.cacheBytes.WithLabelValues("artifact")), 2048},
		{"http 2xx", testutil.ToFloat64(m.httpRequests.WithLabelValues("api", "2xx")), 1},
		{"http 5xx", testutil.ToFloat64(m.httpRequests.WithLabelValues("api", "5xx")), 1},
		{"http error", testutil.ToFloat64(m.httpRequests.WithLabelValues("api", "error")), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}

	if n := testutil.CollectAndCount(m.layoutNodes); n != 1 {
		t.Errorf("layout node histogram series = %d, want 1", n)
	}
}

func TestNewMetricsDuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewMetrics(reg)

	defer func() {
		if recover() == nil {
			t.Error("second NewMetrics on the same registry should panic")
		}
	}()
	NewMetrics(reg)
}
