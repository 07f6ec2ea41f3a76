package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/constellation/pkg/cache"
	cerrors "github.com/matzehuels/constellation/pkg/errors"
	"github.com/matzehuels/constellation/pkg/graph"
	"github.com/matzehuels/constellation/pkg/observability"
	"github.com/matzehuels/constellation/pkg/render"
)

func testGraph() graph.Graph {
	return graph.Graph{
		Topics: []graph.Topic{
			{Word: "ocean", Count: 5, DocumentIDs: []string{"e1"}},
			{Word: "sky", Count: 3},
			{Word: "moon", Count: 2},
			{Word: "tide", Count: 1},
		},
		Edges: []graph.Edge{
			{Source: "ocean", Target: "tide", Weight: 3},
			{Source: "sky", Target: "moon", Weight: 2},
			{Source: "ocean", Target: "sky", Weight: 1},
		},
		Entries: []graph.Entry{{ID: "e1", Title: "Tide pools", Mood: "calm"}},
	}
}

type stubProvider struct {
	g     graph.Graph
	err   error
	calls int
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) FetchTopics(_ context.Context, refresh bool) (graph.Graph, bool, error) {
	p.calls++
	if p.err != nil {
		return graph.Graph{}, false, p.err
	}
	return p.g, !refresh && p.calls > 1, nil
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) record(e string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

func (h *recordingHooks) OnFetchStart(context.Context, string) { h.record("fetch:start") }
func (h *recordingHooks) OnFetchComplete(context.Context, string, int, time.Duration, error) {
	h.record("fetch:done")
}
func (h *recordingHooks) OnLayoutStart(context.Context, int, int) { h.record("layout:start") }
func (h *recordingHooks) OnLayoutComplete(context.Context, int, int, time.Duration, error) {
	h.record("layout:done")
}
func (h *recordingHooks) OnRenderStart(context.Context, []string) { h.record("render:start") }
func (h *recordingHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {
	h.record("render:done")
}

func newTestRunner(t *testing.T, p *stubProvider) *Runner {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, nil)
	r.Source = p
	t.Cleanup(func() { r.Close() })
	return r
}

func TestGenerateLayout(t *testing.T) {
	g := testGraph()
	l, err := GenerateLayout(g, Options{})
	if err != nil {
		t.Fatal(err)
	}

	if l.Width != DefaultWidth || l.Height != DefaultHeight {
		t.Errorf("canvas = %gx%g", l.Width, l.Height)
	}
	if l.Iterations != 120 || l.Seeder != graph.SeederHash {
		t.Errorf("iterations=%d seeder=%q", l.Iterations, l.Seeder)
	}
	if len(l.Positions) != 4 {
		t.Fatalf("positions = %d, want 4", len(l.Positions))
	}
	for w, p := range l.Positions {
		if p.X < 56 || p.X > 744 || p.Y < 56 || p.Y > 424 {
			t.Errorf("%s at (%g, %g) outside the padded canvas", w, p.X, p.Y)
		}
	}
	if len(l.Topics) != 4 || len(l.Edges) != 3 || len(l.Entries) != 1 {
		t.Error("layout should carry the graph")
	}
}

func TestGenerateLayoutSeeders(t *testing.T) {
	g := testGraph()
	a, _ := GenerateLayout(g, Options{Seeder: graph.SeederSplitMix, Salt: 1})
	b, _ := GenerateLayout(g, Options{Seeder: graph.SeederSplitMix, Salt: 1})
	c, _ := GenerateLayout(g, Options{Seeder: graph.SeederSplitMix, Salt: 2})

	if a.Positions["ocean"] != b.Positions["ocean"] {
		t.Error("same salt should give the same layout")
	}
	if a.Positions["ocean"] == c.Positions["ocean"] {
		t.Error("different salt should give a different layout")
	}
}

func TestGenerateLayoutInvalid(t *testing.T) {
	if _, err := GenerateLayout(testGraph(), Options{Width: -5}); !cerrors.Is(err, cerrors.ErrCodeInvalidDimensions) {
		t.Errorf("err = %v, want invalid dimensions", err)
	}
}

func TestGraphHash(t *testing.T) {
	g := testGraph()
	shuffled := testGraph()
	shuffled.Topics[0], shuffled.Topics[3] = shuffled.Topics[3], shuffled.Topics[0]
	shuffled.Edges[0], shuffled.Edges[2] = shuffled.Edges[2], shuffled.Edges[0]

	if GraphHash(g) != GraphHash(shuffled) {
		t.Error("order should not change the hash")
	}

	changed := testGraph()
	changed.Edges[0].Weight = 4
	if GraphHash(g) == GraphHash(changed) {
		t.Error("weight change should change the hash")
	}
}

func TestRenderLayout(t *testing.T) {
	l, _ := GenerateLayout(testGraph(), Options{})
	artifacts, err := RenderLayout(context.Background(), l, Options{Formats: []string{"svg", "json", "dot"}})
	if err != nil {
		t.Fatal(err)
	}

	if !strings.HasPrefix(string(artifacts["svg"]), "<svg") {
		t.Error("svg artifact missing")
	}
	var decoded graph.Layout
	if err := json.Unmarshal(artifacts["json"], &decoded); err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if decoded.Style != graph.StyleNight || len(decoded.Positions) != 4 {
		t.Errorf("json layout = style %q, %d positions", decoded.Style, len(decoded.Positions))
	}
	if !strings.HasPrefix(string(artifacts["dot"]), "graph G {") {
		t.Error("dot artifact missing")
	}
}

func TestRenderLayoutUsesLayoutStyle(t *testing.T) {
	l, _ := GenerateLayout(testGraph(), Options{})
	l.Style = graph.StyleSimple
	artifacts, err := RenderLayout(context.Background(), l, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(artifacts["svg"]), `fill="#ffffff"`) {
		t.Error("layout style should apply when options leave it empty")
	}
}

func TestRenderLayoutConverted(t *testing.T) {
	if !render.HasConverter() {
		t.Skip("rsvg-convert not installed")
	}
	l, _ := GenerateLayout(testGraph(), Options{})
	artifacts, err := RenderLayout(context.Background(), l, Options{Formats: []string{"png", "pdf"}})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(artifacts["png"]), "\x89PNG") {
		t.Error("png artifact missing")
	}
	if !strings.HasPrefix(string(artifacts["pdf"]), "%PDF") {
		t.Error("pdf artifact missing")
	}
}

func TestRenderFromLayoutData(t *testing.T) {
	l, _ := GenerateLayout(testGraph(), Options{})
	data, _ := graph.MarshalLayout(l)
	if _, err := RenderFromLayoutData(context.Background(), data, Options{}); err != nil {
		t.Fatal(err)
	}
	if _, err := RenderFromLayoutData(context.Background(), []byte("{"), Options{}); err == nil {
		t.Error("expected error for malformed layout")
	}
}

func TestRunnerExecute(t *testing.T) {
	p := &stubProvider{g: testGraph()}
	r := newTestRunner(t, p)
	ctx := context.Background()
	opts := Options{Formats: []string{"svg", "json"}}

	res, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Stats.TopicCount != 4 || res.Stats.EdgeCount != 3 {
		t.Errorf("stats = %+v", res.Stats)
	}
	if res.GraphHash != GraphHash(testGraph()) {
		t.Error("graph hash mismatch")
	}
	if len(res.Artifacts) != 2 {
		t.Errorf("artifacts = %d, want 2", len(res.Artifacts))
	}
	if res.CacheInfo != (CacheInfo{}) {
		t.Errorf("first run cache info = %+v, want all misses", res.CacheInfo)
	}

	res2, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !res2.CacheInfo.FetchHit || !res2.CacheInfo.LayoutHit || !res2.CacheInfo.RenderHit {
		t.Errorf("second run cache info = %+v, want all hits", res2.CacheInfo)
	}
	if string(res2.Artifacts["svg"]) != string(res.Artifacts["svg"]) {
		t.Error("cached svg differs")
	}
}

func TestRunnerExecuteRefresh(t *testing.T) {
	r := newTestRunner(t, &stubProvider{g: testGraph()})
	ctx := context.Background()

	if _, err := r.Execute(ctx, Options{}); err != nil {
		t.Fatal(err)
	}
	res, err := r.Execute(ctx, Options{Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheInfo.FetchHit || res.CacheInfo.LayoutHit {
		t.Errorf("refresh should bypass fetch and layout caches, got %+v", res.CacheInfo)
	}
}

func TestRunnerExecuteErrors(t *testing.T) {
	ctx := context.Background()

	r := newTestRunner(t, &stubProvider{err: cerrors.New(cerrors.ErrCodeUnavailable, "down")})
	if _, err := r.Execute(ctx, Options{}); !cerrors.Is(err, cerrors.ErrCodeUnavailable) {
		t.Errorf("err = %v, want provider error", err)
	}

	r = newTestRunner(t, &stubProvider{g: testGraph()})
	if _, err := r.Execute(ctx, Options{Formats: []string{"gif"}}); !cerrors.Is(err, cerrors.ErrCodeInvalidFormat) {
		t.Errorf("err = %v, want invalid format", err)
	}

	r.Source = nil
	if _, _, err := r.Fetch(ctx, Options{}); !cerrors.Is(err, cerrors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want missing source", err)
	}
}

func TestRunnerHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	t.Cleanup(observability.Reset)

	r := newTestRunner(t, &stubProvider{g: testGraph()})
	if _, err := r.Execute(context.Background(), Options{}); err != nil {
		t.Fatal(err)
	}

	want := []string{"fetch:start", "fetch:done", "layout:start", "layout:done", "render:start", "render:done"}
	if strings.Join(hooks.events, ",") != strings.Join(want, ",") {
		t.Errorf("events = %v, want %v", hooks.events, want)
	}
}

func TestRunnerLayoutCacheCorrupt(t *testing.T) {
	r := newTestRunner(t, &stubProvider{g: testGraph()})
	ctx := context.Background()
	g := testGraph()
	opts := Options{}
	opts.SetLayoutDefaults()

	key := r.Keyer.LayoutKey(GraphHash(g), opts.LayoutKeyOpts())
	if err := r.Cache.Set(ctx, key, []byte("garbage"), time.Minute); err != nil {
		t.Fatal(err)
	}

	l, hit, err := r.GenerateLayoutWithCacheInfo(ctx, g, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if hit || len(l.Positions) != 4 {
		t.Errorf("hit=%v positions=%d, want recomputed layout", hit, len(l.Positions))
	}
}

func TestRunnerConcurrent(t *testing.T) {
	r := newTestRunner(t, &stubProvider{g: testGraph()})
	g := testGraph()

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.GenerateLayout(context.Background(), g, Options{Width: 800 + float64(i)})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Error(err)
		}
	}
}
