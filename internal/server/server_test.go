package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/vijay-prabhu/emotion-reflect/internal/analyzer"
	"github.com/vijay-prabhu/emotion-reflect/internal/stats"
	"github.com/vijay-prabhu/emotion-reflect/internal/validation"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type stubClassifier struct {
	pred analyzer.Prediction
	err  error
}

func (s stubClassifier) Classify(context.Context, string) (analyzer.Prediction, error) {
	return s.pred, s.err
}

// failingService returns a canned error from Analyze
type failingService struct {
	err error
}

func (f failingService) Analyze(context.Context, string, analyzer.Options) (*analyzer.Result, error) {
	return nil, f.err
}
func (failingService) Stats() stats.Snapshot          { return stats.Snapshot{} }
func (failingService) SupportedCategories() []string { return nil }

func newTestServer(t *testing.T, c analyzer.Classifier) (*httptest.Server, *stats.Aggregator) {
	t.Helper()
	agg := stats.New()
	a := analyzer.New(analyzer.DefaultConfig(), analyzer.Deps{
		Stats:      agg,
		Classifier: c,
		Rand:       analyzer.NewRand(1),
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	srv := httptest.NewServer(newHandler(a))
	t.Cleanup(srv.Close)
	return srv, agg
}

func newHandler(svc Service) http.Handler {
	return New(svc, Options{
		Version:        "1.0.0",
		Environment:    "test",
		AllowedOrigins: []string{"http://localhost:3000"},
		Rules:          validation.DefaultRules(),
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		Clock:          func() time.Time { return fixedNow },
	}).Handler()
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return v
}

func TestRoot(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	got := decode[RootResponse](t, resp)
	want := RootResponse{Message: "Emotion Reflection Tool API", Version: "1.0.0", Status: "running"}
	if got != want {
		t.Errorf("root = %+v, want %+v", got, want)
	}
}

func TestAnalyze(t *testing.T) {
	srv, agg := newTestServer(t, nil)

	resp := postJSON(t, srv.URL+APIPrefix+"/analyze", `{"text":"I am extremely happy and grateful today"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if resp.Header.Get(RequestIDHeader) == "" {
		t.Error("missing request id header")
	}

	got := decode[analyzer.Result](t, resp)
	if got.Emotion != "Happy" || got.Intensity != analyzer.IntensityHigh {
		t.Errorf("result = %+v", got)
	}
	if len(got.Suggestions) == 0 {
		t.Error("suggestions default to on")
	}
	if agg.Snapshot().TotalAnalyses != 1 {
		t.Error("analysis not recorded")
	}
}

func TestAnalyze_SuggestionsOff(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	resp := postJSON(t, srv.URL+APIPrefix+"/analyze", `{"text":"so sad","include_suggestions":false}`)
	got := decode[analyzer.Result](t, resp)
	if len(got.Suggestions) != 0 {
		t.Errorf("Suggestions = %v, want none", got.Suggestions)
	}
}

func TestAnalyze_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"malformed json", `{"text":`, "invalid request body"},
		{"empty text", `{"text":"   "}`, "empty"},
		{"missing text", `{}`, "empty"},
		{"too long", `{"text":"` + strings.Repeat("a", 1001) + `"}`, "1000"},
		{"crisis", `{"text":"I want to hurt myself"}`, validation.CrisisMessage},
	}

	srv, agg := newTestServer(t, nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, srv.URL+APIPrefix+"/analyze", tt.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
			got := decode[ErrorResponse](t, resp)
			if got.Error != "validation_error" {
				t.Errorf("error = %q", got.Error)
			}
			if !strings.Contains(got.Message, tt.wantMsg) {
				t.Errorf("message = %q, want containing %q", got.Message, tt.wantMsg)
			}
			if got.Path != APIPrefix+"/analyze" || got.RequestID == "" || got.Timestamp == "" {
				t.Errorf("error body = %+v", got)
			}
		})
	}

	if agg.Snapshot().TotalAnalyses != 0 {
		t.Error("rejected requests must not be recorded")
	}
}

func TestAnalyze_RealModel(t *testing.T) {
	srv, _ := newTestServer(t, stubClassifier{pred: analyzer.Prediction{Label: "joy", Score: 0.9}})

	resp := postJSON(t, srv.URL+APIPrefix+"/analyze", `{"text":"great news","use_real_model":true}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	got := decode[analyzer.Result](t, resp)
	if got.Emotion != "joy" || got.Confidence != 0.9 {
		t.Errorf("result = %+v", got)
	}
}

func TestAnalyze_InferenceFailure(t *testing.T) {
	srv, agg := newTestServer(t, stubClassifier{err: errors.New("connection refused")})

	resp := postJSON(t, srv.URL+APIPrefix+"/analyze", `{"text":"great news","use_real_model":true}`)
	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", resp.StatusCode)
	}
	got := decode[ErrorResponse](t, resp)
	if got.Error != "inference_error" {
		t.Errorf("error = %q", got.Error)
	}
	if agg.Snapshot().TotalAnalyses != 0 {
		t.Error("failed inference must not be recorded")
	}
}

func TestAnalyze_InternalFailure(t *testing.T) {
	srv := httptest.NewServer(newHandler(failingService{err: analyzer.ErrInternal}))
	defer srv.Close()

	resp := postJSON(t, srv.URL+APIPrefix+"/analyze", `{"text":"hello"}`)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", resp.StatusCode)
	}
	got := decode[ErrorResponse](t, resp)
	if got.Error != "internal_error" {
		t.Errorf("error = %q", got.Error)
	}
}

func TestStats(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	resp, err := http.Get(srv.URL + APIPrefix + "/stats")
	if err != nil {
		t.Fatal(err)
	}
	got := decode[stats.Snapshot](t, resp)
	if got.TotalAnalyses != 0 || got.MostCommonEmotion != "None" {
		t.Errorf("fresh stats = %+v", got)
	}

	postJSON(t, srv.URL+APIPrefix+"/analyze", `{"text":"so angry"}`).Body.Close()

	resp, err = http.Get(srv.URL + APIPrefix + "/stats")
	if err != nil {
		t.Fatal(err)
	}
	got = decode[stats.Snapshot](t, resp)
	if got.TotalAnalyses != 1 || got.MostCommonEmotion != "Angry" {
		t.Errorf("stats = %+v", got)
	}
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	resp, err := http.Get(srv.URL + APIPrefix + "/health")
	if err != nil {
		t.Fatal(err)
	}
	got := decode[HealthResponse](t, resp)
	want := HealthResponse{
		Status:      "healthy",
		Message:     "Emotion analysis service is running normally",
		Timestamp:   "2025-06-01T12:00:00Z",
		Version:     "1.0.0",
		Uptime:      "0:00:00",
		Environment: "test",
	}
	if got != want {
		t.Errorf("health = %+v, want %+v", got, want)
	}
}

func TestEmotions(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	resp, err := http.Get(srv.URL + APIPrefix + "/emotions")
	if err != nil {
		t.Fatal(err)
	}
	got := decode[[]string](t, resp)
	if len(got) != 20 || got[0] != "Happy" || got[8] != "Neutral" {
		t.Errorf("emotions = %v", got)
	}
}

func TestNotFound(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	resp, err := http.Get(srv.URL + "/api/v1/unknown")
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
	got := decode[ErrorResponse](t, resp)
	if got.Error != "not_found" {
		t.Errorf("error = %q", got.Error)
	}
}

func TestCORS(t *testing.T) {
	h := newHandler(failingService{})

	t.Run("preflight allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, APIPrefix+"/analyze", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", "POST")
		req.Header.Set("Access-Control-Request-Headers", "content-type")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Errorf("status = %d, want 204", rec.Code)
		}
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
			t.Errorf("Allow-Origin = %q", got)
		}
		if got := rec.Header().Get("Access-Control-Allow-Methods"); got != "GET, POST, PUT, DELETE" {
			t.Errorf("Allow-Methods = %q", got)
		}
		if got := rec.Header().Get("Access-Control-Allow-Headers"); got != "content-type" {
			t.Errorf("Allow-Headers = %q", got)
		}
	})

	t.Run("origin not allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, APIPrefix+"/stats", nil)
		req.Header.Set("Origin", "http://evil.example")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("Allow-Origin = %q, want empty", got)
		}
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})
}

func TestRequestID_Propagated(t *testing.T) {
	h := newHandler(failingService{})

	req := httptest.NewRequest(http.MethodGet, APIPrefix+"/stats", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("request id = %q, want abc-123", got)
	}
}

type panicService struct{ failingService }

func (panicService) Stats() stats.Snapshot { panic("stats exploded") }

func TestRecoverer(t *testing.T) {
	h := newHandler(panicService{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, APIPrefix+"/stats", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	var body ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if body.Error != "internal_error" {
		t.Errorf("error = %q", body.Error)
	}
}

func TestFormatUptime(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00:00"},
		{90 * time.Second, "0:01:30"},
		{3*time.Hour + 4*time.Minute + 5*time.Second + 600*time.Millisecond, "3:04:05"},
		{25 * time.Hour, "1 day, 1:00:00"},
		{50 * time.Hour, "2 days, 2:00:00"},
		{-time.Second, "0:00:00"},
	}
	for _, tt := range tests {
		if got := formatUptime(tt.d); got != tt.want {
			t.Errorf("formatUptime(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestServe_Shutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	s := New(failingService{}, Options{
		Version: "1.0.0",
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	var resp *http.Response
	for i := 0; i < 50; i++ {
		resp, err = http.Get("http://" + ln.Addr().String() + "/")
		if err == nil {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("server not reachable: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !bytes.Contains(body, []byte("running")) {
		t.Errorf("root body = %s", body)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
