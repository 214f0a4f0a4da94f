package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"findex/internal/api"
	"findex/internal/config"
	"findex/internal/services/ytdlp"
	"findex/internal/testsupport"
)

type fakeFetcher struct {
	raw     string
	err     error
	info    ytdlp.VideoInfo
	infoErr error
}

func (f *fakeFetcher) FetchSubtitles(context.Context, string, string) (string, error) {
	return f.raw, f.err
}

func (f *fakeFetcher) FetchInfo(context.Context, string) (ytdlp.VideoInfo, error) {
	return f.info, f.infoErr
}

func newTestServer(t *testing.T, fetcher *fakeFetcher, opts ...testsupport.ConfigOption) (*Server, *config.Config) {
	t.Helper()
	cfg := testsupport.NewConfig(t, opts...)
	store := testsupport.MustOpenJournal(t, cfg)
	srv, err := New(cfg, Options{Fetcher: fetcher, Journal: store, Version: "test"}, nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return srv, cfg
}

func do(t *testing.T, h http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return out
}

const subsBody = `{"url":"https://www.youtube.com/watch?v=dQw4w9WgXcQ"}`

func TestSubsEndpointReturnsCleanedText(t *testing.T) {
	srv, _ := newTestServer(t, &fakeFetcher{raw: testsupport.SampleVTT})

	for _, path := range []string{"/youtube/subs", "/youtube/subs/"} {
		rec := do(t, srv.Handler(), http.MethodPost, path, subsBody, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: unexpected status %d: %s", path, rec.Code, rec.Body.String())
		}
		resp := decode[api.SubsResponse](t, rec)
		if !resp.Success || resp.Subtitles != "so today we\nare going" || resp.Error != "" {
			t.Fatalf("%s: unexpected response: %#v", path, resp)
		}
		if rec.Header().Get("X-Request-ID") == "" {
			t.Fatalf("%s: expected request id header", path)
		}
	}
}

func TestSubsEndpointStatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		fetcher *fakeFetcher
		status  int
		message string
	}{
		{"empty body", "", &fakeFetcher{}, http.StatusBadRequest, "No data provided"},
		{"bad json", "{", &fakeFetcher{}, http.StatusBadRequest, "invalid JSON body"},
		{"missing url", `{"lang":"en"}`, &fakeFetcher{}, http.StatusBadRequest, "url is required"},
		{"empty payload", subsBody, &fakeFetcher{raw: ""}, http.StatusNotFound, "subtitles are empty"},
		{"sentinel", subsBody, &fakeFetcher{raw: ytdlp.SentinelVideoUnavailable}, http.StatusNotFound, ytdlp.SentinelVideoUnavailable},
		{"only metadata", subsBody, &fakeFetcher{raw: "WEBVTT\n\n00:00:01.000 --> 00:00:02.000\n"}, http.StatusNotFound, "empty after cleaning"},
		{"tool failure", subsBody, &fakeFetcher{err: &ytdlp.PayloadError{Message: "ERROR: boom", Kind: ytdlp.ErrRetrievalFailed}}, http.StatusInternalServerError, "ERROR: boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestServer(t, tt.fetcher)
			rec := do(t, srv.Handler(), http.MethodPost, "/youtube/subs", tt.body, nil)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.status, rec.Body.String())
			}
			resp := decode[api.SubsResponse](t, rec)
			if resp.Success || !strings.Contains(resp.Error, tt.message) {
				t.Fatalf("unexpected response: %#v", resp)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer(t, &fakeFetcher{})
	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/youtube/subs"},
		{http.MethodGet, "/ask"},
		{http.MethodPost, "/health"},
		{http.MethodDelete, "/api/requests"},
	} {
		rec := do(t, srv.Handler(), tc.method, tc.path, "", nil)
		if rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("%s %s: expected 405, got %d", tc.method, tc.path, rec.Code)
		}
	}
}

func TestVideoInfoEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, &fakeFetcher{
		raw:  "WEBVTT\n\n00:00:01.000 --> 00:00:02.000\nHello\n",
		info: ytdlp.VideoInfo{Title: "Talk", Uploader: "Chan", Tags: []string{}, Categories: []string{}},
	})
	rec := do(t, srv.Handler(), http.MethodPost, "/youtube/video-info/", subsBody, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	info := decode[api.VideoInfo](t, rec)
	if info.Title != "Talk" || info.Transcript == nil || *info.Transcript != "Hello" {
		t.Fatalf("unexpected info: %#v", info)
	}
}

func TestVideoInfoEndpointNullTranscript(t *testing.T) {
	srv, _ := newTestServer(t, &fakeFetcher{
		err:  ytdlp.ErrSubtitlesUnavailable,
		info: ytdlp.VideoInfo{Title: "Talk"},
	})
	rec := do(t, srv.Handler(), http.MethodPost, "/youtube/video-info", subsBody, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"transcript":null`) {
		t.Fatalf("expected null transcript: %s", rec.Body.String())
	}
}

func TestAskEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, &fakeFetcher{info: ytdlp.VideoInfo{Title: "Talk", Uploader: "Chan", ViewCount: 4200}})

	rec := do(t, srv.Handler(), http.MethodPost, "/ask", `{"url":"https://youtu.be/dQw4w9WgXcQ","question":"what?"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	resp := decode[api.AskResponse](t, rec)
	if resp.VideoTitle != "Talk" || resp.VideoChannel != "Chan" || !strings.Contains(resp.Answer, "Views: 4,200") {
		t.Fatalf("unexpected response: %#v", resp)
	}

	rec = do(t, srv.Handler(), http.MethodPost, "/ask", `{"url":"https://example.com","question":"what?"}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-video url, got %d", rec.Code)
	}
	if got := decode[api.ErrorResponse](t, rec); got.Error != "Invalid YouTube URL" {
		t.Fatalf("unexpected error body: %#v", got)
	}
}

func TestAskEndpointToolFailure(t *testing.T) {
	srv, _ := newTestServer(t, &fakeFetcher{infoErr: errors.Join(ytdlp.ErrRetrievalFailed, context.DeadlineExceeded)})
	rec := do(t, srv.Handler(), http.MethodPost, "/ask", `{"url":"https://youtu.be/dQw4w9WgXcQ","question":"q"}`, nil)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestRequestsEndpointListsJournal(t *testing.T) {
	srv, _ := newTestServer(t, &fakeFetcher{raw: "Hello"})
	for i := 0; i < 3; i++ {
		do(t, srv.Handler(), http.MethodPost, "/youtube/subs", subsBody, nil)
	}

	rec := do(t, srv.Handler(), http.MethodGet, "/api/requests?limit=2", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	resp := decode[api.RequestsResponse](t, rec)
	if len(resp.Requests) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(resp.Requests))
	}
	entry := resp.Requests[0]
	if entry.Route != "/youtube/subs" || entry.VideoID != "dQw4w9WgXcQ" || entry.StatusCode != http.StatusOK {
		t.Fatalf("unexpected entry: %#v", entry)
	}

	rec = do(t, srv.Handler(), http.MethodGet, "/api/requests?limit=zero", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad limit, got %d", rec.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, &fakeFetcher{}, testsupport.WithStubbedBinaries("yt-dlp"))
	rec := do(t, srv.Handler(), http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	resp := decode[api.HealthResponse](t, rec)
	if resp.Status != api.HealthOK || !resp.Journal || resp.Version != "test" {
		t.Fatalf("unexpected health: %#v", resp)
	}
}

func TestAuthMiddleware(t *testing.T) {
	srv, _ := newTestServer(t, &fakeFetcher{raw: "Hello"}, testsupport.WithAPIToken("secret"))

	rec := do(t, srv.Handler(), http.MethodPost, "/youtube/subs", subsBody, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
	rec = do(t, srv.Handler(), http.MethodPost, "/youtube/subs", subsBody, map[string]string{"Authorization": "Bearer wrong"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with wrong token, got %d", rec.Code)
	}
	rec = do(t, srv.Handler(), http.MethodPost, "/youtube/subs", subsBody, map[string]string{"Authorization": "Bearer secret"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d", rec.Code)
	}
	rec = do(t, srv.Handler(), http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected public health, got %d", rec.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	srv, _ := newTestServer(t, &fakeFetcher{})
	rec := do(t, srv.Handler(), http.MethodOptions, "/youtube/subs", "", map[string]string{
		"Origin":                         "chrome-extension://abc",
		"Access-Control-Request-Method":  "POST",
		"Access-Control-Request-Headers": "content-type",
	})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "chrome-extension://abc" {
		t.Fatalf("unexpected allow origin: %q", rec.Header().Get("Access-Control-Allow-Origin"))
	}
	if rec.Header().Get("Access-Control-Allow-Headers") != "content-type" {
		t.Fatalf("unexpected allow headers: %q", rec.Header().Get("Access-Control-Allow-Headers"))
	}
}

func TestCORSRestrictedOrigins(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Server.CORSOrigins = []string{"https://allowed.example"}
	srv, err := New(cfg, Options{Fetcher: &fakeFetcher{}}, nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	rec := do(t, srv.Handler(), http.MethodGet, "/health", "", map[string]string{"Origin": "https://evil.example"})
	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatal("expected no CORS header for disallowed origin")
	}
	rec = do(t, srv.Handler(), http.MethodGet, "/health", "", map[string]string{"Origin": "https://allowed.example"})
	if rec.Header().Get("Access-Control-Allow-Origin") != "https://allowed.example" {
		t.Fatal("expected CORS header for allowed origin")
	}
}

func TestRequestIDPropagates(t *testing.T) {
	srv, _ := newTestServer(t, &fakeFetcher{})
	rec := do(t, srv.Handler(), http.MethodGet, "/health", "", map[string]string{"X-Request-ID": "client-123"})
	if rec.Header().Get("X-Request-ID") != "client-123" {
		t.Fatalf("expected propagated request id, got %q", rec.Header().Get("X-Request-ID"))
	}
}

func TestStartHoldsLockAndShutsDown(t *testing.T) {
	srv, cfg := newTestServer(t, &fakeFetcher{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := srv.Start(ctx); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	addr := srv.Addr()
	if addr == "" {
		t.Fatal("expected bound address")
	}

	resp, err := http.Get("http://" + addr + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}

	second, err := New(cfg, Options{Fetcher: &fakeFetcher{}}, nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := second.Start(context.Background()); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("expected ErrAlreadyRunning, got %v", err)
	}

	cancel()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := http.Get("http://" + addr + "/health"); err != nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	srv.Stop()

	third, err := New(cfg, Options{Fetcher: &fakeFetcher{}}, nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := third.Start(context.Background()); err != nil {
		t.Fatalf("expected lock to be released, got %v", err)
	}
	third.Stop()
}
