package lookup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/citecheck/citecheck/internal/cache"
	"github.com/citecheck/citecheck/internal/model"
	"github.com/citecheck/citecheck/internal/worker"
)

func testConfig(baseURL string) *model.Config {
	cfg := model.DefaultConfig()
	cfg.API.BaseURL = baseURL
	cfg.HTTP.Timeout = 5 * time.Second
	return cfg
}

func fastLimiter() *worker.Limiter {
	return worker.NewLimiter(time.Millisecond)
}

func TestClient_SearchCitation(t *testing.T) {
	var gotQuery, gotUA, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotUA = r.Header.Get("User-Agent")
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"count": 1,
			"results": [{
				"caseName": "Roe v. Wade",
				"citation": ["410 U.S. 113", "93 S. Ct. 705"],
				"court": "Supreme Court of the United States",
				"dateFiled": "1973-01-22",
				"docketNumber": "70-18",
				"absolute_url": "/opinion/108713/roe-v-wade/"
			}]
		}`))
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.API.Token = "secret"
	client := NewClient(cfg, fastLimiter(), nil)

	result, err := client.SearchCitation(context.Background(), "410 U.S. 113", "Roe")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}

	if result.Count != 1 || len(result.Results) != 1 {
		t.Fatalf("expected 1 result, got count=%d len=%d", result.Count, len(result.Results))
	}
	cand := result.Results[0]
	if cand.CaseName != "Roe v. Wade" {
		t.Errorf("expected case name Roe v. Wade, got %q", cand.CaseName)
	}
	if len(cand.Citations) != 2 || cand.Citations[0] != "410 U.S. 113" {
		t.Errorf("unexpected citations: %v", cand.Citations)
	}
	if cand.DateFiled != "1973-01-22" {
		t.Errorf("unexpected dateFiled: %q", cand.DateFiled)
	}

	for _, want := range []string{"type=o", "citation=410+U.S.+113", "case_name=Roe"} {
		if !containsParam(gotQuery, want) {
			t.Errorf("query %q missing %q", gotQuery, want)
		}
	}
	if gotUA != cfg.HTTP.UserAgent {
		t.Errorf("expected configured User-Agent, got %q", gotUA)
	}
	if gotAuth != "Token secret" {
		t.Errorf("expected token auth header, got %q", gotAuth)
	}
}

func TestClient_SearchFreeText(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"count": 0, "results": []}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), fastLimiter(), nil)

	result, err := client.SearchFreeText(context.Background(), "Miranda v. Arizona")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if result.Count != 0 || len(result.Results) != 0 {
		t.Errorf("expected empty result, got %+v", result)
	}
	if !containsParam(gotQuery, "q=Miranda+v.+Arizona") {
		t.Errorf("query %q missing free-text term", gotQuery)
	}
}

func TestClient_NoAuthHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"count": 0, "results": []}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), fastLimiter(), nil)
	if _, err := client.SearchFreeText(context.Background(), "x"); err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("expected no Authorization header, got %q", gotAuth)
	}
}

func TestClient_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "throttled", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), fastLimiter(), nil)
	if _, err := client.SearchCitation(context.Background(), "410 U.S. 113", ""); err == nil {
		t.Error("expected error for 429 response")
	}
}

func TestClient_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), fastLimiter(), nil)
	if _, err := client.SearchCitation(context.Background(), "410 U.S. 113", ""); err == nil {
		t.Error("expected decode error")
	}
}

func TestClient_CachesSuccessfulResponses(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte(`{"count": 1, "results": [{"caseName": "Brown v. Board of Education"}]}`))
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	store := cache.NewMemoryCache(time.Minute, time.Minute)
	client := NewClient(cfg, fastLimiter(), store)

	for i := 0; i < 3; i++ {
		result, err := client.SearchCitation(context.Background(), "347 U.S. 483", "")
		if err != nil {
			t.Fatalf("search %d failed: %v", i, err)
		}
		if result.Results[0].CaseName != "Brown v. Board of Education" {
			t.Fatalf("search %d: unexpected result", i)
		}
	}

	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Errorf("expected 1 network request, server saw %d", n)
	}
}

func TestClient_DoesNotCacheErrors(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	store := cache.NewMemoryCache(time.Minute, time.Minute)
	client := NewClient(testConfig(server.URL), fastLimiter(), store)

	for i := 0; i < 2; i++ {
		if _, err := client.SearchFreeText(context.Background(), "x"); err == nil {
			t.Fatalf("search %d: expected error", i)
		}
	}
	if n := atomic.LoadInt32(&hits); n != 2 {
		t.Errorf("expected 2 network requests, server saw %d", n)
	}
}

func TestClient_WaitsBetweenRequests(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"count": 0, "results": []}`))
	}))
	defer server.Close()

	const interval = 30 * time.Millisecond
	client := NewClient(testConfig(server.URL), worker.NewLimiter(interval), nil)

	start := time.Now()
	for i := 0; i < 3; i++ {
		if _, err := client.SearchFreeText(context.Background(), "x"); err != nil {
			t.Fatalf("search %d failed: %v", i, err)
		}
	}
	if elapsed := time.Since(start); elapsed < 2*interval {
		t.Errorf("3 requests took %v, want at least %v", elapsed, 2*interval)
	}
}

func containsParam(query, param string) bool {
	for _, part := range strings.Split(query, "&") {
		if part == param {
			return true
		}
	}
	return false
}
