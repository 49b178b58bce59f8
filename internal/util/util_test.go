package util

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"
)

func TestRobotsChecker_CanFetch(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		atomic.AddInt32(&hits, 1)
		_, _ = w.Write([]byte("User-agent: draftgate\nDisallow: /private\nCrawl-delay: 2\n\nUser-agent: *\nDisallow: /\n"))
	}))
	defer server.Close()

	checker := NewRobotsChecker("draftgate/0.1 (+https://example.org)", time.Second, nil)
	ctx := context.Background()

	allowed, delay, err := checker.CanFetch(ctx, server.URL+"/w/api.php")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !allowed {
		t.Error("Expected /w/api.php to be allowed for draftgate")
	}
	if delay != 2*time.Second {
		t.Errorf("Expected crawl delay 2s, got %v", delay)
	}

	if allowed, _, _ := checker.CanFetch(ctx, server.URL+"/private/x"); allowed {
		t.Error("Expected /private to be disallowed")
	}

	if atomic.LoadInt32(&hits) != 1 {
		t.Errorf("Expected robots.txt to be fetched once, got %d", hits)
	}
}

func TestRobotsChecker_MissingRobotsAllows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	checker := NewRobotsChecker("draftgate", time.Second, nil)
	if allowed, _, _ := checker.CanFetch(context.Background(), server.URL+"/anything"); !allowed {
		t.Error("Expected missing robots.txt to allow everything")
	}
}

func TestRobotsChecker_UnreachableAllows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := server.URL
	server.Close()

	checker := NewRobotsChecker("draftgate", 100*time.Millisecond, nil)
	allowed, _, err := checker.CanFetch(context.Background(), addr+"/x")
	if err != nil || !allowed {
		t.Errorf("Expected unreachable robots.txt to allow, got allowed=%v err=%v", allowed, err)
	}
}

func TestRobotsChecker_InvalidURL(t *testing.T) {
	checker := NewRobotsChecker("draftgate", time.Second, nil)
	if _, _, err := checker.CanFetch(context.Background(), ""); err == nil {
		t.Error("Expected error for empty URL")
	}
}

func TestNormalizeUserAgent(t *testing.T) {
	tests := []struct{ in, want string }{
		{"draftgate/0.1 (+https://github.com/ppiankov/draftgate)", "draftgate"},
		{"curl/8.0", "curl"},
		{"plain", "plain"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeUserAgent(tt.in); got != tt.want {
			t.Errorf("NormalizeUserAgent(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewProxyFunc(t *testing.T) {
	proxy := NewProxyFunc("http://proxy:3128", "http://secure-proxy:3128", "localhost, .internal.example")

	tests := []struct {
		target string
		want   string
	}{
		{"http://www.mediawiki.org/w/api.php", "http://proxy:3128"},
		{"https://www.mediawiki.org/w/api.php", "http://secure-proxy:3128"},
		{"https://localhost:8080/x", ""},
		{"https://api.internal.example/x", ""},
		{"https://internal.example/x", ""},
	}

	for _, tt := range tests {
		u, _ := url.Parse(tt.target)
		got, err := proxy(&http.Request{URL: u})
		if err != nil {
			t.Fatalf("%s: unexpected error %v", tt.target, err)
		}
		gotStr := ""
		if got != nil {
			gotStr = got.String()
		}
		if gotStr != tt.want {
			t.Errorf("%s: expected proxy %q, got %q", tt.target, tt.want, gotStr)
		}
	}
}

func TestNewHTTPClient(t *testing.T) {
	client := NewHTTPClient(3*time.Second, "", "", "")
	if client.Timeout != 3*time.Second {
		t.Errorf("Expected timeout 3s, got %v", client.Timeout)
	}
	if client.Transport == nil {
		t.Error("Expected a transport")
	}
}
