package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFetch_DirectRouteHTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "statblock-test/1.0" {
			t.Errorf("unexpected user agent %q", got)
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer srv.Close()

	c := &Client{UserAgent: "statblock-test/1.0"}
	page, err := c.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if page.Kind != KindHTML {
		t.Fatalf("expected html kind, got %q", page.Kind)
	}
	if !strings.Contains(page.Body, "ok") {
		t.Fatalf("unexpected body %q", page.Body)
	}
}

func TestFetch_FallsBackToMirrorOnNonSuccess(t *testing.T) {
	direct := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "blocked", http.StatusForbidden)
	}))
	defer direct.Close()

	var mirrorTarget string
	mirror := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mirrorTarget = r.URL.String()
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("Barghest Creature 4"))
	}))
	defer mirror.Close()

	c := &Client{MirrorPrefix: mirror.URL + "/"}
	page, err := c.Fetch(context.Background(), direct.URL+"/monster")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if page.Kind != KindText {
		t.Fatalf("mirrored content should classify as text, got %q", page.Kind)
	}
	if !strings.Contains(mirrorTarget, "/monster") {
		t.Fatalf("mirror URL should embed the original target, got %q", mirrorTarget)
	}
}

func TestFetch_BothRoutesExhausted(t *testing.T) {
	direct := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer direct.Close()
	mirror := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "missing", http.StatusNotFound)
	}))
	defer mirror.Close()

	c := &Client{MirrorPrefix: mirror.URL + "/"}
	_, err := c.Fetch(context.Background(), direct.URL)
	if !errors.Is(err, ErrAllRoutesFailed) {
		t.Fatalf("expected ErrAllRoutesFailed, got %v", err)
	}
}

func TestFetch_NoMirrorConfigured(t *testing.T) {
	direct := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer direct.Close()

	c := &Client{}
	_, err := c.Fetch(context.Background(), direct.URL)
	if !errors.Is(err, ErrAllRoutesFailed) {
		t.Fatalf("expected ErrAllRoutesFailed, got %v", err)
	}
}

func TestFetch_RejectsNonHTTPScheme(t *testing.T) {
	c := &Client{}
	_, err := c.Fetch(context.Background(), "ftp://example.com/monster")
	if err == nil {
		t.Fatalf("expected error for non-http scheme")
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		ct       string
		body     string
		mirrored bool
		want     Kind
	}{
		{"text/html; charset=utf-8", "<html>", false, KindHTML},
		{"application/xhtml+xml", "<html>", false, KindHTML},
		{"text/plain", "plain", false, KindText},
		{"", "  <html><body>", false, KindHTML},
		{"", "plain words", false, KindText},
		{"application/octet-stream", "whatever", true, KindText},
	}
	for _, tc := range cases {
		if got := classify(tc.ct, []byte(tc.body), tc.mirrored); got != tc.want {
			t.Fatalf("classify(%q, %q, %v) = %q, want %q", tc.ct, tc.body, tc.mirrored, got, tc.want)
		}
	}
}
