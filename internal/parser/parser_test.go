package parser

import (
	"errors"
	"strings"
	"testing"
)

const extendedLine = `10.0.0.1 - - [01/Jan/2026:00:00:00 +0000] "GET /health HTTP/1.1" 200 15 "-" "curl/8.0" 120 0.001 [] [] - - - - abc123`

func TestParseExtended(t *testing.T) {
	p := New()

	rec, err := p.Parse(extendedLine)
	if err != nil {
		t.Fatal(err)
	}

	if rec.RemoteAddr != "10.0.0.1" {
		t.Errorf("expected remote_addr 10.0.0.1, got %q", rec.RemoteAddr)
	}
	if rec.Timestamp != "01/Jan/2026:00:00:00 +0000" {
		t.Errorf("unexpected timestamp %q", rec.Timestamp)
	}
	if rec.Method != "GET" || rec.URL != "/health" || rec.Protocol != "HTTP/1.1" {
		t.Errorf("unexpected request decomposition: %q %q %q", rec.Method, rec.URL, rec.Protocol)
	}
	if rec.Status != "200" {
		t.Errorf("expected status 200, got %q", rec.Status)
	}
	if rec.RequestLength != "120" || rec.RequestTime != "0.001" {
		t.Errorf("unexpected request size fields: %q %q", rec.RequestLength, rec.RequestTime)
	}
	if rec.UpstreamName != "" {
		t.Errorf("expected empty upstream_name for [], got %q", rec.UpstreamName)
	}
	if rec.RequestID != "abc123" {
		t.Errorf("expected request_id abc123, got %q", rec.RequestID)
	}
}

func TestParseExtendedWithUpstream(t *testing.T) {
	p := New()

	line := `192.168.0.5 alice - [02/Feb/2026:10:30:00 +0000] "POST /api/v1/items HTTP/2.0" 201 532 "https://example.com" "Mozilla/5.0" 845 0.120 [backend-pool] [10.1.0.4:8080] 10.1.0.4:8080 512 0.118 201 req-9f8e7d`
	rec, err := p.Parse(line)
	if err != nil {
		t.Fatal(err)
	}

	if rec.UpstreamName != "backend-pool" {
		t.Errorf("expected upstream_name backend-pool, got %q", rec.UpstreamName)
	}
	if rec.UpstreamAddr != "10.1.0.4:8080" {
		t.Errorf("expected upstream_addr 10.1.0.4:8080, got %q", rec.UpstreamAddr)
	}
	if rec.UpstreamResponseLength != "512" || rec.UpstreamResponseTime != "0.118" {
		t.Errorf("unexpected upstream response fields: %q %q", rec.UpstreamResponseLength, rec.UpstreamResponseTime)
	}
	if rec.UpstreamStatus != "201" {
		t.Errorf("expected upstream_status 201, got %q", rec.UpstreamStatus)
	}
	if rec.RequestID != "req-9f8e7d" {
		t.Errorf("expected request_id req-9f8e7d, got %q", rec.RequestID)
	}
	if rec.HTTPReferer != "https://example.com" {
		t.Errorf("expected referer, got %q", rec.HTTPReferer)
	}
}

func TestParseCombinedFallback(t *testing.T) {
	p := New()

	line := `203.0.113.7 - - [17/Feb/2026:12:00:00 +0000] "GET /index.html HTTP/1.1" 304 0 "-" "Mozilla/5.0"`
	rec, err := p.Parse(line)
	if err != nil {
		t.Fatal(err)
	}

	if rec.RemoteAddr != "203.0.113.7" || rec.Status != "304" {
		t.Errorf("unexpected base fields: %q %q", rec.RemoteAddr, rec.Status)
	}
	if rec.Method != "GET" || rec.URL != "/index.html" {
		t.Errorf("unexpected request decomposition: %q %q", rec.Method, rec.URL)
	}

	// The fallback carries no upstream or request-size information.
	for _, got := range []string{
		rec.RequestLength, rec.RequestTime, rec.UpstreamName, rec.UpstreamAddr,
		rec.UpstreamResponseLength, rec.UpstreamResponseTime, rec.UpstreamStatus, rec.RequestID,
	} {
		if got != "" {
			t.Errorf("expected empty fallback field, got %q", got)
		}
	}
}

func TestParseRequestDecomposition(t *testing.T) {
	p := New()

	cases := []struct {
		request  string
		method   string
		url      string
		protocol string
	}{
		{"GET /a HTTP/1.1", "GET", "/a", "HTTP/1.1"},
		{"GET /a", "GET", "/a", ""},
		{"GET", "GET", "", ""},
		{"", "", "", ""},
	}

	for _, c := range cases {
		line := `10.0.0.1 - - [01/Jan/2026:00:00:00 +0000] "` + c.request + `" 200 15 "-" "curl/8.0"`
		rec, err := p.Parse(line)
		if err != nil {
			t.Fatalf("request %q: %v", c.request, err)
		}
		if rec.Method != c.method || rec.URL != c.url || rec.Protocol != c.protocol {
			t.Errorf("request %q: got %q %q %q, want %q %q %q",
				c.request, rec.Method, rec.URL, rec.Protocol, c.method, c.url, c.protocol)
		}
	}
}

func TestParseEmptyLine(t *testing.T) {
	p := New()

	for _, raw := range []string{"", "   ", "\t\n"} {
		rec, err := p.Parse(raw)
		if !errors.Is(err, ErrEmptyLine) {
			t.Errorf("raw %q: expected ErrEmptyLine, got %v", raw, err)
		}
		if rec != nil {
			t.Errorf("raw %q: expected nil record", raw)
		}
	}
}

func TestParseNoMatch(t *testing.T) {
	p := New()

	long := "garbage " + strings.Repeat("x", 200)
	_, err := p.Parse(long)

	var noMatch *NoMatchError
	if !errors.As(err, &noMatch) {
		t.Fatalf("expected NoMatchError, got %v", err)
	}
	if len(noMatch.Snippet) != 100 {
		t.Errorf("expected 100-char snippet, got %d chars", len(noMatch.Snippet))
	}
	if !strings.HasPrefix(long, noMatch.Snippet) {
		t.Errorf("snippet is not a prefix of the line: %q", noMatch.Snippet)
	}
}

func TestParseDeterministic(t *testing.T) {
	p := New()

	first, err := p.Parse(extendedLine)
	if err != nil {
		t.Fatal(err)
	}
	second, err := p.Parse(extendedLine)
	if err != nil {
		t.Fatal(err)
	}
	if *first != *second {
		t.Errorf("same input produced different records:\n%+v\n%+v", first, second)
	}
}
