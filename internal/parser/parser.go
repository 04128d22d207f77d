package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/oleksandr38kebab342/log-csv-git/internal/model"
)

// ErrEmptyLine is returned for lines that are empty after trimming.
// Callers skip these silently; no diagnostic is warranted.
var ErrEmptyLine = errors.New("empty line")

// snippetLen caps how much of an unparseable line is kept for diagnostics.
const snippetLen = 100

// NoMatchError reports a line that matched none of the known patterns.
type NoMatchError struct {
	Snippet string // first characters of the offending line
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no pattern matched line: %q", e.Snippet)
}

// ---------------------------------------------------------------------------
// Patterns
// ---------------------------------------------------------------------------

// Pattern is a named positional grammar for one access-log format.
type Pattern struct {
	Name string
	re   *regexp.Regexp
}

// Extended ingress-style access-log format. Capture order:
//
//	1 remote_addr  2 remote_user  3 time_local  4 timestamp  5 request
//	6 status  7 body_bytes_sent  8 http_referer  9 http_user_agent
//	10 request_length  11 request_time  12 upstream_name
//	13 upstream_addr_list  14 upstream_addr  15 upstream_response_length
//	16 upstream_response_time  17 upstream_status  18 request_id
//
// remote_user, time_local and upstream_addr_list are matched to keep the
// grammar aligned but are not carried into the record.
var extendedPattern = Pattern{
	Name: "extended",
	re: regexp.MustCompile(`^(\S+)\s+(\S+)\s+(\S+)\s+` +
		`\[([^\]]+)\]\s+` +
		`"([^"]*)"\s+` +
		`(\d+)\s+(\S+)\s+` +
		`"([^"]*)"\s+"([^"]*)"\s+` +
		`(\S+)\s+(\S+)\s+` +
		`\[([^\]]*)\]\s+\[([^\]]*)\]\s+` +
		`(\S+)\s+(\S+)\s+(\S+)\s+(\S+)\s+(\S+)`),
}

// Standard combined access-log format, tried when the extended pattern
// fails. Capture order:
//
//	1 remote_addr  2 remote_user  3 remote_user2  4 timestamp  5 request
//	6 status  7 body_bytes_sent  8 http_referer  9 http_user_agent
var combinedPattern = Pattern{
	Name: "combined",
	re: regexp.MustCompile(`^(\S+)\s+(\S+)\s+(\S+)\s+` +
		`\[([^\]]+)\]\s+` +
		`"([^"]*)"\s+` +
		`(\d+)\s+(\S+)\s+` +
		`"([^"]*)"\s+"([^"]*)"`),
}

// ---------------------------------------------------------------------------
// Line parser
// ---------------------------------------------------------------------------

// LineParser converts raw access-log lines into LogRecords. Patterns are
// tried in priority order: extended first, combined as fallback. A
// LineParser is immutable and safe to share.
type LineParser struct {
	patterns []Pattern
}

// New returns a LineParser with the extended and combined patterns compiled.
func New() *LineParser {
	return &LineParser{
		patterns: []Pattern{extendedPattern, combinedPattern},
	}
}

// Parse converts one raw line into a LogRecord.
// Empty (after trimming) lines yield ErrEmptyLine. Lines matching neither
// pattern yield a *NoMatchError carrying a diagnostic snippet.
func (p *LineParser) Parse(raw string) (*model.LogRecord, error) {
	line := strings.TrimSpace(raw)
	if line == "" {
		return nil, ErrEmptyLine
	}

	for _, pat := range p.patterns {
		matches := pat.re.FindStringSubmatch(line)
		if matches == nil {
			continue
		}
		switch pat.Name {
		case "extended":
			return extendedRecord(matches), nil
		default:
			return combinedRecord(matches), nil
		}
	}

	return nil, &NoMatchError{Snippet: snippet(line)}
}

func extendedRecord(m []string) *model.LogRecord {
	method, url, protocol := splitRequest(m[5])
	return &model.LogRecord{
		Timestamp:              m[4],
		RemoteAddr:             m[1],
		Method:                 method,
		URL:                    url,
		Protocol:               protocol,
		Status:                 m[6],
		BodyBytesSent:          m[7],
		HTTPReferer:            m[8],
		HTTPUserAgent:          m[9],
		RequestLength:          m[10],
		RequestTime:            m[11],
		UpstreamName:           m[12],
		UpstreamAddr:           m[14],
		UpstreamResponseLength: m[15],
		UpstreamResponseTime:   m[16],
		UpstreamStatus:         m[17],
		RequestID:              m[18],
	}
}

// combinedRecord fills only the fields the combined format carries; the
// upstream and request-size fields stay empty.
func combinedRecord(m []string) *model.LogRecord {
	method, url, protocol := splitRequest(m[5])
	return &model.LogRecord{
		Timestamp:     m[4],
		RemoteAddr:    m[1],
		Method:        method,
		URL:           url,
		Protocol:      protocol,
		Status:        m[6],
		BodyBytesSent: m[7],
		HTTPReferer:   m[8],
		HTTPUserAgent: m[9],
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// splitRequest decomposes a request string like "GET /path HTTP/1.1" into
// method, url and protocol. Missing positions come back as empty strings.
func splitRequest(request string) (method, url, protocol string) {
	parts := strings.Fields(request)
	if len(parts) > 0 {
		method = parts[0]
	}
	if len(parts) > 1 {
		url = parts[1]
	}
	if len(parts) > 2 {
		protocol = parts[2]
	}
	return method, url, protocol
}

func snippet(line string) string {
	if len(line) > snippetLen {
		return line[:snippetLen]
	}
	return line
}
