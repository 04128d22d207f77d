package model

// LogRecord is the structured form of a single nginx access-log line.
// Every field is always present; a field the source pattern could not
// capture holds the empty string.
type LogRecord struct {
	Timestamp              string `json:"timestamp"`
	RemoteAddr             string `json:"remote_addr"`
	Method                 string `json:"method"`
	URL                    string `json:"url"`
	Protocol               string `json:"protocol"`
	Status                 string `json:"status"`
	BodyBytesSent          string `json:"body_bytes_sent"`
	HTTPReferer            string `json:"http_referer"`
	HTTPUserAgent          string `json:"http_user_agent"`
	RequestLength          string `json:"request_length"`
	RequestTime            string `json:"request_time"`
	UpstreamName           string `json:"upstream_name"`
	UpstreamAddr           string `json:"upstream_addr"`
	UpstreamResponseLength string `json:"upstream_response_length"`
	UpstreamResponseTime   string `json:"upstream_response_time"`
	UpstreamStatus         string `json:"upstream_status"`
	RequestID              string `json:"request_id"`
}

// fieldNames lists the record fields in export (column) order.
var fieldNames = []string{
	"timestamp",
	"remote_addr",
	"method",
	"url",
	"protocol",
	"status",
	"body_bytes_sent",
	"http_referer",
	"http_user_agent",
	"request_length",
	"request_time",
	"upstream_name",
	"upstream_addr",
	"upstream_response_length",
	"upstream_response_time",
	"upstream_status",
	"request_id",
}

// FieldNames returns the record field names in export order.
func FieldNames() []string {
	out := make([]string, len(fieldNames))
	copy(out, fieldNames)
	return out
}

// IsField reports whether name is one of the recognized record fields.
func IsField(name string) bool {
	for _, f := range fieldNames {
		if f == name {
			return true
		}
	}
	return false
}

// Field returns the value of the named field and whether the name is known.
func (r LogRecord) Field(name string) (string, bool) {
	switch name {
	case "timestamp":
		return r.Timestamp, true
	case "remote_addr":
		return r.RemoteAddr, true
	case "method":
		return r.Method, true
	case "url":
		return r.URL, true
	case "protocol":
		return r.Protocol, true
	case "status":
		return r.Status, true
	case "body_bytes_sent":
		return r.BodyBytesSent, true
	case "http_referer":
		return r.HTTPReferer, true
	case "http_user_agent":
		return r.HTTPUserAgent, true
	case "request_length":
		return r.RequestLength, true
	case "request_time":
		return r.RequestTime, true
	case "upstream_name":
		return r.UpstreamName, true
	case "upstream_addr":
		return r.UpstreamAddr, true
	case "upstream_response_length":
		return r.UpstreamResponseLength, true
	case "upstream_response_time":
		return r.UpstreamResponseTime, true
	case "upstream_status":
		return r.UpstreamStatus, true
	case "request_id":
		return r.RequestID, true
	}
	return "", false
}

// Set assigns value to the named field. It reports whether the name is known;
// unknown names leave the record untouched.
func (r *LogRecord) Set(name, value string) bool {
	switch name {
	case "timestamp":
		r.Timestamp = value
	case "remote_addr":
		r.RemoteAddr = value
	case "method":
		r.Method = value
	case "url":
		r.URL = value
	case "protocol":
		r.Protocol = value
	case "status":
		r.Status = value
	case "body_bytes_sent":
		r.BodyBytesSent = value
	case "http_referer":
		r.HTTPReferer = value
	case "http_user_agent":
		r.HTTPUserAgent = value
	case "request_length":
		r.RequestLength = value
	case "request_time":
		r.RequestTime = value
	case "upstream_name":
		r.UpstreamName = value
	case "upstream_addr":
		r.UpstreamAddr = value
	case "upstream_response_length":
		r.UpstreamResponseLength = value
	case "upstream_response_time":
		r.UpstreamResponseTime = value
	case "upstream_status":
		r.UpstreamStatus = value
	case "request_id":
		r.RequestID = value
	default:
		return false
	}
	return true
}

// Values returns the field values in export order.
func (r LogRecord) Values() []string {
	return []string{
		r.Timestamp,
		r.RemoteAddr,
		r.Method,
		r.URL,
		r.Protocol,
		r.Status,
		r.BodyBytesSent,
		r.HTTPReferer,
		r.HTTPUserAgent,
		r.RequestLength,
		r.RequestTime,
		r.UpstreamName,
		r.UpstreamAddr,
		r.UpstreamResponseLength,
		r.UpstreamResponseTime,
		r.UpstreamStatus,
		r.RequestID,
	}
}
