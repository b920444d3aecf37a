// Package output renders resolved values and response summaries.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"gopkg.in/yaml.v3"

	fkhttp "github.com/wesleyorama2/fetchkit/internal/http"
	"github.com/wesleyorama2/fetchkit/internal/metrics"
	"github.com/wesleyorama2/fetchkit/internal/resolve"
)

// OutputFormat represents the available output formats
type OutputFormat string

const (
	// FormatText is the default human-readable text format
	FormatText OutputFormat = "text"
	// FormatJSON outputs in JSON format
	FormatJSON OutputFormat = "json"
	// FormatYAML outputs in YAML format
	FormatYAML OutputFormat = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	}
	return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", s)
}

// ResponseData represents the structured data of an HTTP response
type ResponseData struct {
	StatusCode    int               `json:"statusCode" yaml:"statusCode"`
	Status        string            `json:"status" yaml:"status"`
	Headers       map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	ResponseTime  int64             `json:"responseTimeMs" yaml:"responseTimeMs"`
	ContentLength int               `json:"contentLength" yaml:"contentLength"`
	Timing        *TimingData       `json:"timing,omitempty" yaml:"timing,omitempty"`
}

// TimingData represents detailed timing information for an HTTP request
type TimingData struct {
	DNSLookup       int64 `json:"dnsLookupMs" yaml:"dnsLookupMs"`
	TCPConnection   int64 `json:"tcpConnectionMs" yaml:"tcpConnectionMs"`
	TLSHandshake    int64 `json:"tlsHandshakeMs" yaml:"tlsHandshakeMs"`
	TimeToFirstByte int64 `json:"timeToFirstByteMs" yaml:"timeToFirstByteMs"`
	ContentTransfer int64 `json:"contentTransferMs" yaml:"contentTransferMs"`
	Total           int64 `json:"totalMs" yaml:"totalMs"`
}

// BlobData is the structured form of a resolve.Blob.
type BlobData struct {
	Type string `json:"type" yaml:"type"`
	Size int    `json:"size" yaml:"size"`
}

// FormData is the structured form of a multipart.Form.
type FormData struct {
	Values map[string][]string `json:"values,omitempty" yaml:"values,omitempty"`
	Files  map[string][]string `json:"files,omitempty" yaml:"files,omitempty"`
}

// Formatter renders values in one format.
type Formatter struct {
	Format  OutputFormat
	Verbose bool
	Colors  *ColorScheme
}

// NewFormatter creates a new formatter with the given options
func NewFormatter(format OutputFormat, verbose, color bool) *Formatter {
	scheme := DefaultColorScheme()
	if !color {
		scheme = NoColorScheme()
	}
	return &Formatter{Format: format, Verbose: verbose, Colors: scheme}
}

// FormatValue renders a resolved value.
func (f *Formatter) FormatValue(v any) (string, error) {
	switch t := v.(type) {
	case *fkhttp.Response:
		return f.FormatResponse(t)
	case resolve.Empty:
		if f.Format == FormatText {
			return "", nil
		}
		return f.encode(nil)
	case string:
		if f.Format == FormatText {
			return t, nil
		}
		return f.encode(t)
	case []byte:
		if f.Format == FormatText {
			return string(t), nil
		}
		return f.encode(t)
	case resolve.Blob:
		data := BlobData{Type: t.Type, Size: t.Size()}
		if f.Format == FormatText {
			return fmt.Sprintf("blob %s (%d bytes)", data.Type, data.Size), nil
		}
		return f.encode(data)
	case *multipart.Form:
		data := formData(t)
		if f.Format == FormatText {
			return formText(data), nil
		}
		return f.encode(data)
	case *goquery.Document:
		text := strings.TrimSpace(t.Text())
		if f.Format == FormatText {
			return text, nil
		}
		return f.encode(text)
	}

	if f.Format == FormatText {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Sprintf("%v", v), nil
		}
		return string(data), nil
	}
	return f.encode(v)
}

// FormatResponse renders a response summary; the body is not read.
func (f *Formatter) FormatResponse(resp *fkhttp.Response) (string, error) {
	data := responseData(resp, f.Verbose)
	if f.Format != FormatText {
		return f.encode(data)
	}

	var buf strings.Builder
	statusColor := f.Colors.StatusError
	if resp.IsSuccess() {
		statusColor = f.Colors.StatusOK
	} else if resp.IsRedirect() {
		statusColor = f.Colors.StatusWarn
	}
	fmt.Fprintf(&buf, "◀ RESPONSE: %s (%dms, %d bytes)\n",
		statusColor.Sprint(resp.Status), data.ResponseTime, data.ContentLength)

	for _, key := range sortedKeys(data.Headers) {
		fmt.Fprintf(&buf, "  %s: %s\n", f.Colors.HeaderKey.Sprint(key), data.Headers[key])
	}

	if data.Timing != nil {
		buf.WriteString("  Timing:\n")
		fmt.Fprintf(&buf, "    DNS Lookup:         %dms\n", data.Timing.DNSLookup)
		fmt.Fprintf(&buf, "    TCP Connection:     %dms\n", data.Timing.TCPConnection)
		fmt.Fprintf(&buf, "    TLS Handshake:      %dms\n", data.Timing.TLSHandshake)
		fmt.Fprintf(&buf, "    Time to First Byte: %dms\n", data.Timing.TimeToFirstByte)
		fmt.Fprintf(&buf, "    Content Transfer:   %dms\n", data.Timing.ContentTransfer)
		fmt.Fprintf(&buf, "    Total:              %dms\n", data.Timing.Total)
	}

	return strings.TrimRight(buf.String(), "\n"), nil
}

// FormatRequestLine renders the "▶ REQUEST" line for a method and URL.
func (f *Formatter) FormatRequestLine(method, url string) string {
	return fmt.Sprintf("▶ REQUEST: %s %s", f.Colors.Method.Sprint(method), f.Colors.URL.Sprint(url))
}

// FormatSummary renders latency statistics of repeated requests.
func (f *Formatter) FormatSummary(s metrics.Summary, failures int) (string, error) {
	if f.Format != FormatText {
		return f.encode(struct {
			Count    int64 `json:"count" yaml:"count"`
			Failures int   `json:"failures" yaml:"failures"`
			MinMs    int64 `json:"minMs" yaml:"minMs"`
			MeanMs   int64 `json:"meanMs" yaml:"meanMs"`
			P50Ms    int64 `json:"p50Ms" yaml:"p50Ms"`
			P90Ms    int64 `json:"p90Ms" yaml:"p90Ms"`
			P99Ms    int64 `json:"p99Ms" yaml:"p99Ms"`
			MaxMs    int64 `json:"maxMs" yaml:"maxMs"`
		}{s.Count, failures, ms(s.Min), ms(s.Mean), ms(s.P50), ms(s.P90), ms(s.P99), ms(s.Max)})
	}

	return fmt.Sprintf("%s %d requests, %d failed | min %s  mean %s  p50 %s  p90 %s  p99 %s  max %s",
		f.Colors.Muted.Sprint("Σ"), s.Count, failures,
		round(s.Min), round(s.Mean), round(s.P50), round(s.P90), round(s.P99), round(s.Max)), nil
}

func (f *Formatter) encode(v any) (string, error) {
	switch f.Format {
	case FormatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("failed to encode YAML: %w", err)
		}
		return strings.TrimRight(string(data), "\n"), nil
	default:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(v); err != nil {
			return "", fmt.Errorf("failed to encode JSON: %w", err)
		}
		return strings.TrimRight(buf.String(), "\n"), nil
	}
}

func responseData(resp *fkhttp.Response, verbose bool) ResponseData {
	data := ResponseData{
		StatusCode:    resp.StatusCode,
		Status:        resp.Status,
		ResponseTime:  resp.ResponseTime.Milliseconds(),
		ContentLength: resp.ContentLength(),
	}
	if verbose {
		data.Headers = make(map[string]string, len(resp.Headers))
		for key, values := range resp.Headers {
			data.Headers[key] = strings.Join(values, ", ")
		}
		data.Timing = &TimingData{
			DNSLookup:       resp.Timing.DNSLookupTime.Milliseconds(),
			TCPConnection:   resp.Timing.TCPConnectTime.Milliseconds(),
			TLSHandshake:    resp.Timing.TLSHandshakeTime.Milliseconds(),
			TimeToFirstByte: resp.Timing.TimeToFirstByte.Milliseconds(),
			ContentTransfer: resp.Timing.ContentTransferTime.Milliseconds(),
			Total:           resp.Timing.TotalTime.Milliseconds(),
		}
	}
	return data
}

func formData(form *multipart.Form) FormData {
	data := FormData{Values: form.Value}
	if len(form.File) > 0 {
		data.Files = make(map[string][]string, len(form.File))
		for key, headers := range form.File {
			for _, h := range headers {
				data.Files[key] = append(data.Files[key], h.Filename)
			}
		}
	}
	return data
}

func formText(data FormData) string {
	var lines []string
	for _, key := range sortedKeys(data.Values) {
		for _, v := range data.Values[key] {
			lines = append(lines, key+"="+v)
		}
	}
	for _, key := range sortedKeys(data.Files) {
		for _, name := range data.Files[key] {
			lines = append(lines, key+"=@"+name)
		}
	}
	return strings.Join(lines, "\n")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func ms(d time.Duration) int64 {
	return d.Milliseconds()
}

func round(d time.Duration) time.Duration {
	return d.Round(100 * time.Microsecond)
}
