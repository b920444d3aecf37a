package output

import (
	"mime/multipart"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fkhttp "github.com/wesleyorama2/fetchkit/internal/http"
	"github.com/wesleyorama2/fetchkit/internal/metrics"
	"github.com/wesleyorama2/fetchkit/internal/resolve"
)

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]OutputFormat{"": FormatText, "TEXT": FormatText, "json": FormatJSON, "yaml": FormatYAML} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("junit")
	assert.Error(t, err)
}

func TestFormatValue_Text(t *testing.T) {
	f := NewFormatter(FormatText, false, false)

	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{"String", "hello", "hello"},
		{"Bytes", []byte("raw"), "raw"},
		{"Empty", resolve.Empty{}, ""},
		{"Blob", resolve.Blob{Type: "image/png", Data: []byte{1, 2, 3}}, "blob image/png (3 bytes)"},
		{"Decoded JSON", map[string]any{"a": 1.0}, "{\n  \"a\": 1\n}"},
		{"Null", nil, "null"},
		{"Form", &multipart.Form{
			Value: map[string][]string{"b": {"2"}, "a": {"1"}},
			File:  map[string][]*multipart.FileHeader{"f": {{Filename: "x.txt"}}},
		}, "a=1\nb=2\nf=@x.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.FormatValue(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFormatValue_JSON(t *testing.T) {
	f := NewFormatter(FormatJSON, false, false)

	got, err := f.FormatValue(map[string]any{"url": "https://a.io/?x=<1>"})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"url\": \"https://a.io/?x=<1>\"\n}", got)

	got, err = f.FormatValue(resolve.Empty{})
	require.NoError(t, err)
	assert.Equal(t, "null", got)

	got, err = f.FormatValue(resolve.Blob{Type: "text/plain", Data: []byte("ab")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"text/plain","size":2}`, got)

	got, err = f.FormatValue("text")
	require.NoError(t, err)
	assert.Equal(t, `"text"`, got)

	_, err = f.FormatValue(make(chan int))
	assert.Error(t, err)
}

func TestFormatValue_YAML(t *testing.T) {
	f := NewFormatter(FormatYAML, false, false)

	got, err := f.FormatValue(map[string]any{"name": "Ada", "tags": []any{"x"}})
	require.NoError(t, err)
	assert.Equal(t, "name: Ada\ntags:\n    - x", got)
}

func TestFormatValue_Document(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<p> hi </p>"))
	require.NoError(t, err)

	got, err := NewFormatter(FormatText, false, false).FormatValue(doc)
	require.NoError(t, err)
	assert.Equal(t, "hi", got)
}

func testResponse() *fkhttp.Response {
	resp := fkhttp.NewResponse(http.StatusNotFound, http.Header{"Content-Type": {"text/plain"}}, []byte("nope"))
	resp.ResponseTime = 12 * time.Millisecond
	resp.Timing.TotalTime = 12 * time.Millisecond
	return resp
}

func TestFormatResponse_Text(t *testing.T) {
	resp := testResponse()

	got, err := NewFormatter(FormatText, false, false).FormatValue(resp)
	require.NoError(t, err)
	assert.Equal(t, "◀ RESPONSE: 404 Not Found (12ms, 4 bytes)", got)
	assert.False(t, resp.BodyUsed())

	got, err = NewFormatter(FormatText, true, false).FormatResponse(resp)
	require.NoError(t, err)
	assert.Contains(t, got, "  Content-Type: text/plain")
	assert.Contains(t, got, "    Total:              12ms")
}

func TestFormatResponse_JSON(t *testing.T) {
	got, err := NewFormatter(FormatJSON, true, false).FormatResponse(testResponse())
	require.NoError(t, err)
	assert.Contains(t, got, `"statusCode": 404`)
	assert.Contains(t, got, `"Content-Type": "text/plain"`)
	assert.Contains(t, got, `"totalMs": 12`)
}

func TestFormatRequestLine(t *testing.T) {
	got := NewFormatter(FormatText, false, false).FormatRequestLine("GET", "https://a.io")
	assert.Equal(t, "▶ REQUEST: GET https://a.io", got)
}

func TestFormatSummary(t *testing.T) {
	s := metrics.Summary{
		Count: 10,
		Min:   time.Millisecond,
		Mean:  2 * time.Millisecond,
		P50:   2 * time.Millisecond,
		P90:   3 * time.Millisecond,
		P99:   4 * time.Millisecond,
		Max:   5 * time.Millisecond,
	}

	got, err := NewFormatter(FormatText, false, false).FormatSummary(s, 1)
	require.NoError(t, err)
	assert.Equal(t, "Σ 10 requests, 1 failed | min 1ms  mean 2ms  p50 2ms  p90 3ms  p99 4ms  max 5ms", got)

	got, err = NewFormatter(FormatJSON, false, false).FormatSummary(s, 1)
	require.NoError(t, err)
	assert.JSONEq(t, `{"count":10,"failures":1,"minMs":1,"meanMs":2,"p50Ms":2,"p90Ms":3,"p99Ms":4,"maxMs":5}`, got)
}

func TestUseColor(t *testing.T) {
	assert.False(t, UseColor(nil, true))

	t.Setenv("NO_COLOR", "1")
	assert.False(t, UseColor(nil, false))
}

func TestNoColorScheme(t *testing.T) {
	scheme := NoColorScheme()
	assert.Equal(t, "x", scheme.Method.Sprint("x"))
	assert.Equal(t, "x", scheme.StatusError.Sprint("x"))
}
