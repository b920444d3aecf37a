package http

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wesleyorama2/fetchkit/internal/container"
)

func readBody(t *testing.T, req *http.Request) string {
	t.Helper()
	if req.Body == nil {
		return ""
	}
	data, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	return string(data)
}

func TestBuildRequest_Defaults(t *testing.T) {
	req, err := BuildRequest(context.Background(), container.New("https://api.example.com/users", nil, nil))
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "https://api.example.com/users", req.URL.String())
	assert.Nil(t, req.Body)
}

func TestBuildRequest_MethodHeadersQuery(t *testing.T) {
	c := container.New(
		"https://api.example.com/search",
		container.Init{
			"method":  "post",
			"headers": map[string]string{"Accept": "application/json"},
		},
		container.Options{
			"query": container.Query{}.Add("q", "go lang").Add("page", 2),
		},
	)

	req, err := BuildRequest(context.Background(), c)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "https://api.example.com/search?q=go%20lang&page=2", req.URL.String())
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
}

func TestBuildRequest_Bodies(t *testing.T) {
	tests := []struct {
		name        string
		body        any
		wantBody    string
		contentType string
	}{
		{"String", "plain text", "plain text", ""},
		{"Bytes", []byte("raw"), "raw", ""},
		{"Reader", strings.NewReader("streamed"), "streamed", ""},
		{"Form", url.Values{"a": {"1"}}, "a=1", "application/x-www-form-urlencoded"},
		{"JSON", map[string]any{"name": "fetchkit"}, `{"name":"fetchkit"}`, "application/json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := container.MergeAll(
				container.New("https://example.com", nil, nil),
				container.WithMethod(http.MethodPost),
				container.WithBody(tt.body),
			)
			req, err := BuildRequest(context.Background(), c)
			require.NoError(t, err)

			assert.Equal(t, tt.wantBody, readBody(t, req))
			assert.Equal(t, tt.contentType, req.Header.Get("Content-Type"))
		})
	}
}

func TestBuildRequest_KeepsExplicitContentType(t *testing.T) {
	c := container.MergeAll(
		container.New("https://example.com", nil, nil),
		container.WithHeaders(map[string]string{"Content-Type": "application/vnd.api+json"}),
		container.WithBody(map[string]int{"a": 1}),
	)
	req, err := BuildRequest(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, "application/vnd.api+json", req.Header.Get("Content-Type"))
}

func TestBuildRequest_PayloadTransform(t *testing.T) {
	c := container.MergeAll(
		container.New("https://example.com", nil, nil),
		container.WithMethod(http.MethodPut),
		container.WithBody("bar"),
		container.WithPayloadAs(func(p any) any { return "foo" + p.(string) }),
	)
	req, err := BuildRequest(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, "foobar", readBody(t, req))
}

func TestBuildRequest_JSONPayloadTransform(t *testing.T) {
	c := container.MergeAll(
		container.New("https://example.com", nil, nil),
		container.WithBody([]int{1, 2}),
		container.WithPayloadAs(container.JSONPayload),
	)
	req, err := BuildRequest(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, "[1,2]", readBody(t, req))
	assert.Empty(t, req.Header.Get("Content-Type"), "transformed string bodies are sent verbatim")
}

func TestBuildRequest_CredentialsOmit(t *testing.T) {
	c := container.New("https://example.com", container.Init{
		"headers": map[string]string{
			"Authorization": "Bearer token",
			"Cookie":        "session=1",
			"Accept":        "text/plain",
		},
		"credentials": "omit",
	}, nil)

	req, err := BuildRequest(context.Background(), c)
	require.NoError(t, err)
	assert.Empty(t, req.Header.Get("Authorization"))
	assert.Empty(t, req.Header.Get("Cookie"))
	assert.Equal(t, "text/plain", req.Header.Get("Accept"))
}

func TestBuildRequest_Errors(t *testing.T) {
	_, err := BuildRequest(context.Background(), container.Container{})
	assert.Error(t, err)

	_, err = BuildRequest(context.Background(), container.New("https://example.com", container.Init{"body": make(chan int)}, nil))
	assert.ErrorContains(t, err, "failed to marshal request body")

	_, err = BuildRequest(context.Background(), container.New("http://[::1", nil, nil))
	assert.Error(t, err)
}
