package container

import (
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

var (
	fooContainer = Container{
		URL:     "a",
		Init:    Init{"a": true},
		Options: Options{"a": true},
	}
	barContainer = Container{
		URL:     "b",
		Init:    Init{"a": false, "b": true},
		Options: Options{"a": false, "b": true},
	}
)

func TestMerge(t *testing.T) {
	got := Merge(fooContainer, barContainer)
	want := Container{
		URL:     "a/b",
		Init:    Init{"a": false, "b": true},
		Options: Options{"a": false, "b": true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Merge() mismatch (-want +got):\n%s", diff)
	}
}

func TestMerge_MissingValues(t *testing.T) {
	got := Merge(Container{}, Container{})
	want := Container{URL: "", Init: Init{}, Options: Options{}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Merge() mismatch (-want +got):\n%s", diff)
	}
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	a := Container{URL: "a", Init: Init{"k": 1}, Options: Options{"o": 1}}
	b := Container{URL: "b", Init: Init{"k": 2}, Options: Options{"o": 2}}

	got := Merge(a, b)
	got.Init["extra"] = true
	got.Options["extra"] = true

	assert.Equal(t, Init{"k": 1}, a.Init)
	assert.Equal(t, Options{"o": 1}, a.Options)
	assert.Equal(t, Init{"k": 2}, b.Init)
	assert.Equal(t, Options{"o": 2}, b.Options)
}

func TestMerge_HeadersAreReplacedNotMerged(t *testing.T) {
	a := WithHeaders(map[string]string{"Accept": "text/plain", "X-A": "1"})
	b := WithHeaders(map[string]string{"Accept": "application/json"})

	h := Merge(a, b).Headers()
	assert.Equal(t, "application/json", h.Get("Accept"))
	assert.Empty(t, h.Get("X-A"))
}

func TestMergeAll(t *testing.T) {
	got := MergeAll(
		New("https://api.example.com", Init{"method": "get"}, nil),
		New("/v1/", nil, Options{"resolveAs": "json"}),
		New("users", Init{"method": "post"}, nil),
	)
	assert.Equal(t, "https://api.example.com/v1/users", got.URL)
	assert.Equal(t, http.MethodPost, got.Method())
	assert.Equal(t, "json", got.ResolveAs())

	empty := MergeAll()
	assert.NotNil(t, empty.Init)
	assert.NotNil(t, empty.Options)
}

func TestContainer_With(t *testing.T) {
	assert.Equal(t, Merge(fooContainer, barContainer), fooContainer.With(barContainer))
}

func TestContainer_Clone(t *testing.T) {
	clone := fooContainer.Clone()
	clone.Init["a"] = "changed"
	assert.Equal(t, true, fooContainer.Init["a"])
}

func TestContainer_Accessors(t *testing.T) {
	q := Query{}.Add("page", 2)
	c := MergeAll(
		WithMethod("patch"),
		WithBody("payload"),
		WithResolveAs("TEXT"),
		WithQuery(q),
		New("", Init{InitCredentials: "omit"}, nil),
	)

	assert.Equal(t, http.MethodPatch, c.Method())
	assert.Equal(t, "payload", c.Body())
	assert.Equal(t, "TEXT", c.ResolveAs())
	assert.Equal(t, q, c.Query())
	assert.Equal(t, "omit", c.Credentials())
	assert.Nil(t, c.PayloadAs())

	assert.Equal(t, http.MethodGet, Container{}.Method())
}

func TestContainer_HeadersShapes(t *testing.T) {
	tests := []struct {
		name    string
		headers any
	}{
		{"http.Header", http.Header{"X-Test": {"v"}}},
		{"map[string][]string", map[string][]string{"X-Test": {"v"}}},
		{"map[string]string", map[string]string{"X-Test": "v"}},
		{"map[string]any", map[string]any{"X-Test": "v"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New("", Init{InitHeaders: tt.headers}, nil)
			assert.Equal(t, "v", c.Headers().Get("X-Test"))
		})
	}

	assert.Empty(t, Container{}.Headers())
}
