package container

import (
	"net/http"
	"strings"
)

// Init holds transport-level request settings such as method, headers and body.
type Init map[string]any

// Options holds behavior settings such as the resolution kind and a payload
// transform.
type Options map[string]any

// Recognized Init keys.
const (
	InitMethod      = "method"
	InitHeaders     = "headers"
	InitBody        = "body"
	InitCredentials = "credentials"
)

// Recognized Options keys.
const (
	OptionResolveAs = "resolveAs"
	OptionPayloadAs = "payloadAs"
	OptionQuery     = "query"
)

// Container is a partial request configuration.
type Container struct {
	URL     string
	Init    Init
	Options Options
}

// New builds a Container from its three parts.
func New(url string, init Init, options Options) Container {
	return Container{URL: url, Init: init, Options: options}
}

// Merge combines a and b. URLs are joined with CombineURLs; Init and Options
// are merged key by key with b's keys winning. Neither input is modified.
func Merge(a, b Container) Container {
	return Container{
		URL:     CombineURLs(a.URL, b.URL),
		Init:    Init(mergeMaps(a.Init, b.Init)),
		Options: Options(mergeMaps(a.Options, b.Options)),
	}
}

// MergeAll folds Merge over cs from left to right.
func MergeAll(cs ...Container) Container {
	out := Merge(Container{}, Container{})
	for _, c := range cs {
		out = Merge(out, c)
	}
	return out
}

// With returns Merge(c, delta).
func (c Container) With(delta Container) Container {
	return Merge(c, delta)
}

// Clone returns a copy of c whose maps are not shared with c.
func (c Container) Clone() Container {
	return Merge(c, Container{})
}

func mergeMaps(a, b map[string]any) map[string]any {
	out := make(map[string]any, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

// Method returns the upper-cased init method, or GET when unset.
func (c Container) Method() string {
	if m, ok := c.Init[InitMethod].(string); ok && m != "" {
		return strings.ToUpper(m)
	}
	return http.MethodGet
}

// Body returns the raw init body.
func (c Container) Body() any {
	return c.Init[InitBody]
}

// Headers returns the init headers as an http.Header. Supported shapes are
// http.Header, map[string]string, map[string][]string and map[string]any.
func (c Container) Headers() http.Header {
	h := make(http.Header)
	switch v := c.Init[InitHeaders].(type) {
	case http.Header:
		for k, vals := range v {
			for _, val := range vals {
				h.Add(k, val)
			}
		}
	case map[string][]string:
		for k, vals := range v {
			for _, val := range vals {
				h.Add(k, val)
			}
		}
	case map[string]string:
		for k, val := range v {
			h.Set(k, val)
		}
	case map[string]any:
		for k, val := range v {
			h.Set(k, stringify(val))
		}
	}
	return h
}

// Credentials returns the init credentials mode.
func (c Container) Credentials() string {
	s, _ := c.Init[InitCredentials].(string)
	return s
}

// ResolveAs returns the resolution kind hint, or "" when unset.
func (c Container) ResolveAs() string {
	s, _ := c.Options[OptionResolveAs].(string)
	return s
}

// PayloadAs returns the configured payload transform, or nil.
func (c Container) PayloadAs() PayloadFunc {
	switch fn := c.Options[OptionPayloadAs].(type) {
	case PayloadFunc:
		return fn
	case func(any) any:
		return fn
	}
	return nil
}

// Query returns the query parameters option.
func (c Container) Query() Query {
	q, _ := c.Options[OptionQuery].(Query)
	return q
}

// WithMethod returns a delta container setting the request method.
func WithMethod(method string) Container {
	return Container{Init: Init{InitMethod: method}}
}

// WithHeaders returns a delta container setting the request headers.
// Headers replace any headers set earlier; they are not merged.
func WithHeaders(headers map[string]string) Container {
	return Container{Init: Init{InitHeaders: headers}}
}

// WithBody returns a delta container setting the request body.
func WithBody(body any) Container {
	return Container{Init: Init{InitBody: body}}
}

// WithResolveAs returns a delta container setting the resolution kind.
func WithResolveAs(kind string) Container {
	return Container{Options: Options{OptionResolveAs: kind}}
}

// WithPayloadAs returns a delta container setting the payload transform.
func WithPayloadAs(fn PayloadFunc) Container {
	return Container{Options: Options{OptionPayloadAs: fn}}
}

// WithQuery returns a delta container setting the query parameters.
func WithQuery(q Query) Container {
	return Container{Options: Options{OptionQuery: q}}
}
