// Package resolve turns a response into the value a caller asked for.
//
// A resolution kind names the extraction: arraybuffer, blob, formdata, json,
// response or text, case-insensitively. Any other kind is used verbatim as
// the name of an extension registered on the Resolver.
package resolve

import (
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"sync"
)

// Method names of the built-in extractions.
const (
	MethodArrayBuffer = "arrayBuffer"
	MethodBlob        = "blob"
	MethodFormData    = "formData"
	MethodJSON        = "json"
	MethodResponse    = "response"
	MethodText        = "text"
)

var methodNames = map[string]string{
	"arraybuffer": MethodArrayBuffer,
	"blob":        MethodBlob,
	"formdata":    MethodFormData,
	"json":        MethodJSON,
	"response":    MethodResponse,
	"text":        MethodText,
}

// ErrUnsupportedMethod is matched by errors returned for kinds the response
// cannot be resolved as.
var ErrUnsupportedMethod = errors.New("unsupported resolution method")

// UnsupportedMethodError reports a method with no built-in or extension.
type UnsupportedMethodError struct {
	Method string
}

func (e *UnsupportedMethodError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnsupportedMethod, e.Method)
}

// Is reports whether target is ErrUnsupportedMethod.
func (e *UnsupportedMethodError) Is(target error) bool {
	return target == ErrUnsupportedMethod
}

// Blob is a body together with its media type.
type Blob struct {
	Type string
	Data []byte
}

// Size returns the length of the blob data.
func (b Blob) Size() int {
	return len(b.Data)
}

// Response is the set of extraction operations a response offers.
// A body may be consumed only once; Clone yields an unread copy.
type Response interface {
	ArrayBuffer() ([]byte, error)
	Blob() (Blob, error)
	FormData() (*multipart.Form, error)
	JSON() (any, error)
	Text() (string, error)
	Clone() (Response, error)
}

// Empty is the result of resolving an empty body as JSON. It is distinct from
// nil, which is what a JSON null decodes to.
type Empty struct{}

// IsEmpty reports whether v is the Empty marker.
func IsEmpty(v any) bool {
	_, ok := v.(Empty)
	return ok
}

// ExtractFunc is an extension extraction.
type ExtractFunc func(res Response) (any, error)

// MethodName maps a resolution kind to a method name. An empty kind means
// "response"; unknown kinds are returned unchanged.
func MethodName(kind string) string {
	if kind == "" {
		return MethodResponse
	}
	if m, ok := methodNames[strings.ToLower(kind)]; ok {
		return m
	}
	return kind
}

// Resolver resolves responses and holds extension extractions.
// It is safe for concurrent use.
type Resolver struct {
	mu         sync.RWMutex
	extensions map[string]ExtractFunc
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithExtension registers fn under name.
func WithExtension(name string, fn ExtractFunc) Option {
	return func(r *Resolver) {
		r.extensions[name] = fn
	}
}

// NewResolver creates a Resolver with the given options.
func NewResolver(options ...Option) *Resolver {
	r := &Resolver{extensions: make(map[string]ExtractFunc)}
	for _, option := range options {
		option(r)
	}
	return r
}

// Register installs fn under name, replacing any previous extension. Names
// are matched verbatim.
func (r *Resolver) Register(name string, fn ExtractFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.extensions[name] = fn
}

func (r *Resolver) extension(name string) (ExtractFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.extensions[name]
	return fn, ok
}

// Resolve extracts a value from res according to kind.
//
// "response" returns res itself without touching the body. "json" first
// reads a clone as text and returns Empty for an empty body; otherwise the
// JSON extraction of res is returned. Extraction errors are returned as is.
func (r *Resolver) Resolve(res Response, kind string) (any, error) {
	method := MethodName(kind)

	switch method {
	case MethodResponse:
		return res, nil
	case MethodJSON:
		clone, err := res.Clone()
		if err != nil {
			return nil, err
		}
		text, err := clone.Text()
		if err != nil {
			return nil, err
		}
		if len(text) == 0 {
			return Empty{}, nil
		}
		return res.JSON()
	case MethodArrayBuffer:
		return res.ArrayBuffer()
	case MethodBlob:
		return res.Blob()
	case MethodFormData:
		return res.FormData()
	case MethodText:
		return res.Text()
	}

	if fn, ok := r.extension(method); ok {
		return fn(res)
	}
	return nil, &UnsupportedMethodError{Method: method}
}

var defaultResolver = NewResolver()

// Default returns the package-level Resolver used by Resolve.
func Default() *Resolver {
	return defaultResolver
}

// Resolve resolves res with the default Resolver.
func Resolve(res Response, kind string) (any, error) {
	return defaultResolver.Resolve(res, kind)
}
