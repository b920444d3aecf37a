package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/wesleyorama2/fetchkit/internal/resolve"
)

// maxFormMemory bounds the multipart parts kept in memory.
const maxFormMemory = 32 << 20

var (
	// ErrBodyUsed is returned when a body is read a second time.
	ErrBodyUsed = errors.New("response body already used")
	// ErrUnsupportedContentType is returned by FormData for bodies that are
	// not form encoded.
	ErrUnsupportedContentType = errors.New("unsupported content type")
)

// Response represents an HTTP response with a buffered body.
//
// Like a fetch response its body can be consumed once: the second extraction
// fails with ErrBodyUsed. Clone an unread Response to read the body again.
type Response struct {
	StatusCode   int
	Status       string
	Headers      http.Header
	ResponseTime time.Duration
	Timing       TimingInfo

	mu       sync.Mutex
	body     []byte
	bodyUsed bool
}

var _ resolve.Response = (*Response)(nil)

// NewResponse builds a Response from its parts.
func NewResponse(statusCode int, headers http.Header, body []byte) *Response {
	if headers == nil {
		headers = make(http.Header)
	}
	return &Response{
		StatusCode: statusCode,
		Status:     fmt.Sprintf("%d %s", statusCode, http.StatusText(statusCode)),
		Headers:    headers,
		body:       body,
	}
}

func (r *Response) consume() ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.bodyUsed {
		return nil, ErrBodyUsed
	}
	r.bodyUsed = true
	return r.body, nil
}

// BodyUsed reports whether the body has been consumed.
func (r *Response) BodyUsed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bodyUsed
}

// ContentLength returns the size of the buffered body.
func (r *Response) ContentLength() int {
	return len(r.body)
}

// Clone returns an unread copy of r. Cloning a consumed Response fails.
func (r *Response) Clone() (resolve.Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.bodyUsed {
		return nil, ErrBodyUsed
	}
	return &Response{
		StatusCode:   r.StatusCode,
		Status:       r.Status,
		Headers:      r.Headers.Clone(),
		ResponseTime: r.ResponseTime,
		Timing:       r.Timing,
		body:         r.body,
	}, nil
}

// ArrayBuffer returns a copy of the body bytes.
func (r *Response) ArrayBuffer() ([]byte, error) {
	body, err := r.consume()
	if err != nil {
		return nil, err
	}
	return bytes.Clone(body), nil
}

// Blob returns the body together with its Content-Type.
func (r *Response) Blob() (resolve.Blob, error) {
	body, err := r.consume()
	if err != nil {
		return resolve.Blob{}, err
	}
	return resolve.Blob{Type: r.Headers.Get("Content-Type"), Data: bytes.Clone(body)}, nil
}

// FormData parses a urlencoded or multipart body.
func (r *Response) FormData() (*multipart.Form, error) {
	mediaType, params, err := mime.ParseMediaType(r.Headers.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedContentType, err)
	}

	switch mediaType {
	case "application/x-www-form-urlencoded":
		body, err := r.consume()
		if err != nil {
			return nil, err
		}
		values, err := url.ParseQuery(string(body))
		if err != nil {
			return nil, err
		}
		return &multipart.Form{Value: values, File: map[string][]*multipart.FileHeader{}}, nil
	case "multipart/form-data":
		boundary := params["boundary"]
		if boundary == "" {
			return nil, fmt.Errorf("%w: multipart body without boundary", ErrUnsupportedContentType)
		}
		body, err := r.consume()
		if err != nil {
			return nil, err
		}
		return multipart.NewReader(bytes.NewReader(body), boundary).ReadForm(maxFormMemory)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedContentType, mediaType)
}

// JSON decodes the body.
func (r *Response) JSON() (any, error) {
	body, err := r.consume()
	if err != nil {
		return nil, err
	}
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// Text returns the body as a string.
func (r *Response) Text() (string, error) {
	body, err := r.consume()
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// GetHeader returns the value of the specified header
func (r *Response) GetHeader(key string) string {
	return r.Headers.Get(key)
}

// IsSuccess returns true if the response status code is in the 2xx range
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsRedirect returns true if the response status code is in the 3xx range
func (r *Response) IsRedirect() bool {
	return r.StatusCode >= 300 && r.StatusCode < 400
}

// IsClientError returns true if the response status code is in the 4xx range
func (r *Response) IsClientError() bool {
	return r.StatusCode >= 400 && r.StatusCode < 500
}

// IsServerError returns true if the response status code is in the 5xx range
func (r *Response) IsServerError() bool {
	return r.StatusCode >= 500 && r.StatusCode < 600
}
