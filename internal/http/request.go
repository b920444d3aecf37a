package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/wesleyorama2/fetchkit/internal/container"
)

// credentialHeaders are removed when init.credentials is "omit".
var credentialHeaders = []string{"Authorization", "Cookie", "Proxy-Authorization"}

// BuildRequest constructs an http.Request from an effective Container.
//
// The body is passed through the container's payload transform first. Strings,
// byte slices and readers are sent as is, url.Values are form encoded and
// anything else is encoded as JSON.
func BuildRequest(ctx context.Context, c container.Container) (*http.Request, error) {
	if c.URL == "" {
		return nil, fmt.Errorf("request URL is empty")
	}
	reqURL := container.AppendQuery(c.URL, c.Query())
	if _, err := url.Parse(reqURL); err != nil {
		return nil, fmt.Errorf("invalid request URL: %w", err)
	}

	headers := c.Headers()
	body, contentType, err := encodeBody(container.PreparePayload(c)(c.Body()))
	if err != nil {
		return nil, err
	}
	if contentType != "" && headers.Get("Content-Type") == "" {
		headers.Set("Content-Type", contentType)
	}

	req, err := http.NewRequestWithContext(ctx, c.Method(), reqURL, body)
	if err != nil {
		return nil, err
	}
	req.Header = headers

	if strings.EqualFold(c.Credentials(), "omit") {
		for _, h := range credentialHeaders {
			req.Header.Del(h)
		}
	}

	return req, nil
}

func encodeBody(payload any) (io.Reader, string, error) {
	switch body := payload.(type) {
	case nil:
		return nil, "", nil
	case string:
		return strings.NewReader(body), "", nil
	case []byte:
		return bytes.NewReader(body), "", nil
	case io.Reader:
		return body, "", nil
	case url.Values:
		return strings.NewReader(body.Encode()), "application/x-www-form-urlencoded", nil
	default:
		data, err := json.Marshal(body)
		if err != nil {
			return nil, "", fmt.Errorf("failed to marshal request body: %w", err)
		}
		return bytes.NewReader(data), "application/json", nil
	}
}
