package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/wesleyorama2/fetchkit/internal/resolve"
)

// ErrPathNotFound is returned when a path matches nothing.
var ErrPathNotFound = errors.New("path not found")

// Path looks up a JSONPath-like expression ("$.users[0].name") in value.
// value may be JSON text, raw bytes or a decoded value.
func Path(value any, path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("empty path expression")
	}

	var doc string
	switch v := value.(type) {
	case string:
		doc = v
	case []byte:
		doc = string(v)
	case resolve.Empty:
		return "", fmt.Errorf("%w: %s (empty body)", ErrPathNotFound, path)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("value is not JSON encodable: %w", err)
		}
		doc = string(data)
	}
	if !gjson.Valid(doc) {
		return "", fmt.Errorf("invalid JSON document")
	}

	result := gjson.Get(doc, gjsonPath(path))
	if !result.Exists() {
		return "", fmt.Errorf("%w: %s", ErrPathNotFound, path)
	}
	if result.Type == gjson.Null {
		return "null", nil
	}
	return result.String(), nil
}

// gjsonPath rewrites "$.a[0]['b']" into "a.0.b".
func gjsonPath(path string) string {
	path = strings.TrimPrefix(path, "$")
	path = strings.TrimPrefix(path, ".")
	if path == "" {
		return "@this"
	}

	r := strings.NewReplacer("['", ".", "']", "", `["`, ".", `"]`, "", "[", ".", "]", "")
	return strings.TrimPrefix(r.Replace(path), ".")
}
