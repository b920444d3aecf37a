package container

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Param is a single query parameter.
type Param struct {
	Key   string
	Value any
}

// Query is an ordered list of query parameters. Encoding keeps insertion order.
type Query []Param

// Add appends a parameter and returns the extended query.
func (q Query) Add(key string, value any) Query {
	return append(q, Param{Key: key, Value: value})
}

// Set replaces the value of the first parameter named key, or appends it.
// The receiver is not modified.
func (q Query) Set(key string, value any) Query {
	out := make(Query, len(q))
	copy(out, q)
	for i := range out {
		if out[i].Key == key {
			out[i].Value = value
			return out
		}
	}
	return append(out, Param{Key: key, Value: value})
}

// Get returns the value of the first parameter named key.
func (q Query) Get(key string) (any, bool) {
	for _, p := range q {
		if p.Key == key {
			return p.Value, true
		}
	}
	return nil, false
}

// QueryFromValues converts url.Values into a Query. Keys are sorted, values
// of a repeated key keep their order.
func QueryFromValues(values url.Values) Query {
	if len(values) == 0 {
		return nil
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var q Query
	for _, k := range keys {
		for _, v := range values[k] {
			q = q.Add(k, v)
		}
	}
	return q
}

// CreateQuery renders q as "k1=v1&k2=v2" without a leading "?". Values are
// encoded with URI component rules, keys are written verbatim.
func CreateQuery(q Query) string {
	if len(q) == 0 {
		return ""
	}
	pairs := make([]string, 0, len(q))
	for _, p := range q {
		pairs = append(pairs, p.Key+"="+EncodeURIComponent(stringify(p.Value)))
	}
	return strings.Join(pairs, "&")
}

// AppendQuery appends the encoded query to rawURL, choosing "?" or "&".
func AppendQuery(rawURL string, q Query) string {
	qs := CreateQuery(q)
	if qs == "" {
		return rawURL
	}
	sep := "?"
	if strings.Contains(rawURL, "?") {
		sep = "&"
		if strings.HasSuffix(rawURL, "?") || strings.HasSuffix(rawURL, "&") {
			sep = ""
		}
	}
	return rawURL + sep + qs
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

const upperhex = "0123456789ABCDEF"

// EncodeURIComponent percent-encodes every byte of s except the unreserved
// characters A-Z a-z 0-9 - _ . ! ~ * ' ( ).
// Neither url.QueryEscape nor url.PathEscape uses this set.
func EncodeURIComponent(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
