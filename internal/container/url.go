package container

import "strings"

// CombineURLs joins URL segments into one URL.
//
// Empty segments are discarded. A single remaining segment is returned as is.
// Otherwise exactly one slash is placed at each seam between segments; the
// leading slash of the first segment and the trailing slash of the last one
// are left untouched.
func CombineURLs(urls ...string) string {
	valid := make([]string, 0, len(urls))
	for _, u := range urls {
		if len(u) > 0 {
			valid = append(valid, u)
		}
	}

	switch len(valid) {
	case 0:
		return ""
	case 1:
		return valid[0]
	}

	var b strings.Builder
	b.WriteString(valid[0])
	for _, u := range valid[1:] {
		if !strings.HasSuffix(b.String(), "/") {
			b.WriteByte('/')
		}
		// Only one leading slash is stripped; "//x" keeps its second slash.
		b.WriteString(strings.TrimPrefix(u, "/"))
	}
	return b.String()
}
