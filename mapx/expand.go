package mapx

import (
	"net/url"
	"slices"
)

// Expand turns bracketed form keys into nested maps, keeping the first value
// of every key: "user[wallet]=x" becomes {"user": {"wallet": "x"}}.
// Keys are applied in sorted order; a key that would overwrite an existing
// scalar, or nest below one, is skipped.
func Expand(values url.Values) map[string]any {
	out := make(map[string]any, len(values))
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		vs := values[key]
		if len(vs) == 0 {
			continue
		}
		set(out, ParsePath(key).segments, vs[0])
	}
	return out
}

func set(node map[string]any, segments []string, value string) {
	for i, seg := range segments {
		if i == len(segments)-1 {
			if _, exists := node[seg]; !exists {
				node[seg] = value
			}
			return
		}
		next, exists := node[seg]
		if !exists {
			m := make(map[string]any)
			node[seg] = m
			node = m
			continue
		}
		m, ok := next.(map[string]any)
		if !ok {
			return
		}
		node = m
	}
}
