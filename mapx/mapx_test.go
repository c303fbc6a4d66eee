package mapx_test

import (
	"net/url"
	"testing"

	"github.com/axent-pl/selfkey/mapx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		field string
		want  []string
	}{
		{field: "nonce", want: []string{"nonce"}},
		{field: "a[b][c]", want: []string{"a", "b", "c"}},
		{field: "user[wallet][address]", want: []string{"user", "wallet", "address"}},
		{field: "a[]", want: []string{"a", ""}},
		{field: "a]b", want: []string{"ab"}},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			p := mapx.ParsePath(tt.field)
			assert.Equal(t, tt.want, p.Segments())
			assert.Equal(t, tt.field, p.String())
		})
	}
}

func TestPath_SegmentsIsACopy(t *testing.T) {
	p := mapx.ParsePath("a[b]")
	segs := p.Segments()
	segs[0] = "x"
	assert.Equal(t, []string{"a", "b"}, p.Segments())
}

func TestLookup(t *testing.T) {
	type named map[string]string

	tests := []struct {
		name   string
		root   any
		field  string
		want   any
		wantOK bool
	}{
		{
			name:   "flat field",
			root:   map[string]any{"nonce": "abc"},
			field:  "nonce",
			want:   "abc",
			wantOK: true,
		},
		{
			name:   "absent root",
			root:   nil,
			field:  "nonce",
			wantOK: false,
		},
		{
			name:   "nil map root",
			root:   map[string]any(nil),
			field:  "nonce",
			wantOK: false,
		},
		{
			name:   "natural nesting is not resolved",
			root:   map[string]any{"a": map[string]any{"b": map[string]any{"c": 5}}},
			field:  "a[b][c]",
			wantOK: false,
		},
		{
			name:   "innermost segment found first at the root",
			root:   map[string]any{"c": 5},
			field:  "a[b][c]",
			want:   5,
			wantOK: true,
		},
		{
			name:   "reverse nesting resolves",
			root:   map[string]any{"c": map[string]any{"b": map[string]any{"a": "leaf"}}},
			field:  "a[b][c]",
			want:   "leaf",
			wantOK: true,
		},
		{
			name:   "scalar stops traversal early",
			root:   map[string]any{"c": map[string]any{"b": "early"}},
			field:  "a[b][c]",
			want:   "early",
			wantOK: true,
		},
		{
			name:   "traversal ends on container",
			root:   map[string]any{"c": map[string]any{"b": map[string]any{"a": map[string]any{}}}},
			field:  "a[b][c]",
			wantOK: false,
		},
		{
			name:   "missing intermediate key",
			root:   map[string]any{"c": map[string]any{"x": "y"}},
			field:  "a[b][c]",
			wantOK: false,
		},
		{
			name:   "null value is missing",
			root:   map[string]any{"nonce": nil},
			field:  "nonce",
			wantOK: false,
		},
		{
			name:   "null intermediate is missing",
			root:   map[string]any{"b": nil},
			field:  "a[b]",
			wantOK: false,
		},
		{
			name:   "empty string is a scalar",
			root:   map[string]any{"nonce": ""},
			field:  "nonce",
			want:   "",
			wantOK: true,
		},
		{
			name:   "false is a scalar",
			root:   map[string]any{"flag": false},
			field:  "flag",
			want:   false,
			wantOK: true,
		},
		{
			name:   "typed string map",
			root:   named{"pubKey": "0xabc"},
			field:  "pubKey",
			want:   "0xabc",
			wantOK: true,
		},
		{
			name:   "pointer to map",
			root:   &map[string]any{"signature": "sig"},
			field:  "signature",
			want:   "sig",
			wantOK: true,
		},
		{
			name:   "slice index",
			root:   map[string]any{"0": []any{"first"}},
			field:  "0[0]",
			want:   "first",
			wantOK: true,
		},
		{
			name:   "slice index out of range",
			root:   map[string]any{"list": []any{"first"}},
			field:  "3[list]",
			wantOK: false,
		},
		{
			name:   "non string keyed map",
			root:   map[int]any{1: "one"},
			field:  "1",
			wantOK: false,
		},
		{
			name:   "scalar root",
			root:   "plain",
			field:  "nonce",
			wantOK: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := mapx.Lookup(tt.root, tt.field)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			} else {
				assert.Nil(t, got)
			}
		})
	}
}

func TestExpand(t *testing.T) {
	values := url.Values{
		"nonce":                 {"n1", "n2"},
		"user[wallet][address]": {"0xabc"},
		"user[name]":            {"acme"},
		"empty":                 {},
		"flat":                  {"scalar"},
		"flat[nested]":          {"skipped"},
	}

	got := mapx.Expand(values)

	assert.Equal(t, map[string]any{
		"nonce": "n1",
		"user": map[string]any{
			"name":   "acme",
			"wallet": map[string]any{"address": "0xabc"},
		},
		"flat": "scalar",
	}, got)
}

func TestExpand_ThenLookup(t *testing.T) {
	values := url.Values{"address[wallet][user]": {"0xabc"}}

	got, ok := mapx.Lookup(mapx.Expand(values), "user[wallet][address]")

	require.True(t, ok)
	assert.Equal(t, "0xabc", got)
}
