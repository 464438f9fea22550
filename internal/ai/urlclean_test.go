package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanTrackingParams(t *testing.T) {
	cases := map[string]struct {
		in   string
		want string
	}{
		"strips tracking keeps rest": {
			"https://example.com/a?utm_source=x&ref=y&keep=1",
			"https://example.com/a?keep=1",
		},
		"no query untouched": {
			"https://example.com/a",
			"https://example.com/a",
		},
		"only tracking params": {
			"https://example.com/a?utm_campaign=spring&gclid=abc",
			"https://example.com/a",
		},
		"preserves order": {
			"https://example.com/a?b=2&utm_medium=email&a=1",
			"https://example.com/a?b=2&a=1",
		},
		"case insensitive keys": {
			"https://example.com/a?UTM_SOURCE=x&keep=1",
			"https://example.com/a?keep=1",
		},
		"fbclid stripped": {
			"https://example.com/a?fbclid=xyz&id=9",
			"https://example.com/a?id=9",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, CleanTrackingParams(tc.in))
		})
	}
}

func TestCleanTrackingParamsNonURL(t *testing.T) {
	for _, raw := range []string{"not a url", "", "example.com/a?utm_source=x", "://bad"} {
		assert.Equal(t, raw, CleanTrackingParams(raw))
	}
}
