package ai

import (
	"net/url"
	"strings"
)

// trackingParams are stripped from imported posting links.
var trackingParams = map[string]struct{}{
	"utm_source":   {},
	"utm_medium":   {},
	"utm_campaign": {},
	"utm_term":     {},
	"utm_content":  {},
	"ref":          {},
	"source":       {},
	"click_id":     {},
	"fbclid":       {},
	"gclid":        {},
}

// CleanTrackingParams removes known tracking query parameters from a URL,
// preserving the order of the remaining parameters. Input that does not
// parse as a URL is returned unchanged.
func CleanTrackingParams(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return raw
	}
	if parsed.RawQuery == "" {
		return raw
	}

	kept := make([]string, 0)
	for _, pair := range strings.Split(parsed.RawQuery, "&") {
		if pair == "" {
			continue
		}
		key := pair
		if idx := strings.Index(pair, "="); idx >= 0 {
			key = pair[:idx]
		}
		if decoded, err := url.QueryUnescape(key); err == nil {
			key = decoded
		}
		if _, drop := trackingParams[strings.ToLower(key)]; drop {
			continue
		}
		kept = append(kept, pair)
	}

	parsed.RawQuery = strings.Join(kept, "&")
	return parsed.String()
}
