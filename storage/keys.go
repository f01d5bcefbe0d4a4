package storage

import (
	"strings"
)

// KeyFromURL derives the object key from a full public URL: the
// public host prefix and any query string are stripped. A URL not
// under the known prefix yields "" and is skipped by KeysFromURLs,
// so foreign URLs never turn into delete calls.
func KeyFromURL(publicURL, rawURL string) string {
	if publicURL == "" || rawURL == "" {
		return ""
	}

	prefix := strings.TrimSuffix(publicURL, "/") + "/"
	if !strings.HasPrefix(rawURL, prefix) {
		return ""
	}

	key := strings.TrimPrefix(rawURL, prefix)
	if idx := strings.IndexByte(key, '?'); idx >= 0 {
		key = key[:idx]
	}
	return key
}

// KeysFromURLs maps stored image URLs to object keys, silently
// dropping URLs that do not belong to the configured bucket.
func KeysFromURLs(publicURL string, urls []string) []string {
	keys := make([]string, 0, len(urls))
	for _, u := range urls {
		if key := KeyFromURL(publicURL, u); key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}
