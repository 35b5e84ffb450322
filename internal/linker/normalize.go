package linker

import (
	"strconv"
	"strings"
)

// orderPrefixes are stripped from raw order numbers before matching.
// Longest-first so "ORDER-" wins over "ORD".
var orderPrefixes = []string{"ORDER-", "ORDER", "ORD-", "ORD", "#"}

// NormalizeOrderKey canonicalizes a raw order identifier for equality-based
// joining: trims whitespace, strips known prefixes, drops leading zeros on
// purely numeric values, and uppercases the result. The empty string marks an
// unkeyable record. Idempotent: NormalizeOrderKey(NormalizeOrderKey(x)) ==
// NormalizeOrderKey(x) for all x.
func NormalizeOrderKey(raw string) string {
	key := strings.TrimSpace(raw)
	if key == "" {
		return ""
	}

	// Strip prefixes until none match, so repeated application is a no-op.
	for stripped := true; stripped; {
		stripped = false
		upper := strings.ToUpper(key)
		for _, prefix := range orderPrefixes {
			if strings.HasPrefix(upper, prefix) {
				key = strings.TrimSpace(key[len(prefix):])
				stripped = true
				break
			}
		}
	}

	if isDigits(key) {
		if n, err := strconv.ParseUint(key, 10, 64); err == nil {
			key = strconv.FormatUint(n, 10)
		}
	}

	return strings.ToUpper(key)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
