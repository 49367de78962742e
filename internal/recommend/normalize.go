// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package recommend

import "strings"

// fillerPrefixes are leading phrases an upstream language model tends to
// leave in its search term. Each is removed with its trailing space.
// Longer phrases come first so "they must be of " wins over "must be of ".
var fillerPrefixes = []string{
	"they must be of ",
	"must be of ",
	"find me ",
	"show me ",
}

// NormalizeQuery lower-cases and trims q and strips any leading filler
// prefixes, repeatedly, so "show me find me drills" becomes "drills".
func NormalizeQuery(q string) string {
	q = strings.ToLower(strings.TrimSpace(q))
	for {
		stripped := false
		for _, prefix := range fillerPrefixes {
			if q == strings.TrimSpace(prefix) {
				return ""
			}
			if rest, ok := strings.CutPrefix(q, prefix); ok {
				q = strings.TrimSpace(rest)
				stripped = true
				break
			}
		}
		if !stripped {
			return q
		}
	}
}
