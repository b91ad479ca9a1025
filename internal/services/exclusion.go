package services

import "strings"

// IsExcluded reports whether any of the transaction's tags exactly matches
// one of the configured keywords, ignoring case and surrounding whitespace.
// Tags are the only exclusion mechanism; descriptions are never inspected.
// On a match it returns the keyword that matched.
func IsExcluded(tags, keywords []string) (string, bool) {
	if len(tags) == 0 || len(keywords) == 0 {
		return "", false
	}

	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		for _, keyword := range keywords {
			if tag == strings.ToLower(strings.TrimSpace(keyword)) {
				return keyword, true
			}
		}
	}

	return "", false
}
