package domain

import "strings"

// PageSize is the number of entries each "more" step reveals.
const PageSize = 20

// IndexLimit is the fixed upper bound of entries fetched by the index request.
const IndexLimit = 1008

// Page returns the first shown+PageSize entries of all. Once shown covers all,
// it returns all unchanged.
func Page(all []PokemonSummary, shown int) []PokemonSummary {
	if shown < 0 {
		shown = 0
	}

	limit := shown + PageSize
	if limit > len(all) {
		limit = len(all)
	}

	return all[:limit]
}

// HasMore reports whether the "More" control should be offered. A single shown
// entry is the result of a search submission and never paginates.
func HasMore(all []PokemonSummary, shown int) bool {
	return len(all) > shown && shown != 1
}

// FilterNames returns every entry whose name contains query, case-insensitive,
// in index order. An empty query matches nothing.
func FilterNames(all []PokemonSummary, query string) []PokemonSummary {
	value := strings.ToLower(query)
	if value == "" {
		return []PokemonSummary{}
	}

	matches := make([]PokemonSummary, 0)
	for _, summary := range all {
		if strings.Contains(strings.ToLower(summary.Name), value) {
			matches = append(matches, summary)
		}
	}

	return matches
}

// Suggest returns autocomplete candidates for query. When the top match is
// exactly the query the suggestion list is suppressed.
func Suggest(all []PokemonSummary, query string) []PokemonSummary {
	matches := FilterNames(all, query)
	if len(matches) > 0 && strings.ToLower(matches[0].Name) == strings.ToLower(query) {
		return []PokemonSummary{}
	}

	return matches
}

// Submit resolves an explicit search: the full match set replaces the displayed
// page and the query field is cleared.
func Submit(all []PokemonSummary, query string) (displayed []PokemonSummary, clearedQuery string) {
	return FilterNames(all, strings.TrimSpace(query)), ""
}
