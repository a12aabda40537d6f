// Package search manages product search state carried in URL query
// parameters: free-text query, sort order, and facet filters. Facet
// selections are comma-joined under the facet code so a filtered view stays a
// shareable URL.
package search

import (
	"net/url"
	"strings"
)

// Reserved query keys that are never facet codes.
const (
	KeyQuery = "q"
	KeySort  = "sort"
)

// Sort directions for product search.
const (
	DirectionAsc  = "ASC"
	DirectionDesc = "DESC"
)

// Sort keys recognized by the shop API.
const (
	SortByName  = "name"
	SortByPrice = "price"
)

// Sort is a product ordering choice addressable by its URL slug.
type Sort struct {
	Slug      string `json:"slug"`
	Label     string `json:"label"`
	SortKey   string `json:"-"`
	Direction string `json:"-"`
}

// Sorts lists the available orderings. The first entry is the default.
var Sorts = []Sort{
	{Slug: "name-asc", Label: "Name: A to Z", SortKey: SortByName, Direction: DirectionAsc},
	{Slug: "name-desc", Label: "Name: Z to A", SortKey: SortByName, Direction: DirectionDesc},
	{Slug: "price-asc", Label: "Price: Low to High", SortKey: SortByPrice, Direction: DirectionAsc},
	{Slug: "price-desc", Label: "Price: High to Low", SortKey: SortByPrice, Direction: DirectionDesc},
}

// DefaultSort is used when the slug is absent or unrecognized.
var DefaultSort = Sorts[0]

// SortFromSlug resolves a URL slug to a sort choice. Unknown or empty slugs
// fall back to the default rather than erroring, so stale links keep working.
func SortFromSlug(slug string) Sort {
	for _, s := range Sorts {
		if s.Slug == slug {
			return s
		}
	}
	return DefaultSort
}

// GetFacetValue returns the selected value ids for a facet code. An absent or
// empty parameter yields an empty slice. Reserved keys never resolve to facet
// selections.
func GetFacetValue(values url.Values, code string) []string {
	if code == KeyQuery || code == KeySort {
		return nil
	}
	raw := values.Get(code)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// SetFacetValue writes the selection for a facet code, comma-joining the ids.
// An empty selection removes the parameter entirely so cleared filters leave
// no residue in the URL.
func SetFacetValue(values url.Values, code string, ids []string) {
	if code == KeyQuery || code == KeySort {
		return
	}
	kept := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" {
			kept = append(kept, id)
		}
	}
	if len(kept) == 0 {
		values.Del(code)
		return
	}
	values.Set(code, strings.Join(kept, ","))
}

// FacetCodes returns the facet codes present in the query, excluding the
// reserved keys.
func FacetCodes(values url.Values) []string {
	codes := make([]string, 0, len(values))
	for k := range values {
		if k == KeyQuery || k == KeySort {
			continue
		}
		codes = append(codes, k)
	}
	return codes
}
