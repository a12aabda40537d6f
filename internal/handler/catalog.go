package handler

import (
	"net/http"
	"net/url"
	"strconv"

	"storefront/internal/model"
	"storefront/internal/search"
	"storefront/internal/shop"
)

// defaultPageSize bounds search pages when the client does not ask for a size.
const defaultPageSize = 24

// maxPageSize caps what a client may request in one page.
const maxPageSize = 100

func (h *Handler) handleMenu(w http.ResponseWriter, r *http.Request) {
	_, ctx := h.begin(r)

	items, err := h.shop.Menu(ctx)
	if err != nil {
		h.writeError(w, err)
		return
	}

	setCacheHeader(w, cacheForce)
	h.writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h *Handler) handleCollections(w http.ResponseWriter, r *http.Request) {
	_, ctx := h.begin(r)

	items, err := h.shop.Collections(ctx)
	if err != nil {
		h.writeError(w, err)
		return
	}

	setCacheHeader(w, cacheForce)
	h.writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// handleCollection returns a collection plus its products, filtered and
// sorted by the URL query state.
func (h *Handler) handleCollection(w http.ResponseWriter, r *http.Request) {
	_, ctx := h.begin(r)
	slug := r.PathValue("slug")

	collection, err := h.shop.Collection(ctx, slug)
	if err != nil {
		h.writeError(w, err)
		return
	}

	in := searchInputFromQuery(r.URL.Query())
	in.CollectionSlug = slug
	results, err := h.shop.SearchProducts(ctx, in)
	if err != nil {
		h.writeError(w, err)
		return
	}

	setCacheHeader(w, cacheForce)
	h.writeJSON(w, http.StatusOK, map[string]any{
		"collection": collection,
		"results":    results,
	})
}

func (h *Handler) handleProduct(w http.ResponseWriter, r *http.Request) {
	_, ctx := h.begin(r)

	product, err := h.shop.Product(ctx, r.PathValue("slug"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	setCacheHeader(w, cacheForce)
	h.writeJSON(w, http.StatusOK, product)
}

// handleSearch runs a faceted product search from URL query state. Facet
// selections live under their facet codes; q and sort are reserved.
func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	_, ctx := h.begin(r)

	in := searchInputFromQuery(r.URL.Query())
	results, err := h.shop.SearchProducts(ctx, in)
	if err != nil {
		h.writeError(w, err)
		return
	}

	setCacheHeader(w, cacheForce)
	h.writeJSON(w, http.StatusOK, map[string]any{
		"results": results,
		"sorts":   search.Sorts,
	})
}

func (h *Handler) handleCountries(w http.ResponseWriter, r *http.Request) {
	_, ctx := h.begin(r)

	countries, err := h.shop.AvailableCountries(ctx)
	if err != nil {
		h.writeError(w, err)
		return
	}

	setCacheHeader(w, cacheForce)
	h.writeJSON(w, http.StatusOK, map[string]any{"items": countries})
}

// searchInputFromQuery maps URL query state to a search input: q, sort, page,
// take, and every remaining parameter as a facet selection.
func searchInputFromQuery(values url.Values) shop.SearchInput {
	sort := search.SortFromSlug(values.Get(search.KeySort))

	in := shop.SearchInput{
		Term:      values.Get(search.KeyQuery),
		SortKey:   sort.SortKey,
		Direction: sort.Direction,
		Take:      defaultPageSize,
	}

	if take, err := strconv.Atoi(values.Get("take")); err == nil && take > 0 {
		if take > maxPageSize {
			take = maxPageSize
		}
		in.Take = take
	}
	if page, err := strconv.Atoi(values.Get("page")); err == nil && page > 1 {
		in.Skip = (page - 1) * in.Take
	}

	for _, code := range search.FacetCodes(values) {
		if code == "take" || code == "page" {
			continue
		}
		ids := search.GetFacetValue(values, code)
		if len(ids) == 0 {
			continue
		}
		in.FacetValueFilters = append(in.FacetValueFilters, model.FacetValueFilter{Or: ids})
	}

	return in
}
