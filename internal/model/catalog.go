package model

// Channel is the active sales channel advertised by the shop API.
type Channel struct {
	ID              string `json:"id"`
	Code            string `json:"code"`
	Token           string `json:"token"`
	DefaultCurrency string `json:"defaultCurrencyCode"`
	DefaultLanguage string `json:"defaultLanguageCode"`
}

// Collection is a curated grouping of products, also used for menu entries.
type Collection struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Slug        string      `json:"slug"`
	Description string      `json:"description,omitempty"`
	Parent      *Collection `json:"parent,omitempty"`
}

// Product is a catalog product with its purchasable variants.
type Product struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Slug        string           `json:"slug"`
	Description string           `json:"description,omitempty"`
	Variants    []ProductVariant `json:"variants,omitempty"`
	FacetValues []FacetValue     `json:"facetValues,omitempty"`
}

// ProductVariant is the purchasable unit referenced by order lines.
type ProductVariant struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	SKU          string   `json:"sku,omitempty"`
	Price        int64    `json:"price,omitempty"`
	PriceWithTax int64    `json:"priceWithTax,omitempty"`
	Currency     string   `json:"currencyCode,omitempty"`
	StockLevel   string   `json:"stockLevel,omitempty"`
	Product      *Product `json:"product,omitempty"`
}

// Facet is a filter dimension (e.g. color) with its selectable values.
type Facet struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Code   string       `json:"code"`
	Values []FacetValue `json:"values"`
}

// FacetValue is one selectable value of a facet.
type FacetValue struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Code  string `json:"code"`
	Facet *Facet `json:"facet,omitempty"`
}

// SearchResult is a single product hit from the search index.
// Prices come back as either a single value or a range; Min/Max carry both.
type SearchResult struct {
	ProductID       string `json:"productId"`
	ProductName     string `json:"productName"`
	Slug            string `json:"slug"`
	Description     string `json:"description,omitempty"`
	Currency        string `json:"currencyCode"`
	PriceWithTaxMin int64  `json:"priceWithTaxMin"`
	PriceWithTaxMax int64  `json:"priceWithTaxMax"`
}

// Country is a shippable destination offered at checkout.
type Country struct {
	ID      string `json:"id"`
	Code    string `json:"code"`
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
}

// FacetValueFilter narrows a product search to given facet value IDs.
// Multiple IDs under Or are matched as alternatives.
type FacetValueFilter struct {
	And string   `json:"and,omitempty"`
	Or  []string `json:"or,omitempty"`
}

// OrderList is a paginated slice of a customer's past orders.
type OrderList struct {
	Items      []Order `json:"items"`
	TotalItems int     `json:"totalItems"`
}
