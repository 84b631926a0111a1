package main

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Campos aceitos em sortBy
const (
	SortByName      = "name"
	SortByPrice     = "price"
	SortByQuantity  = "quantity"
	SortByCreatedAt = "createdAt"

	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

// ProductFilter são os parâmetros de busca/ordenação de GET /products
type ProductFilter struct {
	Search      string   `form:"search"`
	MinPrice    *float64 `form:"minPrice"`
	MaxPrice    *float64 `form:"maxPrice"`
	MinQuantity *int     `form:"minQuantity"`
	MaxQuantity *int     `form:"maxQuantity"`
	SortBy      string   `form:"sortBy" binding:"omitempty,oneof=name price quantity createdAt"`
	SortOrder   string   `form:"sortOrder" binding:"omitempty,oneof=asc desc"`
}

// Apply filtra e ordena uma cópia de products.
// Filtros de quantidade descartam produtos sem estoque.
func (f ProductFilter) Apply(products []*Product) []*Product {
	search := strings.ToLower(strings.TrimSpace(f.Search))

	filtered := make([]*Product, 0, len(products))
	for _, p := range products {
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		if f.MinPrice != nil && p.Price.LessThan(decimal.NewFromFloat(*f.MinPrice)) {
			continue
		}
		if f.MaxPrice != nil && p.Price.GreaterThan(decimal.NewFromFloat(*f.MaxPrice)) {
			continue
		}
		if f.MinQuantity != nil && (p.Inventory == nil || p.Inventory.Quantity < *f.MinQuantity) {
			continue
		}
		if f.MaxQuantity != nil && (p.Inventory == nil || p.Inventory.Quantity > *f.MaxQuantity) {
			continue
		}
		filtered = append(filtered, p)
	}

	less := f.lessFunc()
	desc := f.SortOrder == SortOrderDesc
	sort.SliceStable(filtered, func(i, j int) bool {
		if desc {
			return less(filtered[j], filtered[i])
		}
		return less(filtered[i], filtered[j])
	})

	return filtered
}

func (f ProductFilter) lessFunc() func(a, b *Product) bool {
	switch f.SortBy {
	case SortByPrice:
		return func(a, b *Product) bool { return a.Price.LessThan(b.Price) }
	case SortByQuantity:
		return func(a, b *Product) bool { return a.Quantity() < b.Quantity() }
	case SortByCreatedAt:
		return func(a, b *Product) bool { return a.CreatedAt.Before(b.CreatedAt) }
	default:
		return func(a, b *Product) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	}
}

func matchesSearch(p *Product, search string) bool {
	if strings.Contains(strings.ToLower(p.Name), search) {
		return true
	}
	return p.Description != nil && strings.Contains(strings.ToLower(*p.Description), search)
}
