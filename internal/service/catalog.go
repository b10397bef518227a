package service

import "slices"

// Catalog is the static configuration the workflow checks against: the shops
// that sell the product line, their passcodes and the product variants.
// Empty lists accept any value.
type Catalog struct {
	Shops     []string
	Products  []string
	Passcodes map[string]string
}

func (c Catalog) KnownShop(shop string) bool {
	return len(c.Shops) == 0 || slices.Contains(c.Shops, shop)
}

func (c Catalog) KnownProduct(product string) bool {
	return len(c.Products) == 0 || slices.Contains(c.Products, product)
}
