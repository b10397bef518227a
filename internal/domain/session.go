package domain

import "fmt"

type CartItem struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

// Cart keeps items in the order the registrant added them.
type Cart struct {
	Items []CartItem `json:"items"`
}

func (c *Cart) Add(product string, quantity int) {
	c.Items = append(c.Items, CartItem{Product: product, Quantity: quantity})
}

func (c *Cart) Reset() {
	c.Items = nil
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Units is the number of physical units the cart expands to.
func (c Cart) Units() int {
	n := 0
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// UnitDetail is the product detail stored for one expanded unit.
func UnitDetail(product string) string {
	return fmt.Sprintf("%s x1", product)
}

// Session is the per-visitor state: a registrant's cart and, for shop staff,
// the authenticated shop.
type Session struct {
	ID     string `json:"id"`
	Cart   Cart   `json:"cart"`
	ShopID string `json:"shop_id,omitempty"`
}

func (s *Session) LoggedIn() bool {
	return s.ShopID != ""
}

func (s *Session) Login(shopID string) {
	s.ShopID = shopID
}

func (s *Session) Logout() {
	s.ShopID = ""
}
