package domain

// Column positions of a warranty row, 1-indexed.
const (
	ColName = iota + 1
	ColPhone
	ColEmail
	ColInvoice
	ColShop
	ColProductDetail
	ColPurchaseDate
	ColRegisteredAt
	ColRedeemed
	ColRedeemedBy
	ColRedeemedAt

	NumColumns = ColRedeemedAt
)

// HeaderOffset converts a 0-based record index into a row address: row 1 is
// the header, so the first record lives at row 2.
const HeaderOffset = 2
