// Package catalog owns the product records of the storefront: the listing
// shown to shoppers and the CRUD surface used by the admin dashboard.
package catalog

import "time"

// Product is a purchasable item. Orders never reference products directly;
// checkout copies the fields it needs into an order-item snapshot, so later
// edits or deletes here do not alter historical orders.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Image       string    `json:"image"`
	ImageHint   string    `json:"imageHint"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"-"`
}

// Patch carries a partial product update. Nil fields are left untouched.
type Patch struct {
	Name        *string
	Description *string
	Price       *float64
	Image       *string
	ImageHint   *string
	Category    *string
}

// SeedProducts is the fixed list written to an empty catalog on first read.
// Prices are in Nigerian Naira.
var SeedProducts = []Product{
	{
		Name:        "Classic Wristband",
		Description: "A stylish and comfortable wristband for everyday wear.",
		Price:       24000,
		Image:       "https://picsum.photos/seed/wristband/400/400",
		ImageHint:   "wristband fashion",
		Category:    "Wristband",
	},
	{
		Name:        "Elegant Timepiece",
		Description: "A sophisticated wristwatch that complements any outfit.",
		Price:       180750,
		Image:       "https://picsum.photos/seed/wristwatch/400/400",
		ImageHint:   "wristwatch elegant",
		Category:    "Wristwatch",
	},
	{
		Name:        "Silver Charm Bracelet",
		Description: "A beautiful silver bracelet with delicate charms.",
		Price:       67500,
		Image:       "https://picsum.photos/seed/bracelet/400/400",
		ImageHint:   "bracelet jewelry",
		Category:    "Bracelet",
	},
	{
		Name:        "Minimalist Leather Wallet",
		Description: "A sleek wallet made from genuine leather.",
		Price:       52500,
		Image:       "https://picsum.photos/seed/wallet/400/400",
		ImageHint:   "leather wallet",
		Category:    "Wallet",
	},
	{
		Name:        "Classic Leather Belt",
		Description: "A durable and timeless leather belt.",
		Price:       37500,
		Image:       "https://picsum.photos/seed/belt/400/400",
		ImageHint:   "leather belt",
		Category:    "Belt",
	},
	{
		Name:        "Urban Explorer Cap",
		Description: "A trendy cap for your urban adventures.",
		Price:       34500,
		Image:       "https://picsum.photos/seed/cap/400/400",
		ImageHint:   "fashion cap",
		Category:    "Cap",
	},
	{
		Name:        "Diamond Stud Earrings",
		Description: "A pair of sparkling diamond stud earrings.",
		Price:       375000,
		Image:       "https://picsum.photos/seed/earring/400/400",
		ImageHint:   "earrings jewelry",
		Category:    "Earring",
	},
	{
		Name:        "Shimmering Lip Gloss",
		Description: "A high-shine lip gloss for a luscious look.",
		Price:       18000,
		Image:       "https://picsum.photos/seed/lipgloss/400/400",
		ImageHint:   "lip gloss",
		Category:    "Lip glosses",
	},
	{
		Name:        "Nourishing Hand Cream",
		Description: "A rich and moisturizing hand cream with a pleasant scent.",
		Price:       12750,
		Image:       "https://picsum.photos/seed/handcream/400/400",
		ImageHint:   "hand cream",
		Category:    "Hand cream",
	},
}
