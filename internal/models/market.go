package models

// Listing types for marketplace items.
const (
	ListingSwap    = "Swap"
	ListingSale    = "Sale"
	ListingRequest = "Request"
)

type MarketItem struct {
	ID          int64   `json:"id" bson:"id"`
	Name        string  `json:"name" bson:"name"`
	Type        string  `json:"type" bson:"type"`
	Seller      string  `json:"seller" bson:"seller"`
	Distance    string  `json:"distance" bson:"distance"`
	Price       *string `json:"price" bson:"price"`
	Image       string  `json:"image" bson:"image"`
	Freshness   string  `json:"freshness" bson:"freshness"`
	Category    string  `json:"category" bson:"category"`
	IsVerified  bool    `json:"isVerified" bson:"isVerified"`
	Description string  `json:"description" bson:"description"`
}

// MarketplaceOrder records a swap, purchase or request the user placed.
type MarketplaceOrder struct {
	ID        int64      `json:"id" bson:"id"`
	Item      MarketItem `json:"item" bson:"item"`
	Type      string     `json:"type" bson:"type"`
	Timestamp string     `json:"timestamp" bson:"timestamp"`
}
