package domain

// TokenPackage is a purchasable bundle of tokens.
type TokenPackage struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Tokens int64   `json:"tokens"`
	Price  float64 `json:"price"`
}

// PremiumSection is one row of premium_page_content.
type PremiumSection struct {
	Section string
	Content string
}

// TokenPurchase describes a completed checkout that should credit tokens.
type TokenPurchase struct {
	UserID    string
	PackageID string
	Tokens    int64
	Price     float64
	SessionID string
}
