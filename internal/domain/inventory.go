package domain

// InventoryItem is a stored inventory record. Quantity and price are always
// stored as JSON numbers regardless of how the client supplied them.
type InventoryItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	SKU         string  `json:"sku"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// InventoryFields carries the client-supplied fields of an item. Description
// and SKU may be empty; the repository resolves their defaults.
type InventoryFields struct {
	Name        string
	Category    string
	Quantity    float64
	Price       float64
	Description string
	SKU         string
}
