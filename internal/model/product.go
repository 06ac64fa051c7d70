package model

type Product struct {
	BaseModel
	Name          string   `json:"name"`
	Slug          string   `json:"slug"`
	SKU           string   `json:"sku"`
	Description   string   `json:"description,omitempty"`
	BrandID       string   `json:"brandId,omitempty"`
	CategoryIDs   []string `json:"categoryIds,omitempty"`
	ProductType   string   `json:"productType"`
	ProductStatus string   `json:"productStatus"`
	Gender        string   `json:"gender,omitempty"`
	StockStatus   string   `json:"stockStatus,omitempty"`
	BasePrice     float64  `json:"basePrice"`
	ThumbnailURL  string   `json:"thumbnailUrl,omitempty"`
}

type Image struct {
	BaseModel
	URL         string `json:"url"`
	AltText     string `json:"altText,omitempty"`
	ImageStatus string `json:"imageStatus"`
	OwnerType   string `json:"ownerType,omitempty"`
	OwnerID     string `json:"ownerId,omitempty"`
}
