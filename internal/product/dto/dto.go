package dto

import "github.com/fekuna/omnipos-backoffice/internal/model"

// ProductDetail is the product detail page: the record and its gallery.
// A failed gallery fetch leaves Images empty and sets ImagesError instead of
// failing the page.
type ProductDetail struct {
	Product     *model.Product `json:"product"`
	Images      []model.Image  `json:"images"`
	ImagesError string         `json:"imagesError,omitempty"`
	Cached      bool           `json:"cached,omitempty"`
}
