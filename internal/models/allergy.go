package models

// Allergy maps one allergen to a product type. The list endpoint regroups
// rows by product_type for the frontend.
type Allergy struct {
	ID          string `db:"id" json:"id"`
	ProductType string `db:"product_type" json:"product_type"`
	Allergen    string `db:"allergen" json:"allergen"`
	IsActive    bool   `db:"is_active" json:"is_active"`
}
