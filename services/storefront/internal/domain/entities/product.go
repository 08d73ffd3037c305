package entities

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const ProductCollection = "products"

type Category string

const (
	CategoryElectronics Category = "electronics"
	CategoryClothing    Category = "clothing"
	CategoryHome        Category = "home"
	CategoryBeauty      Category = "beauty"
	CategorySports      Category = "sports"
	CategoryBooks       Category = "books"
)

type Product struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Description    string             `bson:"description" json:"description"`
	Price          float64            `bson:"price" json:"price"`
	CompareAtPrice *float64           `bson:"compareAtPrice,omitempty" json:"compareAtPrice,omitempty"`
	Category       Category           `bson:"category" json:"category"`
	Tags           []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	SKU            string             `bson:"sku" json:"sku"`
	Inventory      int                `bson:"inventory" json:"inventory"`
	Images         []string           `bson:"images,omitempty" json:"images,omitempty"`
	IsActive       bool               `bson:"isActive" json:"isActive"`
	ViewCount      int64              `bson:"viewCount" json:"viewCount"`
	AddToCartCount int64              `bson:"addToCartCount" json:"addToCartCount"`
	PurchaseCount  int64              `bson:"purchaseCount" json:"purchaseCount"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ConversionRate is purchases per hundred views.
func (p *Product) ConversionRate() float64 {
	return Percentage(float64(p.PurchaseCount), float64(p.ViewCount))
}

// CartRate is add-to-carts per hundred views.
func (p *Product) CartRate() float64 {
	return Percentage(float64(p.AddToCartCount), float64(p.ViewCount))
}

// Counter fields bumped by tracked behavior events.
const (
	FieldViewCount      = "viewCount"
	FieldAddToCartCount = "addToCartCount"
	FieldPurchaseCount  = "purchaseCount"
)
