package entities

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const OrderCollection = "orders"

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
	OrderRefunded   OrderStatus = "refunded"
)

// NonRevenueStatuses are excluded from every revenue figure.
var NonRevenueStatuses = []OrderStatus{OrderCancelled, OrderRefunded}

func (s OrderStatus) CountsAsRevenue() bool {
	for _, excluded := range NonRevenueStatuses {
		if s == excluded {
			return false
		}
	}
	return true
}

type OrderItem struct {
	Product  primitive.ObjectID `bson:"product" json:"product"`
	Name     string             `bson:"name" json:"name"`
	Price    float64            `bson:"price" json:"price"`
	Quantity int                `bson:"quantity" json:"quantity"`
}

type ShippingAddress struct {
	Street  string `bson:"street,omitempty" json:"street,omitempty"`
	City    string `bson:"city,omitempty" json:"city,omitempty"`
	State   string `bson:"state,omitempty" json:"state,omitempty"`
	Zip     string `bson:"zip,omitempty" json:"zip,omitempty"`
	Country string `bson:"country,omitempty" json:"country,omitempty"`
}

// Order is written by the checkout flow; analytics only reads it.
type Order struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User               primitive.ObjectID `bson:"user" json:"user"`
	Items              []OrderItem        `bson:"items" json:"items"`
	Subtotal           float64            `bson:"subtotal" json:"subtotal"`
	Tax                float64            `bson:"tax" json:"tax"`
	Shipping           float64            `bson:"shipping" json:"shipping"`
	Total              float64            `bson:"total" json:"total"`
	Status             OrderStatus        `bson:"status" json:"status"`
	ShippingAddress    ShippingAddress    `bson:"shippingAddress" json:"shippingAddress"`
	PaymentMethod      string             `bson:"paymentMethod" json:"paymentMethod"`
	AttributionChannel Channel            `bson:"attributionChannel" json:"attributionChannel"`
	SessionID          string             `bson:"sessionId,omitempty" json:"sessionId,omitempty"`
	CompletedAt        *time.Time         `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}
