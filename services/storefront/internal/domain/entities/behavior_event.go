package entities

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const BehaviorEventCollection = "behaviorevents"

type EventType string

const (
	EventPageView         EventType = "page_view"
	EventProductView      EventType = "product_view"
	EventProductSearch    EventType = "product_search"
	EventAddToCart        EventType = "add_to_cart"
	EventRemoveFromCart   EventType = "remove_from_cart"
	EventCartView         EventType = "cart_view"
	EventCheckoutStart    EventType = "checkout_start"
	EventCheckoutShipping EventType = "checkout_shipping"
	EventCheckoutPayment  EventType = "checkout_payment"
	EventCheckoutComplete EventType = "checkout_complete"
	EventCheckoutAbandon  EventType = "checkout_abandon"
)

var eventTypes = map[EventType]struct{}{
	EventPageView:         {},
	EventProductView:      {},
	EventProductSearch:    {},
	EventAddToCart:        {},
	EventRemoveFromCart:   {},
	EventCartView:         {},
	EventCheckoutStart:    {},
	EventCheckoutShipping: {},
	EventCheckoutPayment:  {},
	EventCheckoutComplete: {},
	EventCheckoutAbandon:  {},
}

func (e EventType) Valid() bool {
	_, ok := eventTypes[e]
	return ok
}

// EventMetadata holds the optional per-event context sent by the tracker.
type EventMetadata struct {
	Page        string              `bson:"page,omitempty" json:"page,omitempty"`
	Referrer    string              `bson:"referrer,omitempty" json:"referrer,omitempty"`
	SearchQuery string              `bson:"searchQuery,omitempty" json:"searchQuery,omitempty"`
	Category    string              `bson:"category,omitempty" json:"category,omitempty"`
	Quantity    *int                `bson:"quantity,omitempty" json:"quantity,omitempty"`
	CartValue   *float64            `bson:"cartValue,omitempty" json:"cartValue,omitempty"`
	OrderTotal  *float64            `bson:"orderTotal,omitempty" json:"orderTotal,omitempty"`
	OrderID     *primitive.ObjectID `bson:"orderId,omitempty" json:"orderId,omitempty"`
	TimeOnPage  *float64            `bson:"timeOnPage,omitempty" json:"timeOnPage,omitempty"`
	ScrollDepth *float64            `bson:"scrollDepth,omitempty" json:"scrollDepth,omitempty"`
}

// BehaviorEvent is a single tracked storefront interaction. User is absent
// for anonymous visitors so that distinct-user counts skip them.
type BehaviorEvent struct {
	ID                 primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	User               *primitive.ObjectID `bson:"user,omitempty" json:"user,omitempty"`
	SessionID          string              `bson:"sessionId" json:"sessionId"`
	EventType          EventType           `bson:"eventType" json:"eventType"`
	Product            *primitive.ObjectID `bson:"product,omitempty" json:"product,omitempty"`
	Metadata           EventMetadata       `bson:"metadata" json:"metadata"`
	AttributionChannel Channel             `bson:"attributionChannel" json:"attributionChannel"`
	DeviceType         DeviceType          `bson:"deviceType" json:"deviceType"`
	Timestamp          time.Time           `bson:"timestamp" json:"timestamp"`
	CreatedAt          time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time           `bson:"updatedAt" json:"updatedAt"`
}
