package entities

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const UserCollection = "users"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// User is the account document; only the fields analytics reads are mapped.
type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Email       string             `bson:"email" json:"email"`
	Role        Role               `bson:"role" json:"role"`
	FirstSeenAt *time.Time         `bson:"firstSeenAt,omitempty" json:"firstSeenAt,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
