// internal/domain/models/funding.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Funding is a monetary contribution. The API only aggregates these.
type Funding struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Amount    float64            `bson:"amount" json:"amount"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
