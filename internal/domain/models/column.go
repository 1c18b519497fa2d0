// internal/domain/models/column.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Column is a vertical lane on a board.
//
// CardOrderIDs is the column's ordered reference list: exactly the ids
// of its live cards, each appearing once, in display order. Card
// create/delete/move patch this list with atomic $push/$pull; nothing
// recomputes it from scratch.
type Column struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BoardID primitive.ObjectID `bson:"board_id" json:"board_id"`
	Title   string             `bson:"title" json:"title"`

	CardOrderIDs []primitive.ObjectID `bson:"card_order_ids" json:"card_order_ids"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
	Destroyed bool      `bson:"_destroy" json:"-"`
}
