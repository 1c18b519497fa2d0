// internal/domain/models/board.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Board visibility types. Type drives template-catalog synchronization:
// public boards are mirrored into the templates collection, private
// boards are not.
const (
	BoardTypePrivate = "private"
	BoardTypePublic  = "public"
)

// Board is a kanban board owned by a single user.
//
// ColumnOrderIDs is an ordered reference list: it holds the ids of the
// board's live columns in display order and is mutated only with atomic
// $push/$pull operations, never rewritten wholesale from a read copy.
type Board struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	TitleCI     string             `bson:"title_ci" json:"-"` // lowercase, diacritics-stripped
	Description string             `bson:"description" json:"description"`
	Type        string             `bson:"type" json:"type"` // private | public
	OwnerID     primitive.ObjectID `bson:"owner_id" json:"owner_id"`

	ColumnOrderIDs []primitive.ObjectID `bson:"column_order_ids" json:"column_order_ids"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
	Destroyed bool      `bson:"_destroy" json:"-"`
}

// IsValidBoardType reports whether t is a recognized board visibility.
func IsValidBoardType(t string) bool {
	return t == BoardTypePrivate || t == BoardTypePublic
}
