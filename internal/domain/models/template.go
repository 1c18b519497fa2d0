// internal/domain/models/template.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Template is the public, catalog-visible projection of a board. At
// most one live (non-destroyed) template exists per board; the
// templates collection enforces that with a partial unique index on
// board_id.
type Template struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	TitleCI     string             `bson:"title_ci" json:"-"`
	Description string             `bson:"description" json:"description"`
	Cover       string             `bson:"cover" json:"cover"`
	BoardID     primitive.ObjectID `bson:"board_id" json:"board_id"`
	CreatedBy   primitive.ObjectID `bson:"created_by" json:"created_by"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
	Destroyed bool      `bson:"_destroy" json:"-"`
}
