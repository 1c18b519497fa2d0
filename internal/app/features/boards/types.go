// internal/app/features/boards/types.go
package boards

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kvnhng/boardhub/internal/domain/models"
)

// createRequest is the payload for POST /v1/boards. Cover only feeds
// the template catalog entry of a public board.
type createRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Cover       string `json:"cover,omitempty"`
}

// updateRequest is the payload for PUT /v1/boards/{id}. Nil fields are
// left unchanged.
type updateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Type        *string `json:"type"`
	Cover       string  `json:"cover,omitempty"`
}

// moveCardRequest is the payload for PUT /v1/boards/{id}/move_card.
type moveCardRequest struct {
	CardID       primitive.ObjectID `json:"card_id"`
	FromColumnID primitive.ObjectID `json:"from_column_id"`
	ToColumnID   primitive.ObjectID `json:"to_column_id"`
	Position     int                `json:"position"`
}

// columnDetails is a column with its cards resolved in display order.
type columnDetails struct {
	models.Column
	Cards []models.Card `json:"cards"`
}

// boardDetails is the full board view: the board plus its columns in
// display order, each carrying its cards in display order.
type boardDetails struct {
	models.Board
	Columns []columnDetails `json:"columns"`
}

// listResponse is the paged board list.
type listResponse struct {
	Boards  []models.Board `json:"boards"`
	Total   int64          `json:"total"`
	Page    int64          `json:"page"`
	PerPage int64          `json:"per_page"`
}
