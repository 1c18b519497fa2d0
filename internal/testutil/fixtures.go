// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	boardstore "github.com/kvnhng/boardhub/internal/app/store/boards"
	cardstore "github.com/kvnhng/boardhub/internal/app/store/cards"
	columnstore "github.com/kvnhng/boardhub/internal/app/store/columns"
	userstore "github.com/kvnhng/boardhub/internal/app/store/users"
	"github.com/kvnhng/boardhub/internal/domain/models"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates an active test account with the given email.
func (f *Fixtures) CreateUser(ctx context.Context, email string) models.User {
	f.t.Helper()

	u, err := userstore.New(f.db).Create(ctx, models.User{
		Email:       email,
		DisplayName: "Test User",
		Role:        models.RoleClient,
		IsActive:    true,
	})
	if err != nil {
		f.t.Fatalf("create test user: %v", err)
	}
	return u
}

// CreateBoard creates a board owned by ownerID with the given title and
// visibility.
func (f *Fixtures) CreateBoard(ctx context.Context, ownerID primitive.ObjectID, title, boardType string) models.Board {
	f.t.Helper()

	b, err := boardstore.New(f.db).Create(ctx, models.Board{
		Title:   title,
		Type:    boardType,
		OwnerID: ownerID,
	})
	if err != nil {
		f.t.Fatalf("create test board: %v", err)
	}
	return b
}

// CreateColumn creates a column on the board and appends it to the
// board's column order list.
func (f *Fixtures) CreateColumn(ctx context.Context, boardID primitive.ObjectID, title string) models.Column {
	f.t.Helper()

	col, err := columnstore.New(f.db).Create(ctx, models.Column{
		BoardID: boardID,
		Title:   title,
	})
	if err != nil {
		f.t.Fatalf("create test column: %v", err)
	}
	if err := boardstore.New(f.db).PushColumnOrder(ctx, boardID, col.ID); err != nil {
		f.t.Fatalf("append test column to board order: %v", err)
	}
	return col
}

// CreateCard creates a card on the column and appends it to the
// column's card order list.
func (f *Fixtures) CreateCard(ctx context.Context, boardID, columnID primitive.ObjectID, title string) models.Card {
	f.t.Helper()

	card, err := cardstore.New(f.db).Create(ctx, models.Card{
		BoardID:  boardID,
		ColumnID: columnID,
		Title:    title,
	})
	if err != nil {
		f.t.Fatalf("create test card: %v", err)
	}
	if err := columnstore.New(f.db).PushCardOrder(ctx, columnID, card.ID); err != nil {
		f.t.Fatalf("append test card to column order: %v", err)
	}
	return card
}
