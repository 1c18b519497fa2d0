package boards

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kvnhng/boardhub/internal/domain/models"
)

func TestAssembleDetails_FollowsOrderLists(t *testing.T) {
	colA := models.Column{ID: primitive.NewObjectID(), Title: "Doing"}
	colB := models.Column{ID: primitive.NewObjectID(), Title: "Todo"}

	cardA1 := models.Card{ID: primitive.NewObjectID(), ColumnID: colA.ID}
	cardA2 := models.Card{ID: primitive.NewObjectID(), ColumnID: colA.ID}
	cardB1 := models.Card{ID: primitive.NewObjectID(), ColumnID: colB.ID}

	colA.CardOrderIDs = []primitive.ObjectID{cardA2.ID, cardA1.ID}
	colB.CardOrderIDs = []primitive.ObjectID{cardB1.ID}

	board := models.Board{
		ID:             primitive.NewObjectID(),
		ColumnOrderIDs: []primitive.ObjectID{colB.ID, colA.ID},
	}

	details := assembleDetails(board,
		[]models.Column{colA, colB},
		[]models.Card{cardA1, cardA2, cardB1})

	if len(details.Columns) != 2 {
		t.Fatalf("columns = %d, want 2", len(details.Columns))
	}
	if details.Columns[0].ID != colB.ID || details.Columns[1].ID != colA.ID {
		t.Error("columns not in board order-list order")
	}
	doing := details.Columns[1]
	if len(doing.Cards) != 2 || doing.Cards[0].ID != cardA2.ID || doing.Cards[1].ID != cardA1.ID {
		t.Error("cards not in column order-list order")
	}
}

func TestAssembleDetails_StraysAppended(t *testing.T) {
	col := models.Column{ID: primitive.NewObjectID()}
	listed := models.Card{ID: primitive.NewObjectID(), ColumnID: col.ID}
	stray := models.Card{ID: primitive.NewObjectID(), ColumnID: col.ID}
	col.CardOrderIDs = []primitive.ObjectID{listed.ID}

	// The column itself is missing from the board's order list too.
	board := models.Board{ID: primitive.NewObjectID()}

	details := assembleDetails(board,
		[]models.Column{col},
		[]models.Card{listed, stray})

	if len(details.Columns) != 1 {
		t.Fatalf("columns = %d, want 1 (stray column appended)", len(details.Columns))
	}
	cards := details.Columns[0].Cards
	if len(cards) != 2 {
		t.Fatalf("cards = %d, want 2 (stray card appended)", len(cards))
	}
	if cards[0].ID != listed.ID || cards[1].ID != stray.ID {
		t.Error("listed card should come first, stray card last")
	}
}

func TestOrderCards_IgnoresDeadOrderEntries(t *testing.T) {
	live := models.Card{ID: primitive.NewObjectID()}
	dead := primitive.NewObjectID()

	got := orderCards([]primitive.ObjectID{dead, live.ID}, []models.Card{live})
	if len(got) != 1 || got[0].ID != live.ID {
		t.Errorf("ordered cards = %v, want only the live card", got)
	}
}
