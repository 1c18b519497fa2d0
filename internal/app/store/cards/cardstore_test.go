package cardstore_test

import (
	"errors"
	"testing"
	"time"

	cardstore "github.com/kvnhng/boardhub/internal/app/store/cards"
	"github.com/kvnhng/boardhub/internal/domain/models"
	"github.com/kvnhng/boardhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func createCard(t *testing.T, store *cardstore.Store, title string) models.Card {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	card, err := store.Create(ctx, models.Card{
		BoardID:  primitive.NewObjectID(),
		ColumnID: primitive.NewObjectID(),
		Title:    title,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	return card
}

func TestStore_Create_Defaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := cardstore.New(db)

	card := createCard(t, store, "Write docs")

	if card.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if card.MemberIDs == nil || card.Comments == nil || card.Attachments == nil {
		t.Error("expected embedded lists to be initialized")
	}
	if card.CreatedAt.IsZero() || card.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestStore_UnshiftComment_NewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := cardstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	card := createCard(t, store, "Commented")
	author := primitive.NewObjectID()

	for _, content := range []string{"first", "second", "third"} {
		if _, err := store.UnshiftComment(ctx, card.ID, models.Comment{
			UserID:      author,
			UserEmail:   "author@example.com",
			Content:     content,
			CommentedAt: time.Now().UTC(),
		}); err != nil {
			t.Fatalf("UnshiftComment failed: %v", err)
		}
	}

	got, err := store.GetByID(ctx, card.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	want := []string{"third", "second", "first"}
	if len(got.Comments) != 3 {
		t.Fatalf("comments: got %d, want 3", len(got.Comments))
	}
	for i, content := range want {
		if got.Comments[i].Content != content {
			t.Errorf("comments[%d]: got %q, want %q", i, got.Comments[i].Content, content)
		}
	}
}

func TestStore_Members_AddToSet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := cardstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	card := createCard(t, store, "Assigned")
	member := primitive.NewObjectID()

	for i := 0; i < 2; i++ {
		if _, err := store.AddMember(ctx, card.ID, member); err != nil {
			t.Fatalf("AddMember failed: %v", err)
		}
	}

	got, err := store.GetByID(ctx, card.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(got.MemberIDs) != 1 {
		t.Fatalf("member_ids: got %d entries, want 1", len(got.MemberIDs))
	}

	updated, err := store.RemoveMember(ctx, card.ID, member)
	if err != nil {
		t.Fatalf("RemoveMember failed: %v", err)
	}
	if len(updated.MemberIDs) != 0 {
		t.Errorf("member_ids after remove: got %v, want empty", updated.MemberIDs)
	}
}

func TestStore_Attachments_PushPull(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := cardstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	card := createCard(t, store, "With files")
	att := models.Attachment{
		ID:         "att-1",
		Name:       "diagram.png",
		URL:        "https://cdn.example.com/diagram.png",
		Key:        "attachments/image/att-1.png",
		Size:       1024,
		MIMEType:   "image/png",
		UploadedAt: time.Now().UTC(),
	}

	updated, err := store.PushAttachment(ctx, card.ID, att)
	if err != nil {
		t.Fatalf("PushAttachment failed: %v", err)
	}
	if len(updated.Attachments) != 1 || updated.Attachments[0].ID != "att-1" {
		t.Fatalf("attachments after push: got %v", updated.Attachments)
	}

	updated, err = store.PullAttachment(ctx, card.ID, "att-1")
	if err != nil {
		t.Fatalf("PullAttachment failed: %v", err)
	}
	if len(updated.Attachments) != 0 {
		t.Errorf("attachments after pull: got %v, want empty", updated.Attachments)
	}
}

func TestStore_SetColumn(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := cardstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	card := createCard(t, store, "Moving")
	target := primitive.NewObjectID()

	if err := store.SetColumn(ctx, card.ID, target); err != nil {
		t.Fatalf("SetColumn failed: %v", err)
	}

	got, err := store.GetByID(ctx, card.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.ColumnID != target {
		t.Errorf("column_id: got %v, want %v", got.ColumnID, target)
	}
}

func TestStore_SoftDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := cardstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	card := createCard(t, store, "Doomed")

	if err := store.SoftDelete(ctx, card.ID); err != nil {
		t.Fatalf("SoftDelete failed: %v", err)
	}

	// Live lookups no longer see the card, but the row stays behind.
	if _, err := store.GetByID(ctx, card.ID); !errors.Is(err, cardstore.ErrNotFound) {
		t.Errorf("GetByID after soft delete: got %v, want ErrNotFound", err)
	}
	n, err := db.Collection("cards").CountDocuments(ctx, bson.M{"_id": card.ID})
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if n != 1 {
		t.Errorf("document count after soft delete: got %d, want 1", n)
	}

	if err := store.SoftDelete(ctx, card.ID); !errors.Is(err, cardstore.ErrNotFound) {
		t.Errorf("repeat SoftDelete: got %v, want ErrNotFound", err)
	}
}

func TestStore_SoftDeleteByColumn(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := cardstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	boardID := primitive.NewObjectID()
	columnID := primitive.NewObjectID()
	otherColumn := primitive.NewObjectID()

	for i := 0; i < 2; i++ {
		if _, err := store.Create(ctx, models.Card{BoardID: boardID, ColumnID: columnID, Title: "in"}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}
	if _, err := store.Create(ctx, models.Card{BoardID: boardID, ColumnID: otherColumn, Title: "out"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	n, err := store.SoftDeleteByColumn(ctx, columnID)
	if err != nil {
		t.Fatalf("SoftDeleteByColumn failed: %v", err)
	}
	if n != 2 {
		t.Errorf("removed count: got %d, want 2", n)
	}

	live, err := store.FindLiveByBoard(ctx, boardID)
	if err != nil {
		t.Fatalf("FindLiveByBoard failed: %v", err)
	}
	if len(live) != 1 || live[0].ColumnID != otherColumn {
		t.Errorf("live cards: got %v, want only the other column's card", live)
	}
}
