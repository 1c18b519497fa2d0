package templatestore_test

import (
	"errors"
	"testing"

	templatestore "github.com/kvnhng/boardhub/internal/app/store/templates"
	"github.com/kvnhng/boardhub/internal/domain/models"
	"github.com/kvnhng/boardhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := templatestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Template{
		Title:     "Sprint Board",
		Cover:     "https://example.com/cover.png",
		BoardID:   primitive.NewObjectID(),
		CreatedBy: primitive.NewObjectID(),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.TitleCI == "" {
		t.Error("expected TitleCI to be set")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
	if created.Destroyed {
		t.Error("new template should be live")
	}
}

func TestStore_Create_DuplicateLiveBoard(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := templatestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes failed: %v", err)
	}

	boardID := primitive.NewObjectID()
	tpl := models.Template{Title: "First", BoardID: boardID, CreatedBy: primitive.NewObjectID()}

	if _, err := store.Create(ctx, tpl); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	tpl.Title = "Second"
	_, err := store.Create(ctx, tpl)
	if !errors.Is(err, templatestore.ErrDuplicateBoard) {
		t.Fatalf("second Create: got %v, want ErrDuplicateBoard", err)
	}
}

func TestStore_Create_AfterRetire(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := templatestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes failed: %v", err)
	}

	boardID := primitive.NewObjectID()
	tpl := models.Template{Title: "Roadmap", BoardID: boardID, CreatedBy: primitive.NewObjectID()}

	if _, err := store.Create(ctx, tpl); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := store.DeleteByBoardID(ctx, boardID); err != nil {
		t.Fatalf("DeleteByBoardID failed: %v", err)
	}

	// The unique index only covers live rows, so republishing the same
	// board must succeed after the old template is retired.
	if _, err := store.Create(ctx, tpl); err != nil {
		t.Fatalf("Create after retire failed: %v", err)
	}
}

func TestStore_DeleteByBoardID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := templatestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	boardID := primitive.NewObjectID()
	creator := primitive.NewObjectID()
	created, err := store.Create(ctx, models.Template{
		Title: "Retiring", BoardID: boardID, CreatedBy: creator,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	deleted, err := store.DeleteByBoardID(ctx, boardID)
	if err != nil {
		t.Fatalf("DeleteByBoardID failed: %v", err)
	}
	if deleted.ID != created.ID {
		t.Errorf("deleted ID: got %v, want %v", deleted.ID, created.ID)
	}
	if deleted.CreatedBy != creator {
		t.Errorf("deleted CreatedBy: got %v, want %v", deleted.CreatedBy, creator)
	}
	if !deleted.Destroyed {
		t.Error("expected returned template to be marked destroyed")
	}

	if _, err := store.GetByBoardID(ctx, boardID); !errors.Is(err, templatestore.ErrNotFound) {
		t.Errorf("GetByBoardID after delete: got %v, want ErrNotFound", err)
	}
}

func TestStore_DeleteByBoardID_AlreadyAbsent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := templatestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.DeleteByBoardID(ctx, primitive.NewObjectID())
	if !errors.Is(err, templatestore.ErrNotFound) {
		t.Fatalf("DeleteByBoardID on missing board: got %v, want ErrNotFound", err)
	}
}

func TestStore_UpdateByBoardID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := templatestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	boardID := primitive.NewObjectID()
	if _, err := store.Create(ctx, models.Template{
		Title: "Before", BoardID: boardID, CreatedBy: primitive.NewObjectID(),
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	title := "After"
	desc := "refreshed"
	updated, err := store.UpdateByBoardID(ctx, boardID, templatestore.Patch{
		Title:       &title,
		Description: &desc,
	})
	if err != nil {
		t.Fatalf("UpdateByBoardID failed: %v", err)
	}
	if updated.Title != "After" {
		t.Errorf("title: got %q, want %q", updated.Title, "After")
	}
	if updated.Description != "refreshed" {
		t.Errorf("description: got %q, want %q", updated.Description, "refreshed")
	}
	if updated.TitleCI == "" {
		t.Error("expected TitleCI to follow the title change")
	}
}

func TestStore_UpdateByBoardID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := templatestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	title := "Anything"
	_, err := store.UpdateByBoardID(ctx, primitive.NewObjectID(), templatestore.Patch{Title: &title})
	if !errors.Is(err, templatestore.ErrNotFound) {
		t.Fatalf("UpdateByBoardID on missing board: got %v, want ErrNotFound", err)
	}
}

func TestStore_GetAll_ExcludesRetired(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := templatestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	liveBoard := primitive.NewObjectID()
	retiredBoard := primitive.NewObjectID()
	creator := primitive.NewObjectID()

	if _, err := store.Create(ctx, models.Template{Title: "Live", BoardID: liveBoard, CreatedBy: creator}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := store.Create(ctx, models.Template{Title: "Retired", BoardID: retiredBoard, CreatedBy: creator}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := store.DeleteByBoardID(ctx, retiredBoard); err != nil {
		t.Fatalf("DeleteByBoardID failed: %v", err)
	}

	all, err := store.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("GetAll: got %d templates, want 1", len(all))
	}
	if all[0].Title != "Live" {
		t.Errorf("GetAll: got %q, want %q", all[0].Title, "Live")
	}
}

func TestStore_FindManyByIDs_SkipsMissing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := templatestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Template{
		Title: "Only", BoardID: primitive.NewObjectID(), CreatedBy: primitive.NewObjectID(),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.FindManyByIDs(ctx, []primitive.ObjectID{created.ID, primitive.NewObjectID()})
	if err != nil {
		t.Fatalf("FindManyByIDs failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("FindManyByIDs: got %d templates, want 1", len(got))
	}
	if got[0].ID != created.ID {
		t.Errorf("FindManyByIDs: got %v, want %v", got[0].ID, created.ID)
	}

	empty, err := store.FindManyByIDs(ctx, nil)
	if err != nil {
		t.Fatalf("FindManyByIDs with no ids failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("FindManyByIDs with no ids: got %d templates, want 0", len(empty))
	}
}
