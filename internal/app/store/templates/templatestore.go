// internal/app/store/templates/templatestore.go
package templatestore

import (
	"context"
	"errors"
	"time"

	"github.com/kvnhng/boardhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var (
	ErrNotFound = errors.New("template not found")

	// ErrDuplicateBoard means a live template already exists for the
	// board. The partial unique index on board_id surfaces this as a
	// duplicate-key error on insert.
	ErrDuplicateBoard = errors.New("a live template already exists for this board")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("templates")}
}

// Create inserts a new live template for a board.
func (s *Store) Create(ctx context.Context, t models.Template) (models.Template, error) {
	now := time.Now().UTC()
	t.ID = primitive.NewObjectID()
	t.TitleCI = text.Fold(t.Title)
	t.Destroyed = false
	t.CreatedAt = now
	t.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, t); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Template{}, ErrDuplicateBoard
		}
		return models.Template{}, err
	}
	return t, nil
}

// GetByID retrieves a live template by its ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Template, error) {
	return s.findOne(ctx, bson.M{"_id": id, "_destroy": false})
}

// GetByBoardID retrieves the live template mirroring boardID, if any.
func (s *Store) GetByBoardID(ctx context.Context, boardID primitive.ObjectID) (models.Template, error) {
	return s.findOne(ctx, bson.M{"board_id": boardID, "_destroy": false})
}

func (s *Store) findOne(ctx context.Context, filter bson.M) (models.Template, error) {
	var t models.Template
	err := s.c.FindOne(ctx, filter).Decode(&t)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Template{}, ErrNotFound
		}
		return models.Template{}, err
	}
	return t, nil
}

// Patch holds the template fields a caller may change. Nil pointers
// are left untouched.
type Patch struct {
	Title       *string
	Description *string
	Cover       *string
}

func (p Patch) set() bson.M {
	set := bson.M{"updated_at": time.Now().UTC()}
	if p.Title != nil {
		set["title"] = *p.Title
		set["title_ci"] = text.Fold(*p.Title)
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.Cover != nil {
		set["cover"] = *p.Cover
	}
	return set
}

// Update applies p to the live template with the given ID.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, p Patch) (models.Template, error) {
	return s.updateOne(ctx, bson.M{"_id": id, "_destroy": false}, p)
}

// UpdateByBoardID applies p to the live template mirroring boardID.
func (s *Store) UpdateByBoardID(ctx context.Context, boardID primitive.ObjectID, p Patch) (models.Template, error) {
	return s.updateOne(ctx, bson.M{"board_id": boardID, "_destroy": false}, p)
}

func (s *Store) updateOne(ctx context.Context, filter bson.M, p Patch) (models.Template, error) {
	var t models.Template
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := s.c.FindOneAndUpdate(ctx, filter, bson.M{"$set": p.set()}, opts).Decode(&t)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Template{}, ErrNotFound
		}
		return models.Template{}, err
	}
	return t, nil
}

// DeleteByBoardID soft-deletes the live template mirroring boardID and
// returns it (callers need its ID and CreatedBy to compensate the
// owner's membership list). Returns ErrNotFound when no live template
// exists, which synchronizing callers treat as already-absent.
func (s *Store) DeleteByBoardID(ctx context.Context, boardID primitive.ObjectID) (models.Template, error) {
	var t models.Template
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"board_id": boardID, "_destroy": false},
		bson.M{"$set": bson.M{"_destroy": true, "updated_at": time.Now().UTC()}},
		opts,
	).Decode(&t)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Template{}, ErrNotFound
		}
		return models.Template{}, err
	}
	return t, nil
}

// GetAll returns every live template, newest first.
func (s *Store) GetAll(ctx context.Context) ([]models.Template, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"_destroy": false}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	templates := []models.Template{}
	if err := cur.All(ctx, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

// FindManyByIDs returns the live templates among ids (absent or
// destroyed ids are simply skipped).
func (s *Store) FindManyByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Template, error) {
	if len(ids) == 0 {
		return []models.Template{}, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}, "_destroy": false})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	templates := []models.Template{}
	if err := cur.All(ctx, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

// EnsureIndexes creates indexes for the templates collection. The
// partial unique index on board_id is what turns a concurrent double
// create into ErrDuplicateBoard instead of a second live template.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "board_id", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName("idx_template_board_live").
				SetPartialFilterExpression(bson.M{"_destroy": false}),
		},
		{
			Keys:    bson.D{{Key: "created_by", Value: 1}},
			Options: options.Index().SetName("idx_template_created_by"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}
