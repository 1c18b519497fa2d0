// internal/app/store/boards/boardstore.go
package boardstore

import (
	"context"
	"errors"
	"time"

	"github.com/kvnhng/boardhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var ErrNotFound = errors.New("board not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("boards")}
}

// Create inserts a new board owned by ownerID.
func (s *Store) Create(ctx context.Context, b models.Board) (models.Board, error) {
	now := time.Now().UTC()
	b.ID = primitive.NewObjectID()
	b.TitleCI = text.Fold(b.Title)
	if b.Type == "" {
		b.Type = models.BoardTypePrivate
	}
	if b.ColumnOrderIDs == nil {
		b.ColumnOrderIDs = []primitive.ObjectID{}
	}
	b.CreatedAt = now
	b.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, b); err != nil {
		return models.Board{}, err
	}
	return b, nil
}

// GetByID retrieves a live board by its ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Board, error) {
	var b models.Board
	err := s.c.FindOne(ctx, bson.M{"_id": id, "_destroy": false}).Decode(&b)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Board{}, ErrNotFound
		}
		return models.Board{}, err
	}
	return b, nil
}

// Patch holds the board fields a caller may change. Nil pointers are
// left untouched.
type Patch struct {
	Title       *string
	Description *string
	Type        *string
}

// Update applies p to the board and returns the updated document.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, p Patch) (models.Board, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if p.Title != nil {
		set["title"] = *p.Title
		set["title_ci"] = text.Fold(*p.Title)
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.Type != nil {
		set["type"] = *p.Type
	}

	var b models.Board
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "_destroy": false},
		bson.M{"$set": set},
		opts,
	).Decode(&b)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Board{}, ErrNotFound
		}
		return models.Board{}, err
	}
	return b, nil
}

// Delete removes a board document by ID.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// PushColumnOrder appends columnID to the board's column order list.
// $push is atomic server-side, so concurrent column creations on the
// same board interleave without losing entries.
func (s *Store) PushColumnOrder(ctx context.Context, boardID, columnID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": boardID, "_destroy": false},
		bson.M{
			"$push": bson.M{"column_order_ids": columnID},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// PullColumnOrder removes columnID from the board's column order list
// by value. Pulling an absent value matches the board and changes
// nothing.
func (s *Store) PullColumnOrder(ctx context.Context, boardID, columnID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": boardID, "_destroy": false},
		bson.M{
			"$pull": bson.M{"column_order_ids": columnID},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ListPage is one page of a user's boards.
type ListPage struct {
	Boards []models.Board `json:"boards"`
	Total  int64          `json:"total"`
}

// ListByOwner returns one page of ownerID's live boards, newest first,
// optionally filtered by a case-folded title search.
func (s *Store) ListByOwner(ctx context.Context, ownerID primitive.ObjectID, page, perPage int64, titleQuery string) (ListPage, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 12
	}

	filter := bson.M{"owner_id": ownerID, "_destroy": false}
	if titleQuery != "" {
		filter["title_ci"] = bson.M{"$regex": primitive.Regex{Pattern: text.Fold(titleQuery)}}
	}

	total, err := s.c.CountDocuments(ctx, filter)
	if err != nil {
		return ListPage{}, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip((page - 1) * perPage).
		SetLimit(perPage)
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return ListPage{}, err
	}
	defer cur.Close(ctx)

	boards := []models.Board{}
	if err := cur.All(ctx, &boards); err != nil {
		return ListPage{}, err
	}
	return ListPage{Boards: boards, Total: total}, nil
}

// LiveIDs returns the ids of every live board. The drift sweeper uses
// this to walk the whole collection, so only _id is fetched.
func (s *Store) LiveIDs(ctx context.Context) ([]primitive.ObjectID, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cur, err := s.c.Find(ctx, bson.M{"_destroy": false}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	return ids, nil
}

// EnsureIndexes creates indexes for the boards collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_board_owner_created"),
		},
		{
			Keys:    bson.D{{Key: "title_ci", Value: 1}},
			Options: options.Index().SetName("idx_board_title_ci"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}
