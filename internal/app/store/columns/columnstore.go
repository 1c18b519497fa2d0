// internal/app/store/columns/columnstore.go
package columnstore

import (
	"context"
	"errors"
	"time"

	"github.com/kvnhng/boardhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var ErrNotFound = errors.New("column not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("columns")}
}

// Create inserts a new column on a board.
func (s *Store) Create(ctx context.Context, col models.Column) (models.Column, error) {
	now := time.Now().UTC()
	col.ID = primitive.NewObjectID()
	if col.CardOrderIDs == nil {
		col.CardOrderIDs = []primitive.ObjectID{}
	}
	col.CreatedAt = now
	col.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, col); err != nil {
		return models.Column{}, err
	}
	return col, nil
}

// GetByID retrieves a live column by its ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Column, error) {
	var col models.Column
	err := s.c.FindOne(ctx, bson.M{"_id": id, "_destroy": false}).Decode(&col)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Column{}, ErrNotFound
		}
		return models.Column{}, err
	}
	return col, nil
}

// FindByBoard returns the live columns of a board (unordered; the
// board's column_order_ids decides display order).
func (s *Store) FindByBoard(ctx context.Context, boardID primitive.ObjectID) ([]models.Column, error) {
	cur, err := s.c.Find(ctx, bson.M{"board_id": boardID, "_destroy": false})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	cols := []models.Column{}
	if err := cur.All(ctx, &cols); err != nil {
		return nil, err
	}
	return cols, nil
}

// UpdateTitle renames a column and returns the updated document.
func (s *Store) UpdateTitle(ctx context.Context, id primitive.ObjectID, title string) (models.Column, error) {
	var col models.Column
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "_destroy": false},
		bson.M{"$set": bson.M{"title": title, "updated_at": time.Now().UTC()}},
		opts,
	).Decode(&col)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Column{}, ErrNotFound
		}
		return models.Column{}, err
	}
	return col, nil
}

// Delete removes a column document by ID.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// PushCardOrder appends cardID to the column's card order list with an
// atomic $push. The list is never rewritten from a read copy, so two
// concurrent card creations on the same column both land.
func (s *Store) PushCardOrder(ctx context.Context, columnID, cardID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": columnID, "_destroy": false},
		bson.M{
			"$push": bson.M{"card_order_ids": cardID},
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

// PushCardOrderAt inserts cardID at pos in the column's card order
// list ($push with $each/$position), used when a card is moved into a
// specific slot.
func (s *Store) PushCardOrderAt(ctx context.Context, columnID, cardID primitive.ObjectID, pos int) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": columnID, "_destroy": false},
		bson.M{
			"$push": bson.M{"card_order_ids": bson.M{
				"$each":     bson.A{cardID},
				"$position": pos,
			}},
			"$set": bson.M{"updated_at": time.Now().UTC()},
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

// PullCardOrder removes cardID from the column's card order list by
// value, not by index, so the removal is correct even if the list
// order drifted. Pulling an absent value is a no-op.
func (s *Store) PullCardOrder(ctx context.Context, columnID, cardID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": columnID, "_destroy": false},
		bson.M{
			"$pull": bson.M{"card_order_ids": cardID},
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

// EnsureIndexes creates indexes for the columns collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "board_id", Value: 1}},
			Options: options.Index().SetName("idx_column_board"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}
