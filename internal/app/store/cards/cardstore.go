// internal/app/store/cards/cardstore.go
package cardstore

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

var ErrNotFound = errors.New("card not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("cards")}
}

func liveByID(id primitive.ObjectID) bson.M {
	return bson.M{"_id": id, "_destroy": false}
}

// after returns the standard "give me the updated document" option.
func after() *options.FindOneAndUpdateOptions {
	return options.FindOneAndUpdate().SetReturnDocument(options.After)
}

// Create inserts a new card.
func (s *Store) Create(ctx context.Context, card models.Card) (models.Card, error) {
	now := time.Now().UTC()
	card.ID = primitive.NewObjectID()
	if card.MemberIDs == nil {
		card.MemberIDs = []primitive.ObjectID{}
	}
	if card.Comments == nil {
		card.Comments = []models.Comment{}
	}
	if card.Attachments == nil {
		card.Attachments = []models.Attachment{}
	}
	card.CreatedAt = now
	card.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, card); err != nil {
		return models.Card{}, err
	}
	return card, nil
}

// GetByID retrieves a live card by its ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Card, error) {
	var card models.Card
	err := s.c.FindOne(ctx, liveByID(id)).Decode(&card)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Card{}, ErrNotFound
		}
		return models.Card{}, err
	}
	return card, nil
}

// Patch holds the directly updatable card fields. Nil pointers are
// left untouched.
type Patch struct {
	Title       *string
	Description *string
	Cover       *string
}

// UpdateFields applies p and returns the updated card.
func (s *Store) UpdateFields(ctx context.Context, id primitive.ObjectID, p Patch) (models.Card, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.Cover != nil {
		set["cover"] = *p.Cover
	}

	var card models.Card
	err := s.c.FindOneAndUpdate(ctx, liveByID(id), bson.M{"$set": set}, after()).Decode(&card)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Card{}, ErrNotFound
		}
		return models.Card{}, err
	}
	return card, nil
}

// UnshiftComment prepends c to the card's comment list ($push with
// $position 0) so comments stay newest-first.
func (s *Store) UnshiftComment(ctx context.Context, id primitive.ObjectID, c models.Comment) (models.Card, error) {
	var card models.Card
	update := bson.M{
		"$push": bson.M{"comments": bson.M{
			"$each":     bson.A{c},
			"$position": 0,
		}},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}
	err := s.c.FindOneAndUpdate(ctx, liveByID(id), update, after()).Decode(&card)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Card{}, ErrNotFound
		}
		return models.Card{}, err
	}
	return card, nil
}

// AddMember adds userID to the card's member list. $addToSet keeps the
// list duplicate-free under concurrent adds.
func (s *Store) AddMember(ctx context.Context, id, userID primitive.ObjectID) (models.Card, error) {
	return s.memberUpdate(ctx, id, bson.M{"$addToSet": bson.M{"member_ids": userID}})
}

// RemoveMember removes userID from the card's member list by value.
func (s *Store) RemoveMember(ctx context.Context, id, userID primitive.ObjectID) (models.Card, error) {
	return s.memberUpdate(ctx, id, bson.M{"$pull": bson.M{"member_ids": userID}})
}

func (s *Store) memberUpdate(ctx context.Context, id primitive.ObjectID, update bson.M) (models.Card, error) {
	update["$set"] = bson.M{"updated_at": time.Now().UTC()}
	var card models.Card
	err := s.c.FindOneAndUpdate(ctx, liveByID(id), update, after()).Decode(&card)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Card{}, ErrNotFound
		}
		return models.Card{}, err
	}
	return card, nil
}

// PushAttachment appends att to the card's attachment list.
func (s *Store) PushAttachment(ctx context.Context, id primitive.ObjectID, att models.Attachment) (models.Card, error) {
	var card models.Card
	update := bson.M{
		"$push": bson.M{"attachments": att},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}
	err := s.c.FindOneAndUpdate(ctx, liveByID(id), update, after()).Decode(&card)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Card{}, ErrNotFound
		}
		return models.Card{}, err
	}
	return card, nil
}

// PullAttachment removes the attachment with attachmentID from the
// card's list.
func (s *Store) PullAttachment(ctx context.Context, id primitive.ObjectID, attachmentID string) (models.Card, error) {
	var card models.Card
	update := bson.M{
		"$pull": bson.M{"attachments": bson.M{"_id": attachmentID}},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}
	err := s.c.FindOneAndUpdate(ctx, liveByID(id), update, after()).Decode(&card)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Card{}, ErrNotFound
		}
		return models.Card{}, err
	}
	return card, nil
}

// SetColumn repoints a card to a different column (used by card moves).
func (s *Store) SetColumn(ctx context.Context, id, columnID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx, liveByID(id),
		bson.M{"$set": bson.M{"column_id": columnID, "updated_at": time.Now().UTC()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SoftDelete marks a card destroyed. The document stays behind for the
// reconciler and for audit history.
func (s *Store) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx, liveByID(id),
		bson.M{"$set": bson.M{"_destroy": true, "updated_at": time.Now().UTC()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SoftDeleteByColumn marks every live card of a column destroyed.
func (s *Store) SoftDeleteByColumn(ctx context.Context, columnID primitive.ObjectID) (int64, error) {
	res, err := s.c.UpdateMany(ctx,
		bson.M{"column_id": columnID, "_destroy": false},
		bson.M{"$set": bson.M{"_destroy": true, "updated_at": time.Now().UTC()}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// FindLiveByBoard returns all live cards on a board.
func (s *Store) FindLiveByBoard(ctx context.Context, boardID primitive.ObjectID) ([]models.Card, error) {
	cur, err := s.c.Find(ctx, bson.M{"board_id": boardID, "_destroy": false})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	cards := []models.Card{}
	if err := cur.All(ctx, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// EnsureIndexes creates indexes for the cards collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "column_id", Value: 1}, {Key: "_destroy", Value: 1}},
			Options: options.Index().SetName("idx_card_column_live"),
		},
		{
			Keys:    bson.D{{Key: "board_id", Value: 1}, {Key: "_destroy", Value: 1}},
			Options: options.Index().SetName("idx_card_board_live"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}
