// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/kvnhng/boardhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("a user with this email already exists")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create inserts a new user. Username and display name default to the
// local part of the email.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	u.Email = NormalizeEmail(u.Email)
	if u.Username == "" {
		u.Username, _, _ = strings.Cut(u.Email, "@")
	}
	if u.DisplayName == "" {
		u.DisplayName = u.Username
	}
	if u.Role == "" {
		u.Role = models.RoleClient
	}
	if u.TemplateIDs == nil {
		u.TemplateIDs = []primitive.ObjectID{}
	}
	u.CreatedAt = now
	u.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// GetByID retrieves a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	return s.findOne(ctx, bson.M{"_id": id, "_destroy": false})
}

// GetByEmail retrieves a user by normalized email.
func (s *Store) GetByEmail(ctx context.Context, email string) (models.User, error) {
	return s.findOne(ctx, bson.M{"email": NormalizeEmail(email), "_destroy": false})
}

func (s *Store) findOne(ctx context.Context, filter bson.M) (models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, filter).Decode(&u)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return u, nil
}

// Patch holds the user fields a caller may change. Nil pointers are
// left untouched. Email, username, and creation time are immutable.
type Patch struct {
	DisplayName  *string
	Avatar       *string
	PasswordHash *string
}

// Update applies p and returns the updated user.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, p Patch) (models.User, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if p.DisplayName != nil {
		set["display_name"] = *p.DisplayName
	}
	if p.Avatar != nil {
		set["avatar"] = *p.Avatar
	}
	if p.PasswordHash != nil {
		set["password_hash"] = *p.PasswordHash
	}

	var u models.User
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "_destroy": false},
		bson.M{"$set": set},
		opts,
	).Decode(&u)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return u, nil
}

// SetOTP stores a fresh one-time code and its expiry.
func (s *Store) SetOTP(ctx context.Context, id primitive.ObjectID, code string, expires time.Time) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "_destroy": false},
		bson.M{"$set": bson.M{
			"otp_code":    code,
			"otp_expires": expires,
			"updated_at":  time.Now().UTC(),
		}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Activate marks the account verified and clears the one-time code.
func (s *Store) Activate(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var u models.User
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "_destroy": false},
		bson.M{
			"$set":   bson.M{"is_active": true, "updated_at": time.Now().UTC()},
			"$unset": bson.M{"otp_code": "", "otp_expires": ""},
		},
		opts,
	).Decode(&u)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return u, nil
}

// PushTemplateID adds templateID to the user's membership list.
// $addToSet keeps the set duplicate-free even when the synchronizer
// retries after a partial failure.
func (s *Store) PushTemplateID(ctx context.Context, userID, templateID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": userID, "_destroy": false},
		bson.M{
			"$addToSet": bson.M{"template_ids": templateID},
			"$set":      bson.M{"updated_at": time.Now().UTC()},
		})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// PullTemplateID removes templateID from the user's membership list by
// value. Pulling an absent id matches the user and changes nothing,
// which keeps compensating removals idempotent.
func (s *Store) PullTemplateID(ctx context.Context, userID, templateID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": userID, "_destroy": false},
		bson.M{
			"$pull": bson.M{"template_ids": templateID},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// EnsureIndexes creates indexes for the users collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_user_email"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}
