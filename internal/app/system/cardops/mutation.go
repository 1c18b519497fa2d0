package cardops

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	cardstore "github.com/kvnhng/boardhub/internal/app/store/cards"
	"github.com/kvnhng/boardhub/internal/app/system/htmlsanitize"
	"github.com/kvnhng/boardhub/internal/domain/models"
)

// MemberAction selects the direction of a membership toggle.
type MemberAction string

const (
	MemberAdd    MemberAction = "ADD"
	MemberRemove MemberAction = "REMOVE"
)

// Mutation is one of the four card mutations. The HTTP layer decides
// which one a request means; exactly one runs per Apply call, so a
// payload can never trigger two side effects.
type Mutation interface {
	isMutation()
}

// SetCover replaces the card's cover with an uploaded image.
type SetCover struct {
	File UploadFile
}

// AddComment prepends a comment stamped with the acting user.
type AddComment struct {
	Content string
}

// ChangeMember adds or removes a user from the card's member list.
type ChangeMember struct {
	UserID primitive.ObjectID
	Action MemberAction
}

// PatchFields applies a plain field update.
type PatchFields struct {
	Title       *string
	Description *string
}

func (SetCover) isMutation()     {}
func (AddComment) isMutation()   {}
func (ChangeMember) isMutation() {}
func (PatchFields) isMutation()  {}

// Apply executes a single mutation against the card and returns the
// updated document.
func (m *Manager) Apply(ctx context.Context, cardID primitive.ObjectID, mut Mutation, actor Actor) (models.Card, error) {
	switch mut := mut.(type) {
	case SetCover:
		return m.setCover(ctx, cardID, mut.File)

	case AddComment:
		comment := models.Comment{
			UserID:      actor.ID,
			UserEmail:   actor.Email,
			Content:     htmlsanitize.Sanitize(mut.Content),
			CommentedAt: time.Now().UTC(),
		}
		return m.cards.UnshiftComment(ctx, cardID, comment)

	case ChangeMember:
		if mut.Action == MemberRemove {
			return m.cards.RemoveMember(ctx, cardID, mut.UserID)
		}
		return m.cards.AddMember(ctx, cardID, mut.UserID)

	case PatchFields:
		p := cardstore.Patch{Title: mut.Title}
		if mut.Description != nil {
			clean := htmlsanitize.Sanitize(*mut.Description)
			p.Description = &clean
		}
		return m.cards.UpdateFields(ctx, cardID, p)

	default:
		return models.Card{}, fmt.Errorf("unknown mutation %T", mut)
	}
}

func (m *Manager) setCover(ctx context.Context, cardID primitive.ObjectID, file UploadFile) (models.Card, error) {
	// Fail fast on a dead card before touching object storage.
	if _, err := m.cards.GetByID(ctx, cardID); err != nil {
		return models.Card{}, err
	}

	key := "card-covers/" + uuid.NewString() + path.Ext(file.Name)
	url, err := m.blobs.Put(ctx, key, file.ContentType, file.Data, file.Size)
	if err != nil {
		return models.Card{}, fmt.Errorf("upload cover: %w", err)
	}

	card, err := m.cards.UpdateFields(ctx, cardID, cardstore.Patch{Cover: &url})
	if err != nil {
		// The card vanished between the check and the update; do not
		// leave the blob orphaned.
		if delErr := m.blobs.Delete(ctx, key); delErr != nil {
			m.log.Warn("orphaned cover blob after failed update",
				zap.String("key", key), zap.Error(delErr))
		}
		return models.Card{}, err
	}
	return card, nil
}
