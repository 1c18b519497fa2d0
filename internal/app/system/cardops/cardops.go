// Package cardops owns card lifecycle and mutation semantics: the
// create/delete pair that keeps a column's order list in step with its
// live cards, the single-mutation dispatcher behind the card update
// endpoint, and attachment handling against object storage.
package cardops

import (
	"context"
	"errors"
	"io"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	cardstore "github.com/kvnhng/boardhub/internal/app/store/cards"
	"github.com/kvnhng/boardhub/internal/app/system/blobstore"
	"github.com/kvnhng/boardhub/internal/app/system/htmlsanitize"
	"github.com/kvnhng/boardhub/internal/domain/models"
)

// ErrAttachmentNotFound means the card exists but carries no
// attachment with the requested id.
var ErrAttachmentNotFound = errors.New("attachment not found")

// CardStore is the slice of the card store the manager needs.
type CardStore interface {
	Create(ctx context.Context, card models.Card) (models.Card, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (models.Card, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, p cardstore.Patch) (models.Card, error)
	UnshiftComment(ctx context.Context, id primitive.ObjectID, c models.Comment) (models.Card, error)
	AddMember(ctx context.Context, id, userID primitive.ObjectID) (models.Card, error)
	RemoveMember(ctx context.Context, id, userID primitive.ObjectID) (models.Card, error)
	PushAttachment(ctx context.Context, id primitive.ObjectID, att models.Attachment) (models.Card, error)
	PullAttachment(ctx context.Context, id primitive.ObjectID, attachmentID string) (models.Card, error)
	SoftDelete(ctx context.Context, id primitive.ObjectID) error
}

// ColumnStore is the slice of the column store the manager needs.
type ColumnStore interface {
	PushCardOrder(ctx context.Context, columnID, cardID primitive.ObjectID) error
	PullCardOrder(ctx context.Context, columnID, cardID primitive.ObjectID) error
}

// UploadFile carries an incoming multipart file into the manager.
type UploadFile struct {
	Name        string
	ContentType string
	Size        int64
	Data        io.Reader
}

// Actor identifies the signed-in user a mutation runs as.
type Actor struct {
	ID    primitive.ObjectID
	Email string
}

// Manager implements card lifecycle and mutations.
type Manager struct {
	cards   CardStore
	columns ColumnStore
	blobs   blobstore.Store
	log     *zap.Logger
}

func New(cards CardStore, columns ColumnStore, blobs blobstore.Store, logger *zap.Logger) *Manager {
	return &Manager{
		cards:   cards,
		columns: columns,
		blobs:   blobs,
		log:     logger,
	}
}

// Create inserts the card, then appends its id to the parent column's
// order list with an atomic push. If the append fails the card row
// stays behind as a recoverable inconsistency; the reconciler finds it
// later.
func (m *Manager) Create(ctx context.Context, card models.Card) (models.Card, error) {
	card.Description = htmlsanitize.Sanitize(card.Description)

	created, err := m.cards.Create(ctx, card)
	if err != nil {
		return models.Card{}, err
	}

	if err := m.columns.PushCardOrder(ctx, created.ColumnID, created.ID); err != nil {
		m.log.Warn("card created but not appended to column order list",
			zap.String("card_id", created.ID.Hex()),
			zap.String("column_id", created.ColumnID.Hex()),
			zap.Error(err))
		return models.Card{}, err
	}
	return created, nil
}

// Delete soft-deletes the card and removes its id from the owning
// column's order list by value. Returns the card store's ErrNotFound
// when the card does not exist; the order list is left untouched in
// that case.
func (m *Manager) Delete(ctx context.Context, cardID primitive.ObjectID) error {
	card, err := m.cards.GetByID(ctx, cardID)
	if err != nil {
		return err
	}
	if err := m.cards.SoftDelete(ctx, cardID); err != nil {
		return err
	}
	return m.columns.PullCardOrder(ctx, card.ColumnID, cardID)
}
