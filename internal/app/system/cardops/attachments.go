package cardops

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/kvnhng/boardhub/internal/app/system/blobstore"
	"github.com/kvnhng/boardhub/internal/domain/models"
)

// UploadAttachment classifies the file by MIME type, stores the blob,
// and appends the attachment record to the card's list.
func (m *Manager) UploadAttachment(ctx context.Context, cardID primitive.ObjectID, file UploadFile) (models.Card, error) {
	if _, err := m.cards.GetByID(ctx, cardID); err != nil {
		return models.Card{}, err
	}

	category := blobstore.CategoryForMIME(file.ContentType)
	att := models.Attachment{
		ID:         uuid.NewString(),
		Name:       file.Name,
		Size:       file.Size,
		MIMEType:   file.ContentType,
		UploadedAt: time.Now().UTC(),
	}
	att.Key = fmt.Sprintf("attachments/%s/%s%s", category, att.ID, path.Ext(file.Name))

	url, err := m.blobs.Put(ctx, att.Key, file.ContentType, file.Data, file.Size)
	if err != nil {
		return models.Card{}, fmt.Errorf("upload attachment: %w", err)
	}
	att.URL = url

	card, err := m.cards.PushAttachment(ctx, cardID, att)
	if err != nil {
		if delErr := m.blobs.Delete(ctx, att.Key); delErr != nil {
			m.log.Warn("orphaned attachment blob after failed push",
				zap.String("key", att.Key), zap.Error(delErr))
		}
		return models.Card{}, err
	}
	return card, nil
}

// DeleteAttachment removes the attachment from the card. The blob is
// deleted first so a crash mid-operation leaves a dangling record, not
// an unreachable blob that nothing would ever clean up.
func (m *Manager) DeleteAttachment(ctx context.Context, cardID primitive.ObjectID, attachmentID string) (models.Card, error) {
	card, err := m.cards.GetByID(ctx, cardID)
	if err != nil {
		return models.Card{}, err
	}

	var target *models.Attachment
	for i := range card.Attachments {
		if card.Attachments[i].ID == attachmentID {
			target = &card.Attachments[i]
			break
		}
	}
	if target == nil {
		return models.Card{}, ErrAttachmentNotFound
	}

	if target.Key != "" {
		if err := m.blobs.Delete(ctx, target.Key); err != nil {
			return models.Card{}, fmt.Errorf("delete attachment blob: %w", err)
		}
	}
	return m.cards.PullAttachment(ctx, cardID, attachmentID)
}
