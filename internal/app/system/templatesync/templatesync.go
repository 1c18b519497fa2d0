// Package templatesync keeps the public template catalog and the
// owner's membership list in step with board visibility changes.
//
// The board write always commits first; template and membership writes
// follow as independent saga steps. Each step is idempotent, so a
// retry after a partial failure converges instead of erroring:
// creating a template that already exists and deleting one that is
// already gone are reported as outcomes, not failures.
package templatesync

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	templatestore "github.com/kvnhng/boardhub/internal/app/store/templates"
	userstore "github.com/kvnhng/boardhub/internal/app/store/users"
	"github.com/kvnhng/boardhub/internal/domain/models"
)

// DefaultCover is used when a board goes public without a cover of its
// own, so every catalog entry renders with an image.
const DefaultCover = "https://placehold.co/500x300/png"

// Outcome reports what a synchronization pass actually did. Expected
// already-converged states are outcomes here, never errors.
type Outcome int

const (
	// OutcomeNoop means the board's visibility required no catalog
	// change (private board staying private).
	OutcomeNoop Outcome = iota

	// OutcomeApplied means the template and membership writes ran.
	OutcomeApplied

	// OutcomeAlreadyPresent means a live template already existed when
	// a create was attempted.
	OutcomeAlreadyPresent

	// OutcomeAlreadyAbsent means no live template existed when a
	// delete was attempted.
	OutcomeAlreadyAbsent
)

func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeAlreadyPresent:
		return "already-present"
	case OutcomeAlreadyAbsent:
		return "already-absent"
	default:
		return "noop"
	}
}

// TemplateStore is the slice of the template store the synchronizer
// needs.
type TemplateStore interface {
	Create(ctx context.Context, t models.Template) (models.Template, error)
	UpdateByBoardID(ctx context.Context, boardID primitive.ObjectID, p templatestore.Patch) (models.Template, error)
	DeleteByBoardID(ctx context.Context, boardID primitive.ObjectID) (models.Template, error)
}

// MembershipStore is the slice of the user store the synchronizer
// needs.
type MembershipStore interface {
	PushTemplateID(ctx context.Context, userID, templateID primitive.ObjectID) error
	PullTemplateID(ctx context.Context, userID, templateID primitive.ObjectID) error
}

// Synchronizer applies the board-visibility state machine to the
// template catalog.
type Synchronizer struct {
	templates TemplateStore
	members   MembershipStore
	cover     string
	log       *zap.Logger
}

// New constructs a Synchronizer. defaultCover overrides DefaultCover
// when non-empty.
func New(templates TemplateStore, members MembershipStore, defaultCover string, logger *zap.Logger) *Synchronizer {
	if defaultCover == "" {
		defaultCover = DefaultCover
	}
	return &Synchronizer{
		templates: templates,
		members:   members,
		cover:     defaultCover,
		log:       logger,
	}
}

// OnBoardCreated publishes a catalog entry for a freshly created
// public board. cover is the caller-supplied template cover; empty
// falls back to the default placeholder. Private boards are a noop.
func (s *Synchronizer) OnBoardCreated(ctx context.Context, board models.Board, cover string) (Outcome, error) {
	if board.Type != models.BoardTypePublic {
		return OutcomeNoop, nil
	}
	return s.publish(ctx, board, cover)
}

// OnBoardUpdated reconciles the catalog after a board update that may
// have changed visibility. previousType is the board's type before the
// update; board carries the committed state.
func (s *Synchronizer) OnBoardUpdated(ctx context.Context, board models.Board, previousType, cover string) (Outcome, error) {
	switch {
	case board.Type == models.BoardTypePublic:
		// Public boards keep their catalog entry current. Update in
		// place; create when the entry is missing (including the
		// private to public transition).
		patch := templatestore.Patch{
			Title:       &board.Title,
			Description: &board.Description,
		}
		if cover != "" {
			patch.Cover = &cover
		}
		_, err := s.templates.UpdateByBoardID(ctx, board.ID, patch)
		if err == nil {
			return OutcomeApplied, nil
		}
		if !errors.Is(err, templatestore.ErrNotFound) {
			return OutcomeNoop, err
		}
		return s.publish(ctx, board, cover)

	case previousType == models.BoardTypePublic:
		return s.unpublish(ctx, board.ID)

	default:
		return OutcomeNoop, nil
	}
}

// OnBoardDeleted retires the catalog entry of a deleted public board.
// The caller deletes the board itself regardless of this outcome.
func (s *Synchronizer) OnBoardDeleted(ctx context.Context, board models.Board) (Outcome, error) {
	if board.Type != models.BoardTypePublic {
		return OutcomeNoop, nil
	}
	return s.unpublish(ctx, board.ID)
}

// publish creates the template and records it in the owner's
// membership list.
func (s *Synchronizer) publish(ctx context.Context, board models.Board, cover string) (Outcome, error) {
	if cover == "" {
		cover = s.cover
	}
	t, err := s.templates.Create(ctx, models.Template{
		Title:       board.Title,
		Description: board.Description,
		Cover:       cover,
		BoardID:     board.ID,
		CreatedBy:   board.OwnerID,
	})
	if err != nil {
		if errors.Is(err, templatestore.ErrDuplicateBoard) {
			// A concurrent pass or an earlier partial run already
			// published this board.
			s.log.Warn("template already live for board",
				zap.String("board_id", board.ID.Hex()))
			return OutcomeAlreadyPresent, nil
		}
		return OutcomeNoop, err
	}

	if err := s.members.PushTemplateID(ctx, board.OwnerID, t.ID); err != nil {
		return OutcomeNoop, err
	}

	s.log.Info("template published",
		zap.String("board_id", board.ID.Hex()),
		zap.String("template_id", t.ID.Hex()))
	return OutcomeApplied, nil
}

// unpublish deletes the template and compensates the owner's
// membership list. Absence at either step means the state already
// converged.
func (s *Synchronizer) unpublish(ctx context.Context, boardID primitive.ObjectID) (Outcome, error) {
	t, err := s.templates.DeleteByBoardID(ctx, boardID)
	if err != nil {
		if errors.Is(err, templatestore.ErrNotFound) {
			return OutcomeAlreadyAbsent, nil
		}
		return OutcomeNoop, err
	}

	if err := s.members.PullTemplateID(ctx, t.CreatedBy, t.ID); err != nil {
		// The owner account may have been removed since publishing;
		// there is no list left to compensate.
		if errors.Is(err, userstore.ErrNotFound) {
			s.log.Warn("template owner missing during unpublish",
				zap.String("template_id", t.ID.Hex()),
				zap.String("owner_id", t.CreatedBy.Hex()))
			return OutcomeApplied, nil
		}
		return OutcomeNoop, err
	}

	s.log.Info("template retired",
		zap.String("board_id", boardID.Hex()),
		zap.String("template_id", t.ID.Hex()))
	return OutcomeApplied, nil
}
