// Package reconcile detects drift between a column's card order list
// and its live cards. The card create/delete saga has a window where a
// crash leaves a card row with no order-list entry (or the reverse);
// those states are recoverable, but nothing repairs them inline, so
// this checker surfaces them for operators.
package reconcile

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/kvnhng/boardhub/internal/domain/models"
	"github.com/kvnhng/boardhub/internal/domain/orderedref"
)

// Report describes the drift found on one column.
type Report struct {
	ColumnID primitive.ObjectID `json:"column_id"`

	// MissingFromOrder lists live cards the order list does not
	// reference (a create whose append never landed).
	MissingFromOrder []primitive.ObjectID `json:"missing_from_order"`

	// OrphanedInOrder lists order entries with no live card behind
	// them (a delete whose pull never landed).
	OrphanedInOrder []primitive.ObjectID `json:"orphaned_in_order"`

	// DuplicateInOrder lists ids appearing more than once.
	DuplicateInOrder []primitive.ObjectID `json:"duplicate_in_order"`
}

// Clean reports whether the column's order list matches its live
// cards exactly.
func (r Report) Clean() bool {
	return len(r.MissingFromOrder) == 0 &&
		len(r.OrphanedInOrder) == 0 &&
		len(r.DuplicateInOrder) == 0
}

// ColumnStore is the slice of the column store the checker needs.
type ColumnStore interface {
	FindByBoard(ctx context.Context, boardID primitive.ObjectID) ([]models.Column, error)
}

// CardStore is the slice of the card store the checker needs.
type CardStore interface {
	FindLiveByBoard(ctx context.Context, boardID primitive.ObjectID) ([]models.Card, error)
}

// Checker scans boards for order-list drift.
type Checker struct {
	columns ColumnStore
	cards   CardStore
	log     *zap.Logger
}

func New(columns ColumnStore, cards CardStore, logger *zap.Logger) *Checker {
	return &Checker{columns: columns, cards: cards, log: logger}
}

// CheckBoard compares every column of the board against its live
// cards and returns a report per drifted column. An empty slice means
// the board is consistent.
func (c *Checker) CheckBoard(ctx context.Context, boardID primitive.ObjectID) ([]Report, error) {
	cols, err := c.columns.FindByBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	cards, err := c.cards.FindLiveByBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}

	liveByColumn := map[primitive.ObjectID][]primitive.ObjectID{}
	for _, card := range cards {
		liveByColumn[card.ColumnID] = append(liveByColumn[card.ColumnID], card.ID)
	}

	var drifted []Report
	for _, col := range cols {
		live := liveByColumn[col.ID]
		report := Report{
			ColumnID:         col.ID,
			MissingFromOrder: orderedref.Missing(col.CardOrderIDs, live),
			OrphanedInOrder:  orderedref.Orphaned(col.CardOrderIDs, live),
			DuplicateInOrder: orderedref.Duplicates(col.CardOrderIDs),
		}
		if report.Clean() {
			continue
		}
		c.log.Warn("column order list drifted",
			zap.String("board_id", boardID.Hex()),
			zap.String("column_id", col.ID.Hex()),
			zap.Int("missing", len(report.MissingFromOrder)),
			zap.Int("orphaned", len(report.OrphanedInOrder)),
			zap.Int("duplicate", len(report.DuplicateInOrder)))
		drifted = append(drifted, report)
	}
	return drifted, nil
}
