// internal/domain/models/card.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Card is a single task on a column. Comments, attachments, and the
// member list are embedded in the card document; comments are kept
// newest-first.
type Card struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BoardID     primitive.ObjectID `bson:"board_id" json:"board_id"`
	ColumnID    primitive.ObjectID `bson:"column_id" json:"column_id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Cover       string             `bson:"cover,omitempty" json:"cover,omitempty"`

	MemberIDs   []primitive.ObjectID `bson:"member_ids" json:"member_ids"`
	Comments    []Comment            `bson:"comments" json:"comments"`
	Attachments []Attachment         `bson:"attachments" json:"attachments"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
	Destroyed bool      `bson:"_destroy" json:"-"`
}

// Comment is stamped with the acting user at append time.
type Comment struct {
	UserID      primitive.ObjectID `bson:"user_id" json:"user_id"`
	UserEmail   string             `bson:"user_email" json:"user_email"`
	Content     string             `bson:"content" json:"content"`
	CommentedAt time.Time          `bson:"commented_at" json:"commented_at"`
}

// Attachment describes a blob stored in object storage. ID is a UUID
// unique within the card; Key is the object-storage key needed to
// delete the blob when the attachment is removed.
type Attachment struct {
	ID         string    `bson:"_id" json:"id"`
	Name       string    `bson:"name" json:"name"`
	URL        string    `bson:"url" json:"url"`
	Key        string    `bson:"key" json:"-"`
	Size       int64     `bson:"size" json:"size"`
	MIMEType   string    `bson:"mime_type" json:"mime_type"`
	UploadedAt time.Time `bson:"uploaded_at" json:"uploaded_at"`
}
