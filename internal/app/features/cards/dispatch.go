// internal/app/features/cards/dispatch.go
package cards

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kvnhng/boardhub/internal/app/system/cardops"
)

// memberChange is the membership half of the legacy update payload.
type memberChange struct {
	UserID primitive.ObjectID  `json:"user_id"`
	Action cardops.MemberAction `json:"action"`
}

// updatePayload is the legacy single-endpoint card update body. A
// client may (wrongly) populate several groups at once; exactly one
// mutation is selected from it.
type updatePayload struct {
	Title        *string       `json:"title"`
	Description  *string       `json:"description"`
	CommentToAdd *string       `json:"comment_to_add"`
	MemberChange *memberChange `json:"member_change"`
}

// mutationFromRequest maps the legacy payload plus an optional cover
// file onto exactly one tagged mutation. Precedence when several
// groups are present: cover, then comment, then member change, then
// the generic field patch. The precedence is deliberate and pinned by
// test; changing it silently changes which side effect a mixed
// payload triggers.
func mutationFromRequest(p updatePayload, cover *cardops.UploadFile) cardops.Mutation {
	switch {
	case cover != nil:
		return cardops.SetCover{File: *cover}
	case p.CommentToAdd != nil:
		return cardops.AddComment{Content: *p.CommentToAdd}
	case p.MemberChange != nil:
		return cardops.ChangeMember{
			UserID: p.MemberChange.UserID,
			Action: p.MemberChange.Action,
		}
	default:
		return cardops.PatchFields{
			Title:       p.Title,
			Description: p.Description,
		}
	}
}
