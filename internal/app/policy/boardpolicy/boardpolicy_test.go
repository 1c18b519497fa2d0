package boardpolicy

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kvnhng/boardhub/internal/app/system/auth"
	"github.com/kvnhng/boardhub/internal/domain/models"
)

func TestCanModify(t *testing.T) {
	ownerID := primitive.NewObjectID()
	board := models.Board{OwnerID: ownerID, Type: models.BoardTypePrivate}

	owner := &auth.SessionUser{ID: ownerID, Role: models.RoleClient}
	admin := &auth.SessionUser{ID: primitive.NewObjectID(), Role: models.RoleAdmin}
	stranger := &auth.SessionUser{ID: primitive.NewObjectID(), Role: models.RoleClient}

	if !CanModify(owner, board) {
		t.Error("owner should be able to modify their board")
	}
	if !CanModify(admin, board) {
		t.Error("admin should be able to modify any board")
	}
	if CanModify(stranger, board) {
		t.Error("other users should not be able to modify the board")
	}
	if CanModify(nil, board) {
		t.Error("nil user should not be able to modify anything")
	}
}

func TestCanView(t *testing.T) {
	ownerID := primitive.NewObjectID()
	private := models.Board{OwnerID: ownerID, Type: models.BoardTypePrivate}
	public := models.Board{OwnerID: ownerID, Type: models.BoardTypePublic}

	stranger := &auth.SessionUser{ID: primitive.NewObjectID(), Role: models.RoleClient}

	if CanView(stranger, private) {
		t.Error("stranger should not see a private board")
	}
	if !CanView(stranger, public) {
		t.Error("any signed-in user should see a public board")
	}
	if !CanView(&auth.SessionUser{ID: ownerID, Role: models.RoleClient}, private) {
		t.Error("owner should see their private board")
	}
}
