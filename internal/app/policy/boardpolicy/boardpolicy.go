// Package boardpolicy decides who may do what to a board.
//
// Authorization rules:
//   - The owner can view and modify their own boards
//   - Admins can view and modify any board (moderation of the public
//     catalog)
//   - Anyone signed in can view a public board
package boardpolicy

import (
	"github.com/kvnhng/boardhub/internal/app/system/auth"
	"github.com/kvnhng/boardhub/internal/domain/models"
)

// CanView reports whether user may read the board and its contents.
func CanView(user *auth.SessionUser, board models.Board) bool {
	if user == nil {
		return false
	}
	if board.Type == models.BoardTypePublic {
		return true
	}
	return board.OwnerID == user.ID || user.Role == models.RoleAdmin
}

// CanModify reports whether user may change or delete the board.
func CanModify(user *auth.SessionUser, board models.Board) bool {
	if user == nil {
		return false
	}
	return board.OwnerID == user.ID || user.Role == models.RoleAdmin
}
