// internal/app/features/users/register_test.go
package users

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	userstore "github.com/kvnhng/boardhub/internal/app/store/users"
	"github.com/kvnhng/boardhub/internal/app/system/ratelimit"
	"github.com/kvnhng/boardhub/internal/domain/models"
	"github.com/kvnhng/boardhub/internal/testutil"
)

// recordingNotifier captures the codes the handler sends.
type recordingNotifier struct {
	to    []string
	codes []string
}

func (n *recordingNotifier) SendOneTimeCode(to, code, _ string) error {
	n.to = append(n.to, to)
	n.codes = append(n.codes, code)
	return nil
}

func newRegisterHandler(store *userstore.Store) (*Handler, *recordingNotifier) {
	notify := &recordingNotifier{}
	h := &Handler{
		Users:  store,
		Notify: notify,
		Limits: ratelimit.NewAuthLimiter(),
		Log:    zap.NewNop(),
	}
	return h, notify
}

func postRegister(h *Handler, email, password string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	r := httptest.NewRequest(http.MethodPost, "/v1/users/register", bytes.NewReader(body))
	w := httptest.NewRecorder()
	h.HandleRegister(w, r)
	return w
}

func TestRegister_Throttled(t *testing.T) {
	// No store wired: the throttle must answer before any store access.
	h, notify := newRegisterHandler(nil)

	blank := httptest.NewRequest(http.MethodPost, "/v1/users/register", nil)
	for i := 0; i < 5; i++ {
		if ok, _ := h.Limits.Check(blank, "busy@example.com"); !ok {
			t.Fatalf("attempt %d blocked before the window filled", i)
		}
	}

	w := postRegister(h, "busy@example.com", "password123")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", w.Code)
	}
	if len(notify.codes) != 0 {
		t.Error("no code should be sent for a throttled attempt")
	}
}

func TestRegister_ClaimsProvisionedPlaceholder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes: %v", err)
	}
	placeholder, err := store.Create(ctx, models.User{
		Email: "owner@example.com",
		Role:  models.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("create placeholder: %v", err)
	}

	h, notify := newRegisterHandler(store)
	w := postRegister(h, "owner@example.com", "password123")
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}

	claimed, err := store.GetByID(ctx, placeholder.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if claimed.PasswordHash == "" {
		t.Error("expected the claim to set a password hash")
	}
	if claimed.Role != models.RoleAdmin {
		t.Errorf("role = %q, want admin role kept", claimed.Role)
	}
	if claimed.IsActive {
		t.Error("claiming must not activate; the code still has to be verified")
	}
	if len(notify.to) != 1 || notify.to[0] != "owner@example.com" {
		t.Errorf("notified = %v, want one code to the owner", notify.to)
	}
}

func TestRegister_DuplicateActiveAccount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes: %v", err)
	}
	user, err := store.Create(ctx, models.User{
		Email:        "taken@example.com",
		PasswordHash: "existing-hash",
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if _, err := store.Activate(ctx, user.ID); err != nil {
		t.Fatalf("Activate: %v", err)
	}

	h, notify := newRegisterHandler(store)
	w := postRegister(h, "taken@example.com", "password123")
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}
	if len(notify.codes) != 0 {
		t.Error("no code should be sent for a duplicate registration")
	}
}

func TestRegister_DuplicateUnverifiedAccount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes: %v", err)
	}
	// Inactive but holding a password: a real pending registration, not
	// a claimable placeholder.
	if _, err := store.Create(ctx, models.User{
		Email:        "pending@example.com",
		PasswordHash: "existing-hash",
	}); err != nil {
		t.Fatalf("create user: %v", err)
	}

	h, _ := newRegisterHandler(store)
	w := postRegister(h, "pending@example.com", "password123")
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}
}
