package bootstrap

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	userstore "github.com/kvnhng/boardhub/internal/app/store/users"
	"github.com/kvnhng/boardhub/internal/domain/models"
	"github.com/kvnhng/boardhub/internal/testutil"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func TestEnsureAdmin_CreatesPlaceholder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := DBDeps{MongoDatabase: db}

	if err := ensureAdmin(ctx, deps, "admin@test.com", testLogger()); err != nil {
		t.Fatalf("ensureAdmin failed: %v", err)
	}

	var user models.User
	err := db.Collection("users").FindOne(ctx, bson.M{"email": "admin@test.com"}).Decode(&user)
	if err != nil {
		t.Fatalf("failed to find created user: %v", err)
	}

	if user.Role != models.RoleAdmin {
		t.Errorf("role: got %q, want %q", user.Role, models.RoleAdmin)
	}
	if user.IsActive {
		t.Error("placeholder account should be inactive until its owner registers")
	}
	if user.PasswordHash != "" {
		t.Error("placeholder account should have no password")
	}
}

func TestEnsureAdmin_PromotesExisting(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	users := userstore.New(db)
	existing, err := users.Create(ctx, models.User{
		Email:    "existing@test.com",
		Role:     models.RoleClient,
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("create existing user: %v", err)
	}

	deps := DBDeps{MongoDatabase: db}
	if err := ensureAdmin(ctx, deps, "Existing@Test.com", testLogger()); err != nil {
		t.Fatalf("ensureAdmin failed: %v", err)
	}

	got, err := users.GetByID(ctx, existing.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Role != models.RoleAdmin {
		t.Errorf("role: got %q, want %q", got.Role, models.RoleAdmin)
	}
	if !got.IsActive {
		t.Error("promotion should not deactivate the account")
	}
}

func TestEnsureAdmin_AlreadyAdmin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	users := userstore.New(db)
	if _, err := users.Create(ctx, models.User{
		Email: "boss@test.com",
		Role:  models.RoleAdmin,
	}); err != nil {
		t.Fatalf("create admin user: %v", err)
	}

	deps := DBDeps{MongoDatabase: db}
	if err := ensureAdmin(ctx, deps, "boss@test.com", testLogger()); err != nil {
		t.Fatalf("ensureAdmin failed: %v", err)
	}

	n, err := db.Collection("users").CountDocuments(ctx, bson.M{"email": "boss@test.com"})
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if n != 1 {
		t.Errorf("user count: got %d, want 1", n)
	}
}
