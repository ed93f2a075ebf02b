package user

import (
	"context"
	"testing"

	"github.com/yungbote/cleanarch-backend/internal/data/repos/testutil"
	domainuser "github.com/yungbote/cleanarch-backend/internal/domain/user"
	"github.com/yungbote/cleanarch-backend/internal/platform/ctxutil"
	"github.com/yungbote/cleanarch-backend/internal/platform/dbctx"
)

func TestUserRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := ctxutil.WithRequestData(context.Background(), &ctxutil.RequestData{Username: "admin"})
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewUserRepo(db, testutil.Logger(t))

	u, err := domainuser.New("userrepo", "UserRepo@Example.com", "hash", "User Repo")
	if err != nil {
		t.Fatalf("build user: %v", err)
	}
	if err := u.AddRole(domainuser.RoleUser); err != nil {
		t.Fatalf("AddRole: %v", err)
	}
	if err := repo.Add(dbc, u); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if u.CreatedBy != "admin" || u.CreatedAt.IsZero() {
		t.Fatalf("audit not stamped: by=%q at=%v", u.CreatedBy, u.CreatedAt)
	}

	got, err := repo.GetByUsername(dbc, "USERREPO")
	if err != nil || got == nil {
		t.Fatalf("GetByUsername: err=%v got=%v", err, got)
	}
	if !got.HasRole(domainuser.RoleUser) {
		t.Fatalf("roles not persisted: %v", got.Roles)
	}

	if got, err := repo.GetByEmail(dbc, "userrepo@example.com"); err != nil || got == nil {
		t.Fatalf("GetByEmail: err=%v got=%v", err, got)
	}
	if exists, err := repo.UsernameExists(dbc, "userrepo"); err != nil || !exists {
		t.Fatalf("UsernameExists: err=%v exists=%v", err, exists)
	}
	if exists, err := repo.EmailExists(dbc, "missing@example.com"); err != nil || exists {
		t.Fatalf("EmailExists (missing): err=%v exists=%v", err, exists)
	}
	if missing, err := repo.GetByUsername(dbc, "nobody"); err != nil || missing != nil {
		t.Fatalf("GetByUsername (missing): err=%v got=%v", err, missing)
	}

	got.Deactivate()
	if err := repo.Update(dbc, got); err != nil {
		t.Fatalf("Update: %v", err)
	}
	reloaded, err := repo.GetByID(dbc, u.ID)
	if err != nil || reloaded == nil {
		t.Fatalf("GetByID: err=%v", err)
	}
	if reloaded.IsActive {
		t.Fatalf("expected user to be inactive after update")
	}
	if reloaded.ModifiedAt == nil || reloaded.ModifiedBy != "admin" {
		t.Fatalf("modified audit not stamped: %+v", reloaded.Audit)
	}
}
