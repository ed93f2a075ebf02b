package notification

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/yungbote/cleanarch-backend/internal/data/repos/testutil"
	domainnotification "github.com/yungbote/cleanarch-backend/internal/domain/notification"
	"github.com/yungbote/cleanarch-backend/internal/platform/dbctx"
)

func TestNotificationRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := NewNotificationRepo(db, testutil.Logger(t))

	alice := uuid.New()
	bob := uuid.New()
	mustAdd := func(title string, userID *uuid.UUID) *domainnotification.Notification {
		t.Helper()
		n, err := domainnotification.New(title, title+" body", domainnotification.TypeInfo, userID, "", nil)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		if err := repo.Add(dbc, n); err != nil {
			t.Fatalf("Add: %v", err)
		}
		return n
	}
	mustAdd("for alice", &alice)
	mustAdd("for bob", &bob)
	mustAdd("for everyone", nil)

	forAlice, err := repo.ListForUser(dbc, alice)
	if err != nil || len(forAlice) != 2 {
		t.Fatalf("ListForUser: err=%v len=%d", err, len(forAlice))
	}

	unread, err := repo.CountUnreadForUser(dbc, alice)
	if err != nil || unread != 2 {
		t.Fatalf("CountUnreadForUser: err=%v n=%d", err, unread)
	}

	marked, err := repo.MarkAllReadForUser(dbc, alice, time.Now())
	if err != nil || marked != 2 {
		t.Fatalf("MarkAllReadForUser: err=%v n=%d", err, marked)
	}

	bobUnread, err := repo.ListUnreadForUser(dbc, bob)
	if err != nil {
		t.Fatalf("ListUnreadForUser: %v", err)
	}
	if len(bobUnread) != 1 || bobUnread[0].Title != "for bob" {
		t.Fatalf("ListUnreadForUser: unexpected %+v", bobUnread)
	}

	recent, err := repo.ListRecent(dbc, 2)
	if err != nil || len(recent) != 2 {
		t.Fatalf("ListRecent: err=%v len=%d", err, len(recent))
	}
}
