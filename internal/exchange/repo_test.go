package exchange

import (
	"context"
	"fmt"
	"strings"
	"testing"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := NewRepo(db).Migrate(); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func seed(t *testing.T, repo *Repo, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := repo.Insert(context.Background(), &Exchange{
			MessageID:  fmt.Sprintf("msg_%02d", i),
			Endpoint:   "/api/chat",
			Mode:       "chat",
			Provider:   "fake",
			Outcome:    OutcomeCompleted,
			HTTPStatus: 200,
		}); err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
	}
}

func TestRepo_ListNewestFirstWithCursor(t *testing.T) {
	repo := NewRepo(openTestDB(t))
	seed(t, repo, 5)

	page, err := repo.List(context.Background(), 2, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page) != 2 || page[0].MessageID != "msg_04" || page[1].MessageID != "msg_03" {
		t.Fatalf("unexpected first page: %+v", page)
	}

	next, err := repo.List(context.Background(), 10, page[1].ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(next) != 3 || next[0].MessageID != "msg_02" || next[2].MessageID != "msg_00" {
		t.Fatalf("unexpected second page: %+v", next)
	}
}

func TestRepo_ListClampsLimit(t *testing.T) {
	repo := NewRepo(openTestDB(t))
	seed(t, repo, 3)

	all, err := repo.List(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected default limit to return all 3, got %d", len(all))
	}
}

func TestRecorder_RecordsAndSwallowsErrors(t *testing.T) {
	repo := NewRepo(openTestDB(t))
	rec := NewRecorder(repo)

	msg := "upstream zhipuai: status 500"
	rec.Record(context.Background(), &Exchange{
		MessageID:  "msg_a",
		Endpoint:   "/api/analyze",
		Mode:       "analyze",
		Provider:   "zhipuai",
		Outcome:    OutcomeFailed,
		HTTPStatus: 500,
		Error:      &msg,
	})

	got, err := repo.GetByMessageID(context.Background(), "msg_a")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Outcome != OutcomeFailed || got.Error == nil || *got.Error != msg {
		t.Fatalf("unexpected exchange %+v", got)
	}

	// duplicate message id violates the unique index; Record must only log it
	rec.Record(context.Background(), &Exchange{MessageID: "msg_a", Endpoint: "/api/chat", Mode: "chat", Provider: "x", Outcome: OutcomeCompleted})

	var nilRec *Recorder
	nilRec.Record(context.Background(), &Exchange{MessageID: "ignored"})
}

func TestRecorder_SurvivesCancelledContext(t *testing.T) {
	repo := NewRepo(openTestDB(t))
	rec := NewRecorder(repo)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rec.Record(ctx, &Exchange{MessageID: "msg_c", Endpoint: "/api/analyze", Mode: "analyze", Provider: "p", Outcome: OutcomeCancelled})

	if _, err := repo.GetByMessageID(context.Background(), "msg_c"); err != nil {
		t.Fatalf("exchange for a disconnected client was not recorded: %v", err)
	}
}
