package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/reckot/checkin-station/internal/logger"
	"github.com/reckot/checkin-station/models"
)

func newTestCheckinRepo(t *testing.T) (*checkinRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &checkinRepository{
		DB:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func TestSaveCheckin_ReturnsLocalID(t *testing.T) {
	repo, mock, db := newTestCheckinRepo(t)
	defer db.Close()

	ctx := context.Background()
	checkin := models.PendingCheckin{
		ClientRef:  "ref-1",
		TicketCode: "ABC123",
		Timestamp:  time.Now(),
		Notes:      "Offline check-in",
	}

	mock.ExpectExec("INSERT INTO checkins").
		WithArgs(checkin.ClientRef, checkin.TicketCode, checkin.Timestamp, checkin.Notes, false, "", false).
		WillReturnResult(sqlmock.NewResult(7, 1))

	localID, err := repo.SaveCheckin(ctx, checkin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if localID != 7 {
		t.Errorf("expected localID=7, got %d", localID)
	}
}

func TestSaveCheckin_ExecError(t *testing.T) {
	repo, mock, db := newTestCheckinRepo(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO checkins").
		WillReturnError(errors.New("disk I/O error"))

	_, err := repo.SaveCheckin(context.Background(), models.PendingCheckin{TicketCode: "ABC123"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestGetUnsyncedCheckins_OrderedOldestFirst(t *testing.T) {
	repo, mock, db := newTestCheckinRepo(t)
	defer db.Close()

	t1 := time.Now().Add(-2 * time.Minute)
	t2 := time.Now().Add(-1 * time.Minute)

	rows := sqlmock.
		NewRows([]string{"local_id", "client_ref", "ticket_code", "timestamp", "notes", "synced", "server_reference", "conflict"}).
		AddRow(1, "ref-1", "AAA", t1, "Offline check-in", false, "", false).
		AddRow(2, "ref-2", "BBB", t2, "Offline check-in", false, "", false)

	mock.ExpectQuery("SELECT (.+) FROM checkins").WillReturnRows(rows)

	checkins, err := repo.GetUnsyncedCheckins(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(checkins) != 2 {
		t.Fatalf("expected 2 check-ins, got %d", len(checkins))
	}
	if checkins[0].TicketCode != "AAA" || checkins[1].TicketCode != "BBB" {
		t.Errorf("expected insertion order AAA,BBB, got %s,%s", checkins[0].TicketCode, checkins[1].TicketCode)
	}
}

func TestMarkCheckinSynced_StoresReference(t *testing.T) {
	repo, mock, db := newTestCheckinRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE checkins SET").
		WithArgs("srv-ref-42", int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.MarkCheckinSynced(context.Background(), 3, "srv-ref-42"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMarkCheckinSynced_NotFound(t *testing.T) {
	repo, mock, db := newTestCheckinRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE checkins SET").
		WithArgs("srv-ref-42", int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.MarkCheckinSynced(context.Background(), 99, "srv-ref-42")
	if !errors.Is(err, ErrCheckinNotFound) {
		t.Errorf("expected ErrCheckinNotFound, got %v", err)
	}
}

func TestMarkCheckinConflict_SettlesRecord(t *testing.T) {
	repo, mock, db := newTestCheckinRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE checkins SET").
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.MarkCheckinConflict(context.Background(), 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCountUnsyncedCheckins(t *testing.T) {
	repo, mock, db := newTestCheckinRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	count, err := repo.CountUnsyncedCheckins(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 4 {
		t.Errorf("expected count=4, got %d", count)
	}
}

func TestHasUnsyncedCheckin(t *testing.T) {
	repo, mock, db := newTestCheckinRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("TCK-001").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	queued, err := repo.HasUnsyncedCheckin(context.Background(), "TCK-001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !queued {
		t.Error("expected queued=true for a pending ticket code")
	}

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("TCK-002").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	queued, err = repo.HasUnsyncedCheckin(context.Background(), "TCK-002")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if queued {
		t.Error("expected queued=false for an unqueued ticket code")
	}
}
