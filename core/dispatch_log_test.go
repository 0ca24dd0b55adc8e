package core

import (
	"errors"
	"fmt"
	"testing"

	"gatekeeper/models"
)

func newTestLogger(max int) *DispatchLogger {
	return &DispatchLogger{
		logs:    make([]*models.DispatchLog, 0, max),
		maxLogs: max,
	}
}

func TestDispatchLoggerRecentOrder(t *testing.T) {
	l := newTestLogger(10)

	l.Record(models.DispatchKindNotification, 1, "https://hook.example", "timeout")
	l.Record(models.DispatchKindCallback, 2, "https://cb.example", "status 500")

	recent := l.Recent()
	if len(recent) != 2 {
		t.Fatalf("recent = %d entries, want 2", len(recent))
	}
	if recent[0].Kind != models.DispatchKindCallback || recent[1].Kind != models.DispatchKindNotification {
		t.Fatalf("entries must come back latest first: %+v", recent)
	}
	if recent[0].PostID != 2 || recent[0].Target != "https://cb.example" {
		t.Fatalf("unexpected entry: %+v", recent[0])
	}
}

func TestDispatchLoggerEviction(t *testing.T) {
	l := newTestLogger(3)

	for i := 1; i <= 5; i++ {
		l.Record(models.DispatchKindNotification, uint(i), "", fmt.Sprintf("failure %d", i))
	}

	recent := l.Recent()
	if len(recent) != 3 {
		t.Fatalf("ring must cap at 3, got %d", len(recent))
	}
	if recent[0].PostID != 5 || recent[2].PostID != 3 {
		t.Fatalf("oldest entries must be evicted first: %+v", recent)
	}
}

func TestDispatchLoggerClear(t *testing.T) {
	l := newTestLogger(10)
	l.Record(models.DispatchKindCallback, 1, "", "boom")

	l.Clear()
	if len(l.Recent()) != 0 {
		t.Fatalf("clear must drop all entries")
	}
}

func TestLogDispatchFailureRecordsGlobally(t *testing.T) {
	DispatchLoggerInstance.Clear()
	t.Cleanup(DispatchLoggerInstance.Clear)

	LogDispatchFailure(models.DispatchKindCallback, 9, "https://cb.example/x", errors.New("connection refused"))

	recent := DispatchLoggerInstance.Recent()
	if len(recent) != 1 {
		t.Fatalf("recent = %d entries, want 1", len(recent))
	}
	if recent[0].PostID != 9 || recent[0].Message != "connection refused" {
		t.Fatalf("unexpected entry: %+v", recent[0])
	}
}
