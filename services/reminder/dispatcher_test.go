package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/prathameshp107/ClinLabOps-sub003/models"
	"github.com/prathameshp107/ClinLabOps-sub003/models/channel"
)

type fakeChannel struct {
	name        string
	validateErr error
	sendErr     error
	prepareErr  error
	sent        []channel.Message
}

func (f *fakeChannel) Name() string                                        { return f.name }
func (f *fakeChannel) Validate(meta map[string]string) error               { return f.validateErr }
func (f *fakeChannel) Prepare(ctx context.Context, msg *channel.Message) error { return f.prepareErr }
func (f *fakeChannel) Send(ctx context.Context, msg channel.Message) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, msg)
	return nil
}

func TestDeliver_CreatesInAppAndSendsEmail(t *testing.T) {
	db := newTestDB(t)
	email := &fakeChannel{name: "email"}
	store := NewStore(db, testLogger(), time.Second)
	d := NewDispatcher(db, store, email, testLogger(), time.Second)

	u := seedUser(t, db, "u1", true)
	due := time.Now().AddDate(0, 0, 3)
	task := seedTask(t, db, "Calibrate Sensor", u.ID, u.ID, &due)
	ent := Entity{Kind: KindTask, ID: task.ID, Name: task.Title, Due: due, Task: &task}

	created := d.Deliver(context.Background(), ent, u, Offset{Days: 3, Label: "in 3 days"})
	if !created {
		t.Fatalf("expected a new notification")
	}
	if len(email.sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(email.sent))
	}
	if to := email.sent[0].Meta["to"]; to != u.Email {
		t.Fatalf("email addressed to %s, want %s", to, u.Email)
	}

	var logEntry models.EmailLog
	if err := db.First(&logEntry).Error; err != nil {
		t.Fatalf("find email log: %v", err)
	}
	if logEntry.Status != models.EmailSent {
		t.Fatalf("email log status: %v", logEntry.Status)
	}
}

func TestDeliver_EmailFailureKeepsInAppNotification(t *testing.T) {
	db := newTestDB(t)
	email := &fakeChannel{name: "email", sendErr: errors.New("smtp: connection refused")}
	store := NewStore(db, testLogger(), time.Second)

	core, logs := observer.New(zap.ErrorLevel)
	d := NewDispatcher(db, store, email, zap.New(core), time.Second)

	u := seedUser(t, db, "u2", true)
	due := time.Now().AddDate(0, 0, 1)
	task := seedTask(t, db, "Autoclave Run", u.ID, u.ID, &due)
	ent := Entity{Kind: KindTask, ID: task.ID, Name: task.Title, Due: due, Task: &task}

	created := d.Deliver(context.Background(), ent, u, Offset{Days: 1, Label: "tomorrow"})
	if !created {
		t.Fatalf("in-app notification should be created despite email failure")
	}
	if got := countNotifications(t, db); got != 1 {
		t.Fatalf("expected notification to survive email failure, got %d rows", got)
	}

	var logEntry models.EmailLog
	if err := db.First(&logEntry).Error; err != nil {
		t.Fatalf("find email log: %v", err)
	}
	if logEntry.Status != models.EmailFailed {
		t.Fatalf("email log status: %v", logEntry.Status)
	}

	found := false
	for _, entry := range logs.All() {
		if entry.Message == "failed to send reminder email" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected email failure to be logged with context")
	}
}

// hangingChannel blocks in Send until the context expires, standing in for an
// SMTP server that accepts the connection and never answers.
type hangingChannel struct {
	fakeChannel
}

func (h *hangingChannel) Send(ctx context.Context, msg channel.Message) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestDeliver_HungEmailBoundedByCallTimeout(t *testing.T) {
	db := newTestDB(t)
	email := &hangingChannel{fakeChannel{name: "email"}}
	store := NewStore(db, testLogger(), time.Second)
	d := NewDispatcher(db, store, email, testLogger(), 50*time.Millisecond)

	u := seedUser(t, db, "u1", true)
	due := time.Now().AddDate(0, 0, 1)
	task := seedTask(t, db, "Slow Mail Task", u.ID, u.ID, &due)
	ent := Entity{Kind: KindTask, ID: task.ID, Name: task.Title, Due: due, Task: &task}

	start := time.Now()
	created := d.Deliver(context.Background(), ent, u, Offset{Days: 1, Label: "tomorrow"})
	if took := time.Since(start); took > 2*time.Second {
		t.Fatalf("delivery blocked for %v; the per-call deadline did not bite", took)
	}
	if !created {
		t.Fatalf("in-app notification should be created despite the hung send")
	}
	if got := countNotifications(t, db); got != 1 {
		t.Fatalf("expected notification to survive the hung send, got %d rows", got)
	}

	var logEntry models.EmailLog
	if err := db.First(&logEntry).Error; err != nil {
		t.Fatalf("find email log: %v", err)
	}
	if logEntry.Status != models.EmailFailed {
		t.Fatalf("email log status: %v", logEntry.Status)
	}
}

func TestDeliver_EmailFailureDoesNotAffectOtherRecipients(t *testing.T) {
	db := newTestDB(t)
	u1 := seedUser(t, db, "u1", true)
	u2 := seedUser(t, db, "u2", true)
	due := time.Now().AddDate(0, 0, 1)
	task := seedTask(t, db, "Shared Task", u2.ID, u1.ID, &due)
	ent := Entity{Kind: KindTask, ID: task.ID, Name: task.Title, Due: due, Task: &task}
	off := Offset{Days: 1, Label: "tomorrow"}

	// u2's send fails, u1's succeeds.
	failing := &fakeChannel{name: "email", sendErr: errors.New("mailbox full")}
	store := NewStore(db, testLogger(), time.Second)
	NewDispatcher(db, store, failing, testLogger(), time.Second).Deliver(context.Background(), ent, u2, off)

	working := &fakeChannel{name: "email"}
	NewDispatcher(db, store, working, testLogger(), time.Second).Deliver(context.Background(), ent, u1, off)

	if got := countNotifications(t, db); got != 2 {
		t.Fatalf("expected both in-app notifications, got %d", got)
	}
	if len(working.sent) != 1 {
		t.Fatalf("u1 should still get email, got %d sends", len(working.sent))
	}
}

func TestDeliver_SkipsEmailWhenOptedOut(t *testing.T) {
	db := newTestDB(t)
	email := &fakeChannel{name: "email"}
	store := NewStore(db, testLogger(), time.Second)
	d := NewDispatcher(db, store, email, testLogger(), time.Second)

	u := seedUser(t, db, "quiet", false)
	due := time.Now().AddDate(0, 0, 1)
	task := seedTask(t, db, "Quiet Task", u.ID, u.ID, &due)
	ent := Entity{Kind: KindTask, ID: task.ID, Name: task.Title, Due: due, Task: &task}

	created := d.Deliver(context.Background(), ent, u, Offset{Days: 1, Label: "tomorrow"})
	if !created {
		t.Fatalf("in-app notification should be created")
	}
	if len(email.sent) != 0 {
		t.Fatalf("opted-out recipient should not receive email")
	}

	var logEntry models.EmailLog
	if err := db.First(&logEntry).Error; err != nil {
		t.Fatalf("find email log: %v", err)
	}
	if logEntry.Status != models.EmailSkipped {
		t.Fatalf("email log status: %v", logEntry.Status)
	}
}

func TestDeliver_DuplicateKeySendsNoEmail(t *testing.T) {
	db := newTestDB(t)
	email := &fakeChannel{name: "email"}
	store := NewStore(db, testLogger(), time.Second)
	d := NewDispatcher(db, store, email, testLogger(), time.Second)

	u := seedUser(t, db, "u1", true)
	due := time.Now().AddDate(0, 0, 1)
	task := seedTask(t, db, "Repeat Task", u.ID, u.ID, &due)
	ent := Entity{Kind: KindTask, ID: task.ID, Name: task.Title, Due: due, Task: &task}
	off := Offset{Days: 1, Label: "tomorrow"}

	if created := d.Deliver(context.Background(), ent, u, off); !created {
		t.Fatalf("first delivery should create")
	}
	if created := d.Deliver(context.Background(), ent, u, off); created {
		t.Fatalf("second delivery should be suppressed")
	}
	if len(email.sent) != 1 {
		t.Fatalf("suppressed delivery must not re-send email, got %d sends", len(email.sent))
	}
}
