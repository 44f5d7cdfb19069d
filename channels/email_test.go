package channels

import (
	"context"
	"testing"

	"github.com/prathameshp107/ClinLabOps-sub003/models/channel"
)

func TestEmailValidate(t *testing.T) {
	c := &EmailChannel{}

	if err := c.Validate(map[string]string{"to": "user@lab.example.com"}); err != nil {
		t.Fatalf("valid address rejected: %v", err)
	}
	if err := c.Validate(map[string]string{"to": "not-an-address"}); err == nil {
		t.Fatalf("invalid address accepted")
	}
	if err := c.Validate(map[string]string{}); err == nil {
		t.Fatalf("missing address accepted")
	}
}

func TestEmailPrepareDefaultsSubject(t *testing.T) {
	c := &EmailChannel{}
	msg := channel.Message{Title: "Deadline approaching: Calibrate Sensor", Meta: map[string]string{"to": "u@lab.example.com"}}

	if err := c.Prepare(context.Background(), &msg); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if msg.Meta["subject"] != msg.Title {
		t.Fatalf("subject not defaulted, got %q", msg.Meta["subject"])
	}

	msg.Meta["subject"] = "custom"
	if err := c.Prepare(context.Background(), &msg); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if msg.Meta["subject"] != "custom" {
		t.Fatalf("existing subject overwritten")
	}
}
