package mailer

import (
	"context"
	"strings"
	"testing"
	"time"

	mail "github.com/wneessen/go-mail"

	"github.com/tbeier/pokedex-web/internal/export"
)

func validConfig() Config {
	return Config{
		Host: "smtp.example.com",
		Port: 587,
		From: "pokedex@example.com",
	}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing host", mutate: func(c *Config) { c.Host = "" }, wantErr: true},
		{name: "port too low", mutate: func(c *Config) { c.Port = 0 }, wantErr: true},
		{name: "port too high", mutate: func(c *Config) { c.Port = 70000 }, wantErr: true},
		{name: "missing from", mutate: func(c *Config) { c.From = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			_, err := New(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestBuildMessage(t *testing.T) {
	m, err := New(validConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	msg, err := m.buildMessage("trainer@example.com", []byte("workbook-bytes"))
	if err != nil {
		t.Fatalf("buildMessage failed: %v", err)
	}

	recipients, err := msg.GetRecipients()
	if err != nil {
		t.Fatalf("GetRecipients failed: %v", err)
	}
	if len(recipients) != 1 || recipients[0] != "trainer@example.com" {
		t.Errorf("Recipients = %v, want [trainer@example.com]", recipients)
	}

	subjects := msg.GetGenHeader(mail.HeaderSubject)
	if len(subjects) != 1 || subjects[0] != "Pokedex export" {
		t.Errorf("Subject = %v, want fixed export subject", subjects)
	}

	attachments := msg.GetAttachments()
	if len(attachments) != 1 {
		t.Fatalf("Attachments = %d, want exactly 1", len(attachments))
	}
	if attachments[0].Name != export.Filename {
		t.Errorf("Attachment name = %q, want %q", attachments[0].Name, export.Filename)
	}
}

func TestBuildMessage_InvalidRecipient(t *testing.T) {
	m, err := New(validConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if _, err := m.buildMessage("not-an-address", nil); err == nil {
		t.Error("Expected error for invalid recipient")
	}
}

func TestSend_DialFailure(t *testing.T) {
	cfg := validConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = 1 // nothing listens here

	m, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err = m.Send(ctx, "trainer@example.com", []byte("workbook"))
	if err == nil {
		t.Fatal("Expected dial failure")
	}
	if !strings.Contains(err.Error(), "send mail") {
		t.Errorf("Error = %q, want wrapped send mail failure", err)
	}
}
