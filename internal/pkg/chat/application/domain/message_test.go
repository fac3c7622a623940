package chat

import (
	"errors"
	"testing"
)

func TestNewMessageValidation(t *testing.T) {
	cases := []struct {
		name          string
		conv, sender  string
		role, content string
		wantErr       bool
		wantAuthor    bool
	}{
		{name: "user message", conv: "c1", sender: "u1", role: RoleUser, content: "hi", wantAuthor: true},
		{name: "system message", conv: "c1", sender: "", role: "system", content: "u joined", wantAuthor: false},
		{name: "empty role", conv: "c1", sender: "u1", role: "", content: "hi", wantErr: true},
		{name: "empty content", conv: "c1", sender: "u1", role: RoleUser, content: "  ", wantErr: true},
		{name: "missing conversation", conv: "", sender: "u1", role: RoleUser, content: "hi", wantErr: true},
		{name: "user role without sender", conv: "c1", sender: "", role: RoleUser, content: "hi", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := NewMessage(tc.conv, tc.sender, tc.role, tc.content)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.wantAuthor && (m.UserID == nil || *m.UserID != tc.sender) {
				t.Fatalf("expected author %q, got %v", tc.sender, m.UserID)
			}
			if !tc.wantAuthor && m.UserID != nil {
				t.Fatalf("expected nil author, got %v", *m.UserID)
			}
		})
	}
}

func TestNewMessageTrimsContent(t *testing.T) {
	m, err := NewMessage("c1", "u1", RoleUser, "  hello  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Content != "hello" {
		t.Fatalf("content not trimmed: %q", m.Content)
	}
}
