package conversation

import "testing"

// Appending must never mutate or reorder prior entries.
func TestLog_AppendPreservesOrder(t *testing.T) {
	l := NewLog(
		Message{Role: RoleUser, Content: "first", Timestamp: 1},
		Message{Role: RoleAssistant, Content: "second", Timestamp: 2},
	)

	before := l.Messages()
	l.Append(Message{Role: RoleUser, Content: "third", Timestamp: 3})
	after := l.Messages()

	if len(after) != 3 {
		t.Fatalf("len = %d, want 3", len(after))
	}
	for i, m := range before {
		if after[i] != m {
			t.Errorf("entry %d changed after append: %+v vs %+v", i, after[i], m)
		}
	}
	if after[2].Content != "third" {
		t.Errorf("appended entry = %+v, want content %q", after[2], "third")
	}
}

// Messages hands out copies; mutating the returned slice must not touch the log.
func TestLog_MessagesIsACopy(t *testing.T) {
	l := NewLog(Message{Role: RoleUser, Content: "original"})

	snapshot := l.Messages()
	snapshot[0].Content = "tampered"

	if got := l.Messages()[0].Content; got != "original" {
		t.Errorf("log entry = %q, want %q", got, "original")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		msgs    []Message
		wantErr bool
	}{
		{"valid", []Message{{Role: RoleUser, Content: "hi"}}, false},
		{"empty log", nil, true},
		{"missing role", []Message{{Content: "hi"}}, true},
		{"missing content", []Message{{Role: RoleUser}}, true},
		{"one bad among good", []Message{{Role: RoleUser, Content: "hi"}, {Role: RoleAssistant}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.msgs)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
