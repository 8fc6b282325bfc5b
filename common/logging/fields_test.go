package logging

import (
	"errors"
	"log/slog"
	"testing"
)

func TestService(t *testing.T) {
	attr := Service("records")
	if attr.Key != FieldService {
		t.Errorf("expected key %q, got %q", FieldService, attr.Key)
	}
	if attr.Value.String() != "records" {
		t.Errorf("expected value %q, got %q", "records", attr.Value.String())
	}
}

func TestUserID(t *testing.T) {
	attr := UserID("user-123")
	if attr.Key != FieldUserID {
		t.Errorf("expected key %q, got %q", FieldUserID, attr.Key)
	}
	if attr.Value.String() != "user-123" {
		t.Errorf("expected value %q, got %q", "user-123", attr.Value.String())
	}
}

func TestUsername(t *testing.T) {
	attr := Username("admin")
	if attr.Key != FieldUsername {
		t.Errorf("expected key %q, got %q", FieldUsername, attr.Key)
	}
	if attr.Value.String() != "admin" {
		t.Errorf("expected value %q, got %q", "admin", attr.Value.String())
	}
}

func TestError(t *testing.T) {
	err := errors.New("something went wrong")
	attr := Error(err)
	if attr.Key != FieldError {
		t.Errorf("expected key %q, got %q", FieldError, attr.Key)
	}
	if attr.Value.String() != "something went wrong" {
		t.Errorf("expected value %q, got %q", "something went wrong", attr.Value.String())
	}
}

func TestRecordID(t *testing.T) {
	attr := RecordID("rec-abc-123")
	if attr.Key != FieldRecordID {
		t.Errorf("expected key %q, got %q", FieldRecordID, attr.Key)
	}
	if attr.Value.String() != "rec-abc-123" {
		t.Errorf("expected value %q, got %q", "rec-abc-123", attr.Value.String())
	}
}

func TestFieldConstants(t *testing.T) {
	// Verify all field constants are defined and non-empty
	fields := map[string]string{
		"FieldService":  FieldService,
		"FieldUserID":   FieldUserID,
		"FieldUsername": FieldUsername,
		"FieldIP":       FieldIP,
		"FieldMethod":   FieldMethod,
		"FieldPath":     FieldPath,
		"FieldStatus":   FieldStatus,
		"FieldDuration": FieldDuration,
		"FieldError":    FieldError,
		"FieldRecordID": FieldRecordID,
		"FieldAction":   FieldAction,
		"FieldEvent":    FieldEvent,
	}

	for name, value := range fields {
		if value == "" {
			t.Errorf("%s constant is empty", name)
		}
	}
}

func TestFieldHelpers_ReturnsSlogAttr(t *testing.T) {
	tests := []struct {
		name string
		attr slog.Attr
	}{
		{"Service", Service("test")},
		{"UserID", UserID("test")},
		{"Username", Username("test")},
		{"IP", IP("test")},
		{"Method", Method("test")},
		{"Path", Path("test")},
		{"Status", Status(200)},
		{"Duration", Duration(100)},
		{"Error", Error(errors.New("test"))},
		{"RecordID", RecordID("test")},
		{"Action", Action("login")},
		{"Event", Event("arrest_created")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_ = tt.attr.Key
			_ = tt.attr.Value
		})
	}
}
