package core

import (
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	// Generate many IDs
	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

// TestIDString tests ID string conversion
func TestIDString(t *testing.T) {
	id := ID("test-123")
	if id.String() != "test-123" {
		t.Errorf("Expected String() to return 'test-123', got '%s'", id.String())
	}
}

// TestIDIsEmpty tests ID emptiness check
func TestIDIsEmpty(t *testing.T) {
	emptyID := ID("")
	if !emptyID.IsEmpty() {
		t.Error("Expected empty ID to be empty")
	}

	nonEmptyID := ID("not-empty")
	if nonEmptyID.IsEmpty() {
		t.Error("Expected non-empty ID to not be empty")
	}
}

// TestParseSnapshotID tests snapshot ID parsing
func TestParseSnapshotID(t *testing.T) {
	tests := []struct {
		input    string
		expected SnapshotID
		ok       bool
	}{
		{"valid-id", SnapshotID("valid-id"), true},
		{"", "", false},
		{"   ", "", false},
	}

	for _, test := range tests {
		result, ok := ParseSnapshotID(test.input)
		if ok != test.ok {
			t.Errorf("ParseSnapshotID(%q) ok = %v, want %v", test.input, ok, test.ok)
		}
		if result != test.expected {
			t.Errorf("Expected %s, got %s", test.expected, result)
		}
	}
}

// TestDatasetHashDeterminism tests that identical content hashes identically
func TestDatasetHashDeterminism(t *testing.T) {
	a := NewDatasetHash([]byte("same bytes"))
	b := NewDatasetHash([]byte("same bytes"))
	c := NewDatasetHash([]byte("other bytes"))

	if a != b {
		t.Error("identical content must produce identical hashes")
	}
	if a == c {
		t.Error("different content must produce different hashes")
	}
	if len(a.String()) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(a.String()))
	}
	if got := a.Short(); len(got) != 12 {
		t.Errorf("Short() should be 12 chars, got %q", got)
	}
}
