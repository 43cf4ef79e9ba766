package ident

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

// --- NewGroceryID Tests ---

func TestNewGroceryID_IsVersion1(t *testing.T) {
	id, err := NewGroceryID()
	if err != nil {
		t.Fatalf("NewGroceryID failed: %v", err)
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		t.Fatalf("expected a valid UUID, got %q: %v", id, err)
	}
	if parsed.Version() != 1 {
		t.Errorf("expected version 1, got %d", parsed.Version())
	}
}

func TestNewGroceryID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 10000; i++ {
		id, err := NewGroceryID()
		if err != nil {
			t.Fatalf("NewGroceryID failed: %v", err)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q after %d iterations", id, i)
		}
		seen[id] = true
	}
}

func TestNewGroceryID_TimeOrdered(t *testing.T) {
	first, _ := NewGroceryID()
	time.Sleep(2 * time.Millisecond)
	second, _ := NewGroceryID()

	t1 := uuid.MustParse(first).Time()
	t2 := uuid.MustParse(second).Time()
	if t2 <= t1 {
		t.Errorf("expected second id time %d to be after first %d", t2, t1)
	}
}

// --- Timestamp Tests ---

func TestTimestamp_Milliseconds(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 6_000_000, time.UTC)

	result := Timestamp(ts)
	if result != "1704164645006" {
		t.Errorf("expected '1704164645006', got %q", result)
	}
}

func TestTimestamp_Epoch(t *testing.T) {
	result := Timestamp(time.Unix(0, 0))
	if result != "0" {
		t.Errorf("expected '0', got %q", result)
	}
}

func TestParseTimestamp_RoundTrip(t *testing.T) {
	now := time.Now().Truncate(time.Millisecond)

	parsed, err := ParseTimestamp(Timestamp(now))
	if err != nil {
		t.Fatalf("ParseTimestamp failed: %v", err)
	}
	if !parsed.Equal(now) {
		t.Errorf("expected %v, got %v", now, parsed)
	}
}

func TestParseTimestamp_Invalid(t *testing.T) {
	tests := []string{"", "abc", "12.5", "2024-01-01T00:00:00Z"}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			if _, err := ParseTimestamp(input); err == nil {
				t.Errorf("expected error for %q", input)
			}
		})
	}
}
