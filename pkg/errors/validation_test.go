package errors

import (
	"strings"
	"testing"
)

func TestValidateOrigin(t *testing.T) {
	tests := []struct {
		name    string
		origin  int
		n       int
		wantErr bool
	}{
		{"first node", 0, 3, false},
		{"last node", 2, 3, false},
		{"past end", 3, 3, true},
		{"negative", -1, 3, true},
		{"empty graph", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOrigin(tt.origin, tt.n)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateOrigin(%d, %d) error = %v, wantErr %v", tt.origin, tt.n, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidOrigin) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidOrigin)
			}
		})
	}
}

func TestValidateCapacity(t *testing.T) {
	if err := ValidateCapacity(0, 100); err != nil {
		t.Errorf("zero capacity should be valid: %v", err)
	}
	if err := ValidateCapacity(10, 100); err != nil {
		t.Errorf("positive capacity should be valid: %v", err)
	}
	if err := ValidateCapacity(100, 100); err != nil {
		t.Errorf("capacity at the limit should be valid: %v", err)
	}
	if err := ValidateCapacity(-1, 100); !Is(err, ErrCodeInvalidCapacity) {
		t.Errorf("negative capacity: got %v, want INVALID_CAPACITY", err)
	}
	if err := ValidateCapacity(1152921504606846976, 100); !Is(err, ErrCodeInvalidCapacity) {
		t.Errorf("huge capacity: got %v, want INVALID_CAPACITY", err)
	}
}

func TestValidateNodeLimit(t *testing.T) {
	tests := []struct {
		limit   int
		wantErr bool
	}{
		{0, false},
		{50, false},
		{100, false},
		{101, true},
		{-1, true},
	}
	for _, tt := range tests {
		err := ValidateNodeLimit(tt.limit, 100)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateNodeLimit(%d, 100) error = %v, wantErr %v", tt.limit, err, tt.wantErr)
		}
		if err != nil && !Is(err, ErrCodeInvalidInput) {
			t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidInput)
		}
	}
}

func TestValidateWorkers(t *testing.T) {
	if err := ValidateWorkers(0); err != nil {
		t.Errorf("zero workers should be valid: %v", err)
	}
	if err := ValidateWorkers(-2); err == nil {
		t.Error("negative workers should fail")
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"relative", "data/edges.csv", false},
		{"absolute", "/tmp/roads.txt", false},
		{"empty", "", true},
		{"null byte", "edges\x00.csv", true},
		{"control char", "edges\n.csv", true},
		{"too long", strings.Repeat("a", 5000), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestValidateChoice(t *testing.T) {
	if err := ValidateChoice(ErrCodeInvalidMethod, "method", "bfs", "strip", "bfs"); err != nil {
		t.Errorf("valid choice rejected: %v", err)
	}

	err := ValidateChoice(ErrCodeInvalidMethod, "method", "BFS", "strip", "bfs")
	if !Is(err, ErrCodeInvalidMethod) {
		t.Fatalf("expected INVALID_METHOD, got %v", err)
	}
	if !strings.Contains(err.Error(), "strip, bfs") {
		t.Errorf("message should list allowed values: %v", err)
	}
}
