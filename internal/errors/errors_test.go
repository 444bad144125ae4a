package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindUnknown, "unknown error"},
		{KindInvalidPath, "invalid path"},
		{KindNotFound, "not found"},
		{KindTransport, "transport error"},
		{KindFormat, "format error"},
		{Kind(999), "unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.expected {
				t.Errorf("Kind.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "with op and context",
			err:      &Error{Op: "backend.Browse", Context: "src/a.go", Err: errors.New("boom")},
			expected: "backend.Browse: src/a.go: boom",
		},
		{
			name:     "with op only",
			err:      &Error{Op: "backend.Browse", Err: errors.New("boom")},
			expected: "backend.Browse: boom",
		},
		{
			name:     "without op",
			err:      &Error{Err: errors.New("boom")},
			expected: "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestE_ContextOnlyBecomesUnderlying(t *testing.T) {
	err := E(Op("state.Normalize"), KindInvalidPath, "empty path")
	if got := err.Error(); got != "state.Normalize: empty path" {
		t.Fatalf("unexpected message %q", got)
	}
	if !Is(err, KindInvalidPath) {
		t.Fatalf("expected KindInvalidPath")
	}
}

func TestIsAndGetKindThroughWrapping(t *testing.T) {
	base := NotFound(Op("backend.Definitions"), "symbol missing")
	wrapped := fmt.Errorf("lookup: %w", base)

	if !Is(wrapped, KindNotFound) {
		t.Fatalf("expected wrapped error to keep its kind")
	}
	if GetKind(wrapped) != KindNotFound {
		t.Fatalf("GetKind = %v", GetKind(wrapped))
	}
	if GetKind(errors.New("plain")) != KindUnknown {
		t.Fatalf("plain errors should be KindUnknown")
	}
}

func TestRetryable(t *testing.T) {
	if !Retryable(Transport(Op("x"), errors.New("timeout"))) {
		t.Errorf("transport errors are retryable")
	}
	if !Retryable(Format(Op("x"), "missing content")) {
		t.Errorf("format errors are shown as retryable")
	}
	if Retryable(NotFound(Op("x"), "gone")) {
		t.Errorf("not-found errors are not retryable")
	}
	if Retryable(nil) {
		t.Errorf("nil is not retryable")
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(nil); got != "" {
		t.Fatalf("nil should render empty, got %q", got)
	}

	transport := UserMessage(Transport(Op("backend.Browse"), errors.New("connection refused")))
	format := UserMessage(Format(Op("backend.Browse"), "unexpected response shape"))
	for _, msg := range []string{transport, format} {
		if !strings.HasPrefix(msg, "Request failed: ") || !strings.Contains(msg, "retry") {
			t.Errorf("expected retryable wording, got %q", msg)
		}
	}

	if got := UserMessage(NotFound(Op("backend.Browse"), "File not found: a.go")); got != "File not found: a.go" {
		t.Errorf("not found message = %q", got)
	}
	if got := UserMessage(InvalidPath(Op("state.Normalize"), "empty path")); got != "Invalid path: empty path" {
		t.Errorf("invalid path message = %q", got)
	}
}
