package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func breakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxFailures: 2,
		OpenTimeout: 50 * time.Millisecond,
	}
}

func TestBreaker_PassesThroughSuccess(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"ok":true}`)},
	)
	p := WithBreaker(mock, breakerConfig())

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"ok":true}` {
		t.Fatalf("unexpected content: %s", resp.Content)
	}
}

func TestBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
		MockResponse{Content: json.RawMessage(`{"ok":true}`)}, // Won't be reached.
	)
	p := WithBreaker(mock, breakerConfig())

	for range 2 {
		if _, err := p.Generate(context.Background(), Request{}); err == nil {
			t.Fatal("expected error")
		}
	}

	// Breaker is open now, the provider must not be called again.
	_, err := p.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %v", err)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.CallCount())
	}
}

func TestBreaker_RecoversAfterTimeout(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
		MockResponse{Content: json.RawMessage(`{"ok":true}`)},
	)
	p := WithBreaker(mock, breakerConfig())

	for range 2 {
		p.Generate(context.Background(), Request{})
	}

	time.Sleep(60 * time.Millisecond)

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error after recovery window: %v", err)
	}
	if string(resp.Content) != `{"ok":true}` {
		t.Fatalf("unexpected content: %s", resp.Content)
	}
}

func TestBreaker_InvalidResponseDoesNotTrip(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrInvalidResponse{Content: json.RawMessage(`bad`), Err: errors.New("bad")}},
		MockResponse{Err: &ErrInvalidResponse{Content: json.RawMessage(`bad`), Err: errors.New("bad")}},
		MockResponse{Err: &ErrInvalidResponse{Content: json.RawMessage(`bad`), Err: errors.New("bad")}},
		MockResponse{Content: json.RawMessage(`{"ok":true}`)},
	)
	p := WithBreaker(mock, breakerConfig())

	for range 3 {
		if _, err := p.Generate(context.Background(), Request{}); err == nil {
			t.Fatal("expected error")
		}
	}

	// Schema failures say nothing about availability; the circuit stays closed.
	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"ok":true}` {
		t.Fatalf("unexpected content: %s", resp.Content)
	}
	if mock.CallCount() != 4 {
		t.Fatalf("expected 4 calls, got %d", mock.CallCount())
	}
}

func TestBreaker_ModelIDDelegates(t *testing.T) {
	mock := NewMockProvider()
	p := WithBreaker(mock, breakerConfig())
	if p.ModelID() != "mock" {
		t.Fatalf("expected 'mock', got %q", p.ModelID())
	}
}
