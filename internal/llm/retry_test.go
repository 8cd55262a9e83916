package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"wayfarer/internal/conversation"
)

// scriptedProvider returns canned outcomes in order, recording call counts.
type scriptedProvider struct {
	outcomes []error
	calls    int
}

func (s *scriptedProvider) Complete(_ context.Context, _ string, _ []conversation.Message, _ Options) (*Result, error) {
	idx := s.calls
	s.calls++
	if idx >= len(s.outcomes) {
		idx = len(s.outcomes) - 1
	}
	if err := s.outcomes[idx]; err != nil {
		return nil, err
	}
	return &Result{Text: "ok", Usage: TokenUsage{Prompt: 10, Completion: 5, Total: 15}}, nil
}

var testMsgs = []conversation.Message{{Role: conversation.RoleUser, Content: "hi"}}

func TestCompleteWithRetry_SucceedsAfterTransientFailures(t *testing.T) {
	p := &scriptedProvider{outcomes: []error{ErrUpstream, ErrNetwork, nil}}

	res, err := completeWithRetry(context.Background(), p, "sys", testMsgs, Options{}, 3, time.Millisecond)
	if err != nil {
		t.Fatalf("error = %v", err)
	}
	if res.Text != "ok" {
		t.Errorf("Text = %q", res.Text)
	}
	if p.calls != 3 {
		t.Errorf("calls = %d, want 3", p.calls)
	}
}

func TestCompleteWithRetry_StopsOnNonRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"auth failure", ErrAuth},
		{"bad request", ErrBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &scriptedProvider{outcomes: []error{tt.err, nil}}
			_, err := completeWithRetry(context.Background(), p, "sys", testMsgs, Options{}, 3, time.Millisecond)
			if !errors.Is(err, tt.err) {
				t.Errorf("error = %v, want %v", err, tt.err)
			}
			if p.calls != 1 {
				t.Errorf("calls = %d, want 1 (no retry on deterministic failures)", p.calls)
			}
		})
	}
}

func TestCompleteWithRetry_ExhaustsAttempts(t *testing.T) {
	p := &scriptedProvider{outcomes: []error{ErrRateLimited}}

	_, err := completeWithRetry(context.Background(), p, "sys", testMsgs, Options{}, 3, time.Millisecond)
	if !errors.Is(err, ErrRateLimited) {
		t.Errorf("error = %v, want ErrRateLimited", err)
	}
	if p.calls != 3 {
		t.Errorf("calls = %d, want 3", p.calls)
	}
}

func TestCompleteWithRetry_HonoursContextCancellation(t *testing.T) {
	p := &scriptedProvider{outcomes: []error{ErrUpstream}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := completeWithRetry(ctx, p, "sys", testMsgs, Options{}, 3, time.Hour)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if p.calls != 1 {
		t.Errorf("calls = %d, want 1 (cancelled before second attempt)", p.calls)
	}
}

func TestRetryable(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{ErrRateLimited, true},
		{ErrUpstream, true},
		{ErrNetwork, true},
		{ErrAuth, false},
		{ErrBadRequest, false},
		{ErrEmptyResponse, false},
		{errors.New("other"), false},
	}
	for _, tt := range tests {
		if got := Retryable(tt.err); got != tt.want {
			t.Errorf("Retryable(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{200, nil},
		{401, ErrAuth},
		{429, ErrRateLimited},
		{500, ErrUpstream},
		{503, ErrUpstream},
		{400, ErrBadRequest},
		{404, ErrBadRequest},
	}
	for _, tt := range tests {
		err := classifyStatus(tt.status, nil)
		if tt.want == nil {
			if err != nil {
				t.Errorf("classifyStatus(%d) = %v, want nil", tt.status, err)
			}
			continue
		}
		if !errors.Is(err, tt.want) {
			t.Errorf("classifyStatus(%d) = %v, want %v", tt.status, err, tt.want)
		}
	}
}
