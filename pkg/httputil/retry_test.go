package httputil

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetry(t *testing.T) {
	transient := &RetryableError{Err: errors.New("transient")}
	permanent := errors.New("permanent")

	tests := []struct {
		name      string
		attempts  int
		errs      []error
		wantCalls int
		wantErr   error
	}{
		{name: "success first try", attempts: 3, errs: []error{nil}, wantCalls: 1},
		{name: "success after retry", attempts: 3, errs: []error{transient, nil}, wantCalls: 2},
		{name: "permanent stops", attempts: 3, errs: []error{permanent}, wantCalls: 1, wantErr: permanent},
		{name: "exhausted", attempts: 2, errs: []error{transient, transient, nil}, wantCalls: 2, wantErr: transient},
		{name: "zero attempts runs once", attempts: 0, errs: []error{transient}, wantCalls: 1, wantErr: transient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := Retry(context.Background(), tt.attempts, time.Millisecond, func() error {
				err := tt.errs[min(calls, len(tt.errs)-1)]
				calls++
				return err
			})
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if err != tt.wantErr {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRetryCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Retry(ctx, 3, time.Hour, func() error {
		return &RetryableError{Err: errors.New("transient")}
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
