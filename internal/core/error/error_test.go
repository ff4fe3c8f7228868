package errx

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/redis/go-redis/v9"
)

func TestStatusOf(t *testing.T) {
	base := errors.New("boom")
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"plain", base, http.StatusInternalServerError},
		{"bad request", BadRequest(ErrMissingData, MissingDataMessage), http.StatusBadRequest},
		{"provider", WrapProvider(base), http.StatusBadGateway},
		{"wrapped provider", fmt.Errorf("search: %w", WrapProvider(base)), http.StatusBadGateway},
		{"redis nil", WrapRedis(redis.Nil), http.StatusNotFound},
		{"redis", WrapRedis(base), http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusOf(tt.err); got != tt.want {
				t.Errorf("StatusOf() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	err := BadRequest(ErrMissingData, MissingDataMessage)
	if !errors.Is(err, ErrMissingData) {
		t.Error("expected errors.Is to match ErrMissingData")
	}

	var appErr *AppError
	if !errors.As(fmt.Errorf("ctx: %w", err), &appErr) {
		t.Fatal("expected errors.As to find AppError")
	}
	if appErr.Message != MissingDataMessage {
		t.Errorf("Message = %q, want %q", appErr.Message, MissingDataMessage)
	}
}

func TestWrapNil(t *testing.T) {
	if WrapProvider(nil) != nil || WrapOracle(nil) != nil || WrapRedis(nil) != nil {
		t.Error("wrapping nil should return nil")
	}
}
