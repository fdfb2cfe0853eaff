package domain

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainErrors(t *testing.T) {
	errs := []error{
		ErrInvalidInput,
		ErrAccessDenied,
		ErrHTTP,
		ErrRead,
		ErrTimeout,
		ErrConfig,
		ErrUnsupportedType,
	}

	seen := make(map[string]bool)
	for _, err := range errs {
		require.Error(t, err)
		assert.False(t, seen[err.Error()], "duplicate error message %q", err.Error())
		seen[err.Error()] = true
	}
}

func TestFetchError_Is(t *testing.T) {
	tests := []struct {
		kind     ErrorKind
		sentinel error
	}{
		{KindInvalidInput, ErrInvalidInput},
		{KindAccessDenied, ErrAccessDenied},
		{KindHTTP, ErrHTTP},
		{KindRead, ErrRead},
		{KindTimeout, ErrTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			err := fmt.Errorf("wrapped: %w", &FetchError{Kind: tt.kind})
			assert.ErrorIs(t, err, tt.sentinel)
			assert.NotErrorIs(t, err, ErrConfig)
		})
	}
}

func TestFetchError_Unwrap(t *testing.T) {
	err := &FetchError{Kind: KindRead, Err: fs.ErrNotExist}
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.ErrorIs(t, err, ErrRead)
}

func TestFetchError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *FetchError
		expected string
	}{
		{
			name:     "invalid input",
			err:      &FetchError{Kind: KindInvalidInput},
			expected: "Error: a URL or local path is required",
		},
		{
			name: "remote denial lists origins",
			err: &FetchError{
				Kind:    KindAccessDenied,
				Source:  SourceRemote,
				Target:  "https://evil.com/",
				Allowed: []string{"https://a.com/", "https://b.com/"},
			},
			expected: "Error: URL not allowed. Must start with one of the following domains: https://a.com/, https://b.com/",
		},
		{
			name: "local denial lists files",
			err: &FetchError{
				Kind:    KindAccessDenied,
				Source:  SourceLocal,
				Target:  "/etc/passwd",
				Allowed: []string{"/docs/llms.txt"},
			},
			expected: "Error: Local file not allowed: /etc/passwd. Allowed files: [/docs/llms.txt]",
		},
		{
			name:     "http status",
			err:      &FetchError{Kind: KindHTTP, Status: 404, StatusText: "Not Found"},
			expected: "Encountered an HTTP error: 404 Not Found",
		},
		{
			name:     "transport failure",
			err:      &FetchError{Kind: KindHTTP, Err: errors.New("connection refused")},
			expected: "Encountered an HTTP error: connection refused",
		},
		{
			name:     "read failure",
			err:      &FetchError{Kind: KindRead, Err: errors.New("permission denied")},
			expected: "Error reading local file: permission denied",
		},
		{
			name:     "timeout",
			err:      &FetchError{Kind: KindTimeout, Timeout: 10 * time.Second},
			expected: "Encountered an HTTP error: request timed out after 10s",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestAsFetchError(t *testing.T) {
	t.Run("finds wrapped fetch error", func(t *testing.T) {
		inner := &FetchError{Kind: KindHTTP, Status: 500}
		fe, ok := AsFetchError(fmt.Errorf("outer: %w", inner))
		require.True(t, ok)
		assert.Same(t, inner, fe)
	})

	t.Run("plain error", func(t *testing.T) {
		fe, ok := AsFetchError(errors.New("boom"))
		assert.False(t, ok)
		assert.Nil(t, fe)
	})
}
