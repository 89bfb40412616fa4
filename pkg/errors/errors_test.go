package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeListingNotFound, "listing missing")

	assert.Equal(t, ErrCodeListingNotFound, err.Code)
	assert.Equal(t, "listing missing", err.Message)
	assert.NotEmpty(t, err.Stack)
	assert.Equal(t, "[LST_001] listing missing", err.Error())
}

func TestErrorWithDetail(t *testing.T) {
	err := New(ErrCodeBuyerNotFound, "buyer missing").WithDetail("id=b-42")

	assert.Equal(t, "[BYR_001] buyer missing: id=b-42", err.Error())
}

func TestWithDetailCopies(t *testing.T) {
	orig := New(ErrCodeInternal, "boom")
	derived := orig.WithDetail("extra")

	assert.Empty(t, orig.Detail)
	assert.Equal(t, "extra", derived.Detail)
}

func TestWithDetailNilReceiver(t *testing.T) {
	var err *AppError
	assert.Nil(t, err.WithDetail("x"))
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, ErrCodeDatabaseError, "failed to load listing")

	require.NotNil(t, err)
	assert.Equal(t, ErrCodeDatabaseError, err.Code)
	assert.ErrorIs(t, err, cause)
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrCodeInternal, "ignored"))
}

func TestWrapPreservesCodeForUnknown(t *testing.T) {
	inner := New(ErrCodeValuationFailed, "valuation blew up")
	outer := Wrap(inner, CodeUnknown, "calculate failed")

	assert.Equal(t, ErrCodeValuationFailed, outer.Code)
}

func TestIsCode(t *testing.T) {
	inner := New(ErrCodeCacheMiss, "miss")
	wrapped := fmt.Errorf("outer: %w", inner)

	assert.True(t, IsCode(wrapped, ErrCodeCacheMiss))
	assert.False(t, IsCode(wrapped, ErrCodeCacheError))
	assert.False(t, IsCode(nil, ErrCodeCacheMiss))
}

func TestIsNotFound(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"generic not found", NotFound("gone"), true},
		{"listing not found", New(ErrCodeListingNotFound, "gone"), true},
		{"buyer not found", New(ErrCodeBuyerNotFound, "gone"), true},
		{"match score not found", New(ErrCodeMatchScoreNotFound, "gone"), true},
		{"valuation not found", New(ErrCodeValuationNotFound, "gone"), true},
		{"conflict", Conflict("dup"), false},
		{"plain error", errors.New("nope"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsNotFound(tc.err))
		})
	}
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, CodeOK, GetCode(nil))
	assert.Equal(t, CodeUnknown, GetCode(errors.New("plain")))
	assert.Equal(t, ErrCodeMatchScoringFailed, GetCode(New(ErrCodeMatchScoringFailed, "x")))
}

func TestHTTPStatusForCode(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatusForCode(ErrCodeListingNotFound))
	assert.Equal(t, http.StatusUnprocessableEntity, HTTPStatusForCode(ErrCodeValuationDataInsufficient))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatusForCode(ErrorCode("BOGUS_999")))
}

func TestModuleForCode(t *testing.T) {
	assert.Equal(t, "MCH", ModuleForCode(ErrCodeMatchScoringFailed))
	assert.Equal(t, "VAL", ModuleForCode(ErrCodeValuationFailed))
	assert.Equal(t, "CACHE", ModuleForCode(ErrCodeCacheMiss))
}

func TestClientServerSplit(t *testing.T) {
	assert.True(t, IsClientError(ErrCodeMatchWeightsInvalid))
	assert.False(t, IsServerError(ErrCodeMatchWeightsInvalid))
	assert.True(t, IsServerError(ErrCodeMatchScoringFailed))
}
