// Package errors_test provides unit tests for the AppError type, factory
// functions, and error-chain helpers defined in pkg/errors.
package errors_test

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turtacn/molforge/pkg/errors"
)

func TestNew_FieldsAreSetCorrectly(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		code    errors.ErrorCode
		message string
	}{
		{"internal error", errors.CodeInternal, "unexpected failure"},
		{"invalid smiles", errors.ErrCodeInvalidSMILES, "pattern could not be parsed"},
		{"run not found", errors.ErrCodeRunNotFound, "run 42 not found"},
		{"count out of range", errors.ErrCodeCountOutOfRange, "count must be in [1, 50]"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ae := errors.New(tc.code, tc.message)

			require.NotNil(t, ae)
			assert.Equal(t, tc.code, ae.Code)
			assert.Equal(t, tc.message, ae.Message)
			assert.Empty(t, ae.Detail, "Detail should be empty for bare New()")
			assert.Nil(t, ae.Cause, "Cause should be nil for bare New()")
		})
	}
}

func TestWrap_NilReturnsNil(t *testing.T) {
	t.Parallel()

	assert.Nil(t, errors.Wrap(nil, errors.CodeInternal, "never constructed"))
}

func TestWrap_PreservesCauseChain(t *testing.T) {
	t.Parallel()

	root := stderrors.New("tokenizer choked")
	mid := errors.Wrap(root, errors.ErrCodeInvalidSMILES, "parse failed")
	top := errors.Wrap(mid, errors.ErrCodeLibraryInvalid, "library entry rejected")

	assert.True(t, stderrors.Is(top, root))

	var ae *errors.AppError
	require.True(t, stderrors.As(top, &ae))
	assert.Equal(t, errors.ErrCodeLibraryInvalid, ae.Code)
}

func TestWrap_UnknownCodePreservesOriginal(t *testing.T) {
	t.Parallel()

	inner := errors.New(errors.ErrCodeValenceViolation, "oxygen with three bonds")
	wrapped := errors.Wrap(inner, errors.CodeUnknown, "while validating pattern")

	assert.Equal(t, errors.ErrCodeValenceViolation, wrapped.Code)
}

func TestError_FormatIncludesDetail(t *testing.T) {
	t.Parallel()

	ae := errors.New(errors.ErrCodeInvalidSMILES, "unparseable pattern").
		WithDetail("smiles=C=Oc1ccccc1")

	msg := ae.Error()
	assert.Contains(t, msg, "CHEM_001")
	assert.Contains(t, msg, "unparseable pattern")
	assert.Contains(t, msg, "smiles=C=Oc1ccccc1")
}

func TestWithDetail_DoesNotMutateReceiver(t *testing.T) {
	t.Parallel()

	orig := errors.New(errors.ErrCodeRunNotFound, "run not found")
	detailed := orig.WithDetail("run_id=abc")

	assert.Empty(t, orig.Detail)
	assert.Equal(t, "run_id=abc", detailed.Detail)
}

func TestIsCode(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("outer: %w", errors.New(errors.ErrCodeRenderFailed, "png encode failed"))

	assert.True(t, errors.IsCode(err, errors.ErrCodeRenderFailed))
	assert.False(t, errors.IsCode(err, errors.ErrCodeInvalidSMILES))
	assert.False(t, errors.IsCode(nil, errors.ErrCodeRenderFailed))
}

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"generic not found", errors.NotFound("gone"), true},
		{"run not found", errors.New(errors.ErrCodeRunNotFound, "gone"), true},
		{"molecule not found", errors.New(errors.ErrCodeMoleculeNotFound, "gone"), true},
		{"invalid smiles", errors.New(errors.ErrCodeInvalidSMILES, "bad"), false},
		{"plain error", stderrors.New("plain"), false},
		{"nil", nil, false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, errors.IsNotFound(tc.err))
		})
	}
}

func TestGetCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, errors.CodeOK, errors.GetCode(nil))
	assert.Equal(t, errors.CodeUnknown, errors.GetCode(stderrors.New("plain")))
	assert.Equal(t, errors.ErrCodeLibraryEmpty,
		errors.GetCode(errors.New(errors.ErrCodeLibraryEmpty, "empty")))
}

func TestHTTPStatusForCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, http.StatusBadRequest, errors.HTTPStatusForCode(errors.ErrCodeInvalidSMILES))
	assert.Equal(t, http.StatusNotFound, errors.HTTPStatusForCode(errors.ErrCodeRunNotFound))
	assert.Equal(t, http.StatusInternalServerError, errors.HTTPStatusForCode(errors.ErrorCode("BOGUS")))
}

func TestModuleForCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "CHEM", errors.ModuleForCode(errors.ErrCodeInvalidSMILES))
	assert.Equal(t, "GEN", errors.ModuleForCode(errors.ErrCodeRunNotFound))
	assert.Equal(t, "COMMON", errors.ModuleForCode(errors.ErrCodeInternal))
}
