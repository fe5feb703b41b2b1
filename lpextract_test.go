package lpextract_test

import (
	"errors"
	"testing"

	"github.com/lpforge/lpextract"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := lpextract.Errorf(lpextract.ENOTFOUND, "extraction %q not found", "test")

	assert.Equal(t, lpextract.ENOTFOUND, lpextract.ErrorCode(err))
	assert.Equal(t, "extraction \"test\" not found", lpextract.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, lpextract.ErrorCode(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, lpextract.EINTERNAL, lpextract.ErrorCode(errors.New("boom")))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, lpextract.ErrorMessage(nil))
}

func TestErrorMessage_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Internal error.", lpextract.ErrorMessage(errors.New("boom")))
}
