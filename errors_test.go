package tickerlens_test

import (
	"errors"
	"testing"

	"github.com/tickerlens/tickerlens"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := tickerlens.Errorf(tickerlens.ENOTFOUND, "document %q not found", "test")

	assert.Equal(t, tickerlens.ENOTFOUND, tickerlens.ErrorCode(err))
	assert.Equal(t, "document \"test\" not found", tickerlens.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, tickerlens.ErrorCode(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, tickerlens.EINTERNAL, tickerlens.ErrorCode(errors.New("boom")))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, tickerlens.ErrorMessage(nil))
}
