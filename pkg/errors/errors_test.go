package errors

import (
	stderrors "errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jafarshop/sellingplans/internal/domain"
)

func TestUserErrors(t *testing.T) {
	assert.NoError(t, UserErrors(nil))

	err := UserErrors([]domain.UserError{
		{Field: []string{"input", "name"}, Message: "is too long"},
		{Message: "plan limit reached"},
	})
	var ue *ErrUserErrors
	assert.True(t, stderrors.As(err, &ue))
	assert.Len(t, ue.Errors, 2)
	assert.Equal(t, "user errors: input.name: is too long; plan limit reached", err.Error())
}

func TestErrTransportUnwrap(t *testing.T) {
	err := &ErrTransport{Op: "post", Err: io.ErrUnexpectedEOF}
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Equal(t, "post: unexpected EOF", err.Error())
}
