package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{NotFound("no house with the id of %s", "h1"), http.StatusNotFound},
		{Forbidden("u2", "h1", "not allowed"), http.StatusUnauthorized},
		{Unauthorized("no token"), http.StatusUnauthorized},
		{Conflict("taken"), http.StatusBadRequest},
		{Validation("name: required"), http.StatusBadRequest},
		{Upload("too large"), http.StatusBadRequest},
		{Storage(errors.New("disk full"), "Problem with file upload"), http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.err), tt.err.Error())
	}
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("loading: %w", NotFound("gone"))

	assert.Equal(t, KindNotFound, KindOf(err))
	assert.True(t, Is(err, KindNotFound))
	assert.False(t, Is(nil, KindNotFound))
}

func TestForbiddenCarriesIDs(t *testing.T) {
	var e *Error
	assert.True(t, errors.As(Forbidden("u2", "h1", "User %s is not authorized", "u2"), &e))
	assert.Equal(t, "u2", e.ActorID)
	assert.Equal(t, "h1", e.ResourceID)
	assert.Equal(t, "User u2 is not authorized", e.Error())
}

func TestMessageHidesUnexpected(t *testing.T) {
	assert.Equal(t, "Server Error", Message(errors.New("pq: connection refused")))
	assert.Equal(t, "Server Error", Message(Unexpected(errors.New("pq: connection refused"))))
	assert.Equal(t, "taken", Message(Conflict("taken")))
}
