package types

import (
	"errors"
	"parcel-tracking/apperr"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name   string  `json:"name" validate:"required,max=5"`
	Email  *string `json:"email" validate:"omitempty,email_or_blank"`
	Rating int     `json:"rating" validate:"min=1,max=5"`
}

func TestValidateStructNamesJSONField(t *testing.T) {
	err := ValidateStruct(sample{Rating: 3})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrInvalidArgument))
	assert.Equal(t, "name", apperr.FieldOf(err))
	assert.Equal(t, "name field required", apperr.Message(err))
}

func TestValidateStructRatingBounds(t *testing.T) {
	for _, r := range []int{0, 6} {
		err := ValidateStruct(sample{Name: "ok", Rating: r})
		require.Error(t, err, "rating %d", r)
		assert.Equal(t, "rating", apperr.FieldOf(err))
	}
	assert.NoError(t, ValidateStruct(sample{Name: "ok", Rating: 5}))
}

func TestEmailOrBlank(t *testing.T) {
	blank := ""
	bad := "not-an-email"
	good := "a@example.com"

	assert.NoError(t, ValidateStruct(sample{Name: "ok", Rating: 1, Email: &blank}))
	assert.NoError(t, ValidateStruct(sample{Name: "ok", Rating: 1, Email: &good}))
	err := ValidateStruct(sample{Name: "ok", Rating: 1, Email: &bad})
	require.Error(t, err)
	assert.Equal(t, "email", apperr.FieldOf(err))
}
