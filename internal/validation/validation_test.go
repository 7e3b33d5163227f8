package validation

import (
	"errors"
	"testing"

	"github.com/Domenick1991/airport-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seatRequest struct {
	Row  int `json:"row" validate:"gte=1"`
	Seat int `json:"seat" validate:"gte=1"`
}

type signup struct {
	Email    string        `json:"email" validate:"required,email"`
	Password string        `json:"password" validate:"min=5"`
	Name     string        `json:"name,omitempty" validate:"notblank"`
	Nickname *string       `json:"nickname" validate:"omitnil,required"`
	Seats    []seatRequest `json:"seats" validate:"dive"`
	Internal string        `json:"-"`
}

func TestStruct_Valid(t *testing.T) {
	nick := "ace"
	err := Struct(signup{
		Email:    "user@example.com",
		Password: "passw0rd",
		Name:     "Amelia",
		Nickname: &nick,
		Seats:    []seatRequest{{Row: 1, Seat: 1}},
	})
	assert.NoError(t, err)
}

func TestStruct_FieldPaths(t *testing.T) {
	empty := ""
	err := Struct(signup{
		Email:    "not-an-email",
		Password: "123",
		Name:     "   ",
		Nickname: &empty,
		Seats:    []seatRequest{{Row: 1, Seat: 1}, {Row: 0, Seat: 2}},
	})

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, map[string]string{
		"email":        "enter a valid email address",
		"password":     "ensure this field has at least 5 characters",
		"name":         RequiredMessage,
		"nickname":     RequiredMessage,
		"seats[1].row": "ensure this value is greater than or equal to 1",
	}, verr.Fields)
}

func TestStruct_MissingEmail(t *testing.T) {
	err := Struct(signup{Password: "passw0rd", Name: "Amelia"})

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, RequiredMessage, verr.Fields["email"])
	assert.NotContains(t, verr.Fields, "nickname")
}

func TestStruct_NotAStruct(t *testing.T) {
	err := Struct(42)

	var verr *domain.ValidationError
	assert.Error(t, err)
	assert.False(t, errors.As(err, &verr))
}
