package profile

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ramanasai/diary/internal/apperr"
)

func TestValidateOrder(t *testing.T) {
	err := User{}.Validate()
	assert.True(t, errors.Is(err, apperr.ErrNicknameRequired))

	err = User{Nickname: "mina"}.Validate()
	assert.True(t, errors.Is(err, apperr.ErrGenderRequired))

	assert.NoError(t, User{Nickname: "mina", Gender: Female}.Validate())
}

func TestValidateBirthdate(t *testing.T) {
	u := User{Nickname: "mina", Gender: Male, Birthdate: "05/01/1999"}
	assert.True(t, apperr.IsValidation(u.Validate()))
	u.Birthdate = "1999-01-05"
	assert.NoError(t, u.Validate())
}

func TestGuest(t *testing.T) {
	g := Guest(time.Now())
	assert.NoError(t, g.Validate())
	assert.Equal(t, Female, g.Gender)
	assert.Equal(t, "user@gmail.com", g.Email)
}

func TestParseGender(t *testing.T) {
	g, ok := ParseGender(" Female ")
	assert.True(t, ok)
	assert.Equal(t, Female, g)
	_, ok = ParseGender("x")
	assert.False(t, ok)
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "Male · 1999-01-05", User{Gender: Male, Birthdate: "1999-01-05"}.Summary())
	assert.Equal(t, "", User{}.Summary())
}
