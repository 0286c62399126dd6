// Package profile holds the signed-up user and signup validation.
package profile

import (
	"strings"
	"time"

	"github.com/ramanasai/diary/internal/apperr"
)

type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

func ParseGender(s string) (Gender, bool) {
	switch g := Gender(strings.ToLower(strings.TrimSpace(s))); g {
	case Male, Female:
		return g, true
	}
	return "", false
}

func (g Gender) Label() string {
	switch g {
	case Male:
		return "Male"
	case Female:
		return "Female"
	}
	return ""
}

// User is persisted under the diary-user key.
type User struct {
	Nickname  string    `json:"nickname" yaml:"nickname"`
	Birthdate string    `json:"birthdate" yaml:"birthdate"` // YYYY-MM-DD, optional
	Gender    Gender    `json:"gender" yaml:"gender"`
	Email     string    `json:"email" yaml:"email"`
	Premium   bool      `json:"premium" yaml:"premium"`
	Reminder  bool      `json:"reminder" yaml:"reminder"`
	JoinedAt  time.Time `json:"joinedAt" yaml:"joinedAt"`
}

// Validate enforces the signup form rules: nickname first, then gender.
func (u User) Validate() error {
	if strings.TrimSpace(u.Nickname) == "" {
		return apperr.ErrNicknameRequired
	}
	if _, ok := ParseGender(string(u.Gender)); !ok {
		return apperr.ErrGenderRequired
	}
	if u.Birthdate != "" {
		if _, err := time.Parse("2006-01-02", u.Birthdate); err != nil {
			return apperr.Validation("BIRTHDATE", "birthdate must look like 2006-01-02")
		}
	}
	return nil
}

// Guest is the profile used when signup is skipped.
func Guest(now time.Time) User {
	return User{
		Nickname: "User",
		Gender:   Female,
		Email:    "user@gmail.com",
		JoinedAt: now,
	}
}

// Summary is the one-line description on the profile screen.
func (u User) Summary() string {
	parts := []string{}
	if l := u.Gender.Label(); l != "" {
		parts = append(parts, l)
	}
	if u.Birthdate != "" {
		parts = append(parts, u.Birthdate)
	}
	return strings.Join(parts, " · ")
}
