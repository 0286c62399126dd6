package app

import (
	"context"
	"strings"
	"time"

	"github.com/ramanasai/diary/internal/apperr"
	"github.com/ramanasai/diary/internal/consent"
	"github.com/ramanasai/diary/internal/diary"
	"github.com/ramanasai/diary/internal/profile"
	"github.com/ramanasai/diary/internal/store"
	"github.com/ramanasai/diary/internal/theme"
)

// ErrPremiumRequired guards premium-only features.
var ErrPremiumRequired = apperr.Validation("PREMIUM_REQUIRED", "this feature is part of premium")

// AcceptConsent stores the record produced by a passed consent gate.
func (a *App) AcceptConsent(ctx context.Context, rec consent.Record) error {
	return store.SetJSON(ctx, a.kv, store.KeyConsent, rec)
}

func (a *App) ConsentAccepted(ctx context.Context) (consent.Record, bool, error) {
	var rec consent.Record
	ok, err := store.GetJSON(ctx, a.kv, store.KeyConsent, &rec)
	return rec, ok, err
}

// User returns the signed-up profile, if any.
func (a *App) User() (profile.User, bool) {
	if a.user == nil {
		return profile.User{}, false
	}
	return *a.user, true
}

// Gender is the profile gender, used to decide which diary types to offer.
func (a *App) Gender() string {
	if a.user == nil {
		return ""
	}
	return string(a.user.Gender)
}

// Types lists the diary types offered to the current user.
func (a *App) Types() []diary.Type {
	return diary.TypesFor(a.Gender())
}

// Signup validates and stores the profile. Consent must have been given.
func (a *App) Signup(ctx context.Context, u profile.User) error {
	if _, ok, err := a.ConsentAccepted(ctx); err != nil {
		return err
	} else if !ok {
		return apperr.ErrConsentRequired
	}
	u.Nickname = strings.TrimSpace(u.Nickname)
	if g, ok := profile.ParseGender(string(u.Gender)); ok {
		u.Gender = g
	}
	if err := u.Validate(); err != nil {
		return err
	}
	if u.Email == "" {
		u.Email = profile.Guest(a.Now()).Email
	}
	if u.JoinedAt.IsZero() {
		u.JoinedAt = a.Now()
	}
	return a.saveUser(ctx, u)
}

// SkipSignup stores the guest profile.
func (a *App) SkipSignup(ctx context.Context) error {
	return a.saveUser(ctx, profile.Guest(a.Now()))
}

func (a *App) saveUser(ctx context.Context, u profile.User) error {
	if err := store.SetJSON(ctx, a.kv, store.KeyUser, u); err != nil {
		return err
	}
	a.user = &u
	a.log.Info("profile saved", "nickname", u.Nickname)
	return nil
}

// Logout forgets the profile. Entries stay on disk.
func (a *App) Logout(ctx context.Context) error {
	if err := a.kv.Delete(ctx, store.KeyUser); err != nil {
		return err
	}
	a.user = nil
	return nil
}

// SetReminder toggles the daily diary reminder on the profile.
func (a *App) SetReminder(ctx context.Context, on bool) error {
	u, ok := a.User()
	if !ok {
		return apperr.Validation("NO_PROFILE", "sign up first")
	}
	u.Reminder = on
	return a.saveUser(ctx, u)
}

// Subscribe marks the profile as premium. There is no payment step.
func (a *App) Subscribe(ctx context.Context) error {
	u, ok := a.User()
	if !ok {
		return apperr.Validation("NO_PROFILE", "sign up first")
	}
	u.Premium = true
	return a.saveUser(ctx, u)
}

func (a *App) Premium() bool { return a.user != nil && a.user.Premium }

func (a *App) Theme() theme.State { return a.theme }

// SetTheme switches to a preset palette.
func (a *App) SetTheme(ctx context.Context, name string) error {
	if _, ok := theme.Preset(name); !ok {
		return apperr.Validation("THEME", "unknown theme "+name)
	}
	return a.saveTheme(ctx, theme.Select(name))
}

// SetCustomColors stores a user palette. Premium only.
func (a *App) SetCustomColors(ctx context.Context, p theme.Palette) error {
	if !a.Premium() {
		return ErrPremiumRequired
	}
	st, err := theme.WithCustom(p)
	if err != nil {
		return apperr.Validation("THEME_COLOR", err.Error())
	}
	return a.saveTheme(ctx, st)
}

func (a *App) ResetTheme(ctx context.Context) error {
	return a.saveTheme(ctx, theme.DefaultState())
}

func (a *App) saveTheme(ctx context.Context, st theme.State) error {
	if err := store.SetJSON(ctx, a.kv, store.KeyTheme, st); err != nil {
		return err
	}
	a.theme = st
	return nil
}

// SetQuickTitle remembers the home screen's title field.
func (a *App) SetQuickTitle(ctx context.Context, title string) error {
	if strings.TrimSpace(title) == "" {
		return a.kv.Delete(ctx, store.KeyCurrentTitle)
	}
	return store.SetJSON(ctx, a.kv, store.KeyCurrentTitle, title)
}

func (a *App) QuickTitle(ctx context.Context) string {
	var t string
	_, _ = store.GetJSON(ctx, a.kv, store.KeyCurrentTitle, &t)
	return t
}

// BeginWrite hands the quick title over to the write screen and records
// where on the calendar the write was started.
func (a *App) BeginWrite(ctx context.Context, day *time.Time, slot *int) error {
	if t := strings.TrimSpace(a.QuickTitle(ctx)); t != "" {
		if err := store.SetJSON(ctx, a.kv, store.KeyPendingTitle, t); err != nil {
			return err
		}
	}
	if day != nil {
		if err := store.SetJSON(ctx, a.kv, store.KeySelectedDate, day.UTC().Format(time.RFC3339)); err != nil {
			return err
		}
	}
	if slot != nil {
		if err := store.SetJSON(ctx, a.kv, store.KeySelectedTimeSlot, *slot); err != nil {
			return err
		}
	}
	return nil
}

// PendingTitle peeks at the title handed over by BeginWrite.
func (a *App) PendingTitle(ctx context.Context) string {
	var t string
	_, _ = store.GetJSON(ctx, a.kv, store.KeyPendingTitle, &t)
	return t
}

// TakeSelectedDate consumes the selected-date hint.
func (a *App) TakeSelectedDate(ctx context.Context) (time.Time, bool) {
	var s string
	if ok, err := store.Take(ctx, a.kv, store.KeySelectedDate, &s); err != nil || !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		a.log.Warn("bad selected date hint", "value", s)
		return time.Time{}, false
	}
	return t, true
}

// TakeScrollTarget consumes the scroll-to-hour and switch-to-day hints. Both
// must be present for the jump to happen.
func (a *App) TakeScrollTarget(ctx context.Context) (int, bool) {
	var h int
	var day bool
	okH, _ := store.Take(ctx, a.kv, store.KeyScrollToTime, &h)
	okD, _ := store.Take(ctx, a.kv, store.KeySwitchToDay, &day)
	if !okH || !okD || !day {
		return 0, false
	}
	return h, true
}
