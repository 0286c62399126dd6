// Package ui is the bubbletea front end: the consent and signup flow, the
// home calendar, the write form, my-diaries and the profile screens.
package ui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/ramanasai/diary/internal/app"
	"github.com/ramanasai/diary/internal/apperr"
	"github.com/ramanasai/diary/internal/calendar"
	"github.com/ramanasai/diary/internal/config"
	"github.com/ramanasai/diary/internal/consent"
	"github.com/ramanasai/diary/internal/diary"
	"github.com/ramanasai/diary/internal/logging"
	"github.com/ramanasai/diary/internal/profile"
	"github.com/ramanasai/diary/internal/store"
)

type screen int

const (
	screenConsent screen = iota
	screenAccount
	screenLoading
	screenSignup
	screenHome
	screenWrite
	screenList
	screenProfile
)

const toastTTL = 2500 * time.Millisecond

// Snapshot shares the latest entries with goroutines outside the event loop,
// such as the reminder runner.
type Snapshot struct {
	mu      sync.RWMutex
	entries []diary.Entry
}

func (s *Snapshot) Set(entries []diary.Entry) {
	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()
}

func (s *Snapshot) Get() []diary.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries
}

type Options struct {
	App      *app.App
	Config   config.Config
	Log      *log.Logger
	Changes  <-chan store.Change
	Snapshot *Snapshot
}

type Model struct {
	ctx      context.Context
	app      *app.App
	cfg      config.Config
	log      *log.Logger
	changes  <-chan store.Change
	snapshot *Snapshot

	width, height int
	now           time.Time
	screen        screen
	back          screen
	th            Theme
	modals        ModalStack
	spin          spinner.Model

	toast    string
	toastErr bool
	toastSeq int
	busy     bool

	// consent and signup
	gate          *consent.Gate
	consentCursor int
	accountCursor int
	nick, birth   textinput.Model
	gender        profile.Gender
	signupField   int

	// home
	view   calendar.View
	cursor time.Time
	hour   int
	quick  AutocompleteModel

	w writeForm
	l listForm

	profileCursor int
	customInput   textinput.Model
}

// New builds the model for an already loaded App and picks the first screen.
func New(ctx context.Context, o Options) Model {
	lg := o.Log
	if lg == nil {
		lg = logging.Discard()
	}
	snap := o.Snapshot
	if snap == nil {
		snap = &Snapshot{}
	}

	nick := textinput.New()
	nick.Placeholder = "Nickname"
	nick.CharLimit = 30
	birth := textinput.New()
	birth.Placeholder = "YYYY-MM-DD (optional)"
	birth.CharLimit = 10

	quick := NewAutocomplete(MatchTitles(o.App.Titles), 5)
	quick.SetPlaceholder("What is today's title?")
	quick.SetWidth(40)
	quick.SetValue(o.App.QuickTitle(ctx))

	custom := textinput.New()
	custom.Placeholder = "#RRGGBB ×5: primary secondary accent background surface"
	custom.CharLimit = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	now := o.App.Now()
	m := Model{
		ctx:         ctx,
		app:         o.App,
		cfg:         o.Config,
		log:         lg,
		changes:     o.Changes,
		snapshot:    snap,
		now:         now,
		th:          NewTheme(o.App.Theme().Colors),
		spin:        sp,
		gate:        consent.NewGate(),
		nick:        nick,
		birth:       birth,
		view:        calendar.ViewDay,
		cursor:      now,
		hour:        now.Hour(),
		quick:       quick,
		l:           newListForm(),
		customInput: custom,
	}
	m.snapshot.Set(o.App.Entries())

	_, accepted, err := o.App.ConsentAccepted(ctx)
	if err != nil {
		lg.Warn("consent unreadable", "err", err)
	}
	_, signedUp := o.App.User()
	switch {
	case !accepted:
		m.screen = screenConsent
	case !signedUp:
		m.screen = screenSignup
		m.nick.Focus()
	default:
		m.screen = screenHome
	}
	return m
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, o Options) error {
	p := tea.NewProgram(New(ctx, o), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tickNow(), m.waitForChange(), textinput.Blink)
}

// ---------- messages & commands ----------

type tickMsg struct{ now time.Time }
type loadingDoneMsg struct{}
type toastExpiredMsg struct{ seq int }
type changeMsg struct {
	change store.Change
	ok     bool
}

// commitMsg arrives after the save delay and performs the storage call.
type commitMsg struct {
	op     string
	target string
}

const (
	opSave   = "save"
	opDelete = "delete"
)

func tickNow() tea.Cmd {
	return tea.Tick(30*time.Second, func(t time.Time) tea.Msg { return tickMsg{now: t} })
}

func (m Model) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	ch := m.changes
	return func() tea.Msg {
		c, ok := <-ch
		return changeMsg{change: c, ok: ok}
	}
}

func (m *Model) showToast(text string, isErr bool) tea.Cmd {
	m.toastSeq++
	m.toast, m.toastErr = text, isErr
	seq := m.toastSeq
	return tea.Tick(toastTTL, func(time.Time) tea.Msg { return toastExpiredMsg{seq: seq} })
}

// fail reports err: validation problems block with an alert, anything else
// is a transient toast.
func (m *Model) fail(err error) tea.Cmd {
	if apperr.IsValidation(err) {
		m.modals.Push(Modal{Kind: ModalAlert, Title: "Check your input", Body: apperr.UserMessage(err)})
		return nil
	}
	m.log.Error("operation failed", "err", err)
	return m.showToast(apperr.UserMessage(err), true)
}

// afterDelay schedules a storage operation behind the configured save delay.
func (m *Model) afterDelay(op, target string) tea.Cmd {
	m.busy = true
	d := m.cfg.UI.SaveDelay
	if d <= 0 {
		d = time.Millisecond
	}
	return tea.Batch(m.spin.Tick, tea.Tick(d, func(time.Time) tea.Msg { return commitMsg{op: op, target: target} }))
}

func (m *Model) refresh() {
	m.snapshot.Set(m.app.Entries())
	m.th = NewTheme(m.app.Theme().Colors)
	if m.screen == screenList {
		m.applyListFilter(false)
	}
}

// ---------- Update ----------

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.w.resize(msg.Width)
		return m, nil

	case tickMsg:
		m.now = msg.now.In(m.app.Location())
		return m, tickNow()

	case spinner.TickMsg:
		if !m.busy && m.screen != screenLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case toastExpiredMsg:
		if msg.seq == m.toastSeq {
			m.toast = ""
		}
		return m, nil

	case loadingDoneMsg:
		m.screen = screenSignup
		m.signupField = 0
		return m, m.nick.Focus()

	case changeMsg:
		if !msg.ok {
			return m, nil
		}
		return m, tea.Batch(m.onChange(msg.change), m.waitForChange())

	case commitMsg:
		m.busy = false
		switch msg.op {
		case opSave:
			return m.commitWrite()
		case opDelete:
			return m.commitDelete(msg.target)
		}
		return m, nil

	case AutocompleteMsg:
		var cmd tea.Cmd
		m.quick, cmd = m.quick.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.busy {
			return m, nil
		}
		if !m.modals.Empty() {
			return m.updateModal(msg)
		}
		switch m.screen {
		case screenConsent:
			return m.updateConsent(msg)
		case screenAccount:
			return m.updateAccount(msg)
		case screenLoading:
			return m, nil
		case screenSignup:
			return m.updateSignup(msg)
		case screenHome:
			return m.updateHome(msg)
		case screenWrite:
			return m.updateWrite(msg)
		case screenList:
			return m.updateList(msg)
		case screenProfile:
			return m.updateProfile(msg)
		}
	}

	return m.updateFocused(msg)
}

// updateFocused forwards cursor blinks and the like to the focused input.
func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.screen {
	case screenSignup:
		if m.signupField == 0 {
			m.nick, cmd = m.nick.Update(msg)
		} else {
			m.birth, cmd = m.birth.Update(msg)
		}
	case screenHome:
		m.quick, cmd = m.quick.Update(msg)
	case screenWrite:
		cmd = m.w.updateInputs(msg)
	case screenList:
		cmd = m.l.updateInputs(msg)
	}
	return m, cmd
}

// onChange reacts to writes by other processes to the data directory.
func (m *Model) onChange(c store.Change) tea.Cmd {
	var err error
	switch c.Key {
	case "", store.KeyEntries:
		err = m.app.Reload(m.ctx)
	case store.KeyUser, store.KeyTheme:
		err = m.app.Load(m.ctx)
	default:
		return nil
	}
	if err != nil {
		m.log.Warn("reload after change", "key", c.Key, "err", err)
		return nil
	}
	m.log.Debug("reloaded", "key", c.Key)
	m.refresh()
	return nil
}

// ---------- View ----------

func (m Model) View() string {
	var body string
	switch m.screen {
	case screenConsent:
		body = m.viewConsent()
	case screenAccount:
		body = m.viewAccount()
	case screenLoading:
		body = m.viewLoading()
	case screenSignup:
		body = m.viewSignup()
	case screenHome:
		body = m.viewHome()
	case screenWrite:
		body = m.viewWrite()
	case screenList:
		body = m.viewList()
	case screenProfile:
		body = m.viewProfile()
	}

	if top, ok := m.modals.Top(); ok {
		box := m.viewModal(*top)
		if m.width > 0 && m.height > 0 {
			body = lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, box)
		} else {
			body = box
		}
	}

	var status string
	switch {
	case m.busy:
		status = m.spin.View() + " saving…"
	case m.toast != "" && m.toastErr:
		status = m.th.Error.Render(m.toast)
	case m.toast != "":
		status = m.th.Toast.Render(m.toast)
	}
	if status == "" {
		return body
	}
	return body + "\n" + status
}

func (m Model) header(title string) string {
	var b strings.Builder
	b.WriteString(m.th.Title.Render("📔 " + title))
	if u, ok := m.app.User(); ok {
		b.WriteString(m.th.Hint.Render("  " + u.Nickname))
		if u.Premium {
			b.WriteString(m.th.Selected.Render(" ★"))
		}
	}
	b.WriteString("\n\n")
	return b.String()
}

func (m Model) footer(hints ...string) string {
	return "\n" + m.th.Hint.Render(strings.Join(hints, " · "))
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

func (m Model) pointer(selected bool) string {
	if selected {
		return m.th.Selected.Render("▶ ")
	}
	return "  "
}

func newTextarea(placeholder string) textarea.Model {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.SetHeight(8)
	ta.SetWidth(60)
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	return ta
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return fmt.Sprintf("%d %s", n, many)
}
