package ui

// ModalKind identifies what a modal shows and which keys it takes.
type ModalKind int

const (
	ModalAlert ModalKind = iota
	ModalDocument
	ModalConfirm
	ModalTypeChooser
	ModalDetail
	ModalPremium
	ModalTheme
)

func (k ModalKind) String() string {
	switch k {
	case ModalAlert:
		return "alert"
	case ModalDocument:
		return "document"
	case ModalConfirm:
		return "confirm"
	case ModalTypeChooser:
		return "type-chooser"
	case ModalDetail:
		return "detail"
	case ModalPremium:
		return "premium"
	case ModalTheme:
		return "theme"
	}
	return "unknown"
}

// Modal is one layer of the stack. Target names the subject (consent item,
// entry id) and Action what a confirm modal does when accepted.
type Modal struct {
	Kind   ModalKind
	Title  string
	Body   string
	Target string
	Action string
	Cursor int
}

// ModalStack holds the open modals; the last one has focus.
type ModalStack struct {
	items []Modal
}

func (s *ModalStack) Push(m Modal) {
	s.items = append(s.items[:len(s.items):len(s.items)], m)
}

// Pop removes the top modal. Focus returns to whatever is below it.
func (s *ModalStack) Pop() (Modal, bool) {
	if len(s.items) == 0 {
		return Modal{}, false
	}
	top := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return top, true
}

// Top returns the focused modal for in-place updates.
func (s *ModalStack) Top() (*Modal, bool) {
	if len(s.items) == 0 {
		return nil, false
	}
	return &s.items[len(s.items)-1], true
}

func (s *ModalStack) Len() int { return len(s.items) }

func (s *ModalStack) Empty() bool { return len(s.items) == 0 }

func (s *ModalStack) Clear() { s.items = nil }

// Has reports whether a modal of kind k is open anywhere in the stack.
func (s *ModalStack) Has(k ModalKind) bool {
	for _, m := range s.items {
		if m.Kind == k {
			return true
		}
	}
	return false
}

// PopTo pops until the top is of kind k. It returns false, leaving the stack
// empty, when no such modal is open.
func (s *ModalStack) PopTo(k ModalKind) bool {
	for len(s.items) > 0 {
		if s.items[len(s.items)-1].Kind == k {
			return true
		}
		s.items = s.items[:len(s.items)-1]
	}
	return false
}
