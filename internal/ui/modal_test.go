package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModalStackPushPop(t *testing.T) {
	var s ModalStack
	assert.True(t, s.Empty())

	s.Push(Modal{Kind: ModalDetail, Target: "1"})
	s.Push(Modal{Kind: ModalConfirm, Target: "1", Action: "delete"})
	assert.Equal(t, 2, s.Len())

	top, ok := s.Top()
	require.True(t, ok)
	assert.Equal(t, ModalConfirm, top.Kind)

	m, ok := s.Pop()
	require.True(t, ok)
	assert.Equal(t, "delete", m.Action)

	top, ok = s.Top()
	require.True(t, ok)
	assert.Equal(t, ModalDetail, top.Kind, "focus returns to the modal below")

	_, _ = s.Pop()
	_, ok = s.Pop()
	assert.False(t, ok)
}

func TestModalStackTopIsMutable(t *testing.T) {
	var s ModalStack
	s.Push(Modal{Kind: ModalTypeChooser})
	top, _ := s.Top()
	top.Cursor = 3
	again, _ := s.Top()
	assert.Equal(t, 3, again.Cursor)
}

func TestModalStackCopiesDoNotAlias(t *testing.T) {
	var a ModalStack
	a.Push(Modal{Kind: ModalDetail})
	b := a
	b.Push(Modal{Kind: ModalConfirm})
	a.Push(Modal{Kind: ModalAlert})

	top, _ := b.Top()
	assert.Equal(t, ModalConfirm, top.Kind)
}

func TestModalStackPopTo(t *testing.T) {
	var s ModalStack
	s.Push(Modal{Kind: ModalDetail})
	s.Push(Modal{Kind: ModalConfirm})
	s.Push(Modal{Kind: ModalAlert})

	assert.True(t, s.Has(ModalConfirm))
	assert.True(t, s.PopTo(ModalDetail))
	assert.Equal(t, 1, s.Len())

	assert.False(t, s.PopTo(ModalTheme))
	assert.True(t, s.Empty())
}
