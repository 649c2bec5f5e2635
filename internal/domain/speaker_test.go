package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSpeaker_Linking(t *testing.T) {
	now := time.Now()
	linked := NewSpeaker("Ada", "user-1", "ada@example.com", now, now)
	placeholder := NewPlaceholderSpeaker("guest@example.com", "tok", now)

	assert.False(t, linked.IsPlaceholder())
	assert.True(t, linked.IsLinkedTo("user-1"))
	assert.False(t, linked.IsLinkedTo("user-2"))
	assert.False(t, linked.IsLinkedTo(""))

	assert.True(t, placeholder.IsPlaceholder())
	assert.False(t, placeholder.IsLinkedTo(""))
	assert.Equal(t, "guest@example.com", placeholder.DisplayName())
	assert.Equal(t, "Ada", linked.DisplayName())
}
