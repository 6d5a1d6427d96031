package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMessage_Summary(t *testing.T) {
	m := Message{ID: 7, Sender: "bob", Subject: "lunch?", CreatedAt: time.Now(), Fresh: true}

	s := m.Summary()
	assert.True(t, strings.HasPrefix(s, "*"))
	assert.Contains(t, s, "bob")
	assert.Contains(t, s, "lunch?")

	m.Fresh = false
	assert.True(t, strings.HasPrefix(m.Summary(), " "))
}

func TestMessage_String(t *testing.T) {
	m := Message{ID: 3, Sender: "bob", Receiver: "alice", Subject: "hi", Body: "see you", CreatedAt: time.Now()}

	s := m.String()
	assert.Contains(t, s, "From:    bob")
	assert.Contains(t, s, "To:      alice")
	assert.True(t, strings.HasSuffix(s, "see you"))
}
