package access

import (
	"testing"

	"github.com/dmitrijs2005/gophinbox/internal/server/models"
	"github.com/stretchr/testify/assert"
)

func TestCanSend(t *testing.T) {
	assert.True(t, CanSend(&models.Identity{UserID: 1, Name: "abcde"}))
	assert.False(t, CanSend(nil))
	assert.False(t, CanSend(&models.Identity{UserID: 1}))
}

func TestRules(t *testing.T) {
	msg := &models.Message{ID: 1, Sender: "other", Receiver: "abcde"}

	receiver := &models.Identity{UserID: 1, Name: "abcde"}
	sender := &models.Identity{UserID: 2, Name: "other"}
	stranger := &models.Identity{UserID: 3, Name: "eve"}

	tests := []struct {
		name      string
		actor     *models.Identity
		msg       *models.Message
		canView   bool
		canDelete bool
	}{
		{"receiver", receiver, msg, true, true},
		{"sender", sender, msg, false, true},
		{"third party", stranger, msg, false, false},
		{"no actor", nil, msg, false, false},
		{"anonymous actor", &models.Identity{}, msg, false, false},
		{"no message", receiver, nil, false, false},
		{"self addressed", sender, &models.Message{Sender: "other", Receiver: "other"}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.canView, CanViewAsReceiver(tt.actor, tt.msg))
			assert.Equal(t, tt.canDelete, CanDelete(tt.actor, tt.msg))
		})
	}
}

func TestRules_AreCaseSensitive(t *testing.T) {
	msg := &models.Message{Sender: "Other", Receiver: "ABCDE"}
	actor := &models.Identity{UserID: 1, Name: "abcde"}

	assert.False(t, CanViewAsReceiver(actor, msg))
	assert.False(t, CanDelete(actor, msg))
}
