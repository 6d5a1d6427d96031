// Package access holds the authorization rules for inbox operations.
// The functions are pure predicates over the acting identity and the target
// message, so every service path applies exactly the same rule.
package access

import "github.com/dmitrijs2005/gophinbox/internal/server/models"

// CanSend allows any authenticated actor to send, to any receiver name.
func CanSend(actor *models.Identity) bool {
	return authenticated(actor)
}

// CanViewAsReceiver allows reading (and therefore marking read) only to the
// receiver. Being the sender is not enough.
func CanViewAsReceiver(actor *models.Identity, m *models.Message) bool {
	return authenticated(actor) && m != nil && actor.Name == m.Receiver
}

// CanDelete allows either party of the message to delete it.
func CanDelete(actor *models.Identity, m *models.Message) bool {
	if !authenticated(actor) || m == nil {
		return false
	}
	return actor.Name == m.Receiver || actor.Name == m.Sender
}

func authenticated(actor *models.Identity) bool {
	return actor != nil && actor.Name != ""
}
