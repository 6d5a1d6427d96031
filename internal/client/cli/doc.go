// Package cli implements inboxctl, the command-line client for the inbox.
//
// Usage:
//
//	inboxctl [-s server] [-t tokenfile] <command> [args]
//
// Commands:
//
//	register          create an account and log in
//	login             log in (ends the current session first)
//	logout            end the current session
//	send [receiver]   send a message; subject and body are prompted
//	list              show every message addressed to you
//	unread            show unread messages addressed to you
//	read [id]         show one message, or the next unread one without id
//	delete <id>       delete a message you sent or received
//
// Reading or listing marks the shown messages as read on the server. The
// session token is kept in the token file between invocations.
package cli
