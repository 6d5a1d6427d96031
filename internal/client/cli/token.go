package cli

import "github.com/dmitrijs2005/gophinbox/internal/filex"

// tokenFile persists the session token between invocations.
type tokenFile struct {
	path string
}

// Load returns the stored token, or "" when none is stored.
func (t tokenFile) Load() (string, error) {
	return filex.ReadTrimmed(t.path)
}

func (t tokenFile) Save(token string) error {
	return filex.WritePrivate(t.path, []byte(token+"\n"))
}

// Clear removes the stored token.
func (t tokenFile) Clear() error {
	return filex.RemoveIfExists(t.path)
}
