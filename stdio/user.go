package stdio

import (
	"os"
	"os/user"
)

// UserProvider resolves the user ID associated with the stdio peer. No
// credentials cross a stdio pipe; the ID only labels log records.
type UserProvider interface {
	CurrentUserID() (string, error)
}

// OSUserProvider reports the operating system's current user, preferring the
// username and falling back to the uid, then to $USER.
type OSUserProvider struct{}

func (OSUserProvider) CurrentUserID() (string, error) {
	u, err := user.Current()
	if err != nil {
		if name := os.Getenv("USER"); name != "" {
			return name, nil
		}
		return "", err
	}
	if u.Username != "" {
		return u.Username, nil
	}
	return u.Uid, nil
}

// StaticUser is a UserProvider that always reports the same ID.
type StaticUser string

func (s StaticUser) CurrentUserID() (string, error) { return string(s), nil }
