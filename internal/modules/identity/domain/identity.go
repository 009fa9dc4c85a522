package domain

import "strings"

// Persisted keys. They match the names the mobile client uses on device.
const (
	KeyAuthToken     = "authToken"
	KeyCurrentUserID = "currentUserId"
	KeyFirstName     = "userFirstName"
	KeyLastName      = "userLastName"
	KeyPhotoURL      = "userPhotoURL"
)

// Keys lists every persisted identity key.
func Keys() []string {
	return []string{KeyAuthToken, KeyCurrentUserID, KeyFirstName, KeyLastName, KeyPhotoURL}
}

// Context is the signed-in user as seen by every other component.
type Context struct {
	UserID    string
	FirstName string
	LastName  string
	Token     string
	PhotoURL  string
}

// Account is the result of a successful sign-in.
type Account struct {
	Context
	Email     string
	IsNewUser bool
}

func (c Context) LoggedIn() bool {
	return strings.TrimSpace(c.UserID) != ""
}

func (c Context) DisplayName() string {
	name := strings.TrimSpace(c.FirstName + " " + c.LastName)
	if name == "" {
		return c.UserID
	}
	return name
}

func (c Context) Values() map[string]string {
	return map[string]string{
		KeyAuthToken:     c.Token,
		KeyCurrentUserID: c.UserID,
		KeyFirstName:     c.FirstName,
		KeyLastName:      c.LastName,
		KeyPhotoURL:      c.PhotoURL,
	}
}

func FromValues(values map[string]string) Context {
	return Context{
		UserID:    values[KeyCurrentUserID],
		FirstName: values[KeyFirstName],
		LastName:  values[KeyLastName],
		Token:     values[KeyAuthToken],
		PhotoURL:  values[KeyPhotoURL],
	}
}
