package contract

// GoogleAuthRequest exchanges a Google ID token for a backend session token.
type GoogleAuthRequest struct {
	IDToken string `json:"idToken"`
}

type AuthResponse struct {
	User      AuthUser `json:"user"`
	Token     string   `json:"token"`
	IsNewUser bool     `json:"isNewUser"`
}

type AuthUser struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	PhotoURL  *string `json:"photoURL,omitempty"`
}
