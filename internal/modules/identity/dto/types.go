package dto

type LoginInput struct {
	IDToken string
}

type DevLoginInput struct {
	UserID    string
	FirstName string
	LastName  string
}

type ContextOutput struct {
	UserID      string
	FirstName   string
	LastName    string
	DisplayName string
	PhotoURL    string
	Email       string
	IsNewUser   bool
}
