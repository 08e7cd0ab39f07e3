package jwt

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Photo string `json:"photo"`
}

type TokenResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
