package domain

// User is the signed-in identity. The JSON form is what gets persisted.
type User struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}
