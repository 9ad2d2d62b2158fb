package domain

// Credential is a username/password pair accepted by a CredentialStore.
// Stores keep only the bcrypt hash once loaded.
type Credential struct {
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}
