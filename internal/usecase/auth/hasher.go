package auth

// PasswordHasher abstracts the one-way password hash applied at registration
// and checked at login. Verify treats a mismatch as a normal outcome, not an
// error; only a malformed stored hash errors.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) (bool, error)
}
