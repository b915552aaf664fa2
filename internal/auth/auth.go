package auth

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// DefaultPassword is seeded on first use when no hash file exists yet. The
// recruiter is expected to change it right away.
const DefaultPassword = "password123"

const DefaultHashFile = ".password.hash"

// Gate protects the recruiter-side commands with a bcrypt password hash
// stored in a file.
type Gate struct {
	hashFile string
}

func New(hashFile string) *Gate {
	if strings.TrimSpace(hashFile) == "" {
		hashFile = DefaultHashFile
	}
	return &Gate{hashFile: hashFile}
}

// SetPassword hashes the password and stores it, replacing any previous one.
func (g *Gate) SetPassword(password string) error {
	if password == "" {
		return errors.New("password must not be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := os.WriteFile(g.hashFile, hash, 0o600); err != nil {
		return fmt.Errorf("write password hash %s: %w", g.hashFile, err)
	}

	return nil
}

// Check verifies the password against the stored hash. When no hash file
// exists yet the default password is seeded first, and seeded reports true so
// the caller can warn about it.
func (g *Gate) Check(password string) (ok bool, seeded bool, err error) {
	hash, err := os.ReadFile(g.hashFile)
	if err != nil {
		if !os.IsNotExist(err) {
			return false, false, fmt.Errorf("read password hash %s: %w", g.hashFile, err)
		}

		if err := g.SetPassword(DefaultPassword); err != nil {
			return false, false, err
		}

		ok, _, err := g.Check(password)
		return ok, true, err
	}

	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, false, nil
		}
		return false, false, fmt.Errorf("compare password hash: %w", err)
	}

	return true, false, nil
}
