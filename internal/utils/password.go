package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword returns a bcrypt hash of a password.  A cost outside the
// range bcrypt accepts falls back to the library default, so a
// misconfigured BCRYPT_COST degrades to a sane hash instead of an error
// at every account creation.
func HashPassword(plain string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether a plain password matches a bcrypt hash.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
