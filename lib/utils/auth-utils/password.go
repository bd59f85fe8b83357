package authutils

import (
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var loginCleanRegexp = regexp.MustCompile(`[^\p{L}\p{N}.]+`)

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// LoginFromName логин из имени: "John Doe" -> "john.doe"
func LoginFromName(name string) string {
	parts := strings.Fields(strings.ToLower(name))
	login := loginCleanRegexp.ReplaceAllString(strings.Join(parts, "."), "")
	return strings.Trim(login, ".")
}
