package authapimodels

import (
	"net/mail"
	"strings"

	"github.com/pkg/errors"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	_, err := mail.ParseAddress(r.Email)
	if err != nil {
		return errors.New("почта имеет неправильный формат")
	}
	if strings.TrimSpace(r.Password) == "" {
		return errors.New("не указан пароль")
	}
	return nil
}
