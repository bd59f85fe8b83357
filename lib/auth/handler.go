package authhandler

import (
	"booking-backend/config"
	resourcestore "booking-backend/lib/resource-store"
	authutils "booking-backend/lib/utils/auth-utils"
	initchecker "booking-backend/lib/utils/init-checker"
	authapimodels "booking-backend/models/api/auth"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var ErrWrongCredentials = errors.New("неверная почта или пароль")

type Provider interface {
	Login(email, password string) (resp authapimodels.JWTResponse, err error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(resourcestore.Instance)
}

func NewInstance(store resourcestore.Provider) Provider {
	instance := impl{
		store: store,
	}
	initchecker.CheckInit(
		"store", instance.store,
	)
	return instance
}

type impl struct {
	store resourcestore.Provider
}

func (i impl) Login(email, password string) (resp authapimodels.JWTResponse, err error) {
	email = strings.ToLower(strings.TrimSpace(email))
	logger := log.WithField("email", email)
	rec, err := i.store.Stores().Employee.FindByEmail(email)
	if err != nil {
		logger.WithError(err).Error("ошибка поиска сотрудника")
		return resp, err
	}
	if rec == nil || !authutils.CheckPassword(rec.PasswordHash, password) {
		logger.Info("неудачная попытка входа")
		return resp, ErrWrongCredentials
	}
	token, err := authutils.GetToken(rec.ID, rec.Name, rec.Role)
	if err != nil {
		return resp, errors.Wrap(err, "ошибка формирования токена")
	}
	return authapimodels.JWTResponse{
		Token:     token,
		ExpiresIn: config.Conf.Auth.JWTExpireInSec,
	}, nil
}
