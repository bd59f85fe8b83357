package models

import (
	"strings"

	"github.com/pkg/errors"
)

// RequestStatus статус заявки на бронирование или отпуск
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "PENDING"
	RequestStatusApproved RequestStatus = "APPROVED"
	RequestStatusRejected RequestStatus = "REJECTED"
)

var requestStatusHumanName = map[RequestStatus]string{
	RequestStatusPending:  "Ожидает согласования",
	RequestStatusApproved: "Согласована",
	RequestStatusRejected: "Отклонена",
}

func (s RequestStatus) ToHuman() string {
	if human, exist := requestStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

func (s RequestStatus) Validate() error {
	if _, exist := requestStatusHumanName[s]; !exist {
		return errors.Errorf("некорректный статус заявки: %v", s)
	}
	return nil
}

// IsApproved сравнение без учета регистра, статус может прийти как "Approved"
func (s RequestStatus) IsApproved() bool {
	return strings.EqualFold(string(s), string(RequestStatusApproved))
}

// IsTerminal из согласованной или отклоненной заявки переходов нет
func (s RequestStatus) IsTerminal() bool {
	return s == RequestStatusApproved || s == RequestStatusRejected
}

// IsAllowChange допустим ли переход из текущего статуса в newStatus
func (s RequestStatus) IsAllowChange(newStatus RequestStatus) bool {
	if s == newStatus {
		return true
	}
	return !s.IsTerminal()
}

// ParseRequestStatus приводит статус к каноничному виду без учета регистра
func ParseRequestStatus(value string) (RequestStatus, error) {
	status := RequestStatus(strings.ToUpper(strings.TrimSpace(value)))
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}
