package apperr

import (
	"net/http"

	"github.com/pkg/errors"
)

type Kind string

const (
	KindNotFound       Kind = "not_found"
	KindInvalidRequest Kind = "invalid_request"
	KindConflict       Kind = "conflict"
	KindUnavailable    Kind = "unavailable"
)

// сущности, на которые ссылаются ошибки
const (
	EntityEmployee        = "employee"
	EntityMeetingRoom     = "meetingRoom"
	EntityEquipment       = "equipment"
	EntityBookingRequest  = "bookingRequest"
	EntityVacationRequest = "vacationRequest"
)

// ключи ошибок, отдаются клиенту в error_key
const (
	KeyNotFound            = "idnotfound"
	KeyRoomRequired        = "roomrequired"
	KeyTimeOverlap         = "timeoverlap"
	KeyInsufficientBalance = "insufficientBalance"
	KeyStatusTransition    = "statustransition"
	KeyInvalidInterval     = "invalidinterval"
	KeyPeriodLocked        = "periodlocked"
	KeyReferenced          = "referenced"
	KeyDuplicate           = "duplicate"
	KeyBusy                = "busy"
)

// Error бизнес-ошибка, пробрасывается до api без изменений
type Error struct {
	Kind    Kind
	Entity  string
	Key     string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is сравнивает по виду ошибки, пустые Entity/Key у образца совпадают с любыми
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	if t.Entity != "" && t.Entity != e.Entity {
		return false
	}
	if t.Key != "" && t.Key != e.Key {
		return false
	}
	return true
}

func NotFound(entity, message string) *Error {
	return &Error{Kind: KindNotFound, Entity: entity, Key: KeyNotFound, Message: message}
}

func InvalidRequest(entity, key, message string) *Error {
	return &Error{Kind: KindInvalidRequest, Entity: entity, Key: key, Message: message}
}

func Conflict(entity, key, message string) *Error {
	return &Error{Kind: KindConflict, Entity: entity, Key: key, Message: message}
}

func Unavailable(entity, message string) *Error {
	return &Error{Kind: KindUnavailable, Entity: entity, Key: KeyBusy, Message: message}
}

var (
	ErrTimeOverlap = Conflict(EntityBookingRequest, KeyTimeOverlap,
		"выбранное время уже занято, выберите другой интервал")
	ErrInsufficientBalance = Conflict(EntityVacationRequest, KeyInsufficientBalance,
		"недостаточно дней отпуска")
	ErrRoomRequired = InvalidRequest(EntityBookingRequest, KeyRoomRequired,
		"не указана переговорная")
	ErrStatusTransition = InvalidRequest("", KeyStatusTransition,
		"изменение статуса согласованной или отклоненной заявки недопустимо")
	ErrInvalidInterval = InvalidRequest(EntityBookingRequest, KeyInvalidInterval,
		"время начала должно быть раньше времени окончания")
	ErrPeriodLocked = InvalidRequest(EntityVacationRequest, KeyPeriodLocked,
		"период согласованной или отклоненной заявки изменить нельзя")
)

// образцы для errors.Is без привязки к ключу
var (
	ErrNotFound       = &Error{Kind: KindNotFound}
	ErrInvalidRequest = &Error{Kind: KindInvalidRequest}
	ErrConflict       = &Error{Kind: KindConflict}
)

func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func HttpStatus(err error) int {
	appErr, ok := As(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch appErr.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidRequest:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindUnavailable:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
