package httperr

import "errors"

// Códigos de rechazo de reglas de negocio. Siempre legibles por máquina;
// el mensaje acompaña con el dato que explica la regla (horas restantes,
// reprogramaciones restantes).
const (
	CodeInvalidState           = "INVALID_STATE"
	CodeTimeWindowExceeded     = "TIME_WINDOW_EXCEEDED"
	CodeReprogramLimitExceeded = "REPROGRAM_LIMIT_EXCEEDED"
	CodeSlotUnavailable        = "SLOT_UNAVAILABLE"
	CodeSlotNoLongerAvailable  = "SLOT_NO_LONGER_AVAILABLE"
	CodeStaffRequired          = "STAFF_REQUIRED"
	CodeDuplicateSlot          = "DUPLICATE_SLOT"
	CodeServiceNotFound        = "SERVICE_NOT_FOUND"
)

type BusinessError struct {
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return e.Code + ": " + e.Message
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func ErrBusinessMsg(code, message string) error {
	return BusinessError{Code: code, Message: message}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// AsBusiness extrae el BusinessError si lo hay.
func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	ok := errors.As(err, &be)
	return be, ok
}
