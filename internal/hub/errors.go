package hub

type ErrorCode string

const (
	ErrorCodeNotAuthenticated ErrorCode = "not_authenticated"
	ErrorCodeRoomNotFound     ErrorCode = "room_not_found"
	ErrorCodeNotInRoom        ErrorCode = "not_in_room"
	ErrorCodeValidation       ErrorCode = "validation_error"
)

// Error is recoverable at connection scope: the transport turns it into a
// unicast error event and no shared state is touched by the failed
// operation.
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}
