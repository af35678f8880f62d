package errors

import (
	"errors"
	"fmt"
)

const (
	InternalServerError = "internal server error"
	BadRequest          = "bad request"
	NotFound            = "not_found"
	ServiceUnavailable  = "service unavailable"
	Conflict            = "conflict"

	InvalidDataCode         = 400
	NotFoundErrorCode       = 404
	ConflictErrorCode       = 409
	InternalServerErrorCode = 500
	ServiceUnavailableCode  = 503
)

// AppError представляет собой стандартизированную структуру ошибки для API.
type AppError struct {
	Code         int    `json:"code"`    // HTTP статус код
	Message      string `json:"message"` // Сообщение для клиента
	Err          error  `json:"-"`       // Внутренняя ошибка, не для клиента
	IsUserFacing bool   `json:"-"`       // Флаг, указывающий, можно ли показывать `Err`
}

func (a *AppError) Error() string {
	if a == nil {
		return ""
	}
	if a.Err != nil {
		return fmt.Sprintf("%s (code: %d): %v", a.Message, a.Code, a.Err)
	}
	return fmt.Sprintf("%s (code: %d)", a.Message, a.Code)
}

func (a *AppError) Unwrap() error {
	if a == nil {
		return nil
	}
	return a.Err
}

// NewAppError создает новый экземпляр AppError.
func NewAppError(httpCode int, message string, err error, isUserFacing bool) *AppError {
	return &AppError{
		Code:         httpCode,
		Message:      message,
		Err:          err,
		IsUserFacing: isUserFacing,
	}
}

// Ошибки обмена со станком. Оборачиваются через fmt.Errorf("...: %w", ...)
// и проверяются через errors.Is.
var (
	// ErrConnection - устройство не удалось открыть.
	ErrConnection = errors.New("serial connection error")
	// ErrTransport - сбой ввода-вывода, не являющийся таймаутом.
	ErrTransport = errors.New("serial transport error")
	// ErrTimeout - станок не ответил вовремя. Это штатный исход "нет ответа".
	ErrTimeout = errors.New("serial timeout")
	// ErrAssembly - сбор снимка состояния был прерван.
	ErrAssembly = errors.New("snapshot assembly failed")

	ErrInvalidVariable = errors.New("invalid macro variable")
)

// Ошибки фонового сбора данных.
var (
	ErrCollectorRunning    = errors.New("collector is already running")
	ErrCollectorNotRunning = errors.New("collector is not running")
	ErrInvalidInterval     = errors.New("collection interval must be positive")
)
