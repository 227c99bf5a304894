package domain

import (
	"errors"
	"fmt"
)

// Tipos de error de dominio (sin dependencias externas).
// Los casos de uso devuelven *Error con uno de estos Kind; la capa HTTP traduce el Kind a status + code.
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrValidation           = errors.New("entrada inválida")
	ErrCapacityExceeded     = errors.New("capacidad insuficiente")
	ErrCapacityInconsistent = errors.New("capacidad inconsistente")
	ErrInsufficientStock    = errors.New("stock insuficiente")
	ErrInvalidTransition    = errors.New("transición de estado inválida")
	ErrAllocationImpossible = errors.New("no es posible asignar la orden a los racks")
	ErrConflict             = errors.New("conflicto con el estado actual")
	ErrBusy                 = errors.New("recurso ocupado, reintente")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrForbidden            = errors.New("acceso denegado")
)

// Error es un error de dominio tipado: Kind es uno de los Err* y Message el texto para el cliente.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return e.Message
}

// Unwrap permite errors.Is(err, domain.ErrX).
func (e *Error) Unwrap() error { return e.Kind }

// NewError construye un error de dominio con mensaje.
func NewError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Errorf construye un error de dominio con mensaje formateado.
func Errorf(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

var codes = []struct {
	kind error
	code string
}{
	{ErrNotFound, "NOT_FOUND"},
	{ErrValidation, "VALIDATION"},
	{ErrCapacityExceeded, "CAPACITY_EXCEEDED"},
	{ErrCapacityInconsistent, "CAPACITY_INCONSISTENT"},
	{ErrInsufficientStock, "INSUFFICIENT_STOCK"},
	{ErrInvalidTransition, "INVALID_TRANSITION"},
	{ErrAllocationImpossible, "ALLOCATION_IMPOSSIBLE"},
	{ErrConflict, "CONFLICT"},
	{ErrBusy, "BUSY"},
	{ErrUnauthorized, "UNAUTHORIZED"},
	{ErrForbidden, "FORBIDDEN"},
}

// Code devuelve el código estable del error ("NOT_FOUND", "CAPACITY_EXCEEDED", ...) o "INTERNAL".
func Code(err error) string {
	for _, c := range codes {
		if errors.Is(err, c.kind) {
			return c.code
		}
	}
	return "INTERNAL"
}

// IsRetryable indica si el error corresponde a bloqueo o modificación concurrente.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConflict) || errors.Is(err, ErrBusy)
}
