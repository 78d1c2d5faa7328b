package domain

import "errors"

// Errores de dominio (sin dependencias externas). Se envuelven con %w para
// añadir contexto (línea, estados, cantidades) sin perder la identidad del error.
var (
	ErrNotFound               = errors.New("recurso no encontrado")
	ErrUnauthorized           = errors.New("no autorizado")
	ErrForbidden              = errors.New("acceso denegado")
	ErrInvalidInput           = errors.New("entrada inválida")
	ErrDuplicate              = errors.New("recurso duplicado")
	ErrInvalidState           = errors.New("el estado actual no permite la operación")
	ErrInvalidTransition      = errors.New("transición de estado inválida")
	ErrQuantityExceedsOrdered = errors.New("la cantidad recibida excede la ordenada")
	ErrEmailAlreadyExists     = errors.New("el email ya está registrado")
	ErrUserNotFound           = errors.New("usuario no encontrado")
)
