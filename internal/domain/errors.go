package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound       = errors.New("recurso no encontrado")
	ErrRecordNotFound = errors.New("no existe un ítem con ese item_id")
	ErrInvalidInput   = errors.New("entrada inválida")
	ErrDuplicate      = errors.New("recurso duplicado")
	ErrUnauthorized   = errors.New("no autorizado")
	ErrMalformedRow   = errors.New("fila mal formada en la hoja")
	ErrHeaderMismatch = errors.New("la cabecera de la hoja no coincide con el formato esperado")
	ErrLoadFailed     = errors.New("no se pudo leer la hoja externa")
	ErrSyncFailed     = errors.New("no se pudo sobrescribir la hoja externa")
)
