package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrAccountNotFound    = errors.New("cuenta no encontrada")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrPendingApproval    = errors.New("la cuenta está pendiente de aprobación")
	ErrAlreadyApproved    = errors.New("la cuenta ya está aprobada")
	ErrNotAVendor         = errors.New("la cuenta no es un vendor")
	ErrNotAnAdmin         = errors.New("los feature flags solo aplican a administradores")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrSelfAction         = errors.New("una cuenta no puede eliminarse a sí misma")
)
