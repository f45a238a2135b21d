package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")

	// ErrStoreRead el almacenamiento no se pudo leer o está corrupto.
	// Lo devuelven los Load; la colección queda vacía y sigue siendo usable.
	ErrStoreRead = errors.New("lectura del almacenamiento fallida")
	// ErrStoreWrite el almacenamiento no aceptó la escritura. El estado en memoria
	// ya calculado NO se revierte.
	ErrStoreWrite = errors.New("escritura del almacenamiento fallida")
)
