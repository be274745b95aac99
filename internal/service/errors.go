package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	InternalServerError = 500
	ServiceUnavailable  = 503
)

var (
	ErrParamInvalid       = errors.New("parámetros no válidos")
	ErrSessionHalted      = errors.New("la conversación se ha detenido por un error de autenticación")
	ErrSessionUnavailable = errors.New("no se ha podido recuperar la sesión")
	ErrFileNotExist       = errors.New("el CV no está disponible")
	UnExpectedError       = errors.New("error inesperado, inténtalo de nuevo más tarde")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:       BadRequest,
	ErrSessionHalted:      Forbidden,
	ErrSessionUnavailable: ServiceUnavailable,
	ErrFileNotExist:       NotFound,
	UnExpectedError:       InternalServerError,
}

// 固定回复文案
const (
	AnswerError         = "Lo siento pero parece que se ha producido un error y no puedo seguir respondiendo... 😌"
	LimitReachedMessage = "Has alcanzado el número máximo de preguntas de esta conversación. ¡Muchas gracias por tu interés! Recuerda que puedes descargar el CV desde la barra lateral izquierda."
	PostLimitMessage    = "La conversación ha finalizado. ¡Gracias por tu visita! 👋"
)
