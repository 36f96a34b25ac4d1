// Package service implements the use cases behind the HTTP handlers. Every
// returned error is either nil or an *errors.Error.
package service

import (
	"errors"

	"gorm.io/gorm"

	apperrors "jobfair/internal/errors"
)

// Not-found messages.
const (
	MsgUserNotFound    = "Usuario no encontrado"
	MsgCompanyNotFound = "Empresa no encontrada"
	MsgOfferNotFound   = "Oferta no encontrada"
	MsgStandNotFound   = "Stand no encontrado"
	MsgFilesNotFound   = "No se encontraron archivos para esta empresa"
)

// storeError classifies a repository error: a missing row becomes a 404 with
// notFound as message, anything else an opaque dependency failure.
func storeError(op string, err error, notFound string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound(notFound)
	}
	return apperrors.Dependency(op, err)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
