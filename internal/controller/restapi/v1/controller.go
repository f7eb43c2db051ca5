package v1

import (
	"vcardqr/internal/usecase"
	"vcardqr/pkg/logger"
)

type V1 struct {
	card   usecase.CardUseCase
	user   usecase.UserUseCase
	logger logger.Interface
}
