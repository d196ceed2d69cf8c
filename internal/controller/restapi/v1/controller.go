package v1

import (
	"github.com/orsoie/gallery-service/internal/usecase"
	"github.com/orsoie/gallery-service/pkg/logger"
)

type V1 struct {
	gallery usecase.GalleryUseCase
	guests  usecase.GuestUseCase
	logger  logger.Interface
}
