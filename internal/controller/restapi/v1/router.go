package v1

import (
	"github.com/gofiber/fiber/v2"

	"github.com/orsoie/gallery-service/internal/usecase"
	"github.com/orsoie/gallery-service/pkg/logger"
)

func NewGalleryRoutes(apiGroup fiber.Router, gallery usecase.GalleryUseCase, l logger.Interface) {
	r := &V1{gallery: gallery, logger: l}

	{
		apiGroup.Get("/gallery", r.getGallery)
		apiGroup.Get("/gallery/file", r.getGalleryFile)
		apiGroup.Get("/download-zip", r.downloadArchive)
		apiGroup.Post("/download-zip", r.downloadArchive)
	}
}

func NewGuestRoutes(apiGroup fiber.Router, guests usecase.GuestUseCase, l logger.Interface) {
	r := &V1{guests: guests, logger: l}

	{
		apiGroup.Get("/mesas", r.getTables)
		apiGroup.Get("/rsvp", r.getRSVPs)
		apiGroup.Post("/rsvp", r.submitRSVP)
	}
}
