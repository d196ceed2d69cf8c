package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/orsoie/gallery-service/internal/dto"
	"github.com/orsoie/gallery-service/internal/entity"
	"github.com/orsoie/gallery-service/pkg/types/errs"
)

// @Summary  	List gallery items
// @Description Lists the media objects of one event, sorted by capture time
// @Tags 		gallery
// @Produce 	json
// @Param 		event_code query string true "Event code"
// @Success 	200 {array}  entity.GalleryItem
// @Failure 	400 {object} response.Error "Missing event_code"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/gallery [get]
func (r *V1) getGallery(ctx *fiber.Ctx) error {
	eventCode := ctx.Query("event_code")
	if eventCode == "" {
		return errorResponse(ctx, http.StatusBadRequest, "event_code is required")
	}

	items, err := r.gallery.List(ctx.UserContext(), eventCode)
	if err != nil {
		r.logger.Error(err, "restapi - v1 - getGallery")

		return errorResponse(ctx, http.StatusInternalServerError, "storage problems")
	}

	return ctx.JSON(items)
}

// @Summary 	Fetch one media object
// @Description Proxies stored bytes; thumbnail=true serves the preview variant, original=true forces a download
// @Tags 		gallery
// @Produce 	octet-stream
// @Param 		event_code query string true  "Event code"
// @Param 		key 	   query string true  "Object key"
// @Param 		thumbnail  query bool 	false "Serve the thumbnail variant"
// @Param 		original   query bool 	false "Serve as attachment"
// @Success 	200 {file} 	 binary
// @Failure 	400 {object} response.Error "Missing parameters"
// @Failure 	403 {object} response.Error "Key outside the event folder"
// @Failure 	404 {object} response.Error "Object not found"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/gallery/file [get]
func (r *V1) getGalleryFile(ctx *fiber.Ctx) error {
	eventCode := ctx.Query("event_code")
	if eventCode == "" {
		return errorResponse(ctx, http.StatusBadRequest, "event_code is required")
	}

	key := ctx.Query("key")
	if key == "" {
		return errorResponse(ctx, http.StatusBadRequest, "key is required")
	}

	variant := entity.ParseVariant(ctx.QueryBool("thumbnail"), ctx.QueryBool("original"))

	delivery, err := r.gallery.Fetch(ctx.UserContext(), eventCode, key, variant)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrForbiddenKey):
			return errorResponse(ctx, http.StatusForbidden, "access denied")
		case errors.Is(err, errs.ErrObjectNotFound):
			return errorResponse(ctx, http.StatusNotFound, "file not found")
		default:
			r.logger.Error(err, "restapi - v1 - getGalleryFile")

			return errorResponse(ctx, http.StatusInternalServerError, "storage problems")
		}
	}

	ctx.Set(fiber.HeaderContentType, delivery.ContentType)
	ctx.Set(fiber.HeaderContentDisposition, delivery.Disposition)
	if delivery.CacheControl != "" {
		ctx.Set(fiber.HeaderCacheControl, delivery.CacheControl)
	}

	if delivery.Size > 0 {
		return ctx.SendStream(delivery.Body, int(delivery.Size))
	}

	return ctx.SendStream(delivery.Body)
}

// @Summary 	Download selected files as one archive
// @Description Bundles up to 20 objects of one event into a ZIP. GET passes repeated files= params, POST a JSON body
// @Tags 		gallery
// @Accept 		json
// @Produce 	application/zip
// @Param 		event_code query string   false "Event code (GET)"
// @Param 		files 	   query []string false "Object keys (GET)"
// @Param 		request    body  dto.ArchiveRequest false "Keys to bundle (POST)"
// @Success 	200 {file} 	 binary
// @Failure 	400 {object} response.Error "No files, none valid or too many"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/download-zip [get]
// @Router 		/download-zip [post]
func (r *V1) downloadArchive(ctx *fiber.Ctx) error {
	req, err := parseArchiveRequest(ctx)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid request body")
	}

	if req.EventCode == "" {
		return errorResponse(ctx, http.StatusBadRequest, "event_code is required")
	}

	archive, err := r.gallery.Archive(ctx.UserContext(), req)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrNoFiles):
			return errorResponse(ctx, http.StatusBadRequest, "no files specified")
		case errors.Is(err, errs.ErrNoValidFiles):
			return errorResponse(ctx, http.StatusBadRequest, "no valid files")
		case errors.Is(err, errs.ErrTooManyFiles):
			return errorResponse(ctx, http.StatusBadRequest, err.Error())
		default:
			r.logger.Error(err, "restapi - v1 - downloadArchive")

			return errorResponse(ctx, http.StatusInternalServerError, "archive problems")
		}
	}

	ctx.Set(fiber.HeaderContentType, "application/zip")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", "gallery.zip"))

	return ctx.Send(archive)
}

// parseArchiveRequest normalizes the two request shapes (POST JSON body,
// GET repeated files= params) into one dto. The query event_code backs up
// a body that omits it.
func parseArchiveRequest(ctx *fiber.Ctx) (dto.ArchiveRequest, error) {
	req := dto.ArchiveRequest{}

	if ctx.Method() == fiber.MethodPost {
		if err := ctx.BodyParser(&req); err != nil {
			return req, err
		}
	} else {
		for _, v := range ctx.Context().QueryArgs().PeekMulti("files") {
			req.Files = append(req.Files, string(v))
		}
	}

	if req.EventCode == "" {
		req.EventCode = ctx.Query("event_code")
	}

	return req, nil
}
