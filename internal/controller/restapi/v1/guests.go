package v1

import (
	"encoding/json"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/orsoie/gallery-service/internal/controller/restapi/v1/response"
)

// @Summary  	List seating tables
// @Description Returns the seating plan of one event
// @Tags 		guests
// @Produce 	json
// @Param 		event_code query string true "Event code"
// @Success 	200 {array}  entity.SeatingTable
// @Failure 	400 {object} response.Error "Missing event_code"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/mesas [get]
func (r *V1) getTables(ctx *fiber.Ctx) error {
	eventCode := ctx.Query("event_code")
	if eventCode == "" {
		return errorResponse(ctx, http.StatusBadRequest, "event_code is required")
	}

	tables, err := r.guests.Tables(ctx.UserContext(), eventCode)
	if err != nil {
		r.logger.Error(err, "restapi - v1 - getTables")

		return errorResponse(ctx, http.StatusInternalServerError, "database problems")
	}

	return ctx.JSON(tables)
}

// @Summary  	Submit an RSVP
// @Description Stores the confirmation form of one guest; every field except event_code is kept verbatim
// @Tags 		guests
// @Accept 		json
// @Produce 	json
// @Success 	200 {object} response.RSVPSubmitted
// @Failure 	400 {object} response.Error "Invalid body or missing event_code"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/rsvp [post]
func (r *V1) submitRSVP(ctx *fiber.Ctx) error {
	var body map[string]any
	if err := json.Unmarshal(ctx.Body(), &body); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid json")
	}

	eventCode, _ := body["event_code"].(string)
	if eventCode == "" {
		return errorResponse(ctx, http.StatusBadRequest, "event_code is required")
	}
	delete(body, "event_code")

	rsvp, err := r.guests.SubmitRSVP(ctx.UserContext(), eventCode, body)
	if err != nil {
		r.logger.Error(err, "restapi - v1 - submitRSVP")

		return errorResponse(ctx, http.StatusInternalServerError, "database problems")
	}

	return ctx.JSON(response.RSVPSubmitted{OK: true, ID: rsvp.ID.String()})
}

// @Summary  	List RSVPs
// @Description Returns the stored confirmations of one event, newest first
// @Tags 		guests
// @Produce 	json
// @Param 		event_code query string true "Event code"
// @Success 	200 {array}  entity.RSVP
// @Failure 	400 {object} response.Error "Missing event_code"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/rsvp [get]
func (r *V1) getRSVPs(ctx *fiber.Ctx) error {
	eventCode := ctx.Query("event_code")
	if eventCode == "" {
		return errorResponse(ctx, http.StatusBadRequest, "event_code is required")
	}

	rsvps, err := r.guests.ListRSVP(ctx.UserContext(), eventCode)
	if err != nil {
		r.logger.Error(err, "restapi - v1 - getRSVPs")

		return errorResponse(ctx, http.StatusInternalServerError, "database problems")
	}

	return ctx.JSON(rsvps)
}
