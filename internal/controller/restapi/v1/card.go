package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"vcardqr/internal/controller/restapi/v1/response"
	"vcardqr/internal/controller/restapi/v1/validate"
	"vcardqr/internal/dto"
	"vcardqr/pkg/types/errs"
)

// @Summary  	Generate contact card
// @Description Renders the contact as a vCard QR code, archives the PNG and returns it as a data URI
// @Tags 		cards
// @Accept 		json
// @Produce 	json
// @Param 		card body dto.Card true "Contact card fields"
// @Success 	201 {object} response.Card
// @Failure 	400 {object} response.Error "Missing or oversized fields"
// @Failure 	401 {object} response.Error "Unauthorized"
// @Failure 	413 {object} response.Error "Contact does not fit a QR code"
// @Failure 	500 {object} response.Error "Internal"
// @Security 	BearerAuth
// @Router 		/v1/cards [post]
func (r *V1) generateCard(ctx *fiber.Ctx) error {
	var card dto.Card

	if err := ctx.BodyParser(&card); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid request body")
	}

	// 1. required fields
	if card.FirstName == "" {
		return errorResponse(ctx, http.StatusBadRequest, "first_name is required")
	}
	if card.LastName == "" {
		return errorResponse(ctx, http.StatusBadRequest, "last_name is required")
	}

	// 2. field length caps
	for name, value := range map[string]string{
		"first_name": card.FirstName,
		"last_name":  card.LastName,
		"mobile":     card.Mobile,
		"work":       card.Work,
		"email":      card.Email,
		"company":    card.Company,
		"role":       card.Role,
		"street":     card.Street,
		"city":       card.City,
		"state":      card.State,
		"website":    card.Website,
	} {
		if len(value) > validate.MaxFieldLen {
			return errorResponse(ctx, http.StatusBadRequest,
				fmt.Sprintf("%s cant be longer than %d characters", name, validate.MaxFieldLen))
		}
	}

	// 3. generate
	encoded, err := r.card.GenerateCard(ctx.UserContext(), card)
	if err != nil {
		if errors.Is(err, errs.ErrPayloadTooLarge) {
			return errorResponse(ctx, http.StatusRequestEntityTooLarge, "contact does not fit a qr code")
		}
		r.logger.Error(err, "restapi - v1 - generateCard")

		return errorResponse(ctx, http.StatusInternalServerError, "card generation problems")
	}

	// 4. response
	resp := response.Card{
		Image: encoded.DataURI,
	}

	return ctx.Status(http.StatusCreated).JSON(resp)
}

// @Summary 	Get contact card
// @Description Re-encodes a stored contact and returns the QR image as a data URI
// @Tags 		cards
// @Produce 	json
// @Param 		id path string true "Contact ID(uuid)"
// @Success 	200 {object} response.Card
// @Failure 	400 {object} response.Error "Invalid ID"
// @Failure 	401 {object} response.Error "Unauthorized"
// @Failure 	404 {object} response.Error "Contact not found"
// @Failure 	500 {object} response.Error "Internal"
// @Security 	BearerAuth
// @Router 		/v1/cards/{id} [get]
func (r *V1) getCard(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid id")
	}

	encoded, err := r.card.GetCard(ctx.UserContext(), id)
	if err != nil {
		if errors.Is(err, errs.ErrRecordNotFound) {
			return errorResponse(ctx, http.StatusNotFound, "contact not found")
		}
		r.logger.Error(err, "restapi - v1 - getCard")

		return errorResponse(ctx, http.StatusInternalServerError, "card generation problems")
	}

	return ctx.Status(http.StatusOK).JSON(response.Card{Image: encoded.DataURI})
}
