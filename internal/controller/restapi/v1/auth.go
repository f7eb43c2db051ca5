package v1

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"vcardqr/internal/controller/restapi/v1/response"
	"vcardqr/pkg/types/errs"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// @Summary 	Log in
// @Description Exchanges username and password for a bearer token
// @Tags 		auth
// @Accept 		json
// @Produce 	json
// @Param 		credentials body loginRequest true "Credentials"
// @Success 	200 {object} response.Login
// @Failure 	400 {object} response.Error "Missing credentials"
// @Failure 	401 {object} response.Error "Invalid credentials"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/auth/login [post]
func (r *V1) login(ctx *fiber.Ctx) error {
	var req loginRequest

	if err := ctx.BodyParser(&req); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid request body")
	}

	if req.Username == "" || req.Password == "" {
		return errorResponse(ctx, http.StatusBadRequest, "username and password are required")
	}

	token, err := r.user.Authenticate(ctx.UserContext(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, errs.ErrInvalidCredentials) {
			return errorResponse(ctx, http.StatusUnauthorized, "invalid username or password")
		}
		r.logger.Error(err, "restapi - v1 - login")

		return errorResponse(ctx, http.StatusInternalServerError, "authentication problems")
	}

	return ctx.Status(http.StatusOK).JSON(response.Login{Token: token})
}

// @Summary 	Log out
// @Description Tokens are stateless, the client just drops its copy
// @Tags 		auth
// @Success 	204 "Logged out"
// @Router 		/v1/auth/logout [post]
func (r *V1) logout(ctx *fiber.Ctx) error {
	return ctx.SendStatus(http.StatusNoContent)
}

// @Summary 	Current user
// @Tags 		auth
// @Produce 	json
// @Success 	200 {object} response.User
// @Failure 	401 {object} response.Error "Unauthorized"
// @Failure 	500 {object} response.Error "Internal"
// @Security 	BearerAuth
// @Router 		/v1/auth/me [get]
func (r *V1) me(ctx *fiber.Ctx) error {
	claims := tokenClaims(ctx)

	user, err := r.user.GetByID(ctx.UserContext(), claims.UserID)
	if err != nil {
		if errors.Is(err, errs.ErrRecordNotFound) {
			return errorResponse(ctx, http.StatusUnauthorized, "user no longer exists")
		}
		r.logger.Error(err, "restapi - v1 - me")

		return errorResponse(ctx, http.StatusInternalServerError, "storage problems")
	}

	return ctx.Status(http.StatusOK).JSON(userResponse(user))
}

// @Summary 	Change own password
// @Tags 		auth
// @Accept 		json
// @Param 		passwords body changePasswordRequest true "Current and new password"
// @Success 	204 "Changed"
// @Failure 	400 {object} response.Error "Missing fields"
// @Failure 	401 {object} response.Error "Wrong current password"
// @Failure 	500 {object} response.Error "Internal"
// @Security 	BearerAuth
// @Router 		/v1/auth/password [post]
func (r *V1) changePassword(ctx *fiber.Ctx) error {
	var req changePasswordRequest

	if err := ctx.BodyParser(&req); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid request body")
	}

	if req.CurrentPassword == "" || req.NewPassword == "" {
		return errorResponse(ctx, http.StatusBadRequest, "current_password and new_password are required")
	}

	err := r.user.ChangePassword(ctx.UserContext(), tokenClaims(ctx).UserID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, errs.ErrInvalidCredentials) {
			return errorResponse(ctx, http.StatusUnauthorized, "wrong current password")
		}
		r.logger.Error(err, "restapi - v1 - changePassword")

		return errorResponse(ctx, http.StatusInternalServerError, "storage problems")
	}

	return ctx.SendStatus(http.StatusNoContent)
}
