package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"vcardqr/internal/controller/restapi/v1/response"
	"vcardqr/internal/entity"
	"vcardqr/pkg/types/errs"
)

type createUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"is_admin"`
}

type updateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"is_admin"`
}

// @Summary 	List users
// @Tags 		users
// @Produce 	json
// @Success 	200 {array} response.User
// @Failure 	401 {object} response.Error "Unauthorized"
// @Failure 	403 {object} response.Error "Admin only"
// @Failure 	500 {object} response.Error "Internal"
// @Security 	BearerAuth
// @Router 		/v1/users [get]
func (r *V1) listUsers(ctx *fiber.Ctx) error {
	users, err := r.user.ListUsers(ctx.UserContext())
	if err != nil {
		r.logger.Error(err, "restapi - v1 - listUsers")

		return errorResponse(ctx, http.StatusInternalServerError, "storage problems")
	}

	resp := make([]response.User, 0, len(users))
	for _, u := range users {
		resp = append(resp, userResponse(u))
	}

	return ctx.Status(http.StatusOK).JSON(resp)
}

// @Summary 	Create user
// @Tags 		users
// @Accept 		json
// @Produce 	json
// @Param 		user body createUserRequest true "New user"
// @Success 	201 {object} response.User
// @Failure 	400 {object} response.Error "Missing fields"
// @Failure 	401 {object} response.Error "Unauthorized"
// @Failure 	403 {object} response.Error "Admin only"
// @Failure 	409 {object} response.Error "Username taken"
// @Failure 	500 {object} response.Error "Internal"
// @Security 	BearerAuth
// @Router 		/v1/users [post]
func (r *V1) createUser(ctx *fiber.Ctx) error {
	var req createUserRequest

	if err := ctx.BodyParser(&req); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid request body")
	}

	if req.Username == "" || req.Password == "" {
		return errorResponse(ctx, http.StatusBadRequest, "username and password are required")
	}

	user, err := r.user.CreateUser(ctx.UserContext(), req.Username, req.Password, req.IsAdmin)
	if err != nil {
		if errors.Is(err, errs.ErrUsernameTaken) {
			return errorResponse(ctx, http.StatusConflict, "username is taken")
		}
		r.logger.Error(err, "restapi - v1 - createUser")

		return errorResponse(ctx, http.StatusInternalServerError, "storage problems")
	}

	return ctx.Status(http.StatusCreated).JSON(userResponse(user))
}

// @Summary 	Update user
// @Tags 		users
// @Accept 		json
// @Param 		id path string true "User ID(uuid)"
// @Param 		user body updateUserRequest true "Updated fields, password optional"
// @Success 	204 "Updated"
// @Failure 	400 {object} response.Error "Invalid ID or fields"
// @Failure 	401 {object} response.Error "Unauthorized"
// @Failure 	403 {object} response.Error "Admin only"
// @Failure 	404 {object} response.Error "User not found"
// @Failure 	409 {object} response.Error "Username taken"
// @Failure 	500 {object} response.Error "Internal"
// @Security 	BearerAuth
// @Router 		/v1/users/{id} [put]
func (r *V1) updateUser(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid id")
	}

	var req updateUserRequest

	if err := ctx.BodyParser(&req); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid request body")
	}

	if req.Username == "" {
		return errorResponse(ctx, http.StatusBadRequest, "username is required")
	}

	err = r.user.UpdateUser(ctx.UserContext(), id, req.Username, req.Password, req.IsAdmin)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrRecordNotFound):
			return errorResponse(ctx, http.StatusNotFound, "user not found")
		case errors.Is(err, errs.ErrUsernameTaken):
			return errorResponse(ctx, http.StatusConflict, "username is taken")
		}
		r.logger.Error(err, "restapi - v1 - updateUser")

		return errorResponse(ctx, http.StatusInternalServerError, "storage problems")
	}

	return ctx.SendStatus(http.StatusNoContent)
}

// @Summary 	Delete user
// @Tags 		users
// @Param 		id path string true "User ID(uuid)"
// @Success 	204 "Deleted"
// @Failure 	400 {object} response.Error "Invalid ID"
// @Failure 	401 {object} response.Error "Unauthorized"
// @Failure 	403 {object} response.Error "Admin only"
// @Failure 	404 {object} response.Error "User not found"
// @Failure 	409 {object} response.Error "Self delete"
// @Failure 	500 {object} response.Error "Internal"
// @Security 	BearerAuth
// @Router 		/v1/users/{id} [delete]
func (r *V1) deleteUser(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid id")
	}

	err = r.user.DeleteUser(ctx.UserContext(), tokenClaims(ctx).UserID, id)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrSelfDelete):
			return errorResponse(ctx, http.StatusConflict, "cant delete your own account")
		case errors.Is(err, errs.ErrRecordNotFound):
			return errorResponse(ctx, http.StatusNotFound, "user not found")
		}
		r.logger.Error(err, "restapi - v1 - deleteUser")

		return errorResponse(ctx, http.StatusInternalServerError, "storage problems")
	}

	return ctx.SendStatus(http.StatusNoContent)
}

func userResponse(u *entity.User) response.User {
	return response.User{
		ID:        u.ID.String(),
		Username:  u.Username,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
		UpdatedAt: u.UpdatedAt.Format(time.RFC3339),
	}
}
