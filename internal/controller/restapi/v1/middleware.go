package v1

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"vcardqr/internal/entity"
)

const claimsKey = "claims"

func (r *V1) authRequired(ctx *fiber.Ctx) error {
	header := ctx.Get(fiber.HeaderAuthorization)

	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return errorResponse(ctx, http.StatusUnauthorized, "missing bearer token")
	}

	claims, err := r.user.ParseToken(token)
	if err != nil {
		return errorResponse(ctx, http.StatusUnauthorized, "invalid or expired token")
	}

	ctx.Locals(claimsKey, claims)

	return ctx.Next()
}

func (r *V1) adminRequired(ctx *fiber.Ctx) error {
	if !tokenClaims(ctx).IsAdmin {
		return errorResponse(ctx, http.StatusForbidden, "admin access required")
	}

	return ctx.Next()
}

func tokenClaims(ctx *fiber.Ctx) *entity.TokenClaims {
	return ctx.Locals(claimsKey).(*entity.TokenClaims)
}
