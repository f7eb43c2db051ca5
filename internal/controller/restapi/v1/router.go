package v1

import (
	"github.com/gofiber/fiber/v2"

	"vcardqr/internal/usecase"
	"vcardqr/pkg/logger"
)

func NewRoutes(apiV1Group fiber.Router, card usecase.CardUseCase, user usecase.UserUseCase, l logger.Interface) {
	r := &V1{card: card, user: user, logger: l}

	{
		// API
		apiV1Group.Post("/auth/login", r.login)
		apiV1Group.Post("/auth/logout", r.logout)
		apiV1Group.Get("/auth/me", r.authRequired, r.me)
		apiV1Group.Post("/auth/password", r.authRequired, r.changePassword)

		apiV1Group.Post("/cards", r.authRequired, r.generateCard)
		apiV1Group.Get("/cards/:id", r.authRequired, r.getCard)

		apiV1Group.Get("/users", r.authRequired, r.adminRequired, r.listUsers)
		apiV1Group.Post("/users", r.authRequired, r.adminRequired, r.createUser)
		apiV1Group.Put("/users/:id", r.authRequired, r.adminRequired, r.updateUser)
		apiV1Group.Delete("/users/:id", r.authRequired, r.adminRequired, r.deleteUser)

		// UI
		apiV1Group.Get("/", r.showUI)
		apiV1Group.Get("/login", r.showLogin)
	}
}
