package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tigz/wallet-api/internal/person"
)

// RegisterPersonRoutes wires person-related endpoints.
func RegisterPersonRoutes(r fiber.Router, h *person.Handler) {
	r.Post("/persons", h.Create)
	r.Get("/persons", h.List)
	r.Get("/persons/:personId", h.Get)
	r.Put("/persons/:personId", h.Update)
	r.Delete("/persons/:personId", h.Delete)
}
