package person

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes person HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a person HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createRequest struct {
	Title     string `json:"title"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	DOB       string `json:"dob"`
}

type personResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	DOB       string    `json:"dob"`
	CreatedAt time.Time `json:"created_at"`
}

func toResponse(p Person) personResponse {
	return personResponse{
		ID:        p.ID,
		Title:     p.Title,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		DOB:       p.DOB,
		CreatedAt: p.CreatedAt,
	}
}

// Create registers a person.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	p, err := h.service.Create(c.UserContext(), CreateInput{
		Title:     req.Title,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		DOB:       req.DOB,
	})
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(toResponse(p))
}

// Get fetches a person by identifier.
func (h *Handler) Get(c *fiber.Ctx) error {
	p, err := h.service.Get(c.UserContext(), c.Params("personId"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, err.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(toResponse(p))
}

// List returns all persons.
func (h *Handler) List(c *fiber.Ctx) error {
	persons, err := h.service.List(c.UserContext())
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	out := make([]personResponse, 0, len(persons))
	for _, p := range persons {
		out = append(out, toResponse(p))
	}
	return c.Status(http.StatusOK).JSON(out)
}

// Update replaces a person's details.
func (h *Handler) Update(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	p, err := h.service.Update(c.UserContext(), c.Params("personId"), CreateInput{
		Title:     req.Title,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		DOB:       req.DOB,
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, err.Error())
		}
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusOK).JSON(toResponse(p))
}

// Delete removes a person record.
func (h *Handler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("personId")); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, err.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.SendStatus(http.StatusNoContent)
}
