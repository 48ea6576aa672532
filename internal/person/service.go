package person

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Service manages person records.
type Service struct {
	repo Repository
}

// NewService creates a new person service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput captures data required to register a person.
type CreateInput struct {
	Title     string
	FirstName string
	LastName  string
	DOB       string
}

// Create registers a new person record.
func (s *Service) Create(ctx context.Context, input CreateInput) (Person, error) {
	if input.FirstName == "" || input.LastName == "" {
		return Person{}, errors.New("first and last name are required")
	}

	p := Person{
		ID:        uuid.New().String(),
		Title:     input.Title,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		DOB:       input.DOB,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Person{}, err
	}

	return p, nil
}

// Get retrieves a person by identifier.
func (s *Service) Get(ctx context.Context, id string) (Person, error) {
	return s.repo.Get(ctx, id)
}

// List returns all registered persons.
func (s *Service) List(ctx context.Context) ([]Person, error) {
	return s.repo.List(ctx)
}

// Update replaces the details of an existing person, keeping its identifier
// and creation time.
func (s *Service) Update(ctx context.Context, id string, input CreateInput) (Person, error) {
	if input.FirstName == "" || input.LastName == "" {
		return Person{}, errors.New("first and last name are required")
	}

	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return Person{}, err
	}

	p.Title = input.Title
	p.FirstName = input.FirstName
	p.LastName = input.LastName
	p.DOB = input.DOB

	if err := s.repo.Update(ctx, p); err != nil {
		return Person{}, err
	}

	return p, nil
}

// Delete removes a person record.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
