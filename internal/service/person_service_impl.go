package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/pricebook/internal/domain"
	"github.com/alexanderramin/pricebook/internal/repository"
	"github.com/google/uuid"
)

type personService struct {
	people repository.PersonRepo
}

func NewPersonService(people repository.PersonRepo) PersonService {
	return &personService{people: people}
}

func (s *personService) Create(ctx context.Context, name, title string) (*domain.Person, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("person name is required")
	}
	p := &domain.Person{
		ID:        uuid.New().String(),
		Name:      name,
		Title:     strings.TrimSpace(title),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.people.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *personService) GetByID(ctx context.Context, id string) (*domain.Person, error) {
	return s.people.GetByID(ctx, id)
}

func (s *personService) List(ctx context.Context) ([]*domain.Person, error) {
	return s.people.List(ctx)
}

func (s *personService) Delete(ctx context.Context, id string) error {
	return s.people.Delete(ctx, id)
}
