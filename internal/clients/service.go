package clients

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("clients: not found")
	ErrInvalidInput = errors.New("clients: invalid input")
)

// Repository is the persistence contract for clients.
type Repository interface {
	Insert(ctx context.Context, c Client) (Client, error)
	Update(ctx context.Context, c Client) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Client, error)
	List(ctx context.Context) ([]Client, error)
}

// Service owns client CRUD. Field validation happens here, not in handlers,
// so the webhook pipeline's client path goes through the same rules.
type Service struct {
	repo     Repository
	validate *validator.Validate
	clock    func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:     repo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		clock:    time.Now,
	}
}

// CreateInput is the write payload for new clients.
// Status defaults to pending; RegistrationDate defaults to now.
type CreateInput struct {
	Name       string   `validate:"required,min=1,max=200"`
	Phone      string   `validate:"required,min=3,max=40"`
	Email      string   `validate:"required,email"`
	Company    string   `validate:"max=200"`
	Status     string   `validate:"omitempty,oneof=active inactive pending"`
	ServiceIDs []string `validate:"omitempty,dive,required"`
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Client, error) {
	if err := s.validate.Struct(in); err != nil {
		return Client{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	status := Status(in.Status)
	if status == "" {
		status = StatusPending
	}

	now := s.clock().UTC()
	c := Client{
		ID:               uuid.NewString(),
		Name:             in.Name,
		Phone:            in.Phone,
		Email:            in.Email,
		Company:          in.Company,
		Status:           status,
		RegistrationDate: now,
		ServiceIDs:       in.ServiceIDs,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	return s.repo.Insert(ctx, c)
}

// UpdateInput patches an existing client. All fields are required; the
// dashboard form always submits the full record.
type UpdateInput struct {
	Name       string   `validate:"required,min=1,max=200"`
	Phone      string   `validate:"required,min=3,max=40"`
	Email      string   `validate:"required,email"`
	Company    string   `validate:"max=200"`
	Status     string   `validate:"required,oneof=active inactive pending"`
	ServiceIDs []string `validate:"omitempty,dive,required"`
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Client, error) {
	if id == "" {
		return Client{}, ErrInvalidInput
	}
	if err := s.validate.Struct(in); err != nil {
		return Client{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Client{}, err
	}

	existing.Name = in.Name
	existing.Phone = in.Phone
	existing.Email = in.Email
	existing.Company = in.Company
	existing.Status = Status(in.Status)
	existing.ServiceIDs = in.ServiceIDs
	existing.UpdatedAt = s.clock().UTC()

	if err := s.repo.Update(ctx, existing); err != nil {
		return Client{}, err
	}
	return existing, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) Get(ctx context.Context, id string) (Client, error) {
	if id == "" {
		return Client{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Client, error) {
	return s.repo.List(ctx)
}
