package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("services: not found")
	ErrInvalidInput = errors.New("services: invalid input")
)

// Repository is the persistence contract for catalog entries.
type Repository interface {
	Insert(ctx context.Context, s Service) (Service, error)
	Update(ctx context.Context, s Service) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Service, error)
	List(ctx context.Context) ([]Service, error)
}

// Catalog owns service catalog CRUD and cost estimation.
type Catalog struct {
	repo     Repository
	validate *validator.Validate
	clock    func() time.Time
}

func NewCatalog(repo Repository) *Catalog {
	return &Catalog{
		repo:     repo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		clock:    time.Now,
	}
}

type Input struct {
	Name           string  `validate:"required,min=1,max=200"`
	Description    string  `validate:"max=2000"`
	PricePerMinute float64 `validate:"gte=0"`
	PricePerCall   float64 `validate:"gte=0"`
	Active         bool
}

func (c *Catalog) Create(ctx context.Context, in Input) (Service, error) {
	if err := c.validate.Struct(in); err != nil {
		return Service{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	now := c.clock().UTC()
	s := Service{
		ID:             uuid.NewString(),
		Name:           in.Name,
		Description:    in.Description,
		PricePerMinute: in.PricePerMinute,
		PricePerCall:   in.PricePerCall,
		Active:         in.Active,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	return c.repo.Insert(ctx, s)
}

func (c *Catalog) Update(ctx context.Context, id string, in Input) (Service, error) {
	if id == "" {
		return Service{}, ErrInvalidInput
	}
	if err := c.validate.Struct(in); err != nil {
		return Service{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	existing, err := c.repo.GetByID(ctx, id)
	if err != nil {
		return Service{}, err
	}
	existing.Name = in.Name
	existing.Description = in.Description
	existing.PricePerMinute = in.PricePerMinute
	existing.PricePerCall = in.PricePerCall
	existing.Active = in.Active
	existing.UpdatedAt = c.clock().UTC()

	if err := c.repo.Update(ctx, existing); err != nil {
		return Service{}, err
	}
	return existing, nil
}

func (c *Catalog) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidInput
	}
	return c.repo.Delete(ctx, id)
}

func (c *Catalog) Get(ctx context.Context, id string) (Service, error) {
	if id == "" {
		return Service{}, ErrInvalidInput
	}
	return c.repo.GetByID(ctx, id)
}

func (c *Catalog) List(ctx context.Context) ([]Service, error) {
	return c.repo.List(ctx)
}

// EstimateCallCost previews the charge for a call of the given duration.
// Minutes are billed per started minute.
func (c *Catalog) EstimateCallCost(ctx context.Context, id string, durationSeconds int) (CostEstimate, error) {
	if id == "" || durationSeconds < 0 {
		return CostEstimate{}, ErrInvalidInput
	}
	s, err := c.repo.GetByID(ctx, id)
	if err != nil {
		return CostEstimate{}, err
	}

	minutes := billableMinutes(durationSeconds)
	return CostEstimate{
		ServiceID:       s.ID,
		DurationSeconds: durationSeconds,
		BillableMinutes: minutes,
		PricePerMinute:  s.PricePerMinute,
		PricePerCall:    s.PricePerCall,
		Total:           s.PricePerCall + s.PricePerMinute*float64(minutes),
	}, nil
}

func billableMinutes(sec int) int {
	if sec <= 0 {
		return 0
	}
	m := sec / 60
	if sec%60 != 0 {
		m++
	}
	return m
}
