package webhook

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"callboard/internal/calls"
	"callboard/internal/clients"
)

// Service is the ingestion and reconciliation pipeline:
// validate -> audit record -> normalize -> persist domain row -> flip
// processed.
//
// The domain insert and the processed flip are two writes and are not
// atomic. A crash between them leaves a domain row with an unflipped audit
// record; Process's already-processed guard covers re-runs, but callers
// must not invoke Process concurrently for the same record id.
type Service struct {
	repo      Repository
	callRepo  calls.Repository
	clientSvc *clients.Service
	lookup    ClientLookup
	clock     func() time.Time
}

func NewService(repo Repository, callRepo calls.Repository, clientSvc *clients.Service, lookup ClientLookup) *Service {
	return &Service{
		repo:      repo,
		callRepo:  callRepo,
		clientSvc: clientSvc,
		lookup:    lookup,
		clock:     time.Now,
	}
}

// Result reports what a successful ingest or reprocess produced.
type Result struct {
	WebhookID string `json:"webhook_id"`
	Kind      Kind   `json:"kind"`
	CallID    string `json:"call_id,omitempty"`
	ClientID  string `json:"client_id,omitempty"`
}

// Ingest runs the full pipeline for one inbound body.
//
// Ordering is contractual: validation happens entirely before the audit
// write (a rejected payload creates no record), and the audit write happens
// before any domain processing (an accepted-but-failing payload is still
// auditable and retryable).
func (s *Service) Ingest(ctx context.Context, body []byte) (Result, error) {
	kind, data, err := Validate(body)
	if err != nil {
		return Result{}, err
	}

	now := s.clock().UTC()
	rec := Record{
		ID:         uuid.NewString(),
		Kind:       kind,
		RawData:    data,
		Processed:  false,
		ReceivedAt: now,
		CreatedAt:  now,
	}
	rec, err = s.repo.Insert(ctx, rec)
	if err != nil {
		return Result{}, &PersistenceError{Op: "save webhook data", Err: err}
	}

	return s.processRecord(ctx, rec)
}

// Process re-runs normalization and persistence for a stored record.
// Failures leave the record pending; a processed record is never
// reprocessed.
func (s *Service) Process(ctx context.Context, recordID string) (Result, error) {
	rec, err := s.repo.GetByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Result{}, ErrNotFound
		}
		return Result{}, &PersistenceError{Op: "load webhook data", Err: err}
	}
	if rec.Processed {
		return Result{}, ErrAlreadyProcessed
	}
	return s.processRecord(ctx, rec)
}

// ListPending returns records awaiting (re)processing, for the dashboard's
// retry view.
func (s *Service) ListPending(ctx context.Context) ([]Record, error) {
	return s.repo.ListPending(ctx)
}

// History returns all audit records, newest semantics left to the store.
func (s *Service) History(ctx context.Context) ([]Record, error) {
	return s.repo.List(ctx)
}

func (s *Service) processRecord(ctx context.Context, rec Record) (Result, error) {
	res := Result{WebhookID: rec.ID, Kind: rec.Kind}

	switch rec.Kind {
	case KindCall:
		call, err := NormalizeCall(ctx, rec.RawData, s.lookup)
		if err != nil {
			return res, err
		}
		call.ID = uuid.NewString()
		call.CreatedAt = s.clock().UTC()

		inserted, err := s.callRepo.Insert(ctx, call)
		if err != nil {
			return res, &PersistenceError{Op: "insert call data", Err: err}
		}
		res.CallID = inserted.ID

	case KindClient:
		in, err := NormalizeClient(rec.RawData)
		if err != nil {
			return res, err
		}
		client, err := s.clientSvc.Create(ctx, in)
		if err != nil {
			if errors.Is(err, clients.ErrInvalidInput) {
				return res, fmt.Errorf("%w: %v", ErrNormalization, err)
			}
			return res, &PersistenceError{Op: "create client", Err: err}
		}
		res.ClientID = client.ID

	default:
		return res, fmt.Errorf("%w: unknown kind %q", ErrNormalization, rec.Kind)
	}

	// The flip comes only after the domain write succeeded. On failure the
	// record stays pending even though the domain row exists; that window
	// is the documented duplicate-processing risk.
	if err := s.repo.MarkProcessed(ctx, rec.ID); err != nil {
		return res, &PersistenceError{Op: "mark webhook processed", Err: err}
	}
	return res, nil
}
