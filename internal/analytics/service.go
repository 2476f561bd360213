package analytics

import (
	"context"
	"errors"
	"sort"
	"time"

	"callboard/internal/calls"
	"callboard/internal/clients"
)

var ErrInvalidRequest = errors.New("analytics: invalid request")

// Repository abstracts data access for aggregation. Implementations should
// read the same tables the pipeline writes; analytics never mutates.
type Repository interface {
	ListCalls(ctx context.Context, from, to time.Time) ([]calls.Call, error)
	ListClients(ctx context.Context) ([]clients.Client, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service { return &Service{repo: repo} }

func (s *Service) CallsSummary(ctx context.Context, r TimeRange) (CallsSummary, error) {
	rows, err := s.listRange(ctx, r)
	if err != nil {
		return CallsSummary{}, err
	}

	out := CallsSummary{}
	for _, c := range rows {
		out.TotalCalls++
		out.TotalDurationSeconds += c.DurationSeconds
		out.TotalCost += c.CostAmount
		switch c.Outcome {
		case calls.OutcomeSuccess:
			out.SuccessCalls++
		case calls.OutcomeFailed:
			out.FailedCalls++
		case calls.OutcomeNoAnswer:
			out.NoAnswerCalls++
		case calls.OutcomeBusy:
			out.BusyCalls++
		}
	}
	if out.TotalCalls > 0 {
		out.AverageDurationSeconds = out.TotalDurationSeconds / out.TotalCalls
	}
	return out, nil
}

// ServiceBreakdown groups calls by the service they were billed against.
// Calls without a service id land in a single unattributed bucket.
func (s *Service) ServiceBreakdown(ctx context.Context, r TimeRange) ([]ServiceUsage, error) {
	rows, err := s.listRange(ctx, r)
	if err != nil {
		return nil, err
	}

	byService := map[string]*ServiceUsage{}
	for _, c := range rows {
		id := c.ServiceID
		u, ok := byService[id]
		if !ok {
			u = &ServiceUsage{ServiceID: id, ServiceName: c.ServiceName}
			byService[id] = u
		}
		if u.ServiceName == "" {
			u.ServiceName = c.ServiceName
		}
		u.Calls++
		u.TotalCost += c.CostAmount
	}

	out := make([]ServiceUsage, 0, len(byService))
	for _, u := range byService {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Calls != out[j].Calls {
			return out[i].Calls > out[j].Calls
		}
		return out[i].ServiceID < out[j].ServiceID
	})
	return out, nil
}

func (s *Service) DailyVolume(ctx context.Context, r TimeRange) ([]DailyVolume, error) {
	rows, err := s.listRange(ctx, r)
	if err != nil {
		return nil, err
	}

	byDay := map[string]*DailyVolume{}
	for _, c := range rows {
		day := c.OccurredAt.UTC().Format("2006-01-02")
		v, ok := byDay[day]
		if !ok {
			v = &DailyVolume{Date: day}
			byDay[day] = v
		}
		v.Calls++
		v.Cost += c.CostAmount
	}

	out := make([]DailyVolume, 0, len(byDay))
	for _, v := range byDay {
		out = append(out, *v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (s *Service) ClientStatus(ctx context.Context) (ClientStatusDistribution, error) {
	if s.repo == nil {
		return ClientStatusDistribution{}, errors.New("analytics: repository not configured")
	}
	rows, err := s.repo.ListClients(ctx)
	if err != nil {
		return ClientStatusDistribution{}, err
	}

	out := ClientStatusDistribution{Total: len(rows)}
	for _, c := range rows {
		switch c.Status {
		case clients.StatusActive:
			out.Active++
		case clients.StatusInactive:
			out.Inactive++
		case clients.StatusPending:
			out.Pending++
		}
	}
	return out, nil
}

func (s *Service) listRange(ctx context.Context, r TimeRange) ([]calls.Call, error) {
	if r.From.IsZero() || r.To.IsZero() || !r.To.After(r.From) {
		return nil, ErrInvalidRequest
	}
	if s.repo == nil {
		return nil, errors.New("analytics: repository not configured")
	}
	return s.repo.ListCalls(ctx, r.From, r.To)
}
