package usecase_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/application/dispatch"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/application/usecase"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/apperrors"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/model"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/port"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/valueobject"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/pkg/events"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/pkg/observability"
)

// --- Mock implementations ---

type mockSimSwapProvider struct {
	checkFunc func(ctx context.Context, phone string, maxAge int) (port.SimSwapResult, error)
	mu        sync.Mutex
	maxAges   []int
}

func (m *mockSimSwapProvider) CheckSimSwap(ctx context.Context, phone string, maxAge int) (port.SimSwapResult, error) {
	m.mu.Lock()
	m.maxAges = append(m.maxAges, maxAge)
	m.mu.Unlock()
	if m.checkFunc != nil {
		return m.checkFunc(ctx, phone, maxAge)
	}
	return port.SimSwapResult{}, nil
}

type mockOwnershipProvider struct {
	verifyFunc func(ctx context.Context, phone string) (port.OwnershipResult, error)
}

func (m *mockOwnershipProvider) VerifyOwnership(ctx context.Context, phone string) (port.OwnershipResult, error) {
	if m.verifyFunc != nil {
		return m.verifyFunc(ctx, phone)
	}
	return port.OwnershipResult{Verified: true}, nil
}

type mockDecisionRepository struct {
	saveErr   error
	listErr   error
	mu        sync.Mutex
	saved     map[uuid.UUID]*model.DecisionRecord
	lastLimit int
}

func newMockDecisionRepository() *mockDecisionRepository {
	return &mockDecisionRepository{saved: map[uuid.UUID]*model.DecisionRecord{}}
}

func (m *mockDecisionRepository) Save(_ context.Context, record *model.DecisionRecord) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved[record.ID()] = record
	return nil
}

func (m *mockDecisionRepository) FindByID(_ context.Context, id uuid.UUID) (*model.DecisionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.saved[id]; ok {
		return r, nil
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockDecisionRepository) ListByPhone(_ context.Context, phone string, limit int) ([]*model.DecisionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastLimit = limit
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []*model.DecisionRecord
	for _, r := range m.saved {
		if r.PhoneNumber() == phone && len(out) < limit {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockDecisionRepository) only() *model.DecisionRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.saved {
		return r
	}
	return nil
}

type mockEventPublisher struct {
	publishErr error
	published  []events.DomainEvent
}

func (m *mockEventPublisher) Publish(_ context.Context, evts ...events.DomainEvent) error {
	if m.publishErr != nil {
		return m.publishErr
	}
	m.published = append(m.published, evts...)
	return nil
}

func (m *mockEventPublisher) types() []string {
	out := make([]string, len(m.published))
	for i, e := range m.published {
		out[i] = e.EventType()
	}
	return out
}

type mockDispatcher struct {
	requests []dispatch.Request
	actions  [][]valueobject.Action
}

func (m *mockDispatcher) Dispatch(_ context.Context, req dispatch.Request, actions []valueobject.Action) dispatch.Report {
	m.requests = append(m.requests, req)
	m.actions = append(m.actions, actions)
	report := dispatch.Report{}
	for _, a := range actions {
		report.Outcomes = append(report.Outcomes, dispatch.Outcome{Action: a})
	}
	return report
}

// --- Fixtures ---

var fixedNow = time.Date(2024, 12, 1, 10, 42, 0, 0, time.UTC)

// simulatorProvider answers like the telecom sandbox: +99999991000 swapped on
// 2024-11-29T10:42:00Z, +99999991001 clean, anything else fails.
func simulatorProvider() *mockSimSwapProvider {
	return &mockSimSwapProvider{
		checkFunc: func(_ context.Context, phone string, _ int) (port.SimSwapResult, error) {
			switch phone {
			case "+99999991000":
				d := time.Date(2024, 11, 29, 10, 42, 0, 0, time.UTC)
				return port.SimSwapResult{Swapped: true, SwapDate: &d}, nil
			case "+99999991001":
				return port.SimSwapResult{Swapped: false}, nil
			default:
				return port.SimSwapResult{}, apperrors.NewProviderError(apperrors.ProviderBadData, "simulator",
					"Use simulator numbers: +99999991000 or +99999991001", nil)
			}
		},
	}
}

func newCollector(sim port.SimSwapProvider, own port.OwnershipProvider) *usecase.SignalCollector {
	return usecase.NewSignalCollector(sim, own, observability.Discard(), nil, func() time.Time { return fixedNow })
}

func newRecorder(repo port.DecisionRepository, pub port.EventPublisher) *usecase.DecisionRecorder {
	return usecase.NewDecisionRecorder(repo, pub, observability.Discard(), nil)
}
