package billing

import (
	"sync"
	"time"

	"github.com/tillerhq/farmops/internal/domain"
)

// Registry maps order types to their period-assignment strategy. Unknown
// types fall back to monthly billing.
type Registry struct {
	mu        sync.RWMutex
	assigners map[domain.OrderType]PeriodAssigner
	fallback  PeriodAssigner
}

// NewRegistry returns a registry pre-populated with the billing rules for the
// known order types.
func NewRegistry() *Registry {
	r := &Registry{
		assigners: make(map[domain.OrderType]PeriodAssigner),
		fallback:  MonthlyAssigner{},
	}

	r.Register(domain.OrderTypeB2B, MonthlyAssigner{})
	r.Register(domain.OrderTypeSeasonalSubscription, MonthlyAssigner{})
	r.Register(domain.OrderTypeFarmersMarket, ISOWeekAssigner{})
	r.Register(domain.OrderTypeSubscriptionBox, ISOWeekAssigner{})
	r.Register(domain.OrderTypeWholesaleQuarterly, QuarterlyAssigner{})

	return r
}

// Register installs or replaces the assigner for an order type.
func (r *Registry) Register(t domain.OrderType, a PeriodAssigner) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assigners[t] = a
}

// AssignerFor returns the assigner for an order type, or the monthly fallback.
func (r *Registry) AssignerFor(t domain.OrderType) PeriodAssigner {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if a, ok := r.assigners[t]; ok {
		return a
	}
	return r.fallback
}

// Assign computes the billing period for an order type and reference date.
func (r *Registry) Assign(t domain.OrderType, ref time.Time) Period {
	return r.AssignerFor(t).AssignPeriod(ref)
}
