package provider

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tamilstream/tamilstream/internal/apperrors"
	"github.com/tamilstream/tamilstream/internal/config"
	"github.com/tamilstream/tamilstream/internal/models"
)

// degradedThreshold is the number of consecutive errors after which a
// provider transitions Active -> Degraded. Degradation is never automatic
// the other way: only a success or operator action restores Active.
const degradedThreshold = 5

// entry pairs a provider with its descriptor and mutable health record
type entry struct {
	provider   Provider
	descriptor models.ProviderDescriptor
	health     models.ProviderHealth
}

// Registry owns the set of registered providers and their health state.
// Constructed once at process start and passed by handle; health mutations
// are serialized so concurrent aggregate operations never lose error-count
// increments.
type Registry struct {
	mu      sync.RWMutex
	order   []string // registration order
	entries map[string]*entry
	logger  zerolog.Logger
}

// NewRegistry creates an empty provider registry
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*entry),
		logger:  config.GetLogger(),
	}
}

// Register validates and adds a provider. A provider missing required
// metadata is recorded as Disabled and a RegistrationError is returned, but
// registration of one bad provider never aborts startup: the caller logs and
// moves on to the next one.
func (r *Registry) Register(p Provider) error {
	descriptor := p.Descriptor()

	r.mu.Lock()
	defer r.mu.Unlock()

	if descriptor.ID == "" {
		r.logger.Error().Str("name", descriptor.Name).Msg("Provider rejected: missing id")
		return apperrors.NewRegistrationError(descriptor.Name, "missing id")
	}
	if _, exists := r.entries[descriptor.ID]; exists {
		r.logger.Error().Str("provider", descriptor.ID).Msg("Provider rejected: duplicate id")
		return apperrors.NewRegistrationError(descriptor.ID, "duplicate id")
	}

	reason := ""
	switch {
	case len(descriptor.Kinds) == 0:
		reason = "no supported content kinds"
	case len(descriptor.Languages) == 0:
		reason = "no supported languages"
	}

	e := &entry{
		provider:   p,
		descriptor: descriptor,
		health: models.ProviderHealth{
			Status:      models.HealthActive,
			LastChecked: time.Now(),
		},
	}

	if reason != "" || !descriptor.Enabled {
		e.health.Status = models.HealthDisabled
		if reason != "" {
			e.health.LastError = reason
		}
	}

	r.entries[descriptor.ID] = e
	r.order = append(r.order, descriptor.ID)

	if reason != "" {
		r.logger.Warn().Str("provider", descriptor.ID).Str("missing", reason).Msg("Provider excluded at registration")
		return apperrors.NewRegistrationError(descriptor.ID, reason)
	}

	r.logger.Info().Str("provider", descriptor.ID).Str("name", descriptor.Name).Bool("enabled", descriptor.Enabled).Msg("Provider registered")
	return nil
}

// Get returns a registered provider by id
func (r *Registry) Get(id string) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[id]
	if !ok {
		return nil, false
	}
	return e.provider, true
}

// Descriptor returns the registered descriptor for id
func (r *Registry) Descriptor(id string) (models.ProviderDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[id]
	if !ok {
		return models.ProviderDescriptor{}, false
	}
	return e.descriptor, true
}

// Health returns a copy of the provider's current health record
func (r *Registry) Health(id string) (models.ProviderHealth, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[id]
	if !ok {
		return models.ProviderHealth{}, false
	}
	return e.health, true
}

// ActiveProviders returns providers whose health status is Active, in
// registration order.
func (r *Registry) ActiveProviders() []Provider {
	return r.selectProviders(func(h models.HealthStatus) bool { return h == models.HealthActive })
}

// QueryableProviders returns providers eligible for aggregate operations:
// Active and Degraded, in registration order. Degradation is advisory;
// only Disabled providers are excluded.
func (r *Registry) QueryableProviders() []Provider {
	return r.selectProviders(func(h models.HealthStatus) bool { return h != models.HealthDisabled })
}

func (r *Registry) selectProviders(keep func(models.HealthStatus) bool) []Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()

	providers := make([]Provider, 0, len(r.order))
	for _, id := range r.order {
		e := r.entries[id]
		if keep(e.health.Status) {
			providers = append(providers, e.provider)
		}
	}
	return providers
}

// Snapshot returns every registered descriptor with its current health, in
// registration order. Used by operator-facing listings.
func (r *Registry) Snapshot() []ProviderStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()

	statuses := make([]ProviderStatus, 0, len(r.order))
	for _, id := range r.order {
		e := r.entries[id]
		statuses = append(statuses, ProviderStatus{
			Descriptor: e.descriptor,
			Health:     e.health,
		})
	}
	return statuses
}

// ProviderStatus pairs a descriptor with its health for listings
type ProviderStatus struct {
	Descriptor models.ProviderDescriptor `json:"descriptor"`
	Health     models.ProviderHealth     `json:"health"`
}

// RecordError increments the provider's consecutive-error counter. Crossing
// the threshold transitions Active -> Degraded. Never Disabled: that state is
// reserved for registration failure and explicit operator action.
func (r *Registry) RecordError(id string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return
	}

	e.health.ErrorCount++
	e.health.LastError = err.Error()
	e.health.LastChecked = time.Now()

	if e.health.Status == models.HealthActive && e.health.ErrorCount >= degradedThreshold {
		e.health.Status = models.HealthDegraded
		r.logger.Warn().Str("provider", id).Int("consecutive_errors", e.health.ErrorCount).Msg("Provider degraded")
	}
}

// RecordSuccess clears the consecutive-error counter. A success while
// Degraded transitions back to Active.
func (r *Registry) RecordSuccess(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return
	}

	e.health.ErrorCount = 0
	e.health.LastError = ""
	e.health.LastChecked = time.Now()

	if e.health.Status == models.HealthDegraded {
		e.health.Status = models.HealthActive
		r.logger.Info().Str("provider", id).Msg("Provider recovered")
	}
}

// ResetErrors is the manual re-enable path: the counter clears and a
// Degraded or Disabled provider returns to Active.
func (r *Registry) ResetErrors(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return false
	}

	e.health.ErrorCount = 0
	e.health.LastError = ""
	e.health.Status = models.HealthActive
	e.health.LastChecked = time.Now()
	r.logger.Info().Str("provider", id).Msg("Provider errors reset by operator")
	return true
}

// Disable marks a provider Disabled (explicit operator action)
func (r *Registry) Disable(id string, reason string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return false
	}

	e.health.Status = models.HealthDisabled
	e.health.LastError = reason
	e.health.LastChecked = time.Now()
	r.logger.Warn().Str("provider", id).Str("reason", reason).Msg("Provider disabled")
	return true
}

// RunHealthCheck probes every Active or Degraded provider. Providers
// implementing HealthChecker are asked directly; the rest default to healthy.
// A healthy probe sets Active (and clears the error counter); an unhealthy or
// failing probe sets Disabled with the reason recorded. Disabled providers are
// skipped: that state is cleared only by ResetErrors.
func (r *Registry) RunHealthCheck(ctx context.Context) {
	r.mu.RLock()
	ids := append([]string(nil), r.order...)
	r.mu.RUnlock()

	for _, id := range ids {
		r.mu.RLock()
		e, ok := r.entries[id]
		disabled := ok && e.health.Status == models.HealthDisabled
		r.mu.RUnlock()
		if !ok || disabled {
			continue
		}

		healthy := true
		reason := ""
		if checker, implements := e.provider.(HealthChecker); implements {
			ok, err := checker.IsHealthy(ctx)
			if err != nil {
				healthy = false
				reason = err.Error()
			} else if !ok {
				healthy = false
				reason = "health check reported unhealthy"
			}
		}

		r.mu.Lock()
		if healthy {
			e.health.Status = models.HealthActive
			e.health.ErrorCount = 0
			e.health.LastError = ""
		} else {
			e.health.Status = models.HealthDisabled
			e.health.LastError = reason
			r.logger.Warn().Str("provider", id).Str("reason", reason).Msg("Health check failed, provider disabled")
		}
		e.health.LastChecked = time.Now()
		r.mu.Unlock()
	}
}
