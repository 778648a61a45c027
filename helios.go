package helios

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/helioscommand/helios/internal/config"
	"github.com/helioscommand/helios/pkg/adapters/file"
	"github.com/helioscommand/helios/pkg/adapters/gmail"
	"github.com/helioscommand/helios/pkg/adapters/googlemaps"
	"github.com/helioscommand/helios/pkg/adapters/memory"
	redisstore "github.com/helioscommand/helios/pkg/adapters/redis"
	"github.com/helioscommand/helios/pkg/classify"
	"github.com/helioscommand/helios/pkg/domain"
	"github.com/helioscommand/helios/pkg/facility"
	"github.com/helioscommand/helios/pkg/geo"
	"github.com/helioscommand/helios/pkg/handle"
	"github.com/helioscommand/helios/pkg/observability"
	"github.com/helioscommand/helios/pkg/orchestrate"
	"github.com/helioscommand/helios/pkg/ports"
)

// Assistant is the high-level entry point for the library. It wires the
// classifier, the intent handlers and a conversation store into one
// conversational surface.
type Assistant struct {
	orchestrator *orchestrate.Orchestrator
	store        ports.ConversationStore

	geocoder   ports.Geocoder
	places     ports.PlacesSearcher
	mailer     ports.Mailer
	facilities []domain.Facility
	recipient  string
	speedKmh   float64
	radius     int
	mode       orchestrate.ExecutionMode
	greeting   string
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// Option defines a functional option for configuring the Assistant.
type Option func(*Assistant)

// WithGeocoder injects the address resolver.
func WithGeocoder(g ports.Geocoder) Option {
	return func(a *Assistant) {
		a.geocoder = g
	}
}

// WithPlacesSearcher injects the nearby-places client.
func WithPlacesSearcher(p ports.PlacesSearcher) Option {
	return func(a *Assistant) {
		a.places = p
	}
}

// WithMailer injects the outbound mail client.
func WithMailer(m ports.Mailer) Option {
	return func(a *Assistant) {
		a.mailer = m
	}
}

// WithStore injects the conversation store. The default keeps conversations
// in process memory.
func WithStore(s ports.ConversationStore) Option {
	return func(a *Assistant) {
		a.store = s
	}
}

// WithFacilities sets the hospital catalog directly, bypassing CSV loading.
func WithFacilities(facilities []domain.Facility) Option {
	return func(a *Assistant) {
		a.facilities = facilities
	}
}

// WithRecipient sets the escalation email recipient.
func WithRecipient(addr string) Option {
	return func(a *Assistant) {
		a.recipient = addr
	}
}

// WithAverageSpeed tunes travel time estimates, in km/h.
func WithAverageSpeed(kmh float64) Option {
	return func(a *Assistant) {
		a.speedKmh = kmh
	}
}

// WithSearchRadius bounds the nearby-places search, in meters.
func WithSearchRadius(meters int) Option {
	return func(a *Assistant) {
		a.radius = meters
	}
}

// WithExecutionMode selects direct or graph orchestration.
func WithExecutionMode(mode orchestrate.ExecutionMode) Option {
	return func(a *Assistant) {
		a.mode = mode
	}
}

// WithGreeting overrides the interactive session opener.
func WithGreeting(greeting string) Option {
	return func(a *Assistant) {
		a.greeting = greeting
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assistant) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithMetrics attaches prometheus instrumentation.
func WithMetrics(m *observability.Metrics) Option {
	return func(a *Assistant) {
		a.metrics = m
	}
}

// New initializes an Assistant. The geocoder, places searcher, mailer and
// facility catalog must be supplied through options; use NewFromConfig to
// build them from configuration instead.
func New(opts ...Option) (*Assistant, error) {
	a := &Assistant{
		store:    memory.NewStore(),
		speedKmh: geo.DefaultAverageSpeedKmh,
		radius:   handle.DefaultSearchRadiusMeters,
		mode:     orchestrate.ModeDirect,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.geocoder == nil {
		return nil, fmt.Errorf("helios: a geocoder is required")
	}
	if a.places == nil {
		return nil, fmt.Errorf("helios: a places searcher is required")
	}
	if a.mailer == nil {
		return nil, fmt.Errorf("helios: a mailer is required")
	}
	if len(a.facilities) == 0 {
		return nil, fmt.Errorf("helios: the facility catalog is empty")
	}
	if a.recipient == "" {
		return nil, fmt.Errorf("helios: an escalation recipient is required")
	}

	index := facility.NewIndex(a.facilities)
	if index.Len() == 0 {
		return nil, fmt.Errorf("helios: no facility has usable coordinates")
	}

	registry := handle.NewRegistry()
	registry.Register(domain.IntentHospital, handle.NewHospital(a.geocoder, index,
		handle.WithAverageSpeed(a.speedKmh),
		handle.WithHospitalLogger(a.logger)))
	registry.Register(domain.IntentMedicalShop, handle.NewShops(a.geocoder, a.places,
		handle.WithSearchRadius(a.radius),
		handle.WithShopsLogger(a.logger)))
	registry.Register(domain.IntentEmail, handle.NewEmail(a.mailer, a.recipient,
		handle.WithEmailLogger(a.logger)))

	orchOpts := []orchestrate.Option{
		orchestrate.WithExecutionMode(a.mode),
		orchestrate.WithLogger(a.logger),
		orchestrate.WithMetrics(a.metrics),
	}
	if a.greeting != "" {
		orchOpts = append(orchOpts, orchestrate.WithGreeting(a.greeting))
	}

	orchestrator, err := orchestrate.New(classify.New(), registry, a.store, orchOpts...)
	if err != nil {
		return nil, err
	}
	a.orchestrator = orchestrator
	return a, nil
}

// NewFromConfig builds an Assistant with Google Maps, Gmail and the
// configured store, loading the facility catalog from the configured CSV.
func NewFromConfig(cfg config.Config, logger *slog.Logger, opts ...Option) (*Assistant, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	facilities, err := facility.LoadCSV(cfg.Dataset, logger)
	if err != nil {
		return nil, fmt.Errorf("helios: load facility catalog: %w", err)
	}

	var store ports.ConversationStore
	switch cfg.Store.Backend {
	case config.StoreFile:
		store, err = file.NewStore(cfg.Store.Dir)
		if err != nil {
			return nil, err
		}
	case config.StoreRedis:
		store = redisstore.New(cfg.Store.Redis.Addr, cfg.Store.Redis.Password, cfg.Store.Redis.DB)
	default:
		store = memory.NewStore()
	}

	base := []Option{
		WithGeocoder(googlemaps.NewGeocoder(cfg.Google.APIKey)),
		WithPlacesSearcher(googlemaps.NewPlaces(cfg.Google.APIKey)),
		WithMailer(gmail.New(cfg.Gmail.BearerToken, gmail.WithUserID(cfg.Gmail.UserID))),
		WithStore(store),
		WithFacilities(facilities),
		WithRecipient(cfg.Gmail.Recipient),
		WithAverageSpeed(cfg.AverageSpeedKmh),
		WithSearchRadius(cfg.SearchRadiusMeters),
		WithExecutionMode(orchestrate.ExecutionMode(cfg.ExecutionMode)),
		WithLogger(logger),
	}
	return New(append(base, opts...)...)
}

// NewConversationID mints an opaque conversation identifier.
func NewConversationID() string {
	return uuid.NewString()
}

// Ask runs one orchestration step and returns the assistant's reply.
func (a *Assistant) Ask(ctx context.Context, conversationID, query string) (string, error) {
	return a.orchestrator.ProcessQuery(ctx, conversationID, query)
}

// History returns a conversation's ordered turn log.
func (a *Assistant) History(ctx context.Context, conversationID string) ([]domain.Turn, error) {
	return a.orchestrator.History(ctx, conversationID)
}

// Reset clears a conversation's turns while keeping its ID.
func (a *Assistant) Reset(ctx context.Context, conversationID string) error {
	return a.orchestrator.Reset(ctx, conversationID)
}

// Delete removes a conversation entirely.
func (a *Assistant) Delete(ctx context.Context, conversationID string) error {
	return a.store.Delete(ctx, conversationID)
}

// List returns the IDs of all stored conversations.
func (a *Assistant) List(ctx context.Context) ([]string, error) {
	return a.store.List(ctx)
}

// Greeting returns the session opener line.
func (a *Assistant) Greeting() string {
	return a.orchestrator.Greeting()
}

// Mode reports the effective execution strategy.
func (a *Assistant) Mode() orchestrate.ExecutionMode {
	return a.orchestrator.Mode()
}
