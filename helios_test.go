package helios_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helioscommand/helios"
	"github.com/helioscommand/helios/pkg/domain"
	"github.com/helioscommand/helios/pkg/orchestrate"
	"github.com/helioscommand/helios/pkg/ports"
)

type fixedGeocoder struct {
	coord domain.Coordinate
}

func (f fixedGeocoder) Resolve(ctx context.Context, address string) (domain.Coordinate, error) {
	return f.coord, nil
}

type fixedPlaces struct {
	places []domain.Place
}

func (f fixedPlaces) SearchNearby(ctx context.Context, center domain.Coordinate, radiusMeters int, category string) ([]domain.Place, error) {
	return f.places, nil
}

type captureMailer struct {
	sent []ports.Mail
}

func (c *captureMailer) Send(ctx context.Context, msg ports.Mail) error {
	c.sent = append(c.sent, msg)
	return nil
}

func newAssistant(t *testing.T, opts ...helios.Option) *helios.Assistant {
	t.Helper()
	base := []helios.Option{
		helios.WithGeocoder(fixedGeocoder{coord: domain.Coordinate{Lat: 13.0106, Lng: 80.2572}}),
		helios.WithPlacesSearcher(fixedPlaces{places: []domain.Place{{Name: "Apollo Pharmacy"}}}),
		helios.WithMailer(&captureMailer{}),
		helios.WithFacilities([]domain.Facility{
			{Name: "Fortis Malar Hospital", Coordinate: domain.Coordinate{Lat: 13.0055, Lng: 80.2572}},
		}),
		helios.WithRecipient("admin@helios.health"),
	}
	a, err := helios.New(append(base, opts...)...)
	require.NoError(t, err)
	return a
}

func TestAssistant_AskAndHistory(t *testing.T) {
	a := newAssistant(t)
	ctx := context.Background()
	id := helios.NewConversationID()

	reply, err := a.Ask(ctx, id, "nearest hospital in Adyar, Chennai")
	require.NoError(t, err)
	assert.Equal(t, "Found: Fortis Malar Hospital | Distance: 0.567 km | ETA: 1 min", reply)

	turns, err := a.History(ctx, id)
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, domain.RoleAssistant, turns[1].Role)
}

func TestAssistant_GraphMode(t *testing.T) {
	a := newAssistant(t, helios.WithExecutionMode(orchestrate.ModeGraph))
	assert.Equal(t, orchestrate.ModeGraph, a.Mode())

	reply, err := a.Ask(context.Background(), "conv-1", "pharmacy near Velachery")
	require.NoError(t, err)
	assert.Equal(t, "Found 1 nearby places. First: Apollo Pharmacy", reply)
}

func TestAssistant_ResetDeleteList(t *testing.T) {
	a := newAssistant(t)
	ctx := context.Background()

	_, err := a.Ask(ctx, "conv-1", "nearest hospital in Adyar")
	require.NoError(t, err)

	ids, err := a.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids, "conv-1")

	require.NoError(t, a.Reset(ctx, "conv-1"))
	turns, err := a.History(ctx, "conv-1")
	require.NoError(t, err)
	assert.Empty(t, turns)

	require.NoError(t, a.Delete(ctx, "conv-1"))
	_, err = a.History(ctx, "conv-1")
	assert.ErrorIs(t, err, domain.ErrConversationNotFound)
}

func TestNew_RequiresDependencies(t *testing.T) {
	_, err := helios.New()
	assert.Error(t, err)

	_, err = helios.New(
		helios.WithGeocoder(fixedGeocoder{}),
		helios.WithPlacesSearcher(fixedPlaces{}),
		helios.WithMailer(&captureMailer{}),
		helios.WithRecipient("admin@helios.health"),
	)
	assert.Error(t, err, "an empty facility catalog is rejected")
}
