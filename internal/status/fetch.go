package status

import (
	"context"
	"log/slog"

	"github.com/musher-dev/dcpps/internal/observability"
)

// Provider returns the current status records of a compose project.
type Provider interface {
	PS(ctx context.Context) ([]Record, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context) ([]Record, error)

// PS calls f(ctx).
func (f ProviderFunc) PS(ctx context.Context) ([]Record, error) {
	return f(ctx)
}

// Fetcher builds snapshots of the declared services from a Provider.
type Fetcher struct {
	provider Provider
}

// NewFetcher creates a Fetcher that queries provider.
func NewFetcher(provider Provider) *Fetcher {
	return &Fetcher{provider: provider}
}

// Fetch queries the provider once and returns one record per declared
// service, in the order given. Services without a matching record get a
// "not created" placeholder. Provider errors are returned as-is.
//
// An empty service list returns an empty snapshot without querying the
// provider.
func (f *Fetcher) Fetch(ctx context.Context, services []string) (Snapshot, error) {
	if len(services) == 0 {
		return Snapshot{}, nil
	}

	records, err := f.provider.PS(ctx)
	if err != nil {
		return nil, err
	}

	byService := make(map[string]Record, len(records))
	for _, r := range records {
		// The first record for a service wins.
		if _, seen := byService[r.Service]; !seen {
			byService[r.Service] = r
		}
	}

	snapshot := make(Snapshot, 0, len(services))
	missing := 0

	for _, name := range services {
		r, ok := byService[name]
		if !ok {
			r = placeholder(name)
			missing++
		}

		snapshot = append(snapshot, r)
	}

	observability.FromContext(ctx).Debug("status snapshot fetched",
		slog.Int("services", len(services)),
		slog.Int("records", len(records)),
		slog.Int("missing", missing),
	)

	return snapshot, nil
}
