package status

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

type fakeProvider struct {
	records []Record
	err     error
	calls   int
}

func (p *fakeProvider) PS(context.Context) ([]Record, error) {
	p.calls++
	return p.records, p.err
}

func TestFetcher_Fetch_SynthesizesMissing(t *testing.T) {
	provider := &fakeProvider{records: []Record{
		{Service: "web", State: StateRunning, Health: HealthHealthy},
	}}

	got, err := NewFetcher(provider).Fetch(context.Background(), []string{"web", "db"})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	want := Snapshot{
		{Service: "web", State: StateRunning, Health: HealthHealthy},
		{Service: "db", State: StateNotCreated, Health: HealthNone},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Fetch() = %+v, want %+v", got, want)
	}
}

func TestFetcher_Fetch_FollowsDeclaredOrder(t *testing.T) {
	declared := []string{"api", "cache", "db", "web"}

	tests := []struct {
		name    string
		records []Record
	}{
		{
			name: "reversed provider order",
			records: []Record{
				{Service: "web", State: StateRunning},
				{Service: "db", State: StateExited},
				{Service: "cache", State: StatePaused},
				{Service: "api", State: StateCreated},
			},
		},
		{
			name: "omissions and extras",
			records: []Record{
				{Service: "unrelated", State: StateRunning},
				{Service: "db", State: StateRunning},
			},
		},
		{
			name:    "no records",
			records: nil,
		},
		{
			name: "case differs",
			records: []Record{
				{Service: "API", State: StateRunning},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewFetcher(&fakeProvider{records: tt.records}).Fetch(context.Background(), declared)
			if err != nil {
				t.Fatalf("Fetch() error = %v", err)
			}

			if len(got) != len(declared) {
				t.Fatalf("len(Fetch()) = %d, want %d", len(got), len(declared))
			}

			for i, name := range declared {
				if got[i].Service != name {
					t.Errorf("Fetch()[%d].Service = %q, want %q", i, got[i].Service, name)
				}
			}
		})
	}
}

func TestFetcher_Fetch_FirstDuplicateWins(t *testing.T) {
	provider := &fakeProvider{records: []Record{
		{Service: "web", State: StateRunning, Health: HealthHealthy},
		{Service: "web", State: StateExited},
	}}

	got, err := NewFetcher(provider).Fetch(context.Background(), []string{"web"})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if got[0].State != StateRunning {
		t.Errorf("Fetch()[0].State = %q, want %q", got[0].State, StateRunning)
	}
}

func TestFetcher_Fetch_EmptyDeclaredSkipsProvider(t *testing.T) {
	provider := &fakeProvider{err: errors.New("must not be called")}

	got, err := NewFetcher(provider).Fetch(context.Background(), nil)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if len(got) != 0 {
		t.Errorf("Fetch() = %+v, want empty snapshot", got)
	}

	if provider.calls != 0 {
		t.Errorf("provider called %d times, want 0", provider.calls)
	}
}

func TestFetcher_Fetch_PropagatesProviderError(t *testing.T) {
	providerErr := errors.New("docker: command not found")

	got, err := NewFetcher(&fakeProvider{err: providerErr}).Fetch(context.Background(), []string{"web"})
	if !errors.Is(err, providerErr) {
		t.Fatalf("Fetch() error = %v, want %v", err, providerErr)
	}

	if got != nil {
		t.Errorf("Fetch() snapshot = %+v, want nil on error", got)
	}
}

func TestProviderFunc(t *testing.T) {
	called := false
	p := ProviderFunc(func(context.Context) ([]Record, error) {
		called = true
		return nil, nil
	})

	if _, err := NewFetcher(p).Fetch(context.Background(), []string{"web"}); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if !called {
		t.Error("ProviderFunc was not called")
	}
}
