package configstore

import (
	"context"
	"testing"

	"github.com/credlens/credlens/pkg/scoring"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(scoring.Defaults())
	if err != nil {
		t.Fatalf("NewStore() error: %v", err)
	}
	return s
}

func fp(v float64) *float64 { return &v }
func ip(v int) *int         { return &v }

func TestNewStoreRejectsInvalidConfig(t *testing.T) {
	bad := scoring.Defaults()
	bad.MaxHops = 9
	if _, err := NewStore(bad); err == nil {
		t.Fatal("expected invalid initial config to be rejected")
	}
}

func TestUpdatePublishesNewVersion(t *testing.T) {
	s := newTestStore(t)
	before := s.Get()

	snap, err := s.Update(context.Background(), Patch{
		EdgeMinStrength: fp(0.5),
		MaxHops:         ip(3),
	})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}

	if snap.Version != before.Version+1 {
		t.Errorf("version = %d, want %d", snap.Version, before.Version+1)
	}
	if snap.Config.EdgeMinStrength != 0.5 || snap.Config.MaxHops != 3 {
		t.Errorf("patched config = %+v", snap.Config)
	}
	// Unpatched sections survive.
	if snap.Config.Weights != before.Config.Weights {
		t.Errorf("weights changed: %+v", snap.Config.Weights)
	}
	if got := s.Get(); got.Version != snap.Version {
		t.Errorf("Get() version = %d, want %d", got.Version, snap.Version)
	}
}

func TestUpdateRejectionKeepsPriorSnapshot(t *testing.T) {
	s := newTestStore(t)
	before := s.Get()

	_, err := s.Update(context.Background(), Patch{
		Weights: &scoring.Weights{Influence: 0.9, Quality: 0.9},
	})
	if err == nil {
		t.Fatal("expected weight-sum validation to fail")
	}

	after := s.Get()
	if after.Version != before.Version {
		t.Errorf("version advanced on rejected update: %d -> %d", before.Version, after.Version)
	}
	if after.Config.Weights != before.Config.Weights {
		t.Errorf("weights changed on rejected update")
	}
}

func TestUpdateRejectsUnknownFlagKey(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Update(context.Background(), Patch{
		RedFlagPenalties: map[string]float64{"NOT_A_FLAG": 0.1},
	})
	if err == nil {
		t.Fatal("expected unknown red flag key to be rejected")
	}
}

func TestSnapshotIsolation(t *testing.T) {
	s := newTestStore(t)
	held := s.Get()

	if _, err := s.Update(context.Background(), Patch{MaxHops: ip(3)}); err != nil {
		t.Fatalf("Update() error: %v", err)
	}

	// A snapshot taken before the update is unaffected by it.
	if held.Config.MaxHops != 2 {
		t.Errorf("held snapshot max_hops = %d, want 2", held.Config.MaxHops)
	}
	if s.Get().Config.MaxHops != 3 {
		t.Errorf("current snapshot max_hops = %d, want 3", s.Get().Config.MaxHops)
	}
}

func TestPatchReplacesTablesWholesale(t *testing.T) {
	s := newTestStore(t)

	snap, err := s.Update(context.Background(), Patch{
		RiskPenalties: map[string]float64{"LOW": 0.01, "MED": 0.05, "HIGH": 0.20},
	})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if len(snap.Config.RiskPenalties) != 3 || snap.Config.RiskPenalties[scoring.RiskHigh] != 0.20 {
		t.Errorf("risk penalties = %+v", snap.Config.RiskPenalties)
	}
}
