package service

import (
	"context"
	"errors"
	"testing"

	"github.com/tkonda/placement-prep/internal/apperror"
	"github.com/tkonda/placement-prep/internal/model"
	"github.com/tkonda/placement-prep/internal/repository/memory"
)

func newBattleFixture(t *testing.T) (*memory.Store, *BattleService, *model.Challenge) {
	t.Helper()
	store := memory.New()
	challengeSvc := newTestChallengeService(store, SimulatedRunner{})
	challenge := seedChallenge(t, challengeSvc, 50)
	svc := NewBattleService(store.Battles(), store.Challenges(), testLogger())
	return store, svc, challenge
}

func TestBattleCreate(t *testing.T) {
	store, svc, challenge := newBattleFixture(t)
	creator := seedUser(t, store)

	battle, err := svc.Create(context.Background(), creator, challenge.ID)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if battle.Status != model.BattleWaiting {
		t.Errorf("Status = %q, want waiting", battle.Status)
	}
	if len(battle.Players) != 1 {
		t.Fatalf("players = %d, want 1", len(battle.Players))
	}
	p := battle.Players[0]
	if p.UserID != creator.ID || p.Name != creator.Name || p.Status != model.PlayerWaiting {
		t.Errorf("creator player = %+v", p)
	}
}

func TestBattleCreate_UnknownChallenge(t *testing.T) {
	store, svc, _ := newBattleFixture(t)
	creator := seedUser(t, store)

	if _, err := svc.Create(context.Background(), creator, "missing"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Create() error = %v, want ErrNotFound", err)
	}
	if _, err := svc.Create(context.Background(), creator, ""); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("Create() with empty id error = %v, want ErrValidation", err)
	}
}

func TestBattleJoin_SecondPlayerActivates(t *testing.T) {
	store, svc, challenge := newBattleFixture(t)
	creator := seedUser(t, store)
	joiner := seedUser(t, store)

	battle, err := svc.Create(context.Background(), creator, challenge.ID)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	joined, err := svc.Join(context.Background(), joiner, battle.ID)
	if err != nil {
		t.Fatalf("Join() error = %v", err)
	}

	if joined.Status != model.BattleActive {
		t.Errorf("Status = %q, want active", joined.Status)
	}
	if len(joined.Players) != 2 {
		t.Fatalf("players = %d, want 2", len(joined.Players))
	}
	if joined.Players[1].Status != model.PlayerReady {
		t.Errorf("joiner status = %q, want ready", joined.Players[1].Status)
	}
}

func TestBattleJoin_Rejections(t *testing.T) {
	store, svc, challenge := newBattleFixture(t)
	creator := seedUser(t, store)
	joiner := seedUser(t, store)
	third := seedUser(t, store)

	battle, err := svc.Create(context.Background(), creator, challenge.ID)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if _, err := svc.Join(context.Background(), joiner, "missing"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("unknown battle error = %v, want ErrNotFound", err)
	}
	if _, err := svc.Join(context.Background(), creator, battle.ID); !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("creator rejoin error = %v, want ErrConflict", err)
	}

	if _, err := svc.Join(context.Background(), joiner, battle.ID); err != nil {
		t.Fatalf("Join() error = %v", err)
	}

	// Battle is active now; a third player is turned away.
	if _, err := svc.Join(context.Background(), third, battle.ID); !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("third join error = %v, want ErrConflict", err)
	}
}

func TestBattleListWaiting(t *testing.T) {
	store, svc, challenge := newBattleFixture(t)
	creator := seedUser(t, store)
	other := seedUser(t, store)
	joiner := seedUser(t, store)

	open, err := svc.Create(context.Background(), creator, challenge.ID)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	started, err := svc.Create(context.Background(), other, challenge.ID)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := svc.Join(context.Background(), joiner, started.ID); err != nil {
		t.Fatalf("Join() error = %v", err)
	}

	waiting, err := svc.ListWaiting(context.Background())
	if err != nil {
		t.Fatalf("ListWaiting() error = %v", err)
	}
	if len(waiting) != 1 || waiting[0].ID != open.ID {
		t.Errorf("ListWaiting() = %v, want just %s", waiting, open.ID)
	}
}
