package service

import (
	"context"
	"errors"
	"testing"

	"github.com/tkonda/placement-prep/internal/apperror"
	"github.com/tkonda/placement-prep/internal/model"
	"github.com/tkonda/placement-prep/internal/repository/memory"
)

func newTestFriendService(store *memory.Store) *FriendService {
	return NewFriendService(store.Friends(), store.Users(), testLogger())
}

// requestBetween sends a request from a to b and returns the friendship id.
func requestBetween(t *testing.T, store *memory.Store, svc *FriendService, a, b *model.User) string {
	t.Helper()
	if err := svc.SendRequest(context.Background(), a.ID, b.Email); err != nil {
		t.Fatalf("SendRequest: %v", err)
	}
	f, err := store.Friends().FindBetween(context.Background(), a.ID, b.ID)
	if err != nil {
		t.Fatalf("FindBetween: %v", err)
	}
	return f.ID
}

func TestFriendRequest_CreatesPendingEdge(t *testing.T) {
	store := memory.New()
	svc := newTestFriendService(store)
	alice := seedUser(t, store)
	bob := seedUser(t, store)

	requestBetween(t, store, svc, alice, bob)

	f, err := store.Friends().FindBetween(context.Background(), alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("FindBetween: %v", err)
	}
	if f.Status != model.FriendPending {
		t.Errorf("Status = %q, want pending", f.Status)
	}
	if f.UserID != alice.ID || f.FriendID != bob.ID {
		t.Errorf("edge direction = %s→%s, want %s→%s", f.UserID, f.FriendID, alice.ID, bob.ID)
	}
}

func TestFriendRequest_Rejections(t *testing.T) {
	store := memory.New()
	svc := newTestFriendService(store)
	alice := seedUser(t, store)
	bob := seedUser(t, store)

	if err := svc.SendRequest(context.Background(), alice.ID, "ghost@example.com"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("unknown email error = %v, want ErrNotFound", err)
	}
	if err := svc.SendRequest(context.Background(), alice.ID, alice.Email); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("self-request error = %v, want ErrValidation", err)
	}

	requestBetween(t, store, svc, alice, bob)

	// Duplicate in the same direction and the reverse direction both conflict.
	if err := svc.SendRequest(context.Background(), alice.ID, bob.Email); !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("duplicate request error = %v, want ErrConflict", err)
	}
	if err := svc.SendRequest(context.Background(), bob.ID, alice.Email); !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("reverse request error = %v, want ErrConflict", err)
	}
}

func TestFriendAccept_RecipientOnly(t *testing.T) {
	store := memory.New()
	svc := newTestFriendService(store)
	alice := seedUser(t, store)
	bob := seedUser(t, store)
	id := requestBetween(t, store, svc, alice, bob)

	// The sender cannot accept their own request.
	if err := svc.Accept(context.Background(), alice.ID, id); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("sender accept error = %v, want ErrNotFound", err)
	}

	if err := svc.Accept(context.Background(), bob.ID, id); err != nil {
		t.Fatalf("recipient Accept() error = %v", err)
	}

	f, _ := store.Friends().FindBetween(context.Background(), alice.ID, bob.ID)
	if f.Status != model.FriendAccepted {
		t.Errorf("Status after accept = %q, want accepted", f.Status)
	}
}

func TestListFriends_AcceptedOnlyEitherDirection(t *testing.T) {
	store := memory.New()
	svc := newTestFriendService(store)
	alice := seedUser(t, store)
	bob := seedUser(t, store)
	carol := seedUser(t, store)

	// alice→bob accepted, carol→alice still pending.
	id := requestBetween(t, store, svc, alice, bob)
	if err := svc.Accept(context.Background(), bob.ID, id); err != nil {
		t.Fatalf("Accept: %v", err)
	}
	requestBetween(t, store, svc, carol, alice)

	aliceFriends, err := svc.ListFriends(context.Background(), alice.ID)
	if err != nil {
		t.Fatalf("ListFriends(alice) error = %v", err)
	}
	if len(aliceFriends) != 1 || aliceFriends[0].ID != bob.ID {
		t.Errorf("alice's friends = %v, want just bob", aliceFriends)
	}

	// bob sees alice even though the edge points alice→bob.
	bobFriends, err := svc.ListFriends(context.Background(), bob.ID)
	if err != nil {
		t.Fatalf("ListFriends(bob) error = %v", err)
	}
	if len(bobFriends) != 1 || bobFriends[0].ID != alice.ID {
		t.Errorf("bob's friends = %v, want just alice", bobFriends)
	}
}

func TestFriendRemove_EitherDirection(t *testing.T) {
	store := memory.New()
	svc := newTestFriendService(store)
	alice := seedUser(t, store)
	bob := seedUser(t, store)
	id := requestBetween(t, store, svc, alice, bob)
	if err := svc.Accept(context.Background(), bob.ID, id); err != nil {
		t.Fatalf("Accept: %v", err)
	}

	// bob removes alice although alice sent the request.
	if err := svc.Remove(context.Background(), bob.ID, alice.ID); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if _, err := store.Friends().FindBetween(context.Background(), alice.ID, bob.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("edge still present after remove: err = %v", err)
	}
	if err := svc.Remove(context.Background(), bob.ID, alice.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("second Remove() error = %v, want ErrNotFound", err)
	}
}
