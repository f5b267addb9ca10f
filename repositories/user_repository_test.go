package repositories

import (
	stderrors "errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	db "github.com/mama165/sdk-go/database"
	"github.com/stretchr/testify/require"

	"openchat/domain"
	"openchat/errors"
)

func TestUserRepository_CreateAndFetch(t *testing.T) {
	req := require.New(t)
	_, _, badgerDB, blugeWriter, err := db.SetupBenchmark(t.TempDir())
	req.NoError(err)
	defer db.CleanupDB(badgerDB, blugeWriter)

	repo := NewUserRepository(badgerDB)

	// When: creating a user
	user, err := repo.CreateUser("Alice", "alice@example.com", "hashed")
	req.NoError(err)
	req.NotEmpty(user.ID)

	// Then: it is retrievable by id and by email
	byID, err := repo.GetUser(user.ID)
	req.NoError(err)
	req.Equal("Alice", byID.Name)

	byEmail, err := repo.GetUserByEmail("alice@example.com")
	req.NoError(err)
	req.Equal(user.ID, byEmail.ID)
}

func TestUserRepository_CreateUser_DuplicateEmail(t *testing.T) {
	req := require.New(t)
	_, _, badgerDB, blugeWriter, err := db.SetupBenchmark(t.TempDir())
	req.NoError(err)
	defer db.CleanupDB(badgerDB, blugeWriter)

	repo := NewUserRepository(badgerDB)

	_, err = repo.CreateUser("Alice", "alice@example.com", "hashed")
	req.NoError(err)

	// A second signup with the same email must be rejected
	_, err = repo.CreateUser("Impostor", "alice@example.com", "hashed2")
	req.ErrorIs(err, errors.ErrUserAlreadyExists)
}

func TestUserRepository_SendFriendRequest_Lifecycle(t *testing.T) {
	req := require.New(t)
	_, _, badgerDB, blugeWriter, err := db.SetupBenchmark(t.TempDir())
	req.NoError(err)
	defer db.CleanupDB(badgerDB, blugeWriter)

	repo := NewUserRepository(badgerDB)
	alice, err := repo.CreateUser("Alice", "alice@example.com", "h")
	req.NoError(err)
	bob, err := repo.CreateUser("Bob", "bob@example.com", "h")
	req.NoError(err)

	// When: alice requests bob
	requestID, err := repo.SendFriendRequest(alice.ID, bob.ID)
	req.NoError(err)

	// Then: the request is pending on bob's side only
	_, pending, err := repo.ListFriends(bob.ID)
	req.NoError(err)
	req.Len(pending, 1)
	req.Equal(alice.ID, pending[0].From)
	req.Equal(domain.RequestPending, pending[0].Status)

	_, alicePending, err := repo.ListFriends(alice.ID)
	req.NoError(err)
	req.Empty(alicePending)

	// When: bob accepts
	req.NoError(repo.AcceptFriendRequest(bob.ID, requestID))

	// Then: the friendship is symmetric and the request gone
	bobFriends, bobPending, err := repo.ListFriends(bob.ID)
	req.NoError(err)
	req.Equal([]domain.UserID{alice.ID}, bobFriends)
	req.Empty(bobPending)

	aliceFriends, _, err := repo.ListFriends(alice.ID)
	req.NoError(err)
	req.Equal([]domain.UserID{bob.ID}, aliceFriends)
}

func TestUserRepository_SendFriendRequest_Duplicate(t *testing.T) {
	req := require.New(t)
	_, _, badgerDB, blugeWriter, err := db.SetupBenchmark(t.TempDir())
	req.NoError(err)
	defer db.CleanupDB(badgerDB, blugeWriter)

	repo := NewUserRepository(badgerDB)
	alice, err := repo.CreateUser("Alice", "alice@example.com", "h")
	req.NoError(err)
	bob, err := repo.CreateUser("Bob", "bob@example.com", "h")
	req.NoError(err)

	_, err = repo.SendFriendRequest(alice.ID, bob.ID)
	req.NoError(err)

	// Repeating the same request is rejected
	_, err = repo.SendFriendRequest(alice.ID, bob.ID)
	req.ErrorIs(err, errors.ErrRequestAlreadySent)

	// The mirror request, bob to alice, collides with the pending one
	_, err = repo.SendFriendRequest(bob.ID, alice.ID)
	req.ErrorIs(err, errors.ErrRequestAlreadyExists)
}

func TestUserRepository_SendFriendRequest_AlreadyFriends(t *testing.T) {
	req := require.New(t)
	_, _, badgerDB, blugeWriter, err := db.SetupBenchmark(t.TempDir())
	req.NoError(err)
	defer db.CleanupDB(badgerDB, blugeWriter)

	repo := NewUserRepository(badgerDB)
	alice, err := repo.CreateUser("Alice", "alice@example.com", "h")
	req.NoError(err)
	bob, err := repo.CreateUser("Bob", "bob@example.com", "h")
	req.NoError(err)

	requestID, err := repo.SendFriendRequest(alice.ID, bob.ID)
	req.NoError(err)
	req.NoError(repo.AcceptFriendRequest(bob.ID, requestID))

	_, err = repo.SendFriendRequest(alice.ID, bob.ID)
	req.ErrorIs(err, errors.ErrAlreadyFriends)
	_, err = repo.SendFriendRequest(bob.ID, alice.ID)
	req.ErrorIs(err, errors.ErrAlreadyFriends)
}

func TestUserRepository_SendFriendRequest_UnknownUsers(t *testing.T) {
	req := require.New(t)
	_, _, badgerDB, blugeWriter, err := db.SetupBenchmark(t.TempDir())
	req.NoError(err)
	defer db.CleanupDB(badgerDB, blugeWriter)

	repo := NewUserRepository(badgerDB)
	alice, err := repo.CreateUser("Alice", "alice@example.com", "h")
	req.NoError(err)

	_, err = repo.SendFriendRequest(alice.ID, domain.UserID(uuid.NewString()))
	req.ErrorIs(err, errors.ErrUserNotFound)
	_, err = repo.SendFriendRequest(domain.UserID(uuid.NewString()), alice.ID)
	req.ErrorIs(err, errors.ErrUserNotFound)
}

func TestUserRepository_RejectFriendRequest(t *testing.T) {
	req := require.New(t)
	_, _, badgerDB, blugeWriter, err := db.SetupBenchmark(t.TempDir())
	req.NoError(err)
	defer db.CleanupDB(badgerDB, blugeWriter)

	repo := NewUserRepository(badgerDB)
	alice, err := repo.CreateUser("Alice", "alice@example.com", "h")
	req.NoError(err)
	bob, err := repo.CreateUser("Bob", "bob@example.com", "h")
	req.NoError(err)

	requestID, err := repo.SendFriendRequest(alice.ID, bob.ID)
	req.NoError(err)

	// When: bob rejects
	req.NoError(repo.RejectFriendRequest(bob.ID, requestID))

	// Then: nobody gained a friend and the request is consumed
	bobFriends, bobPending, err := repo.ListFriends(bob.ID)
	req.NoError(err)
	req.Empty(bobFriends)
	req.Empty(bobPending)

	req.ErrorIs(repo.RejectFriendRequest(bob.ID, requestID), errors.ErrRequestNotFound)

	// And: alice may try again after the rejection
	_, err = repo.SendFriendRequest(alice.ID, bob.ID)
	req.NoError(err)
}

func TestUserRepository_AcceptFriendRequest_Unknown(t *testing.T) {
	req := require.New(t)
	_, _, badgerDB, blugeWriter, err := db.SetupBenchmark(t.TempDir())
	req.NoError(err)
	defer db.CleanupDB(badgerDB, blugeWriter)

	repo := NewUserRepository(badgerDB)
	bob, err := repo.CreateUser("Bob", "bob@example.com", "h")
	req.NoError(err)

	req.ErrorIs(repo.AcceptFriendRequest(bob.ID, uuid.New()), errors.ErrRequestNotFound)
}

// Accept and reject racing on the same request must resolve to exactly one
// winner. The loser either sees not-found or a transaction conflict, never a
// half-applied graph.
func TestUserRepository_ConcurrentRespond(t *testing.T) {
	req := require.New(t)
	_, _, badgerDB, blugeWriter, err := db.SetupBenchmark(t.TempDir())
	req.NoError(err)
	defer db.CleanupDB(badgerDB, blugeWriter)

	repo := NewUserRepository(badgerDB)
	alice, err := repo.CreateUser("Alice", "alice@example.com", "h")
	req.NoError(err)
	bob, err := repo.CreateUser("Bob", "bob@example.com", "h")
	req.NoError(err)

	requestID, err := repo.SendFriendRequest(alice.ID, bob.ID)
	req.NoError(err)

	var wg sync.WaitGroup
	outcomes := make(chan error, 2)
	for i := 0; i < 2; i++ {
		accept := i == 0
		wg.Add(1)
		go func() {
			defer wg.Done()
			if accept {
				outcomes <- repo.AcceptFriendRequest(bob.ID, requestID)
			} else {
				outcomes <- repo.RejectFriendRequest(bob.ID, requestID)
			}
		}()
	}
	wg.Wait()
	close(outcomes)

	var wins int
	for err := range outcomes {
		if err == nil {
			wins++
			continue
		}
		req.True(
			stderrors.Is(err, errors.ErrRequestNotFound) || stderrors.Is(err, errors.ErrGraphConflict),
			"unexpected outcome: %v", err)
	}
	req.Equal(1, wins)

	// Either way the graph stayed consistent
	bobFriends, bobPending, err := repo.ListFriends(bob.ID)
	req.NoError(err)
	req.Empty(bobPending)
	aliceFriends, _, err := repo.ListFriends(alice.ID)
	req.NoError(err)
	req.Equal(len(bobFriends), len(aliceFriends))
}
