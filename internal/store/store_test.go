package store_test

import (
	"context"
	"testing"

	"watchmatch/backend/internal/models"
	"watchmatch/backend/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setup in-memory DB
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	err = database.AutoMigrate(&models.User{}, &models.SwipeRecord{}, &models.Match{}, &models.PartnerRequest{})
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return database
}

func createUser(t *testing.T, st *store.Store, username string) *models.User {
	t.Helper()
	user, err := st.CreateUser(context.Background(), username, "hash", nil)
	require.NoError(t, err)
	return user
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	st := store.New(setupTestDB(t))

	_, err := st.CreateUser(ctx, "alice", "hash", nil)
	assert.NoError(t, err)

	_, err = st.CreateUser(ctx, "alice", "otherhash", nil)
	assert.ErrorIs(t, err, store.ErrUsernameTaken)
}

func TestCreateUserStartsUnpaired(t *testing.T) {
	st := store.New(setupTestDB(t))
	user := createUser(t, st, "alice")
	assert.Nil(t, user.PartnerID)
}

func TestGetUserByUsernameExactMatch(t *testing.T) {
	ctx := context.Background()
	st := store.New(setupTestDB(t))
	createUser(t, st, "Alice")

	found, err := st.GetUserByUsername(ctx, "Alice")
	assert.NoError(t, err)
	assert.Equal(t, "Alice", found.Username)

	_, err = st.GetUserByUsername(ctx, "alice")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUpdateUserPreferencesReplaces(t *testing.T) {
	ctx := context.Background()
	st := store.New(setupTestDB(t))
	user := createUser(t, st, "alice")

	_, err := st.UpdateUserPreferences(ctx, user.ID, &models.Preferences{
		Genres:    []string{"Horror"},
		Platforms: []string{"Netflix"},
	})
	require.NoError(t, err)

	// Full replacement, not a merge: platforms disappear.
	updated, err := st.UpdateUserPreferences(ctx, user.ID, &models.Preferences{Genres: []string{"Comedy"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Comedy"}, updated.Preferences.Genres)
	assert.Empty(t, updated.Preferences.Platforms)

	reloaded, err := st.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Comedy"}, reloaded.Preferences.Genres)
	assert.Empty(t, reloaded.Preferences.Platforms)
}

func TestUpdateUserPreferencesMissingUser(t *testing.T) {
	st := store.New(setupTestDB(t))
	_, err := st.UpdateUserPreferences(context.Background(), 999, &models.Preferences{})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestMatchingMovieIDsEmptyWithoutSwipes(t *testing.T) {
	ctx := context.Background()
	st := store.New(setupTestDB(t))
	a := createUser(t, st, "alice")
	b := createUser(t, st, "bob")

	ids, err := st.MatchingMovieIDs(ctx, a.ID, b.ID)
	assert.NoError(t, err)
	assert.Empty(t, ids)
}

func TestMatchingMovieIDsDeduplicates(t *testing.T) {
	ctx := context.Background()
	st := store.New(setupTestDB(t))
	a := createUser(t, st, "alice")
	b := createUser(t, st, "bob")

	// alice liked 42 twice, bob once; both disliked 7.
	for _, swipe := range []struct {
		userID uint
		tmdbID int
		liked  bool
	}{
		{a.ID, 42, true},
		{a.ID, 42, true},
		{b.ID, 42, true},
		{a.ID, 7, false},
		{b.ID, 7, false},
		{a.ID, 9, true},
	} {
		_, err := st.AddSwipe(ctx, swipe.userID, swipe.tmdbID, swipe.liked)
		require.NoError(t, err)
	}

	ids, err := st.MatchingMovieIDs(ctx, a.ID, b.ID)
	assert.NoError(t, err)
	assert.Equal(t, []int{42}, ids)

	// order of arguments does not matter
	ids, err = st.MatchingMovieIDs(ctx, b.ID, a.ID)
	assert.NoError(t, err)
	assert.Equal(t, []int{42}, ids)
}

func TestPairUsersSymmetric(t *testing.T) {
	ctx := context.Background()
	st := store.New(setupTestDB(t))
	a := createUser(t, st, "alice")
	b := createUser(t, st, "bob")

	require.NoError(t, st.PairUsers(ctx, a.ID, b.ID))

	reloadedA, err := st.GetUser(ctx, a.ID)
	require.NoError(t, err)
	reloadedB, err := st.GetUser(ctx, b.ID)
	require.NoError(t, err)

	require.NotNil(t, reloadedA.PartnerID)
	require.NotNil(t, reloadedB.PartnerID)
	assert.Equal(t, b.ID, *reloadedA.PartnerID)
	assert.Equal(t, a.ID, *reloadedB.PartnerID)
}

func TestPairUsersMissingUserLeavesNoPartialPairing(t *testing.T) {
	ctx := context.Background()
	st := store.New(setupTestDB(t))
	a := createUser(t, st, "alice")

	err := st.PairUsers(ctx, a.ID, 999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	reloaded, err := st.GetUser(ctx, a.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.PartnerID)
}

func TestSetPartnerClears(t *testing.T) {
	ctx := context.Background()
	st := store.New(setupTestDB(t))
	a := createUser(t, st, "alice")
	b := createUser(t, st, "bob")
	require.NoError(t, st.PairUsers(ctx, a.ID, b.ID))

	updated, err := st.SetPartner(ctx, a.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, updated.PartnerID)
}

func TestRecordSwipeCreatesSingleMatch(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	st := store.New(db)
	a := createUser(t, st, "alice")
	b := createUser(t, st, "bob")
	require.NoError(t, st.PairUsers(ctx, a.ID, b.ID))

	// bob liked 42 first; no partner match yet from his side alone
	_, match, err := st.RecordSwipe(ctx, b.ID, 42, true)
	require.NoError(t, err)
	assert.Nil(t, match)

	// alice likes 42 -> match
	swipe, match, err := st.RecordSwipe(ctx, a.ID, 42, true)
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, 42, swipe.TmdbID)
	assert.Equal(t, 42, match.TmdbID)
	assert.ElementsMatch(t, []uint{a.ID, b.ID}, []uint{match.User1ID, match.User2ID})

	// repeat swipes must not create a duplicate row or report a new match
	_, match, err = st.RecordSwipe(ctx, a.ID, 42, true)
	require.NoError(t, err)
	assert.Nil(t, match)
	_, match, err = st.RecordSwipe(ctx, b.ID, 42, true)
	require.NoError(t, err)
	assert.Nil(t, match)

	var count int64
	require.NoError(t, db.Model(&models.Match{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRecordSwipeWithoutPartner(t *testing.T) {
	ctx := context.Background()
	st := store.New(setupTestDB(t))
	a := createUser(t, st, "alice")
	b := createUser(t, st, "bob")

	_, _, err := st.RecordSwipe(ctx, b.ID, 42, true)
	require.NoError(t, err)

	// both liked 42, but the users are not paired
	_, match, err := st.RecordSwipe(ctx, a.ID, 42, true)
	require.NoError(t, err)
	assert.Nil(t, match)
}

func TestRecordSwipeDislikeNeverMatches(t *testing.T) {
	ctx := context.Background()
	st := store.New(setupTestDB(t))
	a := createUser(t, st, "alice")
	b := createUser(t, st, "bob")
	require.NoError(t, st.PairUsers(ctx, a.ID, b.ID))

	_, _, err := st.RecordSwipe(ctx, b.ID, 42, true)
	require.NoError(t, err)

	_, match, err := st.RecordSwipe(ctx, a.ID, 42, false)
	require.NoError(t, err)
	assert.Nil(t, match)
}

func TestCreateMatchDeduplicatesUnorderedPair(t *testing.T) {
	ctx := context.Background()
	st := store.New(setupTestDB(t))
	a := createUser(t, st, "alice")
	b := createUser(t, st, "bob")

	first, created, err := st.CreateMatch(ctx, 42, a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, created)

	// same pair in reverse order resolves to the existing row
	second, created, err := st.CreateMatch(ctx, 42, b.ID, a.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	// a different movie is a fresh match
	_, created, err = st.CreateMatch(ctx, 7, a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, created)
}

func TestMatchesForEitherSideInsertionOrder(t *testing.T) {
	ctx := context.Background()
	st := store.New(setupTestDB(t))
	a := createUser(t, st, "alice")
	b := createUser(t, st, "bob")
	c := createUser(t, st, "carol")

	_, _, err := st.CreateMatch(ctx, 42, a.ID, b.ID)
	require.NoError(t, err)
	_, _, err = st.CreateMatch(ctx, 7, b.ID, a.ID)
	require.NoError(t, err)
	_, _, err = st.CreateMatch(ctx, 9, b.ID, c.ID)
	require.NoError(t, err)

	matches, err := st.MatchesFor(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, 42, matches[0].TmdbID)
	assert.Equal(t, 7, matches[1].TmdbID)

	matches, err = st.MatchesFor(ctx, b.ID)
	require.NoError(t, err)
	assert.Len(t, matches, 3)
}

func TestPartnerRequestLifecycle(t *testing.T) {
	ctx := context.Background()
	st := store.New(setupTestDB(t))
	alice := createUser(t, st, "alice")
	bob := createUser(t, st, "bob")

	request, err := st.CreatePartnerRequest(ctx, alice.ID, "bob")
	require.NoError(t, err)
	assert.Equal(t, models.RequestPending, request.Status)

	// visible to both the sender and the receiver-by-username
	forSender, err := st.PartnerRequestsFor(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, forSender, 1)

	forReceiver, err := st.PartnerRequestsFor(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, forReceiver, 1)
	assert.Equal(t, request.ID, forReceiver[0].ID)

	updated, err := st.UpdatePartnerRequestStatus(ctx, request.ID, models.RequestAccepted)
	require.NoError(t, err)
	assert.Equal(t, models.RequestAccepted, updated.Status)

	// responded requests remain visible with their terminal status
	forReceiver, err = st.PartnerRequestsFor(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, forReceiver, 1)
	assert.Equal(t, models.RequestAccepted, forReceiver[0].Status)
}

func TestPartnerRequestVisibilityFollowsCurrentUsername(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	st := store.New(db)
	alice := createUser(t, st, "alice")
	bob := createUser(t, st, "bob")

	_, err := st.CreatePartnerRequest(ctx, alice.ID, "bob")
	require.NoError(t, err)

	// the receiver renames; the pending request no longer resolves to them
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", bob.ID).Update("username", "robert").Error)

	forBob, err := st.PartnerRequestsFor(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, forBob)

	// a new holder of the old username inherits the request
	carol, err := st.CreateUser(ctx, "bob", "hash", nil)
	require.NoError(t, err)
	forCarol, err := st.PartnerRequestsFor(ctx, carol.ID)
	require.NoError(t, err)
	assert.Len(t, forCarol, 1)
}

func TestUpdatePartnerRequestStatusMissing(t *testing.T) {
	st := store.New(setupTestDB(t))
	_, err := st.UpdatePartnerRequestStatus(context.Background(), 999, models.RequestRejected)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
