package token_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-microblog-client/internal/apierrors"
	"github.com/jrsteele09/go-microblog-client/token"
	"github.com/jrsteele09/go-microblog-client/token/memrepo"
)

type testFixture struct {
	durable token.Repo
	session token.Repo
	manager *token.Manager
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	durable := memrepo.New()
	session := memrepo.New()
	manager, err := token.NewManager(durable, session)
	require.NoError(t, err)

	return &testFixture{durable: durable, session: session, manager: manager}
}

func TestNewManagerRequiresRepos(t *testing.T) {
	_, err := token.NewManager(nil, memrepo.New())
	require.Error(t, err)

	_, err = token.NewManager(memrepo.New(), nil)
	require.Error(t, err)
}

func TestSetGetRoundTripDurable(t *testing.T) {
	f := setupTestFixture(t)

	require.NoError(t, f.manager.Set(token.Pair{AccessToken: "a1", RefreshToken: "r1", Persist: true}))

	pair, err := f.manager.Get()
	require.NoError(t, err)
	require.NotNil(t, pair)
	require.Equal(t, "a1", pair.AccessToken)
	require.Equal(t, "r1", pair.RefreshToken)
	require.True(t, pair.Persist)

	sessionPair, err := f.session.Read()
	require.NoError(t, err)
	require.Nil(t, sessionPair)
}

func TestSetGetRoundTripSession(t *testing.T) {
	f := setupTestFixture(t)

	require.NoError(t, f.manager.Set(token.Pair{AccessToken: "a1", RefreshToken: "r1", Persist: false}))

	pair, err := f.manager.Get()
	require.NoError(t, err)
	require.NotNil(t, pair)
	require.False(t, pair.Persist)

	durablePair, err := f.durable.Read()
	require.NoError(t, err)
	require.Nil(t, durablePair)
}

func TestSwitchingScopeClearsTheOther(t *testing.T) {
	f := setupTestFixture(t)

	require.NoError(t, f.manager.Set(token.Pair{AccessToken: "a1", RefreshToken: "r1", Persist: true}))
	require.NoError(t, f.manager.Set(token.Pair{AccessToken: "a2", RefreshToken: "r2", Persist: false}))

	durablePair, err := f.durable.Read()
	require.NoError(t, err)
	require.Nil(t, durablePair)

	pair, err := f.manager.Get()
	require.NoError(t, err)
	require.Equal(t, "a2", pair.AccessToken)
	require.False(t, pair.Persist)
}

func TestGetReturnsNilWhenEmpty(t *testing.T) {
	f := setupTestFixture(t)

	pair, err := f.manager.Get()
	require.NoError(t, err)
	require.Nil(t, pair)
}

func TestUpdatePreservesScope(t *testing.T) {
	f := setupTestFixture(t)

	require.NoError(t, f.manager.Set(token.Pair{AccessToken: "a1", RefreshToken: "r1", Persist: true}))
	require.NoError(t, f.manager.Update("a2", "r2"))

	pair, err := f.durable.Read()
	require.NoError(t, err)
	require.NotNil(t, pair)
	require.Equal(t, "a2", pair.AccessToken)
	require.Equal(t, "r2", pair.RefreshToken)
}

func TestUpdateWithoutTokensFails(t *testing.T) {
	f := setupTestFixture(t)

	err := f.manager.Update("a2", "r2")
	require.ErrorIs(t, err, apierrors.ErrNoToken)
}

func TestClearEmptiesBothScopes(t *testing.T) {
	f := setupTestFixture(t)

	require.NoError(t, f.manager.Set(token.Pair{AccessToken: "a1", Persist: true}))
	require.NoError(t, f.manager.Clear())

	pair, err := f.manager.Get()
	require.NoError(t, err)
	require.Nil(t, pair)

	// Clearing an already-empty store is fine
	require.NoError(t, f.manager.Clear())
}

func TestExpiryReadsExpClaim(t *testing.T) {
	f := setupTestFixture(t)

	expiry := time.Now().Add(time.Hour).Truncate(time.Second)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(expiry),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	require.Equal(t, expiry.Unix(), f.manager.Expiry(signed).Unix())
}

func TestExpiryOpaqueTokenIsZero(t *testing.T) {
	f := setupTestFixture(t)

	require.True(t, f.manager.Expiry("not-a-jwt").IsZero())
	require.False(t, f.manager.Expired("not-a-jwt"))
}

func TestExpired(t *testing.T) {
	f := setupTestFixture(t)

	expiry := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(expiry),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	originalNow := token.NowTimeFunc
	defer func() { token.NowTimeFunc = originalNow }()

	token.NowTimeFunc = func() time.Time { return expiry.Add(-time.Minute) }
	require.False(t, f.manager.Expired(signed))

	token.NowTimeFunc = func() time.Time { return expiry.Add(time.Minute) }
	require.True(t, f.manager.Expired(signed))
}
