package users_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordladder/assets"
	"github.com/robalobadob/wordladder/internal/db"
	"github.com/robalobadob/wordladder/internal/users"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	sqlDB, err := db.Open(filepath.Join(t.TempDir(), "users.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.Migrate(context.Background(), sqlDB, assets.Migrations()))
	return sqlDB
}

func TestCreateAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	st := users.NewStore(openDB(t))

	u, err := st.Create(ctx, users.Credentials{Username: "  ladder_fan ", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, "ladder_fan", u.Username)
	assert.NotEqual(t, "password1", u.PasswordHash)

	_, err = st.Create(ctx, users.Credentials{Username: "LADDER_FAN", Password: "password2"})
	require.ErrorIs(t, err, users.ErrUsernameTaken)

	got, err := st.Authenticate(ctx, users.Credentials{Username: "Ladder_Fan", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = st.Authenticate(ctx, users.Credentials{Username: "ladder_fan", Password: "wrong-pass"})
	require.ErrorIs(t, err, users.ErrInvalidCredentials)
	_, err = st.Authenticate(ctx, users.Credentials{Username: "ghost", Password: "password1"})
	require.ErrorIs(t, err, users.ErrInvalidCredentials)

	_, err = st.ByID(ctx, "missing")
	require.ErrorIs(t, err, users.ErrNotFound)
}

func TestValidate(t *testing.T) {
	st := users.NewStore(openDB(t))
	cases := []struct {
		name string
		c    users.Credentials
		ok   bool
	}{
		{"valid", users.Credentials{Username: "abc_123", Password: "12345678"}, true},
		{"short name", users.Credentials{Username: "ab", Password: "12345678"}, false},
		{"bad chars", users.Credentials{Username: "a-b-c", Password: "12345678"}, false},
		{"short password", users.Credentials{Username: "abc", Password: "1234"}, false},
		{"empty", users.Credentials{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := st.Validate(tc.c)
			if tc.ok {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
	assert.EqualError(t, st.Validate(users.Credentials{Username: "a-b-c", Password: "12345678"}),
		"username: letters, numbers, underscore only")
}

func TestGameHistory(t *testing.T) {
	ctx := context.Background()
	st := users.NewStore(openDB(t))

	u, err := st.Create(ctx, users.Credentials{Username: "walker", Password: "password1"})
	require.NoError(t, err)

	anon := users.Owner{AnonymousID: "anon-1"}
	rec := users.GameRecord{
		ID: "g1", Start: "cold", Target: "warm", Difficulty: "medium", Strategy: "astar",
		OptimalMoves: 4, StartedAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, st.RecordGame(ctx, anon, rec))

	n, err := st.ClaimAnonymous(ctx, "anon-1", u.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	owner := users.Owner{UserID: u.ID}
	rec.Moves, rec.Hints, rec.Score = 5, 1, 70
	require.NoError(t, st.FinishGame(ctx, owner, rec))

	rec2 := users.GameRecord{ID: "g2", Start: "cat", Target: "dog", Difficulty: "easy", Strategy: "bfs",
		OptimalMoves: 3, StartedAt: time.Now()}
	require.NoError(t, st.RecordGame(ctx, owner, rec2))
	rec2.Moves, rec2.Score = 3, 100
	require.NoError(t, st.FinishGame(ctx, owner, rec2))

	err = st.FinishGame(ctx, users.Owner{UserID: u.ID}, users.GameRecord{ID: "nope"})
	require.ErrorIs(t, err, users.ErrNotFound)

	got, err := st.ByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.GamesPlayed)
	assert.Equal(t, 2, got.Wins)
	assert.Equal(t, 100, got.BestScore)

	games, err := st.RecentGames(ctx, u.ID, 0)
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, "g2", games[0].ID)
	assert.Equal(t, "won", games[1].Status)
	assert.Equal(t, 70, games[1].Score)
	require.NotNil(t, games[1].FinishedAt)
}

func TestGamesPlayedCountsUnfinishedGames(t *testing.T) {
	ctx := context.Background()
	st := users.NewStore(openDB(t))

	u, err := st.Create(ctx, users.Credentials{Username: "climber", Password: "password1"})
	require.NoError(t, err)
	owner := users.Owner{UserID: u.ID}

	for _, id := range []string{"g1", "g2"} {
		require.NoError(t, st.RecordGame(ctx, owner, users.GameRecord{
			ID: id, Start: "cold", Target: "warm", Difficulty: "medium", Strategy: "bfs",
			OptimalMoves: 4, StartedAt: time.Now(),
		}))
	}
	require.NoError(t, st.FinishGame(ctx, owner, users.GameRecord{ID: "g2", Moves: 5, Score: 80}))

	got, err := st.ByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.GamesPlayed)
	assert.Equal(t, 1, got.Wins)
	assert.Equal(t, 80, got.BestScore)

	// a guest win claimed later counts as played and won
	anon := users.Owner{AnonymousID: "anon-9"}
	require.NoError(t, st.RecordGame(ctx, anon, users.GameRecord{
		ID: "g3", Start: "cat", Target: "bit", Difficulty: "easy", Strategy: "astar",
		OptimalMoves: 2, StartedAt: time.Now(),
	}))
	require.NoError(t, st.FinishGame(ctx, anon, users.GameRecord{ID: "g3", Moves: 2, Score: 100}))
	n, err := st.ClaimAnonymous(ctx, "anon-9", u.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	got, err = st.ByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.GamesPlayed)
	assert.Equal(t, 2, got.Wins)
	assert.Equal(t, 100, got.BestScore)
}

func TestTokens(t *testing.T) {
	tk := users.Tokens{Secret: []byte("s3cret"), TTL: time.Hour}

	raw, exp, err := tk.Sign("id-1", "walker")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	c, err := tk.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, users.Claims{ID: "id-1", Username: "walker"}, c)

	_, err = users.Tokens{Secret: []byte("other")}.Parse(raw)
	require.ErrorIs(t, err, users.ErrInvalidToken)

	expired := users.Tokens{Secret: []byte("s3cret"), TTL: -time.Hour}
	raw, _, err = expired.Sign("id-1", "walker")
	require.NoError(t, err)
	_, err = tk.Parse(raw)
	require.ErrorIs(t, err, users.ErrInvalidToken)

	_, err = tk.Parse("not-a-token")
	require.ErrorIs(t, err, users.ErrInvalidToken)
}
