package drawings

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/drawgallery/internal/common"
	"github.com/dmitrijs2005/drawgallery/internal/server/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func newSQLiteRepo(t *testing.T) (*SQLiteRepository, *sql.DB) {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, migrations.Up(context.Background(), db, migrations.SQLite))

	for _, id := range []string{"u1", "u2"} {
		_, err := db.Exec(`INSERT INTO users (id, email, password_hash, created_at) VALUES (?, ?, 'h', '2024-01-01T00:00:00.000000000Z')`,
			id, id+"@example.com")
		require.NoError(t, err)
	}

	repo := NewSQLiteRepository(db)
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	repo.now = clock.now
	return repo, db
}

func TestSQLite_CreateThenFind(t *testing.T) {
	repo, _ := newSQLiteRepo(t)
	ctx := context.Background()

	d, err := repo.Create(ctx, "u1", "cat", "data:image/png;base64,AAA")
	require.NoError(t, err)
	assert.NotEmpty(t, d.ID)
	assert.Equal(t, d.CreatedAt, d.UpdatedAt)

	got, err := repo.FindByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, d.ID, got.ID)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, "cat", got.Name)
	assert.Equal(t, "data:image/png;base64,AAA", got.Content)
	assert.True(t, d.CreatedAt.Equal(got.CreatedAt))
}

func TestSQLite_FindByID_NotFound(t *testing.T) {
	repo, _ := newSQLiteRepo(t)

	_, err := repo.FindByID(context.Background(), "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSQLite_FindAllByOwner_NewestFirstAndScoped(t *testing.T) {
	repo, _ := newSQLiteRepo(t)
	ctx := context.Background()

	first, err := repo.Create(ctx, "u1", "first", "c1")
	require.NoError(t, err)
	_, err = repo.Create(ctx, "u2", "other", "c2")
	require.NoError(t, err)
	third, err := repo.Create(ctx, "u1", "third", "c3")
	require.NoError(t, err)

	list, err := repo.FindAllByOwner(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, third.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
	for _, d := range list {
		assert.Equal(t, "u1", d.UserID)
	}
}

func TestSQLite_FindAllByOwner_SameTimestampUsesInsertOrder(t *testing.T) {
	repo, _ := newSQLiteRepo(t)
	ctx := context.Background()
	fixed := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return fixed }

	a, err := repo.Create(ctx, "u1", "a", "c")
	require.NoError(t, err)
	b, err := repo.Create(ctx, "u1", "b", "c")
	require.NoError(t, err)

	list, err := repo.FindAllByOwner(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, b.ID, list[0].ID)
	assert.Equal(t, a.ID, list[1].ID)
}

func TestSQLite_FindAllByOwner_Empty(t *testing.T) {
	repo, _ := newSQLiteRepo(t)

	list, err := repo.FindAllByOwner(context.Background(), "u1")
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestSQLite_Update_PreservesIdentityFields(t *testing.T) {
	repo, _ := newSQLiteRepo(t)
	ctx := context.Background()

	d, err := repo.Create(ctx, "u1", "cat", "c1")
	require.NoError(t, err)

	u, err := repo.Update(ctx, d.ID, "u1", "dog", "c2")
	require.NoError(t, err)
	assert.Equal(t, d.ID, u.ID)
	assert.Equal(t, "u1", u.UserID)
	assert.Equal(t, "dog", u.Name)
	assert.Equal(t, "c2", u.Content)
	assert.True(t, d.CreatedAt.Equal(u.CreatedAt))
	assert.True(t, u.UpdatedAt.After(d.UpdatedAt))
}

func TestSQLite_Update_ForeignOwnerChangesNothing(t *testing.T) {
	repo, _ := newSQLiteRepo(t)
	ctx := context.Background()

	d, err := repo.Create(ctx, "u1", "cat", "c1")
	require.NoError(t, err)

	_, err = repo.Update(ctx, d.ID, "u2", "stolen", "evil")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	got, err := repo.FindByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "cat", got.Name)
	assert.Equal(t, "c1", got.Content)
	assert.True(t, d.UpdatedAt.Equal(got.UpdatedAt))
}

func TestSQLite_Update_Missing(t *testing.T) {
	repo, _ := newSQLiteRepo(t)

	_, err := repo.Update(context.Background(), "nope", "u1", "n", "c")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSQLite_ClosedDB(t *testing.T) {
	repo, db := newSQLiteRepo(t)
	require.NoError(t, db.Close())

	_, err := repo.FindByID(context.Background(), "x")
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrorNotFound)

	_, err = repo.FindAllByOwner(context.Background(), "u1")
	assert.Error(t, err)
}
