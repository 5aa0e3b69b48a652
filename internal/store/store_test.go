package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bilimpath/bilim/internal/session"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "bilim.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSessionRepo_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.SessionRepo()
	ctx := context.Background()

	// Nothing stored yet: invalid session, no error.
	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.False(t, got.Valid())

	sess := session.New("tok-1", "bearer", session.RoleStudent)
	require.NoError(t, repo.Save(ctx, sess))

	got, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.True(t, got.Valid())
	assert.Equal(t, sess, got)
}

func TestSessionRepo_SaveReplaces(t *testing.T) {
	s := openTestStore(t)
	repo := s.SessionRepo()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, session.New("tok-1", "bearer", session.RoleStudent)))
	require.NoError(t, repo.Save(ctx, session.New("tok-2", "bearer", session.RoleTeacher)))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-2", got.AccessToken)
	assert.Equal(t, session.RoleTeacher, got.Role)
}

func TestSessionRepo_Clear(t *testing.T) {
	s := openTestStore(t)
	repo := s.SessionRepo()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, session.New("tok-1", "", session.RoleStudent)))
	require.NoError(t, repo.Clear(ctx))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.False(t, got.Valid())
}

func TestAttemptRepo_RecordAndRecent(t *testing.T) {
	s := openTestStore(t)
	repo := s.AttemptRepo()
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Record(ctx, Attempt{
			ExamID:         "ex",
			Title:          "Fractions",
			Flow:           FlowTopic,
			Score:          float64(50 + i),
			CorrectCount:   i,
			TotalQuestions: 5,
			TakenAt:        base.Add(time.Duration(i) * time.Minute),
		}))
	}

	got, err := repo.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	// Newest first.
	assert.Equal(t, 52.0, got[0].Score)
	assert.Equal(t, 51.0, got[1].Score)
	assert.NotEmpty(t, got[0].ID)
}
