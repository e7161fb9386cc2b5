package idx_test

import (
	"testing"
	"time"

	"github.com/KimuJinsu/go-jwt-auth/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	a := idx.New()
	b := idx.New()

	require.False(t, a.IsZero())
	require.NotEqual(t, a, b)
	require.Less(t, a.String(), b.String(), "IDs should be monotonic")
}

func TestNewAt(t *testing.T) {
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	id := idx.NewAt(at)

	require.WithinDuration(t, at, id.Time(), time.Millisecond)
}

func TestParse(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		id := idx.New()
		parsed, err := idx.Parse(id.String())
		require.NoError(t, err)
		require.Equal(t, id, parsed)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := idx.Parse("")
		require.ErrorIs(t, err, idx.ErrInvalid)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := idx.Parse("not-a-ulid")
		require.ErrorIs(t, err, idx.ErrInvalid)
	})
}
