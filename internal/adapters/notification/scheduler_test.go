package notification

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/domain"
)

func TestLocalScheduler(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: One identifier per reminder time", func(t *testing.T) {
		s := NewLocalScheduler()

		ids, err := s.Schedule(ctx, []string{"07:30", "21:00"}, "Read", "20 pages")

		require.NoError(t, err)
		assert.Len(t, ids, 2)
		assert.NotEqual(t, ids[0], ids[1])
		assert.Equal(t, 2, s.Pending())
	})

	t.Run("Success: Cancel removes only the given identifiers", func(t *testing.T) {
		s := NewLocalScheduler()

		ids, err := s.Schedule(ctx, []string{"07:30", "12:00", "21:00"}, "Hydrate", "")
		require.NoError(t, err)

		require.NoError(t, s.Cancel(ctx, ids[:2]))
		assert.Equal(t, 1, s.Pending())
	})

	t.Run("Success: Cancelling unknown ids is a no-op", func(t *testing.T) {
		s := NewLocalScheduler()
		assert.NoError(t, s.Cancel(ctx, []string{"ghost"}))
	})

	t.Run("Error: Malformed time rejects the whole batch", func(t *testing.T) {
		s := NewLocalScheduler()

		_, err := s.Schedule(ctx, []string{"07:30", "24:61"}, "Read", "")

		assert.Equal(t, domain.ErrInvalidReminder, err)
		assert.Equal(t, 0, s.Pending(), "nothing is registered on a rejected batch")
	})
}
