//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"parklot/internal/domain/reservation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOpenReservation(t *testing.T, parkingTime time.Time, rateCents int64) *reservation.Reservation {
	t.Helper()
	rate, err := reservation.NewMoney(rateCents)
	require.NoError(t, err)
	return reservation.NewReservation(uuid.New(), uuid.New(), uuid.New(), 1, parkingTime, rate)
}

func TestReservation(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("基本成功ケース", func(t *testing.T) {
		r := newOpenReservation(t, base, 1000)

		assert.True(t, r.IsOpen())
		assert.Equal(t, reservation.StatusOpen, r.Status())
		assert.Nil(t, r.LeavingTime())
		assert.True(t, r.Cost().IsZero())
	})

	t.Run("クローズで退出時刻と料金が確定する", func(t *testing.T) {
		r := newOpenReservation(t, base, 1000)

		cost, err := r.Close(base.Add(90 * time.Minute))
		require.NoError(t, err)

		assert.Equal(t, int64(1500), cost.Cents())
		assert.False(t, r.IsOpen())
		assert.Equal(t, reservation.StatusClosed, r.Status())
		require.NotNil(t, r.LeavingTime())
		assert.Equal(t, base.Add(90*time.Minute), *r.LeavingTime())
		assert.Equal(t, int64(1500), r.Cost().Cents())
	})

	t.Run("二重クローズNG", func(t *testing.T) {
		r := newOpenReservation(t, base, 1000)

		_, err := r.Close(base.Add(time.Hour))
		require.NoError(t, err)

		_, err = r.Close(base.Add(2 * time.Hour))
		require.ErrorIs(t, err, reservation.ErrAlreadyClosed)

		// First close sticks
		assert.Equal(t, int64(1000), r.Cost().Cents())
		assert.Equal(t, base.Add(time.Hour), *r.LeavingTime())
	})

	t.Run("入庫前の退出時刻NG", func(t *testing.T) {
		r := newOpenReservation(t, base, 1000)

		_, err := r.Close(base.Add(-time.Minute))
		require.ErrorIs(t, err, reservation.ErrLeavingBeforeStart)
		assert.True(t, r.IsOpen())
	})

	t.Run("同時刻クローズはゼロ請求", func(t *testing.T) {
		r := newOpenReservation(t, base, 1000)

		cost, err := r.Close(base)
		require.NoError(t, err)
		assert.True(t, cost.IsZero())
		assert.False(t, r.IsOpen())
	})
}

func TestCostCents(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		duration  time.Duration
		rateCents int64
		want      int64
	}{
		{"1時間ちょうど", time.Hour, 1000, 1000},
		{"90分は1.5時間分", 90 * time.Minute, 1000, 1500},
		{"2時間", 2 * time.Hour, 1000, 2000},
		{"1分単位の端数も課金", time.Minute, 6000, 100},
		{"セント未満は四捨五入切り上げ側", 30 * time.Minute, 1, 1},
		{"セント未満は四捨五入切り捨て側", 10 * time.Minute, 1, 0},
		{"ゼロ時間はゼロ", 0, 1000, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := reservation.CostCents(base, base.Add(tt.duration), tt.rateCents)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("負の経過時間はゼロ", func(t *testing.T) {
		got := reservation.CostCents(base, base.Add(-time.Hour), 1000)
		assert.Equal(t, int64(0), got)
	})
}

func TestMoney(t *testing.T) {
	t.Run("負の金額NG", func(t *testing.T) {
		_, err := reservation.NewMoney(-1)
		require.ErrorIs(t, err, reservation.ErrNegativeMoney)
	})

	t.Run("加算と単位換算", func(t *testing.T) {
		a, _ := reservation.NewMoney(1050)
		b, _ := reservation.NewMoney(450)
		sum := a.Add(b)
		assert.Equal(t, int64(1500), sum.Cents())
		assert.InDelta(t, 15.0, sum.Units(), 0.0001)
	})
}
