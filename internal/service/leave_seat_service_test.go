package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-schedule-engine/internal/dto"
	"github.com/noah-isme/sma-schedule-engine/internal/models"
)

func newLeaveSeatService(fixture *strategyFixture, now time.Time, lock WeekLocker) LeaveSeatService {
	seats := &memLeaveSeatRepo{s: fixture.store}
	templates := &memFixedSeatRepo{s: fixture.store}
	strategy := NewLeaveSeatStrategy(seats, fixture.slots, fixture.schedules, testLogger())
	gate := NewApplyGate(20, 40, fixedClock(now))

	return NewLeaveSeatService(seats, templates, strategy, gate, lock, validator.New(), testLogger())
}

func TestCreateLeaveSeatAppliesImmediately(t *testing.T) {
	fixture := newStrategyFixture(t,
		models.Student{ID: 1, Name: "Kim Minjun", Year: 2026, Grade: 1, ClassNumber: 1},
		models.Student{ID: 2, Name: "Lee Seoyeon", Year: 2026, Grade: 1, ClassNumber: 2},
	)
	locker := &noopLock{}
	svc := newLeaveSeatService(fixture, testMonday.Add(9*time.Hour), locker)

	seat, err := svc.CreateLeaveSeat(context.Background(), dto.LeaveSeatRequest{
		RoomID:     105,
		Day:        "2026-03-03",
		Period:     "SEVENTH",
		Cause:      "counselling",
		StudentIDs: []uint{1, 2},
	})
	require.NoError(t, err)
	require.NotZero(t, seat.ID)
	require.Equal(t, 1, locker.acquired)

	tuesday := testMonday.AddDate(0, 0, 1)
	for _, studentID := range []uint{1, 2} {
		layers := fixture.layersAt(t, studentID, tuesday, models.PeriodSeventh)
		require.Len(t, layers, 1)
		require.Equal(t, models.LayerLeaveSeat, layers[0].Type)
		require.Equal(t, seat.ID, *layers[0].LeaveSeatID)
	}
}

func TestCreateLeaveSeatDefersFutureWeek(t *testing.T) {
	fixture := newStrategyFixture(t,
		models.Student{ID: 1, Name: "Kim Minjun", Year: 2026, Grade: 1, ClassNumber: 1},
	)
	locker := &noopLock{}
	svc := newLeaveSeatService(fixture, testMonday.Add(9*time.Hour), locker)

	seat, err := svc.CreateLeaveSeat(context.Background(), dto.LeaveSeatRequest{
		RoomID:     105,
		Day:        "2026-03-10",
		Period:     "SEVENTH",
		StudentIDs: []uint{1},
	})
	require.NoError(t, err)
	require.NotZero(t, seat.ID)
	require.Zero(t, locker.acquired)
	require.Zero(t, fixture.totalLayers())
}

func TestCreateLeaveSeatRejectsDuplicatePlace(t *testing.T) {
	fixture := newStrategyFixture(t,
		models.Student{ID: 1, Name: "Kim Minjun", Year: 2026, Grade: 1, ClassNumber: 1},
	)
	svc := newLeaveSeatService(fixture, testMonday.Add(9*time.Hour), &noopLock{})
	payload := dto.LeaveSeatRequest{
		RoomID:     105,
		Day:        "2026-03-03",
		Period:     "SEVENTH",
		StudentIDs: []uint{1},
	}

	_, err := svc.CreateLeaveSeat(context.Background(), payload)
	require.NoError(t, err)

	_, err = svc.CreateLeaveSeat(context.Background(), payload)
	require.ErrorIs(t, err, ErrLeaveSeatExists)
}

func TestCreateLeaveSeatRequiresRoster(t *testing.T) {
	fixture := newStrategyFixture(t)
	svc := newLeaveSeatService(fixture, testMonday.Add(9*time.Hour), &noopLock{})

	_, err := svc.CreateLeaveSeat(context.Background(), dto.LeaveSeatRequest{
		RoomID: 105,
		Day:    "2026-03-03",
		Period: "SEVENTH",
	})
	require.Error(t, err)
	require.Empty(t, fixture.store.seats)
}

func TestCreateFixedLeaveSeatPersistsTemplateOnly(t *testing.T) {
	fixture := newStrategyFixture(t,
		models.Student{ID: 1, Name: "Kim Minjun", Year: 2026, Grade: 1, ClassNumber: 1},
	)
	svc := newLeaveSeatService(fixture, testMonday.Add(9*time.Hour), &noopLock{})

	template, err := svc.CreateFixedLeaveSeat(context.Background(), dto.FixedLeaveSeatRequest{
		RoomID:     105,
		Weekday:    int(time.Wednesday),
		Period:     "EIGHTH_NINTH",
		Cause:      "club duty",
		StudentIDs: []uint{1},
	})
	require.NoError(t, err)
	require.NotZero(t, template.ID)
	require.Len(t, fixture.store.fixedSeats, 1)

	// Templates only materialize during the rollover.
	require.Empty(t, fixture.store.seats)
	require.Zero(t, fixture.totalLayers())
}
