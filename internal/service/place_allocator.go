package service

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/noah-isme/sma-schedule-engine/internal/models"
	"github.com/noah-isme/sma-schedule-engine/internal/observability"
	"github.com/noah-isme/sma-schedule-engine/internal/repository"
)

// allocatorMaxCandidates bounds the search to the home room plus three
// successors.
const allocatorMaxCandidates = 4

// NextClassNumberFunc yields the class number tried after current. The
// concrete successor rule is a pluggable policy; it must be deterministic
// and cyclic over the grade's class numbers.
type NextClassNumberFunc func(classNumbers []int, current int) int

// CyclicNextClassNumber is the default successor policy: the next class
// number in ascending order, wrapping at the end.
func CyclicNextClassNumber(classNumbers []int, current int) int {
	if len(classNumbers) == 0 {
		return current
	}
	for i, n := range classNumbers {
		if n == current {
			return classNumbers[(i+1)%len(classNumbers)]
		}
	}
	return classNumbers[0]
}

// PlaceAllocator chooses a non-conflicting room for a student at a day and
// period: the home room first, then up to three successor candidates.
type PlaceAllocator interface {
	Allocate(ctx context.Context, day time.Time, period models.Period, grade, classNumber int) (uint, error)
}

type placeAllocator struct {
	rooms  repository.RoomRepository
	layers repository.ScheduleLayerRepository
	next   NextClassNumberFunc
	logger zerolog.Logger
}

// NewPlaceAllocator constructs a place allocator. Passing a nil successor
// policy selects CyclicNextClassNumber.
func NewPlaceAllocator(rooms repository.RoomRepository, layers repository.ScheduleLayerRepository, next NextClassNumberFunc, logger zerolog.Logger) PlaceAllocator {
	if next == nil {
		next = CyclicNextClassNumber
	}

	return &placeAllocator{
		rooms:  rooms,
		layers: layers,
		next:   next,
		logger: logger.With().Str("component", "place_allocator").Logger(),
	}
}

func (a *placeAllocator) Allocate(ctx context.Context, day time.Time, period models.Period, grade, classNumber int) (uint, error) {
	byClass, err := a.rooms.RoomsByGrade(ctx, grade)
	if err != nil {
		return 0, err
	}

	classNumbers := make([]int, 0, len(byClass))
	for n := range byClass {
		classNumbers = append(classNumbers, n)
	}
	sort.Ints(classNumbers)

	candidate := classNumber
	for attempt := 0; attempt < allocatorMaxCandidates; attempt++ {
		roomID, ok := byClass[candidate]
		if ok {
			occupied, err := a.layers.IsRoomOccupied(ctx, day, period, roomID)
			if err != nil {
				return 0, err
			}
			if !occupied {
				return roomID, nil
			}
		}

		candidate = a.next(classNumbers, candidate)
	}

	observability.PlaceAllocationFailures().Inc()
	a.logger.Warn().
		Time("day", day).
		Str("period", string(period)).
		Int("grade", grade).
		Int("class_number", classNumber).
		Msg("place allocation exhausted all candidates")

	return 0, ErrNoAvailablePlace
}
