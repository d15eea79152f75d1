package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/sma-schedule-engine/internal/dto"
	"github.com/noah-isme/sma-schedule-engine/internal/models"
	"github.com/noah-isme/sma-schedule-engine/internal/observability"
	"github.com/noah-isme/sma-schedule-engine/internal/repository"
)

// LayerDetail carries the type-specific detail reference for a new layer.
// Exactly one reference matching the layer type must be set; RoomID is
// additionally set on leave-seat layers so occupancy reads can resolve the
// room without loading the seat.
type LayerDetail struct {
	RoomID        *uint
	AfterSchoolID *uint
	LeaveSeatID   *uint
	AwayRequestID *uint
	ExitRequestID *uint
}

// ScheduleService exposes the layer stack operations and the read
// projections other subsystems consume.
type ScheduleService interface {
	AppendLayer(ctx context.Context, ownerID uint, layerType models.LayerType, detail LayerDetail) (models.ScheduleLayer, error)
	ResolveCurrent(ctx context.Context, ownerID uint) (*models.ScheduleLayer, error)
	ResolvePhysicalLocation(ctx context.Context, ownerID uint) (*models.ScheduleLayer, error)
	RemoveLayersByOwnerAndType(ctx context.Context, ownerID uint, layerType models.LayerType) error

	BoardByGradeDayPeriod(ctx context.Context, grade int, day time.Time, period models.Period) ([]dto.RoomGroup, error)
	SearchByStudent(ctx context.Context, query string, day time.Time) ([]dto.StudentScheduleGroup, error)
	RoomOccupancy(ctx context.Context, day time.Time, period models.Period, roomID uint) (dto.RoomOccupancyResponse, error)
	LastTypeByStudent(ctx context.Context, day time.Time, period models.Period) (map[uint]models.LayerType, error)
}

type scheduleService struct {
	slots  repository.StudentScheduleRepository
	layers repository.ScheduleLayerRepository
	logger zerolog.Logger
}

// NewScheduleService constructs a schedule service.
func NewScheduleService(slots repository.StudentScheduleRepository, layers repository.ScheduleLayerRepository, logger zerolog.Logger) ScheduleService {
	return &scheduleService{
		slots:  slots,
		layers: layers,
		logger: logger.With().Str("component", "schedule_service").Logger(),
	}
}

func (s *scheduleService) AppendLayer(ctx context.Context, ownerID uint, layerType models.LayerType, detail LayerDetail) (models.ScheduleLayer, error) {
	layer := models.ScheduleLayer{
		Type:          layerType,
		RoomID:        detail.RoomID,
		AfterSchoolID: detail.AfterSchoolID,
		LeaveSeatID:   detail.LeaveSeatID,
		AwayRequestID: detail.AwayRequestID,
		ExitRequestID: detail.ExitRequestID,
	}

	if err := s.layers.Append(ctx, ownerID, &layer); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ScheduleLayer{}, ErrScheduleNotFound
		}

		return models.ScheduleLayer{}, err
	}

	observability.LayersAppended().WithLabelValues(string(layerType)).Inc()

	return layer, nil
}

func (s *scheduleService) ResolveCurrent(ctx context.Context, ownerID uint) (*models.ScheduleLayer, error) {
	layers, err := s.layers.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	return currentOf(layers), nil
}

func (s *scheduleService) ResolvePhysicalLocation(ctx context.Context, ownerID uint) (*models.ScheduleLayer, error) {
	layers, err := s.layers.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	return physicalOf(layers), nil
}

func (s *scheduleService) RemoveLayersByOwnerAndType(ctx context.Context, ownerID uint, layerType models.LayerType) error {
	return s.layers.RemoveByOwnerAndType(ctx, ownerID, layerType)
}

func (s *scheduleService) BoardByGradeDayPeriod(ctx context.Context, grade int, day time.Time, period models.Period) ([]dto.RoomGroup, error) {
	schedules, err := s.slots.FindByGradeDayPeriod(ctx, grade, day, period)
	if err != nil {
		return nil, err
	}

	layersByOwner, err := s.layersFor(ctx, schedules)
	if err != nil {
		return nil, err
	}

	groups := make([]dto.RoomGroup, 0)
	index := make(map[uint]int)
	var unassigned *dto.RoomGroup

	for _, schedule := range schedules {
		slot := slotResponse(schedule, currentOf(layersByOwner[schedule.ID]))

		if slot.Current == nil || slot.Current.RoomID == nil {
			if unassigned == nil {
				unassigned = &dto.RoomGroup{}
			}
			unassigned.Slots = append(unassigned.Slots, slot)
			continue
		}

		roomID := *slot.Current.RoomID
		i, ok := index[roomID]
		if !ok {
			groups = append(groups, dto.RoomGroup{RoomID: slot.Current.RoomID})
			i = len(groups) - 1
			index[roomID] = i
		}
		groups[i].Slots = append(groups[i].Slots, slot)
	}

	if unassigned != nil {
		groups = append(groups, *unassigned)
	}

	return groups, nil
}

func (s *scheduleService) SearchByStudent(ctx context.Context, query string, day time.Time) ([]dto.StudentScheduleGroup, error) {
	schedules, err := s.slots.SearchByStudentName(ctx, query, day)
	if err != nil {
		return nil, err
	}

	layersByOwner, err := s.layersFor(ctx, schedules)
	if err != nil {
		return nil, err
	}

	groups := make([]dto.StudentScheduleGroup, 0)
	index := make(map[uint]int)

	for _, schedule := range schedules {
		slot := slotResponse(schedule, currentOf(layersByOwner[schedule.ID]))

		i, ok := index[schedule.StudentID]
		if !ok {
			group := dto.StudentScheduleGroup{StudentID: schedule.StudentID}
			if schedule.Student != nil {
				group.StudentName = schedule.Student.Name
			}
			groups = append(groups, group)
			i = len(groups) - 1
			index[schedule.StudentID] = i
		}
		groups[i].Slots = append(groups[i].Slots, slot)
	}

	return groups, nil
}

func (s *scheduleService) RoomOccupancy(ctx context.Context, day time.Time, period models.Period, roomID uint) (dto.RoomOccupancyResponse, error) {
	schedules, err := s.slots.FindByDayPeriod(ctx, day, period)
	if err != nil {
		return dto.RoomOccupancyResponse{}, err
	}

	layersByOwner, err := s.layersFor(ctx, schedules)
	if err != nil {
		return dto.RoomOccupancyResponse{}, err
	}

	result := dto.RoomOccupancyResponse{RoomID: roomID, Day: day, Period: period}

	for _, schedule := range schedules {
		// Occupancy counts resolved physical location: a student whose top
		// layer is AWAY or EXIT still holds their assigned seat.
		physical := physicalOf(layersByOwner[schedule.ID])
		if physical == nil || physical.RoomID == nil || *physical.RoomID != roomID {
			continue
		}

		result.Students = append(result.Students, slotResponse(schedule, physical))
	}

	result.Count = len(result.Students)

	return result, nil
}

func (s *scheduleService) LastTypeByStudent(ctx context.Context, day time.Time, period models.Period) (map[uint]models.LayerType, error) {
	schedules, err := s.slots.FindByDayPeriod(ctx, day, period)
	if err != nil {
		return nil, err
	}

	layersByOwner, err := s.layersFor(ctx, schedules)
	if err != nil {
		return nil, err
	}

	types := make(map[uint]models.LayerType)
	for _, schedule := range schedules {
		if current := currentOf(layersByOwner[schedule.ID]); current != nil {
			types[schedule.StudentID] = current.Type
		}
	}

	return types, nil
}

func (s *scheduleService) layersFor(ctx context.Context, schedules []models.StudentSchedule) (map[uint][]models.ScheduleLayer, error) {
	ids := make([]uint, 0, len(schedules))
	for _, schedule := range schedules {
		ids = append(ids, schedule.ID)
	}

	return s.layers.ListByOwners(ctx, ids)
}

// currentOf returns the layer with the largest stack order, or nil.
func currentOf(layers []models.ScheduleLayer) *models.ScheduleLayer {
	var current *models.ScheduleLayer
	for i := range layers {
		if current == nil || layers[i].StackOrder > current.StackOrder {
			current = &layers[i]
		}
	}

	return current
}

// physicalOf returns the most recent layer whose type keeps the student in
// a room, skipping AWAY and EXIT entries, or nil when none exists.
func physicalOf(layers []models.ScheduleLayer) *models.ScheduleLayer {
	var physical *models.ScheduleLayer
	for i := range layers {
		if !layers[i].Type.Physical() {
			continue
		}
		if physical == nil || layers[i].StackOrder > physical.StackOrder {
			physical = &layers[i]
		}
	}

	return physical
}

func slotResponse(schedule models.StudentSchedule, layer *models.ScheduleLayer) dto.SlotResponse {
	slot := dto.SlotResponse{
		StudentScheduleID: schedule.ID,
		StudentID:         schedule.StudentID,
		Day:               schedule.Day,
		Period:            schedule.Period,
	}
	if schedule.Student != nil {
		slot.StudentName = schedule.Student.Name
	}
	if layer != nil {
		response := dto.NewLayerResponse(*layer)
		slot.Current = &response
	}

	return slot
}
