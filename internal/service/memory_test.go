package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/noah-isme/sma-schedule-engine/internal/models"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

// testMonday anchors the fixture week: Monday 2026-03-02 through Sunday
// 2026-03-08.
var testMonday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

// memStore is a shared in-memory backing store for the repository doubles
// used across the service tests.
type memStore struct {
	mu sync.Mutex

	students map[uint]models.Student
	slots    map[uint]*models.StudentSchedule
	layers   map[uint][]models.ScheduleLayer
	rooms    map[int]map[int]uint

	branches       []models.Branch
	selfStudy      []models.SelfStudyConfig
	additional     map[uint]models.AdditionalSelfStudyConfig
	offerings      map[uint]models.AfterSchoolOffering
	reinforcements []models.AfterSchoolReinforcement
	trips          []models.BusinessTrip
	seats          map[uint]*models.LeaveSeat
	fixedSeats     []models.FixedLeaveSeat
	away           []models.AwayRequest
	exits          []models.ExitRequest
	runs           map[uint]*models.RolloverRun

	nextSlotID   uint
	nextLayerID  uint
	nextSeatID   uint
	nextConfigID uint
	nextRunID    uint
}

func newMemStore() *memStore {
	return &memStore{
		students:     make(map[uint]models.Student),
		slots:        make(map[uint]*models.StudentSchedule),
		layers:       make(map[uint][]models.ScheduleLayer),
		rooms:        make(map[int]map[int]uint),
		additional:   make(map[uint]models.AdditionalSelfStudyConfig),
		offerings:    make(map[uint]models.AfterSchoolOffering),
		seats:        make(map[uint]*models.LeaveSeat),
		runs:         make(map[uint]*models.RolloverRun),
		nextSlotID:   1,
		nextLayerID:  1,
		nextSeatID:   1,
		nextConfigID: 1,
		nextRunID:    1,
	}
}

func (m *memStore) addStudent(student models.Student) {
	m.students[student.ID] = student
}

func (m *memStore) addRoom(grade, classNumber int, roomID uint) {
	if m.rooms[grade] == nil {
		m.rooms[grade] = make(map[int]uint)
	}
	m.rooms[grade][classNumber] = roomID
}

func (m *memStore) slotView(slot models.StudentSchedule) models.StudentSchedule {
	if student, ok := m.students[slot.StudentID]; ok {
		view := student
		slot.Student = &view
	}
	return slot
}

// --- StudentScheduleRepository ---

type memSlotRepo struct{ s *memStore }

func (r *memSlotRepo) CreateBatch(ctx context.Context, schedules []models.StudentSchedule) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, schedule := range schedules {
		schedule.ID = r.s.nextSlotID
		r.s.nextSlotID++
		stored := schedule
		r.s.slots[stored.ID] = &stored
	}
	return nil
}

func (r *memSlotRepo) DeleteBetween(ctx context.Context, from, to time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, slot := range r.s.slots {
		if !slot.Day.Before(from) && !slot.Day.After(to) {
			delete(r.s.slots, id)
			delete(r.s.layers, id)
		}
	}
	return nil
}

func (r *memSlotRepo) GetByID(ctx context.Context, id uint) (models.StudentSchedule, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	slot, ok := r.s.slots[id]
	if !ok {
		return models.StudentSchedule{}, gorm.ErrRecordNotFound
	}
	return r.s.slotView(*slot), nil
}

func (r *memSlotRepo) FindBySlot(ctx context.Context, studentID uint, day time.Time, period models.Period) (models.StudentSchedule, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, slot := range r.s.slots {
		if slot.StudentID == studentID && slot.Day.Equal(day) && slot.Period == period {
			return r.s.slotView(*slot), nil
		}
	}
	return models.StudentSchedule{}, gorm.ErrRecordNotFound
}

func (r *memSlotRepo) FindByGradeDayPeriod(ctx context.Context, grade int, day time.Time, period models.Period) ([]models.StudentSchedule, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var result []models.StudentSchedule
	for _, slot := range r.s.slots {
		student, ok := r.s.students[slot.StudentID]
		if !ok || student.Grade != grade {
			continue
		}
		if slot.Day.Equal(day) && slot.Period == period {
			result = append(result, r.s.slotView(*slot))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i].Student, result[j].Student
		if a.ClassNumber != b.ClassNumber {
			return a.ClassNumber < b.ClassNumber
		}
		return a.ID < b.ID
	})
	return result, nil
}

func (r *memSlotRepo) FindByDayPeriod(ctx context.Context, day time.Time, period models.Period) ([]models.StudentSchedule, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var result []models.StudentSchedule
	for _, slot := range r.s.slots {
		if slot.Day.Equal(day) && slot.Period == period {
			result = append(result, r.s.slotView(*slot))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *memSlotRepo) SearchByStudentName(ctx context.Context, query string, day time.Time) ([]models.StudentSchedule, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	needle := strings.ToLower(strings.TrimSpace(query))
	var result []models.StudentSchedule
	for _, slot := range r.s.slots {
		student, ok := r.s.students[slot.StudentID]
		if !ok || !strings.Contains(strings.ToLower(student.Name), needle) {
			continue
		}
		if slot.Day.Equal(day) {
			result = append(result, r.s.slotView(*slot))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].StudentID != result[j].StudentID {
			return result[i].StudentID < result[j].StudentID
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *memSlotRepo) CountBetween(ctx context.Context, from, to time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var total int64
	for _, slot := range r.s.slots {
		if !slot.Day.Before(from) && !slot.Day.After(to) {
			total++
		}
	}
	return total, nil
}

// --- ScheduleLayerRepository ---

type memLayerRepo struct{ s *memStore }

func (r *memLayerRepo) Append(ctx context.Context, ownerID uint, layer *models.ScheduleLayer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	owner, ok := r.s.slots[ownerID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	owner.LayerSeq++
	layer.ID = r.s.nextLayerID
	r.s.nextLayerID++
	layer.StudentScheduleID = ownerID
	layer.StackOrder = owner.LayerSeq
	r.s.layers[ownerID] = append(r.s.layers[ownerID], *layer)
	return nil
}

func (r *memLayerRepo) ListByOwner(ctx context.Context, ownerID uint) ([]models.ScheduleLayer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	layers := append([]models.ScheduleLayer(nil), r.s.layers[ownerID]...)
	sort.Slice(layers, func(i, j int) bool { return layers[i].StackOrder < layers[j].StackOrder })
	return layers, nil
}

func (r *memLayerRepo) ListByOwners(ctx context.Context, ownerIDs []uint) (map[uint][]models.ScheduleLayer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	grouped := make(map[uint][]models.ScheduleLayer, len(ownerIDs))
	for _, id := range ownerIDs {
		if layers, ok := r.s.layers[id]; ok {
			grouped[id] = append([]models.ScheduleLayer(nil), layers...)
		}
	}
	return grouped, nil
}

func (r *memLayerRepo) RemoveByOwnerAndType(ctx context.Context, ownerID uint, layerType models.LayerType) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var kept []models.ScheduleLayer
	for _, layer := range r.s.layers[ownerID] {
		if layer.Type != layerType {
			kept = append(kept, layer)
		}
	}
	r.s.layers[ownerID] = kept
	return nil
}

func (r *memLayerRepo) IsRoomOccupied(ctx context.Context, day time.Time, period models.Period, roomID uint) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for ownerID, layers := range r.s.layers {
		owner, ok := r.s.slots[ownerID]
		if !ok || !owner.Day.Equal(day) || owner.Period != period {
			continue
		}
		for _, layer := range layers {
			if layer.RoomID == nil || *layer.RoomID != roomID {
				continue
			}
			if layer.Type == models.LayerSelfStudy || layer.Type == models.LayerAdditionalSelfStudy {
				return true, nil
			}
		}
	}
	return false, nil
}

// --- directory repositories ---

type memStudentRepo struct{ s *memStore }

func (r *memStudentRepo) FindByYear(ctx context.Context, year int) ([]models.Student, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var result []models.Student
	for _, student := range r.s.students {
		if student.Year == year {
			result = append(result, student)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *memStudentRepo) GetByID(ctx context.Context, id uint) (models.Student, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	student, ok := r.s.students[id]
	if !ok {
		return models.Student{}, gorm.ErrRecordNotFound
	}
	return student, nil
}

type memRoomRepo struct{ s *memStore }

func (r *memRoomRepo) RoomsByGrade(ctx context.Context, grade int) (map[int]uint, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	byClass := make(map[int]uint, len(r.s.rooms[grade]))
	for classNumber, roomID := range r.s.rooms[grade] {
		byClass[classNumber] = roomID
	}
	return byClass, nil
}

func (r *memRoomRepo) GetByID(ctx context.Context, id uint) (models.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for grade, byClass := range r.s.rooms {
		for classNumber, roomID := range byClass {
			if roomID == id {
				return models.Room{ID: id, Grade: grade, ClassNumber: classNumber}, nil
			}
		}
	}
	return models.Room{}, gorm.ErrRecordNotFound
}

type memBranchRepo struct{ s *memStore }

func (r *memBranchRepo) FindActiveBranch(ctx context.Context, date time.Time) (models.Branch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, branch := range r.s.branches {
		if !date.Before(branch.StartDate) && !date.After(branch.EndDate) {
			return branch, nil
		}
	}
	return models.Branch{}, gorm.ErrRecordNotFound
}

// --- activity source repositories ---

type memSelfStudyRepo struct{ s *memStore }

func (r *memSelfStudyRepo) FindByBranch(ctx context.Context, branchID uint) ([]models.SelfStudyConfig, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var result []models.SelfStudyConfig
	for _, config := range r.s.selfStudy {
		if config.BranchID == branchID {
			result = append(result, config)
		}
	}
	return result, nil
}

func (r *memSelfStudyRepo) Create(ctx context.Context, config *models.SelfStudyConfig) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	config.ID = r.s.nextConfigID
	r.s.nextConfigID++
	r.s.selfStudy = append(r.s.selfStudy, *config)
	return nil
}

type memAdditionalRepo struct{ s *memStore }

func (r *memAdditionalRepo) Create(ctx context.Context, config *models.AdditionalSelfStudyConfig) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	config.ID = r.s.nextConfigID
	r.s.nextConfigID++
	r.s.additional[config.ID] = *config
	return nil
}

func (r *memAdditionalRepo) GetByID(ctx context.Context, id uint) (models.AdditionalSelfStudyConfig, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	config, ok := r.s.additional[id]
	if !ok {
		return models.AdditionalSelfStudyConfig{}, gorm.ErrRecordNotFound
	}
	return config, nil
}

func (r *memAdditionalRepo) Delete(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.additional[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.s.additional, id)
	return nil
}

func (r *memAdditionalRepo) FindBetween(ctx context.Context, from, to time.Time) ([]models.AdditionalSelfStudyConfig, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var result []models.AdditionalSelfStudyConfig
	for _, config := range r.s.additional {
		if !config.Day.Before(from) && !config.Day.After(to) {
			result = append(result, config)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

type memAfterSchoolRepo struct{ s *memStore }

func (r *memAfterSchoolRepo) FindOfferingsByBranch(ctx context.Context, branchID uint) ([]models.AfterSchoolOffering, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var result []models.AfterSchoolOffering
	for _, offering := range r.s.offerings {
		if offering.BranchID == branchID {
			result = append(result, offering)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *memAfterSchoolRepo) GetOffering(ctx context.Context, id uint) (models.AfterSchoolOffering, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	offering, ok := r.s.offerings[id]
	if !ok {
		return models.AfterSchoolOffering{}, gorm.ErrRecordNotFound
	}
	return offering, nil
}

func (r *memAfterSchoolRepo) FindReinforcementsBetween(ctx context.Context, from, to time.Time) ([]models.AfterSchoolReinforcement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var result []models.AfterSchoolReinforcement
	for _, reinforcement := range r.s.reinforcements {
		if !reinforcement.ChangeDay.Before(from) && !reinforcement.ChangeDay.After(to) {
			result = append(result, reinforcement)
		}
	}
	return result, nil
}

func (r *memAfterSchoolRepo) CreateReinforcement(ctx context.Context, reinforcement *models.AfterSchoolReinforcement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	reinforcement.ID = r.s.nextConfigID
	r.s.nextConfigID++
	r.s.reinforcements = append(r.s.reinforcements, *reinforcement)
	return nil
}

func (r *memAfterSchoolRepo) HasApprovedTrip(ctx context.Context, offeringID uint, day time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, trip := range r.s.trips {
		if trip.OfferingID == offeringID && trip.Day.Equal(day) && trip.Approved {
			return true, nil
		}
	}
	return false, nil
}

func (r *memAfterSchoolRepo) CreateBusinessTrip(ctx context.Context, trip *models.BusinessTrip) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	trip.ID = r.s.nextConfigID
	r.s.nextConfigID++
	r.s.trips = append(r.s.trips, *trip)
	return nil
}

type memLeaveSeatRepo struct{ s *memStore }

func (r *memLeaveSeatRepo) Create(ctx context.Context, seat *models.LeaveSeat) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	seat.ID = r.s.nextSeatID
	r.s.nextSeatID++
	stored := *seat
	r.s.seats[stored.ID] = &stored
	return nil
}

func (r *memLeaveSeatRepo) GetByID(ctx context.Context, id uint) (models.LeaveSeat, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	seat, ok := r.s.seats[id]
	if !ok {
		return models.LeaveSeat{}, gorm.ErrRecordNotFound
	}
	return *seat, nil
}

func (r *memLeaveSeatRepo) FindBetween(ctx context.Context, from, to time.Time) ([]models.LeaveSeat, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var result []models.LeaveSeat
	for _, seat := range r.s.seats {
		if !seat.Day.Before(from) && !seat.Day.After(to) {
			result = append(result, *seat)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *memLeaveSeatRepo) ExistsAt(ctx context.Context, roomID uint, day time.Time, period models.Period) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, seat := range r.s.seats {
		if seat.RoomID == roomID && seat.Day.Equal(day) && seat.Period == period {
			return true, nil
		}
	}
	return false, nil
}

type memFixedSeatRepo struct{ s *memStore }

func (r *memFixedSeatRepo) Create(ctx context.Context, template *models.FixedLeaveSeat) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	template.ID = r.s.nextConfigID
	r.s.nextConfigID++
	r.s.fixedSeats = append(r.s.fixedSeats, *template)
	return nil
}

func (r *memFixedSeatRepo) List(ctx context.Context) ([]models.FixedLeaveSeat, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]models.FixedLeaveSeat(nil), r.s.fixedSeats...), nil
}

type memAwayRepo struct{ s *memStore }

func (r *memAwayRepo) FindBetween(ctx context.Context, from, to time.Time) ([]models.AwayRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var result []models.AwayRequest
	for _, request := range r.s.away {
		if !request.Day.Before(from) && !request.Day.After(to) {
			result = append(result, request)
		}
	}
	return result, nil
}

func (r *memAwayRepo) Create(ctx context.Context, request *models.AwayRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	request.ID = r.s.nextConfigID
	r.s.nextConfigID++
	r.s.away = append(r.s.away, *request)
	return nil
}

type memExitRepo struct{ s *memStore }

func (r *memExitRepo) FindBetween(ctx context.Context, from, to time.Time) ([]models.ExitRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var result []models.ExitRequest
	for _, request := range r.s.exits {
		if !request.Day.Before(from) && !request.Day.After(to) {
			result = append(result, request)
		}
	}
	return result, nil
}

func (r *memExitRepo) Create(ctx context.Context, request *models.ExitRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	request.ID = r.s.nextConfigID
	r.s.nextConfigID++
	r.s.exits = append(r.s.exits, *request)
	return nil
}

type memRunRepo struct{ s *memStore }

func (r *memRunRepo) Create(ctx context.Context, run *models.RolloverRun) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	run.ID = r.s.nextRunID
	r.s.nextRunID++
	stored := *run
	r.s.runs[stored.ID] = &stored
	return nil
}

func (r *memRunRepo) Finish(ctx context.Context, id uint, status string, counts datatypes.JSONMap, finishedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	run, ok := r.s.runs[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	run.Status = status
	run.Counts = counts
	run.FinishedAt = &finishedAt
	return nil
}

// noopLock satisfies WeekLocker without any real locking.
type noopLock struct {
	acquired int
}

func (l *noopLock) Acquire(ctx context.Context, weekStart time.Time) (func(), error) {
	l.acquired++
	return func() {}, nil
}
