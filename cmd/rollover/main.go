package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/sma-schedule-engine/internal/config"
	"github.com/noah-isme/sma-schedule-engine/internal/database"
	"github.com/noah-isme/sma-schedule-engine/internal/lock"
	"github.com/noah-isme/sma-schedule-engine/internal/models"
	"github.com/noah-isme/sma-schedule-engine/internal/repository"
	"github.com/noah-isme/sma-schedule-engine/internal/service"
)

func main() {
	baseFlag := flag.String("base", "", "base date of the week to roll over (YYYY-MM-DD, default: next Monday)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := connectDatabase(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Student{}, &models.Room{}, &models.Branch{},
		&models.StudentSchedule{}, &models.ScheduleLayer{},
		&models.SelfStudyConfig{}, &models.AdditionalSelfStudyConfig{},
		&models.AfterSchoolOffering{}, &models.AfterSchoolEnrollment{},
		&models.AfterSchoolReinforcement{}, &models.BusinessTrip{},
		&models.LeaveSeat{}, &models.LeaveSeatMember{},
		&models.FixedLeaveSeat{}, &models.FixedLeaveSeatMember{},
		&models.AwayRequest{}, &models.ExitRequest{},
		&models.RolloverRun{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = nats.Connect(cfg.NATSURL)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer natsConn.Close()
	}

	studentRepo := repository.NewStudentRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	branchRepo := repository.NewBranchRepository(db)
	slotRepo := repository.NewStudentScheduleRepository(db)
	layerRepo := repository.NewScheduleLayerRepository(db)
	selfStudyRepo := repository.NewSelfStudyConfigRepository(db)
	additionalRepo := repository.NewAdditionalSelfStudyRepository(db)
	afterSchoolRepo := repository.NewAfterSchoolRepository(db)
	leaveSeatRepo := repository.NewLeaveSeatRepository(db)
	fixedSeatRepo := repository.NewFixedLeaveSeatRepository(db)
	awayRepo := repository.NewAwayRequestRepository(db)
	exitRepo := repository.NewExitRequestRepository(db)
	runRepo := repository.NewRolloverRunRepository(db)

	scheduleService := service.NewScheduleService(slotRepo, layerRepo, logger)
	allocator := service.NewPlaceAllocator(roomRepo, layerRepo, nil, logger)
	generator := service.NewGeneratorService(slotRepo, logger)

	strategies := service.NewStrategyComposite(
		service.NewSelfStudyStrategy(branchRepo, selfStudyRepo, slotRepo, scheduleService, allocator, logger),
		service.NewAdditionalSelfStudyStrategy(additionalRepo, slotRepo, scheduleService, allocator, logger),
		service.NewAfterSchoolStrategy(branchRepo, afterSchoolRepo, slotRepo, scheduleService, logger),
		service.NewAfterSchoolReinforcementStrategy(afterSchoolRepo, slotRepo, scheduleService, logger),
		service.NewFixedLeaveSeatStrategy(fixedSeatRepo, leaveSeatRepo, logger),
		service.NewLeaveSeatStrategy(leaveSeatRepo, slotRepo, scheduleService, logger),
		service.NewAwayStrategy(awayRepo, slotRepo, scheduleService, logger),
		service.NewExitStrategy(exitRepo, slotRepo, scheduleService, logger),
	)

	weekLock := lock.NewWeekLock(redisClient, cfg.RolloverLockTTL)
	rollover := service.NewRolloverService(generator, studentRepo, strategies, runRepo, weekLock, natsConn, logger)

	baseDate, err := resolveBaseDate(*baseFlag)
	if err != nil {
		log.Fatalf("invalid base date: %v", err)
	}

	if err := rollover.Run(context.Background(), baseDate); err != nil {
		log.Fatalf("rollover failed: %v", err)
	}
}

func connectDatabase(cfg config.Config) (*gorm.DB, error) {
	if cfg.DatabaseURL != "" {
		return database.ConnectPostgres(cfg.DatabaseURL)
	}

	return database.ConnectSQLite(cfg.SQLitePath)
}

// resolveBaseDate parses the -base flag, defaulting to the Monday after
// the current week.
func resolveBaseDate(value string) (time.Time, error) {
	if value != "" {
		return time.ParseInLocation("2006-01-02", value, time.UTC)
	}

	return service.WeekMonday(time.Now()).AddDate(0, 0, 7), nil
}
