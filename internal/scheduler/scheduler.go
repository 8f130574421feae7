package scheduler

import (
	"context"
	"time"

	"fundihub/internal/usecase"

	"github.com/go-co-op/gocron/v2"
	"github.com/sirupsen/logrus"
)

// Scheduler runs the periodic maintenance jobs: advancing bookings whose
// scheduled times have passed and expiring lapsed worker subscriptions.
type Scheduler struct {
	log            *logrus.Logger
	bookingUsecase usecase.BookingUsecase
	workerUsecase  usecase.WorkerUsecase
	sweepInterval  time.Duration
	sched          gocron.Scheduler
}

func NewScheduler(
	log *logrus.Logger,
	bookingUsecase usecase.BookingUsecase,
	workerUsecase usecase.WorkerUsecase,
	sweepInterval time.Duration,
) (*Scheduler, error) {
	if sweepInterval <= 0 {
		sweepInterval = 24 * time.Hour
	}

	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	return &Scheduler{
		log:            log,
		bookingUsecase: bookingUsecase,
		workerUsecase:  workerUsecase,
		sweepInterval:  sweepInterval,
		sched:          sched,
	}, nil
}

// Start registers the jobs and begins running them. Both jobs also run
// immediately so a restart catches up on anything missed while down.
func (s *Scheduler) Start() error {
	_, err := s.sched.NewJob(
		gocron.DurationJob(s.sweepInterval),
		gocron.NewTask(s.sweepBookings),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return err
	}

	_, err = s.sched.NewJob(
		gocron.DurationJob(s.sweepInterval),
		gocron.NewTask(s.expireSubscriptions),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return err
	}

	s.sched.Start()
	s.log.Infof("Scheduler started, sweep interval %s", s.sweepInterval)
	return nil
}

func (s *Scheduler) Stop() error {
	return s.sched.Shutdown()
}

func (s *Scheduler) sweepBookings() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	result, err := s.bookingUsecase.SweepTick(ctx, time.Now())
	if err != nil {
		s.log.Warnf("Booking sweep failed: %+v", err)
		return
	}
	s.log.Infof("Booking sweep: evaluated=%d advanced=%d skipped=%d failed=%d",
		result.Evaluated, result.Advanced, result.Skipped, result.Failed)
}

func (s *Scheduler) expireSubscriptions() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if _, err := s.workerUsecase.ExpireLapsedSubscriptions(ctx, time.Now()); err != nil {
		s.log.Warnf("Subscription expiry sweep failed: %+v", err)
	}
}
