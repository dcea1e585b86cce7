package notification

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

const cleanupTimeout = 4 * time.Minute

// Cleaner runs retention on a cron schedule. Overlapping runs are skipped.
type Cleaner struct {
	service  *Service
	days     int
	schedule string
	cron     *cron.Cron
}

func NewCleaner(service *Service, days int, schedule string) *Cleaner {
	return &Cleaner{
		service:  service,
		days:     days,
		schedule: schedule,
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
	}
}

// Start registers the job and starts the scheduler. An invalid schedule is returned as an error.
func (c *Cleaner) Start() error {
	if _, err := c.cron.AddFunc(c.schedule, c.run); err != nil {
		return err
	}
	log.Printf("notification_cleanup started schedule=%q retention=%dd", c.schedule, c.days)
	c.cron.Start()
	return nil
}

// Stop waits for a running job to finish.
func (c *Cleaner) Stop() {
	<-c.cron.Stop().Done()
}

func (c *Cleaner) run() {
	ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
	defer cancel()
	c.RunOnce(ctx)
}

func (c *Cleaner) RunOnce(ctx context.Context) int64 {
	n, err := c.service.Cleanup(ctx, c.days)
	if err != nil {
		log.Printf("notification_cleanup_error error=%q", err.Error())
		return 0
	}
	log.Printf("notification_cleanup deleted=%d retention=%dd", n, c.days)
	return n
}
