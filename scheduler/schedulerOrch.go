package scheduler

import (
	"github.com/google/logger"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"megaDeOuro/scheduler/scheduler_jobs"
	"megaDeOuro/services/extService"
)

// SetupCron wires the background jobs: hourly draw-result refresh and a
// half-hourly stale-payment report.
func SetupCron(db *gorm.DB, results *extService.Client) *cron.Cron {
	cronService := cron.New(cron.WithSeconds())

	_, err := cronService.AddFunc("0 5 * * * *", func() {
		// Five past every hour: the feed updates on draw nights
		err := scheduler_jobs.CheckDrawResult(db, results)
		if err != nil {
			logger.Errorf("CheckDrawResult: %v", err)
		}
	})
	if err != nil {
		logger.Errorf("erro ao agendar CheckDrawResult: %v", err)
	}

	_, err = cronService.AddFunc("0 */30 * * * *", func() {
		err := scheduler_jobs.CheckStalePayments(db)
		if err != nil {
			logger.Errorf("CheckStalePayments: %v", err)
		}
	})
	if err != nil {
		logger.Errorf("erro ao agendar CheckStalePayments: %v", err)
	}

	cronService.Start()
	return cronService
}
