// Package jobs holds the bot's scheduled maintenance tasks.
package jobs

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/kretovds/company-registry-bot/internal/repositories"
)

// StatsJob logs registry totals once a day at midnight.
type StatsJob struct {
	companyRepo repositories.CompanyRepo
	cron        *cron.Cron
}

func NewStatsJob(repo repositories.CompanyRepo) *StatsJob {
	return &StatsJob{
		companyRepo: repo,
		cron:        cron.New(),
	}
}

func (j *StatsJob) Start() error {
	if _, err := j.cron.AddFunc("0 0 * * *", j.run); err != nil {
		return fmt.Errorf("failed to schedule stats job: %w", err)
	}
	j.cron.Start()
	log.Info().Msg("⏰ Registry stats job scheduled")
	return nil
}

func (j *StatsJob) Stop() {
	j.cron.Stop()
}

func (j *StatsJob) run() {
	companies, attachments, err := j.companyRepo.Stats()
	if err != nil {
		log.Error().Err(err).Msg("failed to collect registry stats")
		return
	}
	log.Info().
		Int64("companies", companies).
		Int64("attachments", attachments).
		Msg("registry stats")
}
