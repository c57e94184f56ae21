package cron

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/edugenai/paper-analyzer/model"
	"github.com/edugenai/paper-analyzer/services"
)

// CronManager manages all scheduled background jobs
type CronManager struct {
	cron      *cron.Cron
	db        *gorm.DB
	frequency *services.FrequencyService
}

// NewCronManager creates a new cron manager
func NewCronManager(db *gorm.DB, frequency *services.FrequencyService) *CronManager {
	// Create cron with seconds precision
	c := cron.New(cron.WithSeconds())

	return &CronManager{
		cron:      c,
		db:        db,
		frequency: frequency,
	}
}

// Start registers and starts all cron jobs
func (m *CronManager) Start() error {
	log.Println("Starting cron jobs...")

	if err := m.registerJobs(); err != nil {
		return err
	}

	m.cron.Start()

	log.Println("Cron jobs started successfully")
	return nil
}

// Stop stops all cron jobs and waits for running ones to finish
func (m *CronManager) Stop() {
	log.Println("Stopping cron jobs...")
	ctx := m.cron.Stop()
	<-ctx.Done()
	log.Println("Cron jobs stopped")
}

// registerJobs registers all cron jobs with their schedules
func (m *CronManager) registerJobs() error {
	// Every 30 minutes: refresh frequency reports so cached reports stay warm
	_, err := m.cron.AddFunc("0 */30 * * * *", func() {
		m.logJobStart("refresh_frequency_reports")
		m.RefreshFrequencyReports()
	})
	if err != nil {
		return err
	}

	// Every hour: mark papers stuck in processing as failed
	_, err = m.cron.AddFunc("0 0 * * * *", func() {
		m.logJobStart("cleanup_stuck_papers")
		m.CleanupStuckPapers()
	})
	if err != nil {
		return err
	}

	// Daily at 2 AM: trim old report snapshots and job logs
	_, err = m.cron.AddFunc("0 0 2 * * *", func() {
		m.logJobStart("cleanup_old_data")
		m.CleanupOldData()
	})
	if err != nil {
		return err
	}

	log.Println("All cron jobs registered successfully")
	return nil
}

// RefreshFrequencyReports recomputes frequency reports for all subjects
func (m *CronManager) RefreshFrequencyReports() {
	jobName := "refresh_frequency_reports"

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	refreshed, err := m.frequency.RefreshAll(ctx)
	if err != nil {
		m.logJobError(jobName, err)
		return
	}

	m.logJobComplete(jobName, fmt.Sprintf("refreshed %d subject reports", refreshed))
}

// CleanupStuckPapers fails papers that sat in processing for over an hour.
// Extraction is synchronous, so a long-lived processing row means the
// process died mid-ingest.
func (m *CronManager) CleanupStuckPapers() {
	jobName := "cleanup_stuck_papers"
	cutoff := time.Now().Add(-1 * time.Hour)

	result := m.db.Model(&model.PaperDocument{}).
		Where("status = ? AND updated_at < ?", model.ExtractionProcessing, cutoff).
		Updates(map[string]interface{}{
			"status":           model.ExtractionFailed,
			"extraction_error": "extraction did not complete",
		})
	if result.Error != nil {
		m.logJobError(jobName, result.Error)
		return
	}

	m.logJobComplete(jobName, fmt.Sprintf("failed %d stuck papers", result.RowsAffected))
}

// CleanupOldData trims report snapshots and job logs older than 90 days
func (m *CronManager) CleanupOldData() {
	jobName := "cleanup_old_data"
	cutoff := time.Now().AddDate(0, 0, -90)

	snapshots := m.db.Unscoped().
		Where("created_at < ?", cutoff).
		Delete(&model.FrequencyReportRecord{})
	if snapshots.Error != nil {
		m.logJobError(jobName, snapshots.Error)
		return
	}

	logs := m.db.Unscoped().
		Where("created_at < ?", cutoff).
		Delete(&model.CronJobLog{})
	if logs.Error != nil {
		m.logJobError(jobName, logs.Error)
		return
	}

	m.logJobComplete(jobName, fmt.Sprintf("removed %d snapshots, %d job logs",
		snapshots.RowsAffected, logs.RowsAffected))
}

// logJobStart logs the start of a cron job
func (m *CronManager) logJobStart(jobName string) {
	log.Printf("[CRON] Starting job: %s at %s", jobName, time.Now().Format(time.RFC3339))

	cronLog := model.CronJobLog{
		JobName:   jobName,
		Status:    "running",
		StartedAt: time.Now(),
	}
	m.db.Create(&cronLog)
}

// logJobComplete logs successful completion of a cron job
func (m *CronManager) logJobComplete(jobName string, message string) {
	log.Printf("[CRON] Completed job: %s - %s", jobName, message)

	m.db.Model(&model.CronJobLog{}).
		Where("job_name = ? AND status = ?", jobName, "running").
		Order("started_at DESC").
		Limit(1).
		Updates(map[string]interface{}{
			"status":       "completed",
			"completed_at": time.Now(),
			"message":      message,
		})
}

// logJobError logs a cron job error
func (m *CronManager) logJobError(jobName string, err error) {
	log.Printf("[CRON] Error in job: %s - %v", jobName, err)

	m.db.Model(&model.CronJobLog{}).
		Where("job_name = ? AND status = ?", jobName, "running").
		Order("started_at DESC").
		Limit(1).
		Updates(map[string]interface{}{
			"status":       "failed",
			"completed_at": time.Now(),
			"error_msg":    err.Error(),
		})
}
