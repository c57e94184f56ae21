package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/edugenai/paper-analyzer/analysis"
	"github.com/edugenai/paper-analyzer/model"
	"github.com/edugenai/paper-analyzer/utils/cache"
)

// FrequencyCacheTTL is how long a computed frequency report is served from
// Redis before being recomputed.
const FrequencyCacheTTL = 15 * time.Minute

// FrequencyService computes question frequency reports for a subject,
// caches them and persists snapshots for history.
type FrequencyService struct {
	db        *gorm.DB
	cache     *cache.RedisCache
	threshold int
}

// NewFrequencyService creates a new frequency service. The similarity
// threshold comes from FREQUENCY_THRESHOLD and must be a valid score; an
// invalid value is a configuration error and fails construction.
func NewFrequencyService(db *gorm.DB, redisCache *cache.RedisCache) (*FrequencyService, error) {
	threshold := analysis.DefaultCorpusThreshold
	if v := os.Getenv("FREQUENCY_THRESHOLD"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid FREQUENCY_THRESHOLD %q: %w", v, err)
		}
		if err := analysis.ValidateThreshold(n); err != nil {
			return nil, fmt.Errorf("invalid FREQUENCY_THRESHOLD: %w", err)
		}
		threshold = n
	}

	return &FrequencyService{
		db:        db,
		cache:     redisCache,
		threshold: threshold,
	}, nil
}

// Threshold returns the configured similarity threshold
func (s *FrequencyService) Threshold() int {
	return s.threshold
}

func frequencyCacheKey(subjectID uint, threshold int) string {
	return fmt.Sprintf("frequency:subject:%d:t%d", subjectID, threshold)
}

// GetReport returns the frequency report for a subject, serving from cache
// when a fresh copy exists. A cache outage degrades to recomputation, never
// to an error.
func (s *FrequencyService) GetReport(ctx context.Context, subjectID uint) (*analysis.FrequencyReport, error) {
	key := frequencyCacheKey(subjectID, s.threshold)

	if s.cache != nil {
		var cached analysis.FrequencyReport
		err := s.cache.GetJSON(ctx, key, &cached)
		if err == nil {
			return &cached, nil
		}
		if err != cache.ErrNotFound {
			log.Printf("FrequencyService: cache read failed, recomputing: %v", err)
		}
	}

	report, err := s.ComputeReport(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, report, FrequencyCacheTTL); err != nil {
			log.Printf("FrequencyService: cache write failed: %v", err)
		}
	}

	return report, nil
}

// ComputeReport builds a fresh frequency report for a subject from its
// question bank, persists a snapshot and returns it. A subject with no
// questions yields an empty report.
func (s *FrequencyService) ComputeReport(ctx context.Context, subjectID uint) (*analysis.FrequencyReport, error) {
	var subject model.Subject
	if err := s.db.First(&subject, subjectID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("subject %d not found", subjectID)
		}
		return nil, fmt.Errorf("failed to load subject: %w", err)
	}

	var questions []model.Question
	if err := s.db.Where("subject_id = ?", subjectID).
		Order("created_at ASC, id ASC").
		Find(&questions).Error; err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}

	var totalPapers int64
	if err := s.db.Model(&model.PaperDocument{}).
		Where("subject_id = ? AND status = ?", subjectID, model.ExtractionCompleted).
		Count(&totalPapers).Error; err != nil {
		return nil, fmt.Errorf("failed to count papers: %w", err)
	}

	var papers []model.PaperDocument
	if err := s.db.Select("id", "document_uid").
		Where("subject_id = ?", subjectID).
		Find(&papers).Error; err != nil {
		return nil, fmt.Errorf("failed to load papers: %w", err)
	}
	uidByPaper := make(map[uint]string, len(papers))
	for _, p := range papers {
		uidByPaper[p.ID] = p.DocumentUID
	}

	candidates := make([]analysis.RawQuestionCandidate, 0, len(questions))
	for i, q := range questions {
		var docUID string
		if q.PaperID != nil {
			docUID = uidByPaper[*q.PaperID]
		}
		candidates = append(candidates, analysis.RawQuestionCandidate{
			Text:               q.Text,
			SourceDocumentID:   docUID,
			PositionInDocument: i,
		})
	}

	report, err := analysis.Aggregate(candidates, s.threshold)
	if err != nil {
		return nil, fmt.Errorf("frequency aggregation failed: %w", err)
	}
	// Estimation needs at least one completed paper; a bank of purely
	// manual questions keeps all chances at zero.
	if totalPapers > 0 {
		if err := report.ApplyReappearance(int(totalPapers)); err != nil {
			return nil, fmt.Errorf("reappearance estimation failed: %w", err)
		}
	}

	if err := s.saveSnapshot(subjectID, report); err != nil {
		// Snapshot failure is not fatal to the request
		log.Printf("FrequencyService: failed to persist snapshot for subject %d: %v", subjectID, err)
	}

	log.Printf("FrequencyService: subject %d: %d questions, %d groups, %d repeated",
		subjectID, report.TotalCandidateQuestions, len(report.Groups), report.RepeatedGroups)

	return report, nil
}

func (s *FrequencyService) saveSnapshot(subjectID uint, report *analysis.FrequencyReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	record := model.FrequencyReportRecord{
		SubjectID:          subjectID,
		Threshold:          s.threshold,
		TotalDocuments:     report.TotalDocuments,
		TotalQuestions:     report.TotalCandidateQuestions,
		GroupCount:         len(report.Groups),
		RepeatedGroups:     report.RepeatedGroups,
		RepeatedPercentage: report.RepeatedPercentage,
		AverageChance:      report.AverageReappearanceChance,
		Payload:            datatypes.JSON(payload),
	}
	return s.db.Create(&record).Error
}

// ListSnapshots returns persisted report snapshots for a subject, newest first
func (s *FrequencyService) ListSnapshots(subjectID uint, limit int) ([]model.FrequencyReportRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var records []model.FrequencyReportRecord
	if err := s.db.Where("subject_id = ?", subjectID).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list report snapshots: %w", err)
	}
	return records, nil
}

// InvalidateCache drops the cached report for a subject, forcing the next
// read to recompute. Called after paper ingestion changes the question bank.
func (s *FrequencyService) InvalidateCache(ctx context.Context, subjectID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, fmt.Sprintf("frequency:subject:%d:*", subjectID)); err != nil {
		log.Printf("FrequencyService: cache invalidation failed for subject %d: %v", subjectID, err)
	}
}

// RefreshAll recomputes reports for every subject that has questions.
// Used by the scheduled refresh job.
func (s *FrequencyService) RefreshAll(ctx context.Context) (int, error) {
	var subjectIDs []uint
	if err := s.db.Model(&model.Question{}).
		Distinct("subject_id").
		Pluck("subject_id", &subjectIDs).Error; err != nil {
		return 0, fmt.Errorf("failed to list subjects with questions: %w", err)
	}

	refreshed := 0
	for _, id := range subjectIDs {
		report, err := s.ComputeReport(ctx, id)
		if err != nil {
			log.Printf("FrequencyService: refresh failed for subject %d: %v", id, err)
			continue
		}
		if s.cache != nil {
			key := frequencyCacheKey(id, s.threshold)
			if err := s.cache.SetJSON(ctx, key, report, FrequencyCacheTTL); err != nil {
				log.Printf("FrequencyService: cache write failed for subject %d: %v", id, err)
			}
		}
		refreshed++
	}
	return refreshed, nil
}
