package cron

import (
	"context"
	"fmt"
	"log"
	"time"

	"journal-service/internal/domain/entity"
	"journal-service/internal/domain/repository"
	"journal-service/internal/domain/service"

	"github.com/robfig/cron/v3"
)

// SummaryChecker periodically sweeps recently active users and triggers
// weekly summary generation for each. The summary service itself decides
// whether a summary is due, so running the sweep often is harmless.
type SummaryChecker struct {
	summaryService service.SummaryService
	entryRepo      repository.EntryRepository
	cron           *cron.Cron
	spec           string
	activityWindow time.Duration
}

// NewSummaryChecker creates a new summary checker
func NewSummaryChecker(summaryService service.SummaryService, entryRepo repository.EntryRepository, spec string, activityWindow time.Duration) *SummaryChecker {
	if spec == "" {
		spec = "0 * * * *"
	}
	if activityWindow <= 0 {
		activityWindow = 14 * 24 * time.Hour
	}

	return &SummaryChecker{
		summaryService: summaryService,
		entryRepo:      entryRepo,
		cron:           cron.New(),
		spec:           spec,
		activityWindow: activityWindow,
	}
}

// Start starts the summary checker
func (s *SummaryChecker) Start() error {
	log.Printf("Starting summary checker with spec: %s", s.spec)

	_, err := s.cron.AddFunc(s.spec, func() {
		s.checkSummaries()
	})

	if err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	s.cron.Start()
	log.Println("Summary checker started successfully")

	return nil
}

// Stop stops the summary checker
func (s *SummaryChecker) Stop() {
	log.Println("Stopping summary checker...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("Summary checker stopped")
}

// checkSummaries runs the weekly summary sweep
func (s *SummaryChecker) checkSummaries() {
	log.Println("Running weekly summary sweep...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	now := time.Now().UTC()
	userIDs, err := s.entryRepo.GetActiveUserIDs(ctx, now.Add(-s.activityWindow))
	if err != nil {
		log.Printf("Error listing active users: %v", err)
		return
	}

	checked := 0
	for _, userID := range userIDs {
		if userID == entity.GuestUserID {
			continue
		}

		if _, _, err := s.summaryService.CheckWeeklySummary(ctx, userID, now); err != nil {
			log.Printf("Error checking weekly summary for user_id %s: %v", userID, err)
			continue
		}
		checked++
	}

	log.Printf("Weekly summary sweep completed, checked %d users", checked)
}
