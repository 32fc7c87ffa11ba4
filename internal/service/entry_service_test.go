package service

import (
	"context"
	"testing"
	"time"

	"journal-service/internal/domain/entity"
	domainservice "journal-service/internal/domain/service"

	"github.com/google/uuid"
)

type entryFixture struct {
	svc        domainservice.EntryService
	entryRepo  *fakeEntryRepo
	catRepo    *fakeCategoryRepo
	pending    *fakePendingRepo
	goalRepo   *fakeGoalRepo
	classifier *fakeClassifier
}

func newEntryFixture(t *testing.T) *entryFixture {
	t.Helper()
	f := &entryFixture{
		entryRepo:  &fakeEntryRepo{},
		catRepo:    &fakeCategoryRepo{},
		pending:    &fakePendingRepo{},
		goalRepo:   &fakeGoalRepo{},
		classifier: &fakeClassifier{},
	}
	goals := NewGoalService(f.goalRepo, f.goalRepo, f.classifier, &fakePublisher{})
	f.svc = NewEntryService(f.entryRepo, f.catRepo, f.pending, goals, f.classifier)
	return f
}

func (f *entryFixture) addCategory(userID uuid.UUID, name string) *entity.Category {
	c := &entity.Category{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Color:     "#6B7280",
		CreatedAt: time.Now().UTC(),
	}
	f.catRepo.categories = append(f.catRepo.categories, c)
	return c
}

func TestCreateEntryRequiresText(t *testing.T) {
	f := newEntryFixture(t)

	_, err := f.svc.CreateEntry(context.Background(), uuid.New(), false, domainservice.CreateEntryInput{})
	if err == nil {
		t.Fatal("expected error for empty text")
	}
}

func TestGuestEntryNeverCallsGateway(t *testing.T) {
	f := newEntryFixture(t)

	hint := "Fitness"
	duration := int32(45)
	result, err := f.svc.CreateEntry(context.Background(), entity.GuestUserID, true, domainservice.CreateEntryInput{
		Text:            "went to the gym",
		CategoryHint:    &hint,
		DurationMinutes: &duration,
	})
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}

	if f.classifier.parseCalls != 0 || f.classifier.matchCalls != 0 || f.classifier.goalMatchCalls != 0 {
		t.Fatal("guest entries must not reach the classification gateway")
	}

	wantCat := uuid.NewSHA1(entity.GuestUserID, []byte("Fitness"))
	if result.Entry.CategoryID == nil || *result.Entry.CategoryID != wantCat {
		t.Fatalf("expected Fitness default category, got %v", result.Entry.CategoryID)
	}
	if result.Entry.Duration() != 45 {
		t.Errorf("duration = %d, want 45", result.Entry.Duration())
	}
	if result.PendingCategory != nil {
		t.Error("guest entries never raise suggestions")
	}
	if result.CompletedGoal != nil {
		t.Error("guest entries never feed goal tracking")
	}
}

func TestGuestEntryUnknownHintFallsBackToOther(t *testing.T) {
	f := newEntryFixture(t)

	hint := "Sports"
	result, err := f.svc.CreateEntry(context.Background(), entity.GuestUserID, true, domainservice.CreateEntryInput{
		Text:         "played football",
		CategoryHint: &hint,
	})
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}

	wantOther := uuid.NewSHA1(entity.GuestUserID, []byte("Other"))
	if result.Entry.CategoryID == nil || *result.Entry.CategoryID != wantOther {
		t.Fatalf("expected Other fallback, got %v", result.Entry.CategoryID)
	}
}

func TestGuestEntryDoesNotEvaluateGoals(t *testing.T) {
	f := newEntryFixture(t)

	seedGoal(t, f.goalRepo, &entity.Goal{
		UserID:      entity.GuestUserID,
		Title:       "Should never track",
		Keywords:    []string{"gym"},
		TargetType:  entity.TargetTypeCount,
		TargetValue: 1,
		TimePeriod:  entity.PeriodDaily,
	})

	result, err := f.svc.CreateEntry(context.Background(), entity.GuestUserID, true, domainservice.CreateEntryInput{
		Text: "gym session",
	})
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}
	if result.CompletedGoal != nil {
		t.Fatal("guest entries must not complete goals")
	}
	if len(f.goalRepo.progress) != 0 {
		t.Fatalf("no ledger rows expected for guest entries, got %d", len(f.goalRepo.progress))
	}
}

func TestCreateEntryResolvesExistingCategory(t *testing.T) {
	f := newEntryFixture(t)
	userID := uuid.New()
	fitness := f.addCategory(userID, "Fitness")

	dur := int32(30)
	f.classifier.parseResult = entity.ParsedEntry{
		Activity:        "Morning run",
		DurationMinutes: &dur,
		Sentiment:       entity.SentimentPositive,
	}
	// Name case from the gateway differs from the stored category
	f.classifier.matchResult = domainservice.CategoryMatch{
		Matches:      true,
		CategoryName: "fitness",
		Confidence:   90,
	}

	result, err := f.svc.CreateEntry(context.Background(), userID, false, domainservice.CreateEntryInput{
		Text: "ran 5k this morning, felt great",
	})
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}

	if result.Entry.Activity != "Morning run" {
		t.Errorf("activity = %q, want parsed activity", result.Entry.Activity)
	}
	if result.Entry.CategoryID == nil || *result.Entry.CategoryID != fitness.ID {
		t.Fatalf("expected resolved Fitness category, got %v", result.Entry.CategoryID)
	}
	if result.Entry.Sentiment == nil || *result.Entry.Sentiment != entity.SentimentPositive {
		t.Errorf("sentiment not carried from parse result")
	}
	if result.PendingCategory != nil {
		t.Error("no suggestion expected for a resolved match")
	}
}

func TestCreateEntryRaisesSuggestion(t *testing.T) {
	f := newEntryFixture(t)
	userID := uuid.New()
	f.addCategory(userID, "Work")

	f.classifier.parseResult = entity.ParsedEntry{Activity: "Meditated", Sentiment: entity.SentimentNeutral}
	f.classifier.matchResult = domainservice.CategoryMatch{
		Matches:           false,
		SuggestedCategory: "Mindfulness",
		Confidence:        40,
		Reasoning:         "No existing category covers meditation",
	}

	result, err := f.svc.CreateEntry(context.Background(), userID, false, domainservice.CreateEntryInput{
		Text: "meditated for a while",
	})
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}

	if result.Entry.CategoryID != nil {
		t.Error("entry must stay uncategorized while the suggestion is pending")
	}
	if result.PendingCategory == nil {
		t.Fatal("expected a pending suggestion")
	}
	if result.PendingCategory.SuggestedName != "Mindfulness" {
		t.Errorf("suggested name = %q, want Mindfulness", result.PendingCategory.SuggestedName)
	}
	if result.PendingCategory.Status != entity.PendingStatusPending {
		t.Errorf("status = %s, want pending", result.PendingCategory.Status)
	}
	if result.PendingCategory.EntryID != result.Entry.ID {
		t.Error("suggestion must reference the originating entry")
	}
	if len(f.pending.pending) != 1 {
		t.Fatalf("expected one persisted suggestion, got %d", len(f.pending.pending))
	}
}

func TestCreateEntryMatchAgainstUnknownNameRaisesSuggestion(t *testing.T) {
	f := newEntryFixture(t)
	userID := uuid.New()
	f.addCategory(userID, "Work")

	f.classifier.parseResult = entity.ParsedEntry{Activity: "Yoga", Sentiment: entity.SentimentNeutral}
	// The gateway claims a match against a name the user does not have
	f.classifier.matchResult = domainservice.CategoryMatch{
		Matches:      true,
		CategoryName: "Wellness",
		Confidence:   80,
	}

	result, err := f.svc.CreateEntry(context.Background(), userID, false, domainservice.CreateEntryInput{
		Text: "did some yoga",
	})
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}

	if result.Entry.CategoryID != nil {
		t.Error("unknown category name must not resolve")
	}
	if result.PendingCategory == nil || result.PendingCategory.SuggestedName != "Wellness" {
		t.Fatalf("expected Wellness suggestion, got %+v", result.PendingCategory)
	}
}

func TestCreateEntryGatewayFailureFallsBack(t *testing.T) {
	f := newEntryFixture(t)
	userID := uuid.New()

	f.classifier.parseErr = context.DeadlineExceeded
	f.classifier.matchErr = context.DeadlineExceeded

	result, err := f.svc.CreateEntry(context.Background(), userID, false, domainservice.CreateEntryInput{
		Text: "wrote in my journal",
	})
	if err != nil {
		t.Fatalf("gateway failure must not fail the entry: %v", err)
	}

	if result.Entry.Activity != "wrote in my journal" {
		t.Errorf("activity = %q, want raw text fallback", result.Entry.Activity)
	}
	if result.Entry.Sentiment == nil || *result.Entry.Sentiment != entity.SentimentNeutral {
		t.Error("fallback sentiment must be neutral")
	}
	if result.Entry.CategoryID != nil {
		t.Error("entry must stay uncategorized when the gateway is down")
	}
	if result.PendingCategory != nil {
		t.Error("no suggestion may be raised from a failed gateway call")
	}
	if len(f.entryRepo.entries) != 1 {
		t.Fatalf("entry must still be persisted, got %d", len(f.entryRepo.entries))
	}
}

func TestCreateEntryCallerFieldsWin(t *testing.T) {
	f := newEntryFixture(t)
	userID := uuid.New()

	f.classifier.matchResult = domainservice.CategoryMatch{Matches: false, SuggestedCategory: "Music"}

	activity := "Piano practice"
	duration := int32(50)
	sentiment := entity.SentimentPositive
	result, err := f.svc.CreateEntry(context.Background(), userID, false, domainservice.CreateEntryInput{
		Text:            "practiced piano",
		Activity:        &activity,
		DurationMinutes: &duration,
		Sentiment:       &sentiment,
	})
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}

	if f.classifier.parseCalls != 0 {
		t.Error("parse must be skipped when the caller supplies the activity")
	}
	if result.Entry.Activity != activity {
		t.Errorf("activity = %q, want caller-supplied", result.Entry.Activity)
	}
	if result.Entry.Duration() != 50 {
		t.Errorf("duration = %d, want 50", result.Entry.Duration())
	}
	if result.Entry.Sentiment == nil || *result.Entry.Sentiment != sentiment {
		t.Error("sentiment must be caller-supplied")
	}
}

func TestCreateEntrySurfacesCompletedGoal(t *testing.T) {
	f := newEntryFixture(t)
	userID := uuid.New()
	fitness := f.addCategory(userID, "Fitness")

	completing := seedGoal(t, f.goalRepo, &entity.Goal{
		UserID:       userID,
		Title:        "Exercise 2 hours",
		CategoryID:   &fitness.ID,
		TargetType:   entity.TargetTypeTime,
		TargetValue:  120,
		TimePeriod:   entity.PeriodWeekly,
		CurrentValue: 100,
	})
	seedGoal(t, f.goalRepo, &entity.Goal{
		UserID:      userID,
		Title:       "Exercise 10 hours",
		CategoryID:  &fitness.ID,
		TargetType:  entity.TargetTypeTime,
		TargetValue: 600,
		TimePeriod:  entity.PeriodWeekly,
	})

	dur := int32(25)
	f.classifier.parseResult = entity.ParsedEntry{
		Activity:        "Gym workout",
		DurationMinutes: &dur,
		Sentiment:       entity.SentimentPositive,
	}
	f.classifier.matchResult = domainservice.CategoryMatch{Matches: true, CategoryName: "Fitness"}

	result, err := f.svc.CreateEntry(context.Background(), userID, false, domainservice.CreateEntryInput{
		Text: "25 min workout at the gym",
	})
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}

	if result.CompletedGoal == nil {
		t.Fatal("expected the completed goal to be surfaced")
	}
	if result.CompletedGoal.ID != completing.ID {
		t.Errorf("surfaced goal = %s, want %s", result.CompletedGoal.ID, completing.ID)
	}
	// Both goals matched; both accrue progress
	if len(f.goalRepo.progress) != 2 {
		t.Fatalf("expected two ledger rows, got %d", len(f.goalRepo.progress))
	}
}

func TestDeleteEntryKeepsLedgerRows(t *testing.T) {
	f := newEntryFixture(t)
	userID := uuid.New()
	fitness := f.addCategory(userID, "Fitness")

	goal := seedGoal(t, f.goalRepo, &entity.Goal{
		UserID:      userID,
		Title:       "Exercise",
		CategoryID:  &fitness.ID,
		TargetType:  entity.TargetTypeCount,
		TargetValue: 5,
		TimePeriod:  entity.PeriodWeekly,
	})

	f.classifier.parseResult = entity.ParsedEntry{Activity: "Gym", Sentiment: entity.SentimentNeutral}
	f.classifier.matchResult = domainservice.CategoryMatch{Matches: true, CategoryName: "Fitness"}

	result, err := f.svc.CreateEntry(context.Background(), userID, false, domainservice.CreateEntryInput{Text: "gym"})
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}
	if len(f.goalRepo.progress) != 1 {
		t.Fatalf("expected one ledger row, got %d", len(f.goalRepo.progress))
	}

	if err := f.svc.DeleteEntry(context.Background(), result.Entry.ID, userID); err != nil {
		t.Fatalf("delete entry: %v", err)
	}

	// Ledger and goal totals are untouched by entry deletion
	if len(f.goalRepo.progress) != 1 {
		t.Fatalf("ledger rows must survive entry deletion, got %d", len(f.goalRepo.progress))
	}
	if got := f.goalRepo.find(goal.ID); got.CurrentValue != 1 {
		t.Fatalf("goal progress must not be decremented, got %d", got.CurrentValue)
	}
}
