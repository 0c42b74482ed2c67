package service

import (
	"testing"
	"time"

	"github.com/agapechurch/chms-backend/internal/common"
	"github.com/agapechurch/chms-backend/internal/domain"
	"github.com/agapechurch/chms-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestStore(t *testing.T) *repository.Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// A pooled second connection would see a different in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&domain.Announcement{},
		&domain.Devotional{},
		&domain.ContentVersion{},
	))
	return repository.NewStore(db)
}

var (
	testAuthor   = domain.Actor{ID: "author-1", Name: "Hannah", Role: domain.RoleMember}
	testStranger = domain.Actor{ID: "member-2", Name: "Noah", Role: domain.RoleMember}
	testPastor   = domain.Actor{ID: "pastor-1", Name: "Rev. Kim", Role: domain.RolePastor}
)

func seedAnnouncement(t *testing.T, store *repository.Store, status domain.ContentStatus, mutate func(*domain.Announcement)) *domain.Announcement {
	t.Helper()
	a := &domain.Announcement{
		Title:    "Potluck Sunday",
		Body:     "Bring a dish to share after the service.",
		Status:   status,
		Version:  1,
		AuthorID: testAuthor.ID,
		Priority: domain.PriorityNormal,
	}
	if mutate != nil {
		mutate(a)
	}
	require.NoError(t, store.Announcements.Create(a))
	return a
}

func strPtr(s string) *string        { return &s }
func timePtr(t time.Time) *time.Time { return &t }

func TestSubmitForReview_FromDraft(t *testing.T) {
	store := setupTestStore(t)
	svc := NewWorkflowService(store, nil)
	a := seedAnnouncement(t, store, domain.StatusDraft, nil)

	item, err := svc.SubmitForReview(testAuthor, domain.ContentTypeAnnouncement, a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReview, item.GetStatus())
}

func TestSubmitForReview_ClearsPreviousReviewMetadata(t *testing.T) {
	store := setupTestStore(t)
	svc := NewWorkflowService(store, nil)
	a := seedAnnouncement(t, store, domain.StatusRejected, func(a *domain.Announcement) {
		a.ReviewerID = strPtr(testPastor.ID)
		a.ReviewComment = strPtr("typo in the title")
		a.ReviewedAt = timePtr(time.Now())
	})

	_, err := svc.SubmitForReview(testAuthor, domain.ContentTypeAnnouncement, a.ID)
	require.NoError(t, err)

	got, err := store.Announcements.Get(a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReview, got.Status)
	assert.Nil(t, got.ReviewerID)
	assert.Nil(t, got.ReviewComment)
	assert.Nil(t, got.ReviewedAt)
}

func TestSubmitForReview_WrongStatus(t *testing.T) {
	store := setupTestStore(t)
	svc := NewWorkflowService(store, nil)
	a := seedAnnouncement(t, store, domain.StatusPublished, nil)

	_, err := svc.SubmitForReview(testAuthor, domain.ContentTypeAnnouncement, a.ID)
	assert.ErrorIs(t, err, common.ErrInvalidState)
}

func TestSubmitForReview_OnlyAuthorOrElevated(t *testing.T) {
	store := setupTestStore(t)
	svc := NewWorkflowService(store, nil)

	a := seedAnnouncement(t, store, domain.StatusDraft, nil)
	_, err := svc.SubmitForReview(testStranger, domain.ContentTypeAnnouncement, a.ID)
	assert.ErrorIs(t, err, common.ErrForbidden)

	// Elevated roles may submit on behalf of the author
	_, err = svc.SubmitForReview(testPastor, domain.ContentTypeAnnouncement, a.ID)
	assert.NoError(t, err)
}

func TestSubmitForReview_NotFound(t *testing.T) {
	store := setupTestStore(t)
	svc := NewWorkflowService(store, nil)

	_, err := svc.SubmitForReview(testAuthor, domain.ContentTypeAnnouncement, "missing-id")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSubmitForReview_UnknownContentType(t *testing.T) {
	store := setupTestStore(t)
	svc := NewWorkflowService(store, nil)

	_, err := svc.SubmitForReview(testAuthor, domain.ContentType("sermon"), "whatever")
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestApprove_RequiresElevatedRole(t *testing.T) {
	store := setupTestStore(t)
	svc := NewWorkflowService(store, nil)
	a := seedAnnouncement(t, store, domain.StatusReview, nil)

	_, err := svc.Approve(testAuthor, domain.ContentTypeAnnouncement, a.ID, "")
	assert.ErrorIs(t, err, common.ErrForbidden)
}

func TestApprove_FuturePublishTimeSchedules(t *testing.T) {
	store := setupTestStore(t)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc := NewWorkflowService(store, nil)
	svc.(*workflowService).now = func() time.Time { return now }

	a := seedAnnouncement(t, store, domain.StatusReview, func(a *domain.Announcement) {
		a.PublishedAt = timePtr(now.Add(48 * time.Hour))
	})

	item, err := svc.Approve(testPastor, domain.ContentTypeAnnouncement, a.ID, "looks good")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusScheduled, item.GetStatus())

	got, err := store.Announcements.Get(a.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ReviewerID)
	assert.Equal(t, testPastor.ID, *got.ReviewerID)
	require.NotNil(t, got.ReviewComment)
	assert.Equal(t, "looks good", *got.ReviewComment)
	assert.NotNil(t, got.ReviewedAt)
}

func TestApprove_NoPublishTimePublishesImmediately(t *testing.T) {
	store := setupTestStore(t)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc := NewWorkflowService(store, nil)
	svc.(*workflowService).now = func() time.Time { return now }

	a := seedAnnouncement(t, store, domain.StatusReview, nil)

	item, err := svc.Approve(testPastor, domain.ContentTypeAnnouncement, a.ID, "")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPublished, item.GetStatus())
	require.NotNil(t, item.GetPublishedAt())
	assert.True(t, item.GetPublishedAt().Equal(now))
}

func TestApprove_PastPublishTimePublishesImmediately(t *testing.T) {
	store := setupTestStore(t)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	pubAt := now.Add(-time.Hour)
	svc := NewWorkflowService(store, nil)
	svc.(*workflowService).now = func() time.Time { return now }

	a := seedAnnouncement(t, store, domain.StatusReview, func(a *domain.Announcement) {
		a.PublishedAt = timePtr(pubAt)
	})

	item, err := svc.Approve(testPastor, domain.ContentTypeAnnouncement, a.ID, "")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPublished, item.GetStatus())
	// The author's chosen publish time is kept.
	require.NotNil(t, item.GetPublishedAt())
	assert.True(t, item.GetPublishedAt().Equal(pubAt))
}

func TestApprove_OnlyFromReview(t *testing.T) {
	store := setupTestStore(t)
	svc := NewWorkflowService(store, nil)
	a := seedAnnouncement(t, store, domain.StatusDraft, nil)

	_, err := svc.Approve(testPastor, domain.ContentTypeAnnouncement, a.ID, "")
	assert.ErrorIs(t, err, common.ErrInvalidState)
}

func TestReject_RequiresComment(t *testing.T) {
	store := setupTestStore(t)
	svc := NewWorkflowService(store, nil)
	a := seedAnnouncement(t, store, domain.StatusReview, nil)

	_, err := svc.Reject(testPastor, domain.ContentTypeAnnouncement, a.ID, "")
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	_, err = svc.Reject(testPastor, domain.ContentTypeAnnouncement, a.ID, "   ")
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestReject_SetsReviewMetadata(t *testing.T) {
	store := setupTestStore(t)
	svc := NewWorkflowService(store, nil)
	a := seedAnnouncement(t, store, domain.StatusReview, nil)

	item, err := svc.Reject(testPastor, domain.ContentTypeAnnouncement, a.ID, "  needs a date  ")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, item.GetStatus())

	got, err := store.Announcements.Get(a.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ReviewComment)
	assert.Equal(t, "needs a date", *got.ReviewComment)
	require.NotNil(t, got.ReviewerID)
	assert.Equal(t, testPastor.ID, *got.ReviewerID)
}

func TestReject_RequiresElevatedRole(t *testing.T) {
	store := setupTestStore(t)
	svc := NewWorkflowService(store, nil)
	a := seedAnnouncement(t, store, domain.StatusReview, nil)

	_, err := svc.Reject(testAuthor, domain.ContentTypeAnnouncement, a.ID, "no")
	assert.ErrorIs(t, err, common.ErrForbidden)
}

func TestWorkflow_RejectAndResubmit(t *testing.T) {
	store := setupTestStore(t)
	svc := NewWorkflowService(store, nil)
	a := seedAnnouncement(t, store, domain.StatusDraft, nil)

	_, err := svc.SubmitForReview(testAuthor, domain.ContentTypeAnnouncement, a.ID)
	require.NoError(t, err)

	_, err = svc.Reject(testPastor, domain.ContentTypeAnnouncement, a.ID, "wrong date")
	require.NoError(t, err)

	// The author fixes the content and resubmits
	item, err := svc.SubmitForReview(testAuthor, domain.ContentTypeAnnouncement, a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReview, item.GetStatus())

	got, _ := store.Announcements.Get(a.ID)
	assert.Nil(t, got.ReviewComment, "stale rejection comment must not survive resubmission")
}

func TestWorkflow_DevotionalGoesThroughSameMachine(t *testing.T) {
	store := setupTestStore(t)
	svc := NewWorkflowService(store, nil)

	d := &domain.Devotional{
		Title:     "Morning by Morning",
		Body:      "Great is thy faithfulness.",
		Status:    domain.StatusDraft,
		Version:   1,
		AuthorID:  testAuthor.ID,
		Scripture: "Lamentations 3:23",
	}
	require.NoError(t, store.Devotionals.Create(d))

	_, err := svc.SubmitForReview(testAuthor, domain.ContentTypeDevotional, d.ID)
	require.NoError(t, err)

	item, err := svc.Approve(testPastor, domain.ContentTypeDevotional, d.ID, "")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPublished, item.GetStatus())
}
