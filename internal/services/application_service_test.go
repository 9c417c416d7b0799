package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/medihire/medihire/internal/apperr"
	"github.com/medihire/medihire/internal/dtos"
	"github.com/medihire/medihire/internal/models"
)

func newApplicationService(db *gorm.DB) *ApplicationService {
	return NewApplicationService(db, NewNotificationService(db))
}

func TestApplyHappyPath(t *testing.T) {
	db := testDB(t)
	svc := newApplicationService(db)
	person := seedPerson(t, db, "p@x.com")
	companyUser, company := seedCompany(t, db, "hr@h.com", "111")
	job := seedPublishedJob(t, db, company.ID, "ICU nurse")
	resume := seedResume(t, db, person.ID, models.VisibilityPrivate)

	read, err := svc.Apply(person.ID, job.ID, &dtos.ApplyRequest{ResumeID: resume.ID})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationReceived, read.Status)
	assert.Equal(t, "ICU nurse", read.JobTitle)

	// First history row goes nil -> RECEIVED.
	var history []models.ApplicationStatusHistory
	require.NoError(t, db.Where("application_id = ?", read.ID).Find(&history).Error)
	require.Len(t, history, 1)
	assert.Nil(t, history[0].FromStatus)
	assert.Equal(t, models.ApplicationReceived, history[0].ToStatus)

	// Company members get notified in the same transaction.
	var notifs []models.Notification
	require.NoError(t, db.Where("user_id = ?", companyUser.ID).Find(&notifs).Error)
	require.Len(t, notifs, 1)
	assert.Equal(t, models.NotifApplicationReceived, notifs[0].Type)
}

func TestApplyDuplicate(t *testing.T) {
	db := testDB(t)
	svc := newApplicationService(db)
	person := seedPerson(t, db, "p@x.com")
	_, company := seedCompany(t, db, "hr@h.com", "111")
	job := seedPublishedJob(t, db, company.ID, "ICU nurse")
	resume := seedResume(t, db, person.ID, models.VisibilityPrivate)

	_, err := svc.Apply(person.ID, job.ID, &dtos.ApplyRequest{ResumeID: resume.ID})
	require.NoError(t, err)

	_, err = svc.Apply(person.ID, job.ID, &dtos.ApplyRequest{ResumeID: resume.ID})
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "DUPLICATE_APPLICATION", appErr.Code)
}

func TestApplyToUnpublishedJob(t *testing.T) {
	db := testDB(t)
	svc := newApplicationService(db)
	person := seedPerson(t, db, "p@x.com")
	_, company := seedCompany(t, db, "hr@h.com", "111")
	resume := seedResume(t, db, person.ID, models.VisibilityPrivate)

	draft := &models.JobPost{CompanyID: company.ID, Status: models.JobDraft, Title: "Draft"}
	require.NoError(t, db.Create(draft).Error)

	_, err := svc.Apply(person.ID, draft.ID, &dtos.ApplyRequest{ResumeID: resume.ID})
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "JOB_NOT_PUBLISHABLE", appErr.Code)
}

func TestApplyWithSomeoneElsesResume(t *testing.T) {
	db := testDB(t)
	svc := newApplicationService(db)
	person := seedPerson(t, db, "p@x.com")
	other := seedPerson(t, db, "o@x.com")
	_, company := seedCompany(t, db, "hr@h.com", "111")
	job := seedPublishedJob(t, db, company.ID, "ICU nurse")
	resume := seedResume(t, db, other.ID, models.VisibilityPrivate)

	_, err := svc.Apply(person.ID, job.ID, &dtos.ApplyRequest{ResumeID: resume.ID})
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "RESUME_NOT_FOUND", appErr.Code)
	assert.Equal(t, 404, appErr.Status)
}

func TestChangeStatusFlow(t *testing.T) {
	db := testDB(t)
	svc := newApplicationService(db)
	person := seedPerson(t, db, "p@x.com")
	companyUser, company := seedCompany(t, db, "hr@h.com", "111")
	job := seedPublishedJob(t, db, company.ID, "ICU nurse")
	resume := seedResume(t, db, person.ID, models.VisibilityPrivate)

	read, err := svc.Apply(person.ID, job.ID, &dtos.ApplyRequest{ResumeID: resume.ID})
	require.NoError(t, err)

	detail, err := svc.ChangeStatus(companyUser.ID, read.ID, &dtos.ApplicationStatusRequest{
		Status: models.ApplicationReviewing,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationReviewing, detail.Status)
	assert.Len(t, detail.StatusHistory, 2)

	// Applicant is notified of the move.
	var notifs []models.Notification
	require.NoError(t, db.Where("user_id = ? AND type = ?", person.ID, models.NotifStatusChanged).
		Find(&notifs).Error)
	assert.Len(t, notifs, 1)

	_, err = svc.ChangeStatus(companyUser.ID, read.ID, &dtos.ApplicationStatusRequest{
		Status: models.ApplicationHired,
	})
	require.NoError(t, err)

	// HIRED is terminal.
	_, err = svc.ChangeStatus(companyUser.ID, read.ID, &dtos.ApplicationStatusRequest{
		Status: models.ApplicationRejected,
	})
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "ALREADY_FINAL", appErr.Code)
}

func TestChangeStatusSameStatusNoHistory(t *testing.T) {
	db := testDB(t)
	svc := newApplicationService(db)
	person := seedPerson(t, db, "p@x.com")
	companyUser, company := seedCompany(t, db, "hr@h.com", "111")
	job := seedPublishedJob(t, db, company.ID, "ICU nurse")
	resume := seedResume(t, db, person.ID, models.VisibilityPrivate)

	read, err := svc.Apply(person.ID, job.ID, &dtos.ApplyRequest{ResumeID: resume.ID})
	require.NoError(t, err)

	detail, err := svc.ChangeStatus(companyUser.ID, read.ID, &dtos.ApplicationStatusRequest{
		Status: models.ApplicationReceived,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationReceived, detail.Status)

	// Only the initial nil -> RECEIVED row; no notification either.
	assert.Len(t, detail.StatusHistory, 1)
	var notifs []models.Notification
	require.NoError(t, db.Where("user_id = ? AND type = ?", person.ID, models.NotifStatusChanged).
		Find(&notifs).Error)
	assert.Empty(t, notifs)
}

func TestChangeStatusOtherCompanyForbidden(t *testing.T) {
	db := testDB(t)
	svc := newApplicationService(db)
	person := seedPerson(t, db, "p@x.com")
	_, company := seedCompany(t, db, "hr@h.com", "111")
	otherUser, _ := seedCompany(t, db, "hr@other.com", "222")
	job := seedPublishedJob(t, db, company.ID, "ICU nurse")
	resume := seedResume(t, db, person.ID, models.VisibilityPrivate)

	read, err := svc.Apply(person.ID, job.ID, &dtos.ApplyRequest{ResumeID: resume.ID})
	require.NoError(t, err)

	_, err = svc.ChangeStatus(otherUser.ID, read.ID, &dtos.ApplicationStatusRequest{
		Status: models.ApplicationReviewing,
	})
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "FORBIDDEN", appErr.Code)
}

func TestNotesHiddenFromApplicant(t *testing.T) {
	db := testDB(t)
	svc := newApplicationService(db)
	person := seedPerson(t, db, "p@x.com")
	companyUser, company := seedCompany(t, db, "hr@h.com", "111")
	job := seedPublishedJob(t, db, company.ID, "ICU nurse")
	resume := seedResume(t, db, person.ID, models.VisibilityPrivate)

	read, err := svc.Apply(person.ID, job.ID, &dtos.ApplyRequest{ResumeID: resume.ID})
	require.NoError(t, err)

	_, err = svc.AddNote(companyUser.ID, read.ID, &dtos.ApplicationNoteRequest{Note: "strong candidate"})
	require.NoError(t, err)

	companyView, err := svc.GetDetailForCompany(companyUser.ID, read.ID)
	require.NoError(t, err)
	assert.Len(t, companyView.Notes, 1)

	applicantView, err := svc.GetMine(person.ID, read.ID)
	require.NoError(t, err)
	assert.Empty(t, applicantView.Notes)
}

func TestListForCompanyFilters(t *testing.T) {
	db := testDB(t)
	svc := newApplicationService(db)
	p1 := seedPerson(t, db, "p1@x.com")
	p2 := seedPerson(t, db, "p2@x.com")
	companyUser, company := seedCompany(t, db, "hr@h.com", "111")
	job := seedPublishedJob(t, db, company.ID, "ICU nurse")
	r1 := seedResume(t, db, p1.ID, models.VisibilityPrivate)
	r2 := seedResume(t, db, p2.ID, models.VisibilityPrivate)

	a1, err := svc.Apply(p1.ID, job.ID, &dtos.ApplyRequest{ResumeID: r1.ID})
	require.NoError(t, err)
	_, err = svc.Apply(p2.ID, job.ID, &dtos.ApplyRequest{ResumeID: r2.ID})
	require.NoError(t, err)

	_, err = svc.ChangeStatus(companyUser.ID, a1.ID, &dtos.ApplicationStatusRequest{
		Status: models.ApplicationReviewing,
	})
	require.NoError(t, err)

	resp, err := svc.ListForCompany(companyUser.ID, &dtos.ApplicantFilter{
		Status:    models.ApplicationReviewing,
		PageQuery: dtos.PageQuery{Page: 1, Size: 10},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, resp.Total)
	assert.Equal(t, a1.ID, resp.Items[0].ID)
}
