package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medihire/medihire/internal/apperr"
	"github.com/medihire/medihire/internal/dtos"
	"github.com/medihire/medihire/internal/models"
)

func TestAdminDashboardCounters(t *testing.T) {
	db := testDB(t)
	svc := NewAdminService(db)
	seedAdmin(t, db)
	person := seedPerson(t, db, "p@x.com")
	_, company := seedCompany(t, db, "hr@h.com", "111")
	job := seedPublishedJob(t, db, company.ID, "Post")

	require.NoError(t, db.Create(&models.CompanyVerification{
		CompanyID: company.ID, Status: models.VerificationPending,
	}).Error)
	require.NoError(t, db.Create(&models.Report{
		TargetType: models.TargetJob, TargetID: job.ID, ReasonCode: "SPAM", Status: models.ReportPending,
	}).Error)
	require.NoError(t, db.Create(&models.Application{
		JobPostID: job.ID, ApplicantUserID: person.ID, Status: models.ApplicationReceived,
	}).Error)

	dash, err := svc.Dashboard()
	require.NoError(t, err)
	assert.EqualValues(t, 1, dash.PendingVerifications)
	assert.EqualValues(t, 1, dash.PendingReports)
	assert.EqualValues(t, 1, dash.PublishedJobs)
	assert.EqualValues(t, 3, dash.TotalUsers)
	assert.EqualValues(t, 1, dash.TodayApplications)
}

func TestAdminBlindUnblindJob(t *testing.T) {
	db := testDB(t)
	svc := NewAdminService(db)
	admin := seedAdmin(t, db)
	_, company := seedCompany(t, db, "hr@h.com", "111")
	job := seedPublishedJob(t, db, company.ID, "Post")
	publishedAt := *job.PublishedAt

	blinded, err := svc.BlindJob(admin.ID, job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobBlinded, blinded.Status)

	_, err = svc.BlindJob(admin.ID, job.ID)
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "ALREADY_BLINDED", appErr.Code)

	restored, err := svc.UnblindJob(admin.ID, job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobPublished, restored.Status)

	// published_at survives the round trip.
	var stored models.JobPost
	require.NoError(t, db.First(&stored, "id = ?", job.ID).Error)
	require.NotNil(t, stored.PublishedAt)
	assert.WithinDuration(t, publishedAt, *stored.PublishedAt, 0)

	_, err = svc.UnblindJob(admin.ID, job.ID)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_BLINDED", appErr.Code)

	// Two audit rows, one per mutation pair.
	var logs []models.AdminLog
	require.NoError(t, db.Where("admin_user_id = ?", admin.ID).Order("created_at ASC").Find(&logs).Error)
	require.Len(t, logs, 2)
	assert.Equal(t, "JOB_BLIND", logs[0].Action)
	assert.Equal(t, "JOB_UNBLIND", logs[1].Action)
}

func TestAdminModerationJobsReportCount(t *testing.T) {
	db := testDB(t)
	svc := NewAdminService(db)
	person := seedPerson(t, db, "p@x.com")
	_, company := seedCompany(t, db, "hr@h.com", "111")
	job := seedPublishedJob(t, db, company.ID, "Reported post")

	for range 2 {
		require.NoError(t, db.Create(&models.Report{
			TargetType: models.TargetJob, TargetID: job.ID,
			ReporterUserID: &person.ID, ReasonCode: "SPAM", Status: models.ReportPending,
		}).Error)
	}

	resp, err := svc.ModerationJobs(dtos.PageQuery{Page: 1, Size: 10})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.EqualValues(t, 2, resp.Items[0].ReportCount)
	assert.Equal(t, "Test Hospital", resp.Items[0].CompanyName)
}

func TestAdminListUsersFilters(t *testing.T) {
	db := testDB(t)
	svc := NewAdminService(db)
	seedPerson(t, db, "alice@x.com")
	seedPerson(t, db, "bob@y.com")
	seedCompany(t, db, "hr@h.com", "111")

	resp, err := svc.ListUsers(&dtos.UserAdminFilter{
		Type:      models.UserTypePerson,
		PageQuery: dtos.PageQuery{Page: 1, Size: 10},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, resp.Total)

	resp, err = svc.ListUsers(&dtos.UserAdminFilter{
		Keyword:   "ALICE",
		PageQuery: dtos.PageQuery{Page: 1, Size: 10},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, resp.Total)
	assert.Equal(t, "alice@x.com", resp.Items[0].Email)
}

func TestAdminSetUserStatus(t *testing.T) {
	db := testDB(t)
	svc := NewAdminService(db)
	admin := seedAdmin(t, db)
	person := seedPerson(t, db, "p@x.com")

	updated, err := svc.SetUserStatus(admin.ID, person.ID, &dtos.UserStatusRequest{
		Status: models.UserStatusSuspended,
		Reason: "abuse",
	})
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusSuspended, updated.Status)

	var logs []models.AdminLog
	require.NoError(t, db.Where("action = ?", "USER_STATUS_CHANGE").Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Contains(t, string(logs[0].MetaJSON), "abuse")

	// Setting the same status again is a silent no-op, no extra log.
	_, err = svc.SetUserStatus(admin.ID, person.ID, &dtos.UserStatusRequest{
		Status: models.UserStatusSuspended,
	})
	require.NoError(t, err)
	require.NoError(t, db.Where("action = ?", "USER_STATUS_CHANGE").Find(&logs).Error)
	assert.Len(t, logs, 1)
}
