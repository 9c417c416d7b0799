package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medihire/medihire/internal/apperr"
	"github.com/medihire/medihire/internal/dtos"
	"github.com/medihire/medihire/internal/models"
)

func strptr(s string) *string { return &s }
func intptr(i int) *int       { return &i }

func TestJobCreateStartsDraft(t *testing.T) {
	db := testDB(t)
	svc := NewJobService(db)
	user, _ := seedCompany(t, db, "hr@h.com", "111")

	job, err := svc.Create(user.ID, &dtos.JobCreateRequest{Title: "ICU nurse"})
	require.NoError(t, err)
	assert.Equal(t, models.JobDraft, job.Status)
	assert.Equal(t, "Test Hospital", job.CompanyName)

	var history []models.JobPostHistory
	require.NoError(t, db.Where("job_post_id = ?", job.ID).Find(&history).Error)
	require.Len(t, history, 1)
	assert.Equal(t, models.JobActionCreate, history[0].Action)
}

func TestJobPublishRequiresVerification(t *testing.T) {
	db := testDB(t)
	svc := NewJobService(db)
	user, _ := seedCompany(t, db, "hr@h.com", "111")

	job, err := svc.Create(user.ID, &dtos.JobCreateRequest{
		Title: "ICU nurse", JobCategory: "NURSE", EmploymentType: "FULL_TIME", LocationCode: "11",
	})
	require.NoError(t, err)

	_, err = svc.Publish(user.ID, job.ID)
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "COMPANY_NOT_VERIFIED", appErr.Code)
}

func TestJobPublishAndClose(t *testing.T) {
	db := testDB(t)
	svc := NewJobService(db)
	user, company := seedCompany(t, db, "hr@h.com", "111")
	approveCompany(t, db, company.ID)

	job, err := svc.Create(user.ID, &dtos.JobCreateRequest{
		Title: "ICU nurse", JobCategory: "NURSE", EmploymentType: "FULL_TIME", LocationCode: "11",
	})
	require.NoError(t, err)

	published, err := svc.Publish(user.ID, job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobPublished, published.Status)
	require.NotNil(t, published.PublishedAt)

	// Publishing twice from PUBLISHED is refused.
	_, err = svc.Publish(user.ID, job.ID)
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INVALID_STATE", appErr.Code)

	closed, err := svc.Close(user.ID, job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobClosed, closed.Status)

	// A closed post can be republished.
	_, err = svc.Publish(user.ID, job.ID)
	require.NoError(t, err)
}

func TestJobPublishMissingFields(t *testing.T) {
	db := testDB(t)
	svc := NewJobService(db)
	user, company := seedCompany(t, db, "hr@h.com", "111")
	approveCompany(t, db, company.ID)

	job, err := svc.Create(user.ID, &dtos.JobCreateRequest{Title: "bare"})
	require.NoError(t, err)

	_, err = svc.Publish(user.ID, job.ID)
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "MISSING_REQUIRED_FIELDS", appErr.Code)
	assert.Contains(t, appErr.Details["fields"], "job_category")
}

func TestJobUpdateWritesDiffHistory(t *testing.T) {
	db := testDB(t)
	svc := NewJobService(db)
	user, _ := seedCompany(t, db, "hr@h.com", "111")

	job, err := svc.Create(user.ID, &dtos.JobCreateRequest{Title: "ICU nurse"})
	require.NoError(t, err)

	_, err = svc.Update(user.ID, job.ID, &dtos.JobUpdateRequest{
		Title:     strptr("ER nurse"),
		SalaryMin: intptr(4000),
	})
	require.NoError(t, err)

	var history []models.JobPostHistory
	require.NoError(t, db.Where("job_post_id = ? AND action = ?", job.ID, models.JobActionUpdate).
		Find(&history).Error)
	require.Len(t, history, 1)
	assert.Contains(t, string(history[0].DiffJSON), "ER nurse")
	assert.Contains(t, string(history[0].DiffJSON), "salary_min")

	// Re-sending identical values writes no history.
	_, err = svc.Update(user.ID, job.ID, &dtos.JobUpdateRequest{Title: strptr("ER nurse")})
	require.NoError(t, err)
	require.NoError(t, db.Where("job_post_id = ? AND action = ?", job.ID, models.JobActionUpdate).
		Find(&history).Error)
	assert.Len(t, history, 1)
}

func TestJobUpdateForbiddenForOtherCompany(t *testing.T) {
	db := testDB(t)
	svc := NewJobService(db)
	owner, _ := seedCompany(t, db, "hr@h.com", "111")
	other, _ := seedCompany(t, db, "hr@other.com", "222")

	job, err := svc.Create(owner.ID, &dtos.JobCreateRequest{Title: "ICU nurse"})
	require.NoError(t, err)

	_, err = svc.Update(other.ID, job.ID, &dtos.JobUpdateRequest{Title: strptr("stolen")})
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "FORBIDDEN", appErr.Code)
}

func TestJobDetailBlindedIs404(t *testing.T) {
	db := testDB(t)
	svc := NewJobService(db)
	_, company := seedCompany(t, db, "hr@h.com", "111")

	job := seedPublishedJob(t, db, company.ID, "ICU nurse")
	require.NoError(t, db.Model(job).Update("status", models.JobBlinded).Error)

	_, err := svc.GetDetail(job.ID)
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestJobDetailBumpsViewCount(t *testing.T) {
	db := testDB(t)
	svc := NewJobService(db)
	_, company := seedCompany(t, db, "hr@h.com", "111")
	job := seedPublishedJob(t, db, company.ID, "ICU nurse")

	read, err := svc.GetDetail(job.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, read.ViewCount)

	read, err = svc.GetDetail(job.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, read.ViewCount)
}

func TestJobSearchFiltersAndPages(t *testing.T) {
	db := testDB(t)
	svc := NewJobService(db)
	_, company := seedCompany(t, db, "hr@h.com", "111")

	seedPublishedJob(t, db, company.ID, "ICU Nurse Seoul")
	seedPublishedJob(t, db, company.ID, "Ward Nurse Busan")
	draft := &models.JobPost{CompanyID: company.ID, Status: models.JobDraft, Title: "Hidden Draft"}
	require.NoError(t, db.Create(draft).Error)

	resp, err := svc.Search(&dtos.JobSearchQuery{PageQuery: dtos.PageQuery{Page: 1, Size: 10}})
	require.NoError(t, err)
	assert.EqualValues(t, 2, resp.Total)

	resp, err = svc.Search(&dtos.JobSearchQuery{Keyword: "icu", PageQuery: dtos.PageQuery{Page: 1, Size: 10}})
	require.NoError(t, err)
	assert.EqualValues(t, 1, resp.Total)
	assert.Equal(t, "ICU Nurse Seoul", resp.Items[0].Title)
	assert.Equal(t, "Test Hospital", resp.Items[0].CompanyName)
}

func TestCompanyJobsListsAllStatuses(t *testing.T) {
	db := testDB(t)
	svc := NewJobService(db)
	user, company := seedCompany(t, db, "hr@h.com", "111")

	seedPublishedJob(t, db, company.ID, "Published")
	_, err := svc.Create(user.ID, &dtos.JobCreateRequest{Title: "Draft"})
	require.NoError(t, err)

	resp, err := svc.CompanyJobs(user.ID, dtos.PageQuery{Page: 1, Size: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, resp.Total)
}

func TestSitemapOnlyPublished(t *testing.T) {
	db := testDB(t)
	svc := NewJobService(db)
	_, company := seedCompany(t, db, "hr@h.com", "111")

	job := seedPublishedJob(t, db, company.ID, "Published")
	draft := &models.JobPost{CompanyID: company.ID, Status: models.JobDraft, Title: "Draft"}
	require.NoError(t, db.Create(draft).Error)

	entries, err := svc.Sitemap()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, job.ID, entries[0].ID)
}
