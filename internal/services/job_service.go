package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/medihire/medihire/internal/apperr"
	"github.com/medihire/medihire/internal/dtos"
	"github.com/medihire/medihire/internal/models"
)

type JobService struct {
	DB *gorm.DB
}

func NewJobService(db *gorm.DB) *JobService {
	return &JobService{DB: db}
}

func recordJobHistory(tx *gorm.DB, jobID uuid.UUID, action string, changedBy *uuid.UUID, diff any) error {
	history := models.JobPostHistory{
		JobPostID: jobID,
		ChangedBy: changedBy,
		Action:    action,
	}
	if diff != nil {
		raw, err := json.Marshal(diff)
		if err != nil {
			return err
		}
		history.DiffJSON = raw
	}
	return tx.Create(&history).Error
}

func companyJob(tx *gorm.DB, companyID, jobID uuid.UUID) (*models.JobPost, error) {
	var job models.JobPost
	if err := tx.First(&job, "id = ?", jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("NOT_FOUND", "job post not found")
		}
		return nil, err
	}
	if job.CompanyID != companyID {
		return nil, apperr.Forbidden("FORBIDDEN", "job post belongs to another company")
	}
	return &job, nil
}

func hasApprovedVerification(tx *gorm.DB, companyID uuid.UUID) (bool, error) {
	var count int64
	err := tx.Model(&models.CompanyVerification{}).
		Where("company_id = ? AND status = ?", companyID, models.VerificationApproved).
		Count(&count).Error
	return count > 0, err
}

// Create always starts a job in DRAFT and records CREATE history.
func (s *JobService) Create(userID uuid.UUID, req *dtos.JobCreateRequest) (*dtos.JobRead, error) {
	var read *dtos.JobRead
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		company, err := companyForUser(tx, userID)
		if err != nil {
			return err
		}
		job := models.JobPost{
			CompanyID:      company.ID,
			Status:         models.JobDraft,
			Title:          req.Title,
			Body:           req.Body,
			JobCategory:    req.JobCategory,
			Department:     req.Department,
			Specialty:      req.Specialty,
			EmploymentType: req.EmploymentType,
			ShiftType:      req.ShiftType,
			SalaryType:     req.SalaryType,
			SalaryMin:      req.SalaryMin,
			SalaryMax:      req.SalaryMax,
			LocationCode:   req.LocationCode,
			LocationDetail: req.LocationDetail,
			ContactName:    req.ContactName,
			ContactVisible: req.ContactVisible,
			CloseAt:        req.CloseAt,
		}
		if err := tx.Create(&job).Error; err != nil {
			return err
		}
		if err := recordJobHistory(tx, job.ID, models.JobActionCreate, &userID, nil); err != nil {
			return err
		}
		read = &dtos.JobRead{JobPost: job, CompanyName: company.Name, CompanyType: company.Type}
		return nil
	})
	return read, err
}

// Update diffs only supplied fields against current values, applies the
// changes and appends one UPDATE history row. A no-op update writes none.
func (s *JobService) Update(userID, jobID uuid.UUID, req *dtos.JobUpdateRequest) (*dtos.JobRead, error) {
	var read *dtos.JobRead
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		company, err := companyForUser(tx, userID)
		if err != nil {
			return err
		}
		job, err := companyJob(tx, company.ID, jobID)
		if err != nil {
			return err
		}
		if job.Status == models.JobBlinded {
			return apperr.Forbidden("JOB_BLINDED", "blinded job posts cannot be updated")
		}

		diff := map[string]map[string]string{}
		updates := map[string]any{}

		diffStr := func(column, old string, supplied *string) {
			if supplied != nil && old != *supplied {
				diff[column] = map[string]string{"from": old, "to": *supplied}
				updates[column] = *supplied
			}
		}
		diffIntPtr := func(column string, old, supplied *int) {
			if supplied == nil {
				return
			}
			if old == nil || *old != *supplied {
				diff[column] = map[string]string{"from": fmtIntPtr(old), "to": fmt.Sprintf("%d", *supplied)}
				updates[column] = *supplied
			}
		}

		diffStr("title", job.Title, req.Title)
		diffStr("body", job.Body, req.Body)
		diffStr("job_category", job.JobCategory, req.JobCategory)
		diffStr("department", job.Department, req.Department)
		diffStr("specialty", job.Specialty, req.Specialty)
		diffStr("employment_type", job.EmploymentType, req.EmploymentType)
		diffStr("shift_type", job.ShiftType, req.ShiftType)
		diffStr("salary_type", job.SalaryType, req.SalaryType)
		diffIntPtr("salary_min", job.SalaryMin, req.SalaryMin)
		diffIntPtr("salary_max", job.SalaryMax, req.SalaryMax)
		diffStr("location_code", job.LocationCode, req.LocationCode)
		diffStr("location_detail", job.LocationDetail, req.LocationDetail)
		diffStr("contact_name", job.ContactName, req.ContactName)
		if req.ContactVisible != nil && job.ContactVisible != *req.ContactVisible {
			diff["contact_visible"] = map[string]string{
				"from": fmt.Sprintf("%t", job.ContactVisible),
				"to":   fmt.Sprintf("%t", *req.ContactVisible),
			}
			updates["contact_visible"] = *req.ContactVisible
		}
		if req.CloseAt != nil && (job.CloseAt == nil || !job.CloseAt.Equal(*req.CloseAt)) {
			diff["close_at"] = map[string]string{
				"from": fmtTimePtr(job.CloseAt),
				"to":   req.CloseAt.Format(time.RFC3339),
			}
			updates["close_at"] = *req.CloseAt
		}

		if len(updates) > 0 {
			if err := tx.Model(job).Updates(updates).Error; err != nil {
				return err
			}
			if err := recordJobHistory(tx, job.ID, models.JobActionUpdate, &userID, diff); err != nil {
				return err
			}
		}
		read = &dtos.JobRead{JobPost: *job, CompanyName: company.Name, CompanyType: company.Type}
		return nil
	})
	return read, err
}

// Publish gates on an approved verification, the DRAFT/CLOSED states and
// the required field set, then stamps published_at.
func (s *JobService) Publish(userID, jobID uuid.UUID) (*dtos.JobRead, error) {
	var read *dtos.JobRead
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		company, err := companyForUser(tx, userID)
		if err != nil {
			return err
		}
		job, err := companyJob(tx, company.ID, jobID)
		if err != nil {
			return err
		}

		verified, err := hasApprovedVerification(tx, company.ID)
		if err != nil {
			return err
		}
		if !verified {
			return apperr.Forbidden("COMPANY_NOT_VERIFIED", "company verification required to publish")
		}

		if job.Status != models.JobDraft && job.Status != models.JobClosed {
			return apperr.Conflict("INVALID_STATE", fmt.Sprintf("cannot publish from status %s", job.Status))
		}

		var missing []string
		if job.Title == "" {
			missing = append(missing, "title")
		}
		if job.JobCategory == "" {
			missing = append(missing, "job_category")
		}
		if job.EmploymentType == "" {
			missing = append(missing, "employment_type")
		}
		if job.LocationCode == "" {
			missing = append(missing, "location_code")
		}
		if len(missing) > 0 {
			return apperr.BadRequest("MISSING_REQUIRED_FIELDS",
				"missing required fields: "+strings.Join(missing, ", ")).
				WithDetails(map[string]any{"fields": missing})
		}

		now := time.Now().UTC()
		job.Status = models.JobPublished
		job.PublishedAt = &now
		if err := tx.Model(job).Updates(map[string]any{"status": job.Status, "published_at": now}).Error; err != nil {
			return err
		}
		if err := recordJobHistory(tx, job.ID, models.JobActionPublish, &userID, nil); err != nil {
			return err
		}
		zap.L().Info("job published",
			zap.String("job_id", job.ID.String()),
			zap.String("company_id", company.ID.String()))
		read = &dtos.JobRead{JobPost: *job, CompanyName: company.Name, CompanyType: company.Type}
		return nil
	})
	return read, err
}

func (s *JobService) Close(userID, jobID uuid.UUID) (*dtos.JobRead, error) {
	var read *dtos.JobRead
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		company, err := companyForUser(tx, userID)
		if err != nil {
			return err
		}
		job, err := companyJob(tx, company.ID, jobID)
		if err != nil {
			return err
		}
		if job.Status != models.JobPublished {
			return apperr.Conflict("NOT_PUBLISHED", "only published job posts can be closed")
		}
		job.Status = models.JobClosed
		if err := tx.Model(job).Update("status", job.Status).Error; err != nil {
			return err
		}
		if err := recordJobHistory(tx, job.ID, models.JobActionClose, &userID, nil); err != nil {
			return err
		}
		read = &dtos.JobRead{JobPost: *job, CompanyName: company.Name, CompanyType: company.Type}
		return nil
	})
	return read, err
}

// CompanyJobs lists the caller's company posts, newest first.
func (s *JobService) CompanyJobs(userID uuid.UUID, page dtos.PageQuery) (*dtos.JobListResponse, error) {
	page.Clamp()
	company, err := companyForUser(s.DB, userID)
	if err != nil {
		return nil, err
	}

	var total int64
	if err := s.DB.Model(&models.JobPost{}).Where("company_id = ?", company.ID).Count(&total).Error; err != nil {
		return nil, err
	}

	var jobs []models.JobPost
	if err := s.DB.Where("company_id = ?", company.ID).
		Order("created_at DESC").
		Offset(page.Offset()).Limit(page.Size).
		Find(&jobs).Error; err != nil {
		return nil, err
	}

	items := make([]dtos.JobRead, 0, len(jobs))
	for _, j := range jobs {
		items = append(items, dtos.JobRead{JobPost: j, CompanyName: company.Name, CompanyType: company.Type})
	}
	return &dtos.JobListResponse{Items: items, Page: page.Page, Size: page.Size, Total: total}, nil
}

// Search queries PUBLISHED posts. Ties are broken by id so pagination
// stays deterministic across requests.
func (s *JobService) Search(q *dtos.JobSearchQuery) (*dtos.JobListResponse, error) {
	q.Clamp()

	query := s.DB.Model(&models.JobPost{}).Where("status = ?", models.JobPublished)
	if q.Keyword != "" {
		kw := "%" + strings.ToLower(q.Keyword) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(body) LIKE ?", kw, kw)
	}
	if q.LocationCode != "" {
		query = query.Where("location_code = ?", q.LocationCode)
	}
	if q.JobCategory != "" {
		query = query.Where("job_category = ?", q.JobCategory)
	}
	if q.ShiftType != "" {
		query = query.Where("shift_type = ?", q.ShiftType)
	}
	if q.EmploymentType != "" {
		query = query.Where("employment_type = ?", q.EmploymentType)
	}
	if q.SalaryMin != nil {
		query = query.Where("salary_min IS NULL OR salary_min >= ?", *q.SalaryMin)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var order string
	switch q.Sort {
	case "SALARY_DESC":
		order = "salary_max DESC NULLS LAST"
	case "CLOSING_SOON":
		order = "close_at ASC NULLS LAST"
	case "VIEWS":
		order = "view_count DESC"
	default: // LATEST
		order = "published_at DESC NULLS LAST"
	}

	var jobs []models.JobPost
	if err := query.Order(order).Order("id").
		Offset(q.Offset()).Limit(q.Size).
		Find(&jobs).Error; err != nil {
		return nil, err
	}

	companies, err := companiesByID(s.DB, jobs)
	if err != nil {
		return nil, err
	}
	items := make([]dtos.JobRead, 0, len(jobs))
	for _, j := range jobs {
		read := dtos.JobRead{JobPost: j}
		if co, ok := companies[j.CompanyID]; ok {
			read.CompanyName = co.Name
			read.CompanyType = co.Type
		}
		items = append(items, read)
	}
	return &dtos.JobListResponse{Items: items, Page: q.Page, Size: q.Size, Total: total}, nil
}

// GetDetail serves the public detail view. BLINDED posts look identical
// to missing ones; each successful fetch bumps the view counter with an
// atomic column increment.
func (s *JobService) GetDetail(jobID uuid.UUID) (*dtos.JobRead, error) {
	var job models.JobPost
	if err := s.DB.First(&job, "id = ?", jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("NOT_FOUND", "job post not found")
		}
		return nil, err
	}
	if job.Status == models.JobBlinded {
		return nil, apperr.NotFound("NOT_FOUND", "job post not found")
	}

	var company models.Company
	if err := s.DB.First(&company, "id = ?", job.CompanyID).Error; err != nil {
		return nil, err
	}

	if err := s.DB.Model(&models.JobPost{}).Where("id = ?", job.ID).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error; err != nil {
		return nil, err
	}
	job.ViewCount++

	return &dtos.JobRead{JobPost: job, CompanyName: company.Name, CompanyType: company.Type}, nil
}

// Sitemap feeds crawlers the ids of all published posts.
func (s *JobService) Sitemap() ([]dtos.JobSitemapEntry, error) {
	var jobs []models.JobPost
	if err := s.DB.Select("id", "updated_at").
		Where("status = ?", models.JobPublished).
		Order("published_at DESC").
		Find(&jobs).Error; err != nil {
		return nil, err
	}
	entries := make([]dtos.JobSitemapEntry, 0, len(jobs))
	for _, j := range jobs {
		entries = append(entries, dtos.JobSitemapEntry{ID: j.ID, UpdatedAt: j.UpdatedAt})
	}
	return entries, nil
}

func companiesByID(tx *gorm.DB, jobs []models.JobPost) (map[uuid.UUID]models.Company, error) {
	ids := make([]uuid.UUID, 0, len(jobs))
	seen := map[uuid.UUID]bool{}
	for _, j := range jobs {
		if !seen[j.CompanyID] {
			seen[j.CompanyID] = true
			ids = append(ids, j.CompanyID)
		}
	}
	out := map[uuid.UUID]models.Company{}
	if len(ids) == 0 {
		return out, nil
	}
	var companies []models.Company
	if err := tx.Where("id IN ?", ids).Find(&companies).Error; err != nil {
		return nil, err
	}
	for _, co := range companies {
		out[co.ID] = co
	}
	return out, nil
}

func fmtIntPtr(v *int) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%d", *v)
}

func fmtTimePtr(v *time.Time) string {
	if v == nil {
		return ""
	}
	return v.Format(time.RFC3339)
}
