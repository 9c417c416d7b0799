package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/medihire/medihire/internal/apperr"
	"github.com/medihire/medihire/internal/dtos"
	"github.com/medihire/medihire/internal/models"
)

type ScoutService struct {
	DB     *gorm.DB
	Notifs *NotificationService
}

func NewScoutService(db *gorm.DB, notifs *NotificationService) *ScoutService {
	return &ScoutService{DB: db, Notifs: notifs}
}

// SearchTalents lists PUBLIC resumes as anonymized summaries. Names,
// contacts and license numbers never leave this projection.
func (s *ScoutService) SearchTalents(userID uuid.UUID, q *dtos.TalentSearchQuery) (*dtos.ListResponse[dtos.TalentSummary], error) {
	q.Clamp()

	if _, err := companyForUser(s.DB, userID); err != nil {
		return nil, err
	}

	query := s.DB.Model(&models.Resume{}).Where("visibility = ?", models.VisibilityPublic)
	if q.Keyword != "" {
		kw := "%" + strings.ToLower(q.Keyword) + "%"
		query = query.Where("LOWER(summary) LIKE ? OR LOWER(desired_job) LIKE ?", kw, kw)
	}
	if q.DesiredJob != "" {
		query = query.Where("desired_job = ?", q.DesiredJob)
	}
	if q.DesiredRegion != "" {
		query = query.Where("desired_region = ?", q.DesiredRegion)
	}
	if q.IsExperienced != nil {
		query = query.Where("is_experienced = ?", *q.IsExperienced)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var resumes []models.Resume
	if err := query.Preload("Licenses").Preload("Careers").
		Order("updated_at DESC").
		Offset(q.Offset()).Limit(q.Size).
		Find(&resumes).Error; err != nil {
		return nil, err
	}

	items := make([]dtos.TalentSummary, 0, len(resumes))
	for _, r := range resumes {
		items = append(items, summarizeTalent(&r))
	}
	return &dtos.ListResponse[dtos.TalentSummary]{Items: items, Total: total}, nil
}

func summarizeTalent(r *models.Resume) dtos.TalentSummary {
	licenseTypes := make([]string, 0, len(r.Licenses))
	for _, lic := range r.Licenses {
		licenseTypes = append(licenseTypes, lic.LicenseType)
	}
	preview := r.Summary
	if len([]rune(preview)) > 100 {
		preview = string([]rune(preview)[:100])
	}
	return dtos.TalentSummary{
		ID:             r.ID,
		DesiredJob:     r.DesiredJob,
		DesiredRegion:  r.DesiredRegion,
		IsExperienced:  r.IsExperienced,
		LicenseTypes:   licenseTypes,
		CareerCount:    len(r.Careers),
		SummaryPreview: preview,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

// Send opens a scout toward the owner of a public resume. One live
// scout per company/candidate pair; a REJECTED one may be retried.
func (s *ScoutService) Send(userID uuid.UUID, req *dtos.ScoutCreateRequest) (*dtos.ScoutRead, error) {
	var read *dtos.ScoutRead
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		company, err := companyForUser(tx, userID)
		if err != nil {
			return err
		}

		var resume models.Resume
		if err := tx.First(&resume, "id = ?", req.ResumeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("RESUME_NOT_FOUND", "resume not found")
			}
			return err
		}
		if resume.Visibility != models.VisibilityPublic {
			return apperr.Forbidden("RESUME_PRIVATE", "resume is not open to scouting")
		}

		var jobTitle string
		if req.JobPostID != nil {
			job, err := companyJob(tx, company.ID, *req.JobPostID)
			if err != nil {
				return err
			}
			if job.Status != models.JobPublished {
				return apperr.Conflict("JOB_NOT_PUBLISHED", "scout can only reference a published job")
			}
			jobTitle = job.Title
		}

		var dup int64
		if err := tx.Model(&models.Scout{}).
			Where("company_id = ? AND user_id = ? AND status <> ?", company.ID, resume.UserID, models.ScoutRejected).
			Count(&dup).Error; err != nil {
			return err
		}
		if dup > 0 {
			return apperr.Conflict("DUPLICATE_SCOUT", "an open scout to this candidate already exists")
		}

		scout := models.Scout{
			CompanyID: company.ID,
			UserID:    resume.UserID,
			JobPostID: req.JobPostID,
			Status:    models.ScoutSent,
			Message:   req.Message,
		}
		if err := tx.Create(&scout).Error; err != nil {
			return err
		}

		err = s.Notifs.Create(tx, resume.UserID, models.NotifScoutReceived, map[string]any{
			"scout_id":     scout.ID.String(),
			"company_name": company.Name,
		})
		if err != nil {
			return err
		}

		read = &dtos.ScoutRead{
			ID:          scout.ID,
			CompanyID:   company.ID,
			CompanyName: company.Name,
			UserID:      scout.UserID,
			JobPostID:   scout.JobPostID,
			JobTitle:    jobTitle,
			Status:      scout.Status,
			Message:     scout.Message,
			CreatedAt:   scout.CreatedAt,
			UpdatedAt:   scout.UpdatedAt,
		}
		return nil
	})
	return read, err
}

// ListForCompany lists scouts the caller's company has sent.
func (s *ScoutService) ListForCompany(userID uuid.UUID, filter *dtos.ScoutFilter) (*dtos.ListResponse[dtos.ScoutRead], error) {
	filter.Clamp()

	company, err := companyForUser(s.DB, userID)
	if err != nil {
		return nil, err
	}
	return s.list(s.DB.Where("company_id = ?", company.ID), filter)
}

// ListForUser lists scouts received by the candidate.
func (s *ScoutService) ListForUser(userID uuid.UUID, filter *dtos.ScoutFilter) (*dtos.ListResponse[dtos.ScoutRead], error) {
	filter.Clamp()
	return s.list(s.DB.Where("user_id = ?", userID), filter)
}

// GetForUser returns one received scout. A first read moves SENT to
// VIEWED so the sender can see the message landed.
func (s *ScoutService) GetForUser(userID, scoutID uuid.UUID) (*dtos.ScoutRead, error) {
	var read *dtos.ScoutRead
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		scout, err := s.loadScout(tx, scoutID)
		if err != nil {
			return err
		}
		if scout.UserID != userID {
			return apperr.Forbidden("FORBIDDEN", "not your scout")
		}
		if scout.Status == models.ScoutSent {
			if err := tx.Model(scout).Update("status", models.ScoutViewed).Error; err != nil {
				return err
			}
			scout.Status = models.ScoutViewed
		}
		read, err = s.project(tx, scout)
		return err
	})
	return read, err
}

// Respond records the candidate's answer. ACCEPTED and REJECTED are
// final; HOLD keeps the thread open.
func (s *ScoutService) Respond(userID, scoutID uuid.UUID, req *dtos.ScoutRespondRequest) (*dtos.ScoutRead, error) {
	var read *dtos.ScoutRead
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		scout, err := s.loadScout(tx, scoutID)
		if err != nil {
			return err
		}
		if scout.UserID != userID {
			return apperr.Forbidden("FORBIDDEN", "not your scout")
		}
		if scout.Status.IsFinal() {
			return apperr.Conflict("ALREADY_RESPONDED", "scout has already been answered")
		}

		if err := tx.Model(scout).Update("status", req.Status).Error; err != nil {
			return err
		}
		scout.Status = req.Status

		members, err := companyMemberIDs(tx, scout.CompanyID)
		if err != nil {
			return err
		}
		for _, memberID := range members {
			err := s.Notifs.Create(tx, memberID, models.NotifScoutResponded, map[string]any{
				"scout_id": scout.ID.String(),
				"status":   string(scout.Status),
			})
			if err != nil {
				return err
			}
		}

		read, err = s.project(tx, scout)
		return err
	})
	return read, err
}

func (s *ScoutService) loadScout(tx *gorm.DB, scoutID uuid.UUID) (*models.Scout, error) {
	var scout models.Scout
	if err := tx.First(&scout, "id = ?", scoutID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("NOT_FOUND", "scout not found")
		}
		return nil, err
	}
	return &scout, nil
}

func (s *ScoutService) list(query *gorm.DB, filter *dtos.ScoutFilter) (*dtos.ListResponse[dtos.ScoutRead], error) {
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Model(&models.Scout{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var scouts []models.Scout
	if err := query.Order("created_at DESC").
		Offset(filter.Offset()).Limit(filter.Size).
		Find(&scouts).Error; err != nil {
		return nil, err
	}

	items := make([]dtos.ScoutRead, 0, len(scouts))
	for i := range scouts {
		read, err := s.project(s.DB, &scouts[i])
		if err != nil {
			return nil, err
		}
		items = append(items, *read)
	}
	return &dtos.ListResponse[dtos.ScoutRead]{Items: items, Total: total}, nil
}

func (s *ScoutService) project(tx *gorm.DB, scout *models.Scout) (*dtos.ScoutRead, error) {
	read := &dtos.ScoutRead{
		ID:        scout.ID,
		CompanyID: scout.CompanyID,
		UserID:    scout.UserID,
		JobPostID: scout.JobPostID,
		Status:    scout.Status,
		Message:   scout.Message,
		CreatedAt: scout.CreatedAt,
		UpdatedAt: scout.UpdatedAt,
	}

	var company models.Company
	if err := tx.First(&company, "id = ?", scout.CompanyID).Error; err == nil {
		read.CompanyName = company.Name
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if scout.JobPostID != nil {
		var job models.JobPost
		if err := tx.First(&job, "id = ?", *scout.JobPostID).Error; err == nil {
			read.JobTitle = job.Title
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	return read, nil
}
