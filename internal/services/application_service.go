package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/medihire/medihire/internal/apperr"
	"github.com/medihire/medihire/internal/dtos"
	"github.com/medihire/medihire/internal/models"
)

type ApplicationService struct {
	DB     *gorm.DB
	Notifs *NotificationService
}

func NewApplicationService(db *gorm.DB, notifs *NotificationService) *ApplicationService {
	return &ApplicationService{DB: db, Notifs: notifs}
}

// Apply submits a resume to a published job. One application per
// applicant per job, enforced both here and by the unique index.
func (s *ApplicationService) Apply(userID, jobID uuid.UUID, req *dtos.ApplyRequest) (*dtos.ApplicationRead, error) {
	var read *dtos.ApplicationRead
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var job models.JobPost
		if err := tx.First(&job, "id = ?", jobID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("NOT_FOUND", "job post not found")
			}
			return err
		}
		if job.Status != models.JobPublished {
			return apperr.Conflict("JOB_NOT_PUBLISHABLE", "job post is not accepting applications")
		}

		// Someone else's resume is indistinguishable from a missing one.
		var resume models.Resume
		if err := tx.First(&resume, "id = ?", req.ResumeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("RESUME_NOT_FOUND", "resume not found")
			}
			return err
		}
		if resume.UserID != userID {
			return apperr.NotFound("RESUME_NOT_FOUND", "resume not found")
		}

		var dup int64
		if err := tx.Model(&models.Application{}).
			Where("job_post_id = ? AND applicant_user_id = ?", jobID, userID).
			Count(&dup).Error; err != nil {
			return err
		}
		if dup > 0 {
			return apperr.Conflict("DUPLICATE_APPLICATION", "already applied to this job")
		}

		app := models.Application{
			JobPostID:       jobID,
			ApplicantUserID: userID,
			ResumeID:        &req.ResumeID,
			Status:          models.ApplicationReceived,
		}
		if err := tx.Create(&app).Error; err != nil {
			return err
		}

		history := models.ApplicationStatusHistory{
			ApplicationID: app.ID,
			FromStatus:    nil,
			ToStatus:      models.ApplicationReceived,
			ChangedBy:     &userID,
		}
		if err := tx.Create(&history).Error; err != nil {
			return err
		}

		members, err := companyMemberIDs(tx, job.CompanyID)
		if err != nil {
			return err
		}
		for _, memberID := range members {
			err := s.Notifs.Create(tx, memberID, models.NotifApplicationReceived, map[string]any{
				"application_id": app.ID.String(),
				"job_post_id":    job.ID.String(),
				"job_title":      job.Title,
			})
			if err != nil {
				return err
			}
		}

		read = &dtos.ApplicationRead{
			ID:              app.ID,
			JobPostID:       job.ID,
			JobTitle:        job.Title,
			ApplicantUserID: userID,
			ResumeID:        &req.ResumeID,
			Status:          app.Status,
			CreatedAt:       app.CreatedAt,
			UpdatedAt:       app.UpdatedAt,
		}
		return nil
	})
	return read, err
}

// ListMine returns the caller's applications newest first, joined with
// the job title and company name.
func (s *ApplicationService) ListMine(userID uuid.UUID, page dtos.PageQuery) (*dtos.ListResponse[dtos.ApplicationRead], error) {
	page.Clamp()

	base := s.DB.Model(&models.Application{}).Where("applications.applicant_user_id = ?", userID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, err
	}

	var apps []models.Application
	if err := s.DB.Where("applicant_user_id = ?", userID).
		Order("created_at DESC").
		Offset(page.Offset()).Limit(page.Size).
		Find(&apps).Error; err != nil {
		return nil, err
	}

	items, err := s.projectApplications(s.DB, apps)
	if err != nil {
		return nil, err
	}
	return &dtos.ListResponse[dtos.ApplicationRead]{Items: items, Total: total}, nil
}

// GetMine returns the applicant's own application with its full status
// trail. Company notes are never exposed to the applicant.
func (s *ApplicationService) GetMine(userID, applicationID uuid.UUID) (*dtos.ApplicationDetailRead, error) {
	app, err := s.loadApplication(s.DB, applicationID)
	if err != nil {
		return nil, err
	}
	if app.ApplicantUserID != userID {
		return nil, apperr.Forbidden("FORBIDDEN", "not your application")
	}
	detail, err := s.buildDetail(s.DB, app, false)
	if err != nil {
		return nil, err
	}
	return detail, nil
}

// ListForCompany lists applications across the company's job posts,
// optionally narrowed to one job or one status.
func (s *ApplicationService) ListForCompany(userID uuid.UUID, filter *dtos.ApplicantFilter) (*dtos.ListResponse[dtos.ApplicationRead], error) {
	filter.Clamp()

	company, err := companyForUser(s.DB, userID)
	if err != nil {
		return nil, err
	}

	query := s.DB.Model(&models.Application{}).
		Joins("JOIN job_posts ON job_posts.id = applications.job_post_id").
		Where("job_posts.company_id = ?", company.ID)
	if filter.JobPostID != nil {
		query = query.Where("applications.job_post_id = ?", *filter.JobPostID)
	}
	if filter.Status != "" {
		query = query.Where("applications.status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var apps []models.Application
	if err := query.Select("applications.*").
		Order("applications.created_at DESC").
		Offset(filter.Offset()).Limit(filter.Size).
		Find(&apps).Error; err != nil {
		return nil, err
	}

	items, err := s.projectApplications(s.DB, apps)
	if err != nil {
		return nil, err
	}
	return &dtos.ListResponse[dtos.ApplicationRead]{Items: items, Total: total}, nil
}

// GetDetailForCompany returns one application with history and notes.
// The application must belong to one of the company's job posts.
func (s *ApplicationService) GetDetailForCompany(userID, applicationID uuid.UUID) (*dtos.ApplicationDetailRead, error) {
	company, err := companyForUser(s.DB, userID)
	if err != nil {
		return nil, err
	}
	app, err := s.loadApplication(s.DB, applicationID)
	if err != nil {
		return nil, err
	}
	if err := s.checkCompanyOwns(s.DB, company.ID, app); err != nil {
		return nil, err
	}
	return s.buildDetail(s.DB, app, true)
}

// ChangeStatus moves an application along the pipeline. HIRED and
// REJECTED are terminal; any further transition is refused.
func (s *ApplicationService) ChangeStatus(userID, applicationID uuid.UUID, req *dtos.ApplicationStatusRequest) (*dtos.ApplicationDetailRead, error) {
	var detail *dtos.ApplicationDetailRead
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		company, err := companyForUser(tx, userID)
		if err != nil {
			return err
		}
		app, err := s.loadApplication(tx, applicationID)
		if err != nil {
			return err
		}
		if err := s.checkCompanyOwns(tx, company.ID, app); err != nil {
			return err
		}
		if app.Status.IsFinal() {
			return apperr.Conflict("ALREADY_FINAL", "application already reached a final status")
		}

		from := app.Status
		to := req.Status
		if from == to {
			detail, err = s.buildDetail(tx, app, true)
			return err
		}

		if err := tx.Model(app).Update("status", to).Error; err != nil {
			return err
		}
		app.Status = to

		history := models.ApplicationStatusHistory{
			ApplicationID: app.ID,
			FromStatus:    &from,
			ToStatus:      to,
			ChangedBy:     &userID,
			Note:          req.Note,
		}
		if err := tx.Create(&history).Error; err != nil {
			return err
		}

		var job models.JobPost
		if err := tx.First(&job, "id = ?", app.JobPostID).Error; err != nil {
			return err
		}
		err = s.Notifs.Create(tx, app.ApplicantUserID, models.NotifStatusChanged, map[string]any{
			"application_id": app.ID.String(),
			"job_title":      job.Title,
			"from_status":    string(from),
			"to_status":      string(to),
		})
		if err != nil {
			return err
		}

		detail, err = s.buildDetail(tx, app, true)
		return err
	})
	return detail, err
}

// AddNote appends a private company-side note on an application.
func (s *ApplicationService) AddNote(userID, applicationID uuid.UUID, req *dtos.ApplicationNoteRequest) (*models.ApplicationNote, error) {
	var note *models.ApplicationNote
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		company, err := companyForUser(tx, userID)
		if err != nil {
			return err
		}
		app, err := s.loadApplication(tx, applicationID)
		if err != nil {
			return err
		}
		if err := s.checkCompanyOwns(tx, company.ID, app); err != nil {
			return err
		}
		note = &models.ApplicationNote{
			ApplicationID: app.ID,
			CompanyID:     company.ID,
			AuthorUserID:  userID,
			Note:          req.Note,
		}
		return tx.Create(note).Error
	})
	return note, err
}

func (s *ApplicationService) loadApplication(tx *gorm.DB, applicationID uuid.UUID) (*models.Application, error) {
	var app models.Application
	if err := tx.First(&app, "id = ?", applicationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("NOT_FOUND", "application not found")
		}
		return nil, err
	}
	return &app, nil
}

func (s *ApplicationService) checkCompanyOwns(tx *gorm.DB, companyID uuid.UUID, app *models.Application) error {
	var job models.JobPost
	if err := tx.First(&job, "id = ?", app.JobPostID).Error; err != nil {
		return err
	}
	if job.CompanyID != companyID {
		return apperr.Forbidden("FORBIDDEN", "application belongs to another company's job")
	}
	return nil
}

func (s *ApplicationService) buildDetail(tx *gorm.DB, app *models.Application, withNotes bool) (*dtos.ApplicationDetailRead, error) {
	reads, err := s.projectApplications(tx, []models.Application{*app})
	if err != nil {
		return nil, err
	}

	var history []models.ApplicationStatusHistory
	if err := tx.Where("application_id = ?", app.ID).
		Order("created_at ASC").
		Find(&history).Error; err != nil {
		return nil, err
	}

	detail := &dtos.ApplicationDetailRead{
		ApplicationRead: reads[0],
		StatusHistory:   history,
		Notes:           []models.ApplicationNote{},
	}
	if withNotes {
		if err := tx.Where("application_id = ?", app.ID).
			Order("created_at ASC").
			Find(&detail.Notes).Error; err != nil {
			return nil, err
		}
	}
	return detail, nil
}

// projectApplications joins job title, company name and applicant name
// onto raw application rows.
func (s *ApplicationService) projectApplications(tx *gorm.DB, apps []models.Application) ([]dtos.ApplicationRead, error) {
	reads := make([]dtos.ApplicationRead, 0, len(apps))
	if len(apps) == 0 {
		return reads, nil
	}

	jobIDs := make([]uuid.UUID, 0, len(apps))
	userIDs := make([]uuid.UUID, 0, len(apps))
	for _, a := range apps {
		jobIDs = append(jobIDs, a.JobPostID)
		userIDs = append(userIDs, a.ApplicantUserID)
	}

	var jobs []models.JobPost
	if err := tx.Where("id IN ?", jobIDs).Find(&jobs).Error; err != nil {
		return nil, err
	}
	jobByID := map[uuid.UUID]models.JobPost{}
	for _, j := range jobs {
		jobByID[j.ID] = j
	}

	companies, err := companiesByID(tx, jobs)
	if err != nil {
		return nil, err
	}

	var profiles []models.UserProfile
	if err := tx.Where("user_id IN ?", userIDs).Find(&profiles).Error; err != nil {
		return nil, err
	}
	nameByUser := map[uuid.UUID]string{}
	for _, p := range profiles {
		nameByUser[p.UserID] = p.Name
	}

	for _, a := range apps {
		read := dtos.ApplicationRead{
			ID:              a.ID,
			JobPostID:       a.JobPostID,
			ApplicantUserID: a.ApplicantUserID,
			ApplicantName:   nameByUser[a.ApplicantUserID],
			ResumeID:        a.ResumeID,
			Status:          a.Status,
			CreatedAt:       a.CreatedAt,
			UpdatedAt:       a.UpdatedAt,
		}
		if job, ok := jobByID[a.JobPostID]; ok {
			read.JobTitle = job.Title
			if co, ok := companies[job.CompanyID]; ok {
				read.CompanyName = co.Name
			}
		}
		reads = append(reads, read)
	}
	return reads, nil
}
