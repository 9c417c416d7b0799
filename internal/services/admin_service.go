package services

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/medihire/medihire/internal/apperr"
	"github.com/medihire/medihire/internal/dtos"
	"github.com/medihire/medihire/internal/models"
)

type AdminService struct {
	DB *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{DB: db}
}

// Dashboard aggregates the counters the back office lands on.
func (s *AdminService) Dashboard() (*dtos.AdminDashboard, error) {
	dash := &dtos.AdminDashboard{}

	if err := s.DB.Model(&models.CompanyVerification{}).
		Where("status = ?", models.VerificationPending).
		Count(&dash.PendingVerifications).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Report{}).
		Where("status = ?", models.ReportPending).
		Count(&dash.PendingReports).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.JobPost{}).
		Where("status = ?", models.JobPublished).
		Count(&dash.PublishedJobs).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.User{}).Count(&dash.TotalUsers).Error; err != nil {
		return nil, err
	}

	midnight := time.Now().UTC().Truncate(24 * time.Hour)
	if err := s.DB.Model(&models.Application{}).
		Where("created_at >= ?", midnight).
		Count(&dash.TodayApplications).Error; err != nil {
		return nil, err
	}
	return dash, nil
}

// ModerationJobs lists posts with their open report counts, most
// reported first.
func (s *AdminService) ModerationJobs(page dtos.PageQuery) (*dtos.ListResponse[dtos.JobModerationItem], error) {
	page.Clamp()

	var total int64
	if err := s.DB.Model(&models.JobPost{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var jobs []models.JobPost
	if err := s.DB.Order("created_at DESC").
		Offset(page.Offset()).Limit(page.Size).
		Find(&jobs).Error; err != nil {
		return nil, err
	}

	companies, err := companiesByID(s.DB, jobs)
	if err != nil {
		return nil, err
	}

	items := make([]dtos.JobModerationItem, 0, len(jobs))
	for _, j := range jobs {
		var reportCount int64
		if err := s.DB.Model(&models.Report{}).
			Where("target_type = ? AND target_id = ? AND status = ?", models.TargetJob, j.ID, models.ReportPending).
			Count(&reportCount).Error; err != nil {
			return nil, err
		}
		item := dtos.JobModerationItem{
			ID:          j.ID,
			Title:       j.Title,
			Status:      j.Status,
			PublishedAt: j.PublishedAt,
			ViewCount:   j.ViewCount,
			ReportCount: reportCount,
		}
		if co, ok := companies[j.CompanyID]; ok {
			item.CompanyName = co.Name
		}
		items = append(items, item)
	}
	return &dtos.ListResponse[dtos.JobModerationItem]{Items: items, Total: total}, nil
}

// BlindJob hides a post from every public surface.
func (s *AdminService) BlindJob(adminUserID, jobID uuid.UUID) (*models.JobPost, error) {
	var job *models.JobPost
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		j, err := s.loadJob(tx, jobID)
		if err != nil {
			return err
		}
		if j.Status == models.JobBlinded {
			return apperr.Conflict("ALREADY_BLINDED", "job post is already blinded")
		}

		if err := tx.Model(j).Update("status", models.JobBlinded).Error; err != nil {
			return err
		}
		j.Status = models.JobBlinded
		if err := recordJobHistory(tx, j.ID, models.JobActionBlind, &adminUserID, nil); err != nil {
			return err
		}
		if err := writeAdminLog(tx, adminUserID, "JOB_BLIND", models.TargetJob, &j.ID, nil); err != nil {
			return err
		}
		zap.L().Info("job blinded", zap.String("job_id", j.ID.String()))
		job = j
		return nil
	})
	return job, err
}

// UnblindJob restores a blinded post to PUBLISHED. The original
// published_at stays as it was.
func (s *AdminService) UnblindJob(adminUserID, jobID uuid.UUID) (*models.JobPost, error) {
	var job *models.JobPost
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		j, err := s.loadJob(tx, jobID)
		if err != nil {
			return err
		}
		if j.Status != models.JobBlinded {
			return apperr.Conflict("NOT_BLINDED", "job post is not blinded")
		}

		if err := tx.Model(j).Update("status", models.JobPublished).Error; err != nil {
			return err
		}
		j.Status = models.JobPublished
		if err := recordJobHistory(tx, j.ID, models.JobActionUnblind, &adminUserID, nil); err != nil {
			return err
		}
		if err := writeAdminLog(tx, adminUserID, "JOB_UNBLIND", models.TargetJob, &j.ID, nil); err != nil {
			return err
		}
		job = j
		return nil
	})
	return job, err
}

// ListUsers searches the account base for the back office.
func (s *AdminService) ListUsers(filter *dtos.UserAdminFilter) (*dtos.ListResponse[models.User], error) {
	filter.Clamp()

	query := s.DB.Model(&models.User{})
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Keyword != "" {
		kw := "%" + strings.ToLower(filter.Keyword) + "%"
		query = query.Where("LOWER(email) LIKE ?", kw)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var users []models.User
	if err := query.Preload("Profile").
		Order("created_at DESC").
		Offset(filter.Offset()).Limit(filter.Size).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return &dtos.ListResponse[models.User]{Items: users, Total: total}, nil
}

// SetUserStatus suspends, reactivates or retires an account, with the
// reason preserved in the audit trail.
func (s *AdminService) SetUserStatus(adminUserID, userID uuid.UUID, req *dtos.UserStatusRequest) (*models.User, error) {
	var user *models.User
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var u models.User
		if err := tx.First(&u, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("NOT_FOUND", "user not found")
			}
			return err
		}
		if u.Status == req.Status {
			user = &u
			return nil
		}

		if err := tx.Model(&u).Update("status", req.Status).Error; err != nil {
			return err
		}
		u.Status = req.Status

		meta := map[string]any{"status": string(req.Status)}
		if req.Reason != "" {
			meta["reason"] = req.Reason
		}
		if err := writeAdminLog(tx, adminUserID, "USER_STATUS_CHANGE", models.TargetUser, &u.ID, meta); err != nil {
			return err
		}
		zap.L().Info("user status changed",
			zap.String("user_id", u.ID.String()),
			zap.String("status", string(req.Status)))
		user = &u
		return nil
	})
	return user, err
}

// Logs pages through the audit trail, newest first.
func (s *AdminService) Logs(page dtos.PageQuery) (*dtos.ListResponse[models.AdminLog], error) {
	page.Clamp()

	var total int64
	if err := s.DB.Model(&models.AdminLog{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var logs []models.AdminLog
	if err := s.DB.Order("created_at DESC").
		Offset(page.Offset()).Limit(page.Size).
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return &dtos.ListResponse[models.AdminLog]{Items: logs, Total: total}, nil
}

func (s *AdminService) loadJob(tx *gorm.DB, jobID uuid.UUID) (*models.JobPost, error) {
	var job models.JobPost
	if err := tx.First(&job, "id = ?", jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("NOT_FOUND", "job post not found")
		}
		return nil, err
	}
	return &job, nil
}
