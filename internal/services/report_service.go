package services

import (
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/medihire/medihire/internal/apperr"
	"github.com/medihire/medihire/internal/dtos"
	"github.com/medihire/medihire/internal/models"
)

type ReportService struct {
	DB *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{DB: db}
}

// Create files a report. The reporter may be anonymous.
func (s *ReportService) Create(reporterUserID *uuid.UUID, req *dtos.ReportCreateRequest) (*models.Report, error) {
	report := &models.Report{
		TargetType:     req.TargetType,
		TargetID:       req.TargetID,
		ReporterUserID: reporterUserID,
		ReasonCode:     req.ReasonCode,
		Detail:         req.Detail,
		Status:         models.ReportPending,
	}
	if err := s.DB.Create(report).Error; err != nil {
		return nil, err
	}
	return report, nil
}

// ListPending feeds the moderation queue, oldest first.
func (s *ReportService) ListPending(page dtos.PageQuery) (*dtos.ListResponse[models.Report], error) {
	page.Clamp()

	var total int64
	if err := s.DB.Model(&models.Report{}).
		Where("status = ?", models.ReportPending).
		Count(&total).Error; err != nil {
		return nil, err
	}

	var reports []models.Report
	if err := s.DB.Where("status = ?", models.ReportPending).
		Order("created_at ASC").
		Offset(page.Offset()).Limit(page.Size).
		Find(&reports).Error; err != nil {
		return nil, err
	}
	return &dtos.ListResponse[models.Report]{Items: reports, Total: total}, nil
}

// Process resolves a pending report. BLIND on a JOB target hides the
// post (idempotently, with history); WARN and DISMISS only close the
// report. Every decision lands in the audit trail.
func (s *ReportService) Process(adminUserID, reportID uuid.UUID, req *dtos.ReportProcessRequest) (*models.Report, error) {
	var report *models.Report
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var r models.Report
		if err := tx.First(&r, "id = ?", reportID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("NOT_FOUND", "report not found")
			}
			return err
		}
		if r.Status != models.ReportPending {
			return apperr.Conflict("ALREADY_PROCESSED", "report already processed")
		}

		if req.Action == models.ReportActionBlind && r.TargetType == models.TargetJob {
			var job models.JobPost
			if err := tx.First(&job, "id = ?", r.TargetID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.NotFound("TARGET_NOT_FOUND", "reported job post not found")
				}
				return err
			}
			if job.Status != models.JobBlinded {
				if err := tx.Model(&job).Update("status", models.JobBlinded).Error; err != nil {
					return err
				}
				if err := recordJobHistory(tx, job.ID, models.JobActionBlind, &adminUserID, nil); err != nil {
					return err
				}
			}
		}

		if err := tx.Model(&r).Update("status", models.ReportProcessed).Error; err != nil {
			return err
		}
		r.Status = models.ReportProcessed

		meta := map[string]any{
			"target_type": r.TargetType,
			"target_id":   r.TargetID.String(),
		}
		if req.Note != "" {
			meta["note"] = req.Note
		}
		if err := writeAdminLog(tx, adminUserID, "REPORT_"+req.Action, models.TargetReport, &r.ID, meta); err != nil {
			return err
		}

		zap.L().Info("report processed",
			zap.String("report_id", r.ID.String()),
			zap.String("action", req.Action))
		report = &r
		return nil
	})
	return report, err
}
