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

type VerificationService struct {
	DB *gorm.DB
}

func NewVerificationService(db *gorm.DB) *VerificationService {
	return &VerificationService{DB: db}
}

// Submit files a verification request with the uploaded document key.
// One PENDING request at a time, and none once APPROVED.
func (s *VerificationService) Submit(userID uuid.UUID, req *dtos.VerificationSubmitRequest) (*dtos.VerificationRead, error) {
	var read *dtos.VerificationRead
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		company, err := companyForUser(tx, userID)
		if err != nil {
			return err
		}

		var pending int64
		if err := tx.Model(&models.CompanyVerification{}).
			Where("company_id = ? AND status = ?", company.ID, models.VerificationPending).
			Count(&pending).Error; err != nil {
			return err
		}
		if pending > 0 {
			return apperr.Conflict("DUPLICATE_PENDING", "a verification request is already pending")
		}

		approved, err := hasApprovedVerification(tx, company.ID)
		if err != nil {
			return err
		}
		if approved {
			return apperr.Conflict("ALREADY_APPROVED", "company is already verified")
		}

		verification := models.CompanyVerification{
			CompanyID: company.ID,
			Status:    models.VerificationPending,
			FileKey:   req.FileKey,
		}
		if err := tx.Create(&verification).Error; err != nil {
			return err
		}
		read = projectVerification(&verification, company)
		return nil
	})
	return read, err
}

// Status returns the company's latest verification request, if any.
func (s *VerificationService) Status(userID uuid.UUID) (*dtos.VerificationRead, error) {
	company, err := companyForUser(s.DB, userID)
	if err != nil {
		return nil, err
	}

	var verification models.CompanyVerification
	err = s.DB.Where("company_id = ?", company.ID).
		Order("created_at DESC").
		First(&verification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("NOT_FOUND", "no verification request on file")
		}
		return nil, err
	}
	return projectVerification(&verification, company), nil
}

// ListPending feeds the admin review queue, oldest first.
func (s *VerificationService) ListPending(page dtos.PageQuery) (*dtos.ListResponse[dtos.VerificationRead], error) {
	page.Clamp()

	var total int64
	if err := s.DB.Model(&models.CompanyVerification{}).
		Where("status = ?", models.VerificationPending).
		Count(&total).Error; err != nil {
		return nil, err
	}

	var pending []models.CompanyVerification
	if err := s.DB.Where("status = ?", models.VerificationPending).
		Order("created_at ASC").
		Offset(page.Offset()).Limit(page.Size).
		Find(&pending).Error; err != nil {
		return nil, err
	}

	items := make([]dtos.VerificationRead, 0, len(pending))
	for i := range pending {
		var company models.Company
		if err := s.DB.First(&company, "id = ?", pending[i].CompanyID).Error; err != nil {
			return nil, err
		}
		items = append(items, *projectVerification(&pending[i], &company))
	}
	return &dtos.ListResponse[dtos.VerificationRead]{Items: items, Total: total}, nil
}

// Review decides a pending request. Approval upgrades every member of
// the company from COMPANY_UNVERIFIED to COMPANY_VERIFIED in one
// scoped UPDATE, and the decision lands in the admin audit trail.
func (s *VerificationService) Review(adminUserID, verificationID uuid.UUID, req *dtos.VerificationReviewRequest) (*dtos.VerificationRead, error) {
	var read *dtos.VerificationRead
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var verification models.CompanyVerification
		if err := tx.First(&verification, "id = ?", verificationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("NOT_FOUND", "verification request not found")
			}
			return err
		}
		if verification.Status != models.VerificationPending {
			return apperr.Conflict("ALREADY_PROCESSED", "verification request already reviewed")
		}

		updates := map[string]any{
			"status":      req.Status,
			"reviewed_by": adminUserID,
		}
		if req.Status == models.VerificationRejected && req.RejectReason != "" {
			updates["reject_reason"] = req.RejectReason
			verification.RejectReason = req.RejectReason
		}
		if err := tx.Model(&verification).Updates(updates).Error; err != nil {
			return err
		}
		verification.Status = req.Status
		verification.ReviewedBy = &adminUserID

		if req.Status == models.VerificationApproved {
			err := tx.Model(&models.User{}).
				Where("role = ? AND id IN (?)", models.RoleCompanyUnverified,
					tx.Model(&models.CompanyUser{}).Select("user_id").Where("company_id = ?", verification.CompanyID)).
				Update("role", models.RoleCompanyVerified).Error
			if err != nil {
				return err
			}
		}

		if err := writeAdminLog(tx, adminUserID, "VERIFICATION_"+string(req.Status), models.TargetVerification, &verification.ID, map[string]any{
			"company_id": verification.CompanyID.String(),
		}); err != nil {
			return err
		}

		var company models.Company
		if err := tx.First(&company, "id = ?", verification.CompanyID).Error; err != nil {
			return err
		}
		zap.L().Info("verification reviewed",
			zap.String("verification_id", verification.ID.String()),
			zap.String("status", string(req.Status)))
		read = projectVerification(&verification, &company)
		return nil
	})
	return read, err
}

func projectVerification(v *models.CompanyVerification, company *models.Company) *dtos.VerificationRead {
	return &dtos.VerificationRead{
		ID:                v.ID,
		CompanyID:         v.CompanyID,
		CompanyName:       company.Name,
		CompanyBusinessNo: company.BusinessNo,
		Status:            v.Status,
		FileKey:           v.FileKey,
		RejectReason:      v.RejectReason,
		ReviewedBy:        v.ReviewedBy,
		CreatedAt:         v.CreatedAt,
		UpdatedAt:         v.UpdatedAt,
	}
}
