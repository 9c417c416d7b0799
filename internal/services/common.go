package services

import (
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/medihire/medihire/internal/apperr"
	"github.com/medihire/medihire/internal/models"
)

// companyForUser resolves the company a user belongs to through the
// membership bridge, or fails with NOT_COMPANY_USER.
func companyForUser(tx *gorm.DB, userID uuid.UUID) (*models.Company, error) {
	var cu models.CompanyUser
	if err := tx.Where("user_id = ?", userID).First(&cu).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Forbidden("NOT_COMPANY_USER", "not a company account")
		}
		return nil, err
	}
	var company models.Company
	if err := tx.First(&company, "id = ?", cu.CompanyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("COMPANY_NOT_FOUND", "company not found")
		}
		return nil, err
	}
	return &company, nil
}

// companyMemberIDs lists every user id holding a membership in the company.
func companyMemberIDs(tx *gorm.DB, companyID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := tx.Model(&models.CompanyUser{}).
		Where("company_id = ?", companyID).
		Pluck("user_id", &ids).Error
	return ids, err
}

// writeAdminLog appends one row to the admin audit trail.
func writeAdminLog(tx *gorm.DB, adminUserID uuid.UUID, action, targetType string, targetID *uuid.UUID, meta map[string]any) error {
	entry := models.AdminLog{
		AdminUserID: adminUserID,
		Action:      action,
		TargetType:  targetType,
		TargetID:    targetID,
	}
	if meta != nil {
		raw, err := json.Marshal(meta)
		if err != nil {
			return err
		}
		entry.MetaJSON = raw
	}
	return tx.Create(&entry).Error
}
