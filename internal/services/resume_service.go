package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/medihire/medihire/internal/apperr"
	"github.com/medihire/medihire/internal/dtos"
	"github.com/medihire/medihire/internal/models"
)

type ResumeService struct {
	DB *gorm.DB
}

func NewResumeService(db *gorm.DB) *ResumeService {
	return &ResumeService{DB: db}
}

func (s *ResumeService) ownedResume(tx *gorm.DB, userID, resumeID uuid.UUID) (*models.Resume, error) {
	var resume models.Resume
	err := tx.Preload("Licenses").Preload("Careers").First(&resume, "id = ?", resumeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("RESUME_NOT_FOUND", "resume not found")
		}
		return nil, err
	}
	if resume.UserID != userID {
		return nil, apperr.Forbidden("FORBIDDEN", "not your resume")
	}
	return &resume, nil
}

func (s *ResumeService) List(userID uuid.UUID) ([]models.Resume, error) {
	var resumes []models.Resume
	err := s.DB.Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&resumes).Error
	return resumes, err
}

func (s *ResumeService) Get(userID, resumeID uuid.UUID) (*models.Resume, error) {
	return s.ownedResume(s.DB, userID, resumeID)
}

func (s *ResumeService) Create(userID uuid.UUID, req *dtos.ResumeCreateRequest) (*models.Resume, error) {
	visibility := req.Visibility
	if visibility == "" {
		visibility = models.VisibilityPrivate
	}

	resume := models.Resume{
		UserID:            userID,
		Title:             req.Title,
		Visibility:        visibility,
		DesiredJob:        req.DesiredJob,
		DesiredRegion:     req.DesiredRegion,
		DesiredShift:      req.DesiredShift,
		DesiredSalaryType: req.DesiredSalaryType,
		DesiredSalaryMin:  req.DesiredSalaryMin,
		Summary:           req.Summary,
		IsExperienced:     req.IsExperienced,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&resume).Error; err != nil {
			return err
		}
		if err := createLicenses(tx, resume.ID, req.Licenses); err != nil {
			return err
		}
		return createCareers(tx, resume.ID, req.Careers)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(userID, resume.ID)
}

// Update applies supplied scalar fields and, when license/career lists are
// present, replaces the stored collections wholesale.
func (s *ResumeService) Update(userID, resumeID uuid.UUID, req *dtos.ResumeUpdateRequest) (*models.Resume, error) {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		resume, err := s.ownedResume(tx, userID, resumeID)
		if err != nil {
			return err
		}

		updates := map[string]any{}
		if req.Title != nil {
			updates["title"] = *req.Title
		}
		if req.DesiredJob != nil {
			updates["desired_job"] = *req.DesiredJob
		}
		if req.DesiredRegion != nil {
			updates["desired_region"] = *req.DesiredRegion
		}
		if req.DesiredShift != nil {
			updates["desired_shift"] = *req.DesiredShift
		}
		if req.DesiredSalaryType != nil {
			updates["desired_salary_type"] = *req.DesiredSalaryType
		}
		if req.DesiredSalaryMin != nil {
			updates["desired_salary_min"] = *req.DesiredSalaryMin
		}
		if req.Summary != nil {
			updates["summary"] = *req.Summary
		}
		if req.IsExperienced != nil {
			updates["is_experienced"] = *req.IsExperienced
		}
		if len(updates) > 0 {
			if err := tx.Model(resume).Updates(updates).Error; err != nil {
				return err
			}
		}

		if req.Licenses != nil {
			if err := tx.Where("resume_id = ?", resume.ID).Delete(&models.ResumeLicense{}).Error; err != nil {
				return err
			}
			if err := createLicenses(tx, resume.ID, *req.Licenses); err != nil {
				return err
			}
		}
		if req.Careers != nil {
			if err := tx.Where("resume_id = ?", resume.ID).Delete(&models.ResumeCareer{}).Error; err != nil {
				return err
			}
			if err := createCareers(tx, resume.ID, *req.Careers); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(userID, resumeID)
}

func (s *ResumeService) SetVisibility(userID, resumeID uuid.UUID, visibility models.ResumeVisibility) (*models.Resume, error) {
	resume, err := s.ownedResume(s.DB, userID, resumeID)
	if err != nil {
		return nil, err
	}
	if err := s.DB.Model(resume).Update("visibility", visibility).Error; err != nil {
		return nil, err
	}
	return resume, nil
}

func createLicenses(tx *gorm.DB, resumeID uuid.UUID, inputs []dtos.ResumeLicenseInput) error {
	for _, in := range inputs {
		lic := models.ResumeLicense{
			ResumeID:     resumeID,
			LicenseType:  in.LicenseType,
			LicenseNoEnc: in.LicenseNoEnc,
			IssuedAt:     in.IssuedAt,
		}
		if err := tx.Create(&lic).Error; err != nil {
			return err
		}
	}
	return nil
}

func createCareers(tx *gorm.DB, resumeID uuid.UUID, inputs []dtos.ResumeCareerInput) error {
	for _, in := range inputs {
		car := models.ResumeCareer{
			ResumeID:    resumeID,
			OrgName:     in.OrgName,
			Role:        in.Role,
			Department:  in.Department,
			StartAt:     in.StartAt,
			EndAt:       in.EndAt,
			Description: in.Description,
		}
		if err := tx.Create(&car).Error; err != nil {
			return err
		}
	}
	return nil
}
