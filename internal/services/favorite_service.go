package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/medihire/medihire/internal/apperr"
	"github.com/medihire/medihire/internal/dtos"
	"github.com/medihire/medihire/internal/models"
)

type FavoriteService struct {
	DB *gorm.DB
}

func NewFavoriteService(db *gorm.DB) *FavoriteService {
	return &FavoriteService{DB: db}
}

// Toggle bookmarks the job, or removes the bookmark if one exists.
// Returns whether the job is favorited afterwards.
func (s *FavoriteService) Toggle(userID, jobID uuid.UUID) (bool, error) {
	var favorited bool
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var job models.JobPost
		if err := tx.First(&job, "id = ?", jobID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("NOT_FOUND", "job post not found")
			}
			return err
		}
		if job.Status == models.JobBlinded {
			return apperr.NotFound("NOT_FOUND", "job post not found")
		}

		var existing models.Favorite
		err := tx.Where("user_id = ? AND job_post_id = ?", userID, jobID).First(&existing).Error
		if err == nil {
			favorited = false
			return tx.Delete(&existing).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		favorited = true
		fav := models.Favorite{UserID: userID, JobPostID: jobID}
		return tx.Create(&fav).Error
	})
	return favorited, err
}

// Remove deletes the bookmark. Removing an absent one is a no-op.
func (s *FavoriteService) Remove(userID, jobID uuid.UUID) error {
	return s.DB.Where("user_id = ? AND job_post_id = ?", userID, jobID).
		Delete(&models.Favorite{}).Error
}

func (s *FavoriteService) List(userID uuid.UUID, page dtos.PageQuery) (*dtos.ListResponse[dtos.FavoriteRead], error) {
	page.Clamp()

	var total int64
	if err := s.DB.Model(&models.Favorite{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, err
	}

	var favs []models.Favorite
	if err := s.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(page.Offset()).Limit(page.Size).
		Find(&favs).Error; err != nil {
		return nil, err
	}

	jobIDs := make([]uuid.UUID, 0, len(favs))
	for _, f := range favs {
		jobIDs = append(jobIDs, f.JobPostID)
	}
	jobByID := map[uuid.UUID]models.JobPost{}
	var jobs []models.JobPost
	if len(jobIDs) > 0 {
		if err := s.DB.Where("id IN ?", jobIDs).Find(&jobs).Error; err != nil {
			return nil, err
		}
		for _, j := range jobs {
			jobByID[j.ID] = j
		}
	}
	companies, err := companiesByID(s.DB, jobs)
	if err != nil {
		return nil, err
	}

	items := make([]dtos.FavoriteRead, 0, len(favs))
	for _, f := range favs {
		read := dtos.FavoriteRead{
			ID:        f.ID,
			JobPostID: f.JobPostID,
			CreatedAt: f.CreatedAt,
		}
		if job, ok := jobByID[f.JobPostID]; ok {
			read.JobTitle = job.Title
			read.LocationCode = job.LocationCode
			read.CloseAt = job.CloseAt
			if co, ok := companies[job.CompanyID]; ok {
				read.CompanyName = co.Name
			}
		}
		items = append(items, read)
	}
	return &dtos.ListResponse[dtos.FavoriteRead]{Items: items, Total: total}, nil
}
