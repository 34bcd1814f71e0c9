package repository

import (
	"linkpulse/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LinkRepository struct {
	db *gorm.DB
}

func NewLinkRepository(db *gorm.DB) *LinkRepository {
	return &LinkRepository{
		db: db,
	}
}

func (r *LinkRepository) Create(link *models.Link) error {
	return r.db.Create(link).Error
}

func (r *LinkRepository) GetByShortCode(link *models.Link, shortCode string) error {
	return r.db.Where("short_code = ?", shortCode).First(link).Error
}

func (r *LinkRepository) GetByID(id uuid.UUID) (*models.Link, error) {
	var link models.Link
	if err := r.db.Where("id = ?", id).First(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

// Количество персональных (вне команд) ссылок пользователя — для лимита тарифа.
func (r *LinkRepository) CountPersonal(userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Link{}).
		Where("user_id = ? AND team_id IS NULL", userID).
		Count(&count).Error
	return count, err
}

func (r *LinkRepository) PersonalIDs(userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.Model(&models.Link{}).
		Where("user_id = ? AND team_id IS NULL", userID).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *LinkRepository) TeamIDs(teamID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.Model(&models.Link{}).
		Where("team_id = ?", teamID).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *LinkRepository) ListByIDs(ids []uuid.UUID) ([]*models.Link, error) {
	var links []*models.Link
	if len(ids) == 0 {
		return links, nil
	}
	err := r.db.Where("id IN ?", ids).Order("created_at DESC").Find(&links).Error
	return links, err
}

func (r *LinkRepository) Delete(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&models.Link{}).Error
}
