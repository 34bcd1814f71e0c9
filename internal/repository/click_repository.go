package repository

import (
	"database/sql"
	"errors"
	"time"

	"linkpulse/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ValueCount — типизированная строка группирующего запроса; сырые строки
// из БД не уходят дальше этого слоя.
type ValueCount struct {
	Value string
	Count int64
}

// TopLinkCount — ссылка с количеством переходов в окне.
type TopLinkCount struct {
	LinkID         uuid.UUID
	Title          *string
	ShortCode      *string
	DestinationURL string
	Count          int64
}

var errUnknownField = errors.New("unknown breakdown field")

// Колонки, по которым разрешена категориальная разбивка.
var breakdownFields = map[string]string{
	"device":  "device",
	"browser": "browser",
	"os":      "os",
	"country": "country",
	"city":    "city",
}

type ClickRepository struct {
	db *gorm.DB
}

func NewClickRepository(db *gorm.DB) *ClickRepository {
	return &ClickRepository{
		db: db,
	}
}

func (r *ClickRepository) Create(click *models.Click) error {
	return r.db.Create(click).Error
}

func (r *ClickRepository) GetClicksByLinkID(linkID uuid.UUID) ([]models.Click, error) {
	var clicks []models.Click
	err := r.db.Where("link_id = ?", linkID).Find(&clicks).Error
	return clicks, err
}

func (r *ClickRepository) scoped(linkIDs []uuid.UUID, since time.Time) *gorm.DB {
	q := r.db.Model(&models.Click{}).Where("link_id IN ?", linkIDs)
	if !since.IsZero() {
		q = q.Where("clicked_at >= ?", since)
	}
	return q
}

// График по дням: пустые даты не подставляются, ряд может быть разреженным.
func (r *ClickRepository) CountsByDay(linkIDs []uuid.UUID, since time.Time) ([]ValueCount, error) {
	rows, err := r.scoped(linkIDs, since).
		Select("to_char(clicked_at, 'YYYY-MM-DD') as bucket, COUNT(*) as cnt").
		Group("bucket").
		Order("bucket ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanValueCounts(rows)
}

// Почасовой график для окна последних суток.
func (r *ClickRepository) CountsByHour(linkIDs []uuid.UUID, since time.Time) ([]ValueCount, error) {
	rows, err := r.scoped(linkIDs, since).
		Select("to_char(clicked_at, 'YYYY-MM-DD HH24:00') as bucket, COUNT(*) as cnt").
		Group("bucket").
		Order("bucket ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanValueCounts(rows)
}

// Разбивка по одной из классифицированных колонок (device/browser/os/country/city),
// NULL-значения не попадают в выдачу.
func (r *ClickRepository) CountsByField(field string, linkIDs []uuid.UUID, since time.Time, limit int) ([]ValueCount, error) {
	col, ok := breakdownFields[field]
	if !ok {
		return nil, errUnknownField
	}
	rows, err := r.scoped(linkIDs, since).
		Select(col+" as bucket, COUNT(*) as cnt").
		Where(col+" IS NOT NULL").
		Group("bucket").
		Order("cnt DESC").
		Limit(limit).
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanValueCounts(rows)
}

// Частоты сырых referer-строк; классификация по доменам делается выше.
func (r *ClickRepository) RefererCounts(linkIDs []uuid.UUID, since time.Time) ([]ValueCount, error) {
	rows, err := r.scoped(linkIDs, since).
		Select("COALESCE(referer, '') as bucket, COUNT(*) as cnt").
		Group("bucket").
		Order("cnt DESC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanValueCounts(rows)
}

func (r *ClickRepository) IPCounts(linkIDs []uuid.UUID, since time.Time) ([]ValueCount, error) {
	rows, err := r.scoped(linkIDs, since).
		Select("ip_address as bucket, COUNT(*) as cnt").
		Group("bucket").
		Order("cnt DESC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanValueCounts(rows)
}

func (r *ClickRepository) TopLinks(linkIDs []uuid.UUID, since time.Time, limit int) ([]TopLinkCount, error) {
	q := r.db.Model(&models.Click{}).
		Select("links.id as link_id, links.title, links.short_code, links.destination_url, COUNT(*) as cnt").
		Joins("JOIN links ON links.id = clicks.link_id")
	if linkIDs != nil {
		q = q.Where("clicks.link_id IN ?", linkIDs)
	}
	if !since.IsZero() {
		q = q.Where("clicks.clicked_at >= ?", since)
	}
	rows, err := q.
		Group("links.id, links.title, links.short_code, links.destination_url").
		Order("cnt DESC").
		Limit(limit).
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []TopLinkCount
	for rows.Next() {
		var t TopLinkCount
		if err := rows.Scan(&t.LinkID, &t.Title, &t.ShortCode, &t.DestinationURL, &t.Count); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

// TopLinksAll — топ ссылок по всей базе, без ограничения области видимости.
func (r *ClickRepository) TopLinksAll(since time.Time, limit int) ([]TopLinkCount, error) {
	return r.TopLinks(nil, since, limit)
}

// Модерация: удалить все клики с одного IP.
func (r *ClickRepository) DeleteByIP(ip string) (int64, error) {
	res := r.db.Where("ip_address = ?", ip).Delete(&models.Click{})
	return res.RowsAffected, res.Error
}

// Модерация: удалить клики ссылки (каскад при удалении ссылки).
func (r *ClickRepository) DeleteByLinkID(linkID uuid.UUID) (int64, error) {
	res := r.db.Where("link_id = ?", linkID).Delete(&models.Click{})
	return res.RowsAffected, res.Error
}

func (r *ClickRepository) DeleteOlderThan(t time.Time) (int64, error) {
	res := r.db.Where("clicked_at < ?", t).Delete(&models.Click{})
	return res.RowsAffected, res.Error
}

func scanValueCounts(rows *sql.Rows) ([]ValueCount, error) {
	var result []ValueCount
	for rows.Next() {
		var v ValueCount
		if err := rows.Scan(&v.Value, &v.Count); err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, rows.Err()
}
