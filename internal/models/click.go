package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Click — одно разрешённое посещение короткой ссылки.
// Классификация device/browser/os и геолокация заполняются при записи
// и больше не меняются; поля могут остаться пустыми.
type Click struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	LinkID uuid.UUID `gorm:"type:uuid;not null;index" json:"link_id"`
	Link   Link      `gorm:"foreignKey:LinkID" json:"-"`

	ClickedAt time.Time `gorm:"autoCreateTime" json:"clicked_at"`
	IPAddress string    `gorm:"column:ip_address;type:text;not null" json:"ip_address"`
	UserAgent string    `gorm:"type:text;not null" json:"user_agent"`
	Referer   string    `gorm:"type:text;not null" json:"referer"`

	Device  *string `gorm:"type:text" json:"device"`
	Browser *string `gorm:"type:text" json:"browser"`
	OS      *string `gorm:"column:os;type:text" json:"os"`
	Country *string `gorm:"type:text" json:"country"`
	City    *string `gorm:"type:text" json:"city"`
}

func (m *Click) BeforeCreate(tx *gorm.DB) (err error) {
	m.ID = uuid.New()
	return
}
