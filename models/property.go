package models

import (
	"time"

	"github.com/lib/pq"
)

type Property struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	OwnerID        uint           `json:"ownerId"`
	Owner          *User          `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Name           string         `json:"name"`
	Description    string         `json:"description"`
	Price          float64        `json:"price"` // Giá mỗi đêm
	CurrencySymbol string         `gorm:"type:varchar(3);default:'$'" json:"currencySymbol"`
	Address        string         `json:"address"`
	Avatar         string         `json:"avatar"`
	Images         pq.StringArray `json:"images" gorm:"type:text[]"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
}
