package entities

import (
	"time"

	"github.com/google/uuid"
)

type Timestamp struct {
	CreatedAt time.Time `gorm:"type:timestamp;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"type:timestamp;autoUpdateTime" json:"updatedAt"`
}

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name     string    `gorm:"type:varchar(100);not null" json:"name"`
	Email    string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password string    `gorm:"not null" json:"-"`
	Image    string    `json:"image,omitempty"`
	Role     string    `gorm:"type:varchar(20);default:'user'" json:"role"`

	Recipes []Recipe `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Timestamp
}
