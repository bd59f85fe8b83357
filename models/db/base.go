package dbmodels

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BaseModel struct {
	ID        string    `gorm:"primaryKey;default:uuid_generate_v4()" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EnsureID идентификатор назначается до записи, чтобы он был известен в той же транзакции
func (b *BaseModel) EnsureID() {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
}

func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	b.EnsureID()
	return nil
}
