package memory

import (
	"time"

	"memories-chain/internal/domain/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MemoryForm represents the memory_forms table. Title and creator are set
// once at creation; owners and photos hang off the form id.
type MemoryForm struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedBy   uuid.UUID `gorm:"type:uuid;not null;index" json:"created_by"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships. JSON keys mirror the persisted table names so the
	// aggregate serializes the way clients already consume it.
	Photos  []Photo     `gorm:"foreignKey:FormID" json:"photos"`
	Owners  []FormOwner `gorm:"foreignKey:FormID" json:"form_owners"`
	Creator *user.User  `gorm:"foreignKey:CreatedBy" json:"users,omitempty"`
}

// FormOwner grants visibility/co-ownership of a form to a wallet address.
// The wallet does not need a users row for the grant to exist.
type FormOwner struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FormID        uuid.UUID `gorm:"type:uuid;not null;index" json:"form_id"`
	WalletAddress string    `gorm:"not null;index" json:"wallet_address"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Photo represents the photos table. The CID is a foreign fact issued by the
// pinning provider, never generated locally.
type Photo struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FormID    uuid.UUID `gorm:"type:uuid;not null;index" json:"form_id"`
	PinataURL string    `gorm:"not null" json:"pinata_url"`
	PinataCID string    `gorm:"not null" json:"pinata_cid"`
	FileName  string    `json:"file_name,omitempty"`
	FileSize  int64     `json:"file_size,omitempty"`
	MimeType  string    `json:"mime_type,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (f *MemoryForm) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

func (o *FormOwner) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

func (p *Photo) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (MemoryForm) TableName() string {
	return "memory_forms"
}

func (FormOwner) TableName() string {
	return "form_owners"
}

func (Photo) TableName() string {
	return "photos"
}
