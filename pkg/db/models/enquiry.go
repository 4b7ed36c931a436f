package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/velvetcrumb/velvetcrumb-backend/pkg/enums"
)

// Enquiry is one contact-form submission plus its admin triage status.
type Enquiry struct {
	ID        uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string              `gorm:"column:name;not null"`
	Email     string              `gorm:"column:email;not null"`
	Phone     *string             `gorm:"column:phone"`
	Subject   string              `gorm:"column:subject;not null"`
	Message   string              `gorm:"column:message;not null"`
	Status    enums.EnquiryStatus `gorm:"column:status;type:text;not null;default:'new'"`
	CreatedAt time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
