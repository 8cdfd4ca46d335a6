package model

import (
	"time"

	"gorm.io/gorm"
)

// Course is an uploaded course document. PDFText is the extracted text used
// as the question synthesis source. The raw document lives either inline in
// PDF or in object storage under PDFObjectKey.
type Course struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Name         string         `json:"name" gorm:"not null"`
	PDF          []byte         `json:"-" gorm:"type:bytea"`
	PDFObjectKey *string        `json:"pdf_object_key,omitempty"`
	PDFText      string         `json:"-" gorm:"type:text;not null"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
