package domain

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// ErrImmutableSubmission is returned when an update touches any column of a
// ContactSubmission other than is_responded.
var ErrImmutableSubmission = errors.New("contact submission is immutable except is_responded")

// ContactSubmission is a message left through the public contact form.
// Rows are written once by the contact pipeline; afterwards only
// IsResponded may change.
type ContactSubmission struct {
	ID          string    `json:"id"           gorm:"type:char(36);primaryKey"`
	Name        string    `json:"name"         gorm:"type:varchar(100);not null"`
	Email       string    `json:"email"        gorm:"type:varchar(254);not null"`
	Message     string    `json:"message"      gorm:"type:text;not null"`
	SubmittedAt time.Time `json:"submitted_at" gorm:"not null;index"`
	IsResponded bool      `json:"is_responded" gorm:"not null"`
}

// TableName returns the database table name for ContactSubmission.
func (ContactSubmission) TableName() string { return "contact_submissions" }

// BeforeUpdate rejects full-row saves and any targeted update of a column
// other than is_responded.
func (s *ContactSubmission) BeforeUpdate(tx *gorm.DB) error {
	for _, sel := range tx.Statement.Selects {
		if sel == "*" {
			return ErrImmutableSubmission
		}
	}
	if tx.Statement.Changed("ID", "Name", "Email", "Message", "SubmittedAt") {
		return ErrImmutableSubmission
	}
	return nil
}

// ContactInfo is the configuration of the contact page, footer details and
// notification mail credentials. At most one row is active.
type ContactInfo struct {
	ID uint `json:"id" gorm:"primaryKey"`

	EmailValue       string `json:"email_value"       gorm:"type:varchar(254);not null;default:'info@domainfinder.com'"`
	EmailDescription string `json:"email_description" gorm:"type:varchar(200);not null;default:'We typically respond within 24 hours'"`
	PhoneValue       string `json:"phone_value"       gorm:"type:varchar(50);not null;default:'+1 (555) 123-4567'"`
	PhoneDescription string `json:"phone_description" gorm:"type:varchar(200);not null;default:'Mon-Fri 9AM-6PM PST'"`
	AddressLine1     string `json:"address_line1"     gorm:"type:varchar(200);not null"`
	AddressLine2     string `json:"address_line2"     gorm:"type:varchar(200);not null"`

	ShowServices      bool   `json:"show_services"       gorm:"not null"`
	ServicesTitle     string `json:"services_title"      gorm:"type:varchar(100);not null;default:'Our Services'"`
	ServicesSubtitle  string `json:"services_subtitle"   gorm:"type:varchar(200);not null;default:'What we can help you with'"`
	ShowWhatToExpect  bool   `json:"show_what_to_expect" gorm:"not null"`
	WhatToExpectTitle string `json:"what_to_expect_title" gorm:"type:varchar(100);not null;default:'What to Expect'"`

	// SMTP credentials used only for outbound notification mail.
	SMTPEmail    string `json:"smtp_email" gorm:"type:varchar(254);not null;default:''"`
	SMTPPassword string `json:"-"          gorm:"type:varchar(255);not null;default:''"`

	IsActive  bool      `json:"is_active" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Services []ContactService `json:"services,omitempty" gorm:"foreignKey:ContactInfoID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for ContactInfo.
func (ContactInfo) TableName() string { return "contact_info" }

// HasSMTPCredentials reports whether both relay credentials are configured.
func (c *ContactInfo) HasSMTPCredentials() bool {
	return c != nil && c.SMTPEmail != "" && c.SMTPPassword != ""
}

// ContactService is one bullet of the contact page services section.
type ContactService struct {
	ID            uint   `json:"id"         gorm:"primaryKey"`
	ContactInfoID uint   `json:"-"          gorm:"not null;index"`
	Name          string `json:"name"       gorm:"type:varchar(200);not null"`
	IsActive      bool   `json:"is_active"  gorm:"not null"`
	SortOrder     int    `json:"sort_order" gorm:"not null;default:0"`
}

// TableName returns the database table name for ContactService.
func (ContactService) TableName() string { return "contact_services" }

// ExpectationItem is a card of the "What to Expect" section.
type ExpectationItem struct {
	ID          uint      `json:"id"          gorm:"primaryKey"`
	Title       string    `json:"title"       gorm:"type:varchar(100);not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	Icon        string    `json:"icon"        gorm:"type:varchar(50);not null;default:''"`
	Order       int       `json:"order"       gorm:"column:sort_order;not null;default:0"`
	IsActive    bool      `json:"is_active"   gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName returns the database table name for ExpectationItem.
func (ExpectationItem) TableName() string { return "expectation_items" }
