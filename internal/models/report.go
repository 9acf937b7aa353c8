package models

import "time"

// Report statuses.
const (
	ReportStatusPending   = "pending"
	ReportStatusReviewed  = "reviewed"
	ReportStatusResolved  = "resolved"
	ReportStatusDismissed = "dismissed"
)

// Report is filed by a user against another user and/or a post. Reports
// outlive their target: deleting the reported user or post nulls the
// reference instead of dropping the report.
type Report struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	ReporterID     uint       `json:"reporter_id" gorm:"index"`
	Reporter       User       `json:"-" gorm:"foreignKey:ReporterID;constraint:OnDelete:CASCADE"`
	ReportedUserID *uint      `json:"reported_user_id,omitempty" gorm:"index"`
	ReportedUser   *User      `json:"-" gorm:"foreignKey:ReportedUserID;constraint:OnDelete:SET NULL"`
	ReportedPostID *uint      `json:"reported_post_id,omitempty" gorm:"index"`
	ReportedPost   *Post      `json:"-" gorm:"foreignKey:ReportedPostID;constraint:OnDelete:SET NULL"`
	ReportType     string     `json:"report_type" gorm:"size:20"`
	Reason         string     `json:"reason" gorm:"size:30"`
	Description    string     `json:"description"`
	Status         string     `json:"status" gorm:"size:20;default:'pending';index"`
	AdminNotes     string     `json:"admin_notes,omitempty"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// CreateReportRequest defines the request body for filing a report
type CreateReportRequest struct {
	ReportedUserID *uint  `json:"reported_user_id,omitempty"`
	ReportedPostID *uint  `json:"reported_post_id,omitempty"`
	ReportType     string `json:"report_type" validate:"required,oneof=user post"`
	Reason         string `json:"reason" validate:"required,oneof=spam harassment inappropriate other"`
	Description    string `json:"description,omitempty" validate:"omitempty,max=1000"`
}

// ReviewReportRequest is the admin review path.
type ReviewReportRequest struct {
	Status     string `json:"status" validate:"required,oneof=pending reviewed resolved dismissed"`
	AdminNotes string `json:"admin_notes,omitempty" validate:"omitempty,max=1000"`
}
