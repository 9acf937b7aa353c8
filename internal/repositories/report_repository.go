package repositories

import (
	"time"

	"github.com/loopline/backend/internal/models"
	"gorm.io/gorm"
)

// ReportRepository defines the interface for report operations
type ReportRepository interface {
	CreateReport(report *models.Report) error
	GetReportByID(id uint) (*models.Report, error)
	ListReports(status string, page, limit int) ([]models.Report, int64, error)
	ReviewReport(id uint, status, adminNotes string) error
}

type postgresReportRepository struct {
	db *gorm.DB
}

func NewPostgresReportRepository(db *gorm.DB) ReportRepository {
	return &postgresReportRepository{db: db}
}

func (r *postgresReportRepository) CreateReport(report *models.Report) error {
	return r.db.Create(report).Error
}

func (r *postgresReportRepository) GetReportByID(id uint) (*models.Report, error) {
	var report models.Report
	if err := r.db.First(&report, id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *postgresReportRepository) ListReports(status string, page, limit int) ([]models.Report, int64, error) {
	var reports []models.Report
	var total int64

	q := r.db.Model(&models.Report{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	q.Count(&total)

	offset := (page - 1) * limit
	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&reports).Error
	return reports, total, err
}

// ReviewReport updates the status and notes; resolved and dismissed statuses
// stamp the resolution time.
func (r *postgresReportRepository) ReviewReport(id uint, status, adminNotes string) error {
	updates := map[string]interface{}{
		"status":      status,
		"admin_notes": adminNotes,
	}
	if status == models.ReportStatusResolved || status == models.ReportStatusDismissed {
		now := time.Now()
		updates["resolved_at"] = &now
	}
	return r.db.Model(&models.Report{}).Where("id = ?", id).Updates(updates).Error
}
