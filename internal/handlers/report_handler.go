package handlers

import (
	"math"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/loopline/backend/internal/models"
	"github.com/loopline/backend/internal/repositories"
)

// ReportHandler handles content report HTTP requests
type ReportHandler struct {
	reportRepository repositories.ReportRepository
	userRepository   repositories.UserRepository
	postRepository   repositories.PostRepository
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportRepo repositories.ReportRepository, userRepo repositories.UserRepository, postRepo repositories.PostRepository) *ReportHandler {
	return &ReportHandler{
		reportRepository: reportRepo,
		userRepository:   userRepo,
		postRepository:   postRepo,
	}
}

// RegisterReportRoutes registers report routes
func (h *ReportHandler) RegisterReportRoutes(g *echo.Group) {
	g.POST("/reports", h.CreateReport)
}

// RegisterAdminReportRoutes registers admin-only report routes
func (h *ReportHandler) RegisterAdminReportRoutes(g *echo.Group) {
	g.GET("/reports", h.ListReports)
	g.GET("/reports/:id", h.GetReport)
	g.PUT("/reports/:id/review", h.ReviewReport)
}

// CreateReport files a report against a user or a post
func (h *ReportHandler) CreateReport(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	req := new(models.CreateReportRequest)
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	switch req.ReportType {
	case "user":
		if req.ReportedUserID == nil {
			return echo.NewHTTPError(http.StatusBadRequest, "reported_user_id is required for user reports")
		}
		if _, err := h.userRepository.GetUserByID(*req.ReportedUserID); err != nil {
			return echo.NewHTTPError(http.StatusNotFound, "Reported user not found")
		}
	case "post":
		if req.ReportedPostID == nil {
			return echo.NewHTTPError(http.StatusBadRequest, "reported_post_id is required for post reports")
		}
		if _, err := h.postRepository.GetPostByID(*req.ReportedPostID); err != nil {
			return echo.NewHTTPError(http.StatusNotFound, "Reported post not found")
		}
	}

	report := &models.Report{
		ReporterID:     currentUserID,
		ReportedUserID: req.ReportedUserID,
		ReportedPostID: req.ReportedPostID,
		ReportType:     req.ReportType,
		Reason:         req.Reason,
		Description:    req.Description,
		Status:         models.ReportStatusPending,
	}
	if err := h.reportRepository.CreateReport(report); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create report")
	}
	return c.JSON(http.StatusCreated, report)
}

// ListReports returns reports filtered by status, newest first
func (h *ReportHandler) ListReports(c echo.Context) error {
	page, limit := parsePagination(c)
	status := c.QueryParam("status")

	reports, total, err := h.reportRepository.ListReports(status, page, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch reports")
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	return c.JSON(http.StatusOK, echo.Map{
		"reports": reports,
		"meta": echo.Map{
			"currentPage": page,
			"totalPages":  totalPages,
			"totalItems":  total,
		},
	})
}

// GetReport returns a single report by ID
func (h *ReportHandler) GetReport(c echo.Context) error {
	reportID, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid report ID")
	}

	report, err := h.reportRepository.GetReportByID(reportID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Report not found")
	}
	return c.JSON(http.StatusOK, report)
}

// ReviewReport updates a report's status with optional admin notes
func (h *ReportHandler) ReviewReport(c echo.Context) error {
	reportID, err := parseIDParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid report ID")
	}

	req := new(models.ReviewReportRequest)
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	if _, err := h.reportRepository.GetReportByID(reportID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Report not found")
	}
	if err := h.reportRepository.ReviewReport(reportID, req.Status, req.AdminNotes); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to review report")
	}

	report, err := h.reportRepository.GetReportByID(reportID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch report")
	}
	return c.JSON(http.StatusOK, report)
}
