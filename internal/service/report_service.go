package service

import (
	"time"

	"go-stock-tracker/internal/apperror"
	"go-stock-tracker/internal/model"
	"go-stock-tracker/internal/repository"
)

// Report window types.
const (
	ReportDaily   = "daily"
	ReportMonthly = "monthly"
	ReportCustom  = "custom"
)

type ReportService interface {
	StockMovement(reportType, startDate, endDate string) (*model.StockMovementReport, error)
	CurrentStock() ([]model.CurrentStockRow, error)
}

type reportService struct {
	reportRepo repository.ReportRepository
	now        func() time.Time
}

func NewReportService(reportRepo repository.ReportRepository) ReportService {
	return &reportService{reportRepo: reportRepo, now: time.Now}
}

// resolveWindow expands a report type into inclusive full-day bounds in
// the server's local time.
func (s *reportService) resolveWindow(reportType, startDate, endDate string) (time.Time, time.Time, error) {
	now := s.now()

	switch reportType {
	case "", ReportDaily:
		start := startOfDay(now)
		return start, endOfDay(now), nil

	case ReportMonthly:
		firstDay := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		lastDay := firstDay.AddDate(0, 1, -1)
		return firstDay, endOfDay(lastDay), nil

	case ReportCustom:
		if startDate == "" || endDate == "" {
			return time.Time{}, time.Time{}, apperror.InvalidInput("Start date and end date are required for custom reports")
		}
		start, err := time.ParseInLocation("2006-01-02", startDate, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, apperror.InvalidInput("Invalid start date, expected YYYY-MM-DD")
		}
		end, err := time.ParseInLocation("2006-01-02", endDate, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, apperror.InvalidInput("Invalid end date, expected YYYY-MM-DD")
		}
		if end.Before(start) {
			return time.Time{}, time.Time{}, apperror.InvalidInput("End date must not be before start date")
		}
		return start, endOfDay(end), nil

	default:
		return time.Time{}, time.Time{}, apperror.InvalidInput("Invalid report type, expected daily, monthly or custom")
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

func (s *reportService) StockMovement(reportType, startDate, endDate string) (*model.StockMovementReport, error) {
	start, end, err := s.resolveWindow(reportType, startDate, endDate)
	if err != nil {
		return nil, err
	}

	summary, err := s.reportRepo.SummarizeWindow(start, end)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	details, err := s.reportRepo.MovementsInWindow(start, end)
	if err != nil {
		return nil, apperror.Storage(err)
	}

	return &model.StockMovementReport{
		Summary: summary,
		Details: details,
	}, nil
}

func (s *reportService) CurrentStock() ([]model.CurrentStockRow, error) {
	rows, err := s.reportRepo.CurrentStock()
	if err != nil {
		return nil, apperror.Storage(err)
	}
	return rows, nil
}
