package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"

	"github.com/skycruzer/air-niugini-pms-sub008/internal/domain/eligibility"
)

// Service renders crew availability reports for planners who want the daily
// picture on paper.
type Service struct {
	Engine *eligibility.Engine
	Dir    string
}

func NewService(engine *eligibility.Engine, dir string) *Service {
	return &Service{Engine: engine, Dir: dir}
}

// AvailabilityPDF writes a per-role daily availability table for the range
// and returns the file path.
func (s *Service) AvailabilityPDF(ctx context.Context, start, end time.Time) (string, error) {
	tables, err := s.Engine.CalculateCrewAvailability(ctx, start, end)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", err
	}
	filePath := filepath.Join(s.Dir, "availability-"+uuid.NewString()+".pdf")

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Crew Availability Report")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Range: %s to %s", start.Format("2006-01-02"), end.Format("2006-01-02")))
	pdf.Ln(10)

	for _, table := range tables {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, string(table.Role))
		pdf.Ln(8)

		pdf.SetFont("Helvetica", "B", 9)
		for _, header := range []string{"Date", "Active", "On Leave", "Available", "Required", "Deficit"} {
			pdf.Cell(30, 6, header)
		}
		pdf.Ln(6)

		pdf.SetFont("Helvetica", "", 9)
		for _, day := range table.Days {
			pdf.Cell(30, 6, day.Date.Format("2006-01-02"))
			pdf.Cell(30, 6, fmt.Sprintf("%d", day.TotalActive))
			pdf.Cell(30, 6, fmt.Sprintf("%d", day.OnApprovedLeave))
			pdf.Cell(30, 6, fmt.Sprintf("%d", day.Available))
			pdf.Cell(30, 6, fmt.Sprintf("%d", day.Required))
			if day.Deficit > 0 {
				pdf.SetTextColor(200, 0, 0)
			}
			pdf.Cell(30, 6, fmt.Sprintf("%d", day.Deficit))
			pdf.SetTextColor(0, 0, 0)
			pdf.Ln(6)
		}
		pdf.Ln(6)
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", err
	}
	return filePath, nil
}
