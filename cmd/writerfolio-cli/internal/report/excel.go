package report

import (
	"fmt"

	"github.com/nfrund/writerfolio/internal/domain"
	"github.com/xuri/excelize/v2"
)

// Sheet names in workbook order.
const (
	SheetServices     = "Services"
	SheetPortfolio    = "Portfolio"
	SheetTestimonials = "Testimonials"
)

// Content is everything the export writes.
type Content struct {
	Services     []domain.Service
	Projects     []domain.Project
	Testimonials []domain.Testimonial
}

// Workbook builds an Excel file with one sheet per collection. The caller
// must Close it.
func Workbook(c Content) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SheetServices); err != nil {
		f.Close()
		return nil, err
	}
	rows := [][]any{{"ID", "Title", "Description", "Price", "Icon"}}
	for _, s := range c.Services {
		rows = append(rows, []any{s.ID, s.Title, s.Description, string(s.Price), s.Icon})
	}
	if err := writeSheet(f, SheetServices, rows); err != nil {
		f.Close()
		return nil, err
	}

	rows = [][]any{{"ID", "Title", "Client", "Tagline", "Description", "Image"}}
	for _, p := range c.Projects {
		rows = append(rows, []any{p.ID, p.Title, p.Client, p.Tagline, p.Description, p.Image})
	}
	if err := writeSheet(f, SheetPortfolio, rows); err != nil {
		f.Close()
		return nil, err
	}

	rows = [][]any{{"ID", "Name", "Company", "Text", "Photo"}}
	for _, t := range c.Testimonials {
		rows = append(rows, []any{t.ID, t.Name, t.Company, t.Text, t.Photo})
	}
	if err := writeSheet(f, SheetTestimonials, rows); err != nil {
		f.Close()
		return nil, err
	}

	f.SetActiveSheet(0)
	return f, nil
}

// Export writes the workbook to path.
func Export(path string, c Content) error {
	f, err := Workbook(c)
	if err != nil {
		return fmt.Errorf("building workbook: %w", err)
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

func writeSheet(f *excelize.File, name string, rows [][]any) error {
	if idx, _ := f.GetSheetIndex(name); idx < 0 {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("creating sheet %s: %w", name, err)
		}
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("writing %s row %d: %w", name, i+1, err)
		}
	}
	return nil
}
