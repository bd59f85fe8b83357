package pdfexport

import (
	dbmodels "booking-backend/models/db"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
)

const (
	fontFile   = "DejaVuSans.ttf"
	fontFamily = "DejaVu"
	dateFormat = "02.01.2006"
)

// GenerateVacationRequest бланк заявления на отпуск.
// Без шрифта с кириллицей в fontDir текст выводится транслитом
func GenerateVacationRequest(rec dbmodels.VacationRequest, fontDir string) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateVacationRequest panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Vacation request", true)
	pdf.SetCreationDate(time.Now())
	tr := setFont(pdf, fontDir)
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}
	pdf.AddPage()

	employeeName := ""
	if rec.Employee != nil {
		employeeName = rec.Employee.Name
	}
	pdf.SetFontSize(16)
	pdf.CellFormat(0, 12, tr("Заявление на отпуск"), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFontSize(12)
	lines := [][2]string{
		{"Сотрудник", employeeName},
		{"Вид отпуска", rec.Type.ToHuman()},
		{"Период", fmt.Sprintf("%s - %s", rec.StartDate.Format(dateFormat), rec.EndDate.Format(dateFormat))},
		{"Количество дней", fmt.Sprintf("%d", rec.Days())},
		{"Статус", rec.Status.ToHuman()},
		{"Дата заявления", rec.CreatedAt.Format(dateFormat)},
	}
	for _, line := range lines {
		pdf.CellFormat(55, 8, tr(line[0]+":"), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 8, tr(line[1]), "", 1, "L", false, 0, "")
	}
	if rec.Reason != "" {
		pdf.Ln(4)
		pdf.CellFormat(0, 8, tr("Причина:"), "", 1, "L", false, 0, "")
		pdf.MultiCell(0, 6, tr(rec.Reason), "", "L", false)
	}
	if len(rec.Attachments) != 0 {
		pdf.Ln(4)
		pdf.CellFormat(0, 8, tr("Приложения:"), "", 1, "L", false, 0, "")
		for n, item := range rec.Attachments {
			pdf.CellFormat(0, 6, tr(fmt.Sprintf("%d. %s", n+1, item.Name)), "", 1, "L", false, 0, "")
		}
	}
	pdf.Ln(16)
	pdf.CellFormat(90, 8, tr("Подпись сотрудника ____________"), "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 8, tr("Согласовано ____________"), "", 1, "R", false, 0, "")

	buf := new(bytes.Buffer)
	err = pdf.Output(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func setFont(pdf *fpdf.Fpdf, fontDir string) func(string) string {
	fontPath := filepath.Join(fontDir, fontFile)
	if _, err := os.Stat(fontPath); err == nil {
		pdf.SetFontLocation(fontDir)
		pdf.AddUTF8Font(fontFamily, "", fontFile)
		pdf.SetFont(fontFamily, "", 12)
		return func(s string) string { return s }
	}
	pdf.SetFont("Helvetica", "", 12)
	return Translit
}
