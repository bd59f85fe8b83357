package xlsexport

import (
	dbmodels "booking-backend/models/db"
	"bytes"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

const (
	dateTimeFormat = "02.01.2006 15:04"
	sheetName      = "Бронирования"
)

var bookingHeaders = []string{"Переговорная", "Начало", "Окончание", "Статус", "Организатор", "Почта организатора", "Цель", "Приглашенные"}

// ExportBookingList отчет по бронированиям переговорных в xlsx
func ExportBookingList(list []dbmodels.BookingRequest) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, bookingHeaders, 25)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if len(list) != 0 {
		_, err = writeBookingData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	if err = f.SetSheetName(sheet, sheetName); err != nil {
		return nil, err
	}
	return f.WriteToBuffer()
}

func writeBookingData(f *excelize.File, sheet string, list []dbmodels.BookingRequest, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(bookingHeaders), row+len(list)); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		values := []interface{}{
			"",
			item.StartTime.Format(dateTimeFormat),
			item.EndTime.Format(dateTimeFormat),
			item.Status.ToHuman(),
			"",
			"",
			item.Purpose,
			invitedNames(item.InvitedUsers),
		}
		if item.MeetingRoom != nil {
			values[0] = item.MeetingRoom.Name
		}
		if item.Employee != nil {
			values[4] = item.Employee.Name
			values[5] = item.Employee.Email
		}
		for idx, value := range values {
			if err := writeColumn(f, sheet, idx+1, row, value); err != nil {
				return row, err
			}
		}
	}
	return row, nil
}

func invitedNames(list []dbmodels.Employee) string {
	names := make([]string, 0, len(list))
	for _, item := range list {
		names = append(names, item.Name)
	}
	return strings.Join(names, ", ")
}

func itoa(value int) string {
	return strconv.Itoa(value)
}
