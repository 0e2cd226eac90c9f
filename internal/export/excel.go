package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"hotelier/internal/domain"
	"hotelier/internal/interval"
	"hotelier/internal/models"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Бронирования"

// Exporter renders the current booking ledger into an Excel workbook,
// one row per booking, grouped by hotel and room.
type Exporter struct {
	repo   domain.Repository
	path   string
	logger *zerolog.Logger
}

func NewExporter(repo domain.Repository, path string, logger *zerolog.Logger) *Exporter {
	return &Exporter{repo: repo, path: path, logger: logger}
}

// BuildReport writes the workbook to the export directory and returns
// the file path.
func (e *Exporter) BuildReport(ctx context.Context) (string, error) {
	if err := os.MkdirAll(e.path, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	rooms, err := e.repo.GetRooms(ctx)
	if err != nil {
		return "", fmt.Errorf("load rooms: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)

	e.writeHeaders(f)

	row := 2
	for _, room := range rooms {
		bookings, err := e.repo.GetBookingsByRoom(ctx, room.ID)
		if err != nil {
			return "", fmt.Errorf("load bookings for room %s: %w", room.ID, err)
		}
		for _, booking := range bookings {
			e.writeBookingRow(f, row, room, booking)
			row++
		}
	}

	e.setColumnWidths(f)
	_ = f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("bookings_%s.xlsx", time.Now().Format("2006-01-02_15-04-05"))
	filePath := filepath.Join(e.path, fileName)
	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}

	if e.logger != nil {
		e.logger.Info().Str("file_path", filePath).Int("rows", row-2).Msg("bookings workbook created")
	}
	return filePath, nil
}

func (e *Exporter) writeHeaders(f *excelize.File) {
	headers := []string{
		"Отель", "Номер", "Тип", "Гость", "Email",
		"Заезд", "Выезд", "Статус", "Создано",
	}

	style, _ := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, header)
		_ = f.SetCellStyle(sheetName, cell, cell, style)
	}
}

func (e *Exporter) writeBookingRow(f *excelize.File, row int, room models.Room, booking models.Booking) {
	hotelName := room.HotelID
	if room.Hotel != nil {
		hotelName = room.Hotel.Name
	}

	status := "активно"
	if !booking.IsActive {
		status = "отменено"
	}

	values := []interface{}{
		hotelName,
		room.Number,
		room.Type,
		booking.GuestName,
		booking.GuestEmail,
		booking.CheckIn.Format(interval.DateLayout),
		booking.CheckOut.Format(interval.DateLayout),
		status,
		booking.CreatedAt.Format("02.01.2006 15:04"),
	}
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = f.SetCellValue(sheetName, cell, v)
	}

	if !booking.IsActive {
		style, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{"#FFC7CE"}, Pattern: 1},
		})
		if err == nil {
			first, _ := excelize.CoordinatesToCellName(1, row)
			last, _ := excelize.CoordinatesToCellName(len(values), row)
			_ = f.SetCellStyle(sheetName, first, last, style)
		}
	}
}

func (e *Exporter) setColumnWidths(f *excelize.File) {
	_ = f.SetColWidth(sheetName, "A", "A", 25)
	_ = f.SetColWidth(sheetName, "B", "C", 12)
	_ = f.SetColWidth(sheetName, "D", "E", 25)
	_ = f.SetColWidth(sheetName, "F", "G", 12)
	_ = f.SetColWidth(sheetName, "H", "H", 12)
	_ = f.SetColWidth(sheetName, "I", "I", 18)
}
