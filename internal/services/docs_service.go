package services

import (
	"bytes"
	"database/sql"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"

	intconfig "tablebook/internal/config"
	"tablebook/internal/domain/models"
	"tablebook/internal/repositories"
	"tablebook/internal/utils"
)

// DocsService renders the printable booking confirmation.
type DocsService struct {
	BookingRepo    repositories.BookingRepository
	TableRepo      repositories.TableRepository
	RestaurantRepo repositories.RestaurantRepository
	DB             *sql.DB
	RequestID      string
	Loader         func(bookingID int64) (confirmationData, error)
}

type confirmationData struct {
	Booking        models.Booking
	TableName      string
	Section        string
	RestaurantName string
}

func (s DocsService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s DocsService) GenerateConfirmation(bookingID int64) ([]byte, string, error) {
	data, err := s.load(bookingID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_confirmation", fmt.Sprintf("booking_id=%d", bookingID))
	return buildConfirmationPDF(data)
}

func (s DocsService) load(bookingID int64) (confirmationData, error) {
	if s.Loader != nil {
		return s.Loader(bookingID)
	}
	var out confirmationData

	bookingRepo := s.BookingRepo
	if bookingRepo.DB == nil {
		bookingRepo = repositories.BookingRepository{DB: s.db()}
	}
	b, err := bookingRepo.GetByID(bookingID)
	if err != nil {
		return out, err
	}
	out.Booking = b

	tableRepo := s.TableRepo
	if tableRepo.DB == nil {
		tableRepo = repositories.TableRepository{DB: s.db()}
	}
	if table, err := tableRepo.GetByID(b.TableID); err == nil {
		out.TableName = table.Name
		out.Section = table.Section
	}

	restaurantRepo := s.RestaurantRepo
	if restaurantRepo.DB == nil {
		restaurantRepo = repositories.RestaurantRepository{DB: s.db()}
	}
	if rest, err := restaurantRepo.GetByID(b.RestaurantID); err == nil {
		out.RestaurantName = rest.Name
	}

	return out, nil
}

func safe(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func buildConfirmationPDF(d confirmationData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Reservation Confirmation", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "RESERVATION CONFIRMATION")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Restaurant    : %s", safe(d.RestaurantName, "-")),
		fmt.Sprintf("Guest         : %s", safe(d.Booking.CustomerName, "-")),
		fmt.Sprintf("Party size    : %d", d.Booking.PartySize),
		fmt.Sprintf("Date          : %s", safe(d.Booking.BookingDate, "-")),
		fmt.Sprintf("Time          : %s - %s", safe(d.Booking.StartTime, "-"), safe(d.Booking.EndTime, "-")),
		fmt.Sprintf("Table         : %s", safe(d.TableName, "-")),
		fmt.Sprintf("Section       : %s", safe(d.Section, "-")),
		fmt.Sprintf("Reference     : %s", safe(d.Booking.Reference, "-")),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	if strings.TrimSpace(d.Booking.SpecialRequests) != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, "Special requests:")
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, d.Booking.SpecialRequests, "", "", false)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Please arrive on time. Tables are held for 15 minutes past the reservation start.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("RESERVATION_%d.pdf", d.Booking.ID)
	return buf.Bytes(), filename, nil
}
