package service

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"path/filepath"
	"strings"
	"time"

	"rentaride/internal/db"
)

// SenderService sends the booking confirmation and return notices over
// SendGrid and Twilio. Delivery failures are logged, never surfaced to the
// request that triggered them.
type SenderService struct{}

func NewSenderService() *SenderService {
	return &SenderService{}
}

type rentalEmailVehicle struct {
	Name      string
	Model     string
	LinePrice float64
}

type rentalEmailData struct {
	UserName           string
	Status             string
	Vehicles           []rentalEmailVehicle
	StartDateFormatted string
	EndDateFormatted   string
	TotalPrice         float64
	CurrentYear        int
}

func (s *SenderService) BookingConfirmed(user *db.User, vehicles []db.Vehicle, start, end time.Time, total float64) {
	days := RentalDays(start, end)
	data := rentalEmailData{
		UserName:           user.Username,
		Status:             "confirmed",
		StartDateFormatted: start.Format("02 Jan 2006"),
		EndDateFormatted:   end.Format("02 Jan 2006"),
		TotalPrice:         total,
		CurrentYear:        time.Now().Year(),
	}
	var names []string
	for _, v := range vehicles {
		data.Vehicles = append(data.Vehicles, rentalEmailVehicle{
			Name:      v.Name,
			Model:     v.Model,
			LinePrice: v.PricePerDay * float64(days),
		})
		names = append(names, v.Name)
	}

	subject := fmt.Sprintf("Your RentARide rental is confirmed - Total: $%.2f", total)
	plainBody := fmt.Sprintf(
		"Hello %s,\n\nYour rental is confirmed.\n\n"+
			"Vehicles: %s\n"+
			"Pick-up: %s\n"+
			"Return: %s\n"+
			"Total price: $%.2f\n\n"+
			"Thank you for choosing RentARide.",
		user.Username, strings.Join(names, ", "),
		data.StartDateFormatted, data.EndDateFormatted, total,
	)

	htmlBody := renderRentalEmail(data)

	go func(toEmail, toName string) {
		if err := SendEmailWithSendGrid(toEmail, toName, subject, plainBody, htmlBody); err != nil {
			log.Printf("Booking confirmation email to %s failed: %v", toEmail, err)
		}
	}(user.Email, user.Username)

	sms := fmt.Sprintf("RentARide: your rental is confirmed! Pick-up: %s. Total: $%.2f. Details in your email.",
		start.Format("02/01"), total)
	go func(toPhone string) {
		if err := SendSMS(toPhone, sms); err != nil {
			log.Printf("Booking confirmation SMS to %s failed: %v", toPhone, err)
		}
	}(user.Phone)
}

func (s *SenderService) BookingReturned(user *db.User, vehicleName string) {
	subject := fmt.Sprintf("You returned %s - RentARide", vehicleName)
	plainBody := fmt.Sprintf(
		"Hello %s,\n\nWe have registered the return of %s. The vehicle is available for rent again.\n\n"+
			"Thank you for choosing RentARide.",
		user.Username, vehicleName,
	)

	go func(toEmail, toName string) {
		if err := SendEmailWithSendGrid(toEmail, toName, subject, plainBody, ""); err != nil {
			log.Printf("Return confirmation email to %s failed: %v", toEmail, err)
		}
	}(user.Email, user.Username)
}

func renderRentalEmail(data rentalEmailData) string {
	tmplPath := filepath.Join("internal", "templates", "rental_email.html")
	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		log.Printf("Error parsing rental email template (%s): %v", tmplPath, err)
		return ""
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		log.Printf("Error executing rental email template: %v", err)
		return ""
	}
	return buf.String()
}
