package service

import (
	"fmt"
	"log"
	"strings"
	"time"

	"rentaride/internal/repository"
)

// JobService runs the scheduled read-only maintenance work. It never mutates
// booking state; rentals change only through the booking engine.
type JobService struct {
	Rentals repository.RentalStore
	Users   repository.UserStore
}

func NewJobService(rentals repository.RentalStore, users repository.UserStore) *JobService {
	return &JobService{Rentals: rentals, Users: users}
}

// SendDailyRentalReport emails every admin a summary of active rentals and of
// the rentals running today.
func (s *JobService) SendDailyRentalReport() error {
	log.Println("Cron Job: building daily rental report...")

	active, err := s.Rentals.ActiveAll()
	if err != nil {
		return fmt.Errorf("cron job: failed to list active rentals: %w", err)
	}
	today, err := s.Rentals.ActiveToday(time.Now().UTC())
	if err != nil {
		return fmt.Errorf("cron job: failed to list today's rentals: %w", err)
	}

	log.Printf("Cron Job: %d active rentals, %d running today", len(active), len(today))

	emails, err := s.Users.AdminEmails()
	if err != nil {
		return fmt.Errorf("cron job: failed to list admin emails: %w", err)
	}
	if len(emails) == 0 {
		log.Println("Cron Job: no admin accounts to report to")
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Daily rental report for %s\n\n", time.Now().UTC().Format("02 Jan 2006"))
	fmt.Fprintf(&b, "Active rentals: %d\n", len(active))
	for _, r := range active {
		fmt.Fprintf(&b, "  #%d %s rented %s (%s to %s, $%.2f)\n",
			r.ID, r.Username, r.VehicleName,
			r.StartDate.Format("2006-01-02"), r.EndDate.Format("2006-01-02"), r.TotalPrice)
	}
	fmt.Fprintf(&b, "\nRunning today: %d\n", len(today))
	for _, r := range today {
		fmt.Fprintf(&b, "  #%d %s has %s\n", r.ID, r.Username, r.VehicleName)
	}

	subject := fmt.Sprintf("RentARide daily report - %d active rentals", len(active))
	body := b.String()
	for _, email := range emails {
		go func(to string) {
			if err := SendEmailWithSendGrid(to, "Admin", subject, body, ""); err != nil {
				log.Printf("Cron Job: report email to %s failed: %v", to, err)
			}
		}(email)
	}
	return nil
}
