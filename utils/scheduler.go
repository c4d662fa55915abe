package utils

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"lms/repository"
)

// InitializeOTPScheduler starts the hourly purge of expired verification codes.
func InitializeOTPScheduler(otps *repository.OTPs) *cron.Cron {
	log.Println("[OTP-SCHEDULER] Initializing OTP purge scheduler...")

	c := cron.New()

	c.AddFunc("0 * * * *", func() {
		purged, err := otps.PurgeExpired(time.Now())
		if err != nil {
			log.Printf("[OTP-SCHEDULER] Error purging expired codes: %v", err)
			return
		}
		if purged > 0 {
			log.Printf("[OTP-SCHEDULER] Purged %d expired codes", purged)
		}
	})

	c.Start()
	log.Println("[OTP-SCHEDULER] OTP purge scheduler started - runs hourly")
	return c
}
