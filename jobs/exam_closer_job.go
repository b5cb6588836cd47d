package jobs

import (
	"log"
	"time"

	"github.com/ssemakula/marksheet/database"
	"github.com/ssemakula/marksheet/models"
)

// CloseExpiredExams deactivates active exams whose entry window has passed.
// Closing only blocks new submissions; pending marks stay reviewable.
func CloseExpiredExams() {
	log.Println("Running job: CloseExpiredExams...")

	res := database.DB.Model(&models.Exam{}).
		Where("is_active = ? AND ends_at IS NOT NULL AND ends_at < ?", true, time.Now()).
		Update("is_active", false)

	if res.Error != nil {
		log.Printf("Error closing expired exams: %v", res.Error)
		return
	}

	if res.RowsAffected == 0 {
		log.Println("No expired exams found.")
		return
	}

	log.Printf("Closed %d expired exam(s) for mark entry.", res.RowsAffected)
}
