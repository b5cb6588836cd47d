package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/ssemakula/marksheet/models"
	"gorm.io/gorm"
)

const admissionNoDigits = 5

func GenerateUniqueAdmissionNo(tx *gorm.DB) (string, error) {
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))
	year := time.Now().Year()

	for {
		no := fmt.Sprintf("%d-%0*d", year, admissionNoDigits, seededRand.Intn(100000))

		var student models.Student
		err := tx.Where("admission_no = ?", no).First(&student).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return no, nil
			}
			return "", err
		}
	}
}
