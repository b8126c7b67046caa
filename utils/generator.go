package utils

import (
	"math/rand"
	"time"

	"github.com/fathallah7/health-clinic/models"
	"gorm.io/gorm"
)

const orderNumberSuffixLength = 8
const letterBytes = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateUniqueOrderNumber returns a human-readable order number of the
// form ORD-XXXXXXXX that does not collide with any existing order.
func GenerateUniqueOrderNumber(tx *gorm.DB) (string, error) {
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))

	for {
		b := make([]byte, orderNumberSuffixLength)
		for i := range b {
			b[i] = letterBytes[seededRand.Intn(len(letterBytes))]
		}
		number := "ORD-" + string(b)

		var order models.Order
		err := tx.Where("order_number = ?", number).First(&order).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return number, nil
			}
			return "", err
		}
	}
}
