package services

import (
	"time"

	"github.com/google/logger"
	"gorm.io/gorm"

	"megaDeOuro/models"
	"megaDeOuro/services/common"
)

// RunPhoneNormalizationMigration strips formatting from legacy entry phones
// ("(88) 99999-9999" -> "88999999999") so the ListByPhone lookup matches on
// digits alone. Guarded by a migrations row; runs once.
func RunPhoneNormalizationMigration(db *gorm.DB) error {
	const name = "normalize_entry_phones"

	var existing models.Migration
	result := db.Where("name = ?", name).First(&existing)
	if result.Error == nil && existing.ID != 0 {
		return nil
	}

	var entries []models.Entry
	if err := db.Find(&entries).Error; err != nil {
		return err
	}

	changed := 0
	for _, entry := range entries {
		clean := common.NormalizePhone(entry.Phone)
		if clean == entry.Phone {
			continue
		}
		if err := db.Model(&models.Entry{}).Where("id = ?", entry.ID).
			Update("phone", clean).Error; err != nil {
			logger.Errorf("erro ao normalizar telefone do jogo %s: %v", entry.ID, err)
			continue
		}
		changed++
	}

	if changed > 0 {
		logger.Infof("migração %s: %d telefones normalizados", name, changed)
	}

	migration := models.Migration{Name: name, ExecutedAt: time.Now()}
	return db.Create(&migration).Error
}
