package scheduler_jobs

import (
	"fmt"
	"log"
	"runtime/debug"

	"github.com/google/logger"
	"gorm.io/gorm"

	"megaDeOuro/services/entryService"
	"megaDeOuro/services/pixService"
)

// CheckStalePayments reports pending entries whose advisory PIX window has
// passed so the organizer can chase or cancel them. The window is advisory:
// nothing here mutates entry state.
func CheckStalePayments(db *gorm.DB) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Println("Recovered in CheckStalePayments", r)
			debug.PrintStack()
			err = fmt.Errorf("panic recovered in CheckStalePayments: %v", r)
		}
	}()

	count, err := entryService.CountStalePending(db, pixService.PaymentWindow)
	if err != nil {
		return err
	}

	if count > 0 {
		logger.Infof("%d jogos pendentes com janela de pagamento expirada", count)
	}
	return nil
}
