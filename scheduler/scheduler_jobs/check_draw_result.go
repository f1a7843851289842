package scheduler_jobs

import (
	"errors"
	"fmt"
	"log"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/google/logger"
	"gorm.io/gorm"

	"megaDeOuro/models"
	"megaDeOuro/models/external"
	"megaDeOuro/services/extService"
	"megaDeOuro/services/poolService"
)

// CheckDrawResult refreshes the latest Mega-Sena result, persists any new
// contest, and flags the active pool when its contest has been drawn.
// Closing stays an explicit admin action; this job only reports readiness.
func CheckDrawResult(db *gorm.DB, results *extService.Client) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Println("Recovered in CheckDrawResult", r)
			debug.PrintStack()
			err = fmt.Errorf("panic recovered in CheckDrawResult: %v", r)
		}
	}()

	latest := results.Latest()
	if latest == nil {
		return nil
	}

	if err := persistResult(db, latest); err != nil {
		return err
	}

	pool, err := poolService.ActivePool(db)
	if errors.Is(err, poolService.ErrNoActivePool) {
		return nil
	}
	if err != nil {
		return err
	}

	if time.Now().Before(pool.DrawDate) {
		return nil
	}

	contest, convErr := strconv.Atoi(pool.Contest)
	if convErr != nil {
		logger.Warningf("bolão %s tem concurso não numérico %q", pool.ID, pool.Contest)
		return nil
	}

	result := latest
	if latest.Concurso != contest {
		result = results.ByContest(contest)
	}
	if result == nil {
		return nil
	}

	if err := persistResult(db, result); err != nil {
		return err
	}

	logger.Infof("bolão %s pronto para encerramento: resultado do concurso %d publicado (%v)",
		pool.ID, contest, result.Dezenas)
	return nil
}

func persistResult(db *gorm.DB, res *external.MegaSenaResult) error {
	numbers, err := res.Numbers()
	if err != nil {
		return fmt.Errorf("dezenas inválidas no concurso %d: %v", res.Concurso, err)
	}

	draw := models.DrawResult{
		Contest:            strconv.Itoa(res.Concurso),
		Numbers:            models.NormalizeNumbers(numbers),
		DrawDate:           res.DrawDate(),
		Accumulated:        res.Acumulou,
		PrizeEstimateCents: res.PrizeEstimateCents(),
	}
	return db.Where("contest = ?", draw.Contest).FirstOrCreate(&draw).Error
}
