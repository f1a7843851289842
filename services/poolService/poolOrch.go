package poolService

import (
	"errors"
	"strings"
	"time"

	"github.com/google/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"megaDeOuro/models"
	"megaDeOuro/services/prizeService"
)

var (
	ErrPoolNotFound     = errors.New("bolão não encontrado")
	ErrNoActivePool     = errors.New("nenhum bolão ativo no momento")
	ErrActivePoolExists = errors.New("já existe um bolão ativo")
	ErrPoolNotActive    = errors.New("bolão não está ativo")
	ErrInvalidPoolName  = errors.New("nome deve ter no mínimo 3 caracteres")
	ErrInvalidPrice     = errors.New("valor do jogo deve ser maior que R$ 1,00")
	ErrInvalidFee       = errors.New("taxa do organizador deve estar entre 0% e 30%")
	ErrPastDrawDate     = errors.New("data do sorteio deve ser futura")
	ErrInvalidResult    = errors.New("resultado deve ter 6 números distintos entre 1 e 60")
	ErrStatusTransition = errors.New("transição de status inválida")
)

type CreatePoolInput struct {
	Name            string
	Contest         string
	DrawDate        time.Time
	EntryPriceCents int64
	OrganizerFeePct int64
}

type UpdatePoolInput struct {
	Name            *string
	Contest         *string
	DrawDate        *time.Time
	EntryPriceCents *int64
	OrganizerFeePct *int64
}

// CreatePool creates a new pool in active status. At most one pool may be
// active; the check is explicit here rather than left to query ordering.
func CreatePool(db *gorm.DB, input CreatePoolInput) (*models.Pool, error) {
	if len(strings.TrimSpace(input.Name)) < 3 {
		return nil, ErrInvalidPoolName
	}
	if input.EntryPriceCents == 0 {
		input.EntryPriceCents = models.DefaultEntryPriceCents
	}
	if input.EntryPriceCents < 100 {
		return nil, ErrInvalidPrice
	}
	if input.OrganizerFeePct < 0 || input.OrganizerFeePct > models.MaxOrganizerFeePct {
		return nil, ErrInvalidFee
	}
	if !input.DrawDate.After(time.Now()) {
		return nil, ErrPastDrawDate
	}

	var activeCount int64
	if err := db.Model(&models.Pool{}).Where("status = ?", models.PoolActive).Count(&activeCount).Error; err != nil {
		return nil, err
	}
	if activeCount > 0 {
		return nil, ErrActivePoolExists
	}

	pool := models.Pool{
		ID:              uuid.NewString(),
		Name:            strings.TrimSpace(input.Name),
		Contest:         strings.TrimSpace(input.Contest),
		DrawDate:        input.DrawDate,
		EntryPriceCents: input.EntryPriceCents,
		OrganizerFeePct: input.OrganizerFeePct,
		Status:          models.PoolActive,
	}
	if err := db.Create(&pool).Error; err != nil {
		return nil, err
	}

	logger.Infof("bolão criado: %s (%s), concurso %s", pool.Name, pool.ID, pool.Contest)
	return &pool, nil
}

// GetPool loads a pool by id.
func GetPool(db *gorm.DB, id string) (*models.Pool, error) {
	var pool models.Pool
	err := db.First(&pool, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPoolNotFound
	}
	if err != nil {
		return nil, err
	}
	return &pool, nil
}

// ActivePool returns the single active pool.
func ActivePool(db *gorm.DB) (*models.Pool, error) {
	var pool models.Pool
	err := db.Where("status = ?", models.PoolActive).
		Order("created_at desc").
		First(&pool).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoActivePool
	}
	if err != nil {
		return nil, err
	}
	return &pool, nil
}

// ListPools returns every pool, newest first.
func ListPools(db *gorm.DB) ([]models.Pool, error) {
	var pools []models.Pool
	if err := db.Order("created_at desc").Find(&pools).Error; err != nil {
		return nil, err
	}
	return pools, nil
}

// UpdatePool edits pool attributes. Status is not editable here; closing and
// canceling have their own paths.
func UpdatePool(db *gorm.DB, id string, input UpdatePoolInput) (*models.Pool, error) {
	pool, err := GetPool(db, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if len(strings.TrimSpace(*input.Name)) < 3 {
			return nil, ErrInvalidPoolName
		}
		pool.Name = strings.TrimSpace(*input.Name)
	}
	if input.Contest != nil {
		pool.Contest = strings.TrimSpace(*input.Contest)
	}
	if input.DrawDate != nil {
		pool.DrawDate = *input.DrawDate
	}
	if input.EntryPriceCents != nil {
		if *input.EntryPriceCents < 100 {
			return nil, ErrInvalidPrice
		}
		pool.EntryPriceCents = *input.EntryPriceCents
	}
	if input.OrganizerFeePct != nil {
		if *input.OrganizerFeePct < 0 || *input.OrganizerFeePct > models.MaxOrganizerFeePct {
			return nil, ErrInvalidFee
		}
		pool.OrganizerFeePct = *input.OrganizerFeePct
	}

	if err := db.Save(pool).Error; err != nil {
		return nil, err
	}
	return pool, nil
}

// CancelPool moves an active pool to canceled. Terminal states stay put.
func CancelPool(db *gorm.DB, id string) (*models.Pool, error) {
	pool, err := GetPool(db, id)
	if err != nil {
		return nil, err
	}
	if pool.Status != models.PoolActive {
		return nil, ErrStatusTransition
	}

	pool.Status = models.PoolCanceled
	if err := db.Save(pool).Error; err != nil {
		return nil, err
	}
	logger.Infof("bolão cancelado: %s", pool.ID)
	return pool, nil
}

// NumbersVisible reports whether entry numbers may be shown on the public
// participant list: after the pool closes or once the draw date has passed.
func NumbersVisible(pool *models.Pool, now time.Time) bool {
	if pool.Status == models.PoolClosed {
		return true
	}
	return !now.Before(pool.DrawDate)
}

// Winner is one paid entry's outcome within a settlement tier.
type Winner struct {
	EntryID    string
	Name       string
	Phone      string
	Matches    int
	ShareCents int64
}

// TierSettlement is a prize bracket with its winners and shares.
type TierSettlement struct {
	Label          string
	Percent        int64
	AmountCents    int64
	PerWinnerCents int64
	Winners        []Winner
}

// Settlement is the full outcome of closing a pool against a draw result.
type Settlement struct {
	Pool           *models.Pool
	Result         models.NumberSet
	PaidEntries    int
	TotalCents     int64
	OrganizerCents int64
	RemainingCents int64
	Tiers          []TierSettlement
}

// ClosePool records the official result, transitions the pool to closed and
// computes the settlement: match counts for every paid entry, tier
// assignment and per-winner shares.
func ClosePool(db *gorm.DB, id string, resultNumbers []int, schedule prizeService.Schedule) (*Settlement, error) {
	pool, err := GetPool(db, id)
	if err != nil {
		return nil, err
	}
	if pool.Status != models.PoolActive {
		return nil, ErrPoolNotActive
	}

	result := models.NormalizeNumbers(resultNumbers)
	if len(result) != models.ResultSize {
		return nil, ErrInvalidResult
	}
	for _, n := range result {
		if n < models.MinNumber || n > models.MaxNumber {
			return nil, ErrInvalidResult
		}
	}

	var entries []models.Entry
	if err := db.Where("pool_id = ? AND status = ?", pool.ID, models.EntryPaid).Find(&entries).Error; err != nil {
		return nil, err
	}

	var total int64
	matches := make([]int, len(entries))
	fewest := models.NumbersPerEntry + 1
	for i, e := range entries {
		total += e.PriceCents
		matches[i] = prizeService.MatchCount(e.Numbers, result)
		if matches[i] < fewest {
			fewest = matches[i]
		}
	}

	breakdown := prizeService.Split(total, pool.OrganizerFeePct, schedule)

	tiers := make([]TierSettlement, len(schedule.Tiers))
	for ti, tier := range schedule.Tiers {
		tiers[ti] = TierSettlement{
			Label:       tier.Label,
			Percent:     tier.Percent,
			AmountCents: breakdown.TierCents[ti],
		}
	}

	for i, e := range entries {
		ti := prizeService.TierFor(matches[i], fewest, schedule)
		if ti < 0 {
			continue
		}
		tiers[ti].Winners = append(tiers[ti].Winners, Winner{
			EntryID: e.ID,
			Name:    e.Name,
			Phone:   e.Phone,
			Matches: matches[i],
		})
	}

	for ti := range tiers {
		each, first := prizeService.PerWinner(tiers[ti].AmountCents, len(tiers[ti].Winners))
		tiers[ti].PerWinnerCents = each
		for wi := range tiers[ti].Winners {
			if wi == 0 {
				tiers[ti].Winners[wi].ShareCents = first
			} else {
				tiers[ti].Winners[wi].ShareCents = each
			}
		}
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		pool.Status = models.PoolClosed
		if err := tx.Save(pool).Error; err != nil {
			return err
		}

		draw := models.DrawResult{
			Contest:  pool.Contest,
			Numbers:  result,
			DrawDate: pool.DrawDate,
		}
		return tx.Where("contest = ?", draw.Contest).FirstOrCreate(&draw).Error
	})
	if err != nil {
		return nil, err
	}

	logger.Infof("bolão encerrado: %s, resultado %s, %d jogos pagos, arrecadado %d centavos",
		pool.ID, result, len(entries), total)

	return &Settlement{
		Pool:           pool,
		Result:         result,
		PaidEntries:    len(entries),
		TotalCents:     total,
		OrganizerCents: breakdown.OrganizerCents,
		RemainingCents: breakdown.RemainingCents,
		Tiers:          tiers,
	}, nil
}
