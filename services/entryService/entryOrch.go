package entryService

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"megaDeOuro/models"
	"megaDeOuro/services/common"
	"megaDeOuro/services/poolService"
)

var (
	ErrPoolNotOpen    = errors.New("bolão não encontrado ou não está ativo")
	ErrInvalidName    = errors.New("nome deve ter pelo menos 3 caracteres")
	ErrInvalidPhone   = errors.New("whatsapp inválido")
	ErrInvalidNumbers = fmt.Errorf("selecione exatamente %d números entre %d e %d",
		models.NumbersPerEntry, models.MinNumber, models.MaxNumber)
	ErrEntryNotFound = errors.New("jogo não encontrado")
	ErrEntryCanceled = errors.New("jogo cancelado, não é possível confirmar")
	ErrBadStatus     = errors.New("status inválido")
)

type CreateEntryInput struct {
	PoolID     string
	Name       string
	Phone      string
	Numbers    []int
	PriceCents int64 // 0 means the pool's configured price
}

// CreateEntry validates and inserts a pending entry against an active pool.
// The number set is deduped and stored sorted ascending.
func CreateEntry(db *gorm.DB, input CreateEntryInput) (*models.Entry, error) {
	var pool models.Pool
	err := db.Where("id = ? AND status = ?", input.PoolID, models.PoolActive).First(&pool).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPoolNotOpen
	}
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if len(name) < 3 {
		return nil, ErrInvalidName
	}

	phone := common.NormalizePhone(input.Phone)
	if len(phone) != 11 {
		return nil, ErrInvalidPhone
	}

	numbers := models.NormalizeNumbers(input.Numbers)
	if len(numbers) != models.NumbersPerEntry {
		return nil, ErrInvalidNumbers
	}
	for _, n := range numbers {
		if n < models.MinNumber || n > models.MaxNumber {
			return nil, ErrInvalidNumbers
		}
	}

	price := input.PriceCents
	if price == 0 {
		price = pool.EntryPriceCents
	}
	if price == 0 {
		price = models.DefaultEntryPriceCents
	}

	entry := models.Entry{
		ID:         uuid.NewString(),
		PoolID:     pool.ID,
		Name:       name,
		Phone:      phone,
		Numbers:    numbers,
		PriceCents: price,
		Status:     models.EntryPending,
	}
	paymentID := "PIX-" + entry.ID
	entry.PaymentID = &paymentID

	if err := db.Create(&entry).Error; err != nil {
		return nil, err
	}

	logger.Infof("jogo criado: %s no bolão %s (%s)", entry.ID, pool.ID, common.FormatPhone(phone))
	return &entry, nil
}

// ConfirmResult reports the outcome of a payment confirmation.
type ConfirmResult struct {
	Entry            *models.Entry
	AlreadyConfirmed bool
}

// ConfirmPayment transitions a pending entry to paid. It is idempotent under
// provider retries: an already-paid entry is reported as such, never an
// error, and the transition itself is a single conditional update so
// concurrent callbacks cannot double-apply it.
func ConfirmPayment(db *gorm.DB, id string) (*ConfirmResult, error) {
	entry, err := GetEntry(db, id)
	if err != nil {
		return nil, err
	}

	switch entry.Status {
	case models.EntryCanceled:
		return nil, ErrEntryCanceled
	case models.EntryPaid:
		return &ConfirmResult{Entry: entry, AlreadyConfirmed: true}, nil
	}

	now := time.Now()
	res := db.Model(&models.Entry{}).
		Where("id = ? AND status = ?", id, models.EntryPending).
		Updates(map[string]interface{}{"status": models.EntryPaid, "paid_at": now})
	if res.Error != nil {
		return nil, res.Error
	}

	if res.RowsAffected == 0 {
		// Lost a race with a concurrent confirm or cancel; re-read and report.
		entry, err = GetEntry(db, id)
		if err != nil {
			return nil, err
		}
		if entry.Status == models.EntryCanceled {
			return nil, ErrEntryCanceled
		}
		return &ConfirmResult{Entry: entry, AlreadyConfirmed: true}, nil
	}

	entry.Status = models.EntryPaid
	entry.PaidAt = &now
	logger.Infof("pagamento confirmado: jogo %s", id)
	return &ConfirmResult{Entry: entry}, nil
}

// SetStatus is the admin override: sets any valid status unconditionally,
// stamping paid_at when marking paid.
func SetStatus(db *gorm.DB, id string, status models.EntryStatus) (*models.Entry, error) {
	switch status {
	case models.EntryPending, models.EntryPaid, models.EntryCanceled:
	default:
		return nil, ErrBadStatus
	}

	if _, err := GetEntry(db, id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"status": status}
	if status == models.EntryPaid {
		updates["paid_at"] = time.Now()
	}
	if err := db.Model(&models.Entry{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}

	logger.Infof("status do jogo %s alterado para %s", id, status)
	return GetEntry(db, id)
}

// GetEntry loads an entry with its pool.
func GetEntry(db *gorm.DB, id string) (*models.Entry, error) {
	var entry models.Entry
	err := db.Preload("Pool").First(&entry, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListByPhone is the self-service "meus jogos" lookup: every entry whose
// normalized phone matches, across all pools, newest first.
func ListByPhone(db *gorm.DB, phone string) ([]models.Entry, error) {
	clean := common.NormalizePhone(phone)
	if len(clean) != 11 {
		return nil, ErrInvalidPhone
	}

	var entries []models.Entry
	err := db.Preload("Pool").
		Where("phone = ?", clean).
		Order("created_at desc").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// ListPaidByPool returns a pool's confirmed entries, newest first. Pending
// and canceled bets stay off the public participant list.
func ListPaidByPool(db *gorm.DB, poolID string) ([]models.Entry, error) {
	if _, err := poolService.GetPool(db, poolID); err != nil {
		return nil, err
	}

	var entries []models.Entry
	err := db.Where("pool_id = ? AND status = ?", poolID, models.EntryPaid).
		Order("created_at desc").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Stats summarizes a pool's ledger for the admin dashboard.
type Stats struct {
	Total          int64
	Paid           int64
	Pending        int64
	Canceled       int64
	CollectedCents int64
}

// PoolStats aggregates entry counts and the collected value (paid entries
// only) for one pool.
func PoolStats(db *gorm.DB, poolID string) (*Stats, error) {
	var entries []models.Entry
	if err := db.Select("status", "price_cents").Where("pool_id = ?", poolID).Find(&entries).Error; err != nil {
		return nil, err
	}

	stats := Stats{}
	for _, e := range entries {
		stats.Total++
		switch e.Status {
		case models.EntryPaid:
			stats.Paid++
			stats.CollectedCents += e.PriceCents
		case models.EntryPending:
			stats.Pending++
		case models.EntryCanceled:
			stats.Canceled++
		}
	}
	return &stats, nil
}

// CountStalePending counts pending entries created before the advisory PIX
// window closed. Reporting only; nothing cancels them server-side.
func CountStalePending(db *gorm.DB, window time.Duration) (int64, error) {
	var count int64
	err := db.Model(&models.Entry{}).
		Where("status = ? AND created_at < ?", models.EntryPending, time.Now().Add(-window)).
		Count(&count).Error
	return count, err
}
