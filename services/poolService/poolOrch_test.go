package poolService

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"megaDeOuro/models"
	"megaDeOuro/services/prizeService"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	if err := db.AutoMigrate(&models.Pool{}, &models.Entry{}, &models.DrawResult{}, &models.ErrorLog{}, &models.Migration{}); err != nil {
		t.Fatalf("migrating test db: %v", err)
	}
	return db
}

func validInput() CreatePoolInput {
	return CreatePoolInput{
		Name:            "Mega da Virada 2026",
		Contest:         "2700",
		DrawDate:        time.Now().Add(72 * time.Hour),
		EntryPriceCents: 5000,
		OrganizerFeePct: 10,
	}
}

func TestCreatePool_SingleActiveInvariant(t *testing.T) {
	db := testDB(t)

	first, err := CreatePool(db, validInput())
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	if first.Status != models.PoolActive {
		t.Errorf("expected active, got %s", first.Status)
	}

	if _, err := CreatePool(db, validInput()); !errors.Is(err, ErrActivePoolExists) {
		t.Errorf("expected ErrActivePoolExists, got %v", err)
	}

	if _, err := CancelPool(db, first.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	// With no active pool left, creation opens again.
	second, err := CreatePool(db, validInput())
	if err != nil {
		t.Fatalf("create after cancel: %v", err)
	}

	active, err := ActivePool(db)
	if err != nil {
		t.Fatalf("active lookup: %v", err)
	}
	if active.ID != second.ID {
		t.Errorf("expected %s active, got %s", second.ID, active.ID)
	}
}

func TestCreatePool_Validations(t *testing.T) {
	db := testDB(t)

	tests := []struct {
		name    string
		mutate  func(*CreatePoolInput)
		wantErr error
	}{
		{name: "short name", mutate: func(in *CreatePoolInput) { in.Name = " ab " }, wantErr: ErrInvalidPoolName},
		{name: "price below one real", mutate: func(in *CreatePoolInput) { in.EntryPriceCents = 99 }, wantErr: ErrInvalidPrice},
		{name: "fee above cap", mutate: func(in *CreatePoolInput) { in.OrganizerFeePct = 31 }, wantErr: ErrInvalidFee},
		{name: "negative fee", mutate: func(in *CreatePoolInput) { in.OrganizerFeePct = -1 }, wantErr: ErrInvalidFee},
		{name: "past draw date", mutate: func(in *CreatePoolInput) { in.DrawDate = time.Now().Add(-time.Hour) }, wantErr: ErrPastDrawDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(&input)
			if _, err := CreatePool(db, input); !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	if _, err := ActivePool(db); !errors.Is(err, ErrNoActivePool) {
		t.Errorf("expected no active pool after failed creates, got %v", err)
	}
}

func TestCreatePool_DefaultsPrice(t *testing.T) {
	db := testDB(t)

	input := validInput()
	input.EntryPriceCents = 0
	pool, err := CreatePool(db, input)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if pool.EntryPriceCents != models.DefaultEntryPriceCents {
		t.Errorf("expected default price, got %d", pool.EntryPriceCents)
	}
}

func TestNumbersVisible(t *testing.T) {
	drawDate := time.Date(2026, 6, 10, 20, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		status models.PoolStatus
		now    time.Time
		want   bool
	}{
		{name: "active before draw", status: models.PoolActive, now: drawDate.Add(-time.Hour), want: false},
		{name: "active at draw time", status: models.PoolActive, now: drawDate, want: true},
		{name: "active after draw", status: models.PoolActive, now: drawDate.Add(time.Hour), want: true},
		{name: "closed before draw", status: models.PoolClosed, now: drawDate.Add(-time.Hour), want: true},
		{name: "canceled before draw", status: models.PoolCanceled, now: drawDate.Add(-time.Hour), want: false},
		{name: "canceled after draw", status: models.PoolCanceled, now: drawDate.Add(time.Hour), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := &models.Pool{Status: tt.status, DrawDate: drawDate}
			if got := NumbersVisible(pool, tt.now); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func seedEntry(t *testing.T, db *gorm.DB, poolID, id string, numbers []int, status models.EntryStatus, price int64) {
	t.Helper()
	entry := models.Entry{
		ID:         id,
		PoolID:     poolID,
		Name:       "Participante " + id,
		Phone:      "88999999999",
		Numbers:    models.NormalizeNumbers(numbers),
		PriceCents: price,
		Status:     status,
	}
	if err := db.Create(&entry).Error; err != nil {
		t.Fatalf("seeding entry %s: %v", id, err)
	}
}

func TestClosePool_Settlement(t *testing.T) {
	db := testDB(t)
	pool, err := CreatePool(db, validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	result := []int{4, 12, 23, 33, 48, 60}

	// Full match, five matches, and two low-match entries sharing the
	// consolation bracket. The pending entry must not participate.
	seedEntry(t, db, pool.ID, "full", []int{4, 12, 23, 33, 48, 60, 1, 2, 3, 5}, models.EntryPaid, 5000)
	seedEntry(t, db, pool.ID, "five", []int{4, 12, 23, 33, 48, 59, 1, 2, 3, 5}, models.EntryPaid, 5000)
	seedEntry(t, db, pool.ID, "low-a", []int{4, 13, 24, 34, 49, 59, 1, 2, 3, 5}, models.EntryPaid, 5000)
	seedEntry(t, db, pool.ID, "low-b", []int{4, 14, 25, 35, 50, 58, 1, 2, 3, 5}, models.EntryPaid, 5000)
	seedEntry(t, db, pool.ID, "unpaid", []int{4, 12, 23, 33, 48, 60, 1, 2, 3, 5}, models.EntryPending, 5000)

	settlement, err := ClosePool(db, pool.ID, result, prizeService.ThreeTier)
	if err != nil {
		t.Fatalf("closing: %v", err)
	}

	if settlement.PaidEntries != 4 {
		t.Errorf("expected 4 paid entries, got %d", settlement.PaidEntries)
	}
	if settlement.TotalCents != 20000 {
		t.Errorf("expected 20000 collected, got %d", settlement.TotalCents)
	}
	if settlement.OrganizerCents != 2000 {
		t.Errorf("expected 2000 organizer fee, got %d", settlement.OrganizerCents)
	}
	if settlement.RemainingCents != 18000 {
		t.Errorf("expected 18000 remaining, got %d", settlement.RemainingCents)
	}

	top := settlement.Tiers[0]
	if len(top.Winners) != 1 || top.Winners[0].EntryID != "full" {
		t.Fatalf("unexpected top-tier winners: %+v", top.Winners)
	}
	if top.Winners[0].Matches != 6 {
		t.Errorf("expected 6 matches, got %d", top.Winners[0].Matches)
	}
	if top.Winners[0].ShareCents != 12600 { // 70% of 18000
		t.Errorf("expected 12600 top share, got %d", top.Winners[0].ShareCents)
	}

	second := settlement.Tiers[1]
	if len(second.Winners) != 1 || second.Winners[0].EntryID != "five" {
		t.Fatalf("unexpected second-tier winners: %+v", second.Winners)
	}
	if second.Winners[0].ShareCents != 1800 { // 10% of 18000
		t.Errorf("expected 1800 second share, got %d", second.Winners[0].ShareCents)
	}

	consolation := settlement.Tiers[2]
	if len(consolation.Winners) != 2 {
		t.Fatalf("expected 2 consolation winners, got %d", len(consolation.Winners))
	}
	var consolationTotal int64
	for _, w := range consolation.Winners {
		consolationTotal += w.ShareCents
	}
	if consolationTotal != 3600 { // 20% of 18000 divided between two
		t.Errorf("consolation shares sum to %d, expected 3600", consolationTotal)
	}

	// Pool is closed and the draw persisted.
	reloaded, err := GetPool(db, pool.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Status != models.PoolClosed {
		t.Errorf("expected closed, got %s", reloaded.Status)
	}
	var draw models.DrawResult
	if err := db.First(&draw, "contest = ?", pool.Contest).Error; err != nil {
		t.Fatalf("draw result not persisted: %v", err)
	}
	if draw.Numbers.String() != models.NormalizeNumbers(result).String() {
		t.Errorf("unexpected persisted numbers: %v", draw.Numbers)
	}

	// A closed pool cannot close again.
	if _, err := ClosePool(db, pool.ID, result, prizeService.ThreeTier); !errors.Is(err, ErrPoolNotActive) {
		t.Errorf("expected ErrPoolNotActive, got %v", err)
	}
}

func TestClosePool_InvalidResult(t *testing.T) {
	db := testDB(t)
	pool, err := CreatePool(db, validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	tests := []struct {
		name    string
		numbers []int
	}{
		{name: "too few", numbers: []int{1, 2, 3, 4, 5}},
		{name: "duplicates collapse", numbers: []int{1, 1, 2, 3, 4, 5}},
		{name: "out of range", numbers: []int{1, 2, 3, 4, 5, 61}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ClosePool(db, pool.ID, tt.numbers, prizeService.ThreeTier); !errors.Is(err, ErrInvalidResult) {
				t.Errorf("expected ErrInvalidResult, got %v", err)
			}
		})
	}

	reloaded, _ := GetPool(db, pool.ID)
	if reloaded.Status != models.PoolActive {
		t.Errorf("failed close mutated pool to %s", reloaded.Status)
	}
}

func TestUpdatePool(t *testing.T) {
	db := testDB(t)
	pool, err := CreatePool(db, validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	newName := "Bolão de São João"
	newPrice := int64(7500)
	updated, err := UpdatePool(db, pool.ID, UpdatePoolInput{Name: &newName, EntryPriceCents: &newPrice})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != newName || updated.EntryPriceCents != newPrice {
		t.Errorf("update not applied: %+v", updated)
	}

	badFee := int64(50)
	if _, err := UpdatePool(db, pool.ID, UpdatePoolInput{OrganizerFeePct: &badFee}); !errors.Is(err, ErrInvalidFee) {
		t.Errorf("expected ErrInvalidFee, got %v", err)
	}

	if _, err := UpdatePool(db, "missing", UpdatePoolInput{Name: &newName}); !errors.Is(err, ErrPoolNotFound) {
		t.Errorf("expected ErrPoolNotFound, got %v", err)
	}
}
