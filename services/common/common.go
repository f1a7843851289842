package common

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/google/logger"
	"gorm.io/gorm"

	"megaDeOuro/models"
)

// LogError records an operational error in the error_logs table and in the
// process log. Scope names the subsystem that failed.
func LogError(db *gorm.DB, scope string, err error) {
	logger.Errorf("[%s] %v", scope, err)

	if db == nil {
		return
	}
	errLog := models.ErrorLog{
		Scope:   scope,
		Message: fmt.Sprintf("%v", err),
	}
	db.Create(&errLog)
}

// NormalizePhone strips everything but digits, e.g. "(88) 99999-9999"
// becomes "88999999999".
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidPhone reports whether the phone normalizes to the 11-digit Brazilian
// mobile shape (DDD + 9 digits).
func ValidPhone(phone string) bool {
	return len(NormalizePhone(phone)) == 11
}

// FormatPhone renders a normalized phone as "(88) 99999-9999". Anything that
// is not 11 digits is returned untouched.
func FormatPhone(phone string) string {
	clean := NormalizePhone(phone)
	if len(clean) != 11 {
		return phone
	}
	return fmt.Sprintf("(%s) %s-%s", clean[0:2], clean[2:7], clean[7:])
}

// FormatMoney renders integer cents as Brazilian currency, e.g. 123456 ->
// "R$ 1.234,56".
func FormatMoney(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	reais := cents / 100
	frac := cents % 100

	digits := fmt.Sprintf("%d", reais)
	var parts []string
	for len(digits) > 3 {
		parts = append([]string{digits[len(digits)-3:]}, parts...)
		digits = digits[:len(digits)-3]
	}
	parts = append([]string{digits}, parts...)

	return fmt.Sprintf("%sR$ %s,%02d", sign, strings.Join(parts, "."), frac)
}

// CentsToDecimal renders cents with a dot and two decimals ("50.00").
func CentsToDecimal(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// FormatNumber zero-pads a lottery number ("7" -> "07").
func FormatNumber(n int) string {
	return fmt.Sprintf("%02d", n)
}

func Contains[T comparable](s []T, e T) bool {
	for _, v := range s {
		if v == e {
			return true
		}
	}
	return false
}

// GetJSON fetches a URL and decodes the JSON body into out. Non-200
// responses are errors.
func GetJSON(url string, out interface{}) error {
	client := &http.Client{Timeout: 15 * time.Second}
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
