package quality

import (
	"fmt"
	"strings"
	"time"
)

// DateCheckMode режим проверки даты регистрации в БИН
type DateCheckMode string

const (
	// DateCheckStrict требует, чтобы дата регистрации лежала между январем 1991 и текущей датой
	DateCheckStrict DateCheckMode = "strict"
	// DateCheckLegacy не ограничивает дату регистрации (поведение исходного скрипта,
	// где сравнение было записано с перевернутыми операторами и никогда не срабатывало)
	DateCheckLegacy DateCheckMode = "legacy"
)

// registrationLayout формат первых четырех цифр БИН: месяц и год (MMYY)
const registrationLayout = "0106"

// independenceDate нижняя граница даты регистрации
var independenceDate = time.Date(1991, time.January, 1, 0, 0, 0, 0, time.UTC)

// ParseDateCheckMode разбирает режим проверки даты из конфигурации
func ParseDateCheckMode(value string) (DateCheckMode, error) {
	switch DateCheckMode(strings.ToLower(strings.TrimSpace(value))) {
	case DateCheckStrict, "":
		return DateCheckStrict, nil
	case DateCheckLegacy:
		return DateCheckLegacy, nil
	default:
		return "", fmt.Errorf("unknown BIN date check mode %q (valid: %s, %s)", value, DateCheckStrict, DateCheckLegacy)
	}
}

// BinValidator проверяет структурные сегменты БИН и его контрольный разряд
type BinValidator struct {
	dateCheck DateCheckMode
	now       func() time.Time
}

// NewBinValidator создает валидатор БИН. now используется как верхняя граница даты регистрации;
// nil означает time.Now.
func NewBinValidator(mode DateCheckMode, now func() time.Time) *BinValidator {
	if mode == "" {
		mode = DateCheckStrict
	}
	if now == nil {
		now = time.Now
	}
	return &BinValidator{
		dateCheck: mode,
		now:       now,
	}
}

// Mode возвращает режим проверки даты регистрации
func (v *BinValidator) Mode() DateCheckMode {
	return v.dateCheck
}

// Validate возвращает true, если БИН прошел все проверки
func (v *BinValidator) Validate(bin string) bool {
	return v.Check(bin) == ReasonNone
}

// Check выполняет проверки по порядку и возвращает причину первой неудачной.
// ReasonNone означает корректный БИН.
func (v *BinValidator) Check(bin string) Reason {
	if reason := checkShape(bin); reason != ReasonNone {
		return reason
	}

	registered, err := time.Parse(registrationLayout, bin[:4])
	if err != nil {
		return ReasonRegistrationDate
	}

	if v.dateCheck == DateCheckStrict {
		if registered.Before(independenceDate) || registered.After(v.now()) {
			return ReasonRegistrationRange
		}
	}

	if !strings.ContainsRune("456", rune(bin[4])) {
		return ReasonEntityType
	}

	if !strings.ContainsRune("0123", rune(bin[5])) {
		return ReasonAuthority
	}

	if !ValidateChecksum(bin) {
		return ReasonChecksum
	}

	return ReasonNone
}

// RegistrationDate возвращает месяц регистрации, закодированный в БИН
func RegistrationDate(bin string) (time.Time, bool) {
	if checkShape(bin) != ReasonNone {
		return time.Time{}, false
	}
	registered, err := time.Parse(registrationLayout, bin[:4])
	if err != nil {
		return time.Time{}, false
	}
	return registered, true
}
