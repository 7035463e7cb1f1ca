package quality

import "unicode/utf8"

// IdentifierLength длина ИИН/БИН в цифрах
const IdentifierLength = 12

var (
	// Коэффициенты первого прохода расчета контрольного разряда
	primaryWeights = [IdentifierLength - 1]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}
	// Коэффициенты повторного прохода, если первый дал остаток 10
	fallbackWeights = [IdentifierLength - 1]int{3, 4, 5, 6, 7, 8, 9, 10, 11, 1, 2}
)

// ValidateChecksum проверяет контрольный разряд ИИН/БИН (12 цифр).
// Строка неверной длины или с нецифровыми символами не проходит проверку.
func ValidateChecksum(id string) bool {
	if checkShape(id) != ReasonNone {
		return false
	}

	control := weightedControl(id, primaryWeights)
	if control == 10 {
		// Остаток 10 второго прохода не совпадет ни с одной цифрой
		control = weightedControl(id, fallbackWeights)
	}

	return control == int(id[IdentifierLength-1]-'0')
}

// weightedControl считает взвешенную сумму первых 11 цифр по модулю 11
func weightedControl(id string, weights [IdentifierLength - 1]int) int {
	sum := 0
	for i, w := range weights {
		sum += int(id[i]-'0') * w
	}
	return sum % 11
}

// checkShape проверяет длину и состав идентификатора до любой арифметики
func checkShape(id string) Reason {
	if utf8.RuneCountInString(id) != IdentifierLength {
		return ReasonLength
	}
	for i := 0; i < len(id); i++ {
		if id[i] < '0' || id[i] > '9' {
			return ReasonNonDigit
		}
	}
	return ReasonNone
}
