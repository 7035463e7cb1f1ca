package normalization

import (
	"github.com/shopspring/decimal"
)

// Названия строк таблицы статистики
const (
	StatTotal      = "Тотал"
	StatUnique     = "Без дупликатов"
	StatDuplicates = "Дупликаты"
	StatInvalid    = "Некорректные БИН"
)

// StatisticsRow строка таблицы статистики: название, количество и процент от Тотал
type StatisticsRow struct {
	Name    string `json:"name"`
	Value   int    `json:"value"`
	Percent string `json:"percent"`
}

// Statistics возвращает четыре строки статистики в порядке вывода
func (c Counts) Statistics() []StatisticsRow {
	return []StatisticsRow{
		{Name: StatTotal, Value: c.Total, Percent: Percentage(c.Total, c.Total)},
		{Name: StatUnique, Value: c.Unique, Percent: Percentage(c.Unique, c.Total)},
		{Name: StatDuplicates, Value: c.Duplicates, Percent: Percentage(c.Duplicates, c.Total)},
		{Name: StatInvalid, Value: c.Invalid, Percent: Percentage(c.Invalid, c.Total)},
	}
}

// Percentage возвращает count/total*100 с двумя знаками после запятой.
// При total == 0 возвращается "0.00".
func Percentage(count, total int) string {
	if total == 0 {
		return decimal.Zero.StringFixed(2)
	}
	return decimal.NewFromInt(int64(count)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(total))).
		RoundBank(2).
		StringFixed(2)
}
