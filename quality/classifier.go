package quality

// Reason причина, по которой идентификатор признан некорректным
type Reason string

const (
	ReasonNone              Reason = ""
	ReasonLength            Reason = "length"
	ReasonNonDigit          Reason = "non_digit"
	ReasonDiscriminant      Reason = "discriminant"
	ReasonRegistrationDate  Reason = "registration_date"
	ReasonRegistrationRange Reason = "registration_range"
	ReasonEntityType        Reason = "entity_type"
	ReasonAuthority         Reason = "authority"
	ReasonChecksum          Reason = "checksum"
)

// Category категория контрагента: физическое или юридическое лицо
type Category string

const (
	CategoryIndividual  Category = "ФЛ"
	CategoryLegalEntity Category = "ЮЛ"
	CategoryInvalid     Category = "Ошибка"
)

// IdentifierKind тип проверки, которой был подвергнут идентификатор
type IdentifierKind string

const (
	KindUnknown IdentifierKind = ""
	KindIIN     IdentifierKind = "ИИН"
	KindBIN     IdentifierKind = "БИН"
)

// discriminantIndex позиция разряда, определяющего тип идентификатора
const discriminantIndex = 4

// Classification подробный результат классификации идентификатора
type Classification struct {
	Valid    bool           `json:"valid"`
	Category Category       `json:"category"`
	Kind     IdentifierKind `json:"kind"`
	Reason   Reason         `json:"reason,omitempty"`
}

// Classifier определяет тип 12-значного идентификатора и направляет его в нужный валидатор
type Classifier struct {
	bin *BinValidator
}

// NewClassifier создает классификатор. nil-валидатор заменяется строгим валидатором БИН.
func NewClassifier(bin *BinValidator) *Classifier {
	if bin == nil {
		bin = NewBinValidator(DateCheckStrict, nil)
	}
	return &Classifier{bin: bin}
}

// Classify возвращает признак корректности и категорию (ФЛ/ЮЛ) идентификатора
func (c *Classifier) Classify(raw string) (bool, Category) {
	result := c.Inspect(raw)
	return result.Valid, result.Category
}

// Inspect классифицирует идентификатор и сообщает причину отказа.
// Разряды 0-3 проверяются как ИИН (только контрольный разряд), 4-6 как БИН.
// Категория выводится из того же разряда и не зависит от исхода проверки.
func (c *Classifier) Inspect(raw string) Classification {
	if reason := checkShape(raw); reason != ReasonNone {
		return Classification{Category: CategoryInvalid, Reason: reason}
	}

	discriminant := raw[discriminantIndex]
	result := Classification{Category: CategoryOf(discriminant)}

	switch discriminant {
	case '0', '1', '2', '3':
		result.Kind = KindIIN
		if !ValidateChecksum(raw) {
			result.Reason = ReasonChecksum
		}
	case '4', '5', '6':
		result.Kind = KindBIN
		result.Reason = c.bin.Check(raw)
	default:
		result.Reason = ReasonDiscriminant
	}

	result.Valid = result.Reason == ReasonNone
	return result
}

// CategoryOf выводит категорию из разряда-дискриминанта.
// Разряд 6 проверяется как БИН, но относится к физическим лицам.
func CategoryOf(discriminant byte) Category {
	switch discriminant {
	case '0', '1', '2', '3', '6':
		return CategoryIndividual
	case '4', '5':
		return CategoryLegalEntity
	default:
		return CategoryInvalid
	}
}
