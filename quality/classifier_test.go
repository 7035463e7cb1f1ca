package quality

import (
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
)

func newTestClassifier() *Classifier {
	return NewClassifier(NewBinValidator(DateCheckStrict, fixedNow))
}

func TestClassifierInspect(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Classification
	}{
		{
			name: "valid IIN",
			raw:  "940903350398",
			want: Classification{Valid: true, Category: CategoryIndividual, Kind: KindIIN},
		},
		{
			name: "IIN route skips date checks",
			raw:  "850102300106",
			want: Classification{Valid: true, Category: CategoryIndividual, Kind: KindIIN},
		},
		{
			name: "IIN with bad checksum keeps category",
			raw:  "940903350397",
			want: Classification{Category: CategoryIndividual, Kind: KindIIN, Reason: ReasonChecksum},
		},
		{
			name: "valid BIN legal entity",
			raw:  "040740000120",
			want: Classification{Valid: true, Category: CategoryLegalEntity, Kind: KindBIN},
		},
		{
			name: "valid BIN type 5",
			raw:  "110953000005",
			want: Classification{Valid: true, Category: CategoryLegalEntity, Kind: KindBIN},
		},
		{
			name: "digit 6 routes to BIN but is individual",
			raw:  "031260000003",
			want: Classification{Valid: true, Category: CategoryIndividual, Kind: KindBIN},
		},
		{
			name: "BIN with bad registration month",
			raw:  "130540000122",
			want: Classification{Category: CategoryLegalEntity, Kind: KindBIN, Reason: ReasonRegistrationDate},
		},
		{
			name: "discriminant 7",
			raw:  "940970000000",
			want: Classification{Category: CategoryInvalid, Reason: ReasonDiscriminant},
		},
		{
			name: "discriminant 9",
			raw:  "940990000006",
			want: Classification{Category: CategoryInvalid, Reason: ReasonDiscriminant},
		},
		{
			name: "too short",
			raw:  "H",
			want: Classification{Category: CategoryInvalid, Reason: ReasonLength},
		},
		{
			name: "non-digit",
			raw:  "94090335039O",
			want: Classification{Category: CategoryInvalid, Reason: ReasonNonDigit},
		},
	}

	c := newTestClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Inspect(tt.raw))

			valid, category := c.Classify(tt.raw)
			assert.Equal(t, tt.want.Valid, valid)
			assert.Equal(t, tt.want.Category, category)
		})
	}
}

func TestCategoryOfExhaustive(t *testing.T) {
	want := map[byte]Category{
		'0': CategoryIndividual,
		'1': CategoryIndividual,
		'2': CategoryIndividual,
		'3': CategoryIndividual,
		'4': CategoryLegalEntity,
		'5': CategoryLegalEntity,
		'6': CategoryIndividual,
		'7': CategoryInvalid,
		'8': CategoryInvalid,
		'9': CategoryInvalid,
	}
	for d := byte('0'); d <= '9'; d++ {
		assert.Equal(t, want[d], CategoryOf(d), "digit %c", d)
	}
	assert.Equal(t, CategoryInvalid, CategoryOf('x'))
}

func TestClassifierRejectsWrongLength(t *testing.T) {
	faker := gofakeit.New(3)
	c := newTestClassifier()
	for n := 0; n <= 24; n++ {
		if n == IdentifierLength {
			continue
		}
		raw := faker.Numerify(strings.Repeat("#", n))
		valid, category := c.Classify(raw)
		assert.False(t, valid, raw)
		assert.Equal(t, CategoryInvalid, category, raw)
	}
}

func TestClassifierRejectsNonDigits(t *testing.T) {
	faker := gofakeit.New(5)
	c := newTestClassifier()
	for i := 0; i < 200; i++ {
		digits := []byte(faker.Numerify(strings.Repeat("#", IdentifierLength)))
		digits[faker.IntRange(0, IdentifierLength-1)] = faker.Letter()[0]
		valid, category := c.Classify(string(digits))
		assert.False(t, valid, string(digits))
		assert.Equal(t, CategoryInvalid, category)
	}
}
