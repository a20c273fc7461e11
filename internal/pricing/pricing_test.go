package pricing_test

import (
	"testing"

	"offer-form-backend/internal/domain"
	"offer-form-backend/internal/pricing"

	"github.com/stretchr/testify/assert"
)

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"12.5", 12.5},
		{"12,5", 12.5},
		{" 20 ", 20},
		{"0", 0},
		{"", 0},
		{"abc", 0},
		{"px12", 0},
		{"-3,5", -3.5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, pricing.ParseDecimal(tt.in), "input %q", tt.in)
	}
}

func TestParseDecimalSeparatorEquivalence(t *testing.T) {
	pairs := [][2]string{{"12,5", "12.5"}, {"0,01", "0.01"}, {"100,0", "100.0"}}
	for _, p := range pairs {
		assert.Equal(t, pricing.ParseDecimal(p[1]), pricing.ParseDecimal(p[0]))
	}
}

// The form page coerces with parseFloat, which reads the leading number
// and drops the rest. Inputs like "20px" must price identically here and
// in the browser.
func TestParseDecimalIgnoresTrailingGarbage(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"12px", 12},
		{"20 cm", 20},
		{"12,5abc", 12.5},
		{"1e2x", 100},
		{"-3,5m", -3.5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, pricing.ParseDecimal(tt.in), "input %q", tt.in)
	}
}

func TestParseAmountClampsToOne(t *testing.T) {
	for _, in := range []string{"0", "-2", "", "abc"} {
		assert.Equal(t, 1, pricing.ParseAmount(in), "input %q", in)
	}
	assert.Equal(t, 3, pricing.ParseAmount("3"))
	assert.Equal(t, 2, pricing.ParseAmount(" 2 "))
	// parseInt semantics: leading integer wins, fraction and units drop.
	assert.Equal(t, 2, pricing.ParseAmount("2.7"))
	assert.Equal(t, 2, pricing.ParseAmount("2x"))
}

func TestComputeItem(t *testing.T) {
	calc := pricing.Calculator{PricePerSqm: 55, SpecialShapeSurcharge: 0.2}

	t.Run("rectangle", func(t *testing.T) {
		area, price := calc.ComputeItem(domain.MatInput{
			Length: "20", Width: "30", Amount: "2",
		})
		assert.InDelta(t, 0.06, area, 1e-9)
		assert.InDelta(t, 6.60, price, 1e-9)
	})

	t.Run("special shape surcharge applies after amount", func(t *testing.T) {
		_, price := calc.ComputeItem(domain.MatInput{
			Length: "20", Width: "30", Amount: "2", IsSpecialShape: true,
		})
		assert.InDelta(t, 6.60*1.2, price, 1e-9)
	})

	t.Run("comma input equals dot input", func(t *testing.T) {
		_, p1 := calc.ComputeItem(domain.MatInput{Length: "12,5", Width: "30", Amount: "1"})
		_, p2 := calc.ComputeItem(domain.MatInput{Length: "12.5", Width: "30", Amount: "1"})
		assert.Equal(t, p2, p1)
	})

	t.Run("garbage amount prices as one", func(t *testing.T) {
		_, one := calc.ComputeItem(domain.MatInput{Length: "20", Width: "30", Amount: "1"})
		for _, amount := range []string{"0", "-1", "x"} {
			_, p := calc.ComputeItem(domain.MatInput{Length: "20", Width: "30", Amount: amount})
			assert.Equal(t, one, p)
		}
	})

	t.Run("price floored at zero", func(t *testing.T) {
		_, price := calc.ComputeItem(domain.MatInput{Length: "-20", Width: "30", Amount: "1"})
		assert.Equal(t, 0.0, price)
	})
}

func TestTotalAddRemoveRestores(t *testing.T) {
	calc := pricing.Calculator{PricePerSqm: 55, SpecialShapeSurcharge: 0.2}
	mats := []domain.MatInput{
		{Length: "20", Width: "30", Amount: "2"},
		{Length: "100", Width: "100", Amount: "1", IsSpecialShape: true},
	}
	before := calc.Total(mats)

	mats = append(mats, domain.MatInput{Length: "50", Width: "50", Amount: "3"})
	assert.Greater(t, calc.Total(mats), before)

	mats = mats[:len(mats)-1]
	assert.Equal(t, before, calc.Total(mats))
}

func validForm() *domain.OfferForm {
	return &domain.OfferForm{
		FirstName: "Max",
		LastName:  "Mustermann",
		Email:     "max@example.com",
		Address:   domain.Address{Street: "Musterstraße 1", Zip: "12345", City: "Musterstadt"},
		Mats: []domain.MatInput{
			{Length: "20", Width: "30", Shape: "Rechteck", Amount: "1"},
		},
	}
}

func TestValidateOrder(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(f *domain.OfferForm)
		wantMsg string
	}{
		{"first name", func(f *domain.OfferForm) { f.FirstName = "  " }, "Bitte Vornamen eingeben."},
		{"last name", func(f *domain.OfferForm) { f.LastName = "" }, "Bitte Nachnamen eingeben."},
		{"email", func(f *domain.OfferForm) { f.Email = "not-an-email" }, "Bitte gültige E-Mail eingeben."},
		{"address", func(f *domain.OfferForm) { f.Address.Zip = "" }, "Bitte vollständige Adresse eingeben."},
		{"item length", func(f *domain.OfferForm) { f.Mats[0].Length = "0" }, "Matte 1: Länge/Breite > 0 angeben."},
		{"item width", func(f *domain.OfferForm) { f.Mats[0].Width = "abc" }, "Matte 1: Länge/Breite > 0 angeben."},
		{"item amount", func(f *domain.OfferForm) { f.Mats[0].Amount = "0" }, "Matte 1: Menge muss mindestens 1 sein."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			tt.mutate(f)
			err := pricing.Validate(f)
			assert.EqualError(t, err, tt.wantMsg)
		})
	}
}

func TestValidateFirstFailureWins(t *testing.T) {
	f := validForm()
	f.FirstName = ""
	f.Email = "broken"
	f.Mats[0].Length = "0"
	assert.EqualError(t, pricing.Validate(f), "Bitte Vornamen eingeben.")
}

func TestValidateAcceptsPrefixNumerics(t *testing.T) {
	f := validForm()
	f.Mats[0].Length = "20px"
	f.Mats[0].Amount = "2x"
	assert.NoError(t, pricing.Validate(f))
}

func TestValidateItemIndexIsOneBased(t *testing.T) {
	f := validForm()
	f.Mats = append(f.Mats, domain.MatInput{Length: "10", Width: "10", Amount: "x"})
	assert.EqualError(t, pricing.Validate(f), "Matte 2: Menge muss mindestens 1 sein.")
}

func TestValidateOK(t *testing.T) {
	assert.NoError(t, pricing.Validate(validForm()))
}
