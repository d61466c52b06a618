package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrictFoldsAccentsAndPunctuation(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"accents", "Ñoquis con jamón", "noquis con jamon"},
		{"punctuation", "pizza, rápida! (hoy)", "pizza rapida hoy"},
		{"whitespace collapse", "  sushi \t en\nBelgrano ", "sushi en belgrano"},
		{"digits kept", "hasta 5000 pesos", "hasta 5000 pesos"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Strict(tt.input))
		})
	}
}

func TestSoftKeepsDecimalSeparators(t *testing.T) {
	assert.Equal(t, "rating mayor a 4,5", Soft("Rating mayor a 4,5"))
	assert.Equal(t, "puntaje 4.3 o mas", Soft("puntaje 4.3 o más!"))
}

func TestBasicOnlyLowercasesAndFolds(t *testing.T) {
	assert.Equal(t, "don satoshi's wok!", Basic("Don Satoshi's Wok!"))
	assert.Equal(t, "arabe", Basic("Árabe"))
}

func TestNormalizationIsIdempotent(t *testing.T) {
	inputs := []string{
		"Cita romántica en Palermo, rating 4,5 o más",
		"¡Ñoquis baratísimos!",
		"sin sal. poca grasa",
	}
	for _, in := range inputs {
		assert.Equal(t, Strict(in), Strict(Strict(in)))
		assert.Equal(t, Soft(in), Soft(Soft(in)))
		assert.Equal(t, Basic(in), Basic(Basic(in)))
	}
}

func TestWords(t *testing.T) {
	got := Words("Ensalada césar, sin croutons")
	assert.Equal(t, []string{"ensalada", "cesar", "sin", "croutons"}, got)

	set := WordSet("pasta pasta pesto")
	assert.Len(t, set, 2)
	assert.Contains(t, set, "pesto")
}
