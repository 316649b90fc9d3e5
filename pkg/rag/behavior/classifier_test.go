package behavior

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyDefaultsToGeneral(t *testing.T) {
	c := NewClassifier()
	c.RegisterCategories(All)

	// No patterns registered: every message is General.
	for _, msg := range []string{"Oi", "quero pagar com cartão", "", "???"} {
		require.Equal(t, General, c.Classify(msg))
	}
}

func TestClassifyFirstMatchWins(t *testing.T) {
	c := NewClassifier()
	c.RegisterCategories([]Category{Greeting, Payment, Delivery})

	require.NoError(t, c.AddPattern(Greeting, `\boi\b`))
	require.NoError(t, c.AddPattern(Payment, `pagamento|cart[aã]o`))
	require.NoError(t, c.AddPattern(Delivery, `entrega`))

	require.Equal(t, Greeting, c.Classify("Oi, tudo bem?"))
	require.Equal(t, Payment, c.Classify("Qual a forma de PAGAMENTO?"))
	require.Equal(t, Delivery, c.Classify("quando chega a entrega"))

	// Both Greeting and Payment match; Greeting was registered first.
	require.Equal(t, Greeting, c.Classify("oi, aceita cartão?"))
}

func TestClassifyRegistrationOrderPriority(t *testing.T) {
	c := NewClassifier()
	c.RegisterCategories([]Category{Payment, Greeting})
	require.NoError(t, c.AddPattern(Payment, `cart[aã]o`))
	require.NoError(t, c.AddPattern(Greeting, `oi`))

	// Overlapping message: Payment registered before Greeting.
	require.Equal(t, Payment, c.Classify("oi, aceita cartão?"))
}

func TestClassifyCaseInsensitive(t *testing.T) {
	c := NewClassifier()
	c.RegisterCategories([]Category{Technical})
	require.NoError(t, c.AddPattern(Technical, `especifica`))

	require.Equal(t, Technical, c.Classify("Qual a ESPECIFICAÇÃO do produto?"))
}

func TestAddPatternInvalidRegex(t *testing.T) {
	c := NewClassifier()
	c.RegisterCategories([]Category{Greeting})
	require.Error(t, c.AddPattern(Greeting, `(`))
	require.Equal(t, General, c.Classify("anything"))
}

func TestCategoryWithoutPatternsNeverMatches(t *testing.T) {
	c := NewClassifier()
	c.RegisterCategories([]Category{Greeting, Payment})
	require.NoError(t, c.AddPattern(Payment, `boleto`))

	require.Equal(t, Payment, c.Classify("aceita boleto?"))
	require.Equal(t, General, c.Classify("bom dia"))
}

func TestParse(t *testing.T) {
	cat, err := Parse("PAYMENT")
	require.NoError(t, err)
	require.Equal(t, Payment, cat)

	_, err = Parse("SHOUTING")
	require.Error(t, err)

	// Lowercase tags are not accepted; storage must hold canonical tags.
	_, err = Parse("payment")
	require.Error(t, err)
}

func TestAllContainsEveryCategoryOnce(t *testing.T) {
	require.Len(t, All, 18)
	seen := make(map[Category]bool)
	for _, c := range All {
		require.False(t, seen[c], "duplicate category %s", c)
		seen[c] = true
		require.NotEmpty(t, Descriptions[c])
	}
	require.Equal(t, General, All[len(All)-1])
}
