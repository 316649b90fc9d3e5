package prompt

import (
	"testing"

	"talk-rag-be/pkg/rag/behavior"
	"talk-rag-be/pkg/rag/conversation"
	"talk-rag-be/pkg/rag/ragerr"

	"github.com/stretchr/testify/require"
)

const persona = "Você é um assistente de vendas."

func templatesWith(extra map[behavior.Category]string) map[behavior.Category]string {
	m := map[behavior.Category]string{
		behavior.General: "Mantenha um atendimento profissional e acolhedor, focando em entender e atender às necessidades do cliente.",
	}
	for k, v := range extra {
		m[k] = v
	}
	return m
}

type panicClassifier struct{}

func (panicClassifier) Classify(string) behavior.Category {
	panic("classifier blew up")
}

func TestNewComposerValidation(t *testing.T) {
	var cfgErr *ragerr.ConfigurationError

	_, err := NewComposer("", templatesWith(nil), nil, nil)
	require.ErrorAs(t, err, &cfgErr)

	_, err = NewComposer(persona, nil, nil, nil)
	require.ErrorAs(t, err, &cfgErr)

	_, err = NewComposer(persona, map[behavior.Category]string{behavior.Payment: "x"}, nil, nil)
	require.ErrorAs(t, err, &cfgErr)

	_, err = NewComposer(persona, templatesWith(nil), nil, nil)
	require.NoError(t, err)
}

func TestComposeContainsPersonaAndGeneralTemplate(t *testing.T) {
	c, err := NewComposer(persona, templatesWith(nil), nil, nil)
	require.NoError(t, err)

	// No patterns registered: "Oi" with an empty context still composes.
	final, cat := c.Compose("Oi", "")
	require.Equal(t, behavior.General, cat)
	require.Contains(t, final, persona)
	require.Contains(t, final, "atendimento profissional e acolhedor")
	require.Contains(t, final, "Pergunta do Cliente: Oi")
}

func TestComposeUsesBehavioralTemplate(t *testing.T) {
	templates := templatesWith(map[behavior.Category]string{
		behavior.Payment: "Explique as formas de pagamento com clareza.",
	})
	classifier := behavior.NewClassifier()
	classifier.RegisterCategories([]behavior.Category{behavior.Payment, behavior.General})
	require.NoError(t, classifier.AddPattern(behavior.Payment, `pagamento`))

	c, err := NewComposer(persona, templates, classifier, nil)
	require.NoError(t, err)

	final, cat := c.Compose("como funciona o pagamento?", "ctx")
	require.Equal(t, behavior.Payment, cat)
	require.Contains(t, final, "formas de pagamento com clareza")
}

func TestComposeFallsBackToGeneralForUnmappedCategory(t *testing.T) {
	// Classifier resolves Delivery but there is no Delivery template.
	classifier := behavior.NewClassifier()
	classifier.RegisterCategories([]behavior.Category{behavior.Delivery})
	require.NoError(t, classifier.AddPattern(behavior.Delivery, `entrega`))

	c, err := NewComposer(persona, templatesWith(nil), classifier, nil)
	require.NoError(t, err)

	final, cat := c.Compose("cadê minha entrega", "")
	require.Equal(t, behavior.Delivery, cat)
	require.Contains(t, final, "atendimento profissional e acolhedor")
}

func TestComposeRecoversFromClassifierPanic(t *testing.T) {
	ctx := conversation.NewContext(5)
	c, err := NewComposer(persona, templatesWith(nil), panicClassifier{}, ctx)
	require.NoError(t, err)

	final, cat := c.Compose("qualquer coisa", "algum contexto")
	require.Equal(t, behavior.General, cat)
	require.NotEmpty(t, final)
	require.Contains(t, final, persona)
	require.Contains(t, final, "algum contexto")

	// The interaction is recorded even on the fallback path.
	require.Equal(t, 1, ctx.Len())
	require.Equal(t, []behavior.Category{behavior.General}, ctx.RecentBehaviors(1))
}

func TestComposeAppendsInteraction(t *testing.T) {
	ctx := conversation.NewContext(5)
	c, err := NewComposer(persona, templatesWith(nil), nil, ctx)
	require.NoError(t, err)

	c.Compose("primeira", "")
	c.Compose("segunda", "")
	require.Equal(t, 2, ctx.Len())
}

func TestComposeIncludesRetrievedContext(t *testing.T) {
	c, err := NewComposer(persona, templatesWith(nil), nil, nil)
	require.NoError(t, err)

	final, _ := c.Compose("qual a garantia?", "A garantia é de 12 meses.")
	require.Contains(t, final, "A garantia é de 12 meses.")
}

func TestNewComposerSeedsDefaultClassifier(t *testing.T) {
	templates := templatesWith(map[behavior.Category]string{
		behavior.Payment: "Explique as formas de pagamento.",
	})
	c, err := NewComposer(persona, templates, nil, nil)
	require.NoError(t, err)

	// The seeded classifier starts with zero patterns, so any message
	// classifies as GENERAL until triggers are registered.
	_, cat := c.Compose("quero pagar com cartão", "")
	require.Equal(t, behavior.General, cat)
}
