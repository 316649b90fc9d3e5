package prompt

import (
	"fmt"
	"strings"
	"time"

	"talk-rag-be/pkg/rag/behavior"
	"talk-rag-be/pkg/rag/conversation"
	"talk-rag-be/pkg/rag/ragerr"
)

// DefaultBehaviorPrompt is the hard-coded professional-tone fallback used
// when even the GENERAL template cannot be resolved.
const DefaultBehaviorPrompt = "Mantenha um atendimento profissional e acolhedor."

// Classifier is the classification contract the composer depends on.
// *behavior.Classifier satisfies it.
type Classifier interface {
	Classify(message string) behavior.Category
}

// Composer assembles the final instruction sent to the completion service:
// persona prompt, behavioral prompt, response rules, retrieved context and
// the user query, in that fixed order.
type Composer struct {
	mainPrompt string
	templates  map[behavior.Category]string
	classifier Classifier
	context    *conversation.Context
	now        func() time.Time
}

// NewComposer validates the prompt material up front. A missing persona
// prompt or a template map without GENERAL is a ConfigurationError and the
// session cannot be created.
func NewComposer(mainPrompt string, templates map[behavior.Category]string, classifier Classifier, ctx *conversation.Context) (*Composer, error) {
	if strings.TrimSpace(mainPrompt) == "" {
		return nil, &ragerr.ConfigurationError{Reason: "main prompt is empty"}
	}
	if len(templates) == 0 {
		return nil, &ragerr.ConfigurationError{Reason: "behavioral templates are empty"}
	}
	if _, ok := templates[behavior.General]; !ok {
		return nil, &ragerr.ConfigurationError{Reason: "GENERAL behavioral template is missing"}
	}
	if classifier == nil {
		cl := behavior.NewClassifier()
		categories := make([]behavior.Category, 0, len(templates))
		for _, c := range behavior.All {
			if _, ok := templates[c]; ok {
				categories = append(categories, c)
			}
		}
		cl.RegisterCategories(categories)
		classifier = cl
	}
	if ctx == nil {
		ctx = conversation.NewContext(conversation.DefaultMaxHistory)
	}
	return &Composer{
		mainPrompt: mainPrompt,
		templates:  templates,
		classifier: classifier,
		context:    ctx,
		now:        time.Now,
	}, nil
}

// Context exposes the conversation log owned by this composer.
func (c *Composer) Context() *conversation.Context {
	return c.context
}

// Compose classifies the query, picks the behavioral template (falling back
// to GENERAL and then to the hard-coded default) and renders the final
// prompt. It never fails; any panic during classification or lookup is
// recovered into the GENERAL fallback path. The interaction is recorded on
// every path, fallback included.
func (c *Composer) Compose(query, retrievedContext string) (finalPrompt string, cat behavior.Category) {
	defer func() {
		if r := recover(); r != nil {
			cat = behavior.General
			c.context.Add(conversation.Interaction{
				Message:   query,
				Behavior:  cat,
				Timestamp: c.now(),
			})
			finalPrompt = c.render(DefaultBehaviorPrompt, retrievedContext, query)
		}
	}()

	cat = c.classifier.Classify(query)

	c.context.Add(conversation.Interaction{
		Message:   query,
		Behavior:  cat,
		Timestamp: c.now(),
	})

	behavioralPrompt, ok := c.templates[cat]
	if !ok {
		behavioralPrompt, ok = c.templates[behavior.General]
		if !ok {
			behavioralPrompt = DefaultBehaviorPrompt
		}
	}

	return c.render(behavioralPrompt, retrievedContext, query), cat
}

func (c *Composer) render(behavioralPrompt, retrievedContext, query string) string {
	return fmt.Sprintf(`Sistema: Você deve seguir estritamente as instruções abaixo para responder.

Prompt Principal (Sua Personalidade):
%s

Comportamento Específico para esta Interação:
%s

Instruções de Resposta:
1. Use o contexto abaixo para responder à pergunta
2. Se a informação não estiver no contexto, diga que não tem informação suficiente para responder
3. Mantenha a personalidade definida no Prompt Principal
4. Siga o comportamento específico definido acima

Contexto:
%s

Pergunta do Cliente: %s`, c.mainPrompt, behavioralPrompt, retrievedContext, query)
}
