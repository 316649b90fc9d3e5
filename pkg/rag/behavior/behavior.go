package behavior

import "fmt"

// Category tags the conversational intent of a single message within a
// sales/support conversation.
type Category string

const (
	Greeting       Category = "GREETING"
	Exploration    Category = "EXPLORATION"
	Preferences    Category = "PREFERENCES"
	Technical      Category = "TECHNICAL"
	Comparison     Category = "COMPARISON"
	Interest       Category = "INTEREST"
	Payment        Category = "PAYMENT"
	Delivery       Category = "DELIVERY"
	Exchange       Category = "EXCHANGE"
	Purchase       Category = "PURCHASE"
	DataCollection Category = "DATA_COLLECTION"
	Confirmation   Category = "CONFIRMATION"
	Feedback       Category = "FEEDBACK"
	PostPurchase   Category = "POST_PURCHASE"
	Hesitation     Category = "HESITATION"
	Suggestions    Category = "SUGGESTIONS"
	Cancellation   Category = "CANCELLATION"
	General        Category = "GENERAL"
)

// All lists every category in canonical order. General is last and is the
// mandatory fallback for classification and template lookup.
var All = []Category{
	Greeting,
	Exploration,
	Preferences,
	Technical,
	Comparison,
	Interest,
	Payment,
	Delivery,
	Exchange,
	Purchase,
	DataCollection,
	Confirmation,
	Feedback,
	PostPurchase,
	Hesitation,
	Suggestions,
	Cancellation,
	General,
}

// Descriptions maps each category to the stage of the conversation it covers.
// Used by the provisioning flow when asking the model to generate one
// behavioral prompt per category.
var Descriptions = map[Category]string{
	Greeting:       "Saudação inicial",
	Exploration:    "Exploração e pesquisa inicial",
	Preferences:    "Definição de preferências",
	Technical:      "Busca por informações técnicas",
	Comparison:     "Comparação e validação",
	Interest:       "Interesse e decisão parcial",
	Payment:        "Dúvidas sobre pagamento",
	Delivery:       "Informação sobre entrega",
	Exchange:       "Políticas de troca",
	Purchase:       "Decisão de compra",
	DataCollection: "Fornecimento de dados",
	Confirmation:   "Confirmação e comprovante",
	Feedback:       "Feedback e agradecimento",
	PostPurchase:   "Dúvidas pós-compra",
	Hesitation:     "Indefinição ou hesitação",
	Suggestions:    "Sugestões adicionais",
	Cancellation:   "Cancelamento ou alteração",
	General:        "Comportamento geral",
}

var valid = func() map[Category]bool {
	m := make(map[Category]bool, len(All))
	for _, c := range All {
		m[c] = true
	}
	return m
}()

// Parse validates a raw tag coming from storage. Unknown tags are a
// configuration error, never silently accepted.
func Parse(tag string) (Category, error) {
	c := Category(tag)
	if !valid[c] {
		return "", fmt.Errorf("unknown behavior category %q", tag)
	}
	return c, nil
}

func (c Category) String() string {
	return string(c)
}
