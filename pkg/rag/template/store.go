package template

import (
	"context"
	"fmt"

	"talk-rag-be/internal/repository/specification"
	"talk-rag-be/internal/repository/unitofwork"
	"talk-rag-be/pkg/rag/behavior"
	"talk-rag-be/pkg/rag/ragerr"

	"github.com/google/uuid"
)

// DefaultGeneralPrompt is used when a bot has no stored GENERAL template, so
// the composer's mandatory fallback tier always exists.
const DefaultGeneralPrompt = "Mantenha um atendimento profissional e acolhedor, \nfocando em entender e atender às necessidades do cliente."

// Store loads a bot's persona and behavioral templates from the database.
type Store struct {
	factory unitofwork.RepositoryFactory
}

func NewStore(factory unitofwork.RepositoryFactory) *Store {
	return &Store{factory: factory}
}

// Load returns the bot's main prompt and its behavior template map. The map
// always contains a GENERAL entry. A stored row with an unrecognized behavior
// tag is a configuration error, not a silent skip.
func (s *Store) Load(ctx context.Context, botID uuid.UUID) (string, map[behavior.Category]string, error) {
	uow := s.factory.NewUnitOfWork(ctx)

	bot, err := uow.BotRepository().FindOne(ctx, specification.ByID{ID: botID})
	if err != nil {
		return "", nil, err
	}
	if bot == nil {
		return "", nil, &ragerr.BotNotFoundError{BotID: botID.String()}
	}

	rows, err := uow.BehavioralTemplateRepository().FindAll(ctx, specification.ByBotID{BotID: botID})
	if err != nil {
		return "", nil, err
	}

	templates := make(map[behavior.Category]string, len(rows))
	for _, row := range rows {
		cat, err := behavior.Parse(row.BehaviorType)
		if err != nil {
			return "", nil, &ragerr.ConfigurationError{
				Reason: fmt.Sprintf("bot %s has template with unknown behavior tag %q", botID, row.BehaviorType),
			}
		}
		templates[cat] = row.Prompt
	}

	if _, ok := templates[behavior.General]; !ok {
		templates[behavior.General] = DefaultGeneralPrompt
	}

	return bot.MainPrompt, templates, nil
}
