package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"talk-rag-be/internal/dto"
	"talk-rag-be/internal/entity"
	"talk-rag-be/internal/pkg/logger"
	"talk-rag-be/internal/repository/specification"
	"talk-rag-be/internal/repository/unitofwork"
	"talk-rag-be/pkg/events"
	"talk-rag-be/pkg/llm"
	pktNats "talk-rag-be/pkg/nats"
	"talk-rag-be/pkg/rag/behavior"
	"talk-rag-be/pkg/rag/ragerr"

	"github.com/google/uuid"
)

const mainPromptSystem = `Você é um especialista em criar prompts para chatbots.
Sua tarefa é criar um prompt principal que defina a personalidade e diretrizes do bot
com base na descrição fornecida. O prompt deve ser claro, específico e seguir o formato:
'Você é [descrição da personalidade]. Seu objetivo é [objetivo principal].
[Diretrizes específicas de comportamento e tom].'`

const behavioralPromptSystem = `Você é um especialista em criar prompts comportamentais para chatbots.
Para cada comportamento listado, crie um sub-prompt específico que oriente como o bot deve responder
naquela situação específica. Os prompts devem ser claros, práticos e alinhados com a personalidade
principal do bot.`

type IBotService interface {
	Create(ctx context.Context, req *dto.CreateBotRequest) (*dto.CreateBotResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.GetBotResponse, error)
}

type botService struct {
	uowFactory        unitofwork.RepositoryFactory
	llmProvider       llm.LLMProvider
	provisioningModel string
	eventPublisher    *pktNats.Publisher
	logger            logger.ILogger
}

func NewBotService(
	uowFactory unitofwork.RepositoryFactory,
	llmProvider llm.LLMProvider,
	provisioningModel string,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IBotService {
	return &botService{
		uowFactory:        uowFactory,
		llmProvider:       llmProvider,
		provisioningModel: provisioningModel,
		eventPublisher:    eventPublisher,
		logger:            log,
	}
}

// Create provisions a bot in two model calls: first the persona prompt, then
// one behavioral prompt per category as a single JSON map. Bot and templates
// are persisted in one transaction.
func (s *botService) Create(ctx context.Context, req *dto.CreateBotRequest) (*dto.CreateBotResponse, error) {
	start := time.Now()

	mainPrompt, err := s.generateMainPrompt(ctx, req.Description)
	if err != nil {
		return nil, &ragerr.UpstreamError{Service: "llm", Err: err}
	}

	behavioralPrompts, err := s.generateBehavioralPrompts(ctx, req.Description, mainPrompt)
	if err != nil {
		return nil, &ragerr.UpstreamError{Service: "llm", Err: err}
	}

	bot := entity.Bot{
		Id:          uuid.New(),
		UserId:      req.UserId,
		Name:        req.Name,
		Description: req.Description,
		MainPrompt:  mainPrompt,
		Status:      "active",
		Generation: map[string]any{
			"model":        s.provisioningModel,
			"generated_at": start.UTC().Format(time.RFC3339),
			"duration_ms":  time.Since(start).Milliseconds(),
		},
		CreatedAt: time.Now(),
	}

	templates := make([]*entity.BehavioralTemplate, 0, len(behavioralPrompts))
	for cat, prompt := range behavioralPrompts {
		templates = append(templates, &entity.BehavioralTemplate{
			Id:           uuid.New(),
			BotId:        bot.Id,
			BehaviorType: string(cat),
			Prompt:       prompt,
			CreatedAt:    time.Now(),
		})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	if err := uow.BotRepository().Create(ctx, &bot); err != nil {
		uow.Rollback()
		return nil, err
	}
	if err := uow.BehavioralTemplateRepository().CreateBatch(ctx, templates); err != nil {
		uow.Rollback()
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, events.NewBotProvisioned(bot.Id.String(), bot.Name, len(templates))); err != nil {
			s.logger.Warn("bot_service", "failed to publish bot provisioned event", map[string]interface{}{"error": err.Error()})
		}
	}

	res := &dto.CreateBotResponse{
		BotId:             bot.Id,
		Name:              bot.Name,
		MainPrompt:        bot.MainPrompt,
		BehavioralPrompts: make(map[string]string, len(behavioralPrompts)),
	}
	for cat, prompt := range behavioralPrompts {
		res.BehavioralPrompts[string(cat)] = prompt
	}
	return res, nil
}

func (s *botService) Get(ctx context.Context, id uuid.UUID) (*dto.GetBotResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	bot, err := uow.BotRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if bot == nil {
		return nil, &ragerr.BotNotFoundError{BotID: id.String()}
	}
	return &dto.GetBotResponse{
		Id:          bot.Id,
		Name:        bot.Name,
		Description: bot.Description,
		MainPrompt:  bot.MainPrompt,
		Status:      bot.Status,
		CreatedAt:   bot.CreatedAt,
		UpdatedAt:   bot.UpdatedAt,
	}, nil
}

func (s *botService) generateMainPrompt(ctx context.Context, description string) (string, error) {
	history := []llm.Message{
		{Role: "system", Content: mainPromptSystem},
		{Role: "user", Content: fmt.Sprintf("Crie um prompt principal para um bot com a seguinte descrição: %s", description)},
	}
	out, err := s.llmProvider.Chat(ctx, history,
		llm.WithModel(s.provisioningModel),
		llm.WithTemperature(0.7),
	)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (s *botService) generateBehavioralPrompts(ctx context.Context, description, mainPrompt string) (map[behavior.Category]string, error) {
	var lines []string
	for _, cat := range behavior.All {
		lines = append(lines, fmt.Sprintf("- %s: %s", cat, behavior.Descriptions[cat]))
	}

	userPrompt := fmt.Sprintf(`Com base na descrição do bot e seu prompt principal:

Descrição: %s
Prompt Principal: %s

Crie sub-prompts para cada um dos seguintes comportamentos:
%s

Para cada comportamento, forneça um prompt que explique como o bot deve responder naquela situação específica.
Retorne no formato JSON:
{
    "BEHAVIOR_TYPE": "prompt text",
    ...
}`, description, mainPrompt, strings.Join(lines, "\n"))

	history := []llm.Message{
		{Role: "system", Content: behavioralPromptSystem},
		{Role: "user", Content: userPrompt},
	}
	out, err := s.llmProvider.Chat(ctx, history,
		llm.WithModel(s.provisioningModel),
		llm.WithTemperature(0.7),
	)
	if err != nil {
		return nil, err
	}

	raw, err := parsePromptMap(out)
	if err != nil {
		return nil, err
	}

	prompts := make(map[behavior.Category]string, len(raw))
	for tag, prompt := range raw {
		cat, err := behavior.Parse(tag)
		if err != nil {
			return nil, fmt.Errorf("model returned unknown behavior tag %q", tag)
		}
		prompts[cat] = prompt
	}
	return prompts, nil
}

// parsePromptMap extracts the first JSON object from the model output. The
// model occasionally wraps the map in prose or a code fence.
func parsePromptMap(out string) (map[string]string, error) {
	start := strings.Index(out, "{")
	end := strings.LastIndex(out, "}")
	if start < 0 || end < start {
		return nil, fmt.Errorf("no JSON object in model output")
	}

	var m map[string]string
	if err := json.Unmarshal([]byte(out[start:end+1]), &m); err != nil {
		return nil, fmt.Errorf("invalid behavioral prompt JSON: %w", err)
	}
	if len(m) == 0 {
		return nil, fmt.Errorf("behavioral prompt JSON is empty")
	}
	return m, nil
}
