package main

import (
	"log"
	"time"

	"talk-rag-be/internal/config"
	"talk-rag-be/internal/model"
	"talk-rag-be/pkg/database"
	"talk-rag-be/pkg/embedding"
	"talk-rag-be/pkg/rag/behavior"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// Seeds a demo sales bot with one behavioral prompt per category and a small
// embedded document scope, enough to create a chat session against.
func main() {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	var embedder embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embedder = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaEmbedModel)
	} else {
		embedder = embedding.NewOpenAIProvider(cfg.Keys.OpenAI, cfg.Ai.EmbeddingModel)
	}

	color.Cyan("Seeding demo bot...")

	botID := uuid.New()
	bot := model.Bot{
		Id:          botID,
		UserId:      uuid.New(),
		Name:        "Loja Demo",
		Description: "Assistente de vendas de uma loja de eletrônicos",
		MainPrompt: "Você é um assistente de vendas especializado em eletrônicos. " +
			"Seu objetivo é entender a necessidade do cliente e recomendar o produto certo. " +
			"Seja cordial, direto e nunca invente informações que não estejam no catálogo.",
		Status:    "active",
		CreatedAt: time.Now(),
	}
	if err := db.Create(&bot).Error; err != nil {
		log.Fatalf("Error: Failed to seed bot: %v", err)
	}

	for _, cat := range behavior.All {
		tpl := model.BehavioralTemplate{
			Id:           uuid.New(),
			BotId:        botID,
			BehaviorType: string(cat),
			Prompt:       "Nesta etapa (" + behavior.Descriptions[cat] + "), responda de forma objetiva e cordial.",
			CreatedAt:    time.Now(),
		}
		if err := db.Create(&tpl).Error; err != nil {
			log.Fatalf("Error: Failed to seed template %s: %v", cat, err)
		}
	}
	color.Green("Seeded bot %s with %d behavioral prompts", botID, len(behavior.All))

	color.Cyan("Seeding demo document chunks...")

	processingID := "demo-catalog"
	chunks := []string{
		"Notebook Aurora 14: processador de 8 núcleos, 16GB RAM, 512GB SSD. Preço: R$ 4.299.",
		"Fone BassOne Pro: cancelamento de ruído ativo, 30h de bateria. Preço: R$ 899.",
		"Política de entrega: envio em até 2 dias úteis para todo o país, frete grátis acima de R$ 500.",
		"Política de troca: trocas em até 30 dias com nota fiscal, produto sem sinais de uso.",
	}

	for i, text := range chunks {
		res, err := embedder.Generate(text, embedding.TaskRetrievalDocument)
		if err != nil {
			log.Fatalf("Error: Failed to embed chunk %d: %v", i, err)
		}
		chunk := model.DocumentChunk{
			Id:           uuid.New(),
			ProcessingId: processingID,
			ChunkText:    text,
			ChunkIndex:   i,
			Embedding:    pgvector.NewVector(res.Embedding.Values),
			CreatedAt:    time.Now(),
		}
		if err := db.Create(&chunk).Error; err != nil {
			log.Fatalf("Error: Failed to seed chunk %d: %v", i, err)
		}
	}
	color.Green("Seeded %d chunks under processing_id %q", len(chunks), processingID)

	color.Cyan("Done. Create a session with bot_id=%s processing_ids=[%q]", botID, processingID)
}
