package prompt

import (
	"fmt"
	"strings"
	"time"

	"talk-rag-be/pkg/rag/behavior"
	"talk-rag-be/pkg/rag/conversation"
	"talk-rag-be/pkg/rag/ragerr"
)

// ProjectComposer renders the fixed project/task assistant prompt. Unlike
// Composer it does not classify behavior; every turn is GENERAL.
type ProjectComposer struct {
	userName    string
	userPronoun string
	ctx         *conversation.Context
}

func NewProjectComposer(userName, userPronoun string, ctx *conversation.Context) (*ProjectComposer, error) {
	if strings.TrimSpace(userName) == "" {
		return nil, &ragerr.ConfigurationError{Reason: "user name is required"}
	}
	if strings.TrimSpace(userPronoun) == "" {
		return nil, &ragerr.ConfigurationError{Reason: "user pronoun is required"}
	}
	if ctx == nil {
		ctx = conversation.NewContext(conversation.DefaultMaxHistory)
	}
	return &ProjectComposer{
		userName:    userName,
		userPronoun: userPronoun,
		ctx:         ctx,
	}, nil
}

func (c *ProjectComposer) Context() *conversation.Context {
	return c.ctx
}

func (c *ProjectComposer) Compose(query, retrievedContext string) (string, behavior.Category) {
	c.ctx.Add(conversation.Interaction{
		Message:   query,
		Behavior:  behavior.General,
		Timestamp: time.Now(),
	})
	return fmt.Sprintf(`Você é um assistente de projetos e tarefas para %s.
Trate %s usando o pronome %s.

Instruções de Resposta:
1. Use o contexto abaixo para responder à pergunta sobre os projetos e tarefas de %s
2. Se a informação não estiver no contexto, diga que não tem informação suficiente para responder
3. Seja sempre cortês, profissional e útil
4. Se questionado sobre projetos, foque nas informações dos projetos
5. Se questionado sobre tarefas, foque nas informações das tarefas
6. Se perguntado sobre uma relação entre projetos e tarefas, busque as conexões entre eles

Contexto:
%s

Pergunta: %s`, c.userName, c.userName, c.userPronoun, c.userName, retrievedContext, query), behavior.General
}
