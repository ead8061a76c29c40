package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// ErrToolLoopExceeded means the model kept calling tools past the configured
// round limit without producing a final answer.
var ErrToolLoopExceeded = errors.New("tool loop limit exceeded")

// Agent runs the tool-calling conversation loop: send the dialogue, execute
// any requested tools one at a time in the order the model asked for them,
// feed the results back, repeat until the model answers with text.
type Agent struct {
	llm         LLM
	toolbox     *Toolbox
	maxToolLoop int
	log         zerolog.Logger
}

func New(llm LLM, toolbox *Toolbox, maxToolLoop int, log zerolog.Logger) *Agent {
	if maxToolLoop <= 0 {
		maxToolLoop = 4
	}
	return &Agent{
		llm:         llm,
		toolbox:     toolbox,
		maxToolLoop: maxToolLoop,
		log:         log,
	}
}

// Reply answers one user message given the prior dialogue. History carries
// only user/assistant turns; the system prompt is prepended here.
func (a *Agent) Reply(ctx context.Context, history []Message, userMessage string) (string, error) {
	messages := make([]Message, 0, len(history)+2)
	messages = append(messages, Message{Role: "system", Content: SystemPrompt})
	messages = append(messages, history...)
	messages = append(messages, Message{Role: "user", Content: userMessage})

	for round := 0; round < a.maxToolLoop; round++ {
		resp, err := a.llm.Complete(ctx, messages, a.toolbox.Specs())
		if err != nil {
			return "", fmt.Errorf("agent round %d: %w", round+1, err)
		}

		if len(resp.ToolCalls) == 0 {
			return resp.Content, nil
		}

		messages = append(messages, Message{
			Role:      "assistant",
			Content:   resp.Content,
			ToolCalls: resp.ToolCalls,
		})

		// Tools run strictly in call order; a water check and an
		// electricity check in one round never interleave.
		for _, call := range resp.ToolCalls {
			a.log.Debug().Str("tool", call.Name).Msg("executing tool call")
			result := a.toolbox.Execute(ctx, call)
			messages = append(messages, Message{
				Role:       "tool",
				Content:    result,
				ToolCallID: call.ID,
			})
		}
	}

	return "", ErrToolLoopExceeded
}
