package llm

import "context"

// Completer binds a provider to fixed per-role options (model, temperature)
// and exposes the system + user call shape used by the agent.
type Completer struct {
	provider LLMProvider
	options  []Option
}

func NewCompleter(provider LLMProvider, options ...Option) *Completer {
	return &Completer{provider: provider, options: options}
}

func (c *Completer) Complete(ctx context.Context, system, user string) (string, error) {
	history := make([]Message, 0, 2)
	if system != "" {
		history = append(history, Message{Role: RoleSystem, Content: system})
	}
	history = append(history, Message{Role: RoleUser, Content: user})
	return c.provider.Chat(ctx, history, c.options...)
}
