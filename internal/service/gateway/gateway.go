// Package gateway wraps the chat-completion call to the configured model
// backend. The rest of the system only sees a stream of message fragments;
// which provider serves them is decided here, once, from configuration.
package gateway

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/flow/agent/react"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	"pdfsummarizer/internal/config"
	"pdfsummarizer/internal/session"
)

// Client holds the chat model resolved at process start. The "openai"
// provider covers every OpenAI-compatible backend, including a local Ollama
// (/v1) and a LiteLLM multi-provider proxy; "claude" and "gemini" talk to
// those providers directly.
type Client struct {
	chatModel model.ToolCallingChatModel
	agent     *react.Agent
	sessions  *session.Store
	provider  string
	modelName string
}

func NewClient(ctx context.Context, cfg *config.Config, store *session.Store) (*Client, error) {
	provider := cfg.BasicConfig.Provider
	provCfg := cfg.ActiveProvider()
	modelName := provCfg.Model

	var chatModel model.ToolCallingChatModel
	var err error
	switch provider {
	case "openai":
		chatModel, err = openai.NewChatModel(ctx, &openai.ChatModelConfig{
			BaseURL: provCfg.BaseURL,
			Model:   modelName,
			APIKey:  provCfg.APIKey})
	case "gemini":
		var client *genai.Client
		client, err = genai.NewClient(ctx, &genai.ClientConfig{
			APIKey: provCfg.APIKey,
		})
		if err != nil {
			return nil, fmt.Errorf("init gemini client: %w", err)
		}
		chatModel, err = gemini.NewChatModel(ctx, &gemini.Config{
			Client: client,
			Model:  modelName,
		})
	case "claude":
		var baseURLPtr *string
		if provCfg.BaseURL != "" {
			baseURLPtr = &provCfg.BaseURL
		}
		chatModel, err = claude.NewChatModel(ctx, &claude.Config{
			APIKey:    provCfg.APIKey,
			Model:     modelName,
			BaseURL:   baseURLPtr,
			MaxTokens: 3000,
		})
	default:
		return nil, fmt.Errorf("invalid provider: %s", provider)
	}
	if err != nil {
		return nil, fmt.Errorf("init %s chat model: %w", provider, err)
	}

	var reactAgent *react.Agent
	if tools := initDocumentTools(); len(tools) > 0 {
		reactAgent, err = react.NewAgent(ctx, &react.AgentConfig{
			ToolCallingModel: chatModel,
			ToolsConfig: compose.ToolsNodeConfig{
				Tools: tools,
			},
		})
		if err != nil {
			return nil, fmt.Errorf("init react agent: %w", err)
		}
	}

	return &Client{
		chatModel: chatModel,
		agent:     reactAgent,
		sessions:  store,
		provider:  provider,
		modelName: modelName,
	}, nil
}

// Stream submits the messages under the given conversation context and
// returns the fragment stream in arrival order. The context must have been
// created (and not yet discarded) before submission; anything else is
// ErrSessionNotFound, never a silent retry.
func (c *Client) Stream(ctx context.Context, sess *session.Session, messages []*schema.Message) (*schema.StreamReader[*schema.Message], error) {
	if !c.sessions.Valid(sess) {
		return nil, fmt.Errorf("%w: message submitted before context creation or after discard", session.ErrSessionNotFound)
	}

	var (
		streamReader *schema.StreamReader[*schema.Message]
		err          error
	)
	if c.agent != nil {
		streamReader, err = c.agent.Stream(ctx, messages)
	} else {
		streamReader, err = c.chatModel.Stream(ctx, messages)
	}
	if err != nil {
		return nil, Classify(err)
	}
	return streamReader, nil
}

// Provider reports the configured backend, for startup logging.
func (c *Client) Provider() string { return c.provider }

// Model reports the configured model identifier.
func (c *Client) Model() string { return c.modelName }
