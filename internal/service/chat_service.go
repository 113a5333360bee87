package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"chichat/internal/ai"
)

var (
	// ErrMissingMessage is returned when the customer message is empty or blank.
	ErrMissingMessage = errors.New("missing message")
	// ErrMissingCredentials is returned before any lookup when no generator is configured.
	ErrMissingCredentials = errors.New("llm api key is not set on the server")
)

// ChatReply is what the widget receives for one turn.
type ChatReply struct {
	Reply        string
	CustomerName string
}

// ChatService checks credentials, assembles the prompt and asks the generator for a reply.
type ChatService struct {
	assembler *ContextAssembler
	generator ai.Generator
}

// NewChatService wires the pipeline. A nil generator makes every Reply fail with ErrMissingCredentials.
func NewChatService(assembler *ContextAssembler, generator ai.Generator) *ChatService {
	return &ChatService{assembler: assembler, generator: generator}
}

// Reply handles one customer message end to end.
func (s *ChatService) Reply(ctx context.Context, msg IncomingMessage) (*ChatReply, error) {
	if strings.TrimSpace(msg.Text) == "" {
		return nil, ErrMissingMessage
	}
	if s.generator == nil {
		return nil, ErrMissingCredentials
	}

	assembly := s.assembler.Assemble(ctx, msg)

	reply, err := s.generator.Generate(ctx, assembly.Payload, msg.Text)
	if err != nil {
		return nil, fmt.Errorf("generate reply: %w", err)
	}

	return &ChatReply{
		Reply:        reply,
		CustomerName: assembly.CustomerName,
	}, nil
}
