// README: Wires config into the chat pipeline; shared by the API server and the prompt CLI.
package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"chichat/internal/ai"
	"chichat/internal/config"
	"chichat/internal/infra"
	"chichat/internal/knowledge"
	"chichat/internal/maps"
	"chichat/internal/modules/availability"
	"chichat/internal/modules/pricing"
	"chichat/internal/modules/ratelimit"
	"chichat/internal/service"
)

type Components struct {
	Assembler *service.ContextAssembler
	Chat      *service.ChatService
	// Limiter is nil when Redis is not configured or unreachable.
	Limiter *ratelimit.Store

	closers []func()
}

// Close releases pools and clients opened by Build.
func (c *Components) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

// Build constructs every component. Only a broken knowledge file or routing client is fatal;
// a missing store, generator or limiter degrades the service instead.
func Build(ctx context.Context, cfg config.Config) (*Components, error) {
	c := &Components{}

	knowledgeText, err := knowledge.Load(cfg.Knowledge.File)
	if err != nil {
		return nil, err
	}

	routes, err := maps.NewRouteService(cfg.Maps.APIKey, cfg.Maps.Origin)
	if err != nil {
		return nil, fmt.Errorf("maps init: %w", err)
	}
	if cfg.Maps.APIKey == "" {
		log.Printf("GOOGLE_MAPS_API_KEY not set; delivery quotes are disabled")
	}
	quotes := pricing.NewService(routes)

	store := c.buildStore(ctx, cfg)
	puppies := availability.NewService(store)

	c.Assembler = service.NewContextAssembler(quotes, puppies, knowledgeText, routes.Origin(), cfg.LookupTimeout())

	generator, err := c.buildGenerator(ctx, cfg)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.Chat = service.NewChatService(c.Assembler, generator)

	if cfg.Redis.Addr != "" {
		client, err := infra.NewRedis(ctx, cfg.Redis.Addr)
		if err != nil {
			log.Printf("rate limiting disabled: %v", err)
		} else {
			c.closers = append(c.closers, func() { _ = client.Close() })
			c.Limiter = ratelimit.NewStore(client, cfg.Redis.RateLimitPerMinute, time.Minute)
		}
	}

	return c, nil
}

func (c *Components) buildStore(ctx context.Context, cfg config.Config) availability.Store {
	switch cfg.ItemStore() {
	case config.StoreSupabase:
		s, err := availability.NewSupabaseStore(cfg.Store.SupabaseURL, cfg.Store.SupabaseAnonKey)
		if err != nil {
			log.Printf("puppy store disabled: %v", err)
			return nil
		}
		return s
	case config.StorePostgres:
		pool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			log.Printf("puppy store disabled: %v", err)
			return nil
		}
		c.closers = append(c.closers, pool.Close)
		return availability.NewPostgresStore(pool)
	default:
		log.Printf("no puppy store configured; availability questions get the fallback reply")
		return nil
	}
}

// buildGenerator returns a nil Generator when the selected provider has no key, so that
// requests fail with the missing-credentials error rather than at startup.
func (c *Components) buildGenerator(ctx context.Context, cfg config.Config) (ai.Generator, error) {
	key := cfg.LLMAPIKey()
	if key == "" {
		log.Printf("%s api key not set; chat requests will be rejected", cfg.LLM.Provider)
		return nil, nil
	}

	switch cfg.LLM.Provider {
	case config.ProviderGemini:
		p, err := ai.NewGeminiProvider(ctx, key, cfg.LLM.Model, cfg.LLM.MaxTokens)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, p.Close)
		return p, nil
	default:
		p, err := ai.NewClaudeProvider(key, cfg.LLM.Model, cfg.LLM.MaxTokens)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
}
