// README: Context assembler turns one customer message into the system prompt sent to the LLM.
package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"chichat/internal/modules/availability"
	"chichat/internal/modules/intent"
	"chichat/internal/modules/pricing"
)

// DefaultLookupTimeout bounds each external lookup (routing, item store) per request.
const DefaultLookupTimeout = 8 * time.Second

const personaPrompt = `
You are Chi-Chat, the official assistant for Southwest Virginia Chihuahua,
a small in-home Chihuahua breeder in Marion, Virginia.

VOICE & TONE:
- Warm, kind, and gentle.
- Never pushy or salesy.
- Keep answers brief and focused on exactly what the customer asked.
- Use short paragraphs. Avoid long walls of text unless the customer asks for detailed info.
- Be respectful and supportive.

GREETING BEHAVIOR:
- At the very start of a conversation, it's okay to say:
  "Hey! My name is Chi-Chat, and I'm here to help with Southwest Virginia Chihuahua questions."
- If you do not yet know their name, you may politely ask:
  "To start, what's your first name?"

NAME USAGE:
- If you know the customer's first name, use it in a natural way sometimes, like:
  "That's a great question, Sandy — I'm happy to help."
- Do NOT overuse their name; once every few replies is enough.

BOUNDARIES:
- Do NOT provide medical diagnoses or treatment plans.
- You may share general small-breed puppy care and hypoglycemia awareness, but always suggest
  that they contact a licensed veterinarian for health concerns.
- If they ask about their specific payments, portal data, or individual puppy records,
  say you cannot see their account and they should contact the breeder or log into the portal.
- If there is ever a conflict between what you say and a signed contract, the signed contract controls.
`

const unknownNameContext = `You do not know the customer's name yet. If it feels natural at the start of the chat, you may politely ask for their first name once.`

const knowledgeHeader = "REFERENCE INFORMATION ABOUT SOUTHWEST VIRGINIA CHIHUAHUA:\n"

// IncomingMessage is one customer turn. An empty KnownCustomerName means the name is unknown.
type IncomingMessage struct {
	Text              string
	KnownCustomerName string
}

// Assembly is the result of assembling one message.
type Assembly struct {
	Payload      string
	CustomerName string
	Intent       intent.DetectedIntent
	Quote        *pricing.DeliveryQuote
	Availability availability.Outcome
}

// ContextAssembler routes a message to the fact sources it needs and composes their output.
type ContextAssembler struct {
	quotes        *pricing.Service
	availability  *availability.Service
	knowledge     string
	origin        string
	lookupTimeout time.Duration
}

// NewContextAssembler wires the fact sources. quotes and avail may be nil, in which case
// the corresponding block degrades exactly as if the lookup had failed.
func NewContextAssembler(quotes *pricing.Service, avail *availability.Service, knowledgeText, origin string, lookupTimeout time.Duration) *ContextAssembler {
	if lookupTimeout <= 0 {
		lookupTimeout = DefaultLookupTimeout
	}
	return &ContextAssembler{
		quotes:        quotes,
		availability:  avail,
		knowledge:     knowledgeText,
		origin:        origin,
		lookupTimeout: lookupTimeout,
	}
}

// Assemble detects intents once, runs the delivery and availability lookups concurrently
// and concatenates every block in a fixed order. It never fails: missing facts become
// empty segments or fallback narratives.
func (a *ContextAssembler) Assemble(ctx context.Context, msg IncomingMessage) Assembly {
	detected := intent.Detect(msg.Text)

	customerName := msg.KnownCustomerName
	if detected.DisclosedName != "" {
		customerName = detected.DisclosedName
	}

	var (
		quote         *pricing.DeliveryQuote
		deliveryBlock string
		availResult   availability.Result
		availBlock    string
	)

	g, gctx := errgroup.WithContext(ctx)
	if detected.WantsDeliveryQuote {
		g.Go(func() error {
			quote = a.lookupQuote(gctx, detected.Destination, detected.RoundTrip)
			if quote != nil {
				deliveryBlock = renderDeliveryContext(quote, a.origin, a.policy())
			}
			return nil
		})
	}
	if detected.WantsAvailability {
		g.Go(func() error {
			availResult = a.lookupAvailability(gctx)
			availBlock = availability.Render(availResult)
			return nil
		})
	}
	_ = g.Wait()

	return Assembly{
		Payload:      composePayload(nameContext(customerName), a.knowledge, deliveryBlock, availBlock),
		CustomerName: customerName,
		Intent:       detected,
		Quote:        quote,
		Availability: availResult.Outcome,
	}
}

func (a *ContextAssembler) lookupQuote(ctx context.Context, destination string, roundTrip bool) (q *pricing.DeliveryQuote) {
	if a.quotes == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("assembler: error computing delivery quote: %v", r)
			q = nil
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, a.lookupTimeout)
	defer cancel()
	return a.quotes.Quote(ctx, destination, roundTrip)
}

func (a *ContextAssembler) lookupAvailability(ctx context.Context) availability.Result {
	if a.availability == nil {
		return availability.Result{Outcome: availability.OutcomeUnexpected}
	}
	ctx, cancel := context.WithTimeout(ctx, a.lookupTimeout)
	defer cancel()
	return a.availability.Fetch(ctx)
}

func (a *ContextAssembler) policy() pricing.Policy {
	if a.quotes == nil {
		return pricing.DefaultPolicy
	}
	return a.quotes.Policy()
}

func nameContext(name string) string {
	if name == "" {
		return unknownNameContext
	}
	return fmt.Sprintf(`The customer's first name is "%s". Use it occasionally in a friendly way.`, name)
}

// composePayload joins the blocks. Absent blocks stay as empty segments so the layout is stable.
func composePayload(name, knowledgeText, delivery, avail string) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(personaPrompt)
	b.WriteString("\n\n")
	b.WriteString(name)
	b.WriteString("\n\n")
	b.WriteString(knowledgeHeader)
	b.WriteString(knowledgeText)
	b.WriteString("\n\n")
	b.WriteString(delivery)
	b.WriteString("\n\n")
	b.WriteString(avail)
	b.WriteString("\n")
	return b.String()
}

// renderDeliveryContext states the quote numbers and how the model should present them.
// Miles and fees are shown rounded to whole units; the round-trip fee is rounded after doubling.
func renderDeliveryContext(q *pricing.DeliveryQuote, origin string, p pricing.Policy) string {
	milesRounded := int64(math.Round(q.OneWayMiles))
	oneWayFee := q.OneWayFee.Round(0).String()
	free := p.FreeMiles.String()
	perMile := p.PerMile.StringFixed(2)
	minimum := p.Minimum.String()

	var b strings.Builder
	fmt.Fprintf(&b, "\nDELIVERY QUOTE CONTEXT\n")
	fmt.Fprintf(&b, "- Destination the user asked about: \"%s\"\n", q.Destination)
	fmt.Fprintf(&b, "- Approximate one-way miles from %s: %d miles\n", origin, milesRounded)
	fmt.Fprintf(&b, "- Policy A: First %s miles free (one-way), then $%s per mile.\n", free, perMile)
	fmt.Fprintf(&b, "- Minimum fee when outside the free zone: $%s (one-way).\n", minimum)
	fmt.Fprintf(&b, "- Computed estimated one-way delivery fee: $%s", oneWayFee)

	roundTripFee := "N/A"
	if q.IsRoundTrip() {
		roundTripFee = q.RoundTripFee.Round(0).String()
		fmt.Fprintf(&b, "\n- User requested round-trip.\n")
		fmt.Fprintf(&b, "- Approximate round-trip miles: %d miles\n", int64(math.Round(*q.RoundTripMiles)))
		fmt.Fprintf(&b, "- Estimated round-trip delivery fee (two directions): $%s\n", roundTripFee)
	}

	fmt.Fprintf(&b, "\n\nHow you should answer if the user asked \"how much to %s\":\n", q.Destination)
	fmt.Fprintf(&b, "- Give a short, friendly estimate like:\n")
	fmt.Fprintf(&b, "  \"Based on about %d miles from %s, your estimated one-way delivery fee is around $%s.\"\n", milesRounded, origin, oneWayFee)
	fmt.Fprintf(&b, "- Mention that the first %s miles are free and then it’s $%s per mile with at least a $%s fee outside the free zone.\n", free, perMile, minimum)
	fmt.Fprintf(&b, "- If the user clearly asked for round-trip, also give the round-trip estimate (%s).\n", roundTripFee)
	fmt.Fprintf(&b, "- Do NOT dump the entire transportation policy. Just the numbers they need plus one short sentence.\n")
	fmt.Fprintf(&b, "- Always end with something like:\n")
	fmt.Fprintf(&b, "  \"Final arrangements are confirmed directly with Southwest Virginia Chihuahua.\"\n")
	return b.String()
}
