// README: Availability service fetches live puppy listings and renders them as prose.
package availability

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"
)

const queryErrorContext = `
AVAILABLE PUPPIES CONTEXT:
There was an error reading available puppies from the database.
If this happens, reply gently that you are not able to see current availability right now and suggest the customer check the Available Puppies page or contact the breeder directly.
`

const emptyContext = `
AVAILABLE PUPPIES CONTEXT:
The database currently shows no puppies with status "Available".
When the user asks if there are puppies available, answer kindly that there are no puppies listed as available right now, and invite them to ask about upcoming litters or the waitlist.
`

const unexpectedContext = `
AVAILABLE PUPPIES CONTEXT:
There was an unexpected error when trying to look up available puppies.
Please answer by apologizing that you can't see live availability right now and suggest they check the breeder's website or contact them directly.
`

const listedContextHeader = `
AVAILABLE PUPPIES CONTEXT:
Here are the puppies currently marked as "Available" in the Supabase puppies table:

`

const listedContextFooter = `

When someone asks "Do you have puppies?" or "What puppies are available?":
- Give a short, friendly answer using this list.
- Do NOT dump the full list every time. A simple reply like
  "Yes, we currently have 3 puppies available, including [one example]."
  is enough unless they ask for more detail.
- Offer to describe a specific puppy if they want, and gently mention
  that photos and full details are available on the Available Puppies
  page of the Southwest Virginia Chihuahua website.
`

// Service always reads fresh from the store; nothing is cached between requests.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Fetch queries the store and classifies the outcome. It never returns an error:
// failures are reported through Result.Outcome.
func (s *Service) Fetch(ctx context.Context) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("availability: unexpected error building listing: %v", r)
			res = Result{Outcome: OutcomeUnexpected}
		}
	}()

	if s.store == nil {
		log.Printf("availability: %v", ErrStoreNotConfigured)
		return Result{Outcome: OutcomeUnexpected}
	}

	items, err := s.store.ListAvailable(ctx)
	if err != nil {
		log.Printf("availability: puppies query error: %v", err)
		return Result{Outcome: OutcomeQueryError}
	}
	if len(items) == 0 {
		return Result{Outcome: OutcomeEmpty}
	}
	return Result{Outcome: OutcomeListed, Items: items}
}

// BuildContext fetches and renders in one step.
func (s *Service) BuildContext(ctx context.Context) string {
	return Render(s.Fetch(ctx))
}

// Render turns a fetch result into exactly one narrative block.
func Render(res Result) string {
	switch res.Outcome {
	case OutcomeListed:
		lines := make([]string, len(res.Items))
		for i, it := range res.Items {
			lines[i] = FormatItem(i, it)
		}
		return listedContextHeader + strings.Join(lines, "\n") + listedContextFooter
	case OutcomeQueryError:
		return queryErrorContext
	case OutcomeEmpty:
		return emptyContext
	default:
		return unexpectedContext
	}
}

// FormatItem renders one listing line. idx is the zero-based position, used when a puppy has no name.
func FormatItem(idx int, it Item) string {
	name := firstNonEmpty(it.PuppyName, it.CallName)
	if name == "" {
		name = fmt.Sprintf("Puppy #%d", idx+1)
	}
	sex := firstNonEmpty(it.Sex)
	if sex == "" {
		sex = "unknown sex"
	}
	color := firstNonEmpty(it.Color)
	if color == "" {
		color = "unknown color"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "- %s (%s, %s", name, sex, color)
	if pattern := firstNonEmpty(it.Pattern); pattern != "" {
		b.WriteString(", " + pattern)
	}
	if it.BornOn != nil {
		b.WriteString(", born " + it.BornOn.Format(dobLayout))
	}
	b.WriteString(")")
	if it.Price != nil && !math.IsNaN(*it.Price) {
		fmt.Fprintf(&b, " – around $%d", int64(math.Round(*it.Price)))
	}
	return b.String()
}

func firstNonEmpty(values ...*string) string {
	for _, v := range values {
		if v != nil && *v != "" {
			return *v
		}
	}
	return ""
}
