// Package intent recognises what a customer is asking for using surface pattern matching.
// Each signal is an independent predicate so they can co-occur in a single message.
package intent

import (
	"regexp"
	"strings"
)

var (
	namePattern         = regexp.MustCompile(`(?i)my name is\s+([A-Za-z]+)|i['’]m\s+([A-Za-z]+)`)
	roundTripPattern    = regexp.MustCompile(`(?i)round\s*trip|both\s*ways|there\s*and\s*back`)
	deliveryPattern     = regexp.MustCompile(`(?i)how much.*to\s+(.+)`)
	availabilityPattern = regexp.MustCompile(`(?i)available puppies|do you have puppies|any puppies available|what puppies do you have|what puppies are available|any litters available|any puppies right now`)
)

// DetectedIntent holds every signal found in one message. Empty strings mean "not found".
type DetectedIntent struct {
	DisclosedName      string
	WantsDeliveryQuote bool
	Destination        string
	RoundTrip          bool
	WantsAvailability  bool
}

// Detect runs all predicates over text.
func Detect(text string) DetectedIntent {
	dest, wantsQuote := DeliveryDestination(text)
	return DetectedIntent{
		DisclosedName:      DisclosedName(text),
		WantsDeliveryQuote: wantsQuote,
		Destination:        dest,
		RoundTrip:          IsRoundTrip(text),
		WantsAvailability:  WantsAvailability(text),
	}
}

// DisclosedName extracts the name from "my name is X" or "I'm X".
// The first non-empty capture wins; nothing beyond "alphabetic" is validated.
func DisclosedName(text string) string {
	m := namePattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	for _, group := range m[1:] {
		if group != "" {
			return strings.TrimSpace(group)
		}
	}
	return ""
}

// IsRoundTrip reports whether the customer mentioned a round trip anywhere in the message.
func IsRoundTrip(text string) bool {
	return roundTripPattern.MatchString(text)
}

// DeliveryDestination returns the text after "how much ... to", with surrounding whitespace
// and trailing question marks removed.
func DeliveryDestination(text string) (string, bool) {
	m := deliveryPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	dest := strings.TrimSpace(m[1])
	dest = strings.TrimSpace(strings.TrimRight(dest, "?"))
	if dest == "" {
		return "", false
	}
	return dest, true
}

// WantsAvailability reports whether the customer asked which puppies are available.
func WantsAvailability(text string) bool {
	return availabilityPattern.MatchString(text)
}
