// Package brain is the offline command classifier. It uses only static
// local data, so identical input always yields identical output, and it
// never fails: the final rule is an unconditional fallback.
//
// Rules are evaluated top to bottom, first match wins:
// system > navigation > action > identity > value analysis > knowledge > fallback.
// All matching is lower-cased substring containment, nothing smarter.
package brain

import (
	"strings"

	"atlas/internal/intent"
)

const (
	StandbyResponse = "Standing by."

	// FallbackResponse doubles as the offline-mode notice: it is what the
	// user hears when no remote provider answered and no local rule matched.
	FallbackResponse = "I'm operating in offline mode and don't have information on that. Please consult a healthcare professional."
)

func Match(text string) intent.Intent {
	t := strings.ToLower(strings.TrimSpace(text))

	// System intents.
	if containsAny(t, "stop listening", "cancel", "shut down") {
		return intent.Intent{Kind: intent.System, Action: "STOP_LISTENING", Response: StandbyResponse}
	}

	// Navigation intents.
	if containsAny(t, "home", "dashboard") {
		return intent.Intent{Kind: intent.Navigate, Target: "/home", Response: "Navigating to Home."}
	}
	if containsAny(t, "analysis", "diagnostics page") {
		return intent.Intent{Kind: intent.Navigate, Target: "/analysis", Response: "Opening Health Analysis."}
	}

	// Action intents.
	if containsAny(t, "run", "check", "test") {
		return intent.Intent{Kind: intent.Action, Action: "TRIGGER_ANALYSIS", Response: "Initiating diagnostic check."}
	}

	// Identity and help.
	if containsAny(t, "who are you", "what is this") {
		return intent.Intent{Kind: intent.Response, Response: "I am Atlas, your offline neural interface. I control navigation and provide system data."}
	}
	if containsAny(t, "help", "commands") {
		return intent.Intent{Kind: intent.Response, Response: "You can say: Go to Home, Show Analysis, or ask about this app."}
	}
	if containsAny(t, "hello", "hey") {
		return intent.Intent{Kind: intent.Response, Response: "Atlas online. Awaiting command."}
	}

	// Specific values ("is a heart rate of 110 bad?").
	if resp, ok := AnalyzeValue(t); ok {
		return intent.Intent{Kind: intent.Response, Response: resp}
	}

	// General knowledge base.
	if ans, ok := lookup(t); ok {
		return intent.Intent{Kind: intent.Response, Response: ans}
	}

	return intent.Intent{Kind: intent.Response, Response: FallbackResponse}
}

func containsAny(t string, subs ...string) bool {
	for _, s := range subs {
		if strings.Contains(t, s) {
			return true
		}
	}
	return false
}
