package main

import (
	"context"
	"strings"
)

// studyTipResponder is a canned keyword-matching implementation of
// service.Responder. Real response generation is an external collaborator;
// this stands in for it when no model backend is wired.
type studyTipResponder struct {
	responses map[string]string
	fallback  string
}

// newStudyTipResponder creates a responder with a small set of study-advice
// replies keyed by topic keywords.
func newStudyTipResponder() *studyTipResponder {
	return &studyTipResponder{
		responses: map[string]string{
			"hello": "Hi! I'm your study buddy. How can I help you today?",
			"plan": "Let's build a study plan. Tell me your goal, " +
				"how much time you have, and your current level.",
			"math": "Math tips: practice fundamentals daily, focus on understanding " +
				"concepts over memorization, and review your mistakes regularly.",
			"programming": "Programming tips: write code every day, read good open " +
				"source projects, and build small things end to end.",
			"english": "Language tips: learn a few words daily, listen and speak as " +
				"much as you can, and read articles slightly above your level.",
			"help": "I can help you plan your studies, answer questions, and track " +
				"your progress. What would you like to do?",
		},
		fallback: "Got it! Keep logging your study sessions and I'll track your progress.",
	}
}

// Respond implements service.Responder.
func (r *studyTipResponder) Respond(ctx context.Context, message string) (string, error) {
	lower := strings.ToLower(message)
	for keyword, response := range r.responses {
		if strings.Contains(lower, keyword) {
			return response, nil
		}
	}
	return r.fallback, nil
}
