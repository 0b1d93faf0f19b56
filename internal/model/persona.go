package model

import "fmt"

// Persona is one of the three topical modes selectable by the caller.
type Persona string

const (
	PersonaRealEstate Persona = "real-estate"
	PersonaMindCoach  Persona = "mind-coach"
	PersonaFinance    Persona = "finance"
)

// Personas lists all personas in their fixed iteration order. Classifier
// tie-breaking depends on this order.
var Personas = []Persona{PersonaRealEstate, PersonaMindCoach, PersonaFinance}

// Topic is a classifier outcome: one of the personas, or the general bucket
// for questions that belong to none of them.
type Topic string

// TopicGeneral marks a question outside every persona's domain.
const TopicGeneral Topic = "general"

// Topic converts a persona into its classifier outcome form.
func (p Persona) Topic() Topic { return Topic(p) }

// ParsePersona validates a mode string from the HTTP layer.
func ParsePersona(s string) (Persona, error) {
	switch Persona(s) {
	case PersonaRealEstate, PersonaMindCoach, PersonaFinance:
		return Persona(s), nil
	}
	return "", fmt.Errorf("unknown persona: %q", s)
}
