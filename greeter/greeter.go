// Package greeter holds the greeting domain and registers it as an MCP
// server: the greet tool, the about resource and the suggest-greeting prompt.
package greeter

import (
	"errors"
	"fmt"
)

// ErrEmptyName is returned when a greeting is requested for an empty name.
var ErrEmptyName = errors.New("name must not be empty")

// DefaultNameSuggestion is used by SuggestGreeting when no name is supplied.
const DefaultNameSuggestion = "Alice"

// Info is the server identity advertised at initialize and quoted by About.
type Info struct {
	Name    string
	Version string
}

// DefaultInfo returns the identity of the stock greeter server.
func DefaultInfo() Info {
	return Info{Name: "GreeterServer", Version: "1.0.0"}
}

// GreetArgs are the arguments of the greet tool.
type GreetArgs struct {
	Name       string     `json:"name" jsonschema:"minLength=1,description=The name of the person to greet."`
	Politeness Politeness `json:"politeness,omitempty"`
}

// SuggestArgs are the arguments of the suggest-greeting prompt.
type SuggestArgs struct {
	NameSuggestion string `json:"name_suggestion,omitempty" jsonschema:"description=Optional name suggestion."`
}

// Message is one turn of a prompt template.
type Message struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// Greet renders the greeting for args.
func Greet(args GreetArgs) (string, error) {
	if args.Name == "" {
		return "", ErrEmptyName
	}
	if args.Politeness == Formal {
		return fmt.Sprintf("Esteemed greetings to you, %s. It is a pleasure.", args.Name), nil
	}
	return fmt.Sprintf("Hey %s! What's up?", args.Name), nil
}

// About renders the text served by the about resource.
func About(info Info) string {
	return fmt.Sprintf("%s MCP Server v%s. Supports greeting people.", info.Name, info.Version)
}

// SuggestGreeting returns the two-turn conversation showing how to use greet.
// An empty suggestion falls back to DefaultNameSuggestion.
func SuggestGreeting(args SuggestArgs) []Message {
	name := args.NameSuggestion
	if name == "" {
		name = DefaultNameSuggestion
	}
	return []Message{
		{Role: "user", Text: fmt.Sprintf(`Please greet "%s" for me.`, name)},
		{Role: "assistant", Text: "Okay, I can do that. Should I use a formal or informal tone? (If you don't specify, I'll use informal)."},
	}
}
