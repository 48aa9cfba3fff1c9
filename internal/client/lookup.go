package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonathan/company-prep/internal/types"
)

// State is a step of the lookup flow
type State string

const (
	StateIdle           State = "idle"
	StateSearching      State = "searching"
	StateFound          State = "found"
	StateDisplayed      State = "displayed"
	StateNotFound       State = "not-found"
	StateResearching    State = "researching"
	StateResearchFailed State = "research-failed"
)

// ErrResearchFailed is returned once research for a company has failed.
// Lookup stays in StateResearchFailed until a new Lookup is started.
var ErrResearchFailed = errors.New("research failed")

// LookupAPI is the subset of Client a Lookup needs
type LookupAPI interface {
	Search(ctx context.Context, query string) (*types.Company, error)
	Research(ctx context.Context, name string) (*types.Company, bool, error)
}

// Lookup drives one company lookup: search, then research once on a miss.
type Lookup struct {
	api        LookupAPI
	name       string
	state      State
	researched bool
	company    *types.Company
	err        error

	// OnTransition, when set, is called after every state change
	OnTransition func(from, to State)
}

// NewLookup starts an idle lookup for name
func NewLookup(api LookupAPI, name string) *Lookup {
	return &Lookup{api: api, name: name, state: StateIdle}
}

// State returns the current state
func (l *Lookup) State() State { return l.state }

// Company returns the displayed company, if any
func (l *Lookup) Company() *types.Company { return l.company }

// Run advances the lookup until it displays a company or stops.
// A search miss triggers research at most once per Lookup; a failed research is final.
func (l *Lookup) Run(ctx context.Context) (*types.Company, error) {
	switch l.state {
	case StateDisplayed:
		return l.company, nil
	case StateResearchFailed:
		return nil, l.err
	}

	l.transition(StateSearching)
	company, err := l.api.Search(ctx, l.name)
	switch {
	case err == nil:
		l.transition(StateFound)
		return l.display(company), nil
	case errors.Is(err, ErrNotFound):
		l.transition(StateNotFound)
	default:
		l.transition(StateIdle)
		return nil, fmt.Errorf("search %q: %w", l.name, err)
	}

	if l.researched {
		return nil, ErrNotFound
	}
	l.researched = true

	l.transition(StateResearching)
	company, _, err = l.api.Research(ctx, l.name)
	if err != nil {
		l.err = fmt.Errorf("%w for %q: %w", ErrResearchFailed, l.name, err)
		l.transition(StateResearchFailed)
		return nil, l.err
	}
	return l.display(company), nil
}

func (l *Lookup) display(c *types.Company) *types.Company {
	l.company = c
	l.transition(StateDisplayed)
	return c
}

func (l *Lookup) transition(to State) {
	from := l.state
	l.state = to
	if l.OnTransition != nil {
		l.OnTransition(from, to)
	}
}
