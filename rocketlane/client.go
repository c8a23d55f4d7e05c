// Package rocketlane is the typed entry point of the SDK: one client
// aggregating a typed resource handle per remote collection. Query building,
// pagination and projection behavior all come from the core packages; this
// package only pins collection names, endpoint paths and record types.
package rocketlane

import (
	"fmt"

	"github.com/ajones55555/rocketlane-sdk/core/resource"
	"github.com/ajones55555/rocketlane-sdk/rest"
)

// API endpoint paths, relative to the client's base URL.
const (
	PathTasks       = "/1.0/tasks"
	PathProjects    = "/1.0/projects"
	PathUsers       = "/1.0/users"
	PathTimeEntries = "/1.0/time-entries"
	PathPhases      = "/1.0/phases"
	PathFields      = "/1.0/fields"
	PathSpaces      = "/1.0/spaces"
)

// Client bundles a typed resource per collection over one shared HTTP
// client.
type Client struct {
	rest *rest.Client

	Tasks       *resource.Resource[Task]
	Projects    *resource.Resource[Project]
	Users       *resource.Resource[User]
	TimeEntries *resource.Resource[TimeEntry]
	Phases      *resource.Resource[Phase]
	Fields      *resource.Resource[Field]
	Spaces      *resource.Resource[Space]
}

// New creates a client with the given API key and options.
func New(apiKey string, opts ...rest.Option) (*Client, error) {
	rc, err := rest.NewClient(append([]rest.Option{rest.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, err
	}
	return wire(rc)
}

// NewFromEnv creates a client configured from the environment; see
// rest.NewClientFromEnv for the variables honored.
func NewFromEnv(opts ...rest.Option) (*Client, error) {
	rc, err := rest.NewClientFromEnv(opts...)
	if err != nil {
		return nil, err
	}
	return wire(rc)
}

// Rest exposes the underlying HTTP client for endpoints the typed surface
// does not cover.
func (c *Client) Rest() *rest.Client {
	return c.rest
}

func wire(rc *rest.Client) (*Client, error) {
	c := &Client{rest: rc}

	var err error
	if c.Tasks, err = resource.New[Task](rc, "tasks", PathTasks); err != nil {
		return nil, fmt.Errorf("rocketlane: %w", err)
	}
	if c.Projects, err = resource.New[Project](rc, "projects", PathProjects); err != nil {
		return nil, fmt.Errorf("rocketlane: %w", err)
	}
	if c.Users, err = resource.New[User](rc, "users", PathUsers); err != nil {
		return nil, fmt.Errorf("rocketlane: %w", err)
	}
	if c.TimeEntries, err = resource.New[TimeEntry](rc, "time-entries", PathTimeEntries); err != nil {
		return nil, fmt.Errorf("rocketlane: %w", err)
	}
	if c.Phases, err = resource.New[Phase](rc, "phases", PathPhases); err != nil {
		return nil, fmt.Errorf("rocketlane: %w", err)
	}
	if c.Fields, err = resource.New[Field](rc, "fields", PathFields); err != nil {
		return nil, fmt.Errorf("rocketlane: %w", err)
	}
	if c.Spaces, err = resource.New[Space](rc, "spaces", PathSpaces); err != nil {
		return nil, fmt.Errorf("rocketlane: %w", err)
	}
	return c, nil
}
