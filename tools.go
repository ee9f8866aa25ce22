package main

import (
	"fmt"
	"sort"
	"strings"

	"weatherbot/agent"
)

// toolSets are the fixed tool lists the agent can be started with.
var toolSets = map[string]func() []agent.Tool{
	"full": func() []agent.Tool {
		return []agent.Tool{weatherTool(weatherShort), jokeTool("give_joke"), poemTool()}
	},
	"basic": func() []agent.Tool {
		return []agent.Tool{weatherTool(weatherLong), jokeTool("tell_joke")}
	},
}

func toolSetNames() string {
	names := make([]string, 0, len(toolSets))
	for name := range toolSets {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// newRegistry builds and validates the registry for the named tool set.
func newRegistry(set string) (*agent.Registry, error) {
	tools, ok := toolSets[set]
	if !ok {
		return nil, fmt.Errorf("unknown tool set %q (want one of: %s)", set, toolSetNames())
	}
	return agent.NewRegistry(tools()...)
}
