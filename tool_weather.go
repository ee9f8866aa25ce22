package main

import (
	"fmt"

	"weatherbot/agent"
)

// Result formats used by the two tool sets; %s is the city.
const (
	weatherShort = "The weather in %s is sunny with 30°C."
	weatherLong  = "The weather in %s is sunny with a temperature of 30°C."
)

func weatherTool(format string) agent.Tool {
	return agent.Tool{
		Name:        "get_weather",
		Description: "Get the current weather for a given city.",
		Param: &agent.Param{
			Name:        "city",
			Description: "The name of the city",
		},
		Execute: func(args map[string]any) (string, error) {
			city := args["city"].(string)
			// Simulated; no weather service is queried.
			return fmt.Sprintf(format, city), nil
		},
	}
}
