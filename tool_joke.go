package main

import "weatherbot/agent"

const joke = "Why don't scientists trust atoms? Because they make up everything!"

func jokeTool(name string) agent.Tool {
	return agent.Tool{
		Name:        name,
		Description: "Tell a funny joke.",
		Execute: func(map[string]any) (string, error) {
			return joke, nil
		},
	}
}
