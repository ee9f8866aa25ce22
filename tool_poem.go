package main

import "weatherbot/agent"

const poem = "Roses are red,\n" +
	"Violets are blue,\n" +
	"Sugar is sweet,\n" +
	"And so are you."

func poemTool() agent.Tool {
	return agent.Tool{
		Name:        "give_poem",
		Description: "Recite a short poem.",
		Execute: func(map[string]any) (string, error) {
			return poem, nil
		},
	}
}
