package commands_test

import (
	"fmt"

	"github.com/ardnew/chatgram/commands"
)

func Example() {
	for _, msg := range []string{
		"!f poll open Lunch pizza",
		"!f poll open Lunch pizza tacos",
		"good morning",
	} {
		c, ok := commands.Parse(msg)
		if !ok {
			fmt.Println("chat:", msg)

			continue
		}

		if err := commands.Usage(c); err != nil {
			fmt.Println("usage:", commands.Message(err))

			continue
		}

		fmt.Println("poll:", c.Poll.Open.Title, c.Poll.Open.Options)
	}
	// Output:
	// usage: You need at least 2 options to start a poll.
	// poll: Lunch [pizza tacos]
	// chat: good morning
}
