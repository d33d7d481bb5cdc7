/*
Package runner implements the interactive chat loop for a screening conversation.

It is the bridge between a Conversation and the outside world: the runner prints
the opening messages, reads candidate answers through a pluggable IOHandler and
stops when the conversation ends or the input stream closes. When a store and a
session ID are configured, every turn is saved so the chat can be resumed.

# Key Components

  - Runner: The loop driving one conversation.
  - IOHandler: Decouples how messages are shown and answers are read.
  - TextHandler: Interactive terminal usage, with optional Markdown rendering.
  - JSONHandler: Newline-delimited JSON for scripts and other programs.

# Usage

	r := runner.NewRunner(
		runner.WithInputHandler(runner.NewTextHandler(os.Stdin, os.Stdout)),
	)
	if err := r.Run(ctx, assistant.NewConversation()); err != nil {
		log.Fatal(err)
	}
*/
package runner
