/*
Package talentscout is a screening assistant that interviews job candidates.

A conversation collects seven fields one question at a time (name, email,
phone, years of experience, desired position, location and tech stack),
validates every answer, and finally asks a language model for interview
questions tailored to the candidate's technologies.

# Concept

The conversation is a small deterministic state machine. The host (terminal,
HTTP server, MCP server) owns the I/O: it passes each raw message to
ProcessResponse and gets back the reply and whether to keep accepting input.
Validation problems and model failures never surface as errors; they become
reply text.

# Usage

	llm, err := gemini.New(ctx, gemini.Config{APIKey: os.Getenv("GEMINI_API_KEY")})
	if err != nil {
		log.Fatal(err)
	}

	assistant, err := talentscout.New(llm)
	if err != nil {
		log.Fatal(err)
	}

	conv := assistant.NewConversation()
	for _, msg := range conv.Opening() {
		fmt.Println(msg)
	}

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		reply, more := conv.ProcessResponse(ctx, scanner.Text())
		fmt.Println(reply)
		if !more {
			break
		}
	}

Hosts that keep conversations in a session store use the stateless pair
Open and Respond, which operate on a domain.Snapshot.
*/
package talentscout
