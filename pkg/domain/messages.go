package domain

// Fixed texts emitted by the conversation.
const (
	GreetingMessage = "Hello! I'm TalentScout's AI Hiring Assistant.\n" +
		"I'll collect a few basic details and ask some technical questions to understand your profile."

	ExitMessage = "Thank you for your time. Our recruitment team will reach out if there's a suitable match."

	// AcknowledgePrefix precedes the next field's prompt after a successful answer.
	AcknowledgePrefix = "Thank you! "

	CollectionCompleteMessage = "Great! I have all the information I need. " +
		"Let me generate some technical questions based on your tech stack..."

	NoTechStackMessage = "No tech stack was provided. Thank you for your time!"

	GenerationFallbackMessage = "I apologize, but I encountered an issue generating technical questions. " +
		"Our team will follow up with you shortly."

	ClosingMessage = "All questions have been asked. Thank you for your time!"

	RephraseMessage = "I didn't quite understand that. Could you please rephrase?"
)
