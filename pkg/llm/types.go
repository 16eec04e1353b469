package llm

// Message is one turn of a chat exchange passed to LLMClient.Chat/ChatStream.
// Role is "system", "user", or "assistant" (GeminiClient maps "assistant" to
// Gemini's own "model" role internally).
type Message struct {
	Role    string
	Content string
}

// StreamCallback receives each incremental chunk of a streamed chat response.
type StreamCallback func(chunk string)
