package chat

// titleRuneLimit is the maximum number of characters carried over from the
// first user message into the chat title.
const titleRuneLimit = 30

// deriveTitle builds a chat title from the first user message: the first 30
// characters, with an ellipsis marker when truncated.
func deriveTitle(content string) string {
	runes := []rune(content)
	if len(runes) <= titleRuneLimit {
		return content
	}
	return string(runes[:titleRuneLimit]) + "..."
}
