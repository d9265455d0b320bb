package provider

// Request is the backend-facing completion request. It carries only what
// the backend needs; prompt assembly belongs to the caller.
type Request struct {
	Model     string `json:"model"`
	Prompt    string `json:"prompt"`
	MaxTokens int    `json:"max_tokens,omitempty"`
}

// Response holds the raw model output. Text is handed to the recovery
// parser untouched; it is expected to be JSON but may be truncated,
// noisy, or malformed.
type Response struct {
	Text  string `json:"text"`
	Model string `json:"model"`
	Usage Usage  `json:"usage"`
}

// Usage reports token consumption for a single completion.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}
