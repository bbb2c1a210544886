package model

// Params are the generation parameters sent with every prompt.
type Params struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	TopK           int     `json:"top_k"`
	TopP           float64 `json:"top_p"`
	ReturnFullText bool    `json:"return_full_text"`
}

// DefaultParams favours short, near-deterministic answers.
func DefaultParams() Params {
	return Params{
		MaxNewTokens:   3000,
		Temperature:    0.01,
		TopK:           50,
		TopP:           0.95,
		ReturnFullText: false,
	}
}
