package domain

// Answer is the outcome of one retrieval-augmented question.
type Answer struct {
	Query        string         `json:"query"`
	Text         string         `json:"answer"`
	Recipes      []RankedResult `json:"retrieved_recipes"`
	NumRetrieved int            `json:"num_recipes_retrieved"`
	Provider     string         `json:"llm_provider"`
	Model        string         `json:"model"`
	Error        string         `json:"error,omitempty"`
}
