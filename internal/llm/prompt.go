package llm

import (
	"fmt"
	"strconv"
	"strings"

	"reciperag/internal/domain"
)

// SystemPrompt restricts the model to the retrieved context.
const SystemPrompt = `You are a helpful recipe assistant. Answer user questions about recipes using ONLY the information provided in the CONTEXT below.

Guidelines:
- Provide concise, natural answers (1-3 sentences)
- Mention specific recipe titles when relevant
- If the context doesn't contain relevant recipes, say so
- Focus on answering the specific question asked
- Use friendly, conversational tone`

const maxIngredientRunes = 300

// FormatRecipes renders retrieved recipes as numbered context blocks.
// Empty, missing and zero-valued fields are omitted.
func FormatRecipes(recipes []domain.RankedResult) string {
	blocks := make([]string, 0, len(recipes))
	for i, r := range recipes {
		title := r.Title
		if title == "" {
			title = "N/A"
		}
		lines := []string{fmt.Sprintf("Recipe %d: %s", i+1, title)}
		if r.Tags != "" {
			lines = append(lines, "  Tags: "+r.Tags)
		}
		if r.Ingredients != "" {
			lines = append(lines, "  Ingredients: "+truncate(r.Ingredients, maxIngredientRunes))
		}
		if r.Duration != nil && *r.Duration != 0 {
			lines = append(lines, "  Duration: "+strconv.FormatFloat(*r.Duration, 'f', -1, 64)+" minutes")
		}
		if r.Calories != nil && *r.Calories != 0 {
			lines = append(lines, fmt.Sprintf("  Calories: %.1f cal", *r.Calories))
		}
		if r.HealthCategory != domain.HealthUnknown {
			lines = append(lines, "  Health: "+string(r.HealthCategory))
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	return strings.Join(blocks, "\n\n")
}

// BuildPrompt returns the system and user messages for question.
func BuildPrompt(question string, recipes []domain.RankedResult) (system, user string) {
	var b strings.Builder
	b.WriteString("CONTEXT (Retrieved Recipes):\n")
	b.WriteString(FormatRecipes(recipes))
	b.WriteString("\n\nUSER QUESTION: ")
	b.WriteString(question)
	b.WriteString("\n\nPlease answer the question based on the recipes provided above.")
	return SystemPrompt, b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
