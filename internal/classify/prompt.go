package classify

import (
	"fmt"
	"strings"
)

const systemPromptTemplate = `You are a meticulous research librarian and file-organisation expert.

Your job:
1. Read the document text provided by the user.
2. Decide which category it belongs to.
3. Suggest a clean, descriptive filename.
4. Write a one-sentence summary.

Rules:
- Output ONLY a valid JSON object. No markdown, no explanation, no extra text.
- The JSON must have exactly 3 keys:
  {
    "summary_sentence": "A concise one-sentence summary of the document.",
    "category": "One of the known categories, or one new category.",
    "suggested_filename": "year_topic_snake_case.pdf"
  }
- Known categories: [%s]
- For "category", pick the BEST match from the known categories. Only if none
  fits, create exactly one new Title-Case category of 1-3 words.
- For "suggested_filename":
  - Start with the year if you can detect it (e.g. 2026_).
  - Use lowercase snake_case.
  - Keep the same file extension as the original.
- Do NOT wrap your response in a code fence or any other formatting.`

// systemPrompt renders the librarian instruction with the current vocabulary.
func systemPrompt(categories []string) string {
	quoted := make([]string, 0, len(categories))
	for _, category := range categories {
		quoted = append(quoted, fmt.Sprintf("%q", category))
	}
	return fmt.Sprintf(systemPromptTemplate, strings.Join(quoted, ", "))
}

// userPrompt packages the original filename and extracted text.
func userPrompt(filename, text string) string {
	return fmt.Sprintf("Original filename: %s\n\n--- DOCUMENT TEXT ---\n%s\n--- END ---", filename, text)
}
