package generator

import "fmt"

const promptTemplate = "Generate a powerful, concise, and inspiring mission statement for this organization/company: %s. " +
	"The mission statement should be clear, memorable, and reflect the organization's core purpose and values. " +
	"Focus on impact, vision, and value proposition. Keep it professional and avoid generic language."

// BuildPrompt embeds description verbatim into the mission statement instructions.
func BuildPrompt(description string) string {
	return fmt.Sprintf(promptTemplate, description)
}
