package llmrouter

import "fmt"

// Per-operation prompt templates, each with a single %s verb for the
// content. Three of the four instruct the backend to answer in a
// specific key-ordered JSON shape.
const (
	categorizeTemplate = `Analyze the following tweet and categorize it into one of these categories:
Technology, Business, Education, Entertainment, News, Personal, Health, Sports, Travel, Food, Politics, Science, Art, Finance, Other.

Also provide 3-5 relevant tags and a brief summary (max 100 words).

Tweet: "%s"

Respond in JSON format:
{
    "category": "category_name",
    "tags": ["tag1", "tag2", "tag3"],
    "summary": "brief summary",
    "confidence": 0.95
}`

	summarizeTemplate = `Provide a concise summary of the following tweet content in 1-2 sentences:

Tweet: "%s"

Focus on the main message and key points. Be clear and concise.`

	extractInsightsTemplate = `Extract key insights and actionable items from the following tweet:

Tweet: "%s"

Respond in JSON format:
{
    "insights": ["insight1", "insight2"],
    "actionable_items": ["action1", "action2"],
    "importance": "high/medium/low",
    "topics": ["topic1", "topic2"]
}`

	generateTagsTemplate = `Generate 5-10 relevant tags for the following tweet content:

Tweet: "%s"

Respond in JSON format:
{
    "tags": ["tag1", "tag2", "tag3", "tag4", "tag5"],
    "primary_topic": "main_topic",
    "sentiment": "positive/negative/neutral"
}`
)

// BuildPrompt returns the template-filled prompt for an operation. The
// content is embedded verbatim, with no escaping. Pure: same inputs
// always produce the same string.
func BuildPrompt(content string, op Operation) string {
	return fmt.Sprintf(policies[op].template, content)
}
