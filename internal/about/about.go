// Package about holds the static product copy shown on the About tab and under
// the generator.
package about

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
)

// SupportURL is the external link for supporting hosting and API costs.
const SupportURL = "https://roihacks.gumroad.com/coffee"

const (
	Title   = "About Us"
	Tagline = "Empowering organizations with AI-crafted mission statements"
	Welcome = "Welcome to AI Mission Statement Generator, where technology meets purpose to help " +
		"organizations define their core mission effectively. Our platform leverages cutting-edge " +
		"AI technology to generate clear, inspiring, and impactful mission statements that drive success."
)

// Section is one titled block of copy. Items render as a bullet list after Body.
type Section struct {
	Title string
	Body  string
	Items []string
}

// Sections returns the About tab content in display order.
func Sections() []Section {
	return []Section{
		{
			Title: "Our Mission",
			Body:  "Helping organizations articulate their purpose clearly and inspire stakeholders with compelling mission statements.",
		},
		{
			Title: "Our Values",
			Body:  "We believe in clarity of purpose, inspiring leadership, and making powerful mission statements accessible to all organizations.",
		},
		{
			Title: "How It Works",
			Body: "Our AI-powered platform uses advanced natural language processing to understand your " +
				"organization's unique characteristics and generate powerful mission statements that capture " +
				"your purpose and inspire action.",
		},
		{
			Title: "Our Commitment",
			Body: "We're committed to providing a reliable, user-friendly tool that helps organizations define " +
				"their purpose effectively. We continuously improve our AI models and user experience based on " +
				"feedback from our community.",
		},
		{
			Title: "Perfect For Every Organization",
			Body:  "Our AI mission statement generator is perfect for:",
			Items: []string{
				"Startups and new businesses",
				"Nonprofit organizations",
				"Educational institutions",
				"Corporate divisions",
				"Social enterprises",
			},
		},
		{
			Title: "Tips for Effective Mission Statements",
			Items: []string{
				"Be clear about your purpose",
				"Focus on impact and value",
				"Keep it concise and memorable",
				"Include your unique approach",
				"Make it inspiring and actionable",
			},
		},
	}
}

// Support is the footer shown beneath the generator.
func Support() Section {
	return Section{
		Title: "Support Our Work",
		Body: "Help us maintain and improve our AI tools by supporting our API & hosting costs. " +
			"Your contribution helps keep this tool free for everyone!",
		Items: []string{"Buy Us a Coffee: " + SupportURL},
	}
}

// Plain renders the full About content as wrapped text. width <= 0 disables wrapping.
func Plain(width int) string {
	var b strings.Builder
	b.WriteString(Title)
	b.WriteString("\n")
	b.WriteString(wrap(Tagline, width))
	b.WriteString("\n\n")
	b.WriteString(wrap(Welcome, width))
	for _, s := range Sections() {
		b.WriteString("\n\n")
		b.WriteString(s.Render(width))
	}
	b.WriteString("\n\n")
	b.WriteString(Support().Render(width))
	b.WriteString("\n")
	return b.String()
}

// Render formats a section as a heading, wrapped body and bullet items.
func (s Section) Render(width int) string {
	lines := []string{s.Title}
	if body := strings.TrimSpace(s.Body); body != "" {
		lines = append(lines, wrap(body, width))
	}
	for _, item := range s.Items {
		lines = append(lines, wrap("• "+item, width))
	}
	return strings.Join(lines, "\n")
}

func wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	return wordwrap.String(text, width)
}
