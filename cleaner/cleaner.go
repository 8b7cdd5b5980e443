// Package cleaner filters and normalizes raw stories into canonical posts.
// Cleaning is deterministic and order-preserving: downstream index/metadata
// alignment depends on the relative order of its output.
package cleaner

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"the-daily/internal/logger"
	"the-daily/models"
)

var (
	entityRe     = regexp.MustCompile(`&\w+;`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// NormalizeText strips markup entities and tags from HN story text and
// comment bodies, then collapses runs of whitespace. Entities go first: the
// markup walk would otherwise decode them back into literal characters.
func NormalizeText(text string) string {
	text = entityRe.ReplaceAllString(text, " ")
	if strings.Contains(text, "<") {
		text = extractText(text)
	}
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// extractText walks the parsed markup and keeps only text nodes.
func extractText(s string) string {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return s
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return b.String()
}

// Clean drops stories with an empty title or a score below minScore, dedups
// by id keeping the first occurrence, and normalizes every text field.
func Clean(raw []models.RawItem, minScore int) []models.Post {
	seen := make(map[string]bool)
	cleaned := make([]models.Post, 0, len(raw))

	for _, item := range raw {
		if item.Title == "" {
			continue
		}
		if item.Score < minScore {
			continue
		}
		if seen[item.ID] {
			continue
		}
		seen[item.ID] = true

		comments := make([]models.Comment, 0, len(item.TopComments))
		for _, c := range item.TopComments {
			comments = append(comments, models.Comment{
				Body:   NormalizeText(c.Body),
				Author: c.Author,
			})
		}

		cleaned = append(cleaned, models.Post{
			ID:          item.ID,
			Title:       NormalizeText(item.Title),
			URL:         item.URL,
			StoryText:   NormalizeText(item.StoryText),
			Score:       item.Score,
			NumComments: item.NumComments,
			HNURL:       item.HNURL,
			TopComments: comments,
		})
	}

	logger.Log.Infof("cleaned %d -> %d stories", len(raw), len(cleaned))
	return cleaned
}
