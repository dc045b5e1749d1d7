package markdown

import (
	"regexp"
	"strings"

	html2markdown "github.com/JohannesKaufmann/html-to-markdown"
)

var (
	reBlankRuns = regexp.MustCompile(`\n{3,}`)
	reTrailBS   = regexp.MustCompile(`\\+\n`)
)

// Convert renders page HTML as cleaned markdown for audit snapshots.
func Convert(html string) string {
	conv := html2markdown.NewConverter("", true, nil)
	md, err := conv.ConvertString(html)
	if err != nil {
		return ""
	}
	return clean(md)
}

func clean(md string) string {
	if md == "" {
		return ""
	}
	cleaned := strings.ReplaceAll(md, "\r\n", "\n")
	cleaned = reTrailBS.ReplaceAllString(cleaned, "\n")
	cleaned = reBlankRuns.ReplaceAllString(cleaned, "\n\n")
	return strings.TrimSpace(cleaned)
}
