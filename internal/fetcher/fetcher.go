package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"wikiquiz/internal/domain"
	"wikiquiz/internal/logger"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

const (
	fetchTimeout    = 10 * time.Second
	userAgent       = "Mozilla/5.0 (WikiQuizBot/1.0)"
	minParagraphLen = 50
	maxSections     = 10

	// Source caps scale with the requested question count: more requested
	// output, more source context.
	smallRequestThreshold = 5
	smallParagraphCap     = 15
	smallCharCap          = 6000
	largeParagraphCap     = 25
	largeCharCap          = 10000

	defaultTitle = "Wikipedia Article"
)

// Fetcher retrieves a web page and extracts a title and a bounded list of
// body paragraphs.
type Fetcher struct {
	client *http.Client
}

// New creates a Fetcher with the default timeout.
func New() *Fetcher {
	return NewWithClient(&http.Client{Timeout: fetchTimeout})
}

// NewWithClient creates a Fetcher with a caller-supplied HTTP client.
func NewWithClient(client *http.Client) *Fetcher {
	return &Fetcher{client: client}
}

// Fetch retrieves pageURL and extracts the article title, body paragraphs and
// section headings. It fails with a FetchError on network errors, timeouts and
// non-2xx statuses, and with a NoContentError when no qualifying paragraph is
// found.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string, questionCount int) (*domain.SourceDocument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, domain.NewFetchError(err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, domain.NewFetchError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, domain.NewFetchError(fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, domain.NewFetchError(err)
	}

	title := extractTitle(doc)
	paragraphCap, charCap := capsFor(questionCount)
	paragraphs := extractParagraphs(doc, paragraphCap)
	if len(paragraphs) == 0 {
		return nil, domain.NewNoContentError()
	}

	body := strings.Join(paragraphs, "\n")
	if runes := []rune(body); len(runes) > charCap {
		body = string(runes[:charCap])
	}

	sections := extractSections(doc)

	logger.Get().Debug("Fetched article",
		zap.String("url", pageURL),
		zap.String("title", title),
		zap.Int("paragraphs", len(paragraphs)),
		zap.Int("body_chars", len(body)),
		zap.Int("sections", len(sections)),
	)

	return &domain.SourceDocument{
		Title:    title,
		Body:     body,
		Sections: sections,
	}, nil
}

func capsFor(questionCount int) (paragraphs, chars int) {
	if questionCount > smallRequestThreshold {
		return largeParagraphCap, largeCharCap
	}
	return smallParagraphCap, smallCharCap
}

func extractTitle(doc *goquery.Document) string {
	if heading := doc.Find("h1.firstHeading").First(); heading.Length() > 0 {
		if text := strings.TrimSpace(heading.Text()); text != "" {
			return text
		}
	}
	if heading := doc.Find("h1").First(); heading.Length() > 0 {
		if text := strings.TrimSpace(heading.Text()); text != "" {
			return text
		}
	}
	return defaultTitle
}

func extractParagraphs(doc *goquery.Document, limit int) []string {
	var paragraphs []string
	doc.Find("p").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.TrimSpace(sel.Text())
		if len(text) > minParagraphLen {
			paragraphs = append(paragraphs, text)
		}
		return len(paragraphs) < limit
	})
	return paragraphs
}

// extractSections collects h2-level section headings. Wikipedia wraps them in
// span.mw-headline; plain h2 text is the fallback for other pages.
func extractSections(doc *goquery.Document) []string {
	var sections []string
	doc.Find("h2 span.mw-headline").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			sections = append(sections, text)
		}
		return len(sections) < maxSections
	})
	if len(sections) > 0 {
		return sections
	}
	doc.Find("h2").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			sections = append(sections, text)
		}
		return len(sections) < maxSections
	})
	return sections
}
