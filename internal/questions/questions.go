// Package questions lists the fields of a posting's application form.
package questions

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"go-jobquest/internal/browser"
	"go-jobquest/internal/models"
	"go-jobquest/utils"

	"github.com/PuerkitoBio/goquery"
	"github.com/playwright-community/playwright-go"
)

// applySelectors are tried in order; the first present control is clicked.
var applySelectors = []string{
	"a.postings-btn.template-btn-submit",
	`a[href*="apply"]`,
	`button:has-text("Apply")`,
	`a:has-text("Apply")`,
	".apply-button",
	".posting-apply-button",
}

const (
	clickTimeout   = 5 * time.Second
	formLoadDelay  = 2 * time.Second
	previewLength  = 500
	cardSelector   = ".application-question"
	inputSelector  = "input, textarea, select"
	formSelector   = ".application-form, form"
	requiredMarker = "✱"
)

// Fetch opens the posting, follows its apply control when there is one and
// reads the form it lands on.
func Fetch(ctx context.Context, page playwright.Page, url string) (*models.ApplicationForm, error) {
	form, err := fetch(ctx, page, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch application questions: %w", err)
	}
	return form, nil
}

func fetch(ctx context.Context, page playwright.Page, url string) (*models.ApplicationForm, error) {
	log.Printf("📝 Fetching application form for %s", url)
	if _, err := browser.Navigate(page, url, browser.NavigationTimeout); err != nil {
		return nil, err
	}

	if sel, ok := clickApply(page); ok {
		log.Printf("  ✅ Clicked apply control %s", sel)
		if err := browser.Pause(ctx, formLoadDelay); err != nil {
			return nil, err
		}
	} else {
		log.Printf("  ℹ️ Note: Could not find apply button, checking current page for form")
	}

	html, err := page.Content()
	if err != nil {
		return nil, fmt.Errorf("read page content: %w", err)
	}
	return ParseForm(html, page.URL())
}

func clickApply(page playwright.Page) (string, bool) {
	for _, sel := range applySelectors {
		button := page.Locator(sel).First()
		n, err := button.Count()
		if err != nil || n == 0 {
			continue
		}
		err = button.Click(playwright.LocatorClickOptions{
			Timeout: playwright.Float(float64(clickTimeout.Milliseconds())),
		})
		if err != nil {
			log.Printf("  ⚠️ Could not click %s: %v", sel, err)
			continue
		}
		return sel, true
	}
	return "", false
}

// ParseForm extracts the question cards of a rendered application page.
func ParseForm(html, pageURL string) (*models.ApplicationForm, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse form html: %w", err)
	}

	questions := []models.FormQuestion{}
	doc.Find(cardSelector).Each(func(i int, card *goquery.Selection) {
		input := card.Find(inputSelector).First()
		if input.Length() == 0 {
			return
		}

		label := cardLabel(card)
		q := models.FormQuestion{
			Label:       label,
			Type:        goquery.NodeName(input),
			InputType:   inputType(input),
			Name:        input.AttrOr("name", ""),
			Required:    isRequired(input, label),
			Placeholder: input.AttrOr("placeholder", ""),
		}
		if q.Label == "" {
			q.Label = fmt.Sprintf("Question %d", i+1)
		}
		if q.Type == "select" {
			input.Find("option").Each(func(_ int, opt *goquery.Selection) {
				if text := strings.TrimSpace(opt.Text()); text != "" {
					q.Options = append(q.Options, text)
				}
			})
		}
		questions = append(questions, q)
	})

	preview := utils.CleanText(doc.Find(formSelector).First().Text())
	return &models.ApplicationForm{
		Questions:      questions,
		TotalQuestions: len(questions),
		URL:            pageURL,
		FormPreview:    utils.Truncate(preview, previewLength),
	}, nil
}

// cardLabel tries the <label>, then .application-label, then the card's own
// first text node.
func cardLabel(card *goquery.Selection) string {
	if label := strings.TrimSpace(card.Find("label").First().Text()); label != "" {
		return label
	}
	if label := strings.TrimSpace(card.Find(".application-label").First().Text()); label != "" {
		return label
	}

	var label string
	card.Contents().EachWithBreak(func(_ int, node *goquery.Selection) bool {
		if goquery.NodeName(node) != "#text" {
			return true
		}
		label = strings.TrimSpace(node.Text())
		return label == ""
	})
	return label
}

// inputType mirrors the DOM .type property of the control.
func inputType(input *goquery.Selection) string {
	switch goquery.NodeName(input) {
	case "textarea":
		return "textarea"
	case "select":
		if _, multiple := input.Attr("multiple"); multiple {
			return "select-multiple"
		}
		return "select-one"
	}
	if t := strings.ToLower(strings.TrimSpace(input.AttrOr("type", ""))); t != "" {
		return t
	}
	return "text"
}

func isRequired(input *goquery.Selection, label string) bool {
	if _, ok := input.Attr("required"); ok {
		return true
	}
	if input.AttrOr("aria-required", "") == "true" {
		return true
	}
	return strings.Contains(label, requiredMarker) || strings.Contains(label, "*")
}
