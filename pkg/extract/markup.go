package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"github.com/antchfx/xmlquery"
)

// extractCSS returns the trimmed text of each match. A selector ending in
// "@name" returns that attribute instead, e.g. "a.download@href".
func extractCSS(body []byte, expression string, maxResults int) (*Result, error) {
	selector, attr := splitAttr(expression)

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	c := &collector{max: maxResults}
	doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var v string
		if attr != "" {
			val, ok := s.Attr(attr)
			if !ok {
				return true
			}
			v = strings.TrimSpace(val)
		} else {
			v = strings.TrimSpace(s.Text())
		}
		if v == "" {
			return true
		}
		return c.add(v)
	})
	return c.result(), nil
}

func splitAttr(expression string) (selector, attr string) {
	i := strings.LastIndexByte(expression, '@')
	if i <= 0 || strings.ContainsAny(expression[i+1:], " []=\"'") {
		return expression, ""
	}
	return expression[:i], expression[i+1:]
}

// extractXPath evaluates expression with htmlquery for HTML and xmlquery for
// everything else.
func extractXPath(body []byte, contentType, expression string, maxResults int) (*Result, error) {
	if classify(contentType) == kindHTML {
		return extractXPathHTML(body, expression, maxResults)
	}
	return extractXPathXML(body, expression, maxResults)
}

func extractXPathHTML(body []byte, expression string, maxResults int) (*Result, error) {
	doc, err := htmlquery.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	nodes, err := htmlquery.QueryAll(doc, expression)
	if err != nil {
		return nil, fmt.Errorf("invalid XPath expression: %w", err)
	}

	c := &collector{max: maxResults}
	for _, node := range nodes {
		text := strings.TrimSpace(htmlquery.InnerText(node))
		if text == "" {
			continue
		}
		if !c.add(text) {
			break
		}
	}
	return c.result(), nil
}

func extractXPathXML(body []byte, expression string, maxResults int) (*Result, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}
	nodes, err := xmlquery.QueryAll(doc, expression)
	if err != nil {
		return nil, fmt.Errorf("invalid XPath expression: %w", err)
	}

	c := &collector{max: maxResults}
	for _, node := range nodes {
		text := strings.TrimSpace(node.InnerText())
		if text == "" {
			continue
		}
		if !c.add(text) {
			break
		}
	}
	return c.result(), nil
}
