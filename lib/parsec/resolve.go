package parsec

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"parsecquery/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"github.com/klauspost/compress/gzip"
)

// resolveResponse interprets the page the service rendered for a submitted
// query. On success the page links the output artifact through an anchor
// whose text contains "output"; the artifact is fetched and gunzipped when
// the link ends in ".gz". Anything else is a failure and whatever
// diagnostic text the page carries becomes the error.
func (c *Client) resolveResponse(ctx context.Context, body []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", err
	}

	href := ""
	doc.Find("a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if strings.Contains(a.Text(), "output") {
			href = a.AttrOr("href", "")
			return false
		}
		return true
	})
	if href == "" {
		return "", diagnoseFailure(doc)
	}

	link, err := c.Website.Parse(href)
	if err != nil {
		return "", err
	}

	slog.DebugContext(ctx, "fetching output artifact", "url", link.String())
	res, err := c.Http.R().
		SetContext(ctx).
		Get(link.String())
	if err != nil {
		return "", err
	}

	data := res.Body()
	if strings.HasSuffix(link.Path, ".gz") {
		gz, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return "", fmt.Errorf("decompress output: %w", err)
		}
		defer gz.Close()
		data, err = io.ReadAll(gz)
		if err != nil {
			return "", fmt.Errorf("decompress output: %w", err)
		}
	}
	return string(data), nil
}

// diagnoseFailure extracts the most useful error text available from a
// response page without an output link: the service's own errorwarning
// paragraph if present, else the raw text of the rendered form, else a
// generic failure.
func diagnoseFailure(doc *goquery.Document) error {
	var msg strings.Builder
	for _, n := range doc.Find("p.errorwarning").Nodes {
		msg.WriteString(htmlutil.GetText(n))
	}
	if msg.Len() > 0 {
		return &QueryError{
			Message: msg.String(),
			Hint:    "please check your inputs!",
		}
	}

	if text := strings.Join(htmlutil.TextNodes(doc.Find("form")), "\n"); strings.TrimSpace(text) != "" {
		return &QueryError{Message: fmt.Sprintf("webpage returned:\n%s", text)}
	}

	return &QueryError{Message: "no useful information provided"}
}
