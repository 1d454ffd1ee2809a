package parsec

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// selectedMarker annotates the currently active choice in the options
// catalogue, e.g. "parsec_CAF09_v1.2S [x]".
const selectedMarker = " [x]"

// inspectForm walks every input/select control of the query form and builds
// the default submission values plus a catalogue of the choices each field
// accepts. Hidden fields may repeat a name, their values accumulate in
// order. The submit button itself is skipped and replaced by the synthetic
// submit_form field the CGI expects.
func inspectForm(doc *goquery.Document) (url.Values, map[string][]string, error) {
	defaults := url.Values{}
	options := map[string][]string{}

	var inspectErr error
	doc.Find("input, select").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		name := sel.AttrOr("name", "")

		if goquery.NodeName(sel) == "select" {
			sel.ChildrenFiltered("option").Each(func(_ int, opt *goquery.Selection) {
				value := opt.AttrOr("value", "")
				if _, selected := opt.Attr("selected"); selected {
					defaults.Set(name, value)
					options[name] = append(options[name], value+selectedMarker)
				} else {
					options[name] = append(options[name], value)
				}
			})
			return true
		}

		value := sel.AttrOr("value", "")
		_, checked := sel.Attr("checked")

		switch typ := sel.AttrOr("type", ""); typ {
		case "text":
			defaults.Set(name, value)
			options[name] = []string{value}
		case "hidden":
			defaults.Add(name, value)
		case "radio":
			if checked {
				defaults.Set(name, value)
				options[name] = append(options[name], value+selectedMarker)
			} else {
				options[name] = append(options[name], value)
			}
		case "checkbox":
			if checked {
				defaults.Set(name, "1")
				options[name] = []string{"0", "1" + selectedMarker}
			} else {
				defaults.Set(name, "0")
				options[name] = []string{"0" + selectedMarker, "1"}
			}
		case "submit":
			// not a query parameter
		default:
			inspectErr = &UnsupportedControlTypeError{Type: typ}
			return false
		}
		return true
	})
	if inspectErr != nil {
		return nil, nil, inspectErr
	}

	defaults.Set("submit_form", "Submit")
	return defaults, options, nil
}

// ParseFormData parses a captured form block, one colon separated
// "key: value" pair per line, as copied out of a browser's network
// inspector. Used to replace live form introspection wholesale.
func ParseFormData(text string) (url.Values, error) {
	form := url.Values{}
	for _, line := range strings.Split(strings.Trim(text, "\n"), "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("invalid form data line: %q", line)
		}
		form.Set(strings.TrimSpace(key), strings.TrimSpace(value))
	}
	return form, nil
}
