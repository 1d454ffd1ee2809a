package parsec

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"time"

	"parsecquery/lib/telemetry"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("lib/parsec")

// DefaultWebsite is the CGI root of the Padova CMD service.
const DefaultWebsite = "https://stev.oapd.inaf.it/cgi-bin/"

// SchemaVersion selects which generation of the CMD query form the client
// speaks. The two generations use disjoint field names and encodings.
type SchemaVersion int

const (
	SchemaCMD2 SchemaVersion = 2
	SchemaCMD3 SchemaVersion = 3
)

var restyInstrumentOutput telemetry.InstrumentOutput

// SetRestyInstrumentOutput enables HTTP transcript dumps for every client
// created afterwards. Debugging aid, off by default.
func SetRestyInstrumentOutput(output telemetry.InstrumentOutput) {
	restyInstrumentOutput = output
}

type ClientOptions struct {
	// Version is the cmd version path segment, "cmd" for whatever the
	// service currently serves, or pinned like "cmd_3.7", "cmd_2.8".
	Version string
	// Website overrides the CGI root, mainly for tests.
	Website string
}

// Client queries the CMD isochrone service. The stored form defaults are
// built once at construction by scraping the live query form and are only
// read afterwards; every query merges its own fields into a copy.
type Client struct {
	Website *url.URL
	Http    *resty.Client

	schema   SchemaVersion
	defaults url.Values
	options  map[string][]string
}

func NewClient(ctx context.Context, opts ClientOptions) (*Client, error) {
	ctx, span := tracer.Start(ctx, "client:NewClient")
	defer span.End()

	version := opts.Version
	if version == "" {
		version = "cmd"
	}
	website := opts.Website
	if website == "" {
		website = DefaultWebsite
	}

	schema, err := schemaFor(version)
	if err != nil {
		span.SetStatus(codes.Error, "unsupported version")
		return nil, err
	}

	base, err := url.Parse(website)
	if err != nil {
		return nil, err
	}
	base = base.JoinPath(version)

	client := resty.New()
	client.SetTimeout(time.Second * 60)
	telemetry.InstrumentResty(client, "parsec/http", restyInstrumentOutput)

	c := &Client{
		Website: base,
		Http:    client,
		schema:  schema,
	}
	err = c.refreshForm(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to introspect query form")
		return nil, err
	}
	return c, nil
}

// schemaFor picks the form schema by the version segment. Versions compare
// lexicographically, which holds for the service's single-digit minors.
func schemaFor(version string) (SchemaVersion, error) {
	switch {
	case version == "cmd" || version >= "cmd_3":
		return SchemaCMD3, nil
	case version >= "cmd_2":
		return SchemaCMD2, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedVersion, version)
}

// Schema reports which form generation the client speaks.
func (c *Client) Schema() SchemaVersion {
	return c.schema
}

// refreshForm scrapes the live query form into the stored defaults and the
// options catalogue.
func (c *Client) refreshForm(ctx context.Context) error {
	res, err := c.Http.R().
		SetContext(ctx).
		Get(c.Website.String())
	if err != nil {
		return err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return err
	}

	defaults, options, err := inspectForm(doc)
	if err != nil {
		return err
	}
	c.defaults = defaults
	c.options = options
	return nil
}

// SetFormData replaces the scraped defaults wholesale with a captured form
// block (see ParseFormData). Escape hatch for when live introspection is
// undesirable or the service's form cannot be reached.
func (c *Client) SetFormData(text string) error {
	form, err := ParseFormData(text)
	if err != nil {
		return err
	}
	if form.Get("submit_form") == "" {
		form.Set("submit_form", "Submit")
	}
	c.defaults = form
	return nil
}

// Defaults returns the stored form defaults.
func (c *Client) Defaults() url.Values {
	return c.defaults
}

// Options returns the catalogue of form fields and their candidate values;
// the currently selected choice carries a " [x]" marker.
func (c *Client) Options() map[string][]string {
	return c.options
}

// IsochroneRequest holds the physical query parameters. Age/LogAge and
// Z/MeH are mutually exclusive pairs, exactly one member of each must be
// non-nil; a single element means a scalar query, two or more an evenly
// spaced range. Extra carries raw form field overrides which win over both
// the translated fields and the stored defaults.
type IsochroneRequest struct {
	Age          []float64 // linear age in years
	LogAge       []float64 // log10 age
	Z            []float64 // metal abundance
	MeH          []float64 // [M/H] relative to the solar reference
	ExtinctionAv float64   // total extinction in magnitudes
	Extra        map[string]string
}

// QueryIsochrones translates the physical parameters for the client's form
// schema, submits the query and parses the result into a table.
func (c *Client) QueryIsochrones(ctx context.Context, req IsochroneRequest) (*Table, error) {
	ctx, span := tracer.Start(ctx, "client:QueryIsochrones")
	defer span.End()

	fields, err := c.isochroneFields(req)
	if err != nil {
		span.SetStatus(codes.Error, "invalid parameters")
		return nil, err
	}
	return c.Query(ctx, fields)
}

// QueryIsochronesRaw is QueryIsochrones without table parsing, the decoded
// artifact text is returned as-is.
func (c *Client) QueryIsochronesRaw(ctx context.Context, req IsochroneRequest) (string, error) {
	ctx, span := tracer.Start(ctx, "client:QueryIsochronesRaw")
	defer span.End()

	fields, err := c.isochroneFields(req)
	if err != nil {
		span.SetStatus(codes.Error, "invalid parameters")
		return "", err
	}
	return c.QueryRaw(ctx, fields)
}

func (c *Client) isochroneFields(req IsochroneRequest) (map[string]string, error) {
	var fields map[string]string
	var err error
	switch c.schema {
	case SchemaCMD3:
		fields, err = buildFieldsCMD3(req)
	case SchemaCMD2:
		fields, err = buildFieldsCMD2(req, c.defaults)
	default:
		err = fmt.Errorf("%w: schema %d", ErrUnsupportedVersion, c.schema)
	}
	if err != nil {
		return nil, err
	}
	for k, v := range req.Extra {
		fields[k] = v
	}
	return fields, nil
}

// Query submits raw form fields merged over the stored defaults and parses
// the resolved artifact into a table.
func (c *Client) Query(ctx context.Context, fields map[string]string) (*Table, error) {
	out, err := c.QueryRaw(ctx, fields)
	if err != nil {
		return nil, err
	}
	return ReadTable(out)
}

// QueryRaw submits raw form fields merged over the stored defaults and
// returns the decoded output artifact without table parsing.
func (c *Client) QueryRaw(ctx context.Context, fields map[string]string) (string, error) {
	ctx, span := tracer.Start(ctx, "client:QueryRaw")
	defer span.End()

	form := url.Values{}
	for k, vs := range c.defaults {
		form[k] = append([]string(nil), vs...)
	}
	for k, v := range fields {
		form.Set(k, v)
	}

	res, err := c.Http.R().
		SetContext(ctx).
		SetFormDataFromValues(form).
		Post(c.Website.String())
	if err != nil {
		span.SetStatus(codes.Error, "failed to submit query form")
		return "", err
	}

	out, err := c.resolveResponse(ctx, res.Body())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to resolve response")
		return "", err
	}
	return out, nil
}
