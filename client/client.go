package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/cheddargetter/logging"
)

// Request describes one API call.
//
// Code may hold either a server-assigned UUID or a caller-assigned code;
// the transport tells them apart. Field keys are local snake_case names and
// are renamed to camelCase on the wire.
type Request struct {
	Path            string
	Code            string
	ItemCode        string
	ProductCode     string
	OmitProductCode bool
	Fields          map[string]any
}

type Client struct {
	config     Config
	httpClient *http.Client
	logger     logging.Logger
	metrics    *Metrics
}

type Option func(*Client)

// WithHTTPClient swaps the underlying HTTP client (proxies, custom TLS, tests).
// The request deadline still comes from Config.Timeout.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// New validates cfg and returns a ready client. Empty BaseURL and Timeout
// fall back to the defaults.
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		config:     cfg,
		httpClient: &http.Client{},
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ProductCode returns the default product code requests are scoped to.
func (c *Client) ProductCode() string {
	return c.config.ProductCode
}

// Do sends req and returns the root element of the XML reply.
func (c *Client) Do(ctx context.Context, req Request) (*etree.Element, error) {
	endpoint, form, err := c.buildRequest(req)
	if err != nil {
		return nil, err
	}

	label := "/" + strings.Trim(req.Path, "/") + "/"
	log := c.logger.With("path", label)

	started := time.Now()
	root, err := c.send(ctx, endpoint, form)
	c.metrics.observe(label, started, err)

	if err != nil {
		log.Warn(ctx, "request failed", "error", err, "duration", time.Since(started))
		return nil, err
	}
	log.Debug(ctx, "request completed", "root", root.Tag, "duration", time.Since(started))
	return root, nil
}

// buildRequest assembles the endpoint URL and the form body.
func (c *Client) buildRequest(req Request) (string, url.Values, error) {
	path := strings.Trim(req.Path, "/")
	endpoint := strings.TrimRight(c.config.BaseURL, "/") + "/xml/" + path

	fields := make(map[string]any, len(req.Fields)+1)
	for k, v := range req.Fields {
		fields[k] = v
	}

	if req.Code != "" {
		creating := strings.HasSuffix(path, "new")
		isID := IsUUID(req.Code)
		switch {
		case creating && isID:
			return "", nil, fmt.Errorf("%w: cannot send an ID for an object creation request", ErrInvalidArgument)
		case creating:
			fields["code"] = req.Code
		case isID:
			endpoint += "/id/" + url.PathEscape(req.Code)
		default:
			endpoint += "/code/" + url.PathEscape(req.Code)
		}
	}

	if req.ItemCode != "" {
		endpoint += "/itemCode/" + url.PathEscape(req.ItemCode)
	}

	if !req.OmitProductCode {
		productCode := req.ProductCode
		if productCode == "" {
			productCode = c.config.ProductCode
		}
		if productCode == "" {
			return "", nil, fmt.Errorf("%w: product code is not set", ErrConfiguration)
		}
		endpoint += "/productCode/" + url.PathEscape(productCode) + "/"
	}

	form := make(url.Values, len(fields))
	for k, v := range fields {
		form.Set(ToCamelCase(k), FormatValue(v))
	}
	return endpoint, form, nil
}

func (c *Client) send(ctx context.Context, endpoint string, form url.Values) (*etree.Element, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Accept", "application/xml")
	httpReq.SetBasicAuth(c.config.Username, c.config.Password)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, c.networkError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.networkError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{
			Kind:       kindForStatus(resp.StatusCode),
			Message:    errorMessage(body),
			StatusCode: resp.StatusCode,
			Body:       body,
			Response:   resp,
		}
	}

	root, err := parseXML(body)
	if err != nil {
		return nil, &Error{
			Kind:       ErrUnexpectedResponse,
			Message:    "the server sent back something that wasn't valid XML",
			StatusCode: resp.StatusCode,
			Body:       body,
			Response:   resp,
		}
	}
	if root.Tag == "error" {
		return nil, &Error{
			Kind:       ErrUnexpectedResponse,
			Message:    strings.TrimSpace(root.Text()),
			StatusCode: resp.StatusCode,
			Body:       body,
			Response:   resp,
		}
	}
	return root, nil
}

func (c *Client) networkError(err error) error {
	var nerr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &nerr) && nerr.Timeout()) {
		return &Error{Kind: ErrTimeout, Message: fmt.Sprintf("waited %s", c.config.Timeout)}
	}
	return &Error{Kind: ErrConnection, Message: err.Error()}
}

func parseXML(body []byte) (*etree.Element, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return nil, err
	}
	root := doc.Root()
	if root == nil {
		return nil, errors.New("document has no root element")
	}
	return root, nil
}

// errorMessage pulls the human-readable text out of an <error> body.
func errorMessage(body []byte) string {
	root, err := parseXML(body)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(root.Text())
}

// IsUUID reports whether s has the canonical 8-4-4-4-12 lowercase hex
// shape. Uppercase UUID-like strings are routed as codes.
func IsUUID(s string) bool {
	if len(s) != 36 || s != strings.ToLower(s) {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// FormatValue renders a field value for a form body.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
