package e2etest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	neturl "net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/myrjola/soverain/internal/errors"
)

// Client drives the web front end like a browser would: it keeps cookies and submits forms with their CSRF token.
type Client struct {
	client *http.Client
	url    string
}

// NewClient creates a cookie-keeping HTTP client for the site at url.
func NewClient(url string) (*Client, error) {
	jar, err := newUnsafeCookieJar()
	if err != nil {
		return nil, errors.Wrap(err, "create unsafe cookie jar")
	}
	return &Client{
		client: &http.Client{Jar: jar},
		url:    url,
	}, nil
}

// WaitForReady calls the specified endpoint until it gets a HTTP 200 Success
// response or until the context is cancelled or the 1-second timeout is reached.
func (c *Client) WaitForReady(ctx context.Context, urlPath string) error {
	timeout := 1 * time.Second
	startTime := time.Now()
	for {
		resp, err := c.Get(ctx, urlPath)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "context cancelled")
		default:
			if time.Since(startTime) >= timeout {
				return errors.New("timeout waiting for endpoint to be ready", slog.String("path", urlPath))
			}
			time.Sleep(100 * time.Millisecond) //nolint:mnd // 100ms
		}
	}
}

// Get fetches a URL and returns the response.
func (c *Client) Get(ctx context.Context, urlPath string) (*http.Response, error) {
	var (
		err  error
		req  *http.Request
		resp *http.Response
	)
	if req, err = http.NewRequestWithContext(ctx, http.MethodGet, c.url+urlPath, nil); err != nil {
		return nil, errors.Wrap(err, "create request")
	}
	if resp, err = c.client.Do(req); err != nil {
		return nil, errors.Wrap(err, "do request")
	}
	return resp, nil
}

// GetDoc fetches a URL and returns a goquery document. Any other status than 200 OK is an error.
func (c *Client) GetDoc(ctx context.Context, urlPath string) (*goquery.Document, error) {
	resp, err := c.Get(ctx, urlPath)
	if err != nil {
		return nil, errors.Wrap(err, "client get")
	}
	return parseDocument(resp, http.StatusOK)
}

// Submit fills the form with action formActionURLPath found on the page at formURLPath and posts it.
//
// The CSRF token is taken from the form; values supply the other fields. The caller closes the response body.
func (c *Client) Submit(
	ctx context.Context,
	formURLPath string,
	formActionURLPath string,
	values neturl.Values,
) (*http.Response, error) {
	var (
		doc *goquery.Document
		err error
	)
	if doc, err = c.GetDoc(ctx, formURLPath); err != nil {
		return nil, errors.Wrap(err, "get document", slog.String("path", formURLPath))
	}

	var csrfToken string
	if csrfToken, err = CSRFToken(doc, formActionURLPath); err != nil {
		return nil, errors.Wrap(err, "extract CSRF token")
	}
	return c.Post(ctx, formActionURLPath, csrfToken, values)
}

// Post posts values together with csrfToken as a form to urlPath. The caller closes the response body.
func (c *Client) Post(ctx context.Context, urlPath string, csrfToken string, values neturl.Values) (*http.Response, error) {
	formData := neturl.Values{}
	for k, vs := range values {
		formData[k] = append([]string(nil), vs...)
	}
	formData.Set("csrf_token", csrfToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+urlPath, strings.NewReader(formData.Encode()))
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	var resp *http.Response
	if resp, err = c.client.Do(req); err != nil {
		return nil, errors.Wrap(err, "do request")
	}
	return resp, nil
}

// SubmitForm submits a form like Submit and returns the document it leads to, following redirects.
func (c *Client) SubmitForm(
	ctx context.Context,
	formURLPath string,
	formActionURLPath string,
	values neturl.Values,
) (*goquery.Document, error) {
	resp, err := c.Submit(ctx, formURLPath, formActionURLPath, values)
	if err != nil {
		return nil, err
	}
	return parseDocument(resp, http.StatusOK)
}

// SelectProfile creates or selects the named profile on the dashboard and returns the dashboard.
func (c *Client) SelectProfile(ctx context.Context, name, goal string) (*goquery.Document, error) {
	doc, err := c.SubmitForm(ctx, "/", "/profile", neturl.Values{"name": {name}, "goal": {goal}})
	if err != nil {
		return nil, errors.Wrap(err, "submit profile form", slog.String("profile", name))
	}
	return doc, nil
}

// CSRFToken extracts the CSRF token of the form with action formActionURLPath.
func CSRFToken(doc *goquery.Document, formActionURLPath string) (string, error) {
	formSelector := fmt.Sprintf("form[action='%s']", formActionURLPath)
	form := doc.Find(formSelector)
	csrfToken, ok := form.Find("input[name=csrf_token]").Attr("value")
	if !ok {
		return "", errors.New("csrf_token not found in form", slog.String("form", formSelector))
	}
	return csrfToken, nil
}

func parseDocument(resp *http.Response, wantStatus int) (*goquery.Document, error) {
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != wantStatus {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512)) //nolint:mnd // enough to explain the failure
		return nil, errors.New("unexpected status code",
			slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
	}
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "create document from reader")
	}
	return doc, nil
}
