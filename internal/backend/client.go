// Package backend is the typed client for the rental REST backend.
// Every operation is a single HTTP call authorized with the caller's bearer token.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"rentalhub/internal/pkg/upload"
)

const maxBodySize = 32 << 20

type Client struct {
	baseURL   string
	http      *http.Client
	landlords *cache.Cache
}

// New builds a client for baseURL (including the /api prefix).
// landlordTTL bounds how long room -> landlord lookups are reused.
func New(baseURL string, timeout, landlordTTL time.Duration) *Client {
	return NewWithHTTPClient(baseURL, &http.Client{Timeout: timeout}, landlordTTL)
}

func NewWithHTTPClient(baseURL string, hc *http.Client, landlordTTL time.Duration) *Client {
	if landlordTTL <= 0 {
		landlordTTL = 10 * time.Minute
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      hc,
		landlords: cache.New(landlordTTL, 2*landlordTTL),
	}
}

type request struct {
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
	fallback    string
}

type rawResponse struct {
	status int
	header http.Header
	body   []byte
}

func (c *Client) send(ctx context.Context, token string, r request) (*rawResponse, error) {
	target := c.baseURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, r.body)
	if err != nil {
		return nil, fmt.Errorf("build request %s %s: %w", r.method, r.path, err)
	}
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	req.Header.Set("Accept", "application/json, text/plain, */*")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{Status: http.StatusBadGateway, Message: r.fallback, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &Error{Status: http.StatusBadGateway, Message: r.fallback, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{
			Status:  resp.StatusCode,
			Message: parseErrorMessage(body, r.fallback),
			Body:    string(body),
		}
	}

	return &rawResponse{status: resp.StatusCode, header: resp.Header, body: body}, nil
}

// doJSON sends in as JSON (when non-nil) and decodes the response into out (when non-nil).
func (c *Client) doJSON(ctx context.Context, token, method, path string, query url.Values, in, out any, fallback string) error {
	r := request{method: method, path: path, query: query, fallback: fallback}
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", path, err)
		}
		r.body = bytes.NewReader(payload)
		r.contentType = "application/json"
	}

	resp, err := c.send(ctx, token, r)
	if err != nil {
		return err
	}
	return decodeBody(resp.body, out, fallback)
}

// Part is one multipart section.
type Part struct {
	Name        string
	Filename    string
	ContentType string
	Data        []byte
}

// JSONPart encodes v as an application/json part.
func JSONPart(name string, v any) (Part, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Part{}, err
	}
	return Part{Name: name, Filename: name + ".json", ContentType: "application/json", Data: data}, nil
}

// StringPart is a plain form field.
func StringPart(name, value string) Part {
	return Part{Name: name, Data: []byte(value)}
}

// ImagePart wraps a checked image. A nil image yields ok=false.
func ImagePart(name string, img *upload.Image) (Part, bool) {
	if img == nil {
		return Part{}, false
	}
	return Part{Name: name, Filename: img.Filename, ContentType: img.ContentType, Data: img.Data}, true
}

func (c *Client) doMultipart(ctx context.Context, token, method, path string, parts []Part, out any, fallback string) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, p := range parts {
		h := make(textproto.MIMEHeader)
		disposition := fmt.Sprintf(`form-data; name="%s"`, escapeQuotes(p.Name))
		if p.Filename != "" {
			disposition += fmt.Sprintf(`; filename="%s"`, escapeQuotes(p.Filename))
		}
		h.Set("Content-Disposition", disposition)
		if p.ContentType != "" {
			h.Set("Content-Type", p.ContentType)
		}
		pw, err := w.CreatePart(h)
		if err != nil {
			return fmt.Errorf("create part %s: %w", p.Name, err)
		}
		if _, err := pw.Write(p.Data); err != nil {
			return fmt.Errorf("write part %s: %w", p.Name, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close multipart: %w", err)
	}

	resp, err := c.send(ctx, token, request{
		method:      method,
		path:        path,
		body:        &buf,
		contentType: w.FormDataContentType(),
		fallback:    fallback,
	})
	if err != nil {
		return err
	}
	return decodeBody(resp.body, out, fallback)
}

// Download is a binary response passed through to the caller.
type Download struct {
	ContentType        string
	ContentDisposition string
	Body               []byte
}

func (c *Client) download(ctx context.Context, token, path string, query url.Values, fallback string) (*Download, error) {
	resp, err := c.send(ctx, token, request{method: http.MethodGet, path: path, query: query, fallback: fallback})
	if err != nil {
		return nil, err
	}
	ct := resp.header.Get("Content-Type")
	if ct == "" {
		ct = "application/octet-stream"
	}
	return &Download{
		ContentType:        ct,
		ContentDisposition: resp.header.Get("Content-Disposition"),
		Body:               resp.body,
	}, nil
}

// decodeBody accepts JSON, or plain text when out is *string.
func decodeBody(body []byte, out any, fallback string) error {
	if out == nil {
		return nil
	}
	trimmed := bytes.TrimSpace(body)

	if s, ok := out.(*string); ok {
		if len(trimmed) > 0 && trimmed[0] == '"' {
			if err := json.Unmarshal(trimmed, s); err == nil {
				return nil
			}
		}
		if len(trimmed) > 0 && trimmed[0] == '{' {
			var obj map[string]json.RawMessage
			if err := json.Unmarshal(trimmed, &obj); err == nil {
				for _, key := range []string{"imageUrl", "url", "message"} {
					if v := firstString(obj[key]); v != "" {
						*s = v
						return nil
					}
				}
			}
		}
		*s = string(trimmed)
		return nil
	}

	if len(trimmed) == 0 {
		return nil
	}
	if err := json.Unmarshal(trimmed, out); err != nil {
		return &Error{Status: http.StatusBadGateway, Message: fallback, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func escapeQuotes(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}

func pageQuery(page, size int) url.Values {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = 10
	}
	return url.Values{
		"page": {fmt.Sprint(page)},
		"size": {fmt.Sprint(size)},
	}
}

func seg(s string) string {
	return url.PathEscape(s)
}
