package sheets

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"TradeLens/internal/domain/models"
	"TradeLens/internal/engine"
	pkghttp "TradeLens/pkg/http"
)

const defaultBaseURL = "https://sheets.googleapis.com"

// Client reads signal rows from Google Sheets through the v4 values API.
type Client struct {
	http    *pkghttp.Client
	baseURL string
	apiKey  string
}

// Option configures Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Used in tests.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// NewClient creates a Google Sheets client.
func NewClient(apiKey string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		http:    pkghttp.NewClient(pkghttp.WithTimeout(timeout)),
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type valuesResponse struct {
	Range  string  `json:"range"`
	Values [][]any `json:"values"`
}

type spreadsheetResponse struct {
	Properties struct {
		Title string `json:"title"`
	} `json:"properties"`
	Sheets []struct {
		Properties struct {
			SheetID int64  `json:"sheetId"`
			Title   string `json:"title"`
		} `json:"properties"`
	} `json:"sheets"`
}

// FetchRows pulls the worksheet identified by numeric GID. The values API
// addresses worksheets by title, so the GID is resolved through the
// spreadsheet metadata first.
func (c *Client) FetchRows(ctx context.Context, sheetID, worksheetGID string) (engine.RowSet, error) {
	meta, err := c.fetchMetadata(ctx, sheetID)
	if err != nil {
		return engine.RowSet{}, err
	}

	gid, err := strconv.ParseInt(worksheetGID, 10, 64)
	if err != nil {
		return engine.RowSet{}, fmt.Errorf("invalid worksheet gid %q: %w", worksheetGID, err)
	}

	var title string
	for _, sh := range meta.Sheets {
		if sh.Properties.SheetID == gid {
			title = sh.Properties.Title
			break
		}
	}
	if title == "" {
		return engine.RowSet{}, fmt.Errorf("worksheet gid %s not found in sheet %s", worksheetGID, sheetID)
	}

	return c.FetchWorksheet(ctx, sheetID, title)
}

// FetchWorksheet pulls a worksheet by title and converts it to a RowSet.
func (c *Client) FetchWorksheet(ctx context.Context, sheetID, worksheetName string) (engine.RowSet, error) {
	var resp valuesResponse
	err := c.http.SendAndParse(ctx, &pkghttp.RequestOptions{
		Method: pkghttp.MethodGet,
		URL: fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s",
			c.baseURL, url.PathEscape(sheetID), url.PathEscape(worksheetName)),
		QueryParams: url.Values{
			"key":               {c.apiKey},
			"valueRenderOption": {"UNFORMATTED_VALUE"},
		},
	}, &resp)
	if err != nil {
		return engine.RowSet{}, fmt.Errorf("fetch worksheet %s/%s: %w", sheetID, worksheetName, err)
	}

	return rowSetFromValues(resp.Values), nil
}

// SheetInfo returns spreadsheet title and worksheet names.
func (c *Client) SheetInfo(ctx context.Context, sheetID string) (models.SheetInfo, error) {
	meta, err := c.fetchMetadata(ctx, sheetID)
	if err != nil {
		return models.SheetInfo{}, err
	}

	info := models.SheetInfo{ID: sheetID, Title: meta.Properties.Title}
	for _, sh := range meta.Sheets {
		info.Worksheets = append(info.Worksheets, sh.Properties.Title)
	}
	return info, nil
}

func (c *Client) fetchMetadata(ctx context.Context, sheetID string) (spreadsheetResponse, error) {
	var resp spreadsheetResponse
	err := c.http.SendAndParse(ctx, &pkghttp.RequestOptions{
		Method: pkghttp.MethodGet,
		URL:    fmt.Sprintf("%s/v4/spreadsheets/%s", c.baseURL, url.PathEscape(sheetID)),
		QueryParams: url.Values{
			"key":    {c.apiKey},
			"fields": {"properties.title,sheets.properties(sheetId,title)"},
		},
	}, &resp)
	if err != nil {
		return spreadsheetResponse{}, fmt.Errorf("fetch sheet metadata %s: %w", sheetID, err)
	}
	return resp, nil
}

// rowSetFromValues converts the raw values grid into a RowSet. The first
// row is the header; header cells are kept verbatim, including stray
// whitespace, so downstream column resolution sees the source spelling.
// Short rows are padded with empty strings.
func rowSetFromValues(values [][]any) engine.RowSet {
	if len(values) == 0 {
		return engine.RowSet{}
	}

	header := make([]string, len(values[0]))
	for i, cell := range values[0] {
		header[i] = fmt.Sprint(cell)
	}

	rs := engine.RowSet{Columns: header}
	for _, raw := range values[1:] {
		row := make(engine.Row, len(header))
		for i, col := range header {
			if i < len(raw) {
				row[col] = raw[i]
			} else {
				row[col] = ""
			}
		}
		rs.Rows = append(rs.Rows, row)
	}
	return rs
}
