// Package gsheets implements the sheet contract on top of the Google Sheets
// v4 REST API, authenticating with a service-account credential.
package gsheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/interviewkeeper/internal/common"
	"github.com/dmitrijs2005/interviewkeeper/internal/credentials"
	"github.com/dmitrijs2005/interviewkeeper/internal/sheet"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Connector builds Sheets handles from cached credentials.
type Connector struct {
	creds *credentials.Cache
	opts  []option.ClientOption

	// Locator, when set, replaces the spreadsheet named in the secrets.
	Locator string
}

// NewConnector returns a Connector. Extra client options are appended after
// the authenticated HTTP client, e.g. option.WithEndpoint for a proxy.
func NewConnector(creds *credentials.Cache, opts ...option.ClientOption) *Connector {
	return &Connector{creds: creds, opts: opts}
}

// Connect resolves the credential, authenticates and checks that the
// spreadsheet is reachable.
func (c *Connector) Connect(ctx context.Context) (sheet.Handle, error) {
	res, err := c.creds.Get()
	if err != nil {
		return nil, err
	}

	locator := res.Locator
	if c.Locator != "" {
		locator = c.Locator
	}
	id, err := credentials.SpreadsheetID(locator)
	if err != nil {
		return nil, err
	}

	blob, err := res.Credential.JSON()
	if err != nil {
		return nil, fmt.Errorf("encode credential: %w", err)
	}

	conf, err := google.JWTConfigFromJSON(blob, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidCredentials, err)
	}

	// The handle outlives the connecting request, so token refreshes must not
	// be tied to its cancellation.
	client := conf.Client(context.WithoutCancel(ctx))

	h, err := NewHandle(ctx, id, append([]option.ClientOption{option.WithHTTPClient(client)}, c.opts...)...)
	if err != nil {
		return nil, err
	}
	h.account = res.Credential.ClientEmail

	if _, err := h.titles(ctx); err != nil {
		return nil, err
	}
	return h, nil
}

// Handle is a connection to one spreadsheet.
type Handle struct {
	svc     *sheets.Service
	id      string
	account string
}

// NewHandle creates a handle for spreadsheet id using opts as-is.
func NewHandle(ctx context.Context, id string, opts ...option.ClientOption) (*Handle, error) {
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &Handle{svc: svc, id: id}, nil
}

// SelectSheet reads the spreadsheet's tab titles and returns the tab whose
// title matches name exactly.
func (h *Handle) SelectSheet(ctx context.Context, name string) (sheet.Sheet, error) {
	titles, err := h.titles(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range titles {
		if t == name {
			return &Sheet{h: h, title: t}, nil
		}
	}
	return nil, fmt.Errorf("%w: %q (available: %v)", common.ErrSheetNotFound, name, titles)
}

func (h *Handle) Close() error { return nil }

func (h *Handle) titles(ctx context.Context) ([]string, error) {
	ss, err := h.svc.Spreadsheets.Get(h.id).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return nil, h.apiError(err)
	}
	titles := make([]string, 0, len(ss.Sheets))
	for _, s := range ss.Sheets {
		if s.Properties != nil {
			titles = append(titles, s.Properties.Title)
		}
	}
	return titles, nil
}

// apiError maps "not found" and "forbidden" answers to configuration
// sentinels; everything else is returned wrapped in ErrUnavailable.
func (h *Handle) apiError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusNotFound:
			return fmt.Errorf("%w: spreadsheet %s: %v", common.ErrNotFound, h.id, err)
		case http.StatusForbidden:
			return fmt.Errorf("%w: spreadsheet %s is not shared with %s: %v",
				common.ErrInvalidCredentials, h.id, h.account, err)
		}
	}
	return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
}

// Sheet is one tab of a spreadsheet.
type Sheet struct {
	h     *Handle
	title string
}

func (s *Sheet) Title() string { return s.title }

func (s *Sheet) Rows(ctx context.Context) ([][]string, error) {
	return s.read(ctx, sheet.QuoteTitle(s.title))
}

func (s *Sheet) Header(ctx context.Context) ([]string, error) {
	rows, err := s.read(ctx, sheet.QuoteTitle(s.title)+"!1:1")
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (s *Sheet) read(ctx context.Context, rng string) ([][]string, error) {
	vr, err := s.h.svc.Spreadsheets.Values.Get(s.h.id, rng).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).Do()
	if err != nil {
		return nil, s.h.apiError(err)
	}

	rows := make([][]string, len(vr.Values))
	for i, r := range vr.Values {
		row := make([]string, len(r))
		for j, v := range r {
			if v != nil {
				row[j] = fmt.Sprint(v)
			}
		}
		rows[i] = row
	}
	return rows, nil
}

// UpdateCell writes value as raw text so answers are never parsed as
// formulas or numbers.
func (s *Sheet) UpdateCell(ctx context.Context, row, col int, value string) error {
	ref := sheet.CellRef(s.title, row, col)
	_, err := s.h.svc.Spreadsheets.Values.Update(s.h.id, ref, &sheets.ValueRange{
		Values: [][]interface{}{{value}},
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update %s: %w", ref, err)
	}
	return nil
}
