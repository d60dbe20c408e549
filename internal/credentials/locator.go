package credentials

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dmitrijs2005/interviewkeeper/internal/common"
)

var (
	spreadsheetURL = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9_-]+)`)
	spreadsheetID  = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

// SpreadsheetID extracts the spreadsheet id from a locator, which is either
// a full docs.google.com URL or a bare id.
func SpreadsheetID(locator string) (string, error) {
	locator = strings.TrimSpace(locator)
	if m := spreadsheetURL.FindStringSubmatch(locator); m != nil {
		return m[1], nil
	}
	if spreadsheetID.MatchString(locator) {
		return locator, nil
	}
	return "", common.ConfigError("parse locator", fmt.Errorf("%w: unrecognized spreadsheet locator %q",
		common.ErrInvalidCredentials, locator))
}
