package credentials

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/interviewkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Layout records which secret layout Resolve found.
type Layout int

const (
	LayoutFlat Layout = iota + 1
	LayoutNested
	LayoutEncoded
)

func (l Layout) String() string {
	switch l {
	case LayoutFlat:
		return "flat"
	case LayoutNested:
		return "nested"
	case LayoutEncoded:
		return "encoded"
	default:
		return "unknown"
	}
}

// Namespaces that may hold the real credential fields, checked in order.
var namespaces = [][]string{
	{"connections", "gsheets"},
	{"gsheets"},
	{"gcp_service_account"},
}

// Fields that may carry the service-account key material as JSON text or as
// a nested map.
var keyMaterialFields = []string{"service_account_info", "service_account", "credentials_json", "credentials"}

// Fields that may carry the spreadsheet locator.
var locatorFields = []string{"spreadsheet", "spreadsheet_url", "spreadsheet_id"}

// Resolved is the outcome of a successful resolution.
type Resolved struct {
	Credential ServiceAccount
	Locator    string
	Layout     Layout
}

// Resolve normalizes secrets into a ServiceAccount plus locator. The input is
// not modified, and resolving an already canonical map yields the same result.
//
// A missing key id, private key, client email or locator, or a private key
// that is not a valid RSA PEM block, is reported as ErrInvalidCredentials
// wrapped in a configuration error.
func Resolve(secrets map[string]any) (*Resolved, error) {
	const op = "resolve credentials"

	fields, layout := unwrap(secrets)

	creds, encoded := keyMaterial(fields)
	if encoded {
		layout = LayoutEncoded
	}

	creds = copyMap(creds)
	locator := takeLocator(creds)
	if locator == "" {
		locator = findLocator(fields)
	}
	if locator == "" {
		locator = findLocator(secrets)
	}

	account := accountFromFields(creds)
	account.PrivateKey = fixNewlines(account.PrivateKey)
	account = account.withDefaults()

	var missing []string
	if account.PrivateKeyID == "" {
		missing = append(missing, "private_key_id")
	}
	if account.PrivateKey == "" {
		missing = append(missing, "private_key")
	}
	if account.ClientEmail == "" {
		missing = append(missing, "client_email")
	}
	if locator == "" {
		missing = append(missing, "spreadsheet")
	}
	if len(missing) > 0 {
		return nil, common.ConfigError(op, fmt.Errorf("%w: missing %s (layout %s)",
			common.ErrInvalidCredentials, strings.Join(missing, ", "), layout))
	}

	if _, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(account.PrivateKey)); err != nil {
		return nil, common.ConfigError(op, fmt.Errorf("%w: private_key: %v", common.ErrInvalidCredentials, err))
	}

	return &Resolved{Credential: account, Locator: strings.TrimSpace(locator), Layout: layout}, nil
}

// unwrap returns the map holding the credential fields.
func unwrap(secrets map[string]any) (map[string]any, Layout) {
	for _, path := range namespaces {
		if inner, ok := lookupMap(secrets, path); ok {
			return inner, LayoutNested
		}
	}
	return secrets, LayoutFlat
}

// keyMaterial returns the credential fields named by a key-material entry of
// fields. A string value that does not parse as a JSON object falls back to
// fields itself.
func keyMaterial(fields map[string]any) (map[string]any, bool) {
	for _, name := range keyMaterialFields {
		switch v := fields[name].(type) {
		case string:
			var m map[string]any
			if err := json.Unmarshal([]byte(v), &m); err == nil && m != nil {
				return m, true
			}
			return fields, false
		case map[string]any:
			return v, false
		}
	}
	return fields, false
}

func takeLocator(creds map[string]any) string {
	locator := findLocator(creds)
	for _, name := range locatorFields {
		delete(creds, name)
	}
	return locator
}

func findLocator(m map[string]any) string {
	for _, name := range locatorFields {
		if s := str(m, name); strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

// fixNewlines turns escaped "\n" sequences into real newlines. Keys pasted
// into TOML or environment variables usually arrive escaped, and signing
// fails with an invalid-signature error unless they are restored.
func fixNewlines(key string) string {
	key = strings.ReplaceAll(key, `\r\n`, "\n")
	return strings.ReplaceAll(key, `\n`, "\n")
}

func lookupMap(m map[string]any, path []string) (map[string]any, bool) {
	cur := m
	for _, p := range path {
		next, ok := cur[p].(map[string]any)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

func copyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
