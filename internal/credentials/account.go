package credentials

import (
	"encoding/json"
	"net/url"
)

// Well-known Google endpoints injected when the secrets omit them.
const (
	DefaultType           = "service_account"
	DefaultAuthURI        = "https://accounts.google.com/o/oauth2/auth"
	DefaultTokenURI       = "https://oauth2.googleapis.com/token"
	DefaultAuthProvider   = "https://www.googleapis.com/oauth2/v1/certs"
	clientCertURLTemplate = "https://www.googleapis.com/robot/v1/metadata/x509/"
)

// ServiceAccount is the canonical credential shape expected by the Google
// auth libraries.
type ServiceAccount struct {
	Type                    string `json:"type"`
	ProjectID               string `json:"project_id,omitempty"`
	PrivateKeyID            string `json:"private_key_id"`
	PrivateKey              string `json:"private_key"`
	ClientEmail             string `json:"client_email"`
	ClientID                string `json:"client_id,omitempty"`
	AuthURI                 string `json:"auth_uri"`
	TokenURI                string `json:"token_uri"`
	AuthProviderX509CertURL string `json:"auth_provider_x509_cert_url"`
	ClientX509CertURL       string `json:"client_x509_cert_url"`
	UniverseDomain          string `json:"universe_domain,omitempty"`
}

// JSON returns the service-account key file form of s.
func (s ServiceAccount) JSON() ([]byte, error) {
	return json.Marshal(s)
}

func accountFromFields(f map[string]any) ServiceAccount {
	return ServiceAccount{
		Type:                    str(f, "type"),
		ProjectID:               str(f, "project_id"),
		PrivateKeyID:            str(f, "private_key_id"),
		PrivateKey:              str(f, "private_key"),
		ClientEmail:             str(f, "client_email"),
		ClientID:                str(f, "client_id"),
		AuthURI:                 str(f, "auth_uri"),
		TokenURI:                str(f, "token_uri"),
		AuthProviderX509CertURL: str(f, "auth_provider_x509_cert_url"),
		ClientX509CertURL:       str(f, "client_x509_cert_url"),
		UniverseDomain:          str(f, "universe_domain"),
	}
}

// withDefaults fills the issuer, token and certificate endpoints.
func (s ServiceAccount) withDefaults() ServiceAccount {
	if s.Type == "" {
		s.Type = DefaultType
	}
	if s.AuthURI == "" {
		s.AuthURI = DefaultAuthURI
	}
	if s.TokenURI == "" {
		s.TokenURI = DefaultTokenURI
	}
	if s.AuthProviderX509CertURL == "" {
		s.AuthProviderX509CertURL = DefaultAuthProvider
	}
	if s.ClientX509CertURL == "" && s.ClientEmail != "" {
		s.ClientX509CertURL = clientCertURLTemplate + url.PathEscape(s.ClientEmail)
	}
	return s
}

func str(f map[string]any, key string) string {
	s, _ := f[key].(string)
	return s
}
