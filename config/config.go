// Copyright 2020 Carleton University Library.
// All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE.txt file.

// Package config provides the base URLs and credentials used to call WorldCat and HathiTrust.
package config

import (
	"flag"
	"fmt"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"
)

// Services which have a base URI.
const (
	WorldCat   = "worldcat"
	HathiTrust = "hathitrust"
)

// WorldCat API protocol generations.
const (
	// ProtocolV1 is the legacy key-based WorldCat Search API, which returns XML.
	ProtocolV1 = "v1"
	// ProtocolV2 is the WorldCat Search API v2, which returns JSON and requires an OAuth bearer token.
	ProtocolV2 = "v2"
)

// Defaults used when nothing else is configured.
const (
	DefaultWorldCatV1BaseURL = "https://www.worldcat.org/webservices/"
	DefaultWorldCatV2BaseURL = "https://americas.discovery.api.oclc.org/worldcat/search/v2/"
	DefaultOCLCTokenURL      = "https://oauth.oclc.org/token"
	DefaultHathiTrustBaseURL = "https://catalog.hathitrust.org/api/"
	DefaultProtocol          = ProtocolV2
)

// Environment variables read when a value isn't set any other way.
const (
	EnvPrefix            = "LIT_"
	EnvWorldCatAPIKey    = EnvPrefix + "WORLDCAT_API_KEY"
	EnvWorldCatAPISecret = EnvPrefix + "WORLDCAT_API_SECRET"
	EnvWorldCatBaseURL   = EnvPrefix + "WORLDCAT_BASE_URL"
	EnvWorldCatProtocol  = EnvPrefix + "WORLDCAT_PROTOCOL"
	EnvOCLCTokenURL      = EnvPrefix + "OCLC_TOKEN_URL"
	EnvHathiTrustBaseURL = EnvPrefix + "HATHITRUST_BASE_URL"
)

// Provider supplies configuration to the components which call external services.
type Provider interface {
	// BaseURI returns the base URL for the WorldCat or HathiTrust service.
	BaseURI(service string) string
	// Protocol returns the WorldCat protocol generation, ProtocolV1 or ProtocolV2.
	Protocol() string
	// APIKey returns the WorldCat API key (the wskey in v1, the client ID in v2).
	APIKey() string
	// APISecret returns the WorldCat API secret (v2 only).
	APISecret() string
	// TokenURI returns the OCLC OAuth token endpoint.
	TokenURI() string
}

// Config is a Provider backed by plain values, set from flags or a YAML file.
// Empty values fall back to the package defaults.
type Config struct {
	WorldCatBaseURL   string `yaml:"worldcat_base_url"`
	WorldCatProtocol  string `yaml:"worldcat_protocol"`
	WorldCatAPIKey    string `yaml:"worldcat_api_key"`
	WorldCatAPISecret string `yaml:"worldcat_api_secret"`
	OCLCTokenURL      string `yaml:"oclc_token_url"`
	HathiTrustBaseURL string `yaml:"hathitrust_base_url"`
}

// RegisterFlags binds the fields of c to flags on fs.
// The flag names, uppercased and prefixed with EnvPrefix, are the environment variable names.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.WorldCatAPIKey, "worldcat_api_key", "", "The WorldCat API key (WSKey).")
	fs.StringVar(&c.WorldCatAPISecret, "worldcat_api_secret", "", "The WorldCat API secret. Required for the v2 protocol.")
	fs.StringVar(&c.WorldCatBaseURL, "worldcat_base_url", "", "The WorldCat API base URL. Defaults to the base URL for the protocol.")
	fs.StringVar(&c.WorldCatProtocol, "worldcat_protocol", "", "The WorldCat API protocol, v1 (XML, key) or v2 (JSON, OAuth). Default "+DefaultProtocol+".")
	fs.StringVar(&c.OCLCTokenURL, "oclc_token_url", "", "The OCLC OAuth token URL. Default "+DefaultOCLCTokenURL+".")
	fs.StringVar(&c.HathiTrustBaseURL, "hathitrust_base_url", "", "The HathiTrust Bibliographic API base URL. Default "+DefaultHathiTrustBaseURL+".")
}

// LoadFile reads a YAML config file.
func LoadFile(path string) (c Config, err error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("reading config file failed: %w", err)
	}
	err = yaml.Unmarshal(b, &c)
	if err != nil {
		return c, fmt.Errorf("parsing config file %v failed: %w", path, err)
	}
	return c, nil
}

// Merge fills the empty fields of c with the values from other.
func (c *Config) Merge(other Config) {
	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&c.WorldCatBaseURL, other.WorldCatBaseURL)
	fill(&c.WorldCatProtocol, other.WorldCatProtocol)
	fill(&c.WorldCatAPIKey, other.WorldCatAPIKey)
	fill(&c.WorldCatAPISecret, other.WorldCatAPISecret)
	fill(&c.OCLCTokenURL, other.OCLCTokenURL)
	fill(&c.HathiTrustBaseURL, other.HathiTrustBaseURL)
}

// Validate checks the protocol and that every URL parses.
func (c Config) Validate() error {
	return validate(c)
}

// BaseURI implements Provider.
func (c Config) BaseURI(service string) string {
	switch service {
	case WorldCat:
		return worldCatBaseURL(c.WorldCatBaseURL, c.Protocol())
	case HathiTrust:
		return orDefault(c.HathiTrustBaseURL, DefaultHathiTrustBaseURL)
	}
	return ""
}

// Protocol implements Provider.
func (c Config) Protocol() string { return orDefault(c.WorldCatProtocol, DefaultProtocol) }

// APIKey implements Provider.
func (c Config) APIKey() string { return c.WorldCatAPIKey }

// APISecret implements Provider.
func (c Config) APISecret() string { return c.WorldCatAPISecret }

// TokenURI implements Provider.
func (c Config) TokenURI() string { return orDefault(c.OCLCTokenURL, DefaultOCLCTokenURL) }

func validate(p Provider) error {
	if p.Protocol() != ProtocolV1 && p.Protocol() != ProtocolV2 {
		return fmt.Errorf("unknown WorldCat protocol %q, expected %v or %v", p.Protocol(), ProtocolV1, ProtocolV2)
	}
	for name, raw := range map[string]string{
		"WorldCat base URL":   p.BaseURI(WorldCat),
		"HathiTrust base URL": p.BaseURI(HathiTrust),
		"OCLC token URL":      p.TokenURI(),
	} {
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("%v is not a valid URL: %w", name, err)
		}
		if u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%v %q must be an absolute URL", name, raw)
		}
	}
	return nil
}

func worldCatBaseURL(configured, protocol string) string {
	if configured != "" {
		return configured
	}
	if protocol == ProtocolV1 {
		return DefaultWorldCatV1BaseURL
	}
	return DefaultWorldCatV2BaseURL
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
