package types

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	caerrors "github.com/miniconomy2025/ca/errors"
	"github.com/miniconomy2025/ca/utils"
)

const (
	// DefaultConfigFileName is the roster file looked up when no --config flag is given.
	DefaultConfigFileName = "teams.yml"
	// DefaultCertDir is the base output directory for all generated artifacts.
	DefaultCertDir = "certs"
	// DefaultKeySize is the RSA key size in bits.
	DefaultKeySize = 2048
	// DefaultValidityDays is the validity period of all issued certificates in days.
	DefaultValidityDays = 1000
	// RootCAName is the label used as OU and CN of the root CA certificate.
	RootCAName = "RootCA"
)

// Team is one roster entry: a unique name and the DNS-style subject name
// used as the certificate CN.
type Team struct {
	Name       string `yaml:"name"`
	CommonName string `yaml:"common_name"`
}

// DNProfile holds the distinguished name fields shared by every issued certificate.
type DNProfile struct {
	Country      string `yaml:"country"`
	Province     string `yaml:"province"`
	Locality     string `yaml:"locality"`
	Organization string `yaml:"organization"`
}

// Config is the static configuration of a provisioning run.
// Teams keep their file order; the 1-based position of a team in the list
// becomes the serial number of its certificates.
type Config struct {
	KeySize        int       `yaml:"key_size,omitempty"`
	ValidityDays   int       `yaml:"validity_days,omitempty"`
	CertDir        string    `yaml:"cert_dir,omitempty"`
	ExtensionsFile string    `yaml:"extensions_file,omitempty"`
	DN             DNProfile `yaml:"dn"`
	Teams          []Team    `yaml:"teams"`

	// Extensions is the spec resolved from ExtensionsFile at load time.
	// It stays nil when no file is configured or the configured file is absent.
	Extensions *ExtensionsSpec `yaml:"-"`
}

// LoadConfig reads the roster file, applies defaults, verifies the result and
// resolves the optional extensions file.
func LoadConfig(file string) (*Config, error) {
	b, err := utils.ReadFileContent(file)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	err = yaml.UnmarshalStrict(b, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", file, err)
	}

	cfg.applyDefaults()

	err = cfg.verify()
	if err != nil {
		return nil, err
	}

	err = cfg.resolveExtensions()
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validity returns the certificate validity period as a duration.
func (c *Config) Validity() time.Duration {
	return time.Duration(c.ValidityDays) * 24 * time.Hour
}

func (c *Config) applyDefaults() {
	if c.KeySize == 0 {
		c.KeySize = DefaultKeySize
	}
	if c.ValidityDays == 0 {
		c.ValidityDays = DefaultValidityDays
	}
	if c.CertDir == "" {
		c.CertDir = DefaultCertDir
	}
}

func (c *Config) verify() error {
	if len(c.Teams) == 0 {
		return fmt.Errorf("%w: no teams defined", caerrors.ErrIncorrectInput)
	}

	seen := map[string]struct{}{}
	for _, t := range c.Teams {
		if t.Name == "" {
			return fmt.Errorf("%w: team with empty name", caerrors.ErrIncorrectInput)
		}
		if t.CommonName == "" {
			return fmt.Errorf("%w: team %q has no common_name", caerrors.ErrIncorrectInput, t.Name)
		}
		if _, ok := seen[t.Name]; ok {
			return fmt.Errorf("%w: duplicate team name %q", caerrors.ErrIncorrectInput, t.Name)
		}
		seen[t.Name] = struct{}{}
	}

	return nil
}

// resolveExtensions loads the extensions file once at configuration load time.
// A configured but absent file is not an error; server certificates are then
// signed without extension constraints.
func (c *Config) resolveExtensions() error {
	if c.ExtensionsFile == "" {
		return nil
	}

	if !utils.FileExists(c.ExtensionsFile) {
		log.Debugf("extensions file %s not found, server certificates will be signed without it", c.ExtensionsFile)
		return nil
	}

	spec, err := LoadExtensionsSpec(c.ExtensionsFile)
	if err != nil {
		return err
	}

	c.Extensions = spec

	return nil
}
