package core

import (
	"fmt"

	"github.com/miniconomy2025/ca/cert"
	caerrors "github.com/miniconomy2025/ca/errors"
	"github.com/miniconomy2025/ca/types"
)

// CertGen orchestrates a full provisioning run: root CA establishment,
// per-team issuance and bundle packaging. The configuration is an explicit
// value, so independent runs with different rosters can coexist in one process.
type CertGen struct {
	Config *types.Config
	Paths  *types.CertPaths

	cert *cert.Cert
}

// Option is a functional option for CertGen.
type Option func(c *CertGen)

// WithCertificateAuthority overrides the default certificate engine.
func WithCertificateAuthority(ca cert.CertificateAuthority) Option {
	return func(c *CertGen) {
		c.cert.CertificateAuthority = ca
	}
}

// WithCertStorage overrides the default local directory certificate storage.
func WithCertStorage(storage cert.CertStorage) Option {
	return func(c *CertGen) {
		c.cert.CertStorage = storage
	}
}

// New creates a CertGen from the given configuration.
func New(cfg *types.Config, opts ...Option) (*CertGen, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: config must not be nil", caerrors.ErrIncorrectInput)
	}

	paths := types.NewCertPaths(cfg.CertDir)

	c := &CertGen{
		Config: cfg,
		Paths:  paths,
		cert: &cert.Cert{
			CertificateAuthority: cert.NewCA(),
			CertStorage:          cert.NewLocalDirCertStorage(paths),
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Run performs the full build: root CA, all team certificates, all bundles.
// The first error aborts the run; bundles are only packaged once every
// certificate exists.
func (c *CertGen) Run() error {
	err := c.BuildHierarchy()
	if err != nil {
		return err
	}

	return c.PackageBundles()
}
