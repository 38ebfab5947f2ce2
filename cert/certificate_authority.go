package cert

import "time"

// CACSRInput is the input used to generate the self-signed root CA certificate.
type CACSRInput struct {
	CommonName       string
	Country          string
	Province         string
	Locality         string
	Organization     string
	OrganizationUnit string
	KeySize          int
	Expiry           time.Duration
}

// CSRInput is the input used to generate a leaf key pair and its certificate signing request.
type CSRInput struct {
	CommonName       string
	Country          string
	Province         string
	Locality         string
	Organization     string
	OrganizationUnit string
	KeySize          int
}

// SignInput is the input used to sign a certificate signing request with the root CA.
// Hosts and ExtKeyUsages carry the optional extension constraints; when Hosts
// contains IP addresses they become IP SANs, everything else becomes a DNS SAN.
type SignInput struct {
	CSR          []byte // PEM encoded certificate signing request
	Serial       int64
	Expiry       time.Duration
	Hosts        []string
	ExtKeyUsages []string
}

// CertificateAuthority is the interface satisfied by the certificate engine implementation.
// It is used to generate the root certificate as well as team certificates signed by the root.
type CertificateAuthority interface {
	// SetRootCertificate sets the root CA certificate and key the engine signs with.
	SetRootCertificate(cert *Certificate) error
	// GenerateRootCert generates a self-signed root CA certificate and key based on the provided input.
	GenerateRootCert(input *CACSRInput) (*Certificate, error)
	// GenerateKeyAndCSR generates a fresh key pair and a CSR bound to it based on the provided input.
	GenerateKeyAndCSR(input *CSRInput) (*Certificate, error)
	// SignCSR signs the given CSR with the root CA key and returns the PEM encoded certificate.
	SignCSR(input *SignInput) ([]byte, error)
}
