package cert

import (
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	caerrors "github.com/miniconomy2025/ca/errors"
)

func caInput() *CACSRInput {
	return &CACSRInput{
		CommonName:       "RootCA",
		Country:          "ZA",
		Province:         "Gauteng",
		Locality:         "Johannesburg",
		Organization:     "Miniconomy",
		OrganizationUnit: "RootCA",
		KeySize:          2048,
		Expiry:           24 * time.Hour,
	}
}

func csrInput(team, cn string) *CSRInput {
	return &CSRInput{
		CommonName:       cn,
		Country:          "ZA",
		Province:         "Gauteng",
		Locality:         "Johannesburg",
		Organization:     "Miniconomy",
		OrganizationUnit: team,
		KeySize:          2048,
	}
}

func parseCertPEM(t *testing.T, b []byte) *x509.Certificate {
	t.Helper()

	pb, _ := pem.Decode(b)
	require.NotNil(t, pb, "expected a PEM block")

	parsed, err := x509.ParseCertificate(pb.Bytes)
	require.NoError(t, err)

	return parsed
}

func TestGenerateRootCert(t *testing.T) {
	ca := NewCA()

	rootCert, err := ca.GenerateRootCert(caInput())
	require.NoError(t, err)

	parsed := parseCertPEM(t, rootCert.Cert)

	assert.True(t, parsed.IsCA, "root certificate must be a CA")
	assert.Equal(t, "RootCA", parsed.Subject.CommonName)
	assert.Equal(t, []string{"RootCA"}, parsed.Subject.OrganizationalUnit)
	assert.Equal(t, []string{"Miniconomy"}, parsed.Subject.Organization)
	assert.NotEmpty(t, rootCert.Key, "root key must be written")
}

func TestGenerateKeyAndCSR(t *testing.T) {
	ca := NewCA()

	teamCert, err := ca.GenerateKeyAndCSR(csrInput("alpha", "alpha.example.com"))
	require.NoError(t, err)

	pb, _ := pem.Decode(teamCert.Csr)
	require.NotNil(t, pb)

	csr, err := x509.ParseCertificateRequest(pb.Bytes)
	require.NoError(t, err)

	assert.NoError(t, csr.CheckSignature(), "CSR must be bound to the generated key")
	assert.Equal(t, "alpha.example.com", csr.Subject.CommonName)
	assert.Equal(t, []string{"alpha"}, csr.Subject.OrganizationalUnit)
}

func TestSignCSR(t *testing.T) {
	ca := NewCA()

	rootCert, err := ca.GenerateRootCert(caInput())
	require.NoError(t, err)
	root := parseCertPEM(t, rootCert.Cert)

	teamCert, err := ca.GenerateKeyAndCSR(csrInput("alpha", "alpha.example.com"))
	require.NoError(t, err)

	certPEM, err := ca.SignCSR(&SignInput{
		CSR:    teamCert.Csr,
		Serial: 7,
		Expiry: 24 * time.Hour,
	})
	require.NoError(t, err)

	leaf := parseCertPEM(t, certPEM)

	assert.NoError(t, leaf.CheckSignatureFrom(root), "leaf must verify against the root")
	assert.Equal(t, root.Subject.String(), leaf.Issuer.String())
	assert.EqualValues(t, 7, leaf.SerialNumber.Int64())
	assert.Equal(t, "alpha.example.com", leaf.Subject.CommonName)
	assert.False(t, leaf.IsCA)
	assert.Empty(t, leaf.DNSNames)
}

func TestSignCSRWithExtensions(t *testing.T) {
	ca := NewCA()

	_, err := ca.GenerateRootCert(caInput())
	require.NoError(t, err)

	teamCert, err := ca.GenerateKeyAndCSR(csrInput("alpha", "alpha.example.com"))
	require.NoError(t, err)

	certPEM, err := ca.SignCSR(&SignInput{
		CSR:          teamCert.Csr,
		Serial:       1,
		Expiry:       24 * time.Hour,
		Hosts:        []string{"alpha-api.example.com", "10.0.0.5"},
		ExtKeyUsages: []string{"serverAuth"},
	})
	require.NoError(t, err)

	leaf := parseCertPEM(t, certPEM)

	assert.Equal(t, []string{"alpha-api.example.com"}, leaf.DNSNames)
	require.Len(t, leaf.IPAddresses, 1)
	assert.Equal(t, "10.0.0.5", leaf.IPAddresses[0].String())
	assert.Equal(t, []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth}, leaf.ExtKeyUsage)
}

func TestSignCSRWithoutRoot(t *testing.T) {
	ca := NewCA()

	teamCert, err := ca.GenerateKeyAndCSR(csrInput("alpha", "alpha.example.com"))
	require.NoError(t, err)

	_, err = ca.SignCSR(&SignInput{CSR: teamCert.Csr, Serial: 1, Expiry: time.Hour})
	assert.ErrorIs(t, err, caerrors.ErrSigning)
}

func TestSignCSRMalformed(t *testing.T) {
	ca := NewCA()

	_, err := ca.GenerateRootCert(caInput())
	require.NoError(t, err)

	_, err = ca.SignCSR(&SignInput{CSR: []byte("not a csr"), Serial: 1, Expiry: time.Hour})
	assert.ErrorIs(t, err, caerrors.ErrSigning)
}

func TestSignCSRUnknownExtKeyUsage(t *testing.T) {
	ca := NewCA()

	_, err := ca.GenerateRootCert(caInput())
	require.NoError(t, err)

	teamCert, err := ca.GenerateKeyAndCSR(csrInput("alpha", "alpha.example.com"))
	require.NoError(t, err)

	_, err = ca.SignCSR(&SignInput{
		CSR:          teamCert.Csr,
		Serial:       1,
		Expiry:       time.Hour,
		ExtKeyUsages: []string{"emailProtection"},
	})
	assert.ErrorIs(t, err, caerrors.ErrSigning)
}

func TestSetRootCertificateRoundTrip(t *testing.T) {
	ca := NewCA()

	rootCert, err := ca.GenerateRootCert(caInput())
	require.NoError(t, err)

	// a fresh CA adopting the stored root must produce verifiable leaves
	other := NewCA()
	require.NoError(t, other.SetRootCertificate(rootCert))

	teamCert, err := other.GenerateKeyAndCSR(csrInput("beta", "beta.example.com"))
	require.NoError(t, err)

	certPEM, err := other.SignCSR(&SignInput{CSR: teamCert.Csr, Serial: 2, Expiry: time.Hour})
	require.NoError(t, err)

	leaf := parseCertPEM(t, certPEM)
	root := parseCertPEM(t, rootCert.Cert)
	assert.NoError(t, leaf.CheckSignatureFrom(root))
}
