package cert

import (
	"bytes"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"fmt"
	"math/big"
	"net"
	"time"

	"golang.org/x/crypto/ssh"

	caerrors "github.com/miniconomy2025/ca/errors"
)

// CA is a Certificate Authority backed by the standard library x509 stack.
type CA struct {
	key  crypto.PrivateKey
	cert *x509.Certificate
}

// NewCA initializes a Certificate Authority.
func NewCA() *CA {
	return &CA{}
}

// SetRootCertificate sets the CA certificate with the provided certificate and key.
func (ca *CA) SetRootCertificate(cert *Certificate) error {
	var err error

	// PEM to DER
	pbCert, _ := pem.Decode(cert.Cert)
	if pbCert == nil {
		return fmt.Errorf("%w: no PEM block found in root CA certificate", caerrors.ErrSigning)
	}

	// parse the Certificate
	ca.cert, err = x509.ParseCertificate(pbCert.Bytes)
	if err != nil {
		return fmt.Errorf("%w: %v", caerrors.ErrSigning, err)
	}

	// parse the PrivateKey
	ca.key, err = ssh.ParseRawPrivateKey(cert.Key)
	if err != nil {
		return fmt.Errorf("%w: %v", caerrors.ErrSigning, err)
	}

	return nil
}

// GenerateRootCert generates a self-signed root CA certificate and key based on the provided input.
func (ca *CA) GenerateRootCert(input *CACSRInput) (*Certificate, error) {
	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", caerrors.ErrSigning, err)
	}

	// prepare the certificate template
	certTemplate := &x509.Certificate{
		SerialNumber: serial,
		Subject:      subjectFromInput(input.CommonName, input.Country, input.Province, input.Locality, input.Organization, input.OrganizationUnit),
		NotBefore:    time.Now(),
		NotAfter:     time.Now().Add(input.Expiry),
		IsCA:         true,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth, x509.ExtKeyUsageServerAuth},
		KeyUsage:     x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign,

		BasicConstraintsValid: true,
	}

	// generate key
	caPrivKey, err := rsa.GenerateKey(rand.Reader, input.KeySize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", caerrors.ErrKeyGeneration, err)
	}

	// create the certificate
	caBytes, err := x509.CreateCertificate(rand.Reader, certTemplate, certTemplate, &caPrivKey.PublicKey, caPrivKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", caerrors.ErrSigning, err)
	}

	rootCert := &Certificate{
		Cert: encodePEM("CERTIFICATE", caBytes),
		Key:  encodePEM("RSA PRIVATE KEY", x509.MarshalPKCS1PrivateKey(caPrivKey)),
	}

	// make the freshly generated root usable for subsequent signing
	ca.cert, err = x509.ParseCertificate(caBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", caerrors.ErrSigning, err)
	}
	ca.key = caPrivKey

	return rootCert, nil
}

// GenerateKeyAndCSR generates a fresh key pair and a certificate signing request bound to it.
func (ca *CA) GenerateKeyAndCSR(input *CSRInput) (*Certificate, error) {
	privKey, err := rsa.GenerateKey(rand.Reader, input.KeySize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", caerrors.ErrKeyGeneration, err)
	}

	csrTemplate := &x509.CertificateRequest{
		Subject: subjectFromInput(input.CommonName, input.Country, input.Province, input.Locality, input.Organization, input.OrganizationUnit),
	}

	csrBytes, err := x509.CreateCertificateRequest(rand.Reader, csrTemplate, privKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", caerrors.ErrRequest, err)
	}

	return &Certificate{
		Key: encodePEM("RSA PRIVATE KEY", x509.MarshalPKCS1PrivateKey(privKey)),
		Csr: encodePEM("CERTIFICATE REQUEST", csrBytes),
	}, nil
}

// SignCSR signs the given CSR with the CA key embedding the provided serial number
// and the optional extension constraints.
func (ca *CA) SignCSR(input *SignInput) ([]byte, error) {
	if ca.cert == nil || ca.key == nil {
		return nil, fmt.Errorf("%w: root CA certificate is not set", caerrors.ErrSigning)
	}

	pbCsr, _ := pem.Decode(input.CSR)
	if pbCsr == nil {
		return nil, fmt.Errorf("%w: no PEM block found in CSR", caerrors.ErrSigning)
	}

	csr, err := x509.ParseCertificateRequest(pbCsr.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", caerrors.ErrSigning, err)
	}

	if err := csr.CheckSignature(); err != nil {
		return nil, fmt.Errorf("%w: %v", caerrors.ErrSigning, err)
	}

	extKeyUsage, err := parseExtKeyUsages(input.ExtKeyUsages)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", caerrors.ErrSigning, err)
	}

	// parse hosts from input to retrieve dns and ip SANs
	dns, ip := parseHostsInput(input.Hosts)

	certTemplate := &x509.Certificate{
		SerialNumber: big.NewInt(input.Serial),
		Subject:      csr.Subject,
		DNSNames:     dns,
		IPAddresses:  ip,
		NotBefore:    time.Now(),
		NotAfter:     time.Now().Add(input.Expiry),
		ExtKeyUsage:  extKeyUsage,
		KeyUsage:     x509.KeyUsageDigitalSignature | x509.KeyUsageKeyEncipherment,
	}

	certBytes, err := x509.CreateCertificate(rand.Reader, certTemplate, ca.cert, csr.PublicKey, ca.key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", caerrors.ErrSigning, err)
	}

	return encodePEM("CERTIFICATE", certBytes), nil
}

func subjectFromInput(cn, c, st, l, o, ou string) pkix.Name {
	return pkix.Name{
		CommonName:         cn,
		Country:            []string{c},
		Province:           []string{st},
		Locality:           []string{l},
		Organization:       []string{o},
		OrganizationalUnit: []string{ou},
	}
}

func encodePEM(blockType string, der []byte) []byte {
	buf := new(bytes.Buffer)
	_ = pem.Encode(buf, &pem.Block{
		Type:  blockType,
		Bytes: der,
	})
	return buf.Bytes()
}

func parseHostsInput(hosts []string) ([]string, []net.IP) {
	var dns []string
	var ip []net.IP

	for _, host := range hosts {
		if net.ParseIP(host) != nil {
			ip = append(ip, net.ParseIP(host))
		} else {
			dns = append(dns, host)
		}
	}

	return dns, ip
}

// parseExtKeyUsages maps the extension file usage names to x509 extended key usages.
// An empty list defaults to client and server auth, matching the root CA profile.
func parseExtKeyUsages(usages []string) ([]x509.ExtKeyUsage, error) {
	if len(usages) == 0 {
		return []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth, x509.ExtKeyUsageServerAuth}, nil
	}

	var res []x509.ExtKeyUsage
	for _, u := range usages {
		switch u {
		case "clientAuth":
			res = append(res, x509.ExtKeyUsageClientAuth)
		case "serverAuth":
			res = append(res, x509.ExtKeyUsageServerAuth)
		case "any":
			res = append(res, x509.ExtKeyUsageAny)
		default:
			return nil, fmt.Errorf("unknown extended key usage %q", u)
		}
	}

	return res, nil
}
