package validators

import (
	"context"
	"net"
	"strings"
)

// Resolver is the subset of *net.Resolver used to check mail domains.
type Resolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

// EmailDomain returns the part after the last "@", or "" when there is none.
func EmailDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return ""
	}
	return strings.ToLower(email[at+1:])
}

// IsEmailDomainValid reports whether the email's domain has an MX record,
// or failing that any address. A nil resolver uses net.DefaultResolver.
func IsEmailDomainValid(ctx context.Context, r Resolver, email string) bool {
	domain := EmailDomain(email)
	if domain == "" {
		return false
	}
	if r == nil {
		r = net.DefaultResolver
	}

	if mx, err := r.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}
	if ips, err := r.LookupIPAddr(ctx, domain); err == nil && len(ips) > 0 {
		return true
	}
	return false
}
