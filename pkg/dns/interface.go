// Package dns defines how the application asks whether a domain resolves.
package dns

import "context"

// Resolver answers existence queries for domain names.
//
//go:generate mockgen -package mockdns -source=interface.go -destination=mock/mockdns.go *
type Resolver interface {
	// Exists reports whether domain has at least one A record.
	Exists(ctx context.Context, domain string) (bool, error)
}
