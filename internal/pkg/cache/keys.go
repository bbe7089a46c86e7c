package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// Key namespaces for the property directory. Listing-shaped namespaces
// are versioned so a whole namespace invalidates with one counter bump;
// detail entries are keyed per id and purged individually.
const (
	NamespaceList     = "properties:list"
	NamespaceSearch   = "properties:search"
	NamespaceFeatured = "properties:featured"
	NamespaceOwner    = "properties:owner"
	NamespaceDetail   = "properties:detail"
)

// ListingNamespaces are the namespaces any write can affect: a partial
// update cannot be assumed not to change filter membership.
var ListingNamespaces = []string{NamespaceList, NamespaceSearch, NamespaceFeatured, NamespaceOwner}

// FieldsKey builds a deterministic key from canonical field pairs: the
// pairs are sorted by field name, joined and hashed, so two filters with
// identical values always produce the same key regardless of
// construction order.
func FieldsKey(fields map[string]string) string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var builder strings.Builder
	for i, name := range names {
		if i > 0 {
			builder.WriteString(":")
		}
		builder.WriteString(name)
		builder.WriteString("=")
		builder.WriteString(fields[name])
	}

	sum := sha1.Sum([]byte(builder.String()))
	return hex.EncodeToString(sum[:])
}

// NamespacedKey prefixes a fields key with its namespace and current
// version.
func (c *Cache) NamespacedKey(ctx context.Context, namespace string, fields map[string]string) string {
	return fmt.Sprintf("%s:v%d:%s", namespace, c.version(ctx, namespace), FieldsKey(fields))
}

// DetailKey addresses one property by id; detail entries are unversioned.
func DetailKey(id string) string {
	return NamespaceDetail + ":" + id
}
