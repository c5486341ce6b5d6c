// Package migrations holds the storefront schema. Each migration registers
// itself from init(); importing the package for side effects is enough.
package migrations
