// Package commands implements sellingplanctl, an operator CLI that talks to the
// Shopify Admin API directly and drives the extension flows against a running
// app server from a terminal.
package commands
