//go:build tools

// Package tools pins CLI dependencies so `go mod tidy` keeps them versioned.
package tools

import (
	_ "github.com/pressly/goose/v3/cmd/goose"
)
