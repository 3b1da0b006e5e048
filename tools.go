//go:build tools
// +build tools

// Package tools declares tool dependencies for this module.
//
// These imports are not used at runtime. They keep go.mod / go.sum tracking
// mockgen, which `go generate` runs to refresh the mocks package.
package econ_lab

import (
	_ "go.uber.org/mock/mockgen"
)
