//go:build tools
// +build tools

// Package tools declares tool dependencies for this module.
//
// These imports are not used at runtime. They keep mockgen, invoked through
// go generate on contract/contract.go, tracked in go.mod.
package talent_chat

import (
	_ "go.uber.org/mock/mockgen"
)
