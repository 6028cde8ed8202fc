//go:build tools

// Package tools pins the development binaries: live reload, DI code generation,
// swagger generation and mock generation.
package tools

import (
	_ "github.com/air-verse/air"
	_ "github.com/google/wire/cmd/wire"
	_ "github.com/swaggo/swag/cmd/swag"
	_ "go.uber.org/mock/mockgen"
)
