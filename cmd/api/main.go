// Package main is the entry point for the zapatillas API.
package main

import (
	"fmt"
	"os"

	_ "github.com/pabloab/zapatillas-api/docs"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "unknown"
)

// @title                       Zapatillas API
// @version                     1.0
// @description                 Accounts, authentication and customers for the zapatillas catalog.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cmd := NewRootCmd()
	cmd.Version = fmt.Sprintf("%s (commit: %s)", version, commit)

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
