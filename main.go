package main

import (
	"fmt"
	"os"

	_ "time/tzdata"

	"visitor-management/cmd"
)

// @title Visitor Management API
// @version 1.0
// @description Visit requests, approvals, pre-approvals and passcode check-in for the front desk.
//
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
//
// @host localhost:3000
// @BasePath /api/v1
// @schemes http https
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the PASETO token.
//
// @tag.name Setup
// @tag.description First-run admin creation
//
// @tag.name Auth
// @tag.description Registration, login and own profile
//
// @tag.name Visitor
// @tag.description Visit requests, check-in and check-out
//
// @tag.name Admin
// @tag.description Approvals, pre-approvals, users and statistics
//
// @tag.name Photo
// @tag.description Profile photos
func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
