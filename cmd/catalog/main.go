// Package main is the entry point for the catalog API.
//
// @title Catalog API
// @version 1.0
// @description Product catalog administration with shareable product collections.
//
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import "github.com/bespokesol/catalog/cmd/catalog/cmd"

func main() {
	cmd.Execute()
}
