// askdesk serves retrieval-augmented answers over resume material.
//
// @title                       askdesk API
// @version                     1.0
// @description                 Retrieval-augmented question answering over resume material, with job description matching.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the access token.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
