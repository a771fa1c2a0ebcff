//	@title			Question Paper Portal API
//	@version		1.0
//	@description	Browse engineering question papers by branch, semester and subject, and upload new papers.
//
//	@host		localhost:8080
//	@BasePath	/api/v1

package main

import (
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
