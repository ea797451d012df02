// Command server runs the delivery notes API.
//
// @title                       Delivery Notes API
// @version                     1.0
// @description                 Users, clients, projects and signed delivery notes.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
