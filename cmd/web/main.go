// Package main is the entry point for the fitness advisor web server.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fit-advisor/internal/config"
	"github.com/fit-advisor/internal/web"
)

func main() {
	port := flag.Int("port", config.Get().Server.Port, "Port to run the web server on")
	flag.Parse()

	fmt.Println("🚀 Fit Advisor - Web UI")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println()

	server, err := web.NewServer(*port)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := server.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
