package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"solar-quote-backend/internal/delivery/http/middleware"

	"github.com/joho/godotenv"
)

// Prints a bearer token for the diagnostics routes, signed with
// DIAGNOSTICS_JWT_SECRET.
func main() {
	subject := flag.String("sub", "operator", "token subject")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	_ = godotenv.Load()

	token, err := middleware.IssueOperatorToken(os.Getenv("DIAGNOSTICS_JWT_SECRET"), *subject, *ttl)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
