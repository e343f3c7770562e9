package main

import (
	"fmt"
	"os"

	"github.com/lixumin/vocabvid-gateway/internal/auth"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/hashgen/main.go <password>")
		fmt.Println("Generates a bcrypt digest of the provided password for use in config.yaml")
		os.Exit(1)
	}

	digest, err := auth.HashPassword(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to hash password: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Add this to your config.yaml:")
	fmt.Printf("  users:\n")
	fmt.Printf("    - username: \"testuser\"\n")
	fmt.Printf("      password_hash: \"%s\"\n", digest)
}
