package main

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/hash-admin-key/main.go <admin-key>")
		fmt.Println("Example: go run cmd/hash-admin-key/main.go \"barista-key-12345\"")
		os.Exit(1)
	}

	adminKey := os.Args[1]

	// Hash the admin key
	hash, err := bcrypt.GenerateFromPassword([]byte(adminKey), 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to hash admin key: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Admin key hashed successfully!\n\n")
	fmt.Printf("Add this to your environment or .env file:\n")
	fmt.Printf("ADMIN_KEY_HASH='%s'\n", hash)
	fmt.Printf("\n⚠️  IMPORTANT: Save the admin key securely! Only the hash is stored.\n")
	fmt.Printf("\nUse the admin key in the Authorization header:\n")
	fmt.Printf("Authorization: Bearer %s\n", adminKey)
}
