// Package main provides a CLI tool to sign an access token for local development.
// Usage: go run ./cmd/issue-dev-token -user 65f0c0ffee0000000000abcd
// Production tokens come from the identity provider; this tool only needs the
// private half of the key pair the API verifies against.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/MMARAGAO/RiskAssessment-sub000/internal/auth"
	"github.com/MMARAGAO/RiskAssessment-sub000/internal/config"
)

func main() {
	userID := flag.String("user", "", "User ObjectID (hex); a new one is generated when empty")
	envFile := flag.String("env", "", "Path to .env file (defaults to .env in current dir)")
	ttl := flag.Duration("ttl", 24*time.Hour, "Token lifetime")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Signs an RS512 access token for development use.\n\n")
		fmt.Fprintf(os.Stderr, "Required config (via .env or environment):\n")
		fmt.Fprintf(os.Stderr, "  %s_JWT_PUBLIC_KEY_PATH   Public key the API verifies with\n", config.Prefix)
		fmt.Fprintf(os.Stderr, "  %s_JWT_PRIVATE_KEY_PATH  Matching private key\n\n", config.Prefix)
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	loadEnvFile(*envFile)

	if *userID == "" {
		*userID = primitive.NewObjectID().Hex()
	} else if _, err := primitive.ObjectIDFromHex(*userID); err != nil {
		log.Fatalf("Error: -user must be a 24 character hex ObjectID: %s", *userID)
	}

	publicKey := os.Getenv(config.Prefix + "_JWT_PUBLIC_KEY_PATH")
	privateKey := os.Getenv(config.Prefix + "_JWT_PRIVATE_KEY_PATH")
	if publicKey == "" || privateKey == "" {
		log.Fatalf("Error: %s_JWT_PUBLIC_KEY_PATH and %s_JWT_PRIVATE_KEY_PATH are required", config.Prefix, config.Prefix)
	}
	issuer := os.Getenv(config.Prefix + "_JWT_ISSUER")
	if issuer == "" {
		issuer = "riskassess"
	}

	jwtService, err := auth.NewJWTService(auth.JWTConfig{
		PublicKeyPath:     publicKey,
		PrivateKeyPath:    privateKey,
		AccessTokenExpiry: *ttl,
		Issuer:            issuer,
	})
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	token, expiresAt, err := jwtService.GenerateAccessToken(*userID)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	// Round-trip so a mismatched key pair fails here rather than at the API
	if _, err := jwtService.ValidateAccessToken(token); err != nil {
		log.Fatalf("Error: token does not verify against the public key: %v", err)
	}

	fmt.Fprintf(os.Stderr, "User:    %s\n", *userID)
	fmt.Fprintf(os.Stderr, "Expires: %s\n\n", expiresAt.UTC().Format(time.RFC3339))
	fmt.Println(token)
}

// loadEnvFile loads environment variables from a .env file
func loadEnvFile(path string) {
	if path == "" {
		cwd, _ := os.Getwd()
		if _, err := os.Stat(filepath.Join(cwd, ".env")); err == nil {
			path = ".env"
		}
	}

	if path != "" {
		if err := godotenv.Load(path); err != nil {
			log.Printf("Error loading .env file: %v", err)
		}
	}
}
