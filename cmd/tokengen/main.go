// Package main provides a CLI tool for generating test tokens for the CrediPet API.
// These tokens use the dev signing key and will NOT work in production.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	jwttoken "credipet/internal/jwt_token"
	"credipet/internal/platform/config"
	id "credipet/pkg/domain"
)

type tokenOutput struct {
	Token     string            `json:"token"`
	Type      string            `json:"type"`
	Principal string            `json:"principal"`
	ExpiresIn string            `json:"expires_in"`
	JTI       string            `json:"jti"`
	Usage     map[string]string `json:"usage"`
}

func main() {
	accessCmd := flag.NewFlagSet("access", flag.ExitOnError)
	accessPrincipal := accessCmd.String("principal", "", "Caller address (0x...). Takes precedence over -label.")
	accessLabel := accessCmd.String("label", config.OwnerLabel, "Derive the caller address from this label")
	accessKey := accessCmd.String("key", config.DevSigningKey, "HMAC signing key")
	accessTTL := accessCmd.Duration("ttl", config.DefaultTokenTTL, "Token time-to-live")
	accessJSON := accessCmd.Bool("json", false, "Output as JSON")

	addressCmd := flag.NewFlagSet("address", flag.ExitOnError)
	addressLabel := addressCmd.String("label", config.OwnerLabel, "Label to derive an address from")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "access":
		_ = accessCmd.Parse(os.Args[2:])
		caller := resolvePrincipal(*accessPrincipal, *accessLabel)
		generateAccessToken(caller, *accessKey, *accessTTL, *accessJSON)
	case "address":
		_ = addressCmd.Parse(os.Args[2:])
		fmt.Println(id.DerivePrincipal(*addressLabel).Hex())
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`tokengen - Generate test tokens for the CrediPet API

WARNING: Tokens signed with the dev key will NOT work in production.

Usage:
  tokengen <command> [flags]

Commands:
  access    Generate an access token (JWT) for a caller address
  address   Print the address derived from a label

Examples:
  # Token for the default owner
  tokengen access

  # Token for the credit registry's lending authority
  tokengen access -principal 0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed

  # Token for a derived test borrower, valid for an hour
  tokengen access -label alice -ttl 1h

  # Which address does the credit registry act as by default?
  tokengen address -label credipet/credit-registry

Use "tokengen <command> -h" for more information about a command.`)
}

func resolvePrincipal(raw, label string) id.Principal {
	if raw == "" {
		return id.DerivePrincipal(label)
	}
	p, err := id.ParsePrincipal(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid principal %s: %v\n", raw, err)
		os.Exit(1)
	}
	return p
}

func generateAccessToken(caller id.Principal, key string, ttl time.Duration, jsonOutput bool) {
	svc := jwttoken.NewJWTService(key, config.DefaultIssuer, config.DefaultAudience, ttl)

	token, jti, err := svc.GenerateAccessToken(context.Background(), caller)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating token: %v\n", err)
		os.Exit(1)
	}

	if jsonOutput {
		printJSON(tokenOutput{
			Token:     token,
			Type:      "access_token",
			Principal: caller.Hex(),
			ExpiresIn: ttl.String(),
			JTI:       jti,
			Usage: map[string]string{
				"header": "Authorization: Bearer <token>",
			},
		})
		return
	}

	fmt.Println("Access Token (JWT)")
	fmt.Println("==================")
	fmt.Printf("Principal:  %s\n", caller.Hex())
	fmt.Printf("Expires In: %s\n", ttl)
	fmt.Printf("JTI:        %s\n", jti)
	fmt.Println()
	fmt.Println("Token:")
	fmt.Println(token)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  curl -H \"Authorization: Bearer <token>\" http://localhost:8080/...")
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}
}
