// mintjwt prints a session token for local testing of the guarded routes.
//
//	go run ./cmd/mintjwt -email a@b.com
//	curl -H "Authorization: Bearer $TOKEN" "localhost:5000/my-articles?email=a@b.com"
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/pllus/articles-server/internal/auth"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	email := flag.String("email", "", "email claim of the token")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	signed, exp, err := auth.NewJWTService(secret, *ttl).Issue(*email)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("expires %s", exp.Format(time.RFC3339))
	fmt.Println(signed)
}
