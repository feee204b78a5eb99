package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"amigo-admin/internal/config"
	"amigo-admin/pkg/utils"
)

// Prints an HS256 token accepted by the API when DEV_AUTH=true
func main() {
	var (
		uid   = flag.String("uid", "", "Subject uid")
		email = flag.String("email", "", "Optional email claim")
		ttl   = flag.Duration("ttl", 24*time.Hour, "Token lifetime")
	)
	flag.Parse()

	if *uid == "" {
		fmt.Println("Usage: go run ./cmd/devtoken -uid UID [-email EMAIL] [-ttl 24h]")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if !cfg.DevAuth {
		log.Println("warning: DEV_AUTH is not enabled, the API will reject this token")
	}

	token, err := utils.GenerateDevToken([]byte(cfg.JWTSecret), *uid, *email, *ttl)
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}
	fmt.Println(token)
}
