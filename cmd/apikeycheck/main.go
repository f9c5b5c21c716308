package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"sudomock-connector/internal/infra"
	"sudomock-connector/internal/providers/sudomock"
)

func main() {
	var (
		keyFlag     string
		baseURLFlag string
	)
	flag.StringVar(&keyFlag, "key", "", "API key to verify (fallbacks to SUDOMOCK_API_KEY)")
	flag.StringVar(&baseURLFlag, "base-url", "", "API base URL (fallbacks to SUDOMOCK_BASE_URL)")
	flag.Parse()

	_ = godotenv.Load()

	key := strings.TrimSpace(keyFlag)
	if key == "" {
		key = strings.TrimSpace(os.Getenv("SUDOMOCK_API_KEY"))
	}
	if key == "" {
		fmt.Fprintln(os.Stderr, "API key is required via -key or SUDOMOCK_API_KEY")
		os.Exit(1)
	}
	baseURL := strings.TrimSpace(baseURLFlag)
	if baseURL == "" {
		baseURL = strings.TrimSpace(os.Getenv("SUDOMOCK_BASE_URL"))
	}

	logger := infra.NewLogger("cli").With().Str("cmd", "apikeycheck").Logger()
	client, err := sudomock.NewClient(sudomock.Options{
		APIKey:  key,
		BaseURL: baseURL,
		Logger:  &logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build client: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.VerifyCredentials(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "API key rejected: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("API key accepted")
}
