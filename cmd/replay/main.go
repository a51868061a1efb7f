// Command replay signs a webhook payload file and posts it to a local
// server. Handy for re-driving stored raw_payload rows through the
// handler during debugging.
//
//	go run ./cmd/replay -file payload.json -secret $CALENDLY_WEBHOOK_SECRET
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/tutorhub/booking-service/internal/webhook"
)

func main() {
	file := flag.String("file", "", "path to the JSON payload to send")
	secret := flag.String("secret", os.Getenv("CALENDLY_WEBHOOK_SECRET"), "signing secret")
	target := flag.String("target", "http://localhost:8080/webhooks/calendly", "webhook endpoint")
	flag.Parse()

	if *file == "" {
		log.Fatal("-file is required")
	}

	body, err := os.ReadFile(*file)
	if err != nil {
		log.Fatal(err)
	}

	req, err := http.NewRequest("POST", *target, bytes.NewReader(body))
	if err != nil {
		log.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if *secret != "" {
		req.Header.Set(webhook.SignatureHeader, webhook.Sign(body, *secret, time.Now()))
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()

	out, _ := io.ReadAll(resp.Body)
	fmt.Printf("%s\n%s\n", resp.Status, out)
}
