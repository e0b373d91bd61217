// totp is a one-shot generator: it prints the current 6-digit code for a
// bare base32 secret without touching the account store. Useful for
// scripts and for generating deterministic codes in tests by passing a
// fixed timestamp.
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"odnorazka/internal/otp"
)

func main() {
	if len(os.Args) < 2 || len(os.Args) > 3 {
		fmt.Println("Usage: totp <base32-secret> [unix-timestamp]")
		os.Exit(1)
	}

	secret, err := otp.DecodeSecret(os.Args[1])
	if err != nil {
		fmt.Printf("Error decoding secret: %v\n", err)
		os.Exit(1)
	}

	timestamp := uint64(time.Now().Unix())
	if len(os.Args) == 3 {
		t, err := strconv.ParseUint(os.Args[2], 10, 64)
		if err != nil {
			fmt.Printf("Error parsing timestamp: %v\n", err)
			os.Exit(1)
		}
		timestamp = t
	}

	code, err := otp.Code(secret, timestamp, otp.DefaultParams())
	if err != nil {
		fmt.Printf("Error generating TOTP: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(code)
}
