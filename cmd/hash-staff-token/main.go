package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"theatre-box-office/internal/utils"
)

func main() {
	generate := flag.Bool("generate", false, "Generate a new random token instead of reading one from stdin")
	flag.Parse()

	var token string
	if *generate {
		t, err := utils.GenerateSecureToken(32)
		if err != nil {
			log.Fatalf("Failed to generate token: %v", err)
		}
		token = t
		fmt.Printf("Staff token (hand this to front-of-house): %s\n", token)
	} else {
		fmt.Fprint(os.Stderr, "Staff token: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			log.Fatalf("Failed to read token: %v", err)
		}
		token = strings.TrimSpace(line)
	}

	hash, err := utils.HashToken(token)
	if err != nil {
		log.Fatalf("Failed to hash token: %v", err)
	}

	fmt.Printf("DOORLIST_TOKEN_HASH='%s'\n", hash)
}
