// Command genhash prints bcrypt digests compatible with the users collection,
// for seeding accounts directly into a document store.
//
//	genhash -cost 10 secret1 secret2
//	echo secret | genhash
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"go-jobboard-backend/pkg/security"
)

func main() {
	cost := flag.Int("cost", security.DefaultBcryptCost, "bcrypt cost")
	flag.Parse()

	hasher := security.NewBcryptHasher(*cost)

	passwords := flag.Args()
	if len(passwords) == 0 {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			passwords = append(passwords, scanner.Text())
		}
	}

	for _, pass := range passwords {
		hash, err := hasher.Hash(pass)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
		fmt.Println(hash)
	}
}
