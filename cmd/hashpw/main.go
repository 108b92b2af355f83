// Command hashpw prints the bcrypt hash to put in ADMIN_PASSWORD_HASH.
//
//	go run ./cmd/hashpw 'secret'
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/cinema-admin-console/internal/utils"
)

func main() {
	if len(os.Args) != 2 || os.Args[1] == "" {
		fmt.Fprintln(os.Stderr, "usage: hashpw <password>")
		os.Exit(2)
	}
	hash, err := utils.HashPassword(os.Args[1], bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Fatal("hash password")
	}
	fmt.Println(hash)
}
