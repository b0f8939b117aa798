// Command hashpw prints the bcrypt hash of a password, for seeding sys_user.
//
//	hashpw 'S3cretPassword'
//	echo -n 'S3cretPassword' | hashpw
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jrsteele09/go-session-auth/users"
)

func main() {
	password, err := readPassword(os.Args[1:], os.Stdin)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hashpw:", err)
		os.Exit(2)
	}
	if err := users.ValidatePasswordStrength(password); err != nil {
		fmt.Fprintln(os.Stderr, "warning:", err)
	}

	hash, err := users.HashPassword(password)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hashpw:", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}

func readPassword(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", fmt.Errorf("usage: hashpw <password> (or pass it on stdin)")
	}
	return password, nil
}
