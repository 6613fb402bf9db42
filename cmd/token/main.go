// Command token mints an operator JWT for the /api/update endpoints using
// the same JWT_* environment as the server.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ghtimeline/timeline/modules/update"
	"github.com/ghtimeline/timeline/pkg/config"
	"github.com/ghtimeline/timeline/pkg/jwt"
)

func main() {
	subject := flag.String("sub", "operator", "token subject")
	envFile := flag.String("env", "", "optional .env file to load first")
	flag.Parse()

	if err := run(*subject, *envFile); err != nil {
		fmt.Fprintln(os.Stderr, "token:", err)
		os.Exit(1)
	}
}

func run(subject, envFile string) error {
	if envFile != "" {
		if err := config.LoadEnv(envFile); err != nil {
			return err
		}
	}
	var cfg jwt.Config
	if err := config.Load(&cfg); err != nil {
		return err
	}
	svc, err := jwt.NewFromConfig(cfg)
	if err != nil {
		return err
	}
	tok, err := svc.Generate(subject, update.Scope)
	if err != nil {
		return err
	}
	fmt.Println(tok)
	return nil
}
