package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-kit/log/level"
	"github.com/pborman/getopt"
	"github.com/pkg/errors"
	"github.com/rhchat/rhchat-desktop/logging"
	"github.com/rhchat/rhchat-desktop/mockapi"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	addr := "127.0.0.1:8080"
	logLevel := "info"
	var users []string

	flagSet := getopt.New()
	flagSet.SetProgram("rhchat-mockapi")
	flagSet.StringVarLong(&addr, "listen", 'l', "address to listen on", "ADDR")
	flagSet.StringVarLong(&logLevel, "log-level", 0, "debug, info, warn or error", "LEVEL")
	flagSet.ListVarLong(&users, "user", 'u', "accepted USER:PASSWORD pair (repeatable)", "USER:PASSWORD")
	if err := flagSet.Getopt(args, nil); err != nil {
		flagSet.PrintUsage(os.Stderr)
		return errors.Wrap(err, "parsing flags")
	}

	accounts, err := parseUsers(users)
	if err != nil {
		return err
	}

	logger := logging.New(os.Stderr, logLevel)
	server := &http.Server{
		Addr:              addr,
		Handler:           mockapi.New(accounts, logger).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		level.Info(logger).Log("msg", "listening", "addr", addr, "users", len(accounts))
		errc <- server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return errors.Wrap(err, "serving")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return errors.Wrap(server.Shutdown(shutdownCtx), "shutting down")
}

func parseUsers(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return map[string]string{"demo": "demo"}, nil
	}
	users := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, password, ok := strings.Cut(pair, ":")
		if !ok || name == "" {
			return nil, errors.Errorf("invalid --user value: %s", pair)
		}
		users[name] = password
	}
	return users, nil
}
