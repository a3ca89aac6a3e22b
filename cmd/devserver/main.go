package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"talent-chat/devserver"
	"talent-chat/internal"

	"github.com/mama165/sdk-go/logs"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	seed := flag.Bool("seed", true, "create demo users and messages")
	polling := flag.Bool("polling-only", false, "refuse websocket upgrades")
	flag.Parse()

	config, err := internal.Load()
	if err != nil {
		return err
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	var opts []devserver.Option
	if *polling {
		opts = append(opts, devserver.WithoutWebsocket())
	}
	opts = append(opts, devserver.WithCookieName(config.CookieName))
	if config.SessionSecret != "" {
		opts = append(opts, devserver.WithSecret([]byte(config.SessionSecret)))
	}
	server, err := devserver.New(log, opts...)
	if err != nil {
		return err
	}
	if *seed {
		if err := seedDemo(server); err != nil {
			return err
		}
		for _, userID := range []string{"ava-1", "noah-1", "liam-1"} {
			token, err := server.Token(userID)
			if err != nil {
				return err
			}
			log.Info("Session token", "user", userID, "cookie", token)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errs := make(chan error, 1)
	go func() {
		log.Info("Dev server listening", "addr", config.DevServerAddr)
		errs <- server.Listen(config.DevServerAddr)
	}()

	select {
	case err = <-errs:
		return err
	case <-ctx.Done():
	}
	log.Info("Shutting down dev server...")
	return server.Shutdown()
}

func seedDemo(server *devserver.Server) error {
	server.AddUser(devserver.User{ID: "ava-1", UserName: "Ava", Role: "actor", Skills: []string{"dance", "voice"}})
	server.AddUser(devserver.User{ID: "noah-1", UserName: "Noah", Role: "director"})
	server.AddUser(devserver.User{ID: "liam-1", UserName: "Liam", Role: "producer"})

	at := time.Now().Add(-time.Hour)
	if err := server.AddMessage("ava-1", "noah-1", "hi", at); err != nil {
		return err
	}
	if err := server.AddMessage("noah-1", "ava-1", "hello", at.Add(time.Minute)); err != nil {
		return err
	}
	return server.AddMessage("liam-1", "noah-1", "Are you free for the casting on Friday?", at.Add(-24*time.Hour))
}
