package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"talent-chat/api"
	"talent-chat/client"
	"talent-chat/history"
	"talent-chat/internal"
	"talent-chat/moderation"
	"talent-chat/repositories"
	"talent-chat/runtime/workers"
	"talent-chat/transport"
	"talent-chat/view"

	"github.com/mama165/sdk-go/logs"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	with := flag.String("with", "", "id of the user to chat with")
	flag.Parse()

	// 1. Configuration & Logger
	config, err := internal.Load()
	if err != nil {
		return err
	}
	log := logs.GetLoggerFromString(config.LogLevel)
	session := config.Session()
	if err := session.Validate(); err != nil {
		return err
	}
	mask, err := config.CensorRune()
	if err != nil {
		return err
	}
	filter, err := moderation.NewFilter(config.Words(), mask)
	if err != nil {
		return fmt.Errorf("moderation filter: %w", err)
	}

	// 2. Backend access, shared cookie jar for REST and the live channel
	cookie, err := config.Cookie()
	if err != nil {
		return fmt.Errorf("session token: %w", err)
	}
	httpClient, err := api.NewSessionHTTPClient(config.APIURL, config.CookieName, cookie, config.RequestTimeout)
	if err != nil {
		return err
	}
	chatAPI, err := api.NewClient(log, config.APIURL, httpClient)
	if err != nil {
		return err
	}
	dialer, err := transport.NewDialer(log, config.APIURL, httpClient)
	if err != nil {
		return err
	}

	opts := []view.Option{view.WithNoticeTTL(config.NoticeTTL), view.WithRestartInterval(config.RestartInterval)}
	if config.ReadMarksPath != "" {
		db, err := repositories.Open(config.ReadMarksPath)
		if err != nil {
			return fmt.Errorf("read marks: %w", err)
		}
		defer db.Close()
		opts = append(opts, view.WithReadMarks(repositories.NewReadMarkRepository(db)))
	}
	opener := view.NewOpener(log, history.NewLoader(log, chatAPI), client.NewManager(log, dialer), opts...)

	// 3. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conversation, err := opener.Open(ctx, session, *with)
	if err != nil {
		return err
	}
	defer conversation.Close()

	// 4. Terminal loop until EOF, /quit or a signal
	sup := workers.NewSupervisor(log, config.RestartInterval).Add(
		newRenderer(conversation, filter, os.Stdout),
		newPrompt(conversation, os.Stdin, stop),
	)
	sup.Run(ctx)
	return nil
}
