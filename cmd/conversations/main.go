package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"talent-chat/api"
	"talent-chat/contract"
	"talent-chat/conversations"
	"talent-chat/internal"
	"talent-chat/moderation"
	"talent-chat/repositories"

	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	config, err := internal.Load()
	if err != nil {
		return err
	}
	log := logs.GetLoggerFromString(config.LogLevel)
	if err := config.Session().Validate(); err != nil {
		return err
	}
	mask, err := config.CensorRune()
	if err != nil {
		return err
	}
	filter, err := moderation.NewFilter(config.Words(), mask)
	if err != nil {
		return err
	}

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

	var marks contract.ReadMarks
	if config.ReadMarksPath != "" {
		db, err := repositories.Open(config.ReadMarksPath)
		if err != nil {
			return fmt.Errorf("read marks: %w", err)
		}
		defer db.Close()
		marks = repositories.NewReadMarkRepository(db)
	}

	listing, err := conversations.NewLister(log, chatAPI, marks).Load(context.Background())
	if err != nil {
		return err
	}
	if listing.State == conversations.StateEmpty {
		fmt.Println("No conversations yet")
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"With", "Id", "Role", "Last message", "Messages", "Unread", "Updated"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	for _, summary := range listing.Summaries {
		last := "-"
		if summary.LastMessage != nil {
			last = filter.Mask(summary.LastMessage.Text)
		}
		unread := ""
		if summary.Unread > 0 {
			unread = strconv.Itoa(summary.Unread)
		}
		table.Append([]string{
			summary.Counterpart.DisplayName,
			summary.Target(),
			summary.Counterpart.Role,
			last,
			strconv.Itoa(summary.MessageCount),
			unread,
			summary.UpdatedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	table.Render()
	return nil
}
