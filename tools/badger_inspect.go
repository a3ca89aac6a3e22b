package main

import (
	"flag"
	"log"
	"os"
	"sort"
	"strconv"

	"talent-chat/repositories"

	"github.com/dgraph-io/badger/v4"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

func main() {
	dbPath := flag.String("db", "", "Path to the read marks badger DB (READ_MARKS_PATH)")
	flag.Parse()
	if *dbPath == "" {
		log.Fatal("-db is required")
	}

	// BypassLockGuard allows reading while a chat session holds the lock
	db, err := badger.Open(badger.DefaultOptions(*dbPath).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLogger(nil))
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	marks, err := repositories.NewReadMarkRepository(db).All()
	if err != nil {
		log.Fatal(err)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Conversation", "Seen"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	keys := lo.Keys(marks)
	sort.Strings(keys)
	for _, key := range keys {
		table.Append([]string{key, strconv.Itoa(marks[key])})
	}
	table.Render()
}
