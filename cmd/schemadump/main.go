// Command schemadump writes a MySQL-dump-style SQL script for the two
// ticket tables, for provisioning a database outside the application's own
// startup migration.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/parkonic/ticket-portal/internal/database"
)

func main() {
	out := flag.String("o", "Dump_parkonic_tickets.sql", "output file")
	dbName := flag.String("db", "parkonic_tickets", "database name")
	flag.Parse()

	dump := database.SchemaDump(*dbName, time.Now())
	if err := os.WriteFile(*out, []byte(dump), 0o644); err != nil {
		log.Fatalf("write dump: %v", err)
	}
	abs, err := filepath.Abs(*out)
	if err != nil {
		abs = *out
	}
	log.Printf("SQL dump file generated: %s", abs)
}
