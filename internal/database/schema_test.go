package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTableDDL(t *testing.T) {
	ddl := TableDDL("ocr_ticket")
	assert.Contains(t, ddl, "CREATE TABLE `ocr_ticket`")
	assert.Contains(t, ddl, "`id` int unsigned NOT NULL AUTO_INCREMENT")
	assert.Contains(t, ddl, "`created_at` datetime NOT NULL DEFAULT CURRENT_TIMESTAMP")
	assert.Contains(t, ddl, "KEY `idx_plate` (`plate_number`,`plate_code`)")
}

func TestSchemaDump(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	dump := SchemaDump("parkonic_tickets", now)

	assert.Contains(t, dump, "CREATE DATABASE IF NOT EXISTS `parkonic_tickets`")
	for _, table := range TicketTables {
		assert.Contains(t, dump, "DROP TABLE IF EXISTS `"+table+"`;")
		assert.Contains(t, dump, "CREATE TABLE `"+table+"`")
	}
	assert.Contains(t, dump, "-- Dump completed on 2024-03-01 12:00:00")
}
