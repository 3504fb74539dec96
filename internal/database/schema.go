package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// TicketTables lists the two ticket tables in the order they appear in the
// reference dump. Both share the same column set; only the name differs.
var TicketTables = []string{"omc_ticket", "ocr_ticket"}

// ticketColumnsDDL is the shared column and index definition for a ticket
// table. Indexes mirror the production dump: camera+entry-time, plate,
// external trip id and zone lookups.
const ticketColumnsDDL = "" +
	"  `id` int unsigned NOT NULL AUTO_INCREMENT,\n" +
	"  `camera_id` int DEFAULT NULL,\n" +
	"  `zone_name` varchar(50) DEFAULT NULL,\n" +
	"  `camera_ip` varchar(45) DEFAULT NULL,\n" +
	"  `zone_region` varchar(50) DEFAULT NULL,\n" +
	"  `spot_number` int DEFAULT NULL,\n" +
	"  `plate_number` varchar(20) DEFAULT NULL,\n" +
	"  `plate_code` varchar(10) DEFAULT NULL,\n" +
	"  `plate_city` varchar(50) DEFAULT NULL,\n" +
	"  `confidence` int DEFAULT NULL,\n" +
	"  `entry_time` datetime DEFAULT NULL,\n" +
	"  `exit_time` datetime DEFAULT NULL,\n" +
	"  `status` varchar(20) DEFAULT NULL,\n" +
	"  `parkonic_trip_id` int DEFAULT NULL,\n" +
	"  `image_base64` longtext,\n" +
	"  `crop_image_path` varchar(255) DEFAULT NULL,\n" +
	"  `entry_image_path` varchar(255) DEFAULT NULL,\n" +
	"  `exit_image_path` varchar(255) DEFAULT NULL,\n" +
	"  `exit_clip_path` varchar(255) DEFAULT NULL,\n" +
	"  `created_at` datetime NOT NULL DEFAULT CURRENT_TIMESTAMP,\n" +
	"  `process_time_in` datetime DEFAULT NULL,\n" +
	"  `process_time_out` datetime DEFAULT NULL,\n" +
	"  PRIMARY KEY (`id`),\n" +
	"  KEY `idx_camera_time` (`camera_id`,`entry_time`),\n" +
	"  KEY `idx_plate` (`plate_number`,`plate_code`),\n" +
	"  KEY `idx_trip` (`parkonic_trip_id`),\n" +
	"  KEY `idx_zone` (`zone_name`,`zone_region`)"

// TableDDL returns the CREATE TABLE statement for one ticket table.
func TableDDL(table string) string {
	return fmt.Sprintf("CREATE TABLE `%s` (\n%s\n) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;",
		table, ticketColumnsDDL)
}

// Migrate creates the ticket tables when they do not exist yet. It runs
// once at startup, before seeding, and is idempotent.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, table := range TicketTables {
		q := fmt.Sprintf("CREATE TABLE IF NOT EXISTS `%s` (\n%s\n) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci",
			table, ticketColumnsDDL)
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("create table %s: %w", table, err)
		}
	}
	return nil
}

// SchemaDump renders a MySQL-dump-style script for the ticket tables,
// suitable for provisioning a database by hand. The now parameter stamps
// the trailing completion line.
func SchemaDump(dbName string, now time.Time) string {
	var b strings.Builder
	b.WriteString("-- MySQL dump 10.13  Distrib 8.0.xx, for Win64 (x86_64)\n")
	b.WriteString("--\n")
	fmt.Fprintf(&b, "-- Host: localhost    Database: %s\n", dbName)
	b.WriteString("-- ------------------------------------------------------\n")
	b.WriteString("-- Server version\t8.0.xx\n\n")
	fmt.Fprintf(&b, "CREATE DATABASE IF NOT EXISTS `%s`\n  CHARACTER SET utf8mb4\n  COLLATE utf8mb4_unicode_ci;\n\n", dbName)
	fmt.Fprintf(&b, "USE `%s`;\n", dbName)
	for _, table := range TicketTables {
		fmt.Fprintf(&b, "\n--\n-- Table structure for table `%s`\n--\n\n", table)
		fmt.Fprintf(&b, "DROP TABLE IF EXISTS `%s`;\n\n", table)
		b.WriteString(TableDDL(table))
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\n-- Dump completed on %s\n", now.UTC().Format("2006-01-02 15:04:05"))
	return b.String()
}
