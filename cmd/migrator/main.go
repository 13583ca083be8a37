package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	var storagePath, migrationsPath, migrationsTable string

	flag.StringVar(&storagePath, "storage-path", "", "postgres connection string (user:pass@host:port/db)")
	flag.StringVar(&migrationsPath, "migrations-path", "./storage/postgres/migrations", "path to a directory containing migration files")
	flag.StringVar(&migrationsTable, "migrations-table", "schema_migrations", "name of migrations table")
	flag.Parse()

	if storagePath == "" {
		storagePath = fmt.Sprintf("%s:%s@%s:%s/%s",
			os.Getenv("BORUTA_DB_USER"), os.Getenv("BORUTA_DB_PASS"),
			os.Getenv("BORUTA_DB_HOST"), os.Getenv("BORUTA_DB_PORT"), os.Getenv("BORUTA_DB_NAME"))
	}
	databaseURL := fmt.Sprintf("postgres://%s?x-migrations-table=%s&sslmode=disable", storagePath, migrationsTable)

	if migrationsPath == "" {
		panic("migrations-path is required")
	}

	m, err := migrate.New("file://"+migrationsPath, databaseURL)
	if err != nil {
		panic(err)
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			fmt.Println("no migrations to apply")
			return
		}
		panic(err)
	}
	fmt.Println("migrations completed successfully")
}
