package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/vncsmyrnk/datepoll/internal/config"
)

// Runs one migration file by name, e.g. `migrations create_polls.up`.
func main() {
	if len(os.Args) < 2 {
		log.Fatal().Msg("a migration name is required")
	}
	migrationName := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := sql.Open("postgres", cfg.Postgres.ConnString())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	basePath := filepath.Join(".", "internal", "adapters", "repository", "postgres", "migrations")
	fileName, err := migrationFileName(basePath, migrationName)
	if err != nil {
		log.Fatal().Err(err).Str("migration", migrationName).Msg("migration not found")
	}

	fileContent, err := os.ReadFile(filepath.Join(basePath, fileName))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read migration")
	}

	if _, err := db.Exec(string(fileContent)); err != nil {
		log.Fatal().Err(err).Str("file", fileName).Msg("failed to execute migration")
	}

	log.Info().Str("file", fileName).Msg("migration executed")
}

func migrationFileName(basePath string, migrationName string) (string, error) {
	regex, err := regexp.Compile(fmt.Sprintf(`^.*%s\.sql$`, regexp.QuoteMeta(migrationName)))
	if err != nil {
		return "", err
	}

	files, err := os.ReadDir(basePath)
	if err != nil {
		return "", err
	}
	for _, f := range files {
		if !f.IsDir() && regex.MatchString(f.Name()) {
			return f.Name(), nil
		}
	}

	return "", fmt.Errorf("no file matches %q in %s", migrationName, basePath)
}
