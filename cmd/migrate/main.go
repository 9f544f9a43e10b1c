package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"lifeos/internal/config"
	"lifeos/internal/container"
	"lifeos/internal/migration"

	"github.com/joho/godotenv"
)

// migrate applies the schema to the configured database and, when given a
// directory, imports every snapshot file found under it in name order.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()
	log.Printf("Applying schema %s to %s database", migration.NewRunner().Version(), cfg.Database.Driver)

	db, err := container.OpenDatabase(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	if len(os.Args) < 2 {
		db.Close()
		log.Printf("Schema is up to date")
		return
	}

	c, err := container.New(cfg, nil)
	if err != nil {
		log.Fatalf("Failed to create container: %v", err)
	}
	if err := c.InitWithDatabase(db); err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer c.Shutdown(ctx)

	files, err := findSnapshotFiles(os.Args[1])
	if err != nil {
		log.Fatalf("Failed to find snapshot files: %v", err)
	}
	log.Printf("Found %d snapshot files to import", len(files))

	imported := 0
	skipped := 0
	for _, file := range files {
		snap, err := container.ReadSnapshotFile(file, cfg.Insights.Location)
		if err != nil {
			log.Printf("Failed to read %s: %v", file, err)
			skipped++
			continue
		}

		counts, err := c.Transfer.Import(ctx, snap)
		if err != nil {
			log.Printf("Failed to import %s: %v", file, err)
			skipped++
			continue
		}

		imported++
		log.Printf("Imported %s: %s", filepath.Base(file), counts)
	}

	log.Printf("Migration complete: %d imported, %d skipped", imported, skipped)
}

func findSnapshotFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml", ".xlsx", ".csv", ".json":
			files = append(files, path)
		}
		return nil
	})

	sort.Strings(files)
	return files, err
}
