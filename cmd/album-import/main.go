// Command album-import seeds the album catalogue from a JSON file and can promote an account to admin.
//
//	album-import -file albums.json -promote-admin alice@example.com
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"musify/database"
	"musify/internal/config"
	"musify/internal/logging"
	"musify/internal/microservices/http-api/models"
	"musify/internal/microservices/http-api/repository"
)

// albumRecord is one entry of the import file.
type albumRecord struct {
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

type importSummary struct {
	Imported   int
	Duplicates int
	Invalid    int
}

func main() {
	file := flag.String("file", "", "path to a JSON array of albums")
	promoteEmail := flag.String("promote-admin", "", "email of an account to grant the admin role")
	flag.Parse()

	if *file == "" && *promoteEmail == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	// Connect also applies the schema
	db, err := database.Connect(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	store := repository.NewStore(db)
	ctx := context.Background()

	if *file != "" {
		f, err := os.Open(*file)
		if err != nil {
			log.Fatalf("Failed to open %s: %v", *file, err)
		}
		defer f.Close()

		records, err := readAlbums(f)
		if err != nil {
			log.Fatalf("Failed to read %s: %v", *file, err)
		}
		logger.Info("loaded albums from file", "file", *file, "count", len(records))

		summary, err := importAlbums(ctx, store, records, logger)
		if err != nil {
			log.Fatalf("Import failed, nothing was written: %v", err)
		}
		logger.Info("album import completed",
			"imported", summary.Imported,
			"duplicates", summary.Duplicates,
			"invalid", summary.Invalid,
		)
	}

	if *promoteEmail != "" {
		if err := promoteToAdmin(ctx, store.Repos().Users, *promoteEmail); err != nil {
			log.Fatalf("Failed to promote %s: %v", *promoteEmail, err)
		}
		logger.Info("granted admin role", "email", *promoteEmail)
	}
}

func readAlbums(r io.Reader) ([]albumRecord, error) {
	var records []albumRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}
	return records, nil
}

// importAlbums writes every new album in one transaction. Entries whose title and artist are
// already catalogued (or appear earlier in the file) are skipped, as are entries missing a field.
func importAlbums(ctx context.Context, store repository.Store, records []albumRecord, logger *slog.Logger) (importSummary, error) {
	var summary importSummary

	err := store.WithinTransaction(ctx, func(tx *repository.Repositories) error {
		summary = importSummary{}
		for i, rec := range records {
			album := &models.Album{
				Title:       strings.TrimSpace(rec.Title),
				Artist:      strings.TrimSpace(rec.Artist),
				Description: strings.TrimSpace(rec.Description),
				ImageURL:    strings.TrimSpace(rec.ImageURL),
			}
			if album.Title == "" || album.Artist == "" || album.Description == "" || album.ImageURL == "" {
				logger.Warn("skipping incomplete album", "index", i, "title", album.Title)
				summary.Invalid++
				continue
			}

			exists, err := tx.Albums.ExistsByTitleAndArtist(ctx, album.Title, album.Artist)
			if err != nil {
				return err
			}
			if exists {
				logger.Debug("skipping duplicate album", "title", album.Title, "artist", album.Artist)
				summary.Duplicates++
				continue
			}

			if err := tx.Albums.Create(ctx, album); err != nil {
				return fmt.Errorf("album %q: %w", album.Title, err)
			}
			summary.Imported++
		}
		return nil
	})
	return summary, err
}

func promoteToAdmin(ctx context.Context, users repository.UserRepository, email string) error {
	user, err := users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("no account with email %s", email)
		}
		return err
	}
	return users.UpdateRole(ctx, user.ID, models.RoleAdmin)
}
