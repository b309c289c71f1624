package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/casekeeper/internal/client/client"
	"github.com/dmitrijs2005/casekeeper/internal/client/config"
	"github.com/dmitrijs2005/casekeeper/internal/client/services"
	"github.com/dmitrijs2005/casekeeper/internal/client/storage"
	"github.com/dmitrijs2005/casekeeper/internal/logging"
)

// App holds the services behind every command.
type App struct {
	config  *config.Config
	log     logging.Logger
	db      *sql.DB
	auth    services.AuthService
	cases   services.CaseService
	catalog services.CatalogService
	iam     services.IAMService
	session services.EditSession

	in  *bufio.Reader
	out io.Writer
}

// NewApp opens the local store and connects the services to the backend.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}
	repos := client.NewRepositories(db)

	auth := services.NewAuthService(repos.Metadata, log)

	api, err := client.NewHTTPClient(c.APIBaseURL,
		client.WithTimeout(c.RequestTimeout),
		client.WithRateLimit(c.RequestsPerSecond, c.RequestBurst),
		client.WithTokenSource(auth),
		client.WithLogger(log),
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	var uploader services.Uploader = api
	if c.UploadBackend == config.UploadBackendS3 {
		s3u, err := storage.NewS3Uploader(ctx, c.S3)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("s3 uploader: %w", err)
		}
		uploader = s3u
	}

	catalog := services.NewCatalogService(api)

	return &App{
		config:  c,
		log:     log,
		db:      db,
		auth:    auth,
		cases:   services.NewCaseService(api),
		catalog: catalog,
		iam:     services.NewIAMService(api),
		session: services.NewEditSession(api, catalog, uploader, repos.Drafts, repos.Metadata, log),
		in:      bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

// Close releases the local store.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
