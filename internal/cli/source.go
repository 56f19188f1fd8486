package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/alexanderramin/lifemap/internal/db"
	"github.com/alexanderramin/lifemap/internal/domain"
	"github.com/alexanderramin/lifemap/internal/importer"
	"github.com/alexanderramin/lifemap/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	// ErrNoSource is returned when no database or snapshot file was named.
	ErrNoSource = errors.New("no tree source: pass --db or --from, or set LIFEMAP_DB")

	// ErrProjectRequired is returned when a database source has no --project.
	ErrProjectRequired = errors.New("--project is required with a database source (see `lifemap projects`)")
)

// sourceOptions selects where the tree is loaded from.
type sourceOptions struct {
	db      string
	from    string
	project string
}

func addSourceFlags(fs *pflag.FlagSet, o *sourceOptions) {
	fs.StringVar(&o.db, "db", "", "LifeMap SQLite database (default $LIFEMAP_DB)")
	fs.StringVar(&o.from, "from", "", "Tree snapshot file (.json, .yaml or .yml)")
	fs.StringVarP(&o.project, "project", "p", "", "Project id")
}

// commandContext returns the command's context, or a background one when
// the command runs without ExecuteContext.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// DefaultDBPath returns $LIFEMAP_DB.
func DefaultDBPath() string {
	return os.Getenv("LIFEMAP_DB")
}

// openDatabase opens the database named by --db or the app default.
func openDatabase(app *App, o *sourceOptions) (*databaseHandle, error) {
	path := domain.CoalesceStr(o.db, app.DefaultDB)
	if path == "" {
		return nil, ErrNoSource
	}
	database, err := db.OpenDB(path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return &databaseHandle{DB: database, uow: db.NewSQLiteUnitOfWork(database)}, nil
}

// openSession loads the selected project into a new editor session. The
// returned function releases the source.
func openSession(ctx context.Context, app *App, o *sourceOptions) (service.EditorService, func() error, error) {
	opts := []service.EditorOption{
		service.WithObserver(app.Observer),
		service.WithLogger(app.logger()),
	}

	var (
		source service.TreeSource
		closer = func() error { return nil }
	)
	switch {
	case o.from != "" && o.db != "":
		return nil, nil, errors.New("--db and --from cannot be used together")
	case o.from != "":
		source = importer.NewFileSource(o.from)
	default:
		h, err := openDatabase(app, o)
		if err != nil {
			return nil, nil, err
		}
		if o.project == "" {
			h.Close()
			return nil, nil, ErrProjectRequired
		}
		source = service.NewRepositorySource(h.uow)
		closer = h.Close
		opts = append(opts, service.WithReloadAfterSave())
	}

	session := service.NewEditorService(source, app.Saver, opts...)
	if err := session.Load(ctx, o.project); err != nil {
		closer()
		return nil, nil, err
	}
	return session, closer, nil
}

// databaseHandle keeps an open database with its unit of work.
type databaseHandle struct {
	DB  *sql.DB
	uow db.UnitOfWork
}

func (h *databaseHandle) Close() error {
	return h.DB.Close()
}
