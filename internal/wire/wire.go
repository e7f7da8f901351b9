// Package wire provides dependency injection for the rpgdash application.
// It creates singleton services with lazy initialization.
package wire

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/example/rpgdash/internal/adapters/auth"
	cliadapter "github.com/example/rpgdash/internal/adapters/cli"
	"github.com/example/rpgdash/internal/adapters/filesystem"
	"github.com/example/rpgdash/internal/adapters/objectstore"
	"github.com/example/rpgdash/internal/adapters/sqlite"
	"github.com/example/rpgdash/internal/app"
	"github.com/example/rpgdash/internal/config"
	"github.com/example/rpgdash/internal/db"
	"github.com/example/rpgdash/internal/logging"
	"github.com/example/rpgdash/internal/ports/secondary"
)

// Options are the command-line overrides applied before the first service
// is requested.
type Options struct {
	DataDir    string
	ConfigPath string
	Verbose    bool
}

// Services is the assembled object graph.
type Services struct {
	Config      *config.Config
	Logger      *zap.Logger
	Store       *app.DataStoreImpl
	Attachments *app.AttachmentServiceImpl
	Auth        *auth.TokenProvider
	Remote      secondary.RemoteStore // nil when remote sync is off

	closers []func() error
}

var (
	options  Options
	services *Services
	once     sync.Once
)

// Configure sets the options used by the lazy initialization. It has no
// effect once a service has been requested.
func Configure(opts Options) {
	options = opts
}

// Get returns the singleton services.
func Get() *Services {
	once.Do(initServices)
	return services
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	dataDir, err := config.ResolveDataDir(options.DataDir)
	if err != nil {
		log.Fatalf("failed to resolve data directory: %v", err)
	}
	var cfg *config.Config
	if options.ConfigPath != "" {
		cfg, err = config.LoadConfigFile(dataDir, options.ConfigPath)
	} else {
		cfg, err = config.LoadConfig(dataDir)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger, err := logging.New(cfg.Log, options.Verbose)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}

	ctx := context.Background()
	services, err = Build(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("failed to initialize services: %v", err)
	}

	// Commands are short-lived: edits must land on the reconciled document,
	// not on the local copy a pending pull is about to replace.
	waitCtx, cancel := context.WithTimeout(ctx, cfg.Remote.Timeout+time.Second)
	defer cancel()
	if err := services.Store.AwaitReconciled(waitCtx); err != nil {
		logger.Warn("initial sync did not finish", zap.Error(err))
	}
}

// Build opens the configured adapters and assembles the services. The
// returned Services must be closed.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Services, error) {
	s := &Services{Config: cfg, Logger: logger}

	// The attachment table always lives in sqlite, next to the slots when
	// those are in sqlite too.
	dbPath := db.DefaultPath(cfg.DataDir)
	if cfg.Local.Backend == config.LocalSQLite {
		dbPath = cfg.LocalPath()
	}
	database, err := db.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	s.closers = append(s.closers, database.Close)

	var slots secondary.SlotStore
	switch cfg.Local.Backend {
	case config.LocalFile:
		slots = filesystem.NewSlotFile(cfg.LocalPath(), logger.Named("slots"))
	default:
		slots = sqlite.NewSlotRepository(database)
	}

	remote, err := openRemote(cfg)
	if err != nil {
		s.Close(ctx)
		return nil, err
	}
	if remote != nil {
		s.Remote = remote.store
		if remote.db != nil {
			s.closers = append(s.closers, remote.db.Close)
		}
	}

	s.Auth = auth.NewTokenProvider(slots, auth.Config{
		Secret: []byte(cfg.Auth.Secret),
		Issuer: cfg.Auth.Issuer,
	}, logger.Named("auth"))

	local := app.NewLocalPersistence(slots, cfg.Local.Key, logger.Named("local"))
	s.Store = app.NewDataStore(ctx, local, s.Remote, logger.Named("store"), app.StoreOptions{
		Debounce:      cfg.Remote.Debounce,
		RemoteTimeout: cfg.Remote.Timeout,
	})
	s.Attachments = app.NewAttachmentService(sqlite.NewAttachmentRepository(database))

	if err := s.Auth.Restore(ctx); err != nil {
		logger.Warn("failed to restore session", zap.Error(err))
	}
	s.Store.Attach(ctx, s.Auth)

	logger.Debug("services ready",
		zap.String("data_dir", cfg.DataDir),
		zap.String("local", cfg.Local.Backend),
		zap.String("remote", cfg.Remote.Backend),
		zap.Bool("auth", cfg.AuthConfigured()),
	)
	return s, nil
}

type openedRemote struct {
	store secondary.RemoteStore
	db    *sql.DB
}

func openRemote(cfg *config.Config) (*openedRemote, error) {
	switch cfg.Remote.Backend {
	case config.RemoteSQLite:
		rdb, err := db.Open(cfg.RemotePath())
		if err != nil {
			return nil, fmt.Errorf("failed to open remote database: %w", err)
		}
		return &openedRemote{store: sqlite.NewRemoteRepository(rdb), db: rdb}, nil
	case config.RemoteS3:
		store, err := objectstore.New(objectstore.Options{
			Endpoint:  cfg.Remote.S3.Endpoint,
			Bucket:    cfg.Remote.S3.Bucket,
			Prefix:    cfg.Remote.S3.Prefix,
			AccessKey: cfg.Remote.S3.AccessKey,
			SecretKey: cfg.Remote.S3.SecretKey,
			UseSSL:    cfg.Remote.S3.UseSSL,
			Region:    cfg.Remote.S3.Region,
		})
		if err != nil {
			return nil, err
		}
		return &openedRemote{store: store}, nil
	}
	return nil, nil
}

// Close flushes the pending remote write, stops the store and releases the
// databases.
func (s *Services) Close(ctx context.Context) {
	if s.Store != nil {
		if err := s.Store.Flush(ctx); err != nil {
			s.Logger.Warn("pending remote write failed", zap.Error(err))
		}
		s.Store.Close()
	}
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			s.Logger.Warn("failed to close resource", zap.Error(err))
		}
	}
	s.closers = nil
	_ = s.Logger.Sync()
}

// Shutdown closes the singleton services if they were initialized.
func Shutdown(ctx context.Context) {
	if services != nil {
		services.Close(ctx)
	}
}

// CampaignAdapter returns a new CampaignAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func CampaignAdapter() *cliadapter.CampaignAdapter {
	return CampaignAdapterWithOutput(os.Stdout)
}

// CampaignAdapterWithOutput returns a new CampaignAdapter writing to the given output.
func CampaignAdapterWithOutput(out io.Writer) *cliadapter.CampaignAdapter {
	return cliadapter.NewCampaignAdapter(Get().Store, out)
}

// CharacterAdapter returns a new CharacterAdapter writing to stdout.
func CharacterAdapter() *cliadapter.CharacterAdapter {
	return CharacterAdapterWithOutput(os.Stdout)
}

// CharacterAdapterWithOutput returns a new CharacterAdapter writing to the given output.
func CharacterAdapterWithOutput(out io.Writer) *cliadapter.CharacterAdapter {
	return cliadapter.NewCharacterAdapter(Get().Store, out)
}

// ModuleAdapter returns a new ModuleAdapter writing to stdout.
func ModuleAdapter() *cliadapter.ModuleAdapter {
	return ModuleAdapterWithOutput(os.Stdout)
}

// ModuleAdapterWithOutput returns a new ModuleAdapter writing to the given output.
func ModuleAdapterWithOutput(out io.Writer) *cliadapter.ModuleAdapter {
	return cliadapter.NewModuleAdapter(Get().Store, out)
}

// SessionAdapter returns a new SessionAdapter writing to stdout.
func SessionAdapter() *cliadapter.SessionAdapter {
	return SessionAdapterWithOutput(os.Stdout)
}

// SessionAdapterWithOutput returns a new SessionAdapter writing to the given output.
func SessionAdapterWithOutput(out io.Writer) *cliadapter.SessionAdapter {
	return cliadapter.NewSessionAdapter(Get().Store, out)
}

// SyncAdapter returns a new SyncAdapter writing to stdout.
func SyncAdapter() *cliadapter.SyncAdapter {
	return SyncAdapterWithOutput(os.Stdout)
}

// SyncAdapterWithOutput returns a new SyncAdapter writing to the given output.
func SyncAdapterWithOutput(out io.Writer) *cliadapter.SyncAdapter {
	s := Get()
	return s.SyncAdapter(out)
}

// SyncAdapter builds a SyncAdapter over these services.
func (s *Services) SyncAdapter(out io.Writer) *cliadapter.SyncAdapter {
	inspector, _ := s.Remote.(cliadapter.RemoteInspector)
	return cliadapter.NewSyncAdapter(s.Store, s.Auth, inspector, out)
}

// AttachmentAdapter returns a new AttachmentAdapter writing to stdout.
func AttachmentAdapter() *cliadapter.AttachmentAdapter {
	return AttachmentAdapterWithOutput(os.Stdout)
}

// AttachmentAdapterWithOutput returns a new AttachmentAdapter writing to the given output.
func AttachmentAdapterWithOutput(out io.Writer) *cliadapter.AttachmentAdapter {
	return cliadapter.NewAttachmentAdapter(Get().Attachments, out)
}
