package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/khoahotran/portfolio/internal/application/service"
	"github.com/khoahotran/portfolio/internal/application/usecase/content"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/logger"
	"go.uber.org/zap"
)

const SnapshotVersion = 1

type Snapshot struct {
	Version int       `json:"version"`
	TakenAt time.Time `json:"taken_at"`
	content.Export
}

type BackupUseCase struct {
	store  *content.EntityStore
	sink   service.BackupSink
	logger logger.Logger
	now    func() time.Time
}

func NewBackupUseCase(store *content.EntityStore, sink service.BackupSink, log logger.Logger) *BackupUseCase {
	return &BackupUseCase{
		store:  store,
		sink:   sink,
		logger: log,
		now:    time.Now,
	}
}

type BackupOutput struct {
	Key      string
	Location string
	Events   int
}

// Execute stores a snapshot under a key derived from the current time.
func (uc *BackupUseCase) Execute(ctx context.Context) (*BackupOutput, error) {
	return uc.ExecuteAs(ctx, "")
}

// ExecuteAs stores a snapshot under key, or under a timestamped key when key
// is empty.
func (uc *BackupUseCase) ExecuteAs(ctx context.Context, key string) (*BackupOutput, error) {
	uc.logger.Info("Starting content backup...")

	export, err := uc.store.Export(ctx)
	if err != nil {
		uc.logger.Error("Content export failed", err)
		return nil, err
	}

	takenAt := uc.now().UTC()
	snap := Snapshot{Version: SnapshotVersion, TakenAt: takenAt, Export: *export}
	body, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, apperror.NewInternal("failed to encode snapshot", err)
	}

	if key == "" {
		key = fmt.Sprintf("backup-%s.json", takenAt.Format("2006-01-02_15-04-05"))
	}
	location, err := uc.sink.Upload(ctx, bytes.NewReader(body), key)
	if err != nil {
		uc.logger.Error("Failed to upload backup", err, zap.String("key", key))
		return nil, apperror.NewUnavailable("failed to upload backup", err)
	}

	uc.logger.Info("Content backup completed and uploaded successfully",
		zap.String("location", location),
		zap.Int("events", len(export.Events)),
	)
	return &BackupOutput{Key: key, Location: location, Events: len(export.Events)}, nil
}

type RestoreUseCase struct {
	store  *content.EntityStore
	sink   service.BackupSink
	logger logger.Logger
}

func NewRestoreUseCase(store *content.EntityStore, sink service.BackupSink, log logger.Logger) *RestoreUseCase {
	return &RestoreUseCase{store: store, sink: sink, logger: log}
}

func (uc *RestoreUseCase) Execute(ctx context.Context, key string) (*Snapshot, error) {
	rc, err := uc.sink.Open(ctx, key)
	if err != nil {
		return nil, apperror.NewUnavailable("failed to open backup "+key, err)
	}
	defer rc.Close()

	var snap Snapshot
	if err := json.NewDecoder(rc).Decode(&snap); err != nil {
		return nil, apperror.NewInvalidInput("backup is not a valid snapshot", err)
	}
	if snap.Version != SnapshotVersion {
		return nil, apperror.NewInvalidInput(fmt.Sprintf("unsupported snapshot version %d", snap.Version), nil)
	}

	if err := uc.store.Import(ctx, &snap.Export); err != nil {
		uc.logger.Error("Restore failed", err, zap.String("key", key))
		return nil, err
	}
	uc.logger.Info("Content restored", zap.String("key", key), zap.Int("events", len(snap.Events)))
	return &snap, nil
}
