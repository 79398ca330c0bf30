package ranking

import (
	"bytes"
	"os"

	json "github.com/goccy/go-json"

	"rankd/internal/models"
	"rankd/internal/providers"
	"rankd/internal/ranking/interfaces"
	"rankd/internal/services"
)

// FileManager persists the ranking snapshot. The on-disk form is the binary
// snapshot format compressed with zstd, written atomically. Loading also
// accepts the legacy single-epoch JSON layout (compressed or not) and migrates
// it in place.
type FileManager struct {
	service    services.RankingServiceInterface
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewFileManager(compressor interfaces.CompressorInterface, service services.RankingServiceInterface, logger providers.Logger) *FileManager {
	return &FileManager{
		compressor: compressor,
		service:    service,
		logger:     logger,
	}
}

func (f *FileManager) SaveToFile(fileName string) error {
	snapshot := f.service.GetSnapshot()

	var buf bytes.Buffer
	if err := snapshot.WriteBinaryTo(&buf); err != nil {
		return err
	}
	data, err := f.compressor.Compress(buf.Bytes())
	if err != nil {
		return err
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

func (f *FileManager) LoadFromFile(fileName string) error {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	decompressed, err := f.compressor.Decompress(data)
	if err != nil {
		// Legacy JSON snapshots were written uncompressed.
		decompressed = data
	}

	if models.HasBinaryMagic(decompressed) {
		snapshot, err := models.ReadSnapshotFrom(bytes.NewReader(decompressed))
		if err != nil {
			return err
		}
		return f.service.PutSnapshot(snapshot)
	}

	// Versioned JSON envelope, the intermediate format.
	var snapshot models.Snapshot
	if err := json.Unmarshal(decompressed, &snapshot); err == nil && snapshot.Version > 0 {
		return f.service.PutSnapshot(&snapshot)
	}

	// Pre-season layout: single implicit epoch, admin fields at top level.
	f.logger.Warnf(providers.TypeApp, "Inconsistent DB found, try to migrate from old data format")
	var legacy models.LegacySnapshot
	if err := json.Unmarshal(decompressed, &legacy); err != nil || legacy.Players == nil {
		f.logger.Warnf(providers.TypeApp, "Migration failed")
		return models.ErrMigrationFailed
	}
	f.logger.Warnf(providers.TypeApp, "Migration from legacy format successful")
	return f.service.PutSnapshot(legacy.Migrate())
}
