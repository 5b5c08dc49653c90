package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Anu1650/team-mange-sam/internal/models"
)

const (
	dataFileMode    = 0o600
	dataDirMode     = 0o700
	tempFilePattern = ".data-*.json.tmp"
)

// FileDatasetRepo はデータセットをJSONファイルに保存します
// 一時ファイルに書き込んでからrenameするため、書き込み途中のファイルが残ることはありません
type FileDatasetRepo struct {
	path string
}

var (
	_ DatasetRepo = (*FileDatasetRepo)(nil)
	_ SaveTimer   = (*FileDatasetRepo)(nil)
)

func NewFileDatasetRepo(path string) (*FileDatasetRepo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve data file path: %w", err)
	}
	return &FileDatasetRepo{path: filepath.Clean(abs)}, nil
}

// Path は保存先の絶対パスを返します
func (r *FileDatasetRepo) Path() string { return r.path }

func (r *FileDatasetRepo) Load(ctx context.Context) (models.Dataset, bool, error) {
	if err := ctx.Err(); err != nil {
		return models.Dataset{}, false, err
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return models.Dataset{}, false, nil
		}
		return models.Dataset{}, false, fmt.Errorf("read data file: %w", err)
	}

	var d models.Dataset
	if err := json.Unmarshal(data, &d); err != nil {
		return models.Dataset{}, false, fmt.Errorf("decode data file: %w", err)
	}
	d.ApplyDefaults()
	return d, true, nil
}

func (r *FileDatasetRepo) Save(ctx context.Context, d models.Dataset) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("encode data file: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, dataDirMode); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	tempFile, err := os.CreateTemp(dir, tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp data file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp data file: %w", err)
	}

	if err := tempFile.Chmod(dataFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp data file: %w", err)
	}

	if err := tempFile.Sync(); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("sync temp data file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp data file: %w", err)
	}

	if err := os.Rename(tempName, r.path); err != nil {
		return fmt.Errorf("replace data file: %w", err)
	}
	cleanup = false

	return nil
}

// SavedAt はデータファイルの更新時刻を返します
func (r *FileDatasetRepo) SavedAt(ctx context.Context) (time.Time, error) {
	if err := ctx.Err(); err != nil {
		return time.Time{}, err
	}
	info, err := os.Stat(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("stat data file: %w", err)
	}
	return info.ModTime().UTC(), nil
}
