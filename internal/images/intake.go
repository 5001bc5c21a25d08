// Package images stores consultation photos uploaded for the shop's expert.
package images

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kisankhidmat/khidmat/internal/ledger"
)

const timestampLayout = "20060102150405"

var ErrEmptyImage = errors.New("image content is empty")

// Stored describes an image written by Intake.
type Stored struct {
	FileName string
	Path     string
	Size     int64
	StoredAt time.Time
}

// Intake writes uploaded images to a dedicated directory.
type Intake struct {
	dir string
	now func() time.Time
}

// NewIntake creates an Intake writing under dir.
func NewIntake(dir string) (*Intake, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create image directory: %w", err)
	}
	return &Intake{dir: dir, now: time.Now}, nil
}

// Store writes content to "<phone>_<YYYYMMDDhhmmss>.jpg". Two uploads for the same
// phone within one second share a name and the later one wins.
func (in *Intake) Store(phone string, content []byte) (Stored, error) {
	if err := ledger.ValidatePhone(phone); err != nil {
		return Stored{}, err
	}
	if len(content) == 0 {
		return Stored{}, ErrEmptyImage
	}

	at := in.now()
	name := fmt.Sprintf("%s_%s.jpg", phone, at.Format(timestampLayout))
	path := filepath.Join(in.dir, name)
	if err := os.WriteFile(path, content, 0644); err != nil {
		return Stored{}, fmt.Errorf("failed to write image: %w", err)
	}

	return Stored{FileName: name, Path: path, Size: int64(len(content)), StoredAt: at}, nil
}
