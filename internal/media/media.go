// Package media stores uploaded artwork images and videos on local disk.
package media

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/01moynul/artstudio-golang/internal/models"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var (
	ErrUnsupportedKind = errors.New("only image and video files are accepted")
	ErrTooLarge        = errors.New("file is too large")
)

// sniffLen is how much of the file is inspected to detect its type.
const sniffLen = 3072

// Uploader writes files under Dir and serves them from BaseURL/uploads.
type Uploader struct {
	Dir      string
	BaseURL  string
	MaxBytes int64
}

// Save stores r and returns a reference to it.
// The stored name is random and its extension follows the detected type,
// never the client's filename.
func (u *Uploader) Save(r io.Reader) (models.MediaRef, error) {
	br := bufio.NewReaderSize(r, sniffLen)
	head, err := br.Peek(sniffLen)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return models.MediaRef{}, fmt.Errorf("read upload: %w", err)
	}

	mtype := mimetype.Detect(head)
	kind, ok := KindOf(mtype.String())
	if !ok {
		return models.MediaRef{}, ErrUnsupportedKind
	}

	if err := os.MkdirAll(u.Dir, 0755); err != nil {
		return models.MediaRef{}, fmt.Errorf("create upload dir: %w", err)
	}

	key := uuid.NewString() + mtype.Extension()
	path := filepath.Join(u.Dir, key)

	f, err := os.Create(path)
	if err != nil {
		return models.MediaRef{}, fmt.Errorf("create upload file: %w", err)
	}

	src := io.Reader(br)
	if u.MaxBytes > 0 {
		src = io.LimitReader(br, u.MaxBytes+1)
	}
	size, copyErr := io.Copy(f, src)
	closeErr := f.Close()

	switch {
	case copyErr != nil:
		os.Remove(path)
		return models.MediaRef{}, fmt.Errorf("write upload: %w", copyErr)
	case closeErr != nil:
		os.Remove(path)
		return models.MediaRef{}, fmt.Errorf("write upload: %w", closeErr)
	case u.MaxBytes > 0 && size > u.MaxBytes:
		os.Remove(path)
		return models.MediaRef{}, ErrTooLarge
	}

	log.WithFields(log.Fields{"key": key, "kind": kind, "size": size}).Info("Stored upload")
	return models.MediaRef{
		URL:  strings.TrimRight(u.BaseURL, "/") + "/uploads/" + key,
		Key:  key,
		Kind: kind,
		Size: size,
	}, nil
}

// Remove deletes a stored file. Missing files are not an error.
func (u *Uploader) Remove(key string) error {
	if key == "" || key != filepath.Base(key) {
		return fmt.Errorf("invalid media key %q", key)
	}
	err := os.Remove(filepath.Join(u.Dir, key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// KindOf maps a MIME type to a media kind.
func KindOf(mime string) (models.MediaKind, bool) {
	switch {
	case strings.HasPrefix(mime, "image/"):
		return models.MediaImage, true
	case strings.HasPrefix(mime, "video/"):
		return models.MediaVideo, true
	default:
		return "", false
	}
}
