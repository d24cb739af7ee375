package mediastore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"github.com/MilanKovacevic/FeroCast/internal/pkg/apperr"
	"github.com/MilanKovacevic/FeroCast/internal/pkg/env"
)

// Saved is one durably stored upload.
type Saved struct {
	URL          string
	OriginalName string
}

// Store persists uploads either to a local directory served under
// /uploads, or by delegating the whole batch to a remote upload
// endpoint when one is configured.
type Store struct {
	root        string
	remoteURL   string
	remoteToken string
	client      *http.Client
}

func New(root, remoteURL, remoteToken string) *Store {
	return &Store{
		root:        root,
		remoteURL:   strings.TrimSpace(remoteURL),
		remoteToken: strings.TrimSpace(remoteToken),
		client:      &http.Client{Timeout: 60 * time.Second},
	}
}

func NewFromEnv() *Store {
	return New(
		env.GetEnv("UPLOAD_DIR", "./uploads"),
		env.GetEnv("UPLOAD_ENDPOINT", ""),
		env.GetEnv("UPLOAD_TOKEN", ""),
	)
}

// UsesLocalDisk reports whether uploads land in the local upload dir,
// which main uses to decide whether to serve /uploads statically.
func (s *Store) UsesLocalDisk() bool {
	return s.remoteURL == ""
}

// Save validates and persists one form field's uploads. Zero-byte items
// are discarded and anything beyond the category maximum is silently
// dropped; a type or size violation rejects the whole batch. Returned
// URLs keep the order of the accepted inputs.
func (s *Store) Save(ctx context.Context, cat Category, files []*multipart.FileHeader) ([]Saved, error) {
	accepted := make([]*multipart.FileHeader, 0, len(files))
	for _, fh := range files {
		if fh == nil || fh.Size == 0 {
			continue
		}
		accepted = append(accepted, fh)
		if len(accepted) == cat.MaxCount {
			break
		}
	}
	if len(accepted) == 0 {
		return nil, nil
	}

	exts := make([]string, len(accepted))
	for i, fh := range accepted {
		ext := resolveExt(cat, fh)
		mimeType := declaredMIME(fh)
		if !cat.MIMETypes[mimeType] && !cat.Exts[ext] {
			return nil, apperr.Validation(fmt.Sprintf("Nedozvoljen tip fajla: %s", fh.Filename))
		}
		if fh.Size > cat.MaxBytes {
			return nil, apperr.Validation(fmt.Sprintf("Fajl %s je veći od dozvoljenih %d MB", fh.Filename, cat.MaxBytes/megabyte))
		}
		exts[i] = ext
	}

	if s.remoteURL != "" {
		return s.forwardRemote(ctx, cat, accepted)
	}
	return s.saveLocal(cat, accepted, exts)
}

// declaredMIME strips any parameters from the Content-Type the client
// sent for the part; an absent header yields "".
func declaredMIME(fh *multipart.FileHeader) string {
	ct := strings.TrimSpace(fh.Header.Get("Content-Type"))
	if idx := strings.Index(ct, ";"); idx >= 0 {
		ct = ct[:idx]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}

// resolveExt prefers the extension implied by the declared MIME type,
// falls back to the filename extension when that one is allowed, and
// otherwise sticks with the MIME-derived value (possibly empty).
func resolveExt(cat Category, fh *multipart.FileHeader) string {
	mimeExt := cat.ExtByMIME[declaredMIME(fh)]
	if mimeExt != "" {
		return mimeExt
	}
	nameExt := strings.ToLower(filepath.Ext(fh.Filename))
	if cat.Exts[nameExt] {
		return nameExt
	}
	return mimeExt
}

func (s *Store) saveLocal(cat Category, files []*multipart.FileHeader, exts []string) ([]Saved, error) {
	dir := filepath.Join(s.root, cat.Name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		fiberlog.Errorf("[mediastore] create upload dir %s: %v", dir, err)
		return nil, apperr.Ingestion("Greška pri čuvanju fajlova", err)
	}

	saved := make([]Saved, 0, len(files))
	for i, fh := range files {
		name := uuid.New().String() + exts[i]
		if err := writeFile(fh, filepath.Join(dir, name)); err != nil {
			fiberlog.Errorf("[mediastore] write %s: %v", fh.Filename, err)
			return nil, apperr.Ingestion("Greška pri čuvanju fajlova", err)
		}
		saved = append(saved, Saved{
			URL:          "/uploads/" + cat.Name + "/" + name,
			OriginalName: fh.Filename,
		})
	}
	return saved, nil
}

func writeFile(fh *multipart.FileHeader, dst string) error {
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// forwardRemote sends the whole batch to the configured upload service
// as a single multipart POST and maps its `urls` array back onto the
// inputs, order preserved.
func (s *Store) forwardRemote(ctx context.Context, cat Category, files []*multipart.FileHeader) ([]Saved, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		defer pw.Close()
		defer mw.Close()

		_ = mw.WriteField("folder", cat.Name)
		if s.remoteToken != "" {
			_ = mw.WriteField("token", s.remoteToken)
		}
		for _, fh := range files {
			part, err := mw.CreateFormFile("images", fh.Filename)
			if err != nil {
				_ = pw.CloseWithError(err)
				return
			}
			src, err := fh.Open()
			if err != nil {
				_ = pw.CloseWithError(err)
				return
			}
			if _, err := io.Copy(part, src); err != nil {
				_ = src.Close()
				_ = pw.CloseWithError(err)
				return
			}
			_ = src.Close()
		}
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.remoteURL, pr)
	if err != nil {
		_ = pw.CloseWithError(err)
		<-writerDone
		return nil, apperr.Ingestion("Greška pri slanju fajlova", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if s.remoteToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.remoteToken)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		_ = pw.CloseWithError(err)
		<-writerDone
		fiberlog.Errorf("[mediastore] upload endpoint unreachable: %v", err)
		return nil, apperr.Ingestion("Servis za upload nije dostupan", err)
	}
	defer resp.Body.Close()
	<-writerDone

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		fiberlog.Errorf("[mediastore] upload endpoint status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		return nil, apperr.Ingestion(remoteMessage(body), fmt.Errorf("status %d", resp.StatusCode))
	}

	var payload struct {
		URLs []string `json:"urls"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, apperr.Ingestion("Neispravan odgovor servisa za upload", err)
	}
	if len(payload.URLs) != len(files) {
		return nil, apperr.Ingestion("Neispravan odgovor servisa za upload",
			fmt.Errorf("sent %d files, got %d urls", len(files), len(payload.URLs)))
	}

	saved := make([]Saved, len(files))
	for i, fh := range files {
		saved[i] = Saved{URL: payload.URLs[i], OriginalName: fh.Filename}
	}
	return saved, nil
}

// remoteMessage pulls a human-readable message out of an error response
// body, falling back to a generic one.
func remoteMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && strings.TrimSpace(payload.Message) != "" {
		return payload.Message
	}
	return "Upload fajlova nije uspeo"
}
