// file: internals/helpers/storage/local_storage.go
package storage

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"iglesiamqv_backend/internals/constants"
)

const MaxArchivosPorRequest = 5

// Tipos permitidos: imágenes y videos, igual que el filtro original.
var allowedMimeTypes = map[string]struct{}{
	"image/jpeg":      {},
	"image/png":       {},
	"image/gif":       {},
	"image/webp":      {},
	"video/mp4":       {},
	"video/avi":       {},
	"video/quicktime": {},
	"video/x-msvideo": {},
}

// Errores distinguibles de upload (sub-tipos del 400 genérico).
var (
	ErrTipoNoPermitido = errors.New("Tipo de archivo no permitido. Solo se permiten imágenes (JPG, PNG, GIF, WebP) y videos (MP4, AVI, MOV).")
	ErrArchivoGrande   = errors.New("El archivo es demasiado grande. Máximo 10MB.")
	ErrMuchosArchivos  = errors.New("Demasiados archivos. Máximo 5 archivos por vez.")
	ErrSinArchivos     = errors.New("No se seleccionaron archivos.")
)

type ArchivoGuardado struct {
	Filename     string
	OriginalName string
	Mimetype     string
	Size         int64
	Path         string
}

// LocalStorage escribe los uploads bajo BaseDir/<ministerio-slug>/.
type LocalStorage struct {
	BaseDir     string
	MaxFileSize int64
}

func NewLocalStorage(baseDir string, maxFileSize int) *LocalStorage {
	if baseDir == "" {
		baseDir = "uploads"
	}
	return &LocalStorage{BaseDir: baseDir, MaxFileSize: int64(maxFileSize)}
}

// CollectArchivos junta los *FileHeader del form multipart. El campo
// canónico es "archivos"; se aceptan variantes comunes de FE/Postman.
func CollectArchivos(form *multipart.Form) []*multipart.FileHeader {
	if form == nil || form.File == nil {
		return nil
	}
	candidates := []string{"archivos", "archivos[]", "files", "file"}

	var out []*multipart.FileHeader
	seen := map[string]bool{}
	for _, key := range candidates {
		if fhs, ok := form.File[key]; ok {
			for _, fh := range fhs {
				if fh != nil && fh.Filename != "" {
					out = append(out, fh)
				}
			}
			seen[key] = true
		}
	}
	for key, fhs := range form.File {
		if seen[key] {
			continue
		}
		for _, fh := range fhs {
			if fh != nil && fh.Filename != "" {
				out = append(out, fh)
			}
		}
	}
	return out
}

// ValidateAll valida cantidad, tipo MIME y tamaño de TODOS los archivos
// antes de escribir nada a disco.
func (s *LocalStorage) ValidateAll(files []*multipart.FileHeader) error {
	if len(files) == 0 {
		return ErrSinArchivos
	}
	if len(files) > MaxArchivosPorRequest {
		return ErrMuchosArchivos
	}
	for _, fh := range files {
		if _, ok := allowedMimeTypes[MimeOf(fh)]; !ok {
			return ErrTipoNoPermitido
		}
		if fh.Size > s.MaxFileSize {
			return ErrArchivoGrande
		}
	}
	return nil
}

// SaveAll valida y luego persiste cada archivo. Los escritos no son
// transaccionales como lote: si el archivo N falla, 1..N-1 quedan en disco.
func (s *LocalStorage) SaveAll(files []*multipart.FileHeader, ministerio string) ([]ArchivoGuardado, error) {
	if err := s.ValidateAll(files); err != nil {
		return nil, err
	}

	dir := filepath.Join(s.BaseDir, constants.MinisterioSlug(ministerio))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("no se pudo crear el directorio de uploads: %w", err)
	}

	saved := make([]ArchivoGuardado, 0, len(files))
	for _, fh := range files {
		filename := storedName(fh.Filename)
		dst := filepath.Join(dir, filename)
		if err := saveFile(fh, dst); err != nil {
			return saved, fmt.Errorf("error guardando %s: %w", fh.Filename, err)
		}
		saved = append(saved, ArchivoGuardado{
			Filename:     filename,
			OriginalName: fh.Filename,
			Mimetype:     MimeOf(fh),
			Size:         fh.Size,
			Path:         dst,
		})
	}
	return saved, nil
}

// Remove borra el archivo físico (y su thumbnail si existe). Best effort:
// un fallo se loguea y no se propaga.
func (s *LocalStorage) Remove(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("[WARN] Error eliminando archivo físico %s: %v", path, err)
	}
	thumb := ThumbPath(path)
	if err := os.Remove(thumb); err != nil && !os.IsNotExist(err) {
		log.Printf("[WARN] Error eliminando thumbnail %s: %v", thumb, err)
	}
}

// MimeOf devuelve el Content-Type declarado del part, sin parámetros.
func MimeOf(fh *multipart.FileHeader) string {
	ct := fh.Header.Get("Content-Type")
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return strings.TrimSpace(strings.ToLower(ct))
}

// <millis>-<nombre_sin_espacios><ext>: evita colisiones y conserva la
// trazabilidad al nombre original.
func storedName(original string) string {
	ext := filepath.Ext(original)
	base := strings.TrimSuffix(filepath.Base(original), ext)
	base = strings.Join(strings.Fields(base), "_")
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), base, ext)
}

func saveFile(fh *multipart.FileHeader, dst string) error {
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, src)
	return err
}
