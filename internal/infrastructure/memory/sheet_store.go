// Package memory implementa el almacén de hojas en memoria, con instantánea opcional en disco
// para que el modo desarrollo sobreviva reinicios.
package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jhoicas/Inventario-sheets/internal/domain/repository"
)

var _ repository.SheetStore = (*SheetStore)(nil)

// SheetStore guarda cada hoja como una matriz de celdas.
type SheetStore struct {
	mu           sync.RWMutex
	sheets       map[string][][]string
	snapshotPath string
	writes       map[string]int
}

// NewSheetStore construye un almacén vacío. Si snapshotPath no está vacío se carga
// (si existe) y se reescribe tras cada escritura.
func NewSheetStore(snapshotPath string) (*SheetStore, error) {
	s := &SheetStore{
		sheets:       make(map[string][][]string),
		snapshotPath: snapshotPath,
		writes:       make(map[string]int),
	}
	if snapshotPath == "" {
		return s, nil
	}
	data, err := os.ReadFile(snapshotPath)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leer instantánea: %w", err)
	}
	if err := json.Unmarshal(data, &s.sheets); err != nil {
		return nil, fmt.Errorf("decodificar instantánea: %w", err)
	}
	return s, nil
}

// Open devuelve la hoja name; se crea vacía si no existe.
func (s *SheetStore) Open(_ context.Context, name string) (repository.Sheet, error) {
	return &sheet{store: s, name: name}, nil
}

// Seed fija el contenido bruto de una hoja (cabecera incluida).
func (s *SheetStore) Seed(name string, values [][]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sheets[name] = cloneRows(values)
}

// Values copia del contenido actual de la hoja.
func (s *SheetStore) Values(name string) [][]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneRows(s.sheets[name])
}

// Writes número de WriteRows aplicados a la hoja.
func (s *SheetStore) Writes(name string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes[name]
}

func (s *SheetStore) persist() error {
	if s.snapshotPath == "" {
		return nil
	}
	data, err := json.MarshalIndent(s.sheets, "", "  ")
	if err != nil {
		return fmt.Errorf("codificar instantánea: %w", err)
	}
	if dir := filepath.Dir(s.snapshotPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("crear directorio de instantánea: %w", err)
		}
	}
	tmp := s.snapshotPath + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("escribir instantánea: %w", err)
	}
	return os.Rename(tmp, s.snapshotPath)
}

type sheet struct {
	store *SheetStore
	name  string
}

func (h *sheet) ReadAllRows(_ context.Context) ([][]string, error) {
	return h.store.Values(h.name), nil
}

func (h *sheet) Clear(_ context.Context) error {
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	delete(h.store.sheets, h.name)
	return h.store.persist()
}

func (h *sheet) WriteRows(_ context.Context, header []string, rows [][]string) error {
	values := make([][]string, 0, len(rows)+1)
	values = append(values, header)
	values = append(values, rows...)

	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	h.store.sheets[h.name] = cloneRows(values)
	h.store.writes[h.name]++
	return h.store.persist()
}

func cloneRows(values [][]string) [][]string {
	if values == nil {
		return nil
	}
	out := make([][]string, len(values))
	for i, row := range values {
		out[i] = append([]string(nil), row...)
	}
	return out
}
