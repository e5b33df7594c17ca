package inventory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/Inventario-sheets/internal/domain/inventory"
)

// DefaultSessionKey sesión compartida cuando la autenticación está desactivada.
const DefaultSessionKey = "default"

// Session es dueña de una tabla de inventario. Sus acciones se serializan: hay un
// único escritor por sesión. Entre sesiones no hay coordinación y la última
// sobrescritura de la hoja gana.
type Session struct {
	Key string

	mu       sync.Mutex
	table    *inventory.Table
	lastUsed time.Time
}

// SessionRegistry crea sesiones bajo demanda y descarta las inactivas.
type SessionRegistry struct {
	uc      *InventoryUseCase
	idleTTL time.Duration
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewSessionRegistry construye el registro. idleTTL <= 0 mantiene las sesiones indefinidamente.
func NewSessionRegistry(uc *InventoryUseCase, idleTTL time.Duration) *SessionRegistry {
	return &SessionRegistry{
		uc:       uc,
		idleTTL:  idleTTL,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Get devuelve la sesión key, creándola si no existe. La tabla se carga en el primer uso.
func (r *SessionRegistry) Get(key string) *Session {
	if key == "" {
		key = DefaultSessionKey
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if r.idleTTL > 0 {
		for k, s := range r.sessions {
			if k != key && s.idle(now) > r.idleTTL {
				delete(r.sessions, k)
			}
		}
	}
	s, ok := r.sessions[key]
	if !ok {
		s = &Session{Key: key, lastUsed: now}
		r.sessions[key] = s
	}
	return s
}

// Len número de sesiones activas.
func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Do ejecuta fn con la tabla de la sesión key, cargándola si aún no existe.
func (r *SessionRegistry) Do(ctx context.Context, key string, fn func(tbl *inventory.Table) error) error {
	s := r.Get(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastUsed = r.now()
	if s.table == nil {
		tbl, err := r.uc.Load(ctx)
		if err != nil {
			return err
		}
		s.table = tbl
	}
	return fn(s.table)
}

func (s *Session) idle(now time.Time) time.Duration {
	// Una sesión ocupada no está inactiva.
	if !s.mu.TryLock() {
		return 0
	}
	defer s.mu.Unlock()
	return now.Sub(s.lastUsed)
}
