package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/snowskye/clinic-backend/internal/models"
)

const (
	usersFile        = "users.json"
	leadsFile        = "leads.json"
	appointmentsFile = "appointments.json"
)

// FileStore persists each record kind as one JSON array file under dir.
// Every mutation is a whole-file read-modify-write guarded by a per-kind
// mutex, so concurrent requests in this process cannot lose updates.
// Concurrent processes sharing the same directory can still race; expected
// load does not warrant more.
type FileStore struct {
	dir    string
	logger *zap.Logger

	userMu sync.Mutex
	leadMu sync.Mutex
	apptMu sync.Mutex
}

// NewFileStore creates the data directory if needed.
func NewFileStore(dir string, logger *zap.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStore{dir: dir, logger: logger}, nil
}

// readAll loads a whole collection. A missing file initializes to an empty
// array. Unparseable content is moved aside to <file>.corrupt.<ms>.bak and
// the collection resets to empty; the caller never sees an error for it.
func readAll[T any](s *FileStore, name string) ([]T, error) {
	path := filepath.Join(s.dir, name)

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
			return nil, fmt.Errorf("init %s: %w", name, err)
		}
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	var records []T
	if err := json.Unmarshal(raw, &records); err != nil {
		backup := fmt.Sprintf("%s.corrupt.%d.bak", path, time.Now().UnixMilli())
		if werr := os.WriteFile(backup, raw, 0o644); werr != nil {
			s.logger.Error("failed to quarantine corrupt file",
				zap.String("file", name), zap.Error(werr))
		} else {
			s.logger.Warn("corrupt data file quarantined",
				zap.String("file", name), zap.String("backup", backup), zap.Error(err))
		}
		if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
			return nil, fmt.Errorf("reset %s: %w", name, err)
		}
		return []T{}, nil
	}
	return records, nil
}

func writeAll[T any](s *FileStore, name string, records []T) error {
	raw, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), raw, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// User operations

func (s *FileStore) CreateUser(user *models.User) error {
	s.userMu.Lock()
	defer s.userMu.Unlock()

	users, err := readAll[models.User](s, usersFile)
	if err != nil {
		return err
	}
	for _, u := range users {
		if u.Email == user.Email {
			return ErrUserExists
		}
	}
	return writeAll(s, usersFile, append(users, *user))
}

func (s *FileStore) GetUserByEmail(email string) (*models.User, error) {
	s.userMu.Lock()
	defer s.userMu.Unlock()

	users, err := readAll[models.User](s, usersFile)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email {
			u := users[i]
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *FileStore) ListUsers() ([]models.User, error) {
	s.userMu.Lock()
	defer s.userMu.Unlock()
	return readAll[models.User](s, usersFile)
}

// Lead operations

func (s *FileStore) AppendLead(lead *models.Lead) error {
	s.leadMu.Lock()
	defer s.leadMu.Unlock()

	leads, err := readAll[models.Lead](s, leadsFile)
	if err != nil {
		return err
	}
	return writeAll(s, leadsFile, append(leads, *lead))
}

func (s *FileStore) ListLeads() ([]models.Lead, error) {
	s.leadMu.Lock()
	defer s.leadMu.Unlock()
	return readAll[models.Lead](s, leadsFile)
}

// Appointment operations

func (s *FileStore) AppendAppointment(appt *models.Appointment) error {
	s.apptMu.Lock()
	defer s.apptMu.Unlock()

	appts, err := readAll[models.Appointment](s, appointmentsFile)
	if err != nil {
		return err
	}
	return writeAll(s, appointmentsFile, append(appts, *appt))
}

func (s *FileStore) GetAppointment(id string) (*models.Appointment, error) {
	s.apptMu.Lock()
	defer s.apptMu.Unlock()

	appts, err := readAll[models.Appointment](s, appointmentsFile)
	if err != nil {
		return nil, err
	}
	for i := range appts {
		if appts[i].ID == id {
			a := appts[i]
			return &a, nil
		}
	}
	return nil, ErrNotFound
}

func (s *FileStore) UpdateAppointment(appt *models.Appointment) error {
	s.apptMu.Lock()
	defer s.apptMu.Unlock()

	appts, err := readAll[models.Appointment](s, appointmentsFile)
	if err != nil {
		return err
	}
	for i := range appts {
		if appts[i].ID == appt.ID {
			appts[i] = *appt
			return writeAll(s, appointmentsFile, appts)
		}
	}
	return ErrNotFound
}

func (s *FileStore) ListAppointments() ([]models.Appointment, error) {
	s.apptMu.Lock()
	defer s.apptMu.Unlock()
	return readAll[models.Appointment](s, appointmentsFile)
}

func (s *FileStore) Close() error { return nil }
