package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"chickenmaster-api/models"

	"go.uber.org/zap"
)

const adminUsersFile = "admin-users.json"

// FileAdminRepository stores dashboard accounts in a flat JSON file. When the
// file is empty or missing, the default manager and admin accounts are seeded
// so a fresh deployment can be logged into immediately.
type FileAdminRepository struct {
	mu     sync.RWMutex
	path   string
	users  []models.AdminUser
	logger *zap.Logger
}

// NewFileAdminRepository loads (and seeds, if needed) the admin users file.
func NewFileAdminRepository(dataDir string, logger *zap.Logger) (*FileAdminRepository, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	r := &FileAdminRepository{
		path:   filepath.Join(dataDir, adminUsersFile),
		logger: logger,
	}
	r.load()

	if len(r.users) == 0 {
		r.users = defaultAdminUsers()
		if err := r.flush(); err != nil {
			return nil, fmt.Errorf("seed admin users: %w", err)
		}
		logger.Info("Seeded default admin users", zap.Int("count", len(r.users)))
	}
	return r, nil
}

func defaultAdminUsers() []models.AdminUser {
	now := time.Now()
	return []models.AdminUser{
		{
			ID:        "manager-001",
			Email:     "manager@chickenmaster.com",
			Password:  "Manager2026!",
			Name:      "Chef Manager",
			Role:      models.AdminRoleManager,
			IsActive:  true,
			CreatedAt: now,
		},
		{
			ID:        "admin-001",
			Email:     "admin@chickenmaster.com",
			Password:  "Admin2026!",
			Name:      "Employé Admin",
			Role:      models.AdminRoleAdmin,
			IsActive:  true,
			CreatedAt: now,
		},
	}
}

func (r *FileAdminRepository) load() {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			r.logger.Warn("Failed to read admin users file",
				zap.String("path", r.path), zap.Error(err))
		}
		return
	}
	if err := json.Unmarshal(data, &r.users); err != nil {
		r.logger.Warn("Corrupt admin users file, starting empty",
			zap.String("path", r.path), zap.Error(err))
		r.users = nil
	}
}

// flush writes the user list to disk. Caller must hold the write lock (or be
// the constructor, before the repository is shared).
func (r *FileAdminRepository) flush() error {
	data, err := json.MarshalIndent(r.users, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal admin users: %w", err)
	}
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write admin users file: %w", err)
	}
	return os.Rename(tmp, r.path)
}

// FindByEmail returns the user with a matching email (case-insensitive) or
// ErrNotFound.
func (r *FileAdminRepository) FindByEmail(_ context.Context, email string) (*models.AdminUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.users {
		if strings.EqualFold(r.users[i].Email, email) {
			cp := r.users[i]
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

// FindByID returns the user or ErrNotFound.
func (r *FileAdminRepository) FindByID(_ context.Context, id string) (*models.AdminUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.users {
		if r.users[i].ID == id {
			cp := r.users[i]
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

// Update replaces an existing user record and persists the list.
func (r *FileAdminRepository) Update(_ context.Context, user *models.AdminUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.users {
		if r.users[i].ID == user.ID {
			r.users[i] = *user
			return r.flush()
		}
	}
	return ErrNotFound
}
