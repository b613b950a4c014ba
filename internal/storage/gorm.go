package storage

import (
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/snowskye/clinic-backend/internal/models"
)

// GormStore backs the same Store contract with an embedded sqlite database,
// for deployments that outgrow the flat JSON files. Callers are unaware of
// which backend is active.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens (or creates) the sqlite database and migrates the
// record tables.
func NewGormStore(path string) (*GormStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Lead{}, &models.Appointment{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &GormStore{db: db}, nil
}

func (g *GormStore) CreateUser(user *models.User) error {
	var count int64
	if err := g.db.Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrUserExists
	}
	return g.db.Create(user).Error
}

func (g *GormStore) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := g.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (g *GormStore) ListUsers() ([]models.User, error) {
	var users []models.User
	return users, g.db.Order("created").Find(&users).Error
}

func (g *GormStore) AppendLead(lead *models.Lead) error {
	return g.db.Create(lead).Error
}

func (g *GormStore) ListLeads() ([]models.Lead, error) {
	var leads []models.Lead
	return leads, g.db.Order("time").Find(&leads).Error
}

func (g *GormStore) AppendAppointment(appt *models.Appointment) error {
	return g.db.Create(appt).Error
}

func (g *GormStore) GetAppointment(id string) (*models.Appointment, error) {
	var appt models.Appointment
	err := g.db.Where("id = ?", id).First(&appt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

func (g *GormStore) UpdateAppointment(appt *models.Appointment) error {
	res := g.db.Model(&models.Appointment{}).Where("id = ?", appt.ID).
		Select("Status", "ConfirmToken", "ConfirmedAt").Updates(appt)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *GormStore) ListAppointments() ([]models.Appointment, error) {
	var appts []models.Appointment
	return appts, g.db.Order("created").Find(&appts).Error
}

func (g *GormStore) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
