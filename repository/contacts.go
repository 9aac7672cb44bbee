package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"contacts-api/models"
)

// ContactRepository owns every contact query. All operations except ListAll
// are scoped to the owning user, which is what keeps tenants from seeing
// each other's rows. Absent rows come back as (nil, nil).
type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) List(ctx context.Context, limit, offset int, ownerID uint) ([]models.Contact, error) {
	var contacts []models.Contact
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Limit(limit).Offset(offset).
		Find(&contacts).Error
	return contacts, err
}

// ListAll ignores ownership. Callers must gate it behind the privileged
// roles themselves.
func (r *ContactRepository) ListAll(ctx context.Context, limit, offset int) ([]models.Contact, error) {
	var contacts []models.Contact
	err := r.db.WithContext(ctx).
		Limit(limit).Offset(offset).
		Find(&contacts).Error
	return contacts, err
}

func (r *ContactRepository) Get(ctx context.Context, id, ownerID uint) (*models.Contact, error) {
	var contact models.Contact
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&contact).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

// Create persists contact with the owner forced from ownerID; whatever the
// caller put in contact.UserID is discarded.
func (r *ContactRepository) Create(ctx context.Context, contact *models.Contact, ownerID uint) (*models.Contact, error) {
	contact.UserID = &ownerID
	if err := r.db.WithContext(ctx).Create(contact).Error; err != nil {
		return nil, err
	}
	return contact, nil
}

// ContactFields is the full set of mutable contact fields. Update always
// writes all of them.
type ContactFields struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	Birthday    models.Date
}

func (r *ContactRepository) Update(ctx context.Context, id uint, fields ContactFields, ownerID uint) (*models.Contact, error) {
	contact, err := r.Get(ctx, id, ownerID)
	if err != nil || contact == nil {
		return nil, err
	}

	contact.FirstName = fields.FirstName
	contact.LastName = fields.LastName
	contact.Email = fields.Email
	contact.PhoneNumber = fields.PhoneNumber
	contact.Birthday = fields.Birthday

	if err := r.db.WithContext(ctx).Save(contact).Error; err != nil {
		return nil, err
	}
	return contact, nil
}

func (r *ContactRepository) Delete(ctx context.Context, id, ownerID uint) (*models.Contact, error) {
	contact, err := r.Get(ctx, id, ownerID)
	if err != nil || contact == nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Delete(contact).Error; err != nil {
		return nil, err
	}
	return contact, nil
}

// Search ANDs together the non-empty filters on top of the owner scope.
func (r *ContactRepository) Search(ctx context.Context, firstName, lastName, email string, ownerID uint) ([]models.Contact, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", ownerID)
	if firstName != "" {
		q = q.Where("first_name = ?", firstName)
	}
	if lastName != "" {
		q = q.Where("last_name = ?", lastName)
	}
	if email != "" {
		q = q.Where("email = ?", email)
	}

	var contacts []models.Contact
	err := q.Find(&contacts).Error
	return contacts, err
}

// UpcomingBirthdays returns the owner's contacts whose birthday month/day,
// birth year ignored, falls within the seven days starting at today. The
// window check runs in Go so it behaves the same on every database.
func (r *ContactRepository) UpcomingBirthdays(ctx context.Context, ownerID uint, today time.Time) ([]models.Contact, error) {
	var contacts []models.Contact
	if err := r.db.WithContext(ctx).Where("user_id = ?", ownerID).Find(&contacts).Error; err != nil {
		return nil, err
	}

	upcoming := make([]models.Contact, 0, len(contacts))
	for _, c := range contacts {
		if birthdayInWindow(c.Birthday, today, 7) {
			upcoming = append(upcoming, c)
		}
	}
	return upcoming, nil
}

// birthdayInWindow reports whether the month/day of birthday falls within
// days of today, inclusive on both ends. Windows crossing New Year work
// because each day of the window is checked individually.
func birthdayInWindow(birthday models.Date, today time.Time, days int) bool {
	if birthday.IsZero() {
		return false
	}
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	for i := 0; i <= days; i++ {
		d := start.AddDate(0, 0, i)
		if d.Month() == birthday.Month() && d.Day() == birthday.Day() {
			return true
		}
	}
	return false
}
