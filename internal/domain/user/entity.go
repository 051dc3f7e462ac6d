// Package user contains the core domain logic for accounts and health profiles.
package user

import (
	"time"

	"github.com/google/uuid"
)

// Gender values accepted on a profile.
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// HealthGoal values accepted on a profile.
const (
	GoalLoseWeight       = "lose_weight"
	GoalGainMuscle       = "gain_muscle"
	GoalMaintain         = "maintain"
	GoalImproveNutrition = "improve_nutrition"
)

// User represents an account. Authentication state (password hash, staff flag)
// lives here; everything presentational lives on Profile.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	IsStaff      bool
	IsActive     bool
	CreatedAt    time.Time
}

// Profile holds the health profile attached one-to-one to a user.
type Profile struct {
	UserID              uuid.UUID
	Nickname            string
	Avatar              string
	Gender              string
	Age                 int
	Phone               string
	DietaryPreferences  []string
	Allergies           []string
	HealthGoal          string
	DailyCaloriesTarget int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Follow is a directed edge between two users.
type Follow struct {
	FollowerID uuid.UUID
	FolloweeID uuid.UUID
	CreatedAt  time.Time
}

// NewUser creates a user with a validated username. The password hash is
// produced by the security layer, not here.
func NewUser(username, email, passwordHash string) (*User, error) {
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}
	if passwordHash == "" {
		return nil, ErrEmptyPasswordHash
	}
	return &User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}, nil
}

// DefaultProfile returns the profile created alongside a fresh account.
func DefaultProfile(u *User, nickname string) *Profile {
	if nickname == "" {
		nickname = u.Username
	}
	now := time.Now()
	return &Profile{
		UserID:    u.ID,
		Nickname:  nickname,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ValidateUsername enforces the 3-30 character account name rule.
func ValidateUsername(username string) error {
	if len(username) < 3 {
		return ErrUsernameTooShort
	}
	if len(username) > 30 {
		return ErrUsernameTooLong
	}
	return nil
}

// ValidatePassword enforces the minimum password length.
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return ErrPasswordTooShort
	}
	if len(password) > 128 {
		return ErrPasswordTooLong
	}
	return nil
}

// Validate checks profile fields that carry numeric or enum constraints.
func (p *Profile) Validate() error {
	if p.Age < 0 || p.Age > 150 {
		return ErrInvalidAge
	}
	if p.DailyCaloriesTarget < 0 {
		return ErrInvalidCaloriesTarget
	}
	switch p.Gender {
	case "", GenderMale, GenderFemale, GenderOther:
	default:
		return ErrInvalidGender
	}
	switch p.HealthGoal {
	case "", GoalLoseWeight, GoalGainMuscle, GoalMaintain, GoalImproveNutrition:
	default:
		return ErrInvalidHealthGoal
	}
	return nil
}

// AgeGroup buckets the profile age for recommendation heuristics.
func (p *Profile) AgeGroup() string {
	switch {
	case p.Age <= 0:
		return "unknown"
	case p.Age < 18:
		return "teen"
	case p.Age < 35:
		return "young_adult"
	case p.Age < 60:
		return "middle_aged"
	default:
		return "senior"
	}
}

// IsAllergicTo reports whether the ingredient name appears in the allergy list.
func (p *Profile) IsAllergicTo(ingredientName string) bool {
	for _, a := range p.Allergies {
		if a == ingredientName {
			return true
		}
	}
	return false
}
