// Package gorm provides the GORM models and repositories backing the
// outbound persistence ports.
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel represents the GORM model for accounts
type UserModel struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey"`
	Username     string    `gorm:"type:varchar(30);uniqueIndex;not null"`
	Email        string    `gorm:"type:varchar(255)"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	IsStaff      bool      `gorm:"default:false"`
	IsActive     bool      `gorm:"default:true"`
	CreatedAt    time.Time

	Profile *ProfileModel `gorm:"foreignKey:UserID"`
}

// ProfileModel represents the GORM model for health profiles
type ProfileModel struct {
	UserID              uuid.UUID   `gorm:"type:char(36);primaryKey"`
	Nickname            string      `gorm:"type:varchar(100)"`
	Avatar              string      `gorm:"type:text"`
	Gender              string      `gorm:"type:varchar(10)"`
	Age                 int         `gorm:"default:0"`
	Phone               string      `gorm:"type:varchar(20)"`
	DietaryPreferences  StringSlice `gorm:"type:json"`
	Allergies           StringSlice `gorm:"type:json"`
	HealthGoal          string      `gorm:"type:varchar(30)"`
	DailyCaloriesTarget int         `gorm:"default:0"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// FollowModel represents the GORM model for follow edges
type FollowModel struct {
	FollowerID uuid.UUID `gorm:"type:char(36);primaryKey"`
	FolloweeID uuid.UUID `gorm:"type:char(36);primaryKey"`
	CreatedAt  time.Time `gorm:"index"`
}

// IngredientModel represents the GORM model for the ingredient catalog
type IngredientModel struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey"`
	Name         string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Category     string    `gorm:"type:varchar(20);index"`
	ImageURL     string    `gorm:"type:text"`
	Calories     float64   `gorm:"default:0"`
	Protein      float64   `gorm:"default:0"`
	Fat          float64   `gorm:"default:0"`
	Carbohydrate float64   `gorm:"default:0"`
	Fiber        float64   `gorm:"default:0"`
	Vitamins     FloatMap  `gorm:"type:json"`
	Description  string    `gorm:"type:text"`
	Season       IntSlice  `gorm:"type:json"`
	CreatedAt    time.Time
}

// RecognitionModel represents the GORM model for recognition history
type RecognitionModel struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;index"`
	ImageURL  string    `gorm:"type:text"`
	Result    string    `gorm:"type:json"`
	CreatedAt time.Time `gorm:"index"`
}

// RecipeModel represents the GORM model for recipes
type RecipeModel struct {
	ID            uuid.UUID   `gorm:"type:char(36);primaryKey"`
	Name          string      `gorm:"type:varchar(200);not null;index"`
	CoverImage    string      `gorm:"type:text"`
	AuthorID      uuid.UUID   `gorm:"type:char(36);not null;index"`
	Difficulty    string      `gorm:"type:varchar(10);index"`
	CookingTime   int         `gorm:"default:0"`
	Servings      int         `gorm:"default:1"`
	Category      string      `gorm:"type:varchar(20);index"`
	CuisineType   string      `gorm:"type:varchar(20);index"`
	Tags          StringSlice `gorm:"type:json"`
	TotalCalories float64     `gorm:"default:0"`
	Description   string      `gorm:"type:text"`
	Views         int         `gorm:"column:views_count;default:0;index"`
	Likes         int         `gorm:"column:likes_count;default:0;index"`
	Favorites     int         `gorm:"column:favorites_count;default:0"`
	IsPublished   bool        `gorm:"default:true;index"`
	CreatedAt     time.Time   `gorm:"index"`
	UpdatedAt     time.Time

	Ingredients []RecipeIngredientModel `gorm:"foreignKey:RecipeID"`
	Steps       []CookingStepModel      `gorm:"foreignKey:RecipeID"`
}

// RecipeIngredientModel represents the GORM model for ingredient lines
type RecipeIngredientModel struct {
	RecipeID     uuid.UUID `gorm:"type:char(36);primaryKey"`
	IngredientID uuid.UUID `gorm:"type:char(36);primaryKey"`
	Quantity     float64   `gorm:"not null"`
	Unit         string    `gorm:"type:varchar(20);default:'g'"`
	IsMain       bool      `gorm:"default:false"`

	Ingredient IngredientModel `gorm:"foreignKey:IngredientID"`
}

// CookingStepModel represents the GORM model for cooking steps
type CookingStepModel struct {
	RecipeID    uuid.UUID `gorm:"type:char(36);primaryKey"`
	StepNumber  int       `gorm:"primaryKey"`
	Description string    `gorm:"type:text;not null"`
	ImageURL    string    `gorm:"type:text"`
	Duration    int       `gorm:"default:0"`
	Tips        string    `gorm:"type:text"`
}

// BehaviorModel represents the GORM model for user-recipe interactions
type BehaviorModel struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;index:idx_behavior_user_recipe"`
	RecipeID  uuid.UUID `gorm:"type:char(36);not null;index:idx_behavior_user_recipe"`
	Type      string    `gorm:"type:varchar(10);not null;index"`
	CreatedAt time.Time `gorm:"index"`
}

// ShoppingItemModel represents the GORM model for shopping list rows
type ShoppingItemModel struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey"`
	UserID       uuid.UUID `gorm:"type:char(36);not null;index"`
	IngredientID uuid.UUID `gorm:"type:char(36);not null;index"`
	Quantity     float64   `gorm:"not null"`
	Unit         string    `gorm:"type:varchar(20);default:'g'"`
	Purchased    bool      `gorm:"default:false;index"`
	CreatedAt    time.Time `gorm:"index"`
	UpdatedAt    time.Time

	Ingredient IngredientModel `gorm:"foreignKey:IngredientID"`
}

// FoodPostModel represents the GORM model for feed posts
type FoodPostModel struct {
	ID            uuid.UUID   `gorm:"type:char(36);primaryKey"`
	UserID        uuid.UUID   `gorm:"type:char(36);not null;index"`
	RecipeID      *uuid.UUID  `gorm:"type:char(36);index"`
	Content       string      `gorm:"type:text;not null"`
	Images        StringSlice `gorm:"type:json"`
	Likes         int         `gorm:"column:likes_count;default:0"`
	CommentsCount int         `gorm:"default:0"`
	CreatedAt     time.Time   `gorm:"index"`
}

// PostLikeModel represents the GORM model for post likes
type PostLikeModel struct {
	PostID    uuid.UUID `gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID `gorm:"type:char(36);primaryKey"`
	CreatedAt time.Time
}

// CommentModel represents the GORM model for comments on recipes and posts
type CommentModel struct {
	ID         uuid.UUID  `gorm:"type:char(36);primaryKey"`
	UserID     uuid.UUID  `gorm:"type:char(36);not null;index"`
	TargetType string     `gorm:"type:varchar(10);not null;index:idx_comment_target"`
	TargetID   uuid.UUID  `gorm:"type:char(36);not null;index:idx_comment_target"`
	Content    string     `gorm:"type:text;not null"`
	ParentID   *uuid.UUID `gorm:"type:char(36);index"`
	CreatedAt  time.Time  `gorm:"index"`

	Replies []CommentModel `gorm:"foreignKey:ParentID"`
}

// DietaryLogModel represents the GORM model for dietary diary entries
type DietaryLogModel struct {
	ID           uuid.UUID  `gorm:"type:char(36);primaryKey"`
	UserID       uuid.UUID  `gorm:"type:char(36);not null;index:idx_log_user_date"`
	RecipeID     *uuid.UUID `gorm:"type:char(36)"`
	FoodName     string     `gorm:"type:varchar(200)"`
	Calories     float64    `gorm:"default:0"`
	Protein      float64    `gorm:"default:0"`
	Fat          float64    `gorm:"default:0"`
	Carbohydrate float64    `gorm:"default:0"`
	MealType     string     `gorm:"type:varchar(10);not null"`
	Date         time.Time  `gorm:"type:date;not null;index:idx_log_user_date"`
	CreatedAt    time.Time
}

// StringSlice custom type for handling string slices in JSON columns
type StringSlice []string

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", value)
	}
}

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	return json.Marshal(s)
}

// IntSlice custom type for handling int slices in JSON columns
type IntSlice []int

// Scan implements the sql.Scanner interface
func (s *IntSlice) Scan(value interface{}) error {
	if value == nil {
		*s = IntSlice{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into IntSlice", value)
	}
}

// Value implements the driver.Valuer interface
func (s IntSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	return json.Marshal(s)
}

// FloatMap custom type for handling string-to-float maps in JSON columns
type FloatMap map[string]float64

// Scan implements the sql.Scanner interface
func (m *FloatMap) Scan(value interface{}) error {
	if value == nil {
		*m = FloatMap{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("cannot scan %T into FloatMap", value)
	}
}

// Value implements the driver.Valuer interface
func (m FloatMap) Value() (driver.Value, error) {
	if len(m) == 0 {
		return "{}", nil
	}
	return json.Marshal(m)
}

// BeforeCreate hook for UserModel
func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for IngredientModel
func (i *IngredientModel) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for RecipeModel
func (r *RecipeModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for BehaviorModel
func (b *BehaviorModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for ShoppingItemModel
func (s *ShoppingItemModel) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for FoodPostModel
func (p *FoodPostModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for CommentModel
func (c *CommentModel) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for DietaryLogModel
func (d *DietaryLogModel) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for RecognitionModel
func (r *RecognitionModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName methods for custom table names
func (UserModel) TableName() string {
	return "users"
}

func (ProfileModel) TableName() string {
	return "user_profiles"
}

func (FollowModel) TableName() string {
	return "user_follows"
}

func (IngredientModel) TableName() string {
	return "ingredients"
}

func (RecognitionModel) TableName() string {
	return "ingredient_recognitions"
}

func (RecipeModel) TableName() string {
	return "recipes"
}

func (RecipeIngredientModel) TableName() string {
	return "recipe_ingredients"
}

func (CookingStepModel) TableName() string {
	return "cooking_steps"
}

func (BehaviorModel) TableName() string {
	return "user_behaviors"
}

func (ShoppingItemModel) TableName() string {
	return "shopping_items"
}

func (FoodPostModel) TableName() string {
	return "food_posts"
}

func (PostLikeModel) TableName() string {
	return "post_likes"
}

func (CommentModel) TableName() string {
	return "comments"
}

func (DietaryLogModel) TableName() string {
	return "dietary_logs"
}

// AllModels lists every model for automigration.
func AllModels() []interface{} {
	return []interface{}{
		&UserModel{},
		&ProfileModel{},
		&FollowModel{},
		&IngredientModel{},
		&RecognitionModel{},
		&RecipeModel{},
		&RecipeIngredientModel{},
		&CookingStepModel{},
		&BehaviorModel{},
		&ShoppingItemModel{},
		&FoodPostModel{},
		&PostLikeModel{},
		&CommentModel{},
		&DietaryLogModel{},
	}
}
