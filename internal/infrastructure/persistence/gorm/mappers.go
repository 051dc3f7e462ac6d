package gorm

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/smartrecipe/server/internal/domain/community"
	"github.com/smartrecipe/server/internal/domain/ingredient"
	"github.com/smartrecipe/server/internal/domain/nutrition"
	"github.com/smartrecipe/server/internal/domain/recipe"
	"github.com/smartrecipe/server/internal/domain/shopping"
	"github.com/smartrecipe/server/internal/domain/user"
)

func userToModel(u *user.User) *UserModel {
	return &UserModel{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		IsStaff:      u.IsStaff,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
	}
}

func userToDomain(m *UserModel) *user.User {
	return &user.User{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		IsStaff:      m.IsStaff,
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
	}
}

func profileToModel(p *user.Profile) *ProfileModel {
	return &ProfileModel{
		UserID:              p.UserID,
		Nickname:            p.Nickname,
		Avatar:              p.Avatar,
		Gender:              p.Gender,
		Age:                 p.Age,
		Phone:               p.Phone,
		DietaryPreferences:  StringSlice(p.DietaryPreferences),
		Allergies:           StringSlice(p.Allergies),
		HealthGoal:          p.HealthGoal,
		DailyCaloriesTarget: p.DailyCaloriesTarget,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}

func profileToDomain(m *ProfileModel) *user.Profile {
	return &user.Profile{
		UserID:              m.UserID,
		Nickname:            m.Nickname,
		Avatar:              m.Avatar,
		Gender:              m.Gender,
		Age:                 m.Age,
		Phone:               m.Phone,
		DietaryPreferences:  m.DietaryPreferences,
		Allergies:           m.Allergies,
		HealthGoal:          m.HealthGoal,
		DailyCaloriesTarget: m.DailyCaloriesTarget,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

func ingredientToModel(i *ingredient.Ingredient) *IngredientModel {
	return &IngredientModel{
		ID:           i.ID,
		Name:         i.Name,
		Category:     string(i.Category),
		ImageURL:     i.ImageURL,
		Calories:     i.Calories,
		Protein:      i.Protein,
		Fat:          i.Fat,
		Carbohydrate: i.Carbohydrate,
		Fiber:        i.Fiber,
		Vitamins:     FloatMap(i.Vitamins),
		Description:  i.Description,
		Season:       IntSlice(i.Season),
		CreatedAt:    i.CreatedAt,
	}
}

func ingredientToDomain(m *IngredientModel) *ingredient.Ingredient {
	return &ingredient.Ingredient{
		ID:           m.ID,
		Name:         m.Name,
		Category:     ingredient.Category(m.Category),
		ImageURL:     m.ImageURL,
		Calories:     m.Calories,
		Protein:      m.Protein,
		Fat:          m.Fat,
		Carbohydrate: m.Carbohydrate,
		Fiber:        m.Fiber,
		Vitamins:     m.Vitamins,
		Description:  m.Description,
		Season:       m.Season,
		CreatedAt:    m.CreatedAt,
	}
}

func recognitionToModel(r *ingredient.Recognition) (*RecognitionModel, error) {
	payload, err := json.Marshal(r.Result)
	if err != nil {
		return nil, err
	}
	return &RecognitionModel{
		ID:        r.ID,
		UserID:    r.UserID,
		ImageURL:  r.ImageURL,
		Result:    string(payload),
		CreatedAt: r.CreatedAt,
	}, nil
}

func recognitionToDomain(m *RecognitionModel) (*ingredient.Recognition, error) {
	var result ingredient.RecognitionResult
	if m.Result != "" {
		if err := json.Unmarshal([]byte(m.Result), &result); err != nil {
			return nil, err
		}
	}
	return &ingredient.Recognition{
		ID:        m.ID,
		UserID:    m.UserID,
		ImageURL:  m.ImageURL,
		Result:    result,
		CreatedAt: m.CreatedAt,
	}, nil
}

func recipeToModel(r *recipe.Recipe) *RecipeModel {
	m := &RecipeModel{
		ID:            r.ID,
		Name:          r.Name,
		CoverImage:    r.CoverImage,
		AuthorID:      r.AuthorID,
		Difficulty:    string(r.Difficulty),
		CookingTime:   r.CookingTime,
		Servings:      r.Servings,
		Category:      string(r.Category),
		CuisineType:   string(r.CuisineType),
		Tags:          StringSlice(r.Tags),
		TotalCalories: r.TotalCalories,
		Description:   r.Description,
		Views:         r.Views,
		Likes:         r.Likes,
		Favorites:     r.Favorites,
		IsPublished:   r.IsPublished,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
	for _, line := range r.Ingredients {
		m.Ingredients = append(m.Ingredients, RecipeIngredientModel{
			RecipeID:     r.ID,
			IngredientID: line.IngredientID,
			Quantity:     line.Quantity,
			Unit:         line.Unit,
			IsMain:       line.IsMain,
		})
	}
	for _, step := range r.Steps {
		m.Steps = append(m.Steps, CookingStepModel{
			RecipeID:    r.ID,
			StepNumber:  step.StepNumber,
			Description: step.Description,
			ImageURL:    step.ImageURL,
			Duration:    step.Duration,
			Tips:        step.Tips,
		})
	}
	return m
}

func recipeToDomain(m *RecipeModel) *recipe.Recipe {
	r := &recipe.Recipe{
		ID:            m.ID,
		Name:          m.Name,
		CoverImage:    m.CoverImage,
		AuthorID:      m.AuthorID,
		Difficulty:    recipe.Difficulty(m.Difficulty),
		CookingTime:   m.CookingTime,
		Servings:      m.Servings,
		Category:      recipe.Category(m.Category),
		CuisineType:   recipe.CuisineType(m.CuisineType),
		Tags:          m.Tags,
		TotalCalories: m.TotalCalories,
		Description:   m.Description,
		Views:         m.Views,
		Likes:         m.Likes,
		Favorites:     m.Favorites,
		IsPublished:   m.IsPublished,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	for _, line := range m.Ingredients {
		domainLine := recipe.RecipeIngredient{
			IngredientID: line.IngredientID,
			Quantity:     line.Quantity,
			Unit:         line.Unit,
			IsMain:       line.IsMain,
		}
		if line.Ingredient.ID != uuid.Nil {
			ing := line.Ingredient
			domainLine.Ingredient = ingredientToDomain(&ing)
		}
		r.Ingredients = append(r.Ingredients, domainLine)
	}
	for _, step := range m.Steps {
		r.Steps = append(r.Steps, recipe.CookingStep{
			StepNumber:  step.StepNumber,
			Description: step.Description,
			ImageURL:    step.ImageURL,
			Duration:    step.Duration,
			Tips:        step.Tips,
		})
	}
	return r
}

func behaviorToModel(b *recipe.Behavior) *BehaviorModel {
	return &BehaviorModel{
		ID:        b.ID,
		UserID:    b.UserID,
		RecipeID:  b.RecipeID,
		Type:      string(b.Type),
		CreatedAt: b.CreatedAt,
	}
}

func shoppingItemToModel(i *shopping.Item) *ShoppingItemModel {
	return &ShoppingItemModel{
		ID:           i.ID,
		UserID:       i.UserID,
		IngredientID: i.IngredientID,
		Quantity:     i.Quantity,
		Unit:         i.Unit,
		Purchased:    i.Purchased,
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
}

func shoppingItemToDomain(m *ShoppingItemModel) *shopping.Item {
	item := &shopping.Item{
		ID:           m.ID,
		UserID:       m.UserID,
		IngredientID: m.IngredientID,
		Quantity:     m.Quantity,
		Unit:         m.Unit,
		Purchased:    m.Purchased,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.Ingredient.ID != uuid.Nil {
		ing := m.Ingredient
		item.Ingredient = ingredientToDomain(&ing)
	}
	return item
}

func postToModel(p *community.Post) *FoodPostModel {
	return &FoodPostModel{
		ID:            p.ID,
		UserID:        p.UserID,
		RecipeID:      p.RecipeID,
		Content:       p.Content,
		Images:        StringSlice(p.Images),
		Likes:         p.Likes,
		CommentsCount: p.CommentsCount,
		CreatedAt:     p.CreatedAt,
	}
}

func postToDomain(m *FoodPostModel) *community.Post {
	return &community.Post{
		ID:            m.ID,
		UserID:        m.UserID,
		RecipeID:      m.RecipeID,
		Content:       m.Content,
		Images:        m.Images,
		Likes:         m.Likes,
		CommentsCount: m.CommentsCount,
		CreatedAt:     m.CreatedAt,
	}
}

func commentToModel(c *community.Comment) *CommentModel {
	return &CommentModel{
		ID:         c.ID,
		UserID:     c.UserID,
		TargetType: string(c.TargetType),
		TargetID:   c.TargetID,
		Content:    c.Content,
		ParentID:   c.ParentID,
		CreatedAt:  c.CreatedAt,
	}
}

func commentToDomain(m *CommentModel) *community.Comment {
	c := &community.Comment{
		ID:         m.ID,
		UserID:     m.UserID,
		TargetType: community.TargetType(m.TargetType),
		TargetID:   m.TargetID,
		Content:    m.Content,
		ParentID:   m.ParentID,
		CreatedAt:  m.CreatedAt,
	}
	for _, reply := range m.Replies {
		r := reply
		c.Replies = append(c.Replies, *commentToDomain(&r))
	}
	return c
}

func dietaryLogToModel(l *nutrition.DietaryLog) *DietaryLogModel {
	return &DietaryLogModel{
		ID:           l.ID,
		UserID:       l.UserID,
		RecipeID:     l.RecipeID,
		FoodName:     l.FoodName,
		Calories:     l.Calories,
		Protein:      l.Protein,
		Fat:          l.Fat,
		Carbohydrate: l.Carbohydrate,
		MealType:     string(l.MealType),
		Date:         l.Date,
		CreatedAt:    l.CreatedAt,
	}
}

func dietaryLogToDomain(m *DietaryLogModel) *nutrition.DietaryLog {
	return &nutrition.DietaryLog{
		ID:           m.ID,
		UserID:       m.UserID,
		RecipeID:     m.RecipeID,
		FoodName:     m.FoodName,
		Calories:     m.Calories,
		Protein:      m.Protein,
		Fat:          m.Fat,
		Carbohydrate: m.Carbohydrate,
		MealType:     nutrition.MealType(m.MealType),
		Date:         m.Date,
		CreatedAt:    m.CreatedAt,
	}
}
