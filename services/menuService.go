package services

import (
	"context"
	"time"

	"go-restaurant-pos/cache"
	"go-restaurant-pos/helpers"
	"go-restaurant-pos/logger"
	"go-restaurant-pos/models"
	"go-restaurant-pos/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateMenuItemInput is the body of POST /menu.
type CreateMenuItemInput struct {
	Name        string          `json:"name" validate:"required,min=2,max=100"`
	Price       float64         `json:"price" validate:"gt=0"`
	Category    models.Category `json:"category" validate:"required,enum"`
	MealTime    models.MealTime `json:"mealTime" validate:"required,enum"`
	Ingredients string          `json:"ingredients"`
	Image       string          `json:"image"`
}

type MenuService struct {
	menu  repositories.MenuRepository
	cache *cache.Menu
	now   func() time.Time
}

// NewMenuService caches listings in c; a nil c disables caching.
func NewMenuService(menu repositories.MenuRepository, c *cache.Menu) *MenuService {
	return &MenuService{menu: menu, cache: c, now: time.Now}
}

func (s *MenuService) List(ctx context.Context, filter models.MenuFilter) ([]models.MenuItem, error) {
	if filter.Category != "" && !filter.Category.Valid() {
		return nil, helpers.Invalid("unknown category %q", filter.Category)
	}
	if filter.MealTime != "" && !filter.MealTime.Valid() {
		return nil, helpers.Invalid("unknown meal time %q", filter.MealTime)
	}

	key := cache.MenuKey(string(filter.Category), string(filter.MealTime))
	var items []models.MenuItem
	if s.cache.Get(ctx, key, &items) {
		return items, nil
	}
	items, err := s.menu.List(ctx, filter)
	if err != nil {
		return nil, helpers.Persistence("list menu", err)
	}
	if err := s.cache.Set(ctx, key, items); err != nil {
		logger.FromCtx(ctx).Warn("menu cache write failed", "error", err)
	}
	return items, nil
}

func (s *MenuService) Get(ctx context.Context, itemID string) (models.MenuItem, error) {
	if err := checkID("menu item", itemID); err != nil {
		return models.MenuItem{}, err
	}
	item, err := s.menu.FindByID(ctx, itemID)
	if err != nil {
		return models.MenuItem{}, storeError("find menu item", "menu item", itemID, err)
	}
	return item, nil
}

func (s *MenuService) Create(ctx context.Context, in CreateMenuItemInput) (models.MenuItem, error) {
	if err := helpers.Validate(in); err != nil {
		return models.MenuItem{}, err
	}
	item := models.MenuItem{
		ID:          primitive.NewObjectID(),
		Name:        in.Name,
		Price:       in.Price,
		Category:    in.Category,
		MealTime:    in.MealTime,
		Ingredients: in.Ingredients,
		Image:       in.Image,
		CreatedAt:   s.now().UTC(),
	}
	item.ItemID = item.ID.Hex()
	if err := s.menu.Insert(ctx, &item); err != nil {
		return models.MenuItem{}, storeError("insert menu item", "menu item", item.ItemID, err)
	}
	if err := s.cache.Flush(ctx); err != nil {
		logger.FromCtx(ctx).Warn("menu cache flush failed", "error", err)
	}
	logger.FromCtx(ctx).Info("menu item created", "item_id", item.ItemID, "name", item.Name)
	return item, nil
}
