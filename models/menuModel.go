package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Category string

const (
	CategoryAppetizer  Category = "Appetizer"
	CategoryMainCourse Category = "Main Course"
	CategoryDessert    Category = "Dessert"
	CategoryBeverage   Category = "Beverage"
	CategorySide       Category = "Side"
)

var Categories = []Category{CategoryAppetizer, CategoryMainCourse, CategoryDessert, CategoryBeverage, CategorySide}

func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

type MealTime string

const (
	MealBreakfast MealTime = "Breakfast"
	MealLunch     MealTime = "Lunch"
	MealDinner    MealTime = "Dinner"
	MealAllDay    MealTime = "All Day"
)

var MealTimes = []MealTime{MealBreakfast, MealLunch, MealDinner, MealAllDay}

func (m MealTime) Valid() bool {
	for _, v := range MealTimes {
		if m == v {
			return true
		}
	}
	return false
}

type MenuItem struct {
	ID          primitive.ObjectID `bson:"_id" json:"-"`
	ItemID      string             `bson:"item_id" json:"id"`
	Name        string             `bson:"name" json:"name" validate:"required,min=2,max=100"`
	Price       float64            `bson:"price" json:"price" validate:"gt=0"`
	Category    Category           `bson:"category" json:"category" validate:"required,enum"`
	MealTime    MealTime           `bson:"meal_time" json:"mealTime" validate:"required,enum"`
	Ingredients string             `bson:"ingredients" json:"ingredients"`
	Image       string             `bson:"image" json:"image"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
}

// Snapshot copies the item into a cart line with quantity 1.
func (m MenuItem) Snapshot() CartLine {
	return CartLine{
		ItemID:      m.ItemID,
		Name:        m.Name,
		Price:       m.Price,
		Quantity:    1,
		Ingredients: m.Ingredients,
		Image:       m.Image,
	}
}

// MenuFilter narrows the catalog listing. Zero values match everything.
type MenuFilter struct {
	Category Category
	MealTime MealTime
}
