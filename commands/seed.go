package commands

import (
	"errors"
	"fmt"

	"go-restaurant-pos/cache"
	"go-restaurant-pos/config"
	"go-restaurant-pos/helpers"
	"go-restaurant-pos/models"
	"go-restaurant-pos/services"

	"github.com/spf13/cobra"
)

var sampleMenu = []services.CreateMenuItemInput{
	{Name: "Masala Dosa", Price: 250, Category: models.CategoryMainCourse, MealTime: models.MealBreakfast, Ingredients: "rice, lentils, potato"},
	{Name: "Idli Sambar", Price: 180, Category: models.CategoryMainCourse, MealTime: models.MealBreakfast, Ingredients: "rice, lentils"},
	{Name: "Paneer Tikka", Price: 500, Category: models.CategoryAppetizer, MealTime: models.MealAllDay, Ingredients: "paneer, yoghurt, spices"},
	{Name: "Chicken Biryani", Price: 650, Category: models.CategoryMainCourse, MealTime: models.MealLunch, Ingredients: "basmati, chicken, saffron"},
	{Name: "Dal Makhani", Price: 420, Category: models.CategoryMainCourse, MealTime: models.MealDinner, Ingredients: "black lentils, butter"},
	{Name: "Garlic Naan", Price: 90, Category: models.CategorySide, MealTime: models.MealAllDay},
	{Name: "Gulab Jamun", Price: 150, Category: models.CategoryDessert, MealTime: models.MealAllDay},
	{Name: "Mango Lassi", Price: 300, Category: models.CategoryBeverage, MealTime: models.MealAllDay, Ingredients: "mango, yoghurt"},
}

var sampleRooms = []models.GuestRoom{
	{RoomNumber: "101", RoomType: "Standard", Price: 80, BedType: "Double"},
	{RoomNumber: "102", RoomType: "Standard", Price: 80, BedType: "Twin"},
	{RoomNumber: "201", RoomType: "Deluxe", Price: 120, BedType: "King"},
	{RoomNumber: "301", RoomType: "Suite", Price: 220, BedType: "King"},
}

// restaurant seed: load a sample menu and rooms into an empty database.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a sample menu and guest rooms",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		b, err := openBackend(ctx, false)
		if err != nil {
			return err
		}
		defer b.Close(ctx)

		out := cmd.OutOrStdout()
		menu := services.NewMenuService(b.menu, cache.NewMenu(b.redis, config.MenuCacheTTL()))
		existing, err := menu.List(ctx, models.MenuFilter{})
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			fmt.Fprintf(out, "menu already has %d items, skipping\n", len(existing))
		} else {
			for _, in := range sampleMenu {
				if _, err := menu.Create(ctx, in); err != nil {
					return fmt.Errorf("seed menu %q: %w", in.Name, err)
				}
			}
			fmt.Fprintf(out, "seeded %d menu items\n", len(sampleMenu))
		}

		rooms := services.NewRoomService(b.rooms, b.guests)
		added := 0
		for _, room := range sampleRooms {
			_, err := rooms.CreateRoom(ctx, room)
			var conflict *helpers.ConflictError
			switch {
			case errors.As(err, &conflict):
				continue
			case err != nil:
				return fmt.Errorf("seed room %s: %w", room.RoomNumber, err)
			}
			added++
		}
		fmt.Fprintf(out, "seeded %d rooms\n", added)
		return nil
	},
}
