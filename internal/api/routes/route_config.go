package routes

import (
	"Pantry-Planner/internal/api/handlers"
	"Pantry-Planner/internal/middleware"
	"Pantry-Planner/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App               *fiber.App
	UserHandler       handlers.UserHandler
	InventoryHandler  handlers.InventoryHandler
	RecipeHandler     handlers.RecipeHandler
	MealPlanHandler   handlers.MealPlanHandler
	AllocationHandler handlers.AllocationHandler
	Middleware        middleware.Middleware
	JWTService        jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Inventory()
	c.Recipes()
	c.MealPlans()
	c.Allocations()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	// user routes
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		user.Patch("/update", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.UpdateUser)
	}
}

func (c *Config) Inventory() {
	lots := c.App.Group("/api/v1/inventory-lots", c.Middleware.AuthMiddleware(c.JWTService))
	lots.Get("/dashboard", c.InventoryHandler.GetDashboardStats)

	// Basic CRUD operations
	lots.Post("", c.InventoryHandler.AddLot)
	lots.Get("", c.InventoryHandler.GetLots)
	lots.Get("/:id", c.InventoryHandler.GetLotDetails)
	lots.Put("/:id", c.InventoryHandler.UpdateLot)
	lots.Delete("/:id", c.InventoryHandler.DeleteLot)

	// Special operations
	lots.Post("/image", c.InventoryHandler.UploadLotImage)
	lots.Post("/mark", c.InventoryHandler.MarkLot)
	lots.Post("/expiry-report", c.InventoryHandler.SendExpiryReport)
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes", c.Middleware.AuthMiddleware(c.JWTService))
	recipes.Post("", c.RecipeHandler.SaveRecipe)
	recipes.Get("", c.RecipeHandler.GetRecipes)
	recipes.Get("/:id", c.RecipeHandler.GetRecipeDetail)
	recipes.Put("/:id", c.RecipeHandler.UpdateRecipe)
	recipes.Delete("/:id", c.RecipeHandler.DeleteRecipe)
}

func (c *Config) MealPlans() {
	mealPlans := c.App.Group("/api/v1/meal-plans", c.Middleware.AuthMiddleware(c.JWTService))
	mealPlans.Post("", c.MealPlanHandler.CreateMealPlan)
	mealPlans.Get("", c.MealPlanHandler.GetMealPlanDay)
	mealPlans.Delete("/:id", c.MealPlanHandler.DeleteMealPlan)
}

func (c *Config) Allocations() {
	allocations := c.App.Group("/api/v1/allocations", c.Middleware.AuthMiddleware(c.JWTService))
	allocations.Get("/propose/:mealPlanId/:ingredientId", c.AllocationHandler.ProposeAllocation)
	allocations.Post("", c.AllocationHandler.FinalizeAllocation)
	allocations.Put("", c.AllocationHandler.UpdateAllocation)
	allocations.Delete("", c.AllocationHandler.DeleteAllocation)
	allocations.Post("/reset", c.AllocationHandler.ResetAllocations)
	allocations.Post("/auto-distribute", c.AllocationHandler.AutoDistributeAll)
	allocations.Post("/finish-cooking", c.AllocationHandler.FinishCooking)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong, its works"})
	})
}
