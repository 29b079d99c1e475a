package config

import (
	"Pantry-Planner/internal/api/handlers"
	"Pantry-Planner/internal/api/routes"
	"Pantry-Planner/internal/middleware"
	"Pantry-Planner/internal/utils"
	"Pantry-Planner/internal/utils/storage"
	"Pantry-Planner/pkg/allocation"
	"Pantry-Planner/pkg/inventory"
	"Pantry-Planner/pkg/jwt"
	"Pantry-Planner/pkg/mealplan"
	"Pantry-Planner/pkg/recipe"
	"Pantry-Planner/pkg/user"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Jakarta",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()

	// Repository
	userRepository := user.NewUserRepository(db)
	inventoryRepository := inventory.NewInventoryRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	mealPlanRepository := mealplan.NewMealPlanRepository(db)
	allocationRepository := allocation.NewAllocationRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	inventoryService := inventory.NewInventoryService(inventoryRepository, s3)
	recipeService := recipe.NewRecipeService(recipeRepository, inventoryRepository)
	mealPlanService := mealplan.NewMealPlanService(mealPlanRepository, allocationRepository)
	allocationService := allocation.NewAllocationService(allocationRepository)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)
	mealPlanHandler := handlers.NewMealPlanHandler(mealPlanService, validator)
	allocationHandler := handlers.NewAllocationHandler(allocationService, validator)

	// routes
	routesConfig := routes.Config{
		App:               app,
		UserHandler:       userHandler,
		InventoryHandler:  inventoryHandler,
		RecipeHandler:     recipeHandler,
		MealPlanHandler:   mealPlanHandler,
		AllocationHandler: allocationHandler,
		Middleware:        middlewares,
		JWTService:        jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
