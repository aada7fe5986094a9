package main

import (
	"fmt"
	"log"
	"os"

	_ "calendar_scheduler/docs"
	"calendar_scheduler/internal/docstore"
	"calendar_scheduler/internal/handlers"
	"calendar_scheduler/internal/models"
	"calendar_scheduler/internal/storage"
	"calendar_scheduler/internal/tasks"
	"calendar_scheduler/internal/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @Title	Планировщик общих дат
func main() {
	key := os.Getenv("ENV_CHEK")
	if key == "" {
		fmt.Println("Подключение к .env")
		err := godotenv.Load()
		if err != nil {
			log.Fatal("Ошибка получения .env")
		}
	}

	storage.ConnectDatabase()

	if err := storage.DB.AutoMigrate(&models.Event{}, &models.Participant{}, &models.Booking{}); err != nil {
		log.Fatal("Ошибка при миграции... ", err.Error())
	}

	storage.InitRedis()

	docs := docstore.NewDBStore(storage.DB, storage.RedisClient)
	handlers.Docs = docs

	tasks.InitScheduler()

	go ws.InitHub(docs).Run()

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	events := r.Group("/api/events")
	{
		events.POST("", handlers.CreateEventHandler)
		events.GET("/:code", handlers.GetEventHandler)
		events.DELETE("/:code", handlers.DeleteEventHandler)
		events.GET("/:code/participants", handlers.GetParticipantsHandler)
		events.GET("/:code/calendar", handlers.GetCalendarHandler)
		events.GET("/:code/summary", handlers.GetSummaryHandler)
		events.GET("/:code/ws", ws.SchedulerWebSocketHandler)
	}

	if err := r.Run(":8080"); err != nil {
		log.Fatal("Ошибка запуска сервера...", err.Error())
	}
}
