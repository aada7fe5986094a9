package tasks

import (
	"log"
	"time"

	"calendar_scheduler/internal/models"
	"calendar_scheduler/internal/storage"

	"github.com/robfig/cron/v3"
)

// Событие считается заброшенным, если его не открывали дольше этого срока.
const staleEventAge = 90 * 24 * time.Hour

// CleanStaleEvents удаляет события, которые давно никто не открывал,
// вместе с их участниками и бронями.
func CleanStaleEvents() {
	threshold := time.Now().Add(-staleEventAge)

	var events []models.Event
	if err := storage.DB.Where("last_accessed_at < ?", threshold).Find(&events).Error; err != nil {
		log.Println("Ошибка поиска заброшенных событий:", err)
		return
	}

	if len(events) == 0 {
		log.Println("Заброшенных событий не найдено.")
		return
	}

	for _, event := range events {
		if err := storage.DB.Where("event_code = ?", event.Code).Delete(&models.Booking{}).Error; err != nil {
			log.Println("Ошибка удаления броней события", event.Code, ":", err)
			continue
		}
		if err := storage.DB.Where("event_code = ?", event.Code).Delete(&models.Participant{}).Error; err != nil {
			log.Println("Ошибка удаления участников события", event.Code, ":", err)
			continue
		}
		if err := storage.DB.Delete(&models.Event{}, "code = ?", event.Code).Error; err != nil {
			log.Println("Ошибка удаления события", event.Code, ":", err)
		} else {
			log.Printf("Заброшенное событие '%s' (%s) удалено.\n", event.Name, event.Code)
		}
	}
}

// CleanEmptyBookings удаляет брони с пустым списком участников.
// Такая запись существовать не должна: бронь без участников удаляется,
// а не хранится пустой.
func CleanEmptyBookings() {
	if err := storage.DB.Where("user_ids = ''").Delete(&models.Booking{}).Error; err != nil {
		log.Println("Ошибка удаления пустых броней:", err)
	} else {
		log.Println("Пустые брони успешно удалены.")
	}
}

// InitScheduler инициализирует планировщик cron-задач.
func InitScheduler() *cron.Cron {
	c := cron.New(cron.WithSeconds())

	// Задача очистки заброшенных событий, каждый день в 03:00.
	_, err := c.AddFunc("0 0 3 * * *", CleanStaleEvents)
	if err != nil {
		log.Println("Ошибка запуска cron-задачи CleanStaleEvents:", err)
	}

	// Задача удаления пустых броней, каждый час.
	_, err = c.AddFunc("0 0 * * * *", CleanEmptyBookings)
	if err != nil {
		log.Println("Ошибка запуска cron-задачи CleanEmptyBookings:", err)
	}

	c.Start()
	log.Println("Cron-планировщик запущен.")
	return c
}
