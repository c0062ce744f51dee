package models

import "time"

// Appointment представляет собой долговременную запись на прием.
// Поля UserData и ProviderData — снимки отображаемых данных сторон
// на момент бронирования; они принадлежат записи и никогда не обновляются.
// Среди неотмененных записей пара (специалист, дата, время) уникальна.
type Appointment struct {
	ID           int              // Идентификатор записи
	UserUID      string           // Кто записался
	ProviderUID  string           // К какому специалисту
	SlotDate     string           // Ключ даты в формате день_месяц_год
	SlotTime     string           // Нормализованная метка времени
	UserData     UserSnapshot     // Снимок данных пользователя
	ProviderData ProviderSnapshot // Снимок данных специалиста
	Amount       int              // Стоимость приема на момент бронирования
	Cancelled    bool             // Отменена ли запись
	Paid         bool             // Оплачена ли запись
	Completed    bool             // Состоялся ли прием
	CreatedAt    time.Time        // Момент бронирования
}

// DummyBookRequest используется для приёма данных бронирования из JSON-запроса
// до их валидации и нормализации.
type DummyBookRequest struct {
	ProviderUID string `json:"provider_uid" validate:"required,uuid"` // Идентификатор специалиста
	SlotDate    string `json:"slot_date" validate:"required"`         // Дата в формате день_месяц_год
	SlotTime    string `json:"slot_time" validate:"required"`         // Метка времени слота
}

// DummySuspendRequest используется для приёма параметров приостановки
// учетной записи из JSON-запроса администратора.
type DummySuspendRequest struct {
	UserUID string `json:"user_uid" validate:"required,uuid"` // Идентификатор пользователя
	Minutes int    `json:"minutes" validate:"gte=0"`          // Минуты приостановки
	Hours   int    `json:"hours" validate:"gte=0"`            // Часы приостановки
	Days    int    `json:"days" validate:"gte=0"`             // Дни приостановки
}

// Duration складывает длительность приостановки из минут, часов и дней.
func (r DummySuspendRequest) Duration() time.Duration {
	return time.Duration(r.Minutes)*time.Minute +
		time.Duration(r.Hours)*time.Hour +
		time.Duration(r.Days)*24*time.Hour
}

// SlotChange сообщение о том, что занятость слотов специалиста на дату
// изменилась. Публикуется после успешного бронирования или отмены.
type SlotChange struct {
	ProviderUID string `json:"provider_uid"`
	SlotDate    string `json:"slot_date"`
}
