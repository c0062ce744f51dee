package models

// SlotLedger отображение ключа даты (день_месяц_год) в список уже занятых
// меток времени на эту дату. Денормализованный кэш занятости, не источник
// истины: каждая операция записи обязана держать его согласованным
// с таблицей записей на прием.
type SlotLedger map[string][]string

// Contains сообщает, занята ли нормализованная метка времени на дату.
// Сравнение меток выполняется без учета регистра.
func (l SlotLedger) Contains(dateKey, normalizedTime string) bool {
	for _, taken := range l[dateKey] {
		if taken == normalizedTime {
			return true
		}
	}
	return false
}

// Add добавляет метку времени в корзину даты, создавая корзину при отсутствии.
func (l SlotLedger) Add(dateKey, normalizedTime string) {
	l[dateKey] = append(l[dateKey], normalizedTime)
}

// Remove убирает метку времени из корзины даты.
func (l SlotLedger) Remove(dateKey, normalizedTime string) {
	bucket := l[dateKey]
	out := bucket[:0]
	for _, taken := range bucket {
		if taken != normalizedTime {
			out = append(out, taken)
		}
	}
	if len(out) == 0 {
		delete(l, dateKey)
		return
	}
	l[dateKey] = out
}

// Provider представляет специалиста, к которому можно записаться на прием.
type Provider struct {
	UID         string     // Уникальный идентификатор специалиста
	Name        string     // Отображаемое имя
	Specialty   string     // Специализация
	About       string     // Краткое описание
	Fee         int        // Стоимость приема
	Available   bool       // Принимает ли специалист записи
	SlotsBooked SlotLedger // Занятые слоты по датам
}

// ProviderSnapshot неизменяемая копия отображаемых данных специалиста,
// встраиваемая в запись о приеме в момент бронирования. Журнал занятых
// слотов в копию не входит.
type ProviderSnapshot struct {
	UID       string `json:"uid"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	Fee       int    `json:"fee"`
}

// Snapshot строит неизменяемую копию отображаемых данных специалиста.
func (p *Provider) Snapshot() ProviderSnapshot {
	return ProviderSnapshot{
		UID:       p.UID,
		Name:      p.Name,
		Specialty: p.Specialty,
		Fee:       p.Fee,
	}
}
