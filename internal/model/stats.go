package model

// ScheduleStats агрегаты по таблице окон. Всегда Free + Booked = Total.
type ScheduleStats struct {
	Total      int            `json:"total"`
	Free       int            `json:"free"`
	Booked     int            `json:"booked"`
	PerService map[string]int `json:"per_service"` // код услуги -> занятых окон
}
