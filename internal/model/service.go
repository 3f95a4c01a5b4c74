package model

// Service позиция каталога услуг. Справочник статичный:
// записи не создаются и не удаляются во время работы.
type Service struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`    // в копейках
	Duration    int    `json:"duration"` // в минутах
}
