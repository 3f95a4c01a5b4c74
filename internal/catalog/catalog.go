package catalog

import (
	"fmt"

	"github.com/glebkhl/zapis_bot/internal/model"
)

// Catalog статичный справочник услуг. Заполняется один раз при старте
// и дальше только читается, поэтому безопасен для конкурентного доступа.
type Catalog struct {
	codes    []string
	services map[string]model.Service
}

// New создаёт каталог из списка услуг. Порядок сохраняется -
// он используется стратегией назначения услуг при генерации расписания.
func New(services []model.Service) (*Catalog, error) {
	if len(services) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}

	c := &Catalog{
		codes:    make([]string, 0, len(services)),
		services: make(map[string]model.Service, len(services)),
	}

	for _, svc := range services {
		if svc.Code == "" {
			return nil, fmt.Errorf("service with empty code")
		}
		if _, exists := c.services[svc.Code]; exists {
			return nil, fmt.Errorf("duplicate service code: %s", svc.Code)
		}
		c.codes = append(c.codes, svc.Code)
		c.services[svc.Code] = svc
	}

	return c, nil
}

// Default возвращает каталог салона по умолчанию
func Default() *Catalog {
	c, err := New([]model.Service{
		{
			Code:        "express",
			Name:        "Экспресс",
			Description: "Быстрая промывка для тех, кто спешит",
			Price:       100_000,
			Duration:    30,
		},
		{
			Code:        "standard",
			Name:        "Стандартная",
			Description: "Классическая промывка мозгов",
			Price:       150_000,
			Duration:    60,
		},
		{
			Code:        "deep",
			Name:        "Глубокая",
			Description: "Глубокая промывка с полным погружением",
			Price:       250_000,
			Duration:    90,
		},
	})
	if err != nil {
		panic("default catalog: " + err.Error())
	}
	return c
}

// Get возвращает услугу по коду
func (c *Catalog) Get(code string) (model.Service, bool) {
	svc, ok := c.services[code]
	return svc, ok
}

// Codes возвращает коды услуг в порядке добавления
func (c *Catalog) Codes() []string {
	out := make([]string, len(c.codes))
	copy(out, c.codes)
	return out
}

// Len возвращает количество услуг в каталоге
func (c *Catalog) Len() int {
	return len(c.codes)
}
