package formatting

import "fmt"

// FormatPrice форматирует цену из копеек в рубли
func FormatPrice(priceInKopecks int) string {
	price := float64(priceInKopecks) / 100
	if priceInKopecks%100 == 0 {
		return fmt.Sprintf("%.0f ₽", price)
	}
	return fmt.Sprintf("%.2f ₽", price)
}

// FormatOccupancy форматирует долю занятых окон в проценты
func FormatOccupancy(ratio float64) string {
	return fmt.Sprintf("%.0f%%", ratio*100)
}
