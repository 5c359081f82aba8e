// Пакет reports считает отчетные показатели по уже выбранным строкам.
// Функции чистые: без обращений к базе и без побочных эффектов, поэтому
// при одинаковом входе результат всегда одинаков.
package reports

import "math"

// Денежные суммы и проценты округляются до двух знаков в момент сборки
// ответных структур; промежуточные расчеты идут в полной точности.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
