// Package rentindex строит рыночный индекс аренды (ZORI) из сырых
// помесячных наблюдений и отвечает на запросы конвейера анализа:
// актуальная аренда, темпы роста, сезонность и поиск ближайшего
// индекса. Индекс собирается один раз на запуск и дальше только
// читается, в том числе из нескольких воркеров.
package rentindex

import (
	"math"
	"sort"
	"strconv"
)

// Row — сырой ряд наблюдений по одному почтовому индексу.
// Ряд разрежённый: месяцы без наблюдений просто отсутствуют в Values.
type Row struct {
	Zip    string
	State  string
	Values map[string]float64 // месяц "2006-01" → наблюдение аренды
}

// Entry — производные значения по одному почтовому индексу.
type Entry struct {
	Zip              string
	State            string
	LatestRent       float64
	OneYearGrowthPct float64
	FiveYearCAGRPct  float64
}

// Index — построенный индекс аренды. После Build не изменяется.
type Index struct {
	months      []string // отсортированные колонки месяцев, общие для всех рядов
	entries     map[string]*Entry
	order       []string // индексы в порядке появления, для детерминированных tie-break
	seasonality [13]float64
	stateAvg    map[string]float64
}

// Окно для расчёта сезонности: последние 24 месяца наблюдений.
const seasonalityWindow = 24

// Build собирает индекс из колонок месяцев и рядов наблюдений.
// Ряды без единого пригодного наблюдения пропускаются молча —
// построение индекса никогда не прерывается из-за плохого ряда.
func Build(months []string, rows []Row) *Index {
	sorted := make([]string, len(months))
	copy(sorted, months)
	sort.Strings(sorted)

	ix := &Index{
		months:   sorted,
		entries:  make(map[string]*Entry, len(rows)),
		stateAvg: make(map[string]float64),
	}

	var seasonSum, seasonCount [13]float64
	stateSum := make(map[string]float64)
	stateCount := make(map[string]float64)

	for _, row := range rows {
		if row.Zip == "" || len(row.Values) == 0 {
			continue
		}
		if _, dup := ix.entries[row.Zip]; dup {
			continue
		}

		// Самое свежее непустое наблюдение.
		latestIdx := -1
		for i := len(sorted) - 1; i >= 0; i-- {
			if v, ok := row.Values[sorted[i]]; ok && v > 0 {
				latestIdx = i
				break
			}
		}
		if latestIdx < 0 {
			continue
		}
		latest := row.Values[sorted[latestIdx]]

		entry := &Entry{
			Zip:              row.Zip,
			State:            row.State,
			LatestRent:       latest,
			OneYearGrowthPct: growthPct(row.Values, sorted, latestIdx, 12),
			FiveYearCAGRPct:  cagrPct(row.Values, sorted, latestIdx),
		}
		ix.entries[row.Zip] = entry
		ix.order = append(ix.order, row.Zip)

		if row.State != "" {
			stateSum[row.State] += latest
			stateCount[row.State]++
		}

		// Помесячные изменения за последние 24 месяца для сезонности.
		start := len(sorted) - seasonalityWindow
		if start < 0 {
			start = 0
		}
		for i := start + 1; i < len(sorted); i++ {
			cur, okCur := row.Values[sorted[i]]
			prev, okPrev := row.Values[sorted[i-1]]
			if !okCur || !okPrev || cur <= 0 || prev <= 0 {
				continue
			}
			m := monthNumber(sorted[i])
			if m < 1 || m > 12 {
				continue
			}
			seasonSum[m] += (cur/prev - 1) * 100
			seasonCount[m]++
		}
	}

	for m := 1; m <= 12; m++ {
		if seasonCount[m] > 0 {
			ix.seasonality[m] = seasonSum[m] / seasonCount[m]
		}
	}
	for state, sum := range stateSum {
		ix.stateAvg[state] = sum / stateCount[state]
	}

	return ix
}

// growthPct считает рост в процентах относительно наблюдения на
// monthsBack месяцев раньше самого свежего. Возвращает 0, если
// историческое наблюдение отсутствует или неположительно.
func growthPct(values map[string]float64, months []string, latestIdx, monthsBack int) float64 {
	priorIdx := latestIdx - monthsBack
	if priorIdx < 0 {
		return 0
	}
	prior, ok := values[months[priorIdx]]
	if !ok || prior <= 0 {
		return 0
	}
	return (values[months[latestIdx]]/prior - 1) * 100
}

// cagrPct — среднегодовой темп роста за пять лет (60 месяцев), в процентах.
func cagrPct(values map[string]float64, months []string, latestIdx int) float64 {
	priorIdx := latestIdx - 60
	if priorIdx < 0 {
		return 0
	}
	prior, ok := values[months[priorIdx]]
	if !ok || prior <= 0 {
		return 0
	}
	return (math.Pow(values[months[latestIdx]]/prior, 1.0/5.0) - 1) * 100
}

func monthNumber(month string) int {
	// Колонки месяцев имеют вид "2024-07".
	if len(month) < 7 {
		return 0
	}
	n, err := strconv.Atoi(month[5:7])
	if err != nil {
		return 0
	}
	return n
}

// Lookup возвращает запись по точному совпадению индекса.
func (ix *Index) Lookup(zip string) (*Entry, bool) {
	e, ok := ix.entries[zip]
	return e, ok
}

// Latest возвращает самое свежее наблюдение аренды для индекса.
func (ix *Index) Latest(zip string) (float64, bool) {
	if e, ok := ix.entries[zip]; ok {
		return e.LatestRent, true
	}
	return 0, false
}

// Growth возвращает годовой рост и пятилетний CAGR в процентах.
// Для незнакомого индекса — нули.
func (ix *Index) Growth(zip string) (oneYearPct, fiveYearCAGRPct float64) {
	if e, ok := ix.entries[zip]; ok {
		return e.OneYearGrowthPct, e.FiveYearCAGRPct
	}
	return 0, 0
}

// Seasonality возвращает среднее помесячное изменение аренды (в
// процентах) для календарного месяца 1-12, усреднённое по всем
// индексам. 0, если наблюдений для месяца нет.
func (ix *Index) Seasonality(month int) float64 {
	if month < 1 || month > 12 {
		return 0
	}
	return ix.seasonality[month]
}

// Closest возвращает запись с минимальной абсолютной разницей
// числового значения индекса. При равенстве побеждает индекс,
// встретившийся в данных раньше. Если запрос не числовой — none.
func (ix *Index) Closest(zip string) (*Entry, bool) {
	if e, ok := ix.entries[zip]; ok {
		return e, true
	}
	target, err := strconv.Atoi(zip)
	if err != nil {
		return nil, false
	}

	var best *Entry
	bestDist := math.MaxInt
	for _, candidate := range ix.order {
		n, convErr := strconv.Atoi(candidate)
		if convErr != nil {
			continue
		}
		dist := n - target
		if dist < 0 {
			dist = -dist
		}
		if dist < bestDist {
			bestDist = dist
			best = ix.entries[candidate]
		}
	}
	return best, best != nil
}

// StateAverage возвращает среднюю актуальную аренду по штату.
func (ix *Index) StateAverage(state string) (float64, bool) {
	avg, ok := ix.stateAvg[state]
	return avg, ok
}

// Resolve разрешает локацию объекта в базовую аренду: точное
// совпадение, иначе ближайший числовой индекс, иначе средняя по
// штату. entry == nil означает, что сработал фолбэк по штату.
// ok == false — оценка для объекта невозможна.
func (ix *Index) Resolve(zip, state string) (baseRent float64, entry *Entry, ok bool) {
	if e, found := ix.Closest(zip); found {
		return e.LatestRent, e, true
	}
	if avg, found := ix.StateAverage(state); found {
		return avg, nil, true
	}
	return 0, nil, false
}

// Len возвращает число почтовых индексов в индексе.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// States возвращает число штатов, по которым есть средние.
func (ix *Index) States() int {
	return len(ix.stateAvg)
}
