package services

import (
	"context"
	"strings"
	"time"

	"github.com/alikalatearabi/salemina-main-app-backend/models"
)

const dateLayout = "2006-01-02"

// NutrientTotals is the additive aggregate every dashboard is built from.
type NutrientTotals struct {
	Calories        float64 `json:"calories"`
	Fat             float64 `json:"fat"`
	Sugar           float64 `json:"sugar"`
	Salt            float64 `json:"salt"`
	Protein         float64 `json:"protein"`
	Carbs           float64 `json:"carbs"`
	TransFattyAcids float64 `json:"transfattyAcids"`
}

func (t *NutrientTotals) add(o NutrientTotals) {
	t.Calories += o.Calories
	t.Fat += o.Fat
	t.Sugar += o.Sugar
	t.Salt += o.Salt
	t.Protein += o.Protein
	t.Carbs += o.Carbs
	t.TransFattyAcids += o.TransFattyAcids
}

func (t *NutrientTotals) addScaled(p *models.Product, factor float64) {
	t.Calories += deref(p.Calorie) * factor
	t.Fat += deref(p.Fat) * factor
	t.Sugar += deref(p.Sugar) * factor
	t.Salt += deref(p.Salt) * factor
	t.Protein += p.ProteinValue() * factor
	t.Carbs += p.CarbohydrateValue() * factor
	t.TransFattyAcids += deref(p.TransFattyAcids) * factor
}

func (t NutrientTotals) dividedBy(n int) NutrientTotals {
	if n <= 0 {
		return NutrientTotals{}
	}
	d := float64(n)
	return NutrientTotals{
		Calories:        t.Calories / d,
		Fat:             t.Fat / d,
		Sugar:           t.Sugar / d,
		Salt:            t.Salt / d,
		Protein:         t.Protein / d,
		Carbs:           t.Carbs / d,
		TransFattyAcids: t.TransFattyAcids / d,
	}
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

type DailySummary struct {
	Date string `json:"date"`
	NutrientTotals
	ConsumedCount int `json:"consumedCount"`
}

type WeekSummary struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	NutrientTotals
}

// RecommendedIntake is the resolved per-day limit set for a user.
type RecommendedIntake struct {
	Calories        float64 `json:"calories"`
	Fat             float64 `json:"fat"`
	Sugar           float64 `json:"sugar"`
	Salt            float64 `json:"salt"`
	TransFattyAcids float64 `json:"transfattyAcids"`
}

// Defaults applied when the user record carries no override.
const (
	DefaultDailyCalories        = 2000
	DefaultDailyFat             = 70
	DefaultDailySugar           = 30
	DefaultDailySalt            = 5
	DefaultDailyTransFattyAcids = 2
)

func ResolveRecommendedIntake(user *models.User) RecommendedIntake {
	out := RecommendedIntake{
		Calories:        DefaultDailyCalories,
		Fat:             DefaultDailyFat,
		Sugar:           DefaultDailySugar,
		Salt:            DefaultDailySalt,
		TransFattyAcids: DefaultDailyTransFattyAcids,
	}
	if user == nil {
		return out
	}
	if user.RecommendedDailyCalories != nil {
		out.Calories = *user.RecommendedDailyCalories
	}
	if user.RecommendedDailyFat != nil {
		out.Fat = *user.RecommendedDailyFat
	}
	if user.RecommendedDailySugar != nil {
		out.Sugar = *user.RecommendedDailySugar
	}
	if user.RecommendedDailySalt != nil {
		out.Salt = *user.RecommendedDailySalt
	}
	if user.RecommendedDailyTransFattyAcids != nil {
		out.TransFattyAcids = *user.RecommendedDailyTransFattyAcids
	}
	return out
}

// ConsumedEntryStore is the read boundary of the aggregation engine. The
// GORM implementation lives in consumed_store.go; tests inject a fake.
type ConsumedEntryStore interface {
	FindConsumedInRange(ctx context.Context, userID uint, start, end time.Time) ([]models.ConsumedProduct, error)
	GetUser(ctx context.Context, userID uint) (*models.User, error)
}

type NutritionService struct {
	store ConsumedEntryStore
}

func NewNutritionService(store ConsumedEntryStore) *NutritionService {
	return &NutritionService{store: store}
}

// ConsumptionFactor is the multiplier applied to a product's per-serving
// nutrient values for one consumed entry.
//
// When both the consumed serving size and the product's reference serving
// (`Per`) are known, the serving size is divided by the reference serving so
// the result is a proportion of the declared serving. The upstream data also
// shipped a variant that multiplied quantity by the raw serving size; the
// division form is canonical here because it keeps totals independent of the
// serving size a product happens to declare its nutrients per.
func ConsumptionFactor(entry *models.ConsumedProduct, product *models.Product) float64 {
	if entry.ServingSize != nil && product.Per != nil && *product.Per != 0 {
		return entry.Quantity * (*entry.ServingSize / *product.Per)
	}
	if entry.ServingSize != nil {
		return entry.Quantity * *entry.ServingSize
	}
	return entry.Quantity
}

// ReduceEntries folds consumed entries into a single totals record.
// Missing product fields contribute zero; order does not matter.
func ReduceEntries(entries []models.ConsumedProduct) NutrientTotals {
	var totals NutrientTotals
	for i := range entries {
		e := &entries[i]
		totals.addScaled(&e.Product, ConsumptionFactor(e, &e.Product))
	}
	return totals
}

// EntryNutrients returns the totals contributed by a single entry.
func EntryNutrients(entry *models.ConsumedProduct) NutrientTotals {
	var totals NutrientTotals
	totals.addScaled(&entry.Product, ConsumptionFactor(entry, &entry.Product))
	return totals
}

var mealTypes = []string{models.MealBreakfast, models.MealLunch, models.MealDinner, models.MealSnack}

// MealBreakdown partitions entries by meal type and reduces each partition.
// All four meal keys are always present, zero-valued when nothing was eaten.
func MealBreakdown(entries []models.ConsumedProduct) map[string]NutrientTotals {
	buckets := make(map[string][]models.ConsumedProduct)
	for _, e := range entries {
		key := strings.ToLower(e.MealType)
		buckets[key] = append(buckets[key], e)
	}

	out := make(map[string]NutrientTotals, len(mealTypes))
	for _, mt := range mealTypes {
		key := strings.ToLower(mt)
		out[key] = ReduceEntries(buckets[key])
	}
	return out
}

// BuildDailySeries produces one summary per calendar day, both endpoints
// inclusive, ascending. Days are bounded in local time (00:00:00 to
// 23:59:59.999…). A failed fetch aborts the series; no partial output.
func (s *NutritionService) BuildDailySeries(ctx context.Context, userID uint, start, end time.Time) ([]DailySummary, error) {
	var series []DailySummary
	for d := dayStart(start); !d.After(dayStart(end)); d = d.AddDate(0, 0, 1) {
		entries, err := s.store.FindConsumedInRange(ctx, userID, d, dayEnd(d))
		if err != nil {
			return nil, err
		}
		series = append(series, DailySummary{
			Date:           d.Format(dateLayout),
			NutrientTotals: ReduceEntries(entries),
			ConsumedCount:  len(entries),
		})
	}
	return series, nil
}

// ---------- Daily dashboard ----------

type ConsumedProductView struct {
	ID                uint           `json:"id"`
	ProductID         uint           `json:"productId"`
	Barcode           string         `json:"barcode"`
	ProductName       string         `json:"productName"`
	Brand             string         `json:"brand"`
	Quantity          float64        `json:"quantity"`
	ServingSize       *float64       `json:"servingSize"`
	Unit              string         `json:"unit,omitempty"`
	MealType          string         `json:"mealType"`
	ConsumedAt        time.Time      `json:"consumedAt"`
	NutritionalValues NutrientTotals `json:"nutritionalValues"`
}

type DailyDashboard struct {
	Date                 string                    `json:"date"`
	TotalCalories        float64                   `json:"totalCalories"`
	TotalFat             float64                   `json:"totalFat"`
	TotalSugar           float64                   `json:"totalSugar"`
	TotalSalt            float64                   `json:"totalSalt"`
	TotalProtein         float64                   `json:"totalProtein"`
	TotalCarbs           float64                   `json:"totalCarbs"`
	TotalTransFattyAcids float64                   `json:"totalTransFattyAcids"`
	MealBreakdown        map[string]NutrientTotals `json:"mealBreakdown"`
	ConsumedProducts     []ConsumedProductView     `json:"consumedProducts"`
	Recommended          RecommendedIntake         `json:"recommended"`
}

func (s *NutritionService) Daily(ctx context.Context, userID uint, date time.Time) (*DailyDashboard, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	start := dayStart(date)
	entries, err := s.store.FindConsumedInRange(ctx, userID, start, dayEnd(date))
	if err != nil {
		return nil, err
	}

	totals := ReduceEntries(entries)

	views := make([]ConsumedProductView, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		views = append(views, ConsumedProductView{
			ID:                e.ID,
			ProductID:         e.ProductID,
			Barcode:           e.Product.Barcode,
			ProductName:       e.Product.ProductName,
			Brand:             e.Product.Brand,
			Quantity:          e.Quantity,
			ServingSize:       e.ServingSize,
			Unit:              e.Unit,
			MealType:          e.MealType,
			ConsumedAt:        e.ConsumedAt,
			NutritionalValues: EntryNutrients(e),
		})
	}

	return &DailyDashboard{
		Date:                 start.Format(dateLayout),
		TotalCalories:        totals.Calories,
		TotalFat:             totals.Fat,
		TotalSugar:           totals.Sugar,
		TotalSalt:            totals.Salt,
		TotalProtein:         totals.Protein,
		TotalCarbs:           totals.Carbs,
		TotalTransFattyAcids: totals.TransFattyAcids,
		MealBreakdown:        MealBreakdown(entries),
		ConsumedProducts:     views,
		Recommended:          ResolveRecommendedIntake(user),
	}, nil
}

// ---------- Weekly rollup ----------

type WeeklyDashboard struct {
	StartDate      string         `json:"startDate"`
	EndDate        string         `json:"endDate"`
	WeeklyTotals   NutrientTotals `json:"weeklyTotals"`
	DailyAverages  NutrientTotals `json:"dailyAverages"`
	DailySummaries []DailySummary `json:"dailySummaries"`
}

// Weekly covers the 7 days ending on endDate, inclusive. Averages divide by
// the number of days in range; a day with zero entries still counts toward
// the denominator because the series always produces it.
func (s *NutritionService) Weekly(ctx context.Context, userID uint, endDate time.Time) (*WeeklyDashboard, error) {
	start := dayStart(endDate.AddDate(0, 0, -6))
	series, err := s.BuildDailySeries(ctx, userID, start, endDate)
	if err != nil {
		return nil, err
	}

	var totals NutrientTotals
	for _, day := range series {
		totals.add(day.NutrientTotals)
	}

	return &WeeklyDashboard{
		StartDate:      start.Format(dateLayout),
		EndDate:        dayStart(endDate).Format(dateLayout),
		WeeklyTotals:   totals,
		DailyAverages:  totals.dividedBy(len(series)),
		DailySummaries: series,
	}, nil
}

// ---------- Monthly rollup ----------

type MonthlyDashboard struct {
	Year              int            `json:"year"`
	Month             int            `json:"month"`
	StartDate         string         `json:"startDate"`
	EndDate           string         `json:"endDate"`
	MonthlyTotals     NutrientTotals `json:"monthlyTotals"`
	WeeklySummaries   []WeekSummary  `json:"weeklySummaries"`
	HighestCalorieDay *DailySummary  `json:"highestCalorieDay"`
	LowestCalorieDay  *DailySummary  `json:"lowestCalorieDay"`
}

// Monthly partitions the calendar month into consecutive 7-day windows
// starting from the 1st (last window truncated to the month's end), sums the
// window totals, and picks the extremal calorie days from the full daily
// series. Zero-calorie days never qualify as extremes, so a silent month
// reports both as null.
func (s *NutritionService) Monthly(ctx context.Context, userID uint, year, month int) (*MonthlyDashboard, error) {
	startOfMonth := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	endOfMonth := startOfMonth.AddDate(0, 1, -1)

	var weeks []WeekSummary
	var monthly NutrientTotals
	for ws := startOfMonth; !ws.After(endOfMonth); ws = ws.AddDate(0, 0, 7) {
		we := ws.AddDate(0, 0, 6)
		if we.After(endOfMonth) {
			we = endOfMonth
		}

		series, err := s.BuildDailySeries(ctx, userID, ws, we)
		if err != nil {
			return nil, err
		}
		var wt NutrientTotals
		for _, day := range series {
			wt.add(day.NutrientTotals)
		}

		weeks = append(weeks, WeekSummary{
			StartDate:      ws.Format(dateLayout),
			EndDate:        we.Format(dateLayout),
			NutrientTotals: wt,
		})
		monthly.add(wt)
	}

	series, err := s.BuildDailySeries(ctx, userID, startOfMonth, endOfMonth)
	if err != nil {
		return nil, err
	}

	var highest, lowest *DailySummary
	for i := range series {
		day := &series[i]
		if day.Calories <= 0 {
			continue
		}
		if highest == nil || day.Calories > highest.Calories {
			highest = day
		}
		if lowest == nil || day.Calories < lowest.Calories {
			lowest = day
		}
	}

	return &MonthlyDashboard{
		Year:              year,
		Month:             month,
		StartDate:         startOfMonth.Format(dateLayout),
		EndDate:           endOfMonth.Format(dateLayout),
		MonthlyTotals:     monthly,
		WeeklySummaries:   weeks,
		HighestCalorieDay: highest,
		LowestCalorieDay:  lowest,
	}, nil
}

// ---------- internals ----------

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dayEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
