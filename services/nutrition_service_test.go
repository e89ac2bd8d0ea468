package services

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/alikalatearabi/salemina-main-app-backend/models"

	"gorm.io/gorm"
)

const tolerance = 1e-9

func fptr(v float64) *float64 { return &v }

// fakeEntryStore serves consumed entries from memory, filtered by the
// requested time range, the way the database query would.
type fakeEntryStore struct {
	entries []models.ConsumedProduct
	user    *models.User
	err     error
}

func (f *fakeEntryStore) FindConsumedInRange(_ context.Context, userID uint, start, end time.Time) ([]models.ConsumedProduct, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.ConsumedProduct
	for _, e := range f.entries {
		if e.UserID != userID {
			continue
		}
		if e.ConsumedAt.Before(start) || e.ConsumedAt.After(end) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEntryStore) GetUser(_ context.Context, _ uint) (*models.User, error) {
	if f.user == nil {
		return nil, ErrUserNotFound
	}
	return f.user, nil
}

func testProduct(per, calories, fat, sugar, salt, trans float64, protein, carbs string) models.Product {
	return models.Product{
		Model:           gorm.Model{ID: 1},
		Barcode:         "6260000000017",
		ProductName:     "Test Yogurt",
		Per:             fptr(per),
		Calorie:         fptr(calories),
		Fat:             fptr(fat),
		Sugar:           fptr(sugar),
		Salt:            fptr(salt),
		TransFattyAcids: fptr(trans),
		Protein:         protein,
		Carbohydrate:    carbs,
	}
}

func entryAt(userID uint, p models.Product, quantity float64, servingSize *float64, mealType string, at time.Time) models.ConsumedProduct {
	return models.ConsumedProduct{
		UserID:      userID,
		ProductID:   p.ID,
		Product:     p,
		Quantity:    quantity,
		ServingSize: servingSize,
		MealType:    mealType,
		ConsumedAt:  at,
	}
}

func approxEqual(a, b NutrientTotals) bool {
	return math.Abs(a.Calories-b.Calories) < tolerance &&
		math.Abs(a.Fat-b.Fat) < tolerance &&
		math.Abs(a.Sugar-b.Sugar) < tolerance &&
		math.Abs(a.Salt-b.Salt) < tolerance &&
		math.Abs(a.Protein-b.Protein) < tolerance &&
		math.Abs(a.Carbs-b.Carbs) < tolerance &&
		math.Abs(a.TransFattyAcids-b.TransFattyAcids) < tolerance
}

func TestConsumptionFactor(t *testing.T) {
	p := testProduct(100, 200, 10, 5, 1, 0.1, "12", "30")
	noRef := p
	noRef.Per = nil
	zeroRef := p
	zeroRef.Per = fptr(0)

	tests := []struct {
		name        string
		product     models.Product
		quantity    float64
		servingSize *float64
		want        float64
	}{
		{"serving proportional to reference", p, 2, fptr(50), 1},
		{"full reference serving", p, 1, fptr(100), 1},
		{"no serving size means whole servings", p, 3, nil, 3},
		{"no reference serving multiplies raw", noRef, 2, fptr(50), 100},
		{"zero reference serving multiplies raw", zeroRef, 2, fptr(50), 100},
		{"neither set", noRef, 1.5, nil, 1.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := models.ConsumedProduct{Quantity: tt.quantity, ServingSize: tt.servingSize}
			got := ConsumptionFactor(&e, &tt.product)
			if math.Abs(got-tt.want) > tolerance {
				t.Errorf("factor = %v, want %v", got, tt.want)
			}
		})
	}
}

// Both factor formulas agree when the reference serving is 1; they diverge
// as soon as it is not. This pins the division form as the one in use.
func TestFactorPolicyDivergence(t *testing.T) {
	p := testProduct(100, 200, 0, 0, 0, 0, "0", "0")
	e := models.ConsumedProduct{Quantity: 2, ServingSize: fptr(50)}

	got := ConsumptionFactor(&e, &p)
	if math.Abs(got-1) > tolerance {
		t.Fatalf("division form: factor = %v, want 1", got)
	}

	directMultiply := e.Quantity * *e.ServingSize
	if directMultiply == got {
		t.Fatalf("formulas should diverge at per=100, both gave %v", got)
	}

	perOne := p
	perOne.Per = fptr(1)
	if g := ConsumptionFactor(&e, &perOne); math.Abs(g-directMultiply) > tolerance {
		t.Errorf("at per=1 the forms must coincide: got %v, want %v", g, directMultiply)
	}
}

func TestReduceEntriesEmpty(t *testing.T) {
	if got := ReduceEntries(nil); got != (NutrientTotals{}) {
		t.Errorf("ReduceEntries(nil) = %+v, want zeros", got)
	}
}

func TestReduceEntriesScalesAllNutrients(t *testing.T) {
	p := testProduct(100, 200, 10, 5, 1, 0.1, "12", "30")
	at := time.Date(2025, 3, 10, 8, 0, 0, 0, time.Local)
	entries := []models.ConsumedProduct{
		entryAt(1, p, 2, fptr(50), models.MealBreakfast, at),
	}

	got := ReduceEntries(entries)
	want := NutrientTotals{Calories: 200, Fat: 10, Sugar: 5, Salt: 1, Protein: 12, Carbs: 30, TransFattyAcids: 0.1}
	if !approxEqual(got, want) {
		t.Errorf("ReduceEntries = %+v, want %+v", got, want)
	}
}

func TestReduceEntriesAdditivity(t *testing.T) {
	p := testProduct(100, 200, 10, 5, 1, 0.1, "12.5", "30,2")
	q := testProduct(50, 80, 3, 12, 0.4, 0, "4", "18")
	at := time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)

	a := []models.ConsumedProduct{
		entryAt(1, p, 1, fptr(150), models.MealBreakfast, at),
		entryAt(1, q, 2, nil, models.MealLunch, at),
	}
	b := []models.ConsumedProduct{
		entryAt(1, q, 0.5, fptr(25), models.MealSnack, at),
	}

	sum := ReduceEntries(a)
	sum.add(ReduceEntries(b))
	whole := ReduceEntries(append(append([]models.ConsumedProduct{}, a...), b...))
	if !approxEqual(sum, whole) {
		t.Errorf("split reduce = %+v, whole reduce = %+v", sum, whole)
	}
}

func TestReduceEntriesMissingFieldsContributeZero(t *testing.T) {
	p := models.Product{Model: gorm.Model{ID: 2}, Barcode: "0", Protein: "", Carbohydrate: "n/a"}
	at := time.Date(2025, 3, 10, 19, 0, 0, 0, time.Local)

	got := ReduceEntries([]models.ConsumedProduct{entryAt(1, p, 4, nil, models.MealDinner, at)})
	if got != (NutrientTotals{}) {
		t.Errorf("nil nutrient fields should reduce to zeros, got %+v", got)
	}
}

func TestMealBreakdownFixedKeys(t *testing.T) {
	p := testProduct(100, 200, 10, 5, 1, 0.1, "12", "30")
	at := time.Date(2025, 3, 10, 8, 0, 0, 0, time.Local)
	entries := []models.ConsumedProduct{
		entryAt(1, p, 1, fptr(100), models.MealBreakfast, at),
		entryAt(1, p, 2, fptr(100), models.MealBreakfast, at),
		entryAt(1, p, 1, fptr(50), models.MealDinner, at),
	}

	got := MealBreakdown(entries)
	for _, key := range []string{"breakfast", "lunch", "dinner", "snack"} {
		if _, ok := got[key]; !ok {
			t.Errorf("missing meal key %q", key)
		}
	}
	if len(got) != 4 {
		t.Errorf("breakdown has %d keys, want 4", len(got))
	}
	if math.Abs(got["breakfast"].Calories-600) > tolerance {
		t.Errorf("breakfast calories = %v, want 600", got["breakfast"].Calories)
	}
	if math.Abs(got["dinner"].Calories-100) > tolerance {
		t.Errorf("dinner calories = %v, want 100", got["dinner"].Calories)
	}
	if got["lunch"] != (NutrientTotals{}) || got["snack"] != (NutrientTotals{}) {
		t.Errorf("empty meals must be zero-valued, got lunch=%+v snack=%+v", got["lunch"], got["snack"])
	}
}

func TestMealBreakdownPartitionsCompletely(t *testing.T) {
	p := testProduct(100, 200, 10, 5, 1, 0.1, "12", "30")
	at := time.Date(2025, 3, 10, 8, 0, 0, 0, time.Local)
	entries := []models.ConsumedProduct{
		entryAt(1, p, 1, fptr(100), models.MealBreakfast, at),
		entryAt(1, p, 1, fptr(75), models.MealLunch, at),
		entryAt(1, p, 1, fptr(120), models.MealDinner, at),
		entryAt(1, p, 0.5, nil, models.MealSnack, at),
	}

	breakdown := MealBreakdown(entries)
	var sum NutrientTotals
	for _, totals := range breakdown {
		sum.add(totals)
	}
	if whole := ReduceEntries(entries); !approxEqual(sum, whole) {
		t.Errorf("breakdown sum = %+v, whole reduce = %+v", sum, whole)
	}
}

func TestBuildDailySeriesInclusiveAscending(t *testing.T) {
	p := testProduct(100, 200, 10, 5, 1, 0.1, "12", "30")
	store := &fakeEntryStore{entries: []models.ConsumedProduct{
		entryAt(1, p, 1, fptr(100), models.MealBreakfast, time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)),
		entryAt(1, p, 1, fptr(100), models.MealLunch, time.Date(2025, 3, 11, 13, 0, 0, 0, time.Local)),
		entryAt(1, p, 1, fptr(100), models.MealDinner, time.Date(2025, 3, 12, 23, 59, 59, 0, time.Local)),
	}}
	svc := NewNutritionService(store)

	series, err := svc.BuildDailySeries(context.Background(), 1,
		time.Date(2025, 3, 10, 15, 30, 0, 0, time.Local),
		time.Date(2025, 3, 12, 2, 0, 0, 0, time.Local))
	if err != nil {
		t.Fatalf("BuildDailySeries: %v", err)
	}
	if len(series) != 3 {
		t.Fatalf("series length = %d, want 3", len(series))
	}

	wantDates := []string{"2025-03-10", "2025-03-11", "2025-03-12"}
	for i, day := range series {
		if day.Date != wantDates[i] {
			t.Errorf("series[%d].Date = %s, want %s", i, day.Date, wantDates[i])
		}
		if day.ConsumedCount != 1 {
			t.Errorf("series[%d].ConsumedCount = %d, want 1", i, day.ConsumedCount)
		}
		if math.Abs(day.Calories-200) > tolerance {
			t.Errorf("series[%d].Calories = %v, want 200", i, day.Calories)
		}
	}
}

func TestBuildDailySeriesEmptyDaysPresent(t *testing.T) {
	svc := NewNutritionService(&fakeEntryStore{})
	series, err := svc.BuildDailySeries(context.Background(), 1,
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local),
		time.Date(2025, 3, 5, 0, 0, 0, 0, time.Local))
	if err != nil {
		t.Fatalf("BuildDailySeries: %v", err)
	}
	if len(series) != 5 {
		t.Fatalf("series length = %d, want 5", len(series))
	}
	for i, day := range series {
		if day.ConsumedCount != 0 || day.NutrientTotals != (NutrientTotals{}) {
			t.Errorf("series[%d] should be empty, got %+v", i, day)
		}
	}
}

func TestDailyDashboard(t *testing.T) {
	p := testProduct(100, 200, 10, 5, 1, 0.1, "12", "30")
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)
	store := &fakeEntryStore{
		user: &models.User{Model: gorm.Model{ID: 1}, Phone: "09120000000"},
		entries: []models.ConsumedProduct{
			entryAt(1, p, 2, fptr(50), models.MealBreakfast, day.Add(8*time.Hour)),
			entryAt(1, p, 1, fptr(100), models.MealLunch, day.Add(13*time.Hour)),
			// previous day, must not leak in
			entryAt(1, p, 5, fptr(100), models.MealDinner, day.AddDate(0, 0, -1)),
		},
	}
	svc := NewNutritionService(store)

	dash, err := svc.Daily(context.Background(), 1, day)
	if err != nil {
		t.Fatalf("Daily: %v", err)
	}
	if dash.Date != "2025-03-10" {
		t.Errorf("Date = %s, want 2025-03-10", dash.Date)
	}
	if math.Abs(dash.TotalCalories-400) > tolerance {
		t.Errorf("TotalCalories = %v, want 400", dash.TotalCalories)
	}
	if len(dash.ConsumedProducts) != 2 {
		t.Errorf("ConsumedProducts = %d entries, want 2", len(dash.ConsumedProducts))
	}
	if math.Abs(dash.MealBreakdown["breakfast"].Calories-200) > tolerance {
		t.Errorf("breakfast calories = %v, want 200", dash.MealBreakdown["breakfast"].Calories)
	}
	if dash.Recommended.Calories != DefaultDailyCalories {
		t.Errorf("Recommended.Calories = %v, want default %v", dash.Recommended.Calories, DefaultDailyCalories)
	}
}

func TestResolveRecommendedIntakeOverrides(t *testing.T) {
	got := ResolveRecommendedIntake(nil)
	want := RecommendedIntake{Calories: 2000, Fat: 70, Sugar: 30, Salt: 5, TransFattyAcids: 2}
	if got != want {
		t.Errorf("nil user: %+v, want %+v", got, want)
	}

	user := &models.User{
		RecommendedDailyCalories: fptr(1800),
		RecommendedDailySalt:     fptr(4),
	}
	got = ResolveRecommendedIntake(user)
	if got.Calories != 1800 || got.Salt != 4 {
		t.Errorf("overrides not applied: %+v", got)
	}
	if got.Fat != 70 || got.Sugar != 30 || got.TransFattyAcids != 2 {
		t.Errorf("unset fields must keep defaults: %+v", got)
	}
}

func TestWeeklyWindow(t *testing.T) {
	p := testProduct(100, 200, 10, 5, 1, 0.1, "12", "30")
	end := time.Date(2025, 3, 12, 0, 0, 0, 0, time.Local)
	store := &fakeEntryStore{entries: []models.ConsumedProduct{
		// day before the window, excluded
		entryAt(1, p, 9, fptr(100), models.MealLunch, end.AddDate(0, 0, -7).Add(12*time.Hour)),
		// first and last day of the window, included
		entryAt(1, p, 1, fptr(100), models.MealBreakfast, end.AddDate(0, 0, -6).Add(8*time.Hour)),
		entryAt(1, p, 2, fptr(100), models.MealDinner, end.Add(20*time.Hour)),
	}}
	svc := NewNutritionService(store)

	dash, err := svc.Weekly(context.Background(), 1, end)
	if err != nil {
		t.Fatalf("Weekly: %v", err)
	}
	if dash.StartDate != "2025-03-06" || dash.EndDate != "2025-03-12" {
		t.Errorf("window = %s..%s, want 2025-03-06..2025-03-12", dash.StartDate, dash.EndDate)
	}
	if len(dash.DailySummaries) != 7 {
		t.Fatalf("daily summaries = %d, want 7", len(dash.DailySummaries))
	}
	for i := 1; i < len(dash.DailySummaries); i++ {
		if dash.DailySummaries[i].Date <= dash.DailySummaries[i-1].Date {
			t.Errorf("summaries not ascending at %d: %s then %s", i, dash.DailySummaries[i-1].Date, dash.DailySummaries[i].Date)
		}
	}
	if math.Abs(dash.WeeklyTotals.Calories-600) > tolerance {
		t.Errorf("WeeklyTotals.Calories = %v, want 600", dash.WeeklyTotals.Calories)
	}
	// averages divide by all 7 days, empty days included
	if math.Abs(dash.DailyAverages.Calories-600.0/7.0) > tolerance {
		t.Errorf("DailyAverages.Calories = %v, want %v", dash.DailyAverages.Calories, 600.0/7.0)
	}
}

func TestMonthlyWindowPartition(t *testing.T) {
	svc := NewNutritionService(&fakeEntryStore{})

	dash, err := svc.Monthly(context.Background(), 1, 2025, 7)
	if err != nil {
		t.Fatalf("Monthly: %v", err)
	}
	if dash.StartDate != "2025-07-01" || dash.EndDate != "2025-07-31" {
		t.Errorf("month bounds = %s..%s", dash.StartDate, dash.EndDate)
	}
	if len(dash.WeeklySummaries) != 5 {
		t.Fatalf("weekly summaries = %d, want 5", len(dash.WeeklySummaries))
	}

	wantWindows := [][2]string{
		{"2025-07-01", "2025-07-07"},
		{"2025-07-08", "2025-07-14"},
		{"2025-07-15", "2025-07-21"},
		{"2025-07-22", "2025-07-28"},
		{"2025-07-29", "2025-07-31"},
	}
	for i, w := range dash.WeeklySummaries {
		if w.StartDate != wantWindows[i][0] || w.EndDate != wantWindows[i][1] {
			t.Errorf("window %d = %s..%s, want %s..%s", i, w.StartDate, w.EndDate, wantWindows[i][0], wantWindows[i][1])
		}
	}
}

func TestMonthlyTotalsEqualDirectReduce(t *testing.T) {
	p := testProduct(100, 200, 10, 5, 1, 0.1, "12", "30")
	var entries []models.ConsumedProduct
	// scattered across the month, including window boundaries
	for _, day := range []int{1, 7, 8, 14, 15, 28, 29, 31} {
		entries = append(entries, entryAt(1, p, float64(day), fptr(100), models.MealLunch,
			time.Date(2025, 7, day, 12, 0, 0, 0, time.Local)))
	}
	store := &fakeEntryStore{entries: entries}
	svc := NewNutritionService(store)

	dash, err := svc.Monthly(context.Background(), 1, 2025, 7)
	if err != nil {
		t.Fatalf("Monthly: %v", err)
	}

	direct := ReduceEntries(entries)
	if !approxEqual(dash.MonthlyTotals, direct) {
		t.Errorf("MonthlyTotals = %+v, direct reduce = %+v", dash.MonthlyTotals, direct)
	}

	var windowSum NutrientTotals
	for _, w := range dash.WeeklySummaries {
		windowSum.add(w.NutrientTotals)
	}
	if !approxEqual(windowSum, direct) {
		t.Errorf("window sum = %+v, direct reduce = %+v", windowSum, direct)
	}
}

func TestMonthlyExtremalDays(t *testing.T) {
	p := testProduct(100, 100, 0, 0, 0, 0, "0", "0")
	store := &fakeEntryStore{entries: []models.ConsumedProduct{
		entryAt(1, p, 3, fptr(100), models.MealLunch, time.Date(2025, 7, 5, 12, 0, 0, 0, time.Local)),  // 300
		entryAt(1, p, 8, fptr(100), models.MealLunch, time.Date(2025, 7, 10, 12, 0, 0, 0, time.Local)), // 800
		entryAt(1, p, 1, fptr(100), models.MealLunch, time.Date(2025, 7, 20, 12, 0, 0, 0, time.Local)), // 100
	}}
	svc := NewNutritionService(store)

	dash, err := svc.Monthly(context.Background(), 1, 2025, 7)
	if err != nil {
		t.Fatalf("Monthly: %v", err)
	}
	if dash.HighestCalorieDay == nil || dash.HighestCalorieDay.Date != "2025-07-10" {
		t.Errorf("HighestCalorieDay = %+v, want 2025-07-10", dash.HighestCalorieDay)
	}
	if dash.LowestCalorieDay == nil || dash.LowestCalorieDay.Date != "2025-07-20" {
		t.Errorf("LowestCalorieDay = %+v, want 2025-07-20", dash.LowestCalorieDay)
	}
}

func TestMonthlyExtremalDaysSkipZeroCalories(t *testing.T) {
	svc := NewNutritionService(&fakeEntryStore{})
	dash, err := svc.Monthly(context.Background(), 1, 2025, 7)
	if err != nil {
		t.Fatalf("Monthly: %v", err)
	}
	if dash.HighestCalorieDay != nil || dash.LowestCalorieDay != nil {
		t.Errorf("silent month must report nil extremes, got high=%+v low=%+v",
			dash.HighestCalorieDay, dash.LowestCalorieDay)
	}
	if dash.MonthlyTotals != (NutrientTotals{}) {
		t.Errorf("silent month totals = %+v, want zeros", dash.MonthlyTotals)
	}
}

func TestMonthlyExtremalTiesPickFirst(t *testing.T) {
	p := testProduct(100, 100, 0, 0, 0, 0, "0", "0")
	store := &fakeEntryStore{entries: []models.ConsumedProduct{
		entryAt(1, p, 2, fptr(100), models.MealLunch, time.Date(2025, 7, 3, 12, 0, 0, 0, time.Local)),
		entryAt(1, p, 2, fptr(100), models.MealLunch, time.Date(2025, 7, 9, 12, 0, 0, 0, time.Local)),
	}}
	svc := NewNutritionService(store)

	dash, err := svc.Monthly(context.Background(), 1, 2025, 7)
	if err != nil {
		t.Fatalf("Monthly: %v", err)
	}
	if dash.HighestCalorieDay == nil || dash.HighestCalorieDay.Date != "2025-07-03" {
		t.Errorf("tie must keep the earlier day, got %+v", dash.HighestCalorieDay)
	}
	if dash.LowestCalorieDay == nil || dash.LowestCalorieDay.Date != "2025-07-03" {
		t.Errorf("tie must keep the earlier day, got %+v", dash.LowestCalorieDay)
	}
}

func TestSeriesAbortsOnStoreError(t *testing.T) {
	storeErr := context.DeadlineExceeded
	svc := NewNutritionService(&fakeEntryStore{err: storeErr})

	if _, err := svc.Weekly(context.Background(), 1, time.Now()); err != storeErr {
		t.Errorf("Weekly error = %v, want %v", err, storeErr)
	}
	if _, err := svc.Monthly(context.Background(), 1, 2025, 7); err != storeErr {
		t.Errorf("Monthly error = %v, want %v", err, storeErr)
	}
}
