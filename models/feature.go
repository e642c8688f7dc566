package models

// FeatureColumns is the exact column order the demand model was trained with
var FeatureColumns = []string{
	"Weekday", "Temperature", "Condition", "Humidity", "Wind_Speed", "Holiday", "Event",
	"Rainfall", "Solar_Generation", "low_price", "high_price", "Average_Price_Rs_Per_Sqft", "QoQ_Price_Change_Percent",
	"Day", "Month", "Year", "DayOfYear", "Hour", "Hour_sin", "Hour_cos", "Weekday_sin", "Weekday_cos",
	"Month_sin", "Month_cos", "DayOfYear_sin", "DayOfYear_cos", "temp_x_hour",
}

// Cell is one named value of a model input row. Categorical cells carry Str,
// numeric cells carry Num.
type Cell struct {
	Name        string
	Num         float64
	Str         string
	Categorical bool
}

// Row is a single-row tabular model input
type Row []Cell

// Names returns the column names of the row in order
func (r Row) Names() []string {
	names := make([]string, len(r))
	for i, c := range r {
		names[i] = c.Name
	}
	return names
}

// FeatureVector is the derived model input for one forecast hour
type FeatureVector struct {
	Weekday         int // Monday = 0
	Temperature     float64
	Condition       string
	Humidity        int
	WindSpeed       float64 // km/h
	DayType         DayType
	Rainfall        float64 // mm
	SolarGeneration float64
	LowPrice        float64
	HighPrice       float64
	AveragePrice    float64
	QoQPriceChange  float64

	Day       int
	Month     int
	Year      int
	DayOfYear int
	Hour      int

	HourSin      float64
	HourCos      float64
	WeekdaySin   float64
	WeekdayCos   float64
	MonthSin     float64
	MonthCos     float64
	DayOfYearSin float64
	DayOfYearCos float64

	TempXHour float64
}

// Row lays the vector out in FeatureColumns order
func (f *FeatureVector) Row() Row {
	num := func(name string, v float64) Cell { return Cell{Name: name, Num: v} }
	cat := func(name, v string) Cell { return Cell{Name: name, Str: v, Categorical: true} }

	return Row{
		num("Weekday", float64(f.Weekday)),
		num("Temperature", f.Temperature),
		cat("Condition", f.Condition),
		num("Humidity", float64(f.Humidity)),
		num("Wind_Speed", f.WindSpeed),
		num("Holiday", float64(f.DayType.Flag())),
		cat("Event", f.DayType.Label()),
		num("Rainfall", f.Rainfall),
		num("Solar_Generation", f.SolarGeneration),
		num("low_price", f.LowPrice),
		num("high_price", f.HighPrice),
		num("Average_Price_Rs_Per_Sqft", f.AveragePrice),
		num("QoQ_Price_Change_Percent", f.QoQPriceChange),
		num("Day", float64(f.Day)),
		num("Month", float64(f.Month)),
		num("Year", float64(f.Year)),
		num("DayOfYear", float64(f.DayOfYear)),
		num("Hour", float64(f.Hour)),
		num("Hour_sin", f.HourSin),
		num("Hour_cos", f.HourCos),
		num("Weekday_sin", f.WeekdaySin),
		num("Weekday_cos", f.WeekdayCos),
		num("Month_sin", f.MonthSin),
		num("Month_cos", f.MonthCos),
		num("DayOfYear_sin", f.DayOfYearSin),
		num("DayOfYear_cos", f.DayOfYearCos),
		num("temp_x_hour", f.TempXHour),
	}
}
