// trend-fit is an offline analysis tool that fits trend models to the daily
// measurements of one phenomenon at one station. It is useful for spotting
// long-term drift in a sensor or a real hydrological trend before deciding
// which is which.
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	_ "github.com/lib/pq"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// DailyPoint is one daily measurement positioned on a day index within the
// analysis window
type DailyPoint struct {
	Date     time.Time
	DayIndex float64
	Quantity float64
}

// TrendResult contains the fit quality of one model
type TrendResult struct {
	ModelName            string
	Coefficients         []float64 // quantity = c0 + c1*day + c2*day² + ...
	RSquared             float64
	MeanAbsoluteError    float64
	RootMeanSquaredError float64
	SampleCount          int
}

func main() {
	var (
		dbHost     = flag.String("db-host", "localhost", "Database host")
		dbPort     = flag.Int("db-port", 5432, "Database port")
		dbUser     = flag.String("db-user", "postgres", "Database user")
		dbPass     = flag.String("db-pass", "", "Database password")
		dbName     = flag.String("db-name", "hidromet", "Database name")
		station    = flag.String("station", "", "Station identifier (required)")
		phenomenon = flag.String("phenomenon", "", "Phenomenon name, e.g. Rainfall (required)")
		days       = flag.Int("days", 365, "Number of days of data to analyze")
	)
	flag.Parse()

	if *station == "" || *phenomenon == "" {
		fmt.Fprintf(os.Stderr, "Error: -station and -phenomenon are required\n")
		flag.Usage()
		os.Exit(1)
	}

	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		*dbHost, *dbPort, *dbUser, *dbPass, *dbName)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error connecting to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// Test connection
	if err := db.Ping(); err != nil {
		fmt.Fprintf(os.Stderr, "Error pinging database: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Daily Measurement Trend Analysis\n")
	fmt.Printf("================================\n\n")
	fmt.Printf("Configuration:\n")
	fmt.Printf("  Station:    %s\n", *station)
	fmt.Printf("  Phenomenon: %s\n", *phenomenon)
	fmt.Printf("  Window:     %d days\n\n", *days)

	points := fetchDailyPoints(db, *station, *phenomenon, *days)

	if len(points) < 10 {
		fmt.Fprintf(os.Stderr, "Error: Not enough data points (%d). Need at least 10.\n", len(points))
		os.Exit(1)
	}

	fmt.Printf("Collected %d data points\n\n", len(points))

	results := []TrendResult{
		fitLinearTrend(points),
		fitPolynomialTrend(points, 2),
	}

	displayResults(results)
}

func fetchDailyPoints(db *sql.DB, station, phenomenon string, days int) []DailyPoint {
	query := `
		SELECT dm.local_date, dm.quantity
		FROM daily_measurements dm
		INNER JOIN phenomenon_types pt ON pt.id = dm.phenomenon_type_id
		WHERE dm.station_id = $1
		  AND pt.name = $2
		  AND dm.active = true
		  AND dm.local_date >= NOW() - INTERVAL '1 day' * $3
		ORDER BY dm.local_date
	`

	rows, err := db.Query(query, station, phenomenon, days)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error querying data: %v\n", err)
		os.Exit(1)
	}
	defer rows.Close()

	var points []DailyPoint
	var origin time.Time
	for rows.Next() {
		var p DailyPoint
		if err := rows.Scan(&p.Date, &p.Quantity); err != nil {
			fmt.Fprintf(os.Stderr, "Error scanning row: %v\n", err)
			continue
		}
		if len(points) == 0 {
			origin = p.Date
		}
		p.DayIndex = p.Date.Sub(origin).Hours() / 24
		points = append(points, p)
	}

	return points
}

func fitLinearTrend(points []DailyPoint) TrendResult {
	n := len(points)
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, p := range points {
		xs[i] = p.DayIndex
		ys[i] = p.Quantity
	}

	intercept, slope := stat.LinearRegression(xs, ys, nil, false)
	predict := func(x float64) float64 { return intercept + slope*x }

	return TrendResult{
		ModelName:            "Linear",
		Coefficients:         []float64{intercept, slope},
		RSquared:             rSquared(xs, ys, predict),
		MeanAbsoluteError:    meanAbsoluteError(xs, ys, predict),
		RootMeanSquaredError: rootMeanSquaredError(xs, ys, predict),
		SampleCount:          n,
	}
}

func fitPolynomialTrend(points []DailyPoint, degree int) TrendResult {
	n := len(points)
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, p := range points {
		xs[i] = p.DayIndex
		ys[i] = p.Quantity
	}

	// Build the Vandermonde matrix and solve the least-squares system
	a := mat.NewDense(n, degree+1, nil)
	for i := 0; i < n; i++ {
		for j := 0; j <= degree; j++ {
			a.Set(i, j, math.Pow(xs[i], float64(j)))
		}
	}
	b := mat.NewVecDense(n, ys)

	var qr mat.QR
	qr.Factorize(a)

	var solution mat.VecDense
	if err := qr.SolveVecTo(&solution, false, b); err != nil {
		fmt.Fprintf(os.Stderr, "Error solving least squares: %v\n", err)
		os.Exit(1)
	}

	coefficients := make([]float64, degree+1)
	for j := 0; j <= degree; j++ {
		coefficients[j] = solution.AtVec(j)
	}

	predict := func(x float64) float64 {
		y := 0.0
		for j, c := range coefficients {
			y += c * math.Pow(x, float64(j))
		}
		return y
	}

	return TrendResult{
		ModelName:            fmt.Sprintf("Polynomial (degree %d)", degree),
		Coefficients:         coefficients,
		RSquared:             rSquared(xs, ys, predict),
		MeanAbsoluteError:    meanAbsoluteError(xs, ys, predict),
		RootMeanSquaredError: rootMeanSquaredError(xs, ys, predict),
		SampleCount:          n,
	}
}

func rSquared(xs, ys []float64, predict func(float64) float64) float64 {
	meanY := stat.Mean(ys, nil)

	var ssTot, ssRes float64
	for i, x := range xs {
		ssTot += (ys[i] - meanY) * (ys[i] - meanY)
		residual := ys[i] - predict(x)
		ssRes += residual * residual
	}
	if ssTot == 0 {
		return 0
	}
	return 1 - ssRes/ssTot
}

func meanAbsoluteError(xs, ys []float64, predict func(float64) float64) float64 {
	var total float64
	for i, x := range xs {
		total += math.Abs(ys[i] - predict(x))
	}
	return total / float64(len(xs))
}

func rootMeanSquaredError(xs, ys []float64, predict func(float64) float64) float64 {
	var total float64
	for i, x := range xs {
		residual := ys[i] - predict(x)
		total += residual * residual
	}
	return math.Sqrt(total / float64(len(xs)))
}

func displayResults(results []TrendResult) {
	fmt.Printf("Model Comparison:\n")
	fmt.Printf("%-22s %-10s %-12s %-12s\n", "Model", "R²", "MAE", "RMSE")
	fmt.Printf("%-22s %-10s %-12s %-12s\n", "-----", "--", "---", "----")
	for _, r := range results {
		fmt.Printf("%-22s %-10.4f %-12.4f %-12.4f\n",
			r.ModelName, r.RSquared, r.MeanAbsoluteError, r.RootMeanSquaredError)
	}
	fmt.Println()

	best := results[0]
	for _, r := range results {
		if r.RSquared > best.RSquared {
			best = r
		}
	}

	fmt.Printf("Best model by R²: %s\n", best.ModelName)
	fmt.Printf("  Coefficients: %v\n", best.Coefficients)
	if len(best.Coefficients) >= 2 {
		fmt.Printf("  Trend: %+.6f units/day (%+.4f units/year)\n",
			best.Coefficients[1], best.Coefficients[1]*365)
	}
}
