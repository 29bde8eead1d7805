package astro

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed data/dataset.sql
var datasetSQL string

const centerName = "center"

// polynomialSlots maps "series.name" to the single polynomials of a dataset.
// The sun's center terms are a list and handled separately.
func (ds *Dataset) polynomialSlots() map[string]*Polynomial {
	return map[string]*Polynomial{
		"sun.mean_longitude":     &ds.Sun.MeanLongitude,
		"sun.mean_anomaly":       &ds.Sun.MeanAnomaly,
		"moon.mean_longitude":    &ds.Moon.MeanLongitude,
		"moon.elongation":        &ds.Moon.Elongation,
		"moon.sun_anomaly":       &ds.Moon.SunAnomaly,
		"moon.moon_anomaly":      &ds.Moon.MoonAnomaly,
		"moon.latitude_argument": &ds.Moon.LatitudeArgument,
		"moon.eccentricity":      &ds.Moon.Eccentricity,
	}
}

// ReadSQLiteDataset reads a dataset from a SQLite file opened read-only.
// The result is not validated; LoadDataset does that.
func ReadSQLiteDataset(path string) (*Dataset, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to dataset database: %w", err)
	}

	var ds Dataset
	err = db.QueryRow("SELECT name, valid_from, valid_to FROM dataset LIMIT 1").
		Scan(&ds.Name, &ds.ValidFrom, &ds.ValidTo)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("dataset database has no dataset row")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset header: %w", err)
	}

	if err := readPolynomials(db, &ds); err != nil {
		return nil, err
	}
	if err := readMoonTerms(db, &ds); err != nil {
		return nil, err
	}
	return &ds, nil
}

func readPolynomials(db *sql.DB, ds *Dataset) error {
	rows, err := db.Query(`SELECT series, name, idx, power, coefficient
		FROM polynomials ORDER BY series, name, idx, power`)
	if err != nil {
		return fmt.Errorf("failed to query polynomials: %w", err)
	}
	defer rows.Close()

	slots := ds.polynomialSlots()
	for rows.Next() {
		var (
			series, name string
			idx, power   int
			coefficient  float64
		)
		if err := rows.Scan(&series, &name, &idx, &power, &coefficient); err != nil {
			return fmt.Errorf("failed to scan polynomial: %w", err)
		}

		key := series + "." + name
		var target *Polynomial
		switch {
		case key == "sun."+centerName:
			if idx != len(ds.Sun.Center) && idx != len(ds.Sun.Center)-1 {
				return fmt.Errorf("%s: non-contiguous index %d", key, idx)
			}
			if idx == len(ds.Sun.Center) {
				ds.Sun.Center = append(ds.Sun.Center, nil)
			}
			target = &ds.Sun.Center[idx]
		case slots[key] != nil:
			if idx != 0 {
				return fmt.Errorf("%s: unexpected index %d", key, idx)
			}
			target = slots[key]
		default:
			return fmt.Errorf("unknown polynomial %q", key)
		}

		if power != len(*target) {
			return fmt.Errorf("%s[%d]: non-contiguous power %d", key, idx, power)
		}
		*target = append(*target, coefficient)
	}
	return rows.Err()
}

func readMoonTerms(db *sql.DB, ds *Dataset) error {
	rows, err := db.Query("SELECT d, m, mp, f, coefficient FROM moon_terms ORDER BY seq")
	if err != nil {
		return fmt.Errorf("failed to query moon terms: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var term MoonTerm
		if err := rows.Scan(&term.D, &term.M, &term.MPrime, &term.F, &term.Coefficient); err != nil {
			return fmt.Errorf("failed to scan moon term: %w", err)
		}
		ds.Moon.Terms = append(ds.Moon.Terms, term)
	}
	return rows.Err()
}

// WriteSQLiteDataset exports a dataset into a new SQLite file. It refuses to
// overwrite an existing file.
func WriteSQLiteDataset(path string, ds *Dataset) (err error) {
	if _, statErr := os.Stat(path); statErr == nil {
		return fmt.Errorf("refusing to overwrite existing file: %s", path)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(datasetSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.Exec("INSERT INTO dataset (name, valid_from, valid_to) VALUES (?, ?, ?)",
		ds.Name, ds.ValidFrom, ds.ValidTo); err != nil {
		return fmt.Errorf("failed to write dataset header: %w", err)
	}

	insertPoly := func(key string, idx int, p Polynomial) error {
		series, name, _ := strings.Cut(key, ".")
		for power, c := range p {
			if _, err := tx.Exec(`INSERT INTO polynomials (series, name, idx, power, coefficient)
				VALUES (?, ?, ?, ?, ?)`, series, name, idx, power, c); err != nil {
				return fmt.Errorf("failed to write %s: %w", key, err)
			}
		}
		return nil
	}

	for key, p := range ds.polynomialSlots() {
		if err = insertPoly(key, 0, *p); err != nil {
			return err
		}
	}
	for i, p := range ds.Sun.Center {
		if err = insertPoly("sun."+centerName, i, p); err != nil {
			return err
		}
	}

	for i, term := range ds.Moon.Terms {
		if _, err = tx.Exec("INSERT INTO moon_terms (seq, d, m, mp, f, coefficient) VALUES (?, ?, ?, ?, ?, ?)",
			i, term.D, term.M, term.MPrime, term.F, term.Coefficient); err != nil {
			return fmt.Errorf("failed to write moon term %d: %w", i, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit dataset: %w", err)
	}
	return nil
}
