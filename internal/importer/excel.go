package importer

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/halalfood/halalfood/backend/api/internal/restaurant"
	"github.com/halalfood/halalfood/backend/api/pkg/logger"
	"github.com/xuri/excelize/v2"
)

// Result summarises a workbook parse.
type Result struct {
	Restaurants []*restaurant.Restaurant
	Skipped     int
}

// ParseWorkbook reads the first sheet of an exported listings workbook and
// maps its rows onto Restaurants. The first row is the header; rows missing
// any of name, full_address, city or state are skipped and counted, matching
// the spreadsheet contract the scraped exports follow. full_address feeds the
// address field, working_hours is a JSON object string falling back to
// all-Closed when it does not parse.
func ParseWorkbook(path, defaultCountry string) (*Result, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return &Result{}, nil
	}

	header := map[string]int{}
	for i, name := range rows[0] {
		header[strings.ToLower(strings.TrimSpace(name))] = i
	}
	cell := func(row []string, col string) string {
		idx, ok := header[col]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	if defaultCountry == "" {
		defaultCountry = "Canada"
	}

	res := &Result{}
	for n, row := range rows[1:] {
		name := cell(row, "name")
		address := cell(row, "full_address")
		city := cell(row, "city")
		state := cell(row, "state")
		if name == "" || address == "" || city == "" || state == "" {
			res.Skipped++
			logger.Warnf("skipping row %d: missing required fields", n+2)
			continue
		}
		province := cell(row, "province")
		if province == "" {
			province = state
		}
		country := cell(row, "country")
		if country == "" {
			country = defaultCountry
		}
		reviews, _ := strconv.Atoi(cell(row, "reviews"))

		r := &restaurant.Restaurant{
			Name:         name,
			Address:      address,
			Street:       cell(row, "street"),
			City:         city,
			State:        state,
			Province:     province,
			PostalCode:   cell(row, "postal_code"),
			Country:      country,
			Phone:        cell(row, "phone"),
			Site:         cell(row, "site"),
			Cuisine:      cell(row, "cuisine"),
			PriceRange:   cell(row, "price_range"),
			Rating:       cell(row, "rating"),
			Category:     cell(row, "category"),
			Reviews:      reviews,
			Photo:        cell(row, "photo"),
			StreetView:   cell(row, "street_view"),
			Logo:         cell(row, "logo"),
			Description:  cell(row, "description"),
			BookingLink:  cell(row, "booking_appointment_link"),
			WorkingHours: parseWorkingHours(cell(row, "working_hours"), name),
		}
		r.ApplyDefaults()
		if err := r.Validate(); err != nil {
			res.Skipped++
			logger.Warnf("skipping row %d (%s): %v", n+2, name, err)
			continue
		}
		res.Restaurants = append(res.Restaurants, r)
	}
	return res, nil
}

func parseWorkingHours(raw, name string) map[string]string {
	if raw == "" {
		return nil
	}
	var hours map[string]string
	if err := json.Unmarshal([]byte(raw), &hours); err != nil {
		logger.Warnf("failed to parse working hours for %s, using default hours", name)
		return nil
	}
	return hours
}
