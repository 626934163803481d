// Package directory holds the clinic location table and keyword lookup
// behind the upfh_location_lookup tool.
package directory

import "strings"

// HoursEntry keeps the published hours in display order.
type HoursEntry struct {
	Days  string `json:"days"`
	Hours string `json:"hours"`
}

// MobileStop is one stop on the mobile clinic's weekly schedule.
type MobileStop struct {
	Date  string `json:"date"`
	Site  string `json:"site"`
	Start string `json:"start"`
}

// Location describes one clinic site.
type Location struct {
	Name     string       `json:"name"`
	Address  string       `json:"address,omitempty"`
	Phone    string       `json:"phone"`
	Hours    []HoursEntry `json:"hours,omitempty"`
	Schedule []MobileStop `json:"schedule,omitempty"`
}

var locations = map[string]Location{
	"family_clinic": {
		Name:    "UPFH Family Clinic – West Jordan",
		Address: "9103 S 1300 W Suite 102, West Jordan, UT 84088",
		Phone:   "801-417-0131",
		Hours: []HoursEntry{
			{"Mon", "8 am – 5:30 pm"},
			{"Tue", "8 am – 5:30 pm"},
			{"Wed", "8 am – 5:30 pm"},
			{"Thu", "8 am – 8 pm"},
			{"Fri", "8 am – 5:30 pm"},
			{"Sat", "9 am – 1 pm"},
			{"Sun", "Closed"},
		},
	},
	"mid_valley": {
		Name:    "UPFH Mid-Valley Clinic",
		Address: "8446 S Harrison Street, Midvale, UT 84047",
		Phone:   "801-417-0131",
		Hours: []HoursEntry{
			{"Mon", "8 am – 5 pm"},
			{"Tue", "8 am – 5 pm"},
			{"Wed", "8 am – 5 pm"},
			{"Thu", "12 pm – 8 pm"},
			{"Fri–Sun", "Closed"},
		},
	},
	"dental": {
		Name:    "UPFH Dental",
		Address: "7651 S Main Street, Midvale, UT 84047",
		Phone:   "801-417-0131",
		Hours: []HoursEntry{
			{"Mon", "8 am – 12 pm, 1 pm – 5 pm"},
			{"Tue", "8 am – 12 pm, 1 pm – 5 pm"},
			{"Wed", "8 am – 12 pm, 1 pm – 5 pm"},
			{"Thu", "8 am – 12 pm, 1 pm – 5 pm"},
			{"Fri", "9 am – 12 pm, 1 pm – 4 pm"},
			{"Sat–Sun", "Closed"},
		},
	},
	"pharmacy": {
		Name:    "UPFH Pharmacy",
		Address: "9103 S 1300 W Suite 102, West Jordan, UT 84088",
		Phone:   "801-417-0131",
		Hours: []HoursEntry{
			{"Mon", "8:30 am – 5:30 pm"},
			{"Tue", "8:30 am – 5:30 pm"},
			{"Wed", "8:30 am – 5:30 pm"},
			{"Thu", "8:30 am – 8 pm"},
			{"Sat", "9 am – 1 pm"},
			{"Sun", "Closed"},
		},
	},
	"mobile_medical": {
		Name:  "Mobile Medical Clinic (weekly schedule)",
		Phone: "801-417-0131 ext 123",
		Schedule: []MobileStop{
			{"07/15/2025", "UNP Hartland, 1578 W 1700 S, Salt Lake City UT 84104", "8:30 am"},
			{"07/16/2025", "UNP Hartland, 1578 W 1700 S, Salt Lake City UT 84104", "8:30 am"},
			{"07/17/2025", "Orange Street Clinic, 80 N Orange Street, Salt Lake City UT 84116", "1:00 pm"},
		},
	},
}

// Lookup matches a keyword against location keys, then names, then any
// single word of the keyword against names.
func Lookup(keyword string) (Location, bool) {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	if kw == "" {
		return Location{}, false
	}

	for key, loc := range locations {
		if strings.Contains(key, kw) || strings.Contains(strings.ToLower(loc.Name), kw) {
			return loc, true
		}
	}
	for _, loc := range locations {
		name := strings.ToLower(loc.Name)
		for _, word := range strings.Fields(kw) {
			if strings.Contains(name, word) {
				return loc, true
			}
		}
	}
	return Location{}, false
}
