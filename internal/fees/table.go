package fees

// povertyBase and povertyPerMember come from the federal poverty guideline
// the clinic's sliding-fee schedule is pinned to.
const (
	povertyBase      = 15060.0
	povertyPerMember = 5380.0
)

// tierBands are the sliding-fee bands by poverty percentage. Percentages
// above the last band fall through to tier F, which has no priced row.
var tierBands = []struct {
	Tier   string
	MinPct float64
	MaxPct float64
}{
	{"A", 0, 100},
	{"B", 101, 125},
	{"C", 126, 150},
	{"D", 151, 175},
	{"E", 176, 200},
}

// FullCharge is the sentinel for procedures with no discounted rate at the
// resolved tier.
const FullCharge = "Full charge"

// feeTable maps each procedure on the sliding-fee schedule to its per-tier
// price. Tier F is always full charge and is not stored.
var feeTable = map[string]map[string]int{
	"UPFH Medical Fee":                                {"A": 35, "B": 45, "C": 60, "D": 70, "E": 80},
	"UPFH Counseling":                                 {"A": 20, "B": 25, "C": 35, "D": 40, "E": 50},
	"UPFH Group Counseling":                           {"A": 10, "B": 15, "C": 20, "D": 25, "E": 30},
	"UPFH Psychiatric Services":                       {"A": 40, "B": 50, "C": 60, "D": 70, "E": 80},
	"MOBILE Medical":                                  {"A": 35, "B": 45, "C": 60, "D": 70, "E": 80},
	"Inhouse Vision Exam":                             {"A": 20, "B": 30, "C": 40, "D": 50, "E": 70},
	"Replacement Glasses":                             {"A": 5, "B": 8, "C": 11, "D": 14, "E": 17},
	"MOBILE EYE Exam":                                 {"A": 5, "B": 7, "C": 8, "D": 10, "E": 15},
	"MOBILE EYE - Single Lens Glasses":                {"A": 20, "B": 30, "C": 40, "D": 50, "E": 60},
	"MOBILE EYE - Bifocal Lens Glasses":               {"A": 30, "B": 35, "C": 45, "D": 55, "E": 65},
	"MVHC Pharmacy Fill Fee":                          {"A": 3, "B": 5, "C": 7, "D": 8, "E": 9},
	"MA Visit - Labs outside of 7 day global":         {"A": 20, "B": 25, "C": 30, "D": 30, "E": 35},
	"MA Visit - VACCINES":                             {"A": 20, "B": 20, "C": 20, "D": 20, "E": 20},
	"Nuvaring":                                        {"A": 5, "B": 6, "C": 7, "D": 8, "E": 30},
	"Sprintec":                                        {"A": 10, "B": 11, "C": 15, "D": 20, "E": 25},
	"Loestrin":                                        {"A": 10, "B": 11, "C": 20, "D": 25, "E": 30},
	"Ella":                                            {"A": 10, "B": 11, "C": 25, "D": 30, "E": 35},
	"Depo-Provera":                                    {"A": 15, "B": 20, "C": 25, "D": 30, "E": 35},
	"Nexplanon":                                       {"A": 50, "B": 60, "C": 100, "D": 125, "E": 150},
	"Mirena":                                          {"A": 75, "B": 85, "C": 150, "D": 175, "E": 200},
	"Liletta":                                         {"A": 75, "B": 85, "C": 150, "D": 175, "E": 200},
	"Paragard (limited supply)":                       {"A": 75, "B": 85, "C": 150, "D": 175, "E": 200},
	"IUD Removal Fee":                                 {"A": 35, "B": 45, "C": 50, "D": 55, "E": 60},
	"Implanon Removal":                                {"A": 35, "B": 45, "C": 50, "D": 55, "E": 60},
	"Vaccine Administration Fee":                      {"A": 0, "B": 3, "C": 4, "D": 5, "E": 5},
	"STD Testing PLUS OFFICE VISIT":                   {"A": 85, "B": 86, "C": 87, "D": 88, "E": 89},
	"Steroid Injection – Kenalog PLUS OFFICE VISIT":   {"A": 20, "B": 25, "C": 30, "D": 35, "E": 40},
	"Hep A":                                           {"A": 45, "B": 46, "C": 47, "D": 48, "E": 49},
	"Hep B":                                           {"A": 50, "B": 51, "C": 52, "D": 53, "E": 54},
	"HIB":                                             {"A": 30, "B": 31, "C": 32, "D": 33, "E": 34},
	"HPV":                                             {"A": 330, "B": 335, "C": 335, "D": 335, "E": 335},
	"Influenza/Flu":                                   {"A": 18, "B": 19, "C": 20, "D": 21, "E": 22},
	"Child Flu":                                       {"A": 18, "B": 19, "C": 20, "D": 21, "E": 22},
	"Pneumovax":                                       {"A": 106, "B": 107, "C": 108, "D": 109, "E": 110},
	"Prevnar 13":                                      {"A": 190, "B": 191, "C": 192, "D": 193, "E": 194},
	"Adult Menactra":                                  {"A": 120, "B": 121, "C": 122, "D": 123, "E": 124},
	"MMR":                                             {"A": 75, "B": 76, "C": 77, "D": 78, "E": 79},
	"TD-Tetanus":                                      {"A": 35, "B": 36, "C": 37, "D": 38, "E": 39},
	"Adult TDAP (Boostrix)":                           {"A": 52, "B": 53, "C": 54, "D": 55, "E": 56},
	"Polio/IPV":                                       {"A": 35, "B": 36, "C": 37, "D": 38, "E": 39},
	"TB":                                              {"A": 10, "B": 11, "C": 12, "D": 13, "E": 14},
	"Adult Varicella":                                 {"A": 130, "B": 131, "C": 132, "D": 133, "E": 134},
	"B-12":                                            {"A": 15, "B": 16, "C": 17, "D": 18, "E": 20},
	"Wedge Toenail Removal (Global 10 days)":          {"A": 75, "B": 80, "C": 85, "D": 90, "E": 95},
	"Toenail Removal":                                 {"A": 100, "B": 105, "C": 110, "D": 115, "E": 120},
	"Endometrial Biopsy (Same Day Add-on)":            {"A": 105, "B": 110, "C": 115, "D": 115, "E": 115},
	"Endometrial Biopsy (Follow-up visit)":            {"A": 35, "B": 45, "C": 60, "D": 70, "E": 80},
	"Ear Lavage":                                      {"A": 10, "B": 11, "C": 12, "D": 13, "E": 14},
	"PT/INR (outside 14-day window)":                  {"A": 15, "B": 16, "C": 17, "D": 18, "E": 20},
}
